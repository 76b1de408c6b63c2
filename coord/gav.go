package coord

import (
	"cmp"
	"slices"
	"strings"

	"github.com/albertocavalcante/go-versionator/version"
)

// Gav is a fully resolved coordinate: group, artifact and version.
type Gav struct {
	GroupArtifact
	Version version.Version
}

// NewGav creates a Gav from a group artifact and a version.
func NewGav(ga GroupArtifact, v version.Version) Gav {
	return Gav{GroupArtifact: ga, Version: v}
}

// ParseGav parses "group:artifact:version". Everything after the second
// colon is the version.
func ParseGav(s string) (Gav, error) {
	if strings.Count(s, ":") < 2 {
		return Gav{}, &FormatError{Input: s, Expected: "*:*:*"}
	}
	g, rest, _ := strings.Cut(s, ":")
	a, v, _ := strings.Cut(rest, ":")
	ga, err := NewGroupArtifact(g, a)
	if err != nil {
		return Gav{}, &FormatError{Input: s, Expected: "*:*:*", Err: err}
	}
	ver, err := version.Parse(v)
	if err != nil {
		return Gav{}, &FormatError{Input: s, Expected: "*:*:*", Err: err}
	}
	return NewGav(ga, ver), nil
}

// MustGav parses a Gav or panics. Use only for constants/tests.
func MustGav(s string) Gav { return must(ParseGav(s)) }

func (g Gav) String() string {
	return g.GroupArtifact.String() + ":" + g.Version.String()
}

// WithVersion returns a copy of g carrying v.
func (g Gav) WithVersion(v version.Version) Gav {
	g.Version = v
	return g
}

// Compare orders by group artifact, then version.
func (g Gav) Compare(other Gav) int {
	return cmp.Or(
		g.GroupArtifact.Compare(other.GroupArtifact),
		version.Compare(g.Version, other.Version),
	)
}

// SortGavs sorts gavs by group artifact, then version.
func SortGavs(gavs []Gav) {
	slices.SortFunc(gavs, Gav.Compare)
}

// Property is a named manifest value.
type Property struct {
	Key   Key
	Value string
}

// NewProperty creates a Property.
func NewProperty(key, value string) (Property, error) {
	k, err := NewKey(key)
	if err != nil {
		return Property{}, err
	}
	return Property{Key: k, Value: value}, nil
}

// Apply returns a copy of p carrying value.
func (p Property) Apply(value string) Property {
	p.Value = value
	return p
}

func (p Property) String() string {
	return p.Key.String() + "=" + p.Value
}

// Dependency is a reference from one module to another coordinate.
type Dependency struct {
	Gav Gav
}

// NewDependency wraps a Gav.
func NewDependency(g Gav) Dependency {
	return Dependency{Gav: g}
}

// GroupArtifact returns the referenced coordinate family.
func (d Dependency) GroupArtifact() GroupArtifact { return d.Gav.GroupArtifact }

// Version returns the referenced version.
func (d Dependency) Version() version.Version { return d.Gav.Version }

// Apply returns d carrying g's version when g names the same group artifact,
// and reports whether the result differs from d.
func (d Dependency) Apply(g Gav) (Dependency, bool) {
	if d.Gav.GroupArtifact != g.GroupArtifact || d.Gav.Version == g.Version {
		return d, false
	}
	d.Gav.Version = g.Version
	return d, true
}

// PropertyRef reports whether the dependency version is a ${key} placeholder.
func (d Dependency) PropertyRef() (Key, bool) {
	name, ok := d.Gav.Version.PropertyRef()
	if !ok {
		return Key{}, false
	}
	return Key{name: name}, true
}

func (d Dependency) String() string { return d.Gav.String() }

// CompareDependencies orders dependencies by their coordinate.
func CompareDependencies(a, b Dependency) int {
	return a.Gav.Compare(b.Gav)
}

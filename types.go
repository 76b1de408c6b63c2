package versionator

import (
	"slices"

	"github.com/albertocavalcante/go-versionator/coord"
)

// Source records where a pom field value came from.
type Source int

const (
	// OwnValue means the pom declares the field itself.
	OwnValue Source = iota
	// InheritedFromParent means the value was taken from the <parent> element.
	InheritedFromParent
)

func (s Source) String() string {
	if s == InheritedFromParent {
		return "parent"
	}
	return "own"
}

// Pom is one module manifest: its coordinate, where the group id and version
// came from, its parent reference, modules, properties and dependencies.
//
// Poms are values. Engine operations never modify a Pom; they return
// rewritten copies.
type Pom struct {
	// Gav is the module's effective coordinate.
	Gav coord.Gav

	// File is the manifest path the pom was read from. It is informational
	// and may be empty for poms built in memory.
	File string

	// GroupIDSource records whether the group id was declared or inherited.
	GroupIDSource Source

	// VersionSource records whether the version was declared or inherited.
	VersionSource Source

	// Parent is the declared parent reference, nil for a tree root.
	Parent *coord.Dependency

	// Modules lists child module paths relative to the manifest.
	Modules []string

	// Properties are the manifest's named values.
	Properties []coord.Property

	// Dependencies are every coordinate the manifest references.
	Dependencies []coord.Dependency
}

// GroupArtifact returns the pom's coordinate family.
func (p Pom) GroupArtifact() coord.GroupArtifact {
	return p.Gav.GroupArtifact
}

// InheritsVersion reports whether the version comes from the parent.
func (p Pom) InheritsVersion() bool {
	return p.VersionSource == InheritedFromParent
}

// IsReleasable reports whether nothing the pom points at is still a snapshot:
// neither its parent reference nor any of its dependencies.
func (p Pom) IsReleasable() bool {
	if p.Parent != nil && p.Parent.Version().IsSnapshot() {
		return false
	}
	for _, d := range p.Dependencies {
		if d.Version().IsSnapshot() {
			return false
		}
	}
	return true
}

// Property returns the value of the named property.
func (p Pom) Property(key coord.Key) (coord.Property, bool) {
	for _, prop := range p.Properties {
		if prop.Key == key {
			return prop, true
		}
	}
	return coord.Property{}, false
}

// Equal reports structural equality.
func (p Pom) Equal(other Pom) bool {
	if p.Gav != other.Gav ||
		p.File != other.File ||
		p.GroupIDSource != other.GroupIDSource ||
		p.VersionSource != other.VersionSource {
		return false
	}
	if (p.Parent == nil) != (other.Parent == nil) {
		return false
	}
	if p.Parent != nil && *p.Parent != *other.Parent {
		return false
	}
	return slices.Equal(p.Modules, other.Modules) &&
		slices.Equal(p.Properties, other.Properties) &&
		slices.Equal(p.Dependencies, other.Dependencies)
}

func (p Pom) String() string {
	return p.Gav.String()
}

// withGav rewrites every reference to g's group artifact: the pom's own
// coordinate, its parent reference and its dependencies. A pom inheriting its
// version takes the new parent version along with the reference. References whose
// version is a ${key} placeholder are left to the property rewrite.
func (p Pom) withGav(g coord.Gav) (Pom, bool) {
	changed := false
	if p.Gav.GroupArtifact == g.GroupArtifact && p.Gav.Version != g.Version && !isPlaceholder(p.Gav) {
		p.Gav = g
		changed = true
	}
	if p.Parent != nil && !isPlaceholder(p.Parent.Gav) {
		if parent, ok := p.Parent.Apply(g); ok {
			p.Parent = &parent
			changed = true
			// An inherited version follows the parent reference.
			if p.InheritsVersion() && !isPlaceholder(p.Gav) {
				p.Gav = p.Gav.WithVersion(parent.Version())
			}
		}
	}
	var deps []coord.Dependency
	for i, d := range p.Dependencies {
		if isPlaceholder(d.Gav) {
			continue
		}
		nd, ok := d.Apply(g)
		if !ok {
			continue
		}
		if deps == nil {
			deps = slices.Clone(p.Dependencies)
		}
		deps[i] = nd
		changed = true
	}
	if deps != nil {
		p.Dependencies = deps
	}
	return p, changed
}

func isPlaceholder(g coord.Gav) bool {
	_, ok := g.Version.PropertyRef()
	return ok
}

// withProperty sets the named property if the pom defines it.
func (p Pom) withProperty(key coord.Key, value string) (Pom, bool) {
	for i, prop := range p.Properties {
		if prop.Key != key {
			continue
		}
		if prop.Value == value {
			return p, false
		}
		props := slices.Clone(p.Properties)
		props[i] = prop.Apply(value)
		p.Properties = props
		return p, true
	}
	return p, false
}

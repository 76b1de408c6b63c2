// Package coord provides validated coordinate identifiers for Maven modules.
//
// All types in this package are immutable comparable values and validate
// their contents at construction time. Zero values are invalid; use the
// constructor functions (NewGroupID, ParseGav, etc.) to create instances.
//
// # Types
//
// The main types are:
//   - [GroupID], [ArtifactID], [Key]: non-empty trimmed identifiers
//   - [GroupArtifact]: a coordinate family such as "com.example:core"
//   - [Gav]: a fully resolved coordinate such as "com.example:core:1.2"
//   - [Property]: a named manifest value
//   - [Dependency]: a reference to another module, also used for parent references
package coord

import (
	"cmp"
	"fmt"
	"strings"
)

// GroupID is a validated Maven group identifier.
type GroupID struct {
	id string
}

// NewGroupID creates a GroupID from a string, trimming surrounding space.
func NewGroupID(s string) (GroupID, error) {
	s, err := identifier("group id", s)
	return GroupID{id: s}, err
}

// MustGroupID creates a GroupID or panics. Use only for constants/tests.
func MustGroupID(s string) GroupID { return must(NewGroupID(s)) }

func (g GroupID) String() string { return g.id }

// IsEmpty returns true if this is a zero-value GroupID.
func (g GroupID) IsEmpty() bool { return g.id == "" }

// ArtifactID is a validated Maven artifact identifier.
type ArtifactID struct {
	id string
}

// NewArtifactID creates an ArtifactID from a string, trimming surrounding space.
func NewArtifactID(s string) (ArtifactID, error) {
	s, err := identifier("artifact id", s)
	return ArtifactID{id: s}, err
}

// MustArtifactID creates an ArtifactID or panics. Use only for constants/tests.
func MustArtifactID(s string) ArtifactID { return must(NewArtifactID(s)) }

func (a ArtifactID) String() string { return a.id }

// IsEmpty returns true if this is a zero-value ArtifactID.
func (a ArtifactID) IsEmpty() bool { return a.id == "" }

// Key names a manifest property.
type Key struct {
	name string
}

// NewKey creates a Key from a string, trimming surrounding space.
func NewKey(s string) (Key, error) {
	s, err := identifier("property key", s)
	return Key{name: s}, err
}

// MustKey creates a Key or panics. Use only for constants/tests.
func MustKey(s string) Key { return must(NewKey(s)) }

func (k Key) String() string { return k.name }

// IsEmpty returns true if this is a zero-value Key.
func (k Key) IsEmpty() bool { return k.name == "" }

func identifier(what, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%s cannot be empty", what)
	}
	return s, nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// GroupArtifact identifies a coordinate family: every version of one module.
type GroupArtifact struct {
	GroupID    GroupID
	ArtifactID ArtifactID
}

// NewGroupArtifact creates a GroupArtifact from its parts.
func NewGroupArtifact(groupID, artifactID string) (GroupArtifact, error) {
	g, err := NewGroupID(groupID)
	if err != nil {
		return GroupArtifact{}, err
	}
	a, err := NewArtifactID(artifactID)
	if err != nil {
		return GroupArtifact{}, err
	}
	return GroupArtifact{GroupID: g, ArtifactID: a}, nil
}

// ParseGroupArtifact parses "group:artifact".
func ParseGroupArtifact(s string) (GroupArtifact, error) {
	if strings.Count(s, ":") != 1 {
		return GroupArtifact{}, &FormatError{Input: s, Expected: "*:*"}
	}
	g, a, _ := strings.Cut(s, ":")
	ga, err := NewGroupArtifact(g, a)
	if err != nil {
		return GroupArtifact{}, &FormatError{Input: s, Expected: "*:*", Err: err}
	}
	return ga, nil
}

// MustGroupArtifact parses a GroupArtifact or panics. Use only for constants/tests.
func MustGroupArtifact(s string) GroupArtifact { return must(ParseGroupArtifact(s)) }

func (ga GroupArtifact) String() string {
	return ga.GroupID.String() + ":" + ga.ArtifactID.String()
}

// IsEmpty returns true if this is a zero-value GroupArtifact.
func (ga GroupArtifact) IsEmpty() bool {
	return ga.GroupID.IsEmpty() && ga.ArtifactID.IsEmpty()
}

// Compare orders group artifacts by group id, then artifact id.
func (ga GroupArtifact) Compare(other GroupArtifact) int {
	return cmp.Or(
		strings.Compare(ga.GroupID.id, other.GroupID.id),
		strings.Compare(ga.ArtifactID.id, other.ArtifactID.id),
	)
}

// FormatError reports coordinate text with the wrong shape.
type FormatError struct {
	Input    string
	Expected string
	Err      error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("invalid format: expected '%s' but found '%s'", e.Expected, e.Input)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

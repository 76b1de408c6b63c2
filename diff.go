package versionator

import (
	"fmt"
	"sort"

	"github.com/albertocavalcante/go-versionator/version"
)

// Pair holds the values found at one position of two sequences.
type Pair[T any] struct {
	Original T
	Result   T
}

// Zip pairs a and b by position. Extra elements of the longer slice are
// dropped.
func Zip[T any](a, b []T) []Pair[T] {
	n := min(len(a), len(b))
	out := make([]Pair[T], n)
	for i := range n {
		out[i] = Pair[T]{Original: a[i], Result: b[i]}
	}
	return out
}

// ChangedPoms returns the (original, result) pairs whose poms differ.
// Both models must come from the same project.
func ChangedPoms(original, result *Model) ([]Pair[Pom], error) {
	if original.Len() != result.Len() {
		return nil, fmt.Errorf("%w: %d poms vs %d", ErrModelMismatch, original.Len(), result.Len())
	}
	var out []Pair[Pom]
	for i, p := range Zip(original.poms, result.poms) {
		if p.Original.GroupArtifact() != p.Result.GroupArtifact() {
			return nil, fmt.Errorf("%w: position %d holds %s and %s",
				ErrModelMismatch, i, p.Original.GroupArtifact(), p.Result.GroupArtifact())
		}
		if !p.Original.Equal(p.Result) {
			out = append(out, p)
		}
	}
	return out, nil
}

// CoordinateChange is a pom whose own version moved.
type CoordinateChange struct {
	// GroupArtifact is the pom's "group:artifact".
	GroupArtifact string `json:"group_artifact"`

	// File is the pom's manifest path.
	File string `json:"file,omitempty"`

	// OldVersion is the version in the original model.
	OldVersion string `json:"old_version"`

	// NewVersion is the version in the result model.
	NewVersion string `json:"new_version"`
}

// PropertyChange is a property whose value moved.
type PropertyChange struct {
	// GroupArtifact is the defining pom's "group:artifact".
	GroupArtifact string `json:"group_artifact"`

	// Key is the property name.
	Key string `json:"key"`

	// OldValue is the value in the original model.
	OldValue string `json:"old_value"`

	// NewValue is the value in the result model.
	NewValue string `json:"new_value"`
}

// ModelDiff summarises what an operation changed.
//
// Example usage:
//
//	result, _ := model.Release(nil)
//	diff, _ := versionator.Diff(model, result)
//	for _, c := range diff.Upgraded {
//	    fmt.Printf("%s %s -> %s\n", c.GroupArtifact, c.OldVersion, c.NewVersion)
//	}
type ModelDiff struct {
	// Upgraded contains poms whose new version sorts higher.
	Upgraded []CoordinateChange `json:"upgraded,omitempty"`

	// Downgraded contains poms whose new version sorts lower or equal.
	Downgraded []CoordinateChange `json:"downgraded,omitempty"`

	// Properties contains changed property values.
	Properties []PropertyChange `json:"properties,omitempty"`

	// Touched counts poms with any change, including reference-only edits.
	Touched int `json:"touched"`
}

// IsEmpty returns true if nothing changed.
func (d *ModelDiff) IsEmpty() bool {
	return d.Touched == 0
}

// TotalChanges returns the number of coordinate and property changes.
func (d *ModelDiff) TotalChanges() int {
	return len(d.Upgraded) + len(d.Downgraded) + len(d.Properties)
}

// Diff compares two models of the same project.
//
// Versions are ordered with version.Compare, so "1.0-SNAPSHOT" to "1.0" is an
// upgrade and "1.0" to "1.0.1-SNAPSHOT" is too. Results are sorted by group
// artifact for consistent output.
func Diff(original, result *Model) (*ModelDiff, error) {
	pairs, err := ChangedPoms(original, result)
	if err != nil {
		return nil, err
	}

	d := &ModelDiff{Touched: len(pairs)}
	for _, p := range pairs {
		ga := p.Original.GroupArtifact().String()
		if oldV, newV := p.Original.Gav.Version, p.Result.Gav.Version; oldV != newV {
			c := CoordinateChange{
				GroupArtifact: ga,
				File:          p.Result.File,
				OldVersion:    oldV.String(),
				NewVersion:    newV.String(),
			}
			if version.Compare(newV, oldV) > 0 {
				d.Upgraded = append(d.Upgraded, c)
			} else {
				d.Downgraded = append(d.Downgraded, c)
			}
		}
		for _, np := range p.Result.Properties {
			op, ok := p.Original.Property(np.Key)
			if ok && op.Value != np.Value {
				d.Properties = append(d.Properties, PropertyChange{
					GroupArtifact: ga,
					Key:           np.Key.String(),
					OldValue:      op.Value,
					NewValue:      np.Value,
				})
			}
		}
	}

	sortCoordinateChanges(d.Upgraded)
	sortCoordinateChanges(d.Downgraded)
	sort.Slice(d.Properties, func(i, j int) bool {
		if d.Properties[i].GroupArtifact != d.Properties[j].GroupArtifact {
			return d.Properties[i].GroupArtifact < d.Properties[j].GroupArtifact
		}
		return d.Properties[i].Key < d.Properties[j].Key
	})
	return d, nil
}

func sortCoordinateChanges(changes []CoordinateChange) {
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].GroupArtifact < changes[j].GroupArtifact
	})
}

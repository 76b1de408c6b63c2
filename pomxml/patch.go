package pomxml

import (
	"errors"
	"fmt"
	"slices"

	versionator "github.com/albertocavalcante/go-versionator"
	"github.com/albertocavalcante/go-versionator/coord"
	"github.com/albertocavalcante/go-versionator/version"
)

// ErrUnpatchable indicates a value whose element has no room for text, such
// as a self-closing property element.
var ErrUnpatchable = errors.New("element cannot be patched")

// SetVersion rewrites the version text of every element naming ga whose
// current version is from. The project element matches on its effective
// group id. ${key} placeholders are never touched.
func SetVersion(data []byte, ga coord.GroupArtifact, from, to version.Version) ([]byte, error) {
	doc, err := Scan(data)
	if err != nil {
		return nil, err
	}
	var spans []span
	for _, e := range doc.elements() {
		if e.GroupID != ga.GroupID.String() || e.ArtifactID != ga.ArtifactID.String() || !e.HasVersion() {
			continue
		}
		current, err := version.Parse(e.Version)
		if err != nil || current != from {
			continue
		}
		if _, ref := current.PropertyRef(); ref {
			continue
		}
		spans = append(spans, e.version)
	}
	return splice(data, spans, to.String()), nil
}

// SetProperty rewrites the text of /project/properties/<key>.
func SetProperty(data []byte, key coord.Key, value string) ([]byte, error) {
	doc, err := Scan(data)
	if err != nil {
		return nil, err
	}
	var spans []span
	for _, e := range doc.Properties {
		if e.Key != key.String() {
			continue
		}
		if !e.value.valid() {
			return nil, fmt.Errorf("property %s: %w", key, ErrUnpatchable)
		}
		spans = append(spans, e.value)
	}
	return splice(data, spans, value), nil
}

// Patch rewrites data so that it describes result instead of original.
//
// Edits run in order: the parent reference, every changed dependency with a
// literal version, every changed property, then the pom's own coordinate.
// Each edit only touches elements still carrying the original version.
// A result whose inherited version differs from its parent reference has no
// version element to carry it and fails with ErrUnpatchable.
func Patch(data []byte, original, result versionator.Pom) ([]byte, error) {
	if result.InheritsVersion() && result.Parent != nil && result.Gav.Version != result.Parent.Version() {
		return nil, fmt.Errorf("%s inherits %s from %s, cannot set %s: %w",
			result.GroupArtifact(), result.Parent.Version(), result.Parent.GroupArtifact(), result.Gav.Version, ErrUnpatchable)
	}

	out := data
	var err error

	if original.Parent != nil && result.Parent != nil && *original.Parent != *result.Parent {
		out, err = SetVersion(out, result.Parent.GroupArtifact(), original.Parent.Version(), result.Parent.Version())
		if err != nil {
			return nil, err
		}
	}

	for _, p := range versionator.Zip(original.Dependencies, result.Dependencies) {
		if p.Original == p.Result {
			continue
		}
		if _, ref := p.Original.PropertyRef(); ref {
			continue
		}
		out, err = SetVersion(out, p.Result.GroupArtifact(), p.Original.Version(), p.Result.Version())
		if err != nil {
			return nil, err
		}
	}

	for _, p := range versionator.Zip(original.Properties, result.Properties) {
		if p.Original == p.Result {
			continue
		}
		out, err = SetProperty(out, p.Result.Key, p.Result.Value)
		if err != nil {
			return nil, err
		}
	}

	if original.Gav != result.Gav && result.VersionSource == versionator.OwnValue {
		out, err = SetVersion(out, result.GroupArtifact(), original.Gav.Version, result.Gav.Version)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// splice replaces every span of data with text. Spans must not overlap.
func splice(data []byte, spans []span, text string) []byte {
	if len(spans) == 0 {
		return data
	}
	slices.SortFunc(spans, func(a, b span) int { return a.start - b.start })
	out := make([]byte, 0, len(data)+len(spans)*len(text))
	prev := 0
	for _, s := range spans {
		out = append(out, data[prev:s.start]...)
		out = append(out, text...)
		prev = s.end
	}
	return append(out, data[prev:]...)
}

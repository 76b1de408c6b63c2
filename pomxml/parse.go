package pomxml

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	versionator "github.com/albertocavalcante/go-versionator"
	"github.com/albertocavalcante/go-versionator/coord"
	"github.com/albertocavalcante/go-versionator/version"
)

// ParseError reports a pom that could not be read or understood.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse scans a pom and converts it to a versionator.Pom.
func Parse(path string, data []byte) (versionator.Pom, error) {
	doc, err := Scan(data)
	if err != nil {
		return versionator.Pom{}, &ParseError{Path: path, Err: err}
	}
	p, err := doc.Pom(path)
	if err != nil {
		return versionator.Pom{}, &ParseError{Path: path, Err: err}
	}
	return p, nil
}

// Pom converts the document to a versionator.Pom.
//
// The group id and version fall back to the <parent> values and are tagged
// as inherited. Dependencies are every element beneath the project, other
// than <parent>, with a non-empty groupId, artifactId and version; they are
// deduplicated and sorted.
func (doc *Document) Pom(path string) (versionator.Pom, error) {
	p := versionator.Pom{File: path, Modules: slices.Clone(doc.Modules)}

	if doc.Project == nil {
		return p, errors.New("project has no artifactId")
	}

	if doc.Parent != nil {
		ref, err := gav(doc.Parent.GroupID, doc.Parent.ArtifactID, doc.Parent.Version)
		if err != nil {
			return p, fmt.Errorf("parent: %w", err)
		}
		dep := coord.NewDependency(ref)
		p.Parent = &dep
	}

	groupID, versionText := doc.Project.GroupID, doc.Project.Version
	if groupID == "" && p.Parent != nil {
		groupID = p.Parent.GroupArtifact().GroupID.String()
		p.GroupIDSource = versionator.InheritedFromParent
	}
	if versionText == "" && p.Parent != nil {
		versionText = p.Parent.Version().String()
		p.VersionSource = versionator.InheritedFromParent
	}
	own, err := gav(groupID, doc.Project.ArtifactID, versionText)
	if err != nil {
		return p, fmt.Errorf("project: %w", err)
	}
	p.Gav = own

	seenKeys := make(map[string]bool)
	for _, e := range doc.Properties {
		if seenKeys[e.Key] {
			continue
		}
		seenKeys[e.Key] = true
		prop, err := coord.NewProperty(e.Key, e.Value)
		if err != nil {
			return p, fmt.Errorf("property %q: %w", e.Key, err)
		}
		p.Properties = append(p.Properties, prop)
	}
	slices.SortFunc(p.Properties, func(a, b coord.Property) int {
		return strings.Compare(a.Key.String(), b.Key.String())
	})

	seen := make(map[coord.Gav]bool)
	for _, e := range doc.Coordinates {
		if e.GroupID == "" || e.ArtifactID == "" || e.Version == "" {
			continue
		}
		g, err := gav(e.GroupID, e.ArtifactID, e.Version)
		if err != nil {
			return p, fmt.Errorf("%s: %w", e.PathString(), err)
		}
		if seen[g] {
			continue
		}
		seen[g] = true
		p.Dependencies = append(p.Dependencies, coord.NewDependency(g))
	}
	slices.SortFunc(p.Dependencies, coord.CompareDependencies)

	return p, nil
}

func gav(groupID, artifactID, versionText string) (coord.Gav, error) {
	ga, err := coord.NewGroupArtifact(groupID, artifactID)
	if err != nil {
		return coord.Gav{}, err
	}
	v, err := version.Parse(versionText)
	if err != nil {
		return coord.Gav{}, err
	}
	return coord.NewGav(ga, v), nil
}

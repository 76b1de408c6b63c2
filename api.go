// Package versionator rewrites version coordinates across a multi-module
// Maven project.
//
// The package holds the propagation engine: an immutable [Model] of every
// pom in a project and the operations that compute a new Model from it.
// It performs no file I/O; see the pomxml and project packages for reading
// and patching manifests.
//
// # Overview
//
// Two operations are provided:
//
//   - [Model.Apply] forces coordinates to new versions and propagates the
//     change through every pom that inherits or references them.
//   - [Model.Release] promotes every snapshot to its release version while
//     keeping inter-module references consistent.
//
// Poms that inherit their version from a parent form a version family and
// always move together (see [Model.CreateClosure]). A released pom touched by
// a change is moved back to development at its next snapshot version.
//
// # Quick Start
//
//	model, err := versionator.NewModel(poms)
//	result, err := model.Apply([]coord.Gav{coord.MustGav("com.example:core:2.0")})
//	diff, err := versionator.Diff(model, result)
//
// # Thread Safety
//
// Models are immutable and safe for concurrent use.
package versionator

import (
	"github.com/albertocavalcante/go-versionator/coord"
)

// ParseGavs parses "group:artifact:version" arguments.
func ParseGavs(args ...string) ([]coord.Gav, error) {
	out := make([]coord.Gav, 0, len(args))
	for _, a := range args {
		g, err := coord.ParseGav(a)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// ParseGroupArtifacts parses "group:artifact" arguments.
func ParseGroupArtifacts(args ...string) ([]coord.GroupArtifact, error) {
	out := make([]coord.GroupArtifact, 0, len(args))
	for _, a := range args {
		ga, err := coord.ParseGroupArtifact(a)
		if err != nil {
			return nil, err
		}
		out = append(out, ga)
	}
	return out, nil
}

// SetVersions parses gavs and applies them to m.
func SetVersions(m *Model, gavs []string, opts ...Option) (*Model, error) {
	parsed, err := ParseGavs(gavs...)
	if err != nil {
		return nil, err
	}
	return m.Apply(parsed, opts...)
}

// Release parses exclusions and releases m.
func Release(m *Model, exclusions []string, opts ...Option) (*Model, error) {
	parsed, err := ParseGroupArtifacts(exclusions...)
	if err != nil {
		return nil, err
	}
	return m.Release(parsed, opts...)
}

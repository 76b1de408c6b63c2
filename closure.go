package versionator

import (
	"github.com/albertocavalcante/go-versionator/coord"
	"github.com/albertocavalcante/go-versionator/version"
)

// CreateClosure expands a change request to every pom that must move with it.
//
// A pom inheriting its version must keep the version of its family root, so
// requesting a version for any family member assigns that version to the
// whole family. Coordinates not present in the model are kept as given; they
// only affect references.
//
// Two requests giving one group artifact different versions, directly or
// through a shared family, fail with a *ContradictionError. Identical
// duplicates are collapsed. The result is sorted and CreateClosure is
// idempotent on its own output.
func (m *Model) CreateClosure(gavs []coord.Gav) ([]coord.Gav, error) {
	assigned := make(map[coord.GroupArtifact]version.Version, len(gavs))
	order := make([]coord.GroupArtifact, 0, len(gavs))
	for _, g := range gavs {
		if v, ok := assigned[g.GroupArtifact]; ok {
			if v != g.Version {
				return nil, &ContradictionError{GroupArtifact: g.GroupArtifact, Existing: v, Requested: g.Version}
			}
			continue
		}
		assigned[g.GroupArtifact] = g.Version
		order = append(order, g.GroupArtifact)
	}

	families := m.families()
	for added := true; added; {
		added = false
		for i := 0; i < len(order); i++ {
			ga := order[i]
			idx, ok := m.index[ga]
			if !ok {
				continue
			}
			v := assigned[ga]
			for _, member := range families[m.rootIndex(idx)] {
				mga := m.poms[member].GroupArtifact()
				existing, ok := assigned[mga]
				if !ok {
					assigned[mga] = v
					order = append(order, mga)
					added = true
					continue
				}
				if existing != v {
					return nil, &ContradictionError{GroupArtifact: mga, Existing: existing, Requested: v, Via: ga}
				}
			}
		}
	}

	closed := make([]coord.Gav, 0, len(order))
	for _, ga := range order {
		closed = append(closed, coord.NewGav(ga, assigned[ga]))
	}
	coord.SortGavs(closed)
	return closed, nil
}

package versionator

import (
	"fmt"
	"slices"

	"github.com/albertocavalcante/go-versionator/coord"
)

// Model is the immutable set of every pom in a project.
//
// Poms are kept in an ordered arena. Parent links are not pointers: a pom's
// parent is found by looking up its parent reference's group artifact in the
// model index. A parent reference that does not resolve (for example a
// corporate parent pom published elsewhere) ends the root walk.
//
// Operations on a Model return a new Model and never modify the receiver.
type Model struct {
	poms  []Pom
	index map[coord.GroupArtifact]int
}

// NewModel validates poms and builds a Model over a copy of them.
//
// It fails when two poms share a group artifact, when a pom inherits its
// version without declaring a parent, or when parent references loop.
func NewModel(poms []Pom) (*Model, error) {
	m := &Model{
		poms:  slices.Clone(poms),
		index: make(map[coord.GroupArtifact]int, len(poms)),
	}
	for i, p := range m.poms {
		ga := p.GroupArtifact()
		if ga.GroupID.IsEmpty() || ga.ArtifactID.IsEmpty() || p.Gav.Version.IsZero() {
			return nil, fmt.Errorf("pom %d (%s) has an incomplete coordinate", i, p.File)
		}
		if j, dup := m.index[ga]; dup {
			return nil, fmt.Errorf("%w: %s in %q and %q", ErrDuplicateGroupArtifact, ga, m.poms[j].File, p.File)
		}
		if p.InheritsVersion() && p.Parent == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingParent, ga)
		}
		m.index[ga] = i
	}
	for i := range m.poms {
		if err := m.checkChain(i); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustModel builds a Model or panics. Use only for constants/tests.
func MustModel(poms ...Pom) *Model {
	m, err := NewModel(poms)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Model) checkChain(i int) error {
	seen := map[int]bool{i: true}
	for {
		j, ok := m.parentIndex(i)
		if !ok {
			return nil
		}
		if seen[j] {
			return fmt.Errorf("%w: %s", ErrParentCycle, m.poms[j].GroupArtifact())
		}
		seen[j] = true
		i = j
	}
}

// withPoms returns a model over rewritten poms. Rewrites never change a
// pom's group artifact, so the index is shared.
func (m *Model) withPoms(poms []Pom) *Model {
	return &Model{poms: poms, index: m.index}
}

// Len returns the number of poms.
func (m *Model) Len() int { return len(m.poms) }

// Poms returns the poms in model order.
func (m *Model) Poms() []Pom { return slices.Clone(m.poms) }

// At returns the pom at position i.
func (m *Model) At(i int) Pom { return m.poms[i] }

// Lookup returns the pom with the given group artifact.
func (m *Model) Lookup(ga coord.GroupArtifact) (Pom, bool) {
	i, ok := m.index[ga]
	if !ok {
		return Pom{}, false
	}
	return m.poms[i], true
}

// Contains reports whether the model has a pom for ga.
func (m *Model) Contains(ga coord.GroupArtifact) bool {
	_, ok := m.index[ga]
	return ok
}

// Parent returns the in-model parent of the pom named ga.
func (m *Model) Parent(ga coord.GroupArtifact) (Pom, bool) {
	i, ok := m.index[ga]
	if !ok {
		return Pom{}, false
	}
	j, ok := m.parentIndex(i)
	if !ok {
		return Pom{}, false
	}
	return m.poms[j], true
}

func (m *Model) parentIndex(i int) (int, bool) {
	parent := m.poms[i].Parent
	if parent == nil {
		return 0, false
	}
	j, ok := m.index[parent.GroupArtifact()]
	return j, ok
}

// rootIndex walks parents while the version is inherited.
func (m *Model) rootIndex(i int) int {
	for m.poms[i].InheritsVersion() {
		j, ok := m.parentIndex(i)
		if !ok {
			break
		}
		i = j
	}
	return i
}

// FindRoot returns the root of the version family containing ga: the first
// ancestor, walking parents from ga, that declares its own version.
func (m *Model) FindRoot(ga coord.GroupArtifact) (Pom, bool) {
	i, ok := m.index[ga]
	if !ok {
		return Pom{}, false
	}
	return m.poms[m.rootIndex(i)], true
}

// families groups pom positions by the position of their family root.
func (m *Model) families() map[int][]int {
	fams := make(map[int][]int)
	for i := range m.poms {
		r := m.rootIndex(i)
		fams[r] = append(fams[r], i)
	}
	return fams
}

// Family returns every pom sharing ga's version family, in model order.
func (m *Model) Family(ga coord.GroupArtifact) []Pom {
	i, ok := m.index[ga]
	if !ok {
		return nil
	}
	root := m.rootIndex(i)
	var out []Pom
	for j := range m.poms {
		if m.rootIndex(j) == root {
			out = append(out, m.poms[j])
		}
	}
	return out
}

// Families returns every version family keyed by its root's group artifact.
func (m *Model) Families() map[coord.GroupArtifact][]Pom {
	out := make(map[coord.GroupArtifact][]Pom)
	for r, members := range m.families() {
		ga := m.poms[r].GroupArtifact()
		for _, i := range members {
			out[ga] = append(out[ga], m.poms[i])
		}
	}
	return out
}

// definingPom finds the nearest pom, starting at i and walking in-model
// parents, that defines the property key.
func (m *Model) definingPom(i int, key coord.Key) (int, bool) {
	for {
		if _, ok := m.poms[i].Property(key); ok {
			return i, true
		}
		j, ok := m.parentIndex(i)
		if !ok {
			return 0, false
		}
		i = j
	}
}

// Equal reports whether both models hold structurally equal poms in the
// same order.
func (m *Model) Equal(other *Model) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	return slices.EqualFunc(m.poms, other.poms, Pom.Equal)
}

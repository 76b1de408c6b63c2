package versionator

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/albertocavalcante/go-versionator/coord"
	"github.com/albertocavalcante/go-versionator/version"
)

// Apply sets the requested coordinates and propagates the change.
//
// The request is first closed over version families (see CreateClosure).
// Every pom's own coordinate, parent reference and dependencies naming a
// closed group artifact are then rewritten. A dependency whose version is a
// ${key} placeholder keeps its text; the property is rewritten instead, in
// the nearest pom that defines it.
//
// Finally collateral changes are folded in until nothing moves: a pom whose
// coordinate changed without being requested is propagated further, and a
// released pom that was touched sends its family root back to development at
// the next snapshot version.
//
// An empty request returns the receiver. Errors leave the receiver untouched.
func (m *Model) Apply(gavs []coord.Gav, opts ...Option) (*Model, error) {
	c, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return m.apply(gavs, c)
}

func (m *Model) apply(gavs []coord.Gav, c *config) (*Model, error) {
	if len(gavs) == 0 {
		return m, nil
	}
	log := c.log()

	closed, err := m.CreateClosure(gavs)
	if err != nil {
		return nil, err
	}
	log.Debug("closed change request", "requested", gavStrings(gavs), "closed", gavStrings(closed))

	result, err := m.rewrite(closed)
	if err != nil {
		return nil, err
	}

	targeted := make(map[coord.GroupArtifact]bool, len(closed))
	for _, g := range closed {
		targeted[g.GroupArtifact] = true
	}

	limit := c.rounds(len(m.poms))
	for round := 1; ; round++ {
		if round > limit {
			return nil, fmt.Errorf("%w after %d rounds", ErrNoFixedPoint, limit)
		}
		collateral := m.collateral(result, targeted)
		if len(collateral) == 0 {
			return result, nil
		}
		log.Debug("collateral changes", "round", round, "gavs", gavStrings(collateral))

		next, err := result.apply(collateral, c)
		if err != nil {
			return nil, err
		}
		if next == result || next.Equal(result) {
			return result, nil
		}
		result = next
	}
}

// rewrite applies closed gavs to every pom without further propagation.
// It returns the receiver when nothing changes.
func (m *Model) rewrite(gavs []coord.Gav) (*Model, error) {
	props, err := m.propertyChanges(gavs)
	if err != nil {
		return nil, err
	}

	poms := slices.Clone(m.poms)
	changed := false
	for _, pc := range props {
		var ok bool
		poms[pc.pom], ok = poms[pc.pom].withProperty(pc.key, pc.value)
		changed = changed || ok
	}
	for _, g := range gavs {
		for i := range poms {
			var ok bool
			poms[i], ok = poms[i].withGav(g)
			changed = changed || ok
		}
	}
	if !changed {
		return m, nil
	}
	return m.withPoms(poms), nil
}

type propertyChange struct {
	pom   int
	key   coord.Key
	value string
}

// propertyChanges resolves placeholder dependencies on the requested group
// artifacts to the properties that must change.
func (m *Model) propertyChanges(gavs []coord.Gav) ([]propertyChange, error) {
	type slot struct {
		pom int
		key coord.Key
	}
	seen := make(map[slot]coord.Gav)
	var out []propertyChange
	for _, g := range gavs {
		for i, p := range m.poms {
			for _, d := range p.Dependencies {
				key, ok := d.PropertyRef()
				if !ok || d.GroupArtifact() != g.GroupArtifact {
					continue
				}
				j, ok := m.definingPom(i, key)
				if !ok {
					continue
				}
				s := slot{pom: j, key: key}
				if prev, ok := seen[s]; ok {
					if prev.Version != g.Version {
						return nil, fmt.Errorf("%w: property %s of %s is shared by %s and %s",
							ErrContradiction, key, m.poms[j].GroupArtifact(), prev, g)
					}
					continue
				}
				seen[s] = g
				out = append(out, propertyChange{pom: j, key: key, value: g.Version.String()})
			}
		}
	}
	return out, nil
}

// collateral compares the receiver with a rewritten result and returns the
// changes forced by convention. A family root inheriting its version from a
// parent outside the model is never bumped.
func (m *Model) collateral(result *Model, targeted map[coord.GroupArtifact]bool) []coord.Gav {
	queued := make(map[coord.GroupArtifact]bool)
	var out []coord.Gav
	pairs := Zip(m.poms, result.poms)

	moved := func(p Pair[Pom]) bool {
		return p.Original.Gav != p.Result.Gav && !targeted[p.Result.GroupArtifact()]
	}

	for _, p := range pairs {
		if !p.Original.Equal(p.Result) && moved(p) {
			queued[p.Result.GroupArtifact()] = true
			out = append(out, p.Result.Gav)
		}
	}

	for i, p := range pairs {
		if p.Original.Equal(p.Result) || moved(p) || !p.Original.Gav.Version.IsRelease() {
			continue
		}
		r := m.rootIndex(i)
		root := m.poms[r]
		ga := root.GroupArtifact()
		if targeted[ga] || queued[ga] || result.poms[r].Gav != root.Gav || isPlaceholder(root.Gav) || root.InheritsVersion() {
			continue
		}
		queued[ga] = true
		out = append(out, root.Gav.WithVersion(nextSnapshot(root.Gav.Version)))
	}
	return out
}

func nextSnapshot(v version.Version) version.Version {
	return v.Next().ToSnapshot()
}

func gavStrings(gavs []coord.Gav) []string {
	out := make([]string, len(gavs))
	for i, g := range gavs {
		out[i] = g.String()
	}
	return out
}

// logAttr is shared by operations that report a model size.
func logAttr(m *Model) slog.Attr {
	return slog.Int("poms", len(m.poms))
}

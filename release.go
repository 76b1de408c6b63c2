package versionator

import (
	"slices"

	"github.com/albertocavalcante/go-versionator/coord"
	"github.com/albertocavalcante/go-versionator/version"
)

// Release promotes every snapshot in the model to its release version.
//
// It runs in two phases. First, every released pom that still points at a
// snapshot (see Pom.IsReleasable) is moved to its next snapshot through
// Apply, so dependents and families follow. Then every remaining snapshot
// coordinate, whether a pom's own version, a parent reference or a
// dependency, is rewritten to its release form directly, without closure.
// Snapshot property values referenced by placeholder dependencies are
// released as well.
//
// When a group artifact appears at several snapshot versions, the first one
// found is released, own coordinates before references.
//
// Poms and references whose group artifact is in exclusions keep their
// versions. Exclusions naming unknown coordinates are ignored.
func (m *Model) Release(exclusions []coord.GroupArtifact, opts ...Option) (*Model, error) {
	c, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	log := c.log()

	excluded := make(map[coord.GroupArtifact]bool, len(exclusions))
	for _, ga := range exclusions {
		excluded[ga] = true
	}

	var bumps []coord.Gav
	for _, p := range m.poms {
		if excluded[p.GroupArtifact()] || isPlaceholder(p.Gav) {
			continue
		}
		if p.Gav.Version.IsRelease() && !p.IsReleasable() {
			bumps = append(bumps, p.Gav.WithVersion(nextSnapshot(p.Gav.Version)))
		}
	}
	log.Debug("release phase 1", logAttr(m), "bumps", gavStrings(bumps))

	intermediate, err := m.apply(bumps, c)
	if err != nil {
		return nil, err
	}

	releases := intermediate.releaseTargets(excluded)
	props := intermediate.releaseProperties(excluded)
	log.Debug("release phase 2", "gavs", gavStrings(releases), "properties", len(props))

	poms := slices.Clone(intermediate.poms)
	changed := false
	for _, pc := range props {
		var ok bool
		poms[pc.pom], ok = poms[pc.pom].withProperty(pc.key, pc.value)
		changed = changed || ok
	}
	for _, g := range releases {
		for i := range poms {
			var ok bool
			poms[i], ok = poms[i].withGav(g)
			changed = changed || ok
		}
	}
	if !changed {
		return intermediate, nil
	}
	return intermediate.withPoms(poms), nil
}

// releaseTargets lists the release form of every snapshot coordinate in the
// model. The first coordinate found for a group artifact wins, and poms' own
// coordinates are visited before references.
func (m *Model) releaseTargets(excluded map[coord.GroupArtifact]bool) []coord.Gav {
	seen := make(map[coord.GroupArtifact]bool)
	var out []coord.Gav
	add := func(g coord.Gav) {
		if !g.Version.IsSnapshot() || excluded[g.GroupArtifact] || seen[g.GroupArtifact] {
			return
		}
		seen[g.GroupArtifact] = true
		out = append(out, g.WithVersion(g.Version.ToRelease()))
	}
	for _, p := range m.poms {
		add(p.Gav)
	}
	for _, p := range m.poms {
		if p.Parent != nil {
			add(p.Parent.Gav)
		}
		for _, d := range p.Dependencies {
			add(d.Gav)
		}
	}
	return out
}

// releaseProperties finds snapshot property values behind placeholder
// dependencies.
func (m *Model) releaseProperties(excluded map[coord.GroupArtifact]bool) []propertyChange {
	type slot struct {
		pom int
		key coord.Key
	}
	seen := make(map[slot]bool)
	var out []propertyChange
	for i, p := range m.poms {
		for _, d := range p.Dependencies {
			key, ok := d.PropertyRef()
			if !ok || excluded[d.GroupArtifact()] {
				continue
			}
			j, ok := m.definingPom(i, key)
			if !ok || seen[slot{j, key}] {
				continue
			}
			prop, _ := m.poms[j].Property(key)
			v, err := version.Parse(prop.Value)
			if err != nil || !v.IsSnapshot() {
				continue
			}
			seen[slot{j, key}] = true
			out = append(out, propertyChange{pom: j, key: key, value: v.ToRelease().String()})
		}
	}
	return out
}

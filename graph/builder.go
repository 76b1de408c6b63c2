package graph

import (
	"slices"

	versionator "github.com/albertocavalcante/go-versionator"
	"github.com/albertocavalcante/go-versionator/coord"
	"github.com/albertocavalcante/go-versionator/version"
)

// Build constructs the reference graph of a model.
func Build(m *versionator.Model) *Graph {
	g := &Graph{Nodes: make(map[Key]*Node)}

	// First pass: a node per pom
	for _, p := range m.Poms() {
		root, _ := m.FindRoot(p.GroupArtifact())
		g.Nodes[p.GroupArtifact()] = &Node{
			Key:               p.GroupArtifact(),
			Version:           p.Gav.Version,
			File:              p.File,
			RequestedVersions: make(map[Key]version.Version),
			Family:            root.GroupArtifact(),
		}
	}

	// Second pass: edges, creating external nodes as they are met
	for _, p := range m.Poms() {
		node := g.Nodes[p.GroupArtifact()]
		if p.Parent != nil {
			ga := p.Parent.GroupArtifact()
			node.Parent = &ga
			if g.link(node, *p.Parent) {
				node.Dependencies = append(node.Dependencies, ga)
			}
		}
		var deps []Key
		for _, d := range p.Dependencies {
			if d.GroupArtifact() == p.GroupArtifact() {
				continue
			}
			if g.link(node, d) {
				deps = append(deps, d.GroupArtifact())
			}
		}
		slices.SortFunc(deps, Key.Compare)
		node.Dependencies = append(node.Dependencies, deps...)
	}

	// Third pass: deterministic reverse edges and roots
	for key, node := range g.Nodes {
		slices.SortFunc(node.Dependents, Key.Compare)
		if !node.External && len(node.Dependents) == 0 {
			g.Roots = append(g.Roots, key)
		}
	}
	slices.SortFunc(g.Roots, Key.Compare)

	return g
}

// link records an edge from node to d. It reports false when the edge
// already exists.
func (g *Graph) link(node *Node, d coord.Dependency) bool {
	target, ok := g.Nodes[d.GroupArtifact()]
	if !ok {
		target = &Node{
			Key:               d.GroupArtifact(),
			External:          true,
			RequestedVersions: make(map[Key]version.Version),
			Family:            d.GroupArtifact(),
		}
		g.Nodes[target.Key] = target
	}

	if _, ref := d.Version().PropertyRef(); target.External && !ref {
		if target.Version.IsZero() || version.Compare(d.Version(), target.Version) > 0 {
			target.Version = d.Version()
		}
	}

	if _, seen := target.RequestedVersions[node.Key]; seen {
		return false
	}
	target.RequestedVersions[node.Key] = d.Version()
	target.Dependents = append(target.Dependents, node.Key)
	return true
}

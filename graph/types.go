package graph

import (
	"strings"

	"github.com/albertocavalcante/go-versionator/coord"
	"github.com/albertocavalcante/go-versionator/version"
)

// Key identifies a node.
type Key = coord.GroupArtifact

// Graph is the reference graph of a project.
// It supports bidirectional traversal (dependencies and dependents).
type Graph struct {
	// Roots are the poms no other pom refers to, sorted.
	Roots []Key

	// Nodes contains every pom and every referenced coordinate.
	Nodes map[Key]*Node
}

// Node is a pom or an external coordinate.
type Node struct {
	// Key uniquely identifies this node.
	Key Key

	// Version is the pom's own version. For external nodes it is the
	// highest referenced version.
	Version version.Version

	// File is the pom's manifest path, empty for external nodes.
	File string

	// External is true when no pom of the project declares Key.
	External bool

	// Parent is the group artifact of the pom's parent, if any.
	Parent *Key

	// Dependencies are the coordinates this pom refers to, parent first,
	// then sorted.
	Dependencies []Key

	// Dependents are poms that directly refer to this node, sorted.
	Dependents []Key

	// RequestedVersions records the version each dependent refers to.
	RequestedVersions map[Key]version.Version

	// Family is the group artifact of the pom's version family root.
	Family Key
}

// Gav returns the node's coordinate at its version.
func (n *Node) Gav() coord.Gav {
	return coord.NewGav(n.Key, n.Version)
}

// Explanation describes how a change to one coordinate travels through the
// project.
type Explanation struct {
	// Node is the node being explained.
	Node *Node

	// Family lists the poms that move with the node's version, sorted.
	Family []Key

	// Requests lists who refers to the node and at which version.
	Requests []Request

	// Chains shows all paths from a root to this node.
	Chains []Chain
}

// Request is one reference to a node.
type Request struct {
	From    Key
	Version version.Version
}

// Chain is a path of references from a root to a node.
type Chain struct {
	Path []Key
}

// String returns a human-readable representation of the chain.
func (c Chain) String() string {
	parts := make([]string, len(c.Path))
	for i, k := range c.Path {
		parts[i] = k.String()
	}
	return strings.Join(parts, " -> ")
}

// Stats provides statistics about the graph.
type Stats struct {
	// Poms is the number of poms in the project.
	Poms int

	// External is the number of referenced coordinates outside the project.
	External int

	// Edges is the number of references.
	Edges int

	// Families is the number of version families.
	Families int

	// Snapshots is the number of poms at a snapshot version.
	Snapshots int

	// MaxDepth is the longest reference chain from a root.
	MaxDepth int
}

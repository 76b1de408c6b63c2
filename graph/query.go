package graph

import (
	"fmt"
	"slices"
)

// Get returns the node for a key, or nil if not found.
func (g *Graph) Get(key Key) *Node {
	return g.Nodes[key]
}

// Contains returns true if the graph contains the given key.
func (g *Graph) Contains(key Key) bool {
	_, ok := g.Nodes[key]
	return ok
}

// Keys returns every node key, sorted.
func (g *Graph) Keys() []Key {
	keys := make([]Key, 0, len(g.Nodes))
	for key := range g.Nodes {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, Key.Compare)
	return keys
}

// DirectDeps returns the coordinates a pom directly refers to.
func (g *Graph) DirectDeps(key Key) []Key {
	if node := g.Nodes[key]; node != nil {
		return node.Dependencies
	}
	return nil
}

// DirectDependents returns the poms that directly refer to key.
func (g *Graph) DirectDependents(key Key) []Key {
	if node := g.Nodes[key]; node != nil {
		return node.Dependents
	}
	return nil
}

// TransitiveDeps returns all transitive dependencies of a node.
// The result is in breadth-first order.
func (g *Graph) TransitiveDeps(key Key) []Key {
	return g.walk(key, func(n *Node) []Key { return n.Dependencies })
}

// TransitiveDependents returns all poms that transitively refer to key.
// The result is in breadth-first order (closest dependents first).
func (g *Graph) TransitiveDependents(key Key) []Key {
	return g.walk(key, func(n *Node) []Key { return n.Dependents })
}

func (g *Graph) walk(key Key, next func(*Node) []Key) []Key {
	result := make([]Key, 0)
	visited := map[Key]bool{key: true}
	queue := []Key{key}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Nodes[current]
		if node == nil {
			continue
		}
		for _, k := range next(node) {
			if !visited[k] {
				visited[k] = true
				result = append(result, k)
				queue = append(queue, k)
			}
		}
	}
	return result
}

// Path finds the shortest reference path from one node to another.
// Returns nil if no path exists.
func (g *Graph) Path(from, to Key) []Key {
	if from == to {
		return []Key{from}
	}

	type queueItem struct {
		key  Key
		path []Key
	}

	visited := map[Key]bool{from: true}
	queue := []queueItem{{key: from, path: []Key{from}}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Nodes[current.key]
		if node == nil {
			continue
		}
		for _, dep := range node.Dependencies {
			if dep == to {
				return append(slices.Clone(current.path), dep)
			}
			if !visited[dep] {
				visited[dep] = true
				queue = append(queue, queueItem{key: dep, path: append(slices.Clone(current.path), dep)})
			}
		}
	}
	return nil
}

// AllPaths finds all reference paths from one node to another.
// This can be expensive for large graphs with many paths.
func (g *Graph) AllPaths(from, to Key) [][]Key {
	var result [][]Key
	g.findAllPaths(from, to, []Key{from}, make(map[Key]bool), &result)
	return result
}

func (g *Graph) findAllPaths(current, target Key, path []Key, visited map[Key]bool, result *[][]Key) {
	if current == target {
		*result = append(*result, slices.Clone(path))
		return
	}

	visited[current] = true
	defer func() { visited[current] = false }()

	node := g.Nodes[current]
	if node == nil {
		return
	}
	for _, dep := range node.Dependencies {
		if !visited[dep] {
			g.findAllPaths(dep, target, append(path, dep), visited, result)
		}
	}
}

// Explain describes where key is referenced and which poms share its
// version.
func (g *Graph) Explain(key Key) (*Explanation, error) {
	node := g.Nodes[key]
	if node == nil {
		return nil, fmt.Errorf("%s not found in graph", key)
	}

	e := &Explanation{Node: node}
	if !node.External {
		for _, k := range g.Keys() {
			if n := g.Nodes[k]; !n.External && n.Family == node.Family {
				e.Family = append(e.Family, k)
			}
		}
	}
	for _, from := range node.Dependents {
		e.Requests = append(e.Requests, Request{From: from, Version: node.RequestedVersions[from]})
	}
	for _, root := range g.Roots {
		for _, path := range g.AllPaths(root, key) {
			e.Chains = append(e.Chains, Chain{Path: path})
		}
	}
	return e, nil
}

// Stats returns statistics about the graph.
func (g *Graph) Stats() Stats {
	var stats Stats
	families := make(map[Key]bool)
	for _, node := range g.Nodes {
		stats.Edges += len(node.Dependencies)
		if node.External {
			stats.External++
			continue
		}
		stats.Poms++
		families[node.Family] = true
		if node.Version.IsSnapshot() {
			stats.Snapshots++
		}
	}
	stats.Families = len(families)

	for _, root := range g.Roots {
		stats.MaxDepth = max(stats.MaxDepth, g.depth(root))
	}
	return stats
}

func (g *Graph) depth(root Key) int {
	depths := make(map[Key]int)
	onPath := make(map[Key]bool)
	var maxDepth int

	var dfs func(key Key, depth int)
	dfs = func(key Key, depth int) {
		// A node already on the current path closes a cycle.
		if onPath[key] {
			return
		}
		if existing, ok := depths[key]; ok && existing >= depth {
			return
		}
		depths[key] = depth
		maxDepth = max(maxDepth, depth)

		node := g.Nodes[key]
		if node == nil {
			return
		}
		onPath[key] = true
		for _, dep := range node.Dependencies {
			dfs(dep, depth+1)
		}
		delete(onPath, key)
	}

	dfs(root, 0)
	return maxDepth
}

// Leaves returns all nodes with no dependencies, sorted.
func (g *Graph) Leaves() []Key {
	var leaves []Key
	for _, key := range g.Keys() {
		if len(g.Nodes[key].Dependencies) == 0 {
			leaves = append(leaves, key)
		}
	}
	return leaves
}

// FindCycles returns every reference cycle, each starting at the node where
// it was first entered. Poms that refer to each other through dependencies
// form cycles; parent chains never do.
func (g *Graph) FindCycles() [][]Key {
	var cycles [][]Key
	visited := make(map[Key]bool)
	recStack := make(map[Key]bool)
	path := make([]Key, 0)

	var findCycles func(key Key)
	findCycles = func(key Key) {
		visited[key] = true
		recStack[key] = true
		path = append(path, key)

		if node := g.Nodes[key]; node != nil {
			for _, dep := range node.Dependencies {
				if !visited[dep] {
					findCycles(dep)
				} else if recStack[dep] {
					if start := slices.Index(path, dep); start >= 0 {
						cycles = append(cycles, slices.Clone(path[start:]))
					}
				}
			}
		}

		path = path[:len(path)-1]
		recStack[key] = false
	}

	for _, key := range g.Keys() {
		if !visited[key] {
			findCycles(key)
		}
	}
	return cycles
}

// HasCycles returns true if the graph contains cycles.
func (g *Graph) HasCycles() bool {
	return len(g.FindCycles()) > 0
}

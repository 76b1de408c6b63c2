package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

const separatorWidth = 60 // Width of separator lines in text output

// JSONGraph is the serialized form of a graph, shared by JSON and YAML output.
type JSONGraph struct {
	Roots  []string   `json:"roots" yaml:"roots"`
	Nodes  []JSONNode `json:"nodes" yaml:"nodes"`
	Cycles [][]string `json:"cycles,omitempty" yaml:"cycles,omitempty"`
}

// JSONNode is the serialized form of a node.
type JSONNode struct {
	Key          string   `json:"key" yaml:"key"`
	Version      string   `json:"version,omitempty" yaml:"version,omitempty"`
	File         string   `json:"file,omitempty" yaml:"file,omitempty"`
	External     bool     `json:"external,omitempty" yaml:"external,omitempty"`
	Parent       string   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Family       string   `json:"family,omitempty" yaml:"family,omitempty"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Dependents   []string `json:"dependents,omitempty" yaml:"dependents,omitempty"`
}

// ToJSON outputs the graph as an indented node list sorted by key.
func (g *Graph) ToJSON() ([]byte, error) {
	return json.MarshalIndent(g.serialize(), "", "  ")
}

// ToYAML outputs the same document as ToJSON in YAML.
func (g *Graph) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(g.serialize()); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Graph) serialize() JSONGraph {
	out := JSONGraph{Roots: keyStrings(g.Roots), Nodes: make([]JSONNode, 0, len(g.Nodes))}
	for _, key := range g.Keys() {
		node := g.Nodes[key]
		jn := JSONNode{
			Key:          key.String(),
			File:         node.File,
			External:     node.External,
			Dependencies: keyStrings(node.Dependencies),
			Dependents:   keyStrings(node.Dependents),
		}
		if !node.Version.IsZero() {
			jn.Version = node.Version.String()
		}
		if node.Parent != nil {
			jn.Parent = node.Parent.String()
		}
		if !node.External && node.Family != key {
			jn.Family = node.Family.String()
		}
		out.Nodes = append(out.Nodes, jn)
	}
	for _, cycle := range g.FindCycles() {
		out.Cycles = append(out.Cycles, keyStrings(cycle))
	}
	return out
}

func keyStrings(keys []Key) []string {
	if len(keys) == 0 {
		return nil
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

// ToDOT outputs the graph in Graphviz DOT format. Parent edges are dashed
// and external nodes are drawn as ellipses.
func (g *Graph) ToDOT() string {
	var buf bytes.Buffer

	buf.WriteString("digraph poms {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box];\n\n")

	for _, key := range g.Keys() {
		node := g.Nodes[key]
		label := fmt.Sprintf("%s\\n%s", key, node.Version)
		attrs := fmt.Sprintf(`label="%s"`, label) //nolint:gocritic // DOT format requires this quote style
		if node.External {
			attrs += ", shape=ellipse, style=dotted"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", key.String(), attrs)
	}

	buf.WriteString("\n")

	for _, key := range g.Keys() {
		node := g.Nodes[key]
		for _, dep := range node.Dependencies {
			style := ""
			if node.Parent != nil && *node.Parent == dep {
				style = " [style=dashed]"
			}
			fmt.Fprintf(&buf, "  %q -> %q%s;\n", key.String(), dep.String(), style)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ToText outputs a human-readable text representation of the graph.
func (g *Graph) ToText() string {
	var buf bytes.Buffer

	buf.WriteString("Reference Graph\n")
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	stats := g.Stats()
	fmt.Fprintf(&buf, "Poms: %d\n", stats.Poms)
	fmt.Fprintf(&buf, "Version families: %d\n", stats.Families)
	fmt.Fprintf(&buf, "Snapshots: %d\n", stats.Snapshots)
	fmt.Fprintf(&buf, "External coordinates: %d\n", stats.External)
	fmt.Fprintf(&buf, "Max depth: %d\n", stats.MaxDepth)
	buf.WriteString("\n")

	buf.WriteString("Reference Tree:\n")
	for _, root := range g.Roots {
		g.printTree(&buf, root, "", true, make(map[Key]bool))
	}
	return buf.String()
}

func (g *Graph) printTree(buf *bytes.Buffer, key Key, prefix string, isLast bool, visited map[Key]bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	node := g.Nodes[key]
	label := key.String()
	if node != nil && !node.Version.IsZero() {
		label += ":" + node.Version.String()
	}
	if prefix == "" && len(visited) == 0 {
		buf.WriteString(label)
	} else {
		buf.WriteString(prefix + connector + label)
	}

	if node != nil && node.External {
		buf.WriteString(" (external)")
	}
	if visited[key] {
		buf.WriteString(" (circular)\n")
		return
	}
	buf.WriteString("\n")

	visited[key] = true
	defer delete(visited, key)

	if node == nil {
		return
	}

	childPrefix := prefix
	if len(visited) > 1 {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}
	for i, dep := range node.Dependencies {
		g.printTree(buf, dep, childPrefix, i == len(node.Dependencies)-1, visited)
	}
}

// ToExplainText outputs a human-readable explanation for a coordinate.
func (g *Graph) ToExplainText(key Key) (string, error) {
	e, err := g.Explain(key)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Explanation for: %s\n", e.Node.Gav())
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	if e.Node.External {
		buf.WriteString("External coordinate (not part of the project)\n")
	} else {
		fmt.Fprintf(&buf, "Declared in: %s\n", e.Node.File)
		fmt.Fprintf(&buf, "Version family (root %s):\n", e.Node.Family)
		for _, k := range e.Family {
			fmt.Fprintf(&buf, "  %s\n", k)
		}
	}

	if len(e.Requests) > 0 {
		buf.WriteString("\nReferenced by:\n")
		for _, r := range e.Requests {
			fmt.Fprintf(&buf, "  %s at %s\n", r.From, r.Version)
		}
	}

	if len(e.Chains) > 0 {
		buf.WriteString("\nReference chains (paths from roots):\n")
		for i, chain := range e.Chains {
			fmt.Fprintf(&buf, "  %d. %s\n", i+1, chain)
		}
	}
	return buf.String(), nil
}

// Package graph provides a reference graph over the poms of a project and
// query capabilities on top of it.
//
// Every pom is a node keyed by its group artifact. Parent and dependency
// references become edges from the referring pom to the referenced
// coordinate; coordinates outside the project become leaf nodes. This lets
// users:
//
//   - Visualize which modules refer to which
//   - Explain which poms a version change would reach
//   - Find reference paths between modules
//   - Query direct and transitive dependencies and dependents
//
// # Building a Graph
//
//	model, _ := versionator.NewModel(poms)
//	g := graph.Build(model)
//
// # Querying the Graph
//
//	// Poms that refer to core, directly or not
//	dependents := g.TransitiveDependents(coord.MustGroupArtifact("com.example:core"))
//
//	// Where a coordinate is referenced and at which versions
//	explanation, _ := g.Explain(coord.MustGroupArtifact("com.example:core"))
//
//	// Find path between modules
//	path := g.Path(from, to)
//
// # Output Formats
//
// The graph can be serialized to multiple formats:
//
//	// JSON or YAML node list
//	jsonBytes, _ := g.ToJSON()
//	yamlBytes, _ := g.ToYAML()
//
//	// Graphviz DOT format for visualization
//	dotString := g.ToDOT()
//
//	// Human-readable text
//	textString := g.ToText()
package graph

package graph

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.yaml.in/yaml/v3"

	versionator "github.com/albertocavalcante/go-versionator"
	"github.com/albertocavalcante/go-versionator/coord"
)

var (
	parent = coord.MustGroupArtifact("com.x:parent")
	core   = coord.MustGroupArtifact("com.x:core")
	app    = coord.MustGroupArtifact("com.x:app")
	junit  = coord.MustGroupArtifact("junit:junit")
)

// keyOpt lets cmp compare Keys, whose coordinate fields are unexported.
var keyOpt = cmpopts.EquateComparable(coord.GroupID{}, coord.ArtifactID{})

func dep(gav string) coord.Dependency {
	return coord.NewDependency(coord.MustGav(gav))
}

func ptr[T any](v T) *T { return &v }

// createTestGraph builds the graph of:
//
//	com.x:parent:1.0-SNAPSHOT
//	com.x:core (inherits 1.0-SNAPSHOT) -> junit:junit:4.13
//	com.x:app:2.0 -> com.x:core:1.0-SNAPSHOT, junit:junit:4.12
func createTestGraph(t *testing.T) *Graph {
	t.Helper()
	m, err := versionator.NewModel([]versionator.Pom{
		{
			Gav:     coord.MustGav("com.x:parent:1.0-SNAPSHOT"),
			File:    "pom.xml",
			Modules: []string{"core", "app"},
		},
		{
			Gav:           coord.MustGav("com.x:core:1.0-SNAPSHOT"),
			File:          "core/pom.xml",
			VersionSource: versionator.InheritedFromParent,
			Parent:        ptr(dep("com.x:parent:1.0-SNAPSHOT")),
			Dependencies:  []coord.Dependency{dep("junit:junit:4.13")},
		},
		{
			Gav:    coord.MustGav("com.x:app:2.0"),
			File:   "app/pom.xml",
			Parent: ptr(dep("com.x:parent:1.0-SNAPSHOT")),
			Dependencies: []coord.Dependency{
				dep("com.x:core:1.0-SNAPSHOT"),
				dep("junit:junit:4.12"),
			},
		},
	})
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return Build(m)
}

func TestBuild(t *testing.T) {
	g := createTestGraph(t)

	if diff := cmp.Diff([]Key{app}, g.Roots, keyOpt); diff != "" {
		t.Errorf("Roots mismatch (-want +got):\n%s", diff)
	}
	if len(g.Nodes) != 4 {
		t.Errorf("len(Nodes) = %d, want 4", len(g.Nodes))
	}

	ext := g.Get(junit)
	if ext == nil || !ext.External {
		t.Fatalf("junit node = %+v, want external", ext)
	}
	if got := ext.Version.String(); got != "4.13" {
		t.Errorf("external version = %s, want highest referenced 4.13", got)
	}
	if got := ext.RequestedVersions[app].String(); got != "4.12" {
		t.Errorf("app requests junit at %s, want 4.12", got)
	}

	n := g.Get(core)
	if n.Family != parent {
		t.Errorf("core family = %s, want %s", n.Family, parent)
	}
	if n.Parent == nil || *n.Parent != parent {
		t.Errorf("core parent = %v, want %s", n.Parent, parent)
	}
}

func TestDirectQueries(t *testing.T) {
	g := createTestGraph(t)

	tests := []struct {
		name string
		got  []Key
		want []Key
	}{
		{"app deps parent first", g.DirectDeps(app), []Key{parent, core, junit}},
		{"core deps", g.DirectDeps(core), []Key{parent, junit}},
		{"parent dependents", g.DirectDependents(parent), []Key{app, core}},
		{"unknown", g.DirectDeps(coord.MustGroupArtifact("a:b")), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got, keyOpt); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTransitiveQueries(t *testing.T) {
	g := createTestGraph(t)

	if diff := cmp.Diff([]Key{parent, core, junit}, g.TransitiveDeps(app), keyOpt); diff != "" {
		t.Errorf("TransitiveDeps(app) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Key{app, core}, g.TransitiveDependents(parent), keyOpt); diff != "" {
		t.Errorf("TransitiveDependents(parent) mismatch (-want +got):\n%s", diff)
	}
	if got := g.TransitiveDependents(app); len(got) != 0 {
		t.Errorf("TransitiveDependents(app) = %v, want none", got)
	}
}

func TestPath(t *testing.T) {
	g := createTestGraph(t)

	tests := []struct {
		name     string
		from, to Key
		want     []Key
	}{
		{"direct", app, parent, []Key{app, parent}},
		{"self", core, core, []Key{core}},
		{"two hops", app, junit, []Key{app, junit}},
		{"no path", core, app, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, g.Path(tt.from, tt.to), keyOpt); diff != "" {
				t.Errorf("Path() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if got := g.AllPaths(app, parent); len(got) != 2 {
		t.Errorf("AllPaths(app, parent) = %v, want 2 paths", got)
	}
}

func TestExplain(t *testing.T) {
	g := createTestGraph(t)

	e, err := g.Explain(core)
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	if diff := cmp.Diff([]Key{core, parent}, e.Family, keyOpt); diff != "" {
		t.Errorf("Family mismatch (-want +got):\n%s", diff)
	}
	if len(e.Requests) != 1 || e.Requests[0].From != app || e.Requests[0].Version.String() != "1.0-SNAPSHOT" {
		t.Errorf("Requests = %v, want app at 1.0-SNAPSHOT", e.Requests)
	}
	if len(e.Chains) != 1 || e.Chains[0].String() != "com.x:app -> com.x:core" {
		t.Errorf("Chains = %v", e.Chains)
	}

	if _, err := g.Explain(coord.MustGroupArtifact("a:b")); err == nil {
		t.Error("Explain(unknown) expected error")
	}
}

func TestStats(t *testing.T) {
	g := createTestGraph(t)
	want := Stats{Poms: 3, External: 1, Edges: 5, Families: 2, Snapshots: 2, MaxDepth: 2}
	if diff := cmp.Diff(want, g.Stats()); diff != "" {
		t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
	}
}

func TestFindCycles(t *testing.T) {
	g := createTestGraph(t)
	if g.HasCycles() {
		t.Errorf("FindCycles() = %v, want none", g.FindCycles())
	}

	m := versionator.MustModel(
		versionator.Pom{Gav: coord.MustGav("com.x:a:1.0"), Dependencies: []coord.Dependency{dep("com.x:b:1.0")}},
		versionator.Pom{Gav: coord.MustGav("com.x:b:1.0"), Dependencies: []coord.Dependency{dep("com.x:a:1.0")}},
	)
	cycles := Build(m).FindCycles()
	if len(cycles) != 1 || len(cycles[0]) != 2 {
		t.Errorf("FindCycles() = %v, want one cycle of two", cycles)
	}
}

func TestToJSON(t *testing.T) {
	g := createTestGraph(t)
	data, err := g.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var out JSONGraph
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if diff := cmp.Diff([]string{"com.x:app"}, out.Roots); diff != "" {
		t.Errorf("roots mismatch (-want +got):\n%s", diff)
	}
	var keys []string
	for _, n := range out.Nodes {
		keys = append(keys, n.Key)
	}
	if diff := cmp.Diff([]string{"com.x:app", "com.x:core", "com.x:parent", "junit:junit"}, keys); diff != "" {
		t.Errorf("node keys mismatch (-want +got):\n%s", diff)
	}
	if out.Nodes[1].Family != "com.x:parent" {
		t.Errorf("core family = %q", out.Nodes[1].Family)
	}
}

func TestToYAML(t *testing.T) {
	g := createTestGraph(t)
	data, err := g.ToYAML()
	if err != nil {
		t.Fatalf("ToYAML() error = %v", err)
	}

	var out JSONGraph
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if diff := cmp.Diff([]string{"com.x:app"}, out.Roots); diff != "" {
		t.Errorf("roots mismatch (-want +got):\n%s", diff)
	}
	if len(out.Nodes) != 4 || !out.Nodes[3].External {
		t.Errorf("nodes = %+v, want junit:junit last and external", out.Nodes)
	}
	if !strings.Contains(string(data), "external: true") {
		t.Errorf("ToYAML() missing external flag:\n%s", data)
	}
}

func TestToDOT(t *testing.T) {
	dot := createTestGraph(t).ToDOT()
	for _, want := range []string{
		"digraph poms {",
		`"com.x:core" -> "com.x:parent" [style=dashed];`,
		`"com.x:app" -> "com.x:core";`,
		"shape=ellipse",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
}

func TestToText(t *testing.T) {
	text := createTestGraph(t).ToText()
	for _, want := range []string{
		"Poms: 3",
		"Version families: 2",
		"com.x:app:2.0\n",
		"├── com.x:parent:1.0-SNAPSHOT\n",
		"│   ├── com.x:parent:1.0-SNAPSHOT\n",
		"└── junit:junit:4.13 (external)\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("ToText() missing %q:\n%s", want, text)
		}
	}
}

func TestToExplainText(t *testing.T) {
	text, err := createTestGraph(t).ToExplainText(junit)
	if err != nil {
		t.Fatalf("ToExplainText() error = %v", err)
	}
	for _, want := range []string{
		"Explanation for: junit:junit:4.13",
		"External coordinate",
		"com.x:app at 4.12",
		"com.x:core at 4.13",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("ToExplainText() missing %q:\n%s", want, text)
		}
	}
}

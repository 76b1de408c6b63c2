package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertocavalcante/go-versionator/coord"
	"github.com/albertocavalcante/go-versionator/pomxml"
)

const rootPom = `<project>
  <groupId>com.x</groupId>
  <artifactId>parent</artifactId>
  <version>1.0-SNAPSHOT</version>
  <modules>
    <module>core</module>
    <module>app</module>
  </modules>
</project>
`

const corePom = `<project>
  <parent>
    <groupId>com.x</groupId>
    <artifactId>parent</artifactId>
    <version>1.0-SNAPSHOT</version>
  </parent>
  <artifactId>core</artifactId>
</project>
`

const appPom = `<project>
  <parent>
    <groupId>com.x</groupId>
    <artifactId>parent</artifactId>
    <version>1.0-SNAPSHOT</version>
  </parent>
  <artifactId>app</artifactId>
  <version>2.0</version>
  <dependencies>
    <dependency>
      <groupId>com.x</groupId>
      <artifactId>core</artifactId>
      <version>1.0-SNAPSHOT</version>
    </dependency>
  </dependencies>
</project>
`

const moduleBazel = `maven = use_extension("@rules_jvm_external//:extensions.bzl", "maven")
maven.install(
    artifacts = [
        "com.x:core:1.0-SNAPSHOT",
        "junit:junit:4.13.2",
    ],
)
`

func writeProject(t *testing.T, withModule bool) string {
	t.Helper()
	files := map[string]string{
		"pom.xml":      rootPom,
		"core/pom.xml": corePom,
		"app/pom.xml":  appPom,
	}
	if withModule {
		files["MODULE.bazel"] = moduleBazel
	}
	return writeFiles(t, files)
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeProject(t, true)

	p, err := Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Model.Len())
	assert.Equal(t, filepath.Join(p.Dir, "MODULE.bazel"), p.ModuleFile)

	core, ok := p.Model.Lookup(coord.MustGroupArtifact("com.x:core"))
	require.True(t, ok)
	assert.Equal(t, "com.x:core:1.0-SNAPSHOT", core.Gav.String())
	assert.Equal(t, "core/pom.xml", p.Rel(core.File))
}

func TestLoadWithoutModuleFile(t *testing.T) {
	p, err := Load(context.Background(), writeProject(t, false))
	require.NoError(t, err)
	assert.Empty(t, p.ModuleFile)
}

func TestLoadMissingRoot(t *testing.T) {
	_, err := Load(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestPlanAndWrite(t *testing.T) {
	dir := writeProject(t, true)
	p, err := Load(context.Background(), dir)
	require.NoError(t, err)

	result, err := p.Model.Apply([]coord.Gav{coord.MustGav("com.x:parent:1.1-SNAPSHOT")})
	require.NoError(t, err)

	edits, err := p.Plan(result)
	require.NoError(t, err)

	var names []string
	for _, e := range edits {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"app/pom.xml", "core/pom.xml", "pom.xml", "MODULE.bazel"}, names)

	app := string(edits[0].After)
	assert.Contains(t, app, "<version>2.0.1-SNAPSHOT</version>")
	assert.Equal(t, 2, strings.Count(app, "<version>1.1-SNAPSHOT</version>"))
	assert.Contains(t, string(edits[3].After), `"com.x:core:1.1-SNAPSHOT"`)
	assert.Contains(t, string(edits[3].After), `"junit:junit:4.13.2"`)

	diff := edits[2].UnifiedDiff()
	assert.Contains(t, diff, "--- a/pom.xml")
	assert.Contains(t, diff, "-  <version>1.0-SNAPSHOT</version>")
	assert.Contains(t, diff, "+  <version>1.1-SNAPSHOT</version>")

	require.NoError(t, Write(edits))

	info, err := os.Stat(filepath.Join(dir, "app", "pom.xml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	reloaded, err := Load(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, reloaded.Model.Equal(result), "reloaded model should match the applied result")

	again, err := reloaded.Plan(reloaded.Model)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestWriteRejectsStaleEdit(t *testing.T) {
	dir := writeProject(t, false)
	p, err := Load(context.Background(), dir)
	require.NoError(t, err)

	result, err := p.Model.Apply([]coord.Gav{coord.MustGav("com.x:parent:1.1-SNAPSHOT")})
	require.NoError(t, err)
	edits, err := p.Plan(result)
	require.NoError(t, err)
	require.NotEmpty(t, edits)

	require.NoError(t, os.WriteFile(edits[0].Path, []byte("<project/>"), 0o644))
	err = Write(edits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changed since it was read")
}

// bootProject has a module inheriting its version from a published parent
// that is not part of the project.
func bootProject(t *testing.T) string {
	t.Helper()
	return writeFiles(t, map[string]string{
		"pom.xml": `<project>
  <groupId>com.x</groupId>
  <artifactId>agg</artifactId>
  <version>1.0-SNAPSHOT</version>
  <modules>
    <module>lib</module>
    <module>svc</module>
    <module>app</module>
  </modules>
</project>
`,
		"lib/pom.xml": `<project>
  <groupId>com.x</groupId>
  <artifactId>lib</artifactId>
  <version>1.0</version>
</project>
`,
		"svc/pom.xml": `<project>
  <parent>
    <groupId>org.boot</groupId>
    <artifactId>boot-parent</artifactId>
    <version>3.0.5</version>
    <relativePath/>
  </parent>
  <groupId>com.x</groupId>
  <artifactId>svc</artifactId>
  <dependencies>
    <dependency>
      <groupId>com.x</groupId>
      <artifactId>lib</artifactId>
      <version>1.0</version>
    </dependency>
  </dependencies>
</project>
`,
		"app/pom.xml": `<project>
  <groupId>com.x</groupId>
  <artifactId>app</artifactId>
  <version>5.0-SNAPSHOT</version>
  <dependencies>
    <dependency>
      <groupId>com.x</groupId>
      <artifactId>svc</artifactId>
      <version>3.0.5</version>
    </dependency>
  </dependencies>
</project>
`,
	})
}

func TestPlanExternalParentModule(t *testing.T) {
	tests := []struct {
		name  string
		gav   string
		files []string
		svc   string
	}{
		{name: "dependency change keeps inherited version", gav: "com.x:lib:1.1", files: []string{"lib/pom.xml", "svc/pom.xml"}, svc: "3.0.5"},
		{name: "parent change moves inherited version", gav: "org.boot:boot-parent:3.1.2", files: []string{"app/pom.xml", "svc/pom.xml"}, svc: "3.1.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := bootProject(t)
			p, err := Load(context.Background(), dir)
			require.NoError(t, err)

			result, err := p.Model.Apply([]coord.Gav{coord.MustGav(tt.gav)})
			require.NoError(t, err)
			svc, ok := result.Lookup(coord.MustGroupArtifact("com.x:svc"))
			require.True(t, ok)
			assert.Equal(t, tt.svc, svc.Gav.Version.String())

			edits, err := p.Plan(result)
			require.NoError(t, err)
			var names []string
			for _, e := range edits {
				names = append(names, e.Name)
			}
			assert.ElementsMatch(t, tt.files, names)

			require.NoError(t, Write(edits))
			reloaded, err := Load(context.Background(), dir)
			require.NoError(t, err)
			assert.True(t, reloaded.Model.Equal(result), "reloaded model should match the applied result")
		})
	}
}

func TestPlanRejectsInheritedVersionChange(t *testing.T) {
	dir := bootProject(t)
	p, err := Load(context.Background(), dir)
	require.NoError(t, err)

	result, err := p.Model.Apply([]coord.Gav{coord.MustGav("com.x:svc:4.0")})
	require.NoError(t, err)

	edits, err := p.Plan(result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pomxml.ErrUnpatchable), "error = %v", err)
	assert.Contains(t, err.Error(), "com.x:svc inherits 3.0.5 from org.boot:boot-parent")
	assert.Empty(t, edits)

	data, err := os.ReadFile(filepath.Join(dir, "app", "pom.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<version>3.0.5</version>")
}

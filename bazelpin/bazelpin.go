// Package bazelpin finds and rewrites Maven coordinates pinned in a Bazel
// MODULE.bazel file for rules_jvm_external.
//
// Two forms are recognised inside calls such as maven.install and
// maven.artifact:
//
//	maven.install(artifacts = ["com.example:core:1.0", "com.example:core:jar:tests:1.0"])
//	maven.artifact(group = "com.example", artifact = "core", version = "1.0")
//
// Rewrites splice the new version into the original bytes, so formatting and
// comments are preserved.
package bazelpin

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/bazelbuild/buildtools/build"

	"github.com/albertocavalcante/go-versionator/coord"
	"github.com/albertocavalcante/go-versionator/internal/buildutil"
	"github.com/albertocavalcante/go-versionator/version"
)

// FileName is the Bazel module file looked up at the project root.
const FileName = "MODULE.bazel"

// coordinatePattern matches group:artifact[:packaging[:classifier]]:version.
var coordinatePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+(:[A-Za-z0-9_.\-]+){2,4}$`)

// Pin is one Maven coordinate found in a module file.
type Pin struct {
	coord.Gav

	// Line is the 1-based line of the version literal.
	Line int

	start, end int
}

func (p Pin) String() string {
	return fmt.Sprintf("%d: %s", p.Line, p.Gav)
}

// Change moves every pin of GroupArtifact at version From to version To.
type Change struct {
	GroupArtifact coord.GroupArtifact
	From          version.Version
	To            version.Version
}

// Find parses a module file and returns its Maven pins in file order.
func Find(filename string, data []byte) ([]Pin, error) {
	f, err := build.ParseModule(filename, data)
	if err != nil {
		return nil, err
	}

	var pins []Pin
	build.Walk(f, func(x build.Expr, _ []build.Expr) {
		call, ok := x.(*build.CallExpr)
		if !ok {
			return
		}
		switch name := buildutil.FuncName(call); {
		case strings.HasSuffix(name, "artifact"):
			if p, ok := artifactPin(data, call); ok {
				pins = append(pins, p)
			}
		default:
			for _, str := range buildutil.StringExprs(call, "artifacts") {
				if p, ok := coordinatePin(data, str); ok {
					pins = append(pins, p)
				}
			}
		}
	})

	slices.SortFunc(pins, func(a, b Pin) int { return a.start - b.start })
	return pins, nil
}

// Rewrite applies changes to a module file. Pins whose version differs from
// a change's From are left alone. data is returned unchanged when nothing
// matches.
func Rewrite(filename string, data []byte, changes []Change) ([]byte, error) {
	pins, err := Find(filename, data)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(data))
	prev := 0
	for _, p := range pins {
		for _, c := range changes {
			if p.GroupArtifact != c.GroupArtifact || p.Version != c.From {
				continue
			}
			out = append(out, data[prev:p.start]...)
			out = append(out, c.To.String()...)
			prev = p.end
			break
		}
	}
	if prev == 0 {
		return data, nil
	}
	return append(out, data[prev:]...), nil
}

// coordinatePin reads a "g:a[:packaging[:classifier]]:v" literal.
func coordinatePin(data []byte, str *build.StringExpr) (Pin, bool) {
	if !coordinatePattern.MatchString(str.Value) {
		return Pin{}, false
	}
	parts := strings.Split(str.Value, ":")
	_, end, ok := valueSpan(data, str)
	if !ok {
		return Pin{}, false
	}
	v := parts[len(parts)-1]
	return pin(parts[0], parts[1], v, str, end-len(v), end)
}

// artifactPin reads a maven.artifact(group=, artifact=, version=) call.
func artifactPin(data []byte, call *build.CallExpr) (Pin, bool) {
	str := buildutil.StringExpr(call, "version")
	if str == nil {
		return Pin{}, false
	}
	start, end, ok := valueSpan(data, str)
	if !ok {
		return Pin{}, false
	}
	return pin(buildutil.String(call, "group"), buildutil.String(call, "artifact"), str.Value, str, start, end)
}

func pin(groupID, artifactID, versionText string, str *build.StringExpr, start, end int) (Pin, bool) {
	ga, err := coord.NewGroupArtifact(groupID, artifactID)
	if err != nil {
		return Pin{}, false
	}
	v, err := version.Parse(versionText)
	if err != nil {
		return Pin{}, false
	}
	return Pin{Gav: coord.NewGav(ga, v), Line: str.Start.Line, start: start, end: end}, true
}

// valueSpan returns the byte range of a literal's value between its quotes.
// Literals with escapes, prefixes or triple quotes are not patchable.
func valueSpan(data []byte, str *build.StringExpr) (int, int, bool) {
	if str.TripleQuote {
		return 0, 0, false
	}
	start, end := str.Start.Byte+1, str.End.Byte-1
	if start < 1 || end >= len(data) || start > end {
		return 0, 0, false
	}
	quote := data[start-1]
	if (quote != '"' && quote != '\'') || data[end] != quote {
		return 0, 0, false
	}
	if string(data[start:end]) != str.Value {
		return 0, 0, false
	}
	return start, end, true
}

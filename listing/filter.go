// Package listing collects and renders the coordinates a project refers to.
package listing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

var starRun = regexp.MustCompile(`\*\*+`)

type rule struct {
	exclude bool
	glob    glob.Glob
}

// Filter selects "group:artifact:version" texts with an ordered list of glob
// patterns. A pattern starting with ! excludes what it matches; any other
// pattern includes it. The last matching pattern wins. Texts no pattern
// matches are included only when the first pattern is an exclusion, so
// "!*:test-*" means everything but test artifacts while "com.x:*" means only
// com.x artifacts. An empty filter includes everything.
type Filter struct {
	rules          []rule
	defaultInclude bool
}

// NewFilter compiles patterns. Runs of * collapse to a single *.
func NewFilter(patterns ...string) (*Filter, error) {
	f := &Filter{defaultInclude: true}
	for i, p := range patterns {
		r := rule{exclude: strings.HasPrefix(p, "!")}
		text := starRun.ReplaceAllString(strings.TrimPrefix(p, "!"), "*")
		g, err := glob.Compile(text)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		r.glob = g
		if i == 0 {
			f.defaultInclude = r.exclude
		}
		f.rules = append(f.rules, r)
	}
	return f, nil
}

// Match reports whether text is selected.
func (f *Filter) Match(text string) bool {
	include := f.defaultInclude
	for _, r := range f.rules {
		if r.glob.Match(text) {
			include = !r.exclude
		}
	}
	return include
}

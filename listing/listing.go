package listing

import (
	"cmp"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"

	versionator "github.com/albertocavalcante/go-versionator"
	"github.com/albertocavalcante/go-versionator/coord"
)

// Entry is one reference: a pom and a coordinate it refers to.
type Entry struct {
	Pom versionator.Pom
	Gav coord.Gav
}

// Grouping selects how entries are rendered.
type Grouping int

const (
	// ByGav lists each distinct referenced coordinate once.
	ByGav Grouping = iota
	// ByPom lists each pom with the coordinates it refers to.
	ByPom
)

// ParseGrouping parses "gav" or "pom".
func ParseGrouping(s string) (Grouping, error) {
	switch s {
	case "gav", "":
		return ByGav, nil
	case "pom":
		return ByPom, nil
	}
	return ByGav, fmt.Errorf("unknown grouping %q (want gav or pom)", s)
}

// Options control rendering.
type Options struct {
	Grouping Grouping

	// Verbose lists, for each referenced group artifact, the poms that refer
	// to it. It applies to ByGav only.
	Verbose bool

	// RootDir makes pom file paths relative when set.
	RootDir string
}

// Collect returns every parent and dependency reference of m that f
// selects, sorted by pom then coordinate.
func Collect(m *versionator.Model, f *Filter) []Entry {
	var out []Entry
	for _, p := range m.Poms() {
		var refs []coord.Dependency
		if p.Parent != nil {
			refs = append(refs, *p.Parent)
		}
		refs = append(refs, p.Dependencies...)
		for _, d := range refs {
			if f.Match(d.Gav.String()) {
				out = append(out, Entry{Pom: p, Gav: d.Gav})
			}
		}
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return cmp.Or(a.Pom.Gav.Compare(b.Pom.Gav), a.Gav.Compare(b.Gav))
	})
	return slices.CompactFunc(out, func(a, b Entry) bool {
		return a.Pom.Gav == b.Pom.Gav && a.Gav == b.Gav
	})
}

// Render writes entries to w.
func Render(w io.Writer, entries []Entry, opts Options) error {
	switch {
	case opts.Grouping == ByPom:
		return renderByPom(w, entries, opts)
	case opts.Verbose:
		return renderVerbose(w, entries, opts)
	default:
		return renderByGav(w, entries)
	}
}

func renderByGav(w io.Writer, entries []Entry) error {
	var gavs []coord.Gav
	for _, e := range entries {
		gavs = append(gavs, e.Gav)
	}
	coord.SortGavs(gavs)
	gavs = slices.Compact(gavs)

	width := digits(len(gavs))
	for i, g := range gavs {
		if _, err := fmt.Fprintf(w, "%*d) %s\n", width, i+1, g); err != nil {
			return err
		}
	}
	return nil
}

func renderByPom(w io.Writer, entries []Entry, opts Options) error {
	groups := group(entries, func(e Entry) coord.Gav { return e.Pom.Gav })
	width := digits(len(groups))
	for i, grp := range groups {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		pom := grp[0].Pom
		if _, err := fmt.Fprintf(w, "%*d) %s (%s)\n", width, i+1, pom.Gav, relative(opts.RootDir, pom.File)); err != nil {
			return err
		}
		inner := digits(len(grp))
		for j, e := range grp {
			if _, err := fmt.Fprintf(w, "    %*d) %s\n", inner, j+1, e.Gav); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderVerbose(w io.Writer, entries []Entry, opts Options) error {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b Entry) int {
		return cmp.Or(
			a.Gav.GroupArtifact.Compare(b.Gav.GroupArtifact),
			a.Pom.GroupArtifact().Compare(b.Pom.GroupArtifact()),
			a.Gav.Version.Compare(b.Gav.Version),
		)
	})
	groups := group(sorted, func(e Entry) coord.GroupArtifact { return e.Gav.GroupArtifact })

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Coordinate", "Version", "Referenced by", "File"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	for i, grp := range groups {
		for j, e := range grp {
			index, ga := "", ""
			if j == 0 {
				index, ga = strconv.Itoa(i+1), e.Gav.GroupArtifact.String()
			}
			table.Append([]string{index, ga, e.Gav.Version.String(), e.Pom.GroupArtifact().String(), relative(opts.RootDir, e.Pom.File)})
		}
	}
	table.Render()
	return nil
}

// group splits sorted entries into runs sharing a key.
func group[K comparable](entries []Entry, key func(Entry) K) [][]Entry {
	var out [][]Entry
	for i, e := range entries {
		if i == 0 || key(entries[i-1]) != key(e) {
			out = append(out, nil)
		}
		out[len(out)-1] = append(out[len(out)-1], e)
	}
	return out
}

func relative(root, path string) string {
	if root == "" {
		return path
	}
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}

func digits(n int) int {
	return len(strconv.Itoa(max(n, 1)))
}

package pomxml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	versionator "github.com/albertocavalcante/go-versionator"
	"github.com/albertocavalcante/go-versionator/coord"
)

// FileName is the manifest file name looked up in module directories.
const FileName = "pom.xml"

type candidate struct {
	path string
	// parentOf is set when the file was reached only through a parent
	// relativePath; the file is kept only if it declares this coordinate.
	parentOf *coord.GroupArtifact
}

type found struct {
	pom versionator.Pom
	doc *Document
	ok  bool
}

// FindAll discovers every pom of the project rooted at rootDir.
//
// It starts at rootDir/pom.xml and follows <modules> entries (a module names
// a directory holding pom.xml, or a pom file) and parent relativePath values
// (default ../pom.xml). Each breadth-first level is parsed concurrently.
// A missing or malformed module is an error. A parent file that is missing,
// unreadable or declares a different coordinate leaves the parent external.
//
// The result is sorted by group artifact.
func FindAll(ctx context.Context, rootDir string) ([]versionator.Pom, error) {
	root := filepath.Join(rootDir, FileName)
	if _, err := os.Stat(root); err != nil {
		return nil, &ParseError{Path: root, Err: err}
	}

	seen := map[string]bool{filepath.Clean(root): true}
	frontier := []candidate{{path: filepath.Clean(root)}}
	var poms []versionator.Pom

	for len(frontier) > 0 {
		level, err := parseLevel(ctx, frontier)
		if err != nil {
			return nil, err
		}

		var next []candidate
		for i, c := range frontier {
			f := level[i]
			if !f.ok || (c.parentOf != nil && f.pom.GroupArtifact() != *c.parentOf) {
				continue
			}
			poms = append(poms, f.pom)
			dir := filepath.Dir(c.path)

			for _, mod := range f.pom.Modules {
				path, err := modulePath(dir, mod)
				if err != nil {
					return nil, &ParseError{Path: c.path, Err: err}
				}
				if !seen[path] {
					seen[path] = true
					next = append(next, candidate{path: path})
				}
			}

			if f.pom.Parent == nil {
				continue
			}
			path, ok := parentPath(dir, f.doc.RelativePath)
			if !ok || seen[path] {
				continue
			}
			seen[path] = true
			ga := f.pom.Parent.GroupArtifact()
			next = append(next, candidate{path: path, parentOf: &ga})
		}
		frontier = next
	}

	slices.SortFunc(poms, func(a, b versionator.Pom) int {
		return a.GroupArtifact().Compare(b.GroupArtifact())
	})
	return poms, nil
}

func parseLevel(ctx context.Context, frontier []candidate) ([]found, error) {
	out := make([]found, len(frontier))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range frontier {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := load(c.path)
			if err != nil {
				if c.parentOf != nil {
					return nil
				}
				return err
			}
			out[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func load(path string) (found, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return found{}, &ParseError{Path: path, Err: err}
	}
	doc, err := Scan(data)
	if err != nil {
		return found{}, &ParseError{Path: path, Err: err}
	}
	p, err := doc.Pom(path)
	if err != nil {
		return found{}, &ParseError{Path: path, Err: err}
	}
	return found{pom: p, doc: doc, ok: true}, nil
}

// modulePath resolves a <module> entry to a pom file.
func modulePath(dir, module string) (string, error) {
	path := filepath.Clean(filepath.Join(dir, filepath.FromSlash(module)))
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("module %q: %w", module, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, FileName)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("module %q: %w", module, err)
		}
	}
	return path, nil
}

// parentPath resolves a parent relativePath to an existing pom file.
func parentPath(dir, relativePath string) (string, bool) {
	if relativePath == "" {
		relativePath = "../" + FileName
	}
	path := filepath.Clean(filepath.Join(dir, filepath.FromSlash(relativePath)))
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		path = filepath.Join(path, FileName)
		if info, err = os.Stat(path); err != nil {
			return "", false
		}
	}
	return path, info.Mode().IsRegular()
}

package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"
)

// Edit is a planned rewrite of one file.
type Edit struct {
	// Path is the absolute file path.
	Path string

	// Name is the path shown to users, relative to the project root.
	Name string

	Before []byte
	After  []byte
}

// UnifiedDiff renders the edit as a unified diff.
func (e Edit) UnifiedDiff() string {
	return udiff.Unified("a/"+e.Name, "b/"+e.Name, string(e.Before), string(e.After))
}

// Write applies edits in order. Each file is replaced atomically and keeps
// its permissions. A file that no longer matches its planned Before content
// is not touched and stops the write.
func Write(edits []Edit) error {
	for _, e := range edits {
		if err := writeEdit(e); err != nil {
			return err
		}
	}
	return nil
}

func writeEdit(e Edit) error {
	info, err := os.Stat(e.Path)
	if err != nil {
		return err
	}
	current, err := os.ReadFile(e.Path)
	if err != nil {
		return err
	}
	if string(current) != string(e.Before) {
		return fmt.Errorf("%s changed since it was read", e.Path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(e.Path), "."+filepath.Base(e.Path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(e.After); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), e.Path)
}

// Package workspace manages the scoped build directory of one wrap
// invocation.
//
// A workspace is either ephemeral (created under the system temp directory
// and destroyed on Release) or persistent (an explicit caller-supplied path
// that this package never destroys). Each workspace is exclusively owned by
// a single invocation for its entire lifetime.
package workspace

import (
	"os"
	"path/filepath"

	"github.com/wippyai/codewrap/errors"
)

type Workspace struct {
	dir        string
	persistent bool
}

// Ephemeral creates a fresh temporary workspace that Release destroys.
func Ephemeral() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "codewrap-*")
	if err != nil {
		return nil, errors.Workspace("create temporary build directory", err)
	}
	return &Workspace{dir: dir}, nil
}

// At opens a persistent workspace at path, creating it if missing.
// Ownership of the directory stays with the caller; Release leaves it
// intact for inspection.
func At(path string) (*Workspace, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, errors.Workspace("create build directory "+path, err)
	}
	return &Workspace{dir: path, persistent: true}, nil
}

func (w *Workspace) Dir() string { return w.dir }

func (w *Workspace) Persistent() bool { return w.persistent }

// WriteFile writes a file into the workspace by basename.
func (w *Workspace) WriteFile(name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(w.dir, name), data, 0o644); err != nil {
		return errors.Workspace("write "+name, err)
	}
	return nil
}

// Release destroys an ephemeral workspace. Persistent workspaces are left
// untouched. Runs on every exit path of a wrap invocation.
func (w *Workspace) Release() error {
	if w.persistent {
		return nil
	}
	if err := os.RemoveAll(w.dir); err != nil {
		return errors.Workspace("remove build directory", err)
	}
	return nil
}

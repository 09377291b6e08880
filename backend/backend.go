package backend

import (
	"strings"

	"github.com/wippyai/codewrap"
	"github.com/wippyai/codewrap/errors"
	"github.com/wippyai/codewrap/loader"
	"github.com/wippyai/codewrap/naming"
)

// Backend is a compiler-backend strategy. It renders the compilation unit
// and wrapper glue into an explicit directory, describes the external
// build command, and extracts the wrapped callable from the loaded
// artifact. Implementations hold no per-invocation state.
type Backend interface {
	Name() string

	// RenderSource writes the compilation unit for the routine and its
	// helpers, normally by delegating to the external generator. The
	// header file is only requested when the workspace persists.
	RenderSource(dir string, names naming.Names, r *codewrap.Routine, helpers []*codewrap.Routine, gen codewrap.Generator, withHeader bool) error

	// PrepareFiles writes backend-specific wrapper glue and build scripts
	// referencing the generated source.
	PrepareFiles(dir string, names naming.Names, r *codewrap.Routine, gen codewrap.Generator) error

	// BuildCommand returns the argv for the external build, or nil when
	// the backend needs no build step. Extra flags are appended verbatim.
	BuildCommand(names naming.Names, sourceExt string, flags []string) []string

	// Artifact returns the build artifact's basename within the workspace.
	Artifact(names naming.Names) string

	// Extract resolves the designated export of the loaded artifact and
	// wraps it as a callable.
	Extract(mod *loader.Module, r *codewrap.Routine) (codewrap.Callable, error)
}

// New resolves a backend by case-insensitive key. Unknown keys are a
// configuration error, reported before any file I/O happens.
func New(key string, tc Toolchain) (Backend, error) {
	switch strings.ToLower(key) {
	case "cc":
		return &CC{tc: tc.withDefaults()}, nil
	case "fortran":
		return &Fortran{tc: tc.withDefaults()}, nil
	case "dummy":
		return &Dummy{}, nil
	}
	return nil, errors.UnknownBackend(key)
}

// Keys lists the registered backend keys.
func Keys() []string {
	return []string{"cc", "dummy", "fortran"}
}

// renderGenerated is the shared RenderSource path: helpers are appended to
// the same compilation unit, with the main routine last.
func renderGenerated(dir string, names naming.Names, r *codewrap.Routine, helpers []*codewrap.Routine, gen codewrap.Generator, withHeader bool) error {
	routines := make([]*codewrap.Routine, 0, len(helpers)+1)
	routines = append(routines, helpers...)
	routines = append(routines, r)
	if err := gen.Write(dir, routines, names.FileBase, withHeader, withHeader); err != nil {
		return errors.Generate("render "+names.FileBase, err)
	}
	return nil
}

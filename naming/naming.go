// Package naming derives process-unique names for build artifacts.
//
// Every wrap invocation draws one Names value from a Registry before any
// file is written, so all files and artifacts of that invocation share one
// counter suffix. The counter is never reset and increases on every draw,
// success or failure, which keeps artifact names collision-free even across
// repeated wraps of identical routines.
package naming

import (
	"fmt"
	"sync/atomic"
)

const (
	fileBasePrefix = "wrapped_code_"
	modulePrefix   = "wrapper_module_"
)

// Names holds the counter-derived basenames for one wrap invocation.
type Names struct {
	// FileBase is the basename for generated source and header files.
	FileBase string
	// Module is the basename for wrapper glue, build scripts and the
	// compiled artifact.
	Module string
}

// Registry is a monotonically increasing naming source. Safe for
// concurrent use.
type Registry struct {
	counter atomic.Uint64
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Next returns the names for the current counter value and increments the
// counter. Call exactly once per wrap invocation.
func (r *Registry) Next() Names {
	n := r.counter.Add(1) - 1
	return Names{
		FileBase: fmt.Sprintf("%s%d", fileBasePrefix, n),
		Module:   fmt.Sprintf("%s%d", modulePrefix, n),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used when no registry is
// injected explicitly.
func Default() *Registry {
	return defaultRegistry
}

package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the wrap pipeline the error occurred
type Phase string

const (
	PhaseConfig    Phase = "config"    // backend/toolchain resolution
	PhaseWorkspace Phase = "workspace" // build directory lifecycle
	PhaseGenerate  Phase = "generate"  // external source generation
	PhasePrepare   Phase = "prepare"   // wrapper glue and build scripts
	PhaseBuild     Phase = "build"     // external compiler invocation
	PhaseLoad      Phase = "load"      // artifact loading
	PhaseCall      Phase = "call"      // invoking the wrapped callable
)

// Kind categorizes the error
type Kind string

const (
	KindUnknownBackend Kind = "unknown_backend"
	KindIOFailure      Kind = "io_failure"
	KindExitStatus     Kind = "exit_status"
	KindMissingExport  Kind = "missing_export"
	KindInvalidInput   Kind = "invalid_input"
	KindUnsupported    Kind = "unsupported"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Output string // captured build output, when available
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	if e.Output != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(e.Output, "\n"))
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for common error patterns

// UnknownBackend reports a backend key with no registered strategy.
// Detected before any file I/O.
func UnknownBackend(key string) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindUnknownBackend,
		Detail: fmt.Sprintf("no backend registered for key %q", key),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Workspace reports a build directory that cannot be created or accessed
func Workspace(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseWorkspace,
		Kind:   KindIOFailure,
		Detail: detail,
		Cause:  cause,
	}
}

// Generate wraps a failure of the external source generator
func Generate(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindIOFailure,
		Detail: detail,
		Cause:  cause,
	}
}

// Prepare wraps a failure while writing wrapper glue or build scripts
func Prepare(detail string, cause error) *Error {
	return &Error{
		Phase:  PhasePrepare,
		Kind:   KindIOFailure,
		Detail: detail,
		Cause:  cause,
	}
}

// BuildFailed reports a nonzero exit status from the external build command.
// output carries the captured process output, empty in quiet mode.
func BuildFailed(command string, exitCode int, output string) *Error {
	return &Error{
		Phase:  PhaseBuild,
		Kind:   KindExitStatus,
		Detail: fmt.Sprintf("%s exited with status %d", command, exitCode),
		Output: output,
	}
}

// Load creates an artifact loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindIOFailure,
		Detail: detail,
		Cause:  cause,
	}
}

// MissingExport reports a successful build whose artifact lacks the
// expected exported symbol
func MissingExport(name string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindMissingExport,
		Detail: fmt.Sprintf("export %q not found in artifact", name),
	}
}

// Call creates an invocation error
func Call(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

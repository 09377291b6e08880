package codewrap

import (
	"context"

	"github.com/wippyai/codewrap/errors"
)

// Datatype is the semantic type tag carried by arguments and results.
type Datatype int

const (
	Float64 Datatype = iota
	Int64
)

func (d Datatype) String() string {
	switch d {
	case Float64:
		return "float64"
	case Int64:
		return "int64"
	}
	return "unknown"
}

// CName renders the datatype for C source.
func (d Datatype) CName() string {
	switch d {
	case Int64:
		return "long long"
	default:
		return "double"
	}
}

// FortranName renders the datatype for Fortran source.
func (d Datatype) FortranName() string {
	switch d {
	case Int64:
		return "INTEGER*8"
	default:
		return "REAL*8"
	}
}

// Kind classifies how a routine argument flows between caller and routine.
type Kind int

const (
	// Input arguments are consumed only.
	Input Kind = iota
	// Output arguments are produced by the routine and not caller-supplied.
	Output
	// InOut arguments are supplied by the caller and overwritten.
	InOut
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "input"
	case Output:
		return "output"
	case InOut:
		return "inout"
	}
	return "unknown"
}

// Argument is one formal parameter of a routine. Ordering among arguments
// is significant and preserved throughout the wrap pipeline.
type Argument struct {
	// Name is the identifier used in generated source.
	Name     string
	Kind     Kind
	Datatype Datatype
	// Dimensions is nil for scalars. A non-nil value marks an array
	// argument passed by reference in generated source.
	Dimensions []int
	// Expr is the generator-supplied textual rendering of the expression
	// assigned to an Output or InOut argument. Opaque to this package.
	Expr string
}

// IsArray reports whether the argument carries dimensionality.
func (a Argument) IsArray() bool {
	return len(a.Dimensions) > 0
}

// Result is a declared result variable of a routine. Expr is the textual
// rendering owned by the external generator.
type Result struct {
	Name     string
	Expr     string
	Datatype Datatype
}

// Routine is a structured description of one computable unit: a name, an
// ordered argument list, and the declared result variables. Immutable once
// constructed.
type Routine struct {
	name    string
	args    []Argument
	results []Result
}

// NewRoutine validates and constructs a routine. The argument order given
// here is the order every backend observes.
func NewRoutine(name string, args []Argument, results []Result) (*Routine, error) {
	if !isIdentifier(name) {
		return nil, errors.InvalidInput(errors.PhaseConfig, "routine name must be a valid identifier, got "+name)
	}
	seen := make(map[string]struct{}, len(args))
	for _, a := range args {
		if !isIdentifier(a.Name) {
			return nil, errors.InvalidInput(errors.PhaseConfig, "argument name must be a valid identifier, got "+a.Name)
		}
		if _, dup := seen[a.Name]; dup {
			return nil, errors.InvalidInput(errors.PhaseConfig, "duplicate argument name "+a.Name)
		}
		seen[a.Name] = struct{}{}
	}

	r := &Routine{
		name:    name,
		args:    make([]Argument, len(args)),
		results: make([]Result, len(results)),
	}
	copy(r.args, args)
	copy(r.results, results)
	return r, nil
}

func (r *Routine) Name() string { return r.name }

// Arguments returns the ordered argument list. Callers must not mutate it.
func (r *Routine) Arguments() []Argument { return r.args }

// Results returns the declared result variables. Callers must not mutate it.
func (r *Routine) Results() []Result { return r.results }

// ResultExprs returns the textual renderings of the routine's result
// variables: explicit results first, then the expressions attached to
// produced arguments, all in declaration order.
func (r *Routine) ResultExprs() []string {
	exprs := make([]string, 0, len(r.results))
	for _, res := range r.results {
		exprs = append(exprs, res.Expr)
	}
	_, produced := SplitArgs(r.args)
	for _, a := range produced {
		if a.Expr != "" {
			exprs = append(exprs, a.Expr)
		}
	}
	return exprs
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Generator is the narrow interface to the external source generator. Write
// renders the given routines into one compilation unit under dir using the
// counter-derived baseName; the header file is only produced when header is
// set. Prototype returns the native declaration of a routine for wrapper
// glue, and FileExtension names the generated source extension without the
// leading dot.
type Generator interface {
	Write(dir string, routines []*Routine, baseName string, header, empty bool) error
	Prototype(r *Routine) (string, error)
	FileExtension() string
}

// Callable is a wrapped, compiled routine. Call takes the caller-supplied
// arguments in their declared order and returns a single value, or an
// ordered composite when the routine yields several, or nil when it yields
// none. The callable stays valid until the loader that produced it closes.
type Callable interface {
	Call(ctx context.Context, args ...any) (any, error)
}

// CallableFunc adapts a function to the Callable interface.
type CallableFunc func(ctx context.Context, args ...any) (any, error)

func (f CallableFunc) Call(ctx context.Context, args ...any) (any, error) {
	return f(ctx, args...)
}

// Package errors provides structured error types for the wrap pipeline.
//
// Every error carries a Phase (where in the pipeline it occurred) and a
// Kind (what went wrong), so callers can match failure domains with
// errors.Is instead of string inspection:
//
//	_, err := wrapper.Wrap(ctx, routine)
//	if errors.Is(err, &cwerrors.Error{Phase: cwerrors.PhaseBuild, Kind: cwerrors.KindExitStatus}) {
//	    // external compiler failed; captured output is in err
//	}
//
// The four failure domains of a wrap invocation map to phases directly:
// configuration errors are [config], workspace errors are [workspace],
// compile errors are [build], and load errors are [load]. None of them are
// ever retried.
package errors

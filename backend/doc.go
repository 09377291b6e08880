// Package backend provides the compiler-backend strategies driven by the
// wrap orchestrator.
//
// A Backend knows three things about its toolchain: how to lay files out
// in the workspace (generated source plus any wrapper glue and build
// scripts), what external command builds them into a loadable artifact,
// and how to pull the wrapped callable out of the loaded module.
//
// Three strategies are registered:
//
//	cc       wraps generated C in host-callable glue; two-phase
//	         compile-and-link with a clang-style frontend
//	fortran  delegates marshaling to the Fortran frontend; single
//	         invocation, export probed under the routine's base name
//	dummy    placeholder artifact for exercising the orchestration path
//	         without any compiler
//
// Selection is a case-insensitive key lookup via New; unknown keys fail
// fast before any file I/O. All strategies split arguments with
// codewrap.SplitArgs, so a given routine gets the same calling convention
// everywhere: the callable takes Input and InOut arguments in declared
// order and returns explicit results followed by Output and InOut
// arguments, a bare value when there is exactly one.
package backend

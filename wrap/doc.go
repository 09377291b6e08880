// Package wrap orchestrates the full wrap pipeline: it turns a routine
// description plus an external source generator into a live callable.
//
// A single invocation moves through a fixed sequence of stages:
//
//	INIT -> WORKSPACE_READY -> SOURCE_GENERATED -> WRAPPER_PREPARED
//	     -> BUILT -> LOADED -> DONE
//
// Any stage can fail, in which case the invocation transitions to FAILED
// and the error names the phase it happened in. Stage transitions are
// logged at debug level.
//
// Workspaces are ephemeral by default and destroyed on every exit path,
// success or failure. Setting Options.Dir pins the invocation to a
// persistent directory whose generated files survive for inspection.
//
// The package-level Wrap function is the one-shot entry point; construct
// a Wrapper when several routines share a backend and loader.
package wrap

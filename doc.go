// Package codewrap compiles generated numeric routines and wraps them as
// callable values in the host process.
//
// An external source-to-source generator renders a routine description into
// native source; codewrap drives a compiler backend over that source, loads
// the resulting WebAssembly artifact with wazero, and hands back an ordinary
// callable. The symbolic engine and the generator itself stay behind narrow
// interfaces; codewrap only owns the build-and-load pipeline.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	codewrap/            Root package with the Routine data model, the
//	                     argument classifier, and the Generator/Callable
//	                     interfaces
//	├── wrap/            The orchestrator: workspace lifecycle, subprocess
//	                     build, dynamic load, callable extraction
//	├── backend/         Compiler-backend strategies (cc, fortran, dummy)
//	│                    and the toolchain configuration
//	├── loader/          wazero-backed loading of compiled artifacts
//	├── workspace/       Scoped build directories, ephemeral or persistent
//	├── naming/          Process-unique module and source-file naming
//	├── manifest/        YAML routine descriptions for the CLI
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Wrap a routine whose source comes from an external generator:
//
//	routine, err := codewrap.NewRoutine("autofunc",
//	    []codewrap.Argument{
//	        {Name: "x", Kind: codewrap.Input, Datatype: codewrap.Float64},
//	        {Name: "y", Kind: codewrap.Input, Datatype: codewrap.Float64},
//	    },
//	    []codewrap.Result{{Name: "result", Expr: "(x - y)**3", Datatype: codewrap.Float64}},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fn, err := wrap.Wrap(ctx, gen, routine, wrap.Options{Backend: "cc"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := fn.Call(ctx, 1.0, 4.0)
//
// # Argument Classification
//
// Every backend splits a routine's ordered argument list with the same rule:
// Input and InOut arguments are caller-supplied, Output and InOut arguments
// are produced results, and both lists preserve the original declaration
// order. An InOut argument appears in both. The returned callable takes the
// caller-supplied arguments positionally and yields the explicit results
// followed by the produced arguments.
//
// # Concurrency
//
// A wrap invocation is fully synchronous: it blocks until the external build
// and the dynamic load complete or fail, and a failed build is never retried.
// The naming registry is safe for concurrent use; each invocation owns its
// workspace exclusively, and no process-wide state (such as the working
// directory) is mutated.
package codewrap

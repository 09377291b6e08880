// Package manifest reads YAML wrap-job descriptions: a backend key, a
// pre-rendered source file, and the routines it defines. It exists for
// the CLI, where no in-process source generator is available: the
// manifest's source file stands in for generated code, and the declared
// prototypes stand in for the generator's prototype queries.
package manifest

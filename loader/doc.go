// Package loader turns compiled build artifacts into live modules.
//
// It wraps wazero behind the narrow API the orchestrator needs: an
// explicit artifact path in, a handle with export lookup and linear-memory
// reads out. Loading never depends on search-path side effects, and a
// loaded module is owned by its Loader for the remainder of the process.
package loader

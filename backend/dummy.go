package backend

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/wippyai/codewrap"
	"github.com/wippyai/codewrap/errors"
	"github.com/wippyai/codewrap/internal/wasmenc"
	"github.com/wippyai/codewrap/loader"
	"github.com/wippyai/codewrap/naming"
)

// Dummy is the test backend. It skips the external generator and compiler
// entirely: RenderSource writes a placeholder artifact whose single export
// returns the literal textual rendering of the routine's result
// expressions. The rest of the pipeline runs exactly as it does for a
// real backend.
type Dummy struct{}

func (b *Dummy) Name() string { return "dummy" }

func (b *Dummy) RenderSource(dir string, names naming.Names, r *codewrap.Routine, helpers []*codewrap.Routine, gen codewrap.Generator, withHeader bool) error {
	// Result expressions are joined verbatim; the placeholder format has
	// no escaping.
	text := strings.Join(r.ResultExprs(), ", ")
	artifact := wasmenc.StringModule(r.Name(), text)
	if err := os.WriteFile(filepath.Join(dir, b.Artifact(names)), artifact, 0o644); err != nil {
		return errors.Generate("write placeholder module", err)
	}
	return nil
}

func (b *Dummy) PrepareFiles(dir string, names naming.Names, r *codewrap.Routine, gen codewrap.Generator) error {
	return nil
}

func (b *Dummy) BuildCommand(names naming.Names, sourceExt string, flags []string) []string {
	return nil
}

func (b *Dummy) Artifact(names naming.Names) string {
	return names.Module + ".wasm"
}

func (b *Dummy) Extract(mod *loader.Module, r *codewrap.Routine) (codewrap.Callable, error) {
	fn, err := mod.Function(r.Name())
	if err != nil {
		return nil, err
	}

	return codewrap.CallableFunc(func(ctx context.Context, args ...any) (any, error) {
		if len(args) != 0 {
			return nil, errors.Call("placeholder callable takes no arguments", nil)
		}
		results, err := fn.Call(ctx)
		if err != nil {
			return nil, errors.Call("invoke placeholder", err)
		}
		if len(results) != 2 {
			return nil, errors.Call("placeholder export did not return (ptr, len)", nil)
		}
		text, err := mod.ReadBytes(uint32(results[0]), uint32(results[1]))
		if err != nil {
			return nil, errors.Call("read placeholder text", err)
		}
		return string(text), nil
	}), nil
}

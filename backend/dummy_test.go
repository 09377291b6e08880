package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/codewrap"
	"github.com/wippyai/codewrap/loader"
	"github.com/wippyai/codewrap/naming"
)

func TestDummy_EndToEnd(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	names := naming.NewRegistry().Next()
	b := &Dummy{}

	r := mustRoutine(t, "autofunc", []codewrap.Argument{
		{Name: "x", Kind: codewrap.Input, Datatype: codewrap.Float64},
		{Name: "y", Kind: codewrap.Input, Datatype: codewrap.Float64},
	}, []codewrap.Result{{Name: "result", Expr: "x**2 - 2*x*y + y**2", Datatype: codewrap.Float64}})

	if err := b.RenderSource(dir, names, r, nil, nil, false); err != nil {
		t.Fatalf("RenderSource: %v", err)
	}
	if err := b.PrepareFiles(dir, names, r, nil); err != nil {
		t.Fatalf("PrepareFiles: %v", err)
	}
	if argv := b.BuildCommand(names, "", nil); argv != nil {
		t.Errorf("dummy backend should issue no build command, got %v", argv)
	}

	l := loader.New(ctx)
	defer l.Close(ctx)
	mod, err := l.Load(ctx, filepath.Join(dir, b.Artifact(names)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	fn, err := b.Extract(mod, r)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	got, err := fn.Call(ctx)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got != "x**2 - 2*x*y + y**2" {
		t.Errorf("Call = %q, want the literal result expression", got)
	}

	// The placeholder takes no arguments.
	if _, err := fn.Call(ctx, 1.0); err == nil {
		t.Error("Call with arguments should fail")
	}
}

func TestDummy_JoinsResultExprs(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	names := naming.NewRegistry().Next()
	b := &Dummy{}

	r := mustRoutine(t, "multi", []codewrap.Argument{
		{Name: "x", Kind: codewrap.Input, Datatype: codewrap.Float64},
		{Name: "s", Kind: codewrap.Output, Datatype: codewrap.Float64, Expr: "x + 1"},
	}, []codewrap.Result{{Name: "result", Expr: "2*x", Datatype: codewrap.Float64}})

	if err := b.RenderSource(dir, names, r, nil, nil, false); err != nil {
		t.Fatalf("RenderSource: %v", err)
	}

	l := loader.New(ctx)
	defer l.Close(ctx)
	mod, err := l.Load(ctx, filepath.Join(dir, b.Artifact(names)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	fn, err := b.Extract(mod, r)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	got, err := fn.Call(ctx)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got != "2*x, x + 1" {
		t.Errorf("Call = %q, want joined result expressions", got)
	}
}

func TestDummy_ArtifactOnDisk(t *testing.T) {
	dir := t.TempDir()
	names := naming.NewRegistry().Next()
	b := &Dummy{}

	r := mustRoutine(t, "autofunc", nil,
		[]codewrap.Result{{Name: "result", Expr: "1", Datatype: codewrap.Float64}})
	if err := b.RenderSource(dir, names, r, nil, nil, false); err != nil {
		t.Fatalf("RenderSource: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, names.Module+".wasm")); err != nil {
		t.Errorf("placeholder artifact missing: %v", err)
	}
}

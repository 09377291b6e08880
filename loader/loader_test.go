package loader

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/codewrap/errors"
	"github.com/wippyai/codewrap/internal/wasmenc"
)

func writeArtifact(t *testing.T, export, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wrapper_module_0.wasm")
	if err := os.WriteFile(path, wasmenc.StringModule(export, text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_AndCall(t *testing.T) {
	ctx := context.Background()
	l := New(ctx)
	defer l.Close(ctx)

	path := writeArtifact(t, "autofunc", "2*x")
	mod, err := l.Load(ctx, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	fn, err := mod.Function("autofunc")
	if err != nil {
		t.Fatalf("Function: %v", err)
	}
	results, err := fn.Call(ctx)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	got, err := mod.ReadBytes(uint32(results[0]), uint32(results[1]))
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if string(got) != "2*x" {
		t.Errorf("read %q, want %q", got, "2*x")
	}
}

func TestLoad_MissingArtifact(t *testing.T) {
	ctx := context.Background()
	l := New(ctx)
	defer l.Close(ctx)

	_, err := l.Load(ctx, filepath.Join(t.TempDir(), "nope.wasm"))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindIOFailure}) {
		t.Errorf("want [load] io_failure, got %v", err)
	}
}

func TestLoad_CorruptArtifact(t *testing.T) {
	ctx := context.Background()
	l := New(ctx)
	defer l.Close(ctx)

	path := filepath.Join(t.TempDir(), "bad.wasm")
	if err := os.WriteFile(path, []byte("not wasm"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Load(ctx, path); err == nil {
		t.Error("Load should reject a corrupt artifact")
	}
}

func TestFunction_ManglingFallback(t *testing.T) {
	ctx := context.Background()
	l := New(ctx)
	defer l.Close(ctx)

	// Fortran frontends commonly export lowercase with a trailing
	// underscore; lookup by the declared name must still succeed.
	path := writeArtifact(t, "autofunc_", "f")
	mod, err := l.Load(ctx, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := mod.Function("AUTOFUNC"); err != nil {
		t.Errorf("mangled export not found: %v", err)
	}
}

func TestFunction_Missing(t *testing.T) {
	ctx := context.Background()
	l := New(ctx)
	defer l.Close(ctx)

	mod, err := l.Load(ctx, writeArtifact(t, "autofunc", "f"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	_, err = mod.Function("other")
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindMissingExport}) {
		t.Errorf("want [load] missing_export, got %v", err)
	}
}

func TestLoad_TwoModulesOneRuntime(t *testing.T) {
	ctx := context.Background()
	l := New(ctx)
	defer l.Close(ctx)

	a, err := l.Load(ctx, writeArtifact(t, "autofunc", "a"))
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	b, err := l.Load(ctx, writeArtifact(t, "autofunc", "b"))
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if a == b {
		t.Error("loads should produce distinct modules")
	}
}

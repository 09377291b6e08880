package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEphemeral_ReleaseDestroys(t *testing.T) {
	ws, err := Ephemeral()
	if err != nil {
		t.Fatalf("Ephemeral: %v", err)
	}
	if ws.Persistent() {
		t.Error("ephemeral workspace reported persistent")
	}

	if err := ws.WriteFile("wrapper_module_0.c", []byte("/* glue */")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ws.Dir(), "wrapper_module_0.c")); err != nil {
		t.Fatalf("written file missing: %v", err)
	}

	if err := ws.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Errorf("ephemeral dir still exists after Release: %v", err)
	}
}

func TestAt_PersistsAcrossRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build", "nested")

	ws, err := At(path)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if !ws.Persistent() {
		t.Error("explicit-path workspace should be persistent")
	}
	if ws.Dir() != path {
		t.Errorf("Dir() = %q, want %q", ws.Dir(), path)
	}

	if err := ws.WriteFile("wrapped_code_0.c", []byte("double f;")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := ws.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	if _, err := os.Stat(filepath.Join(path, "wrapped_code_0.c")); err != nil {
		t.Errorf("persistent workspace lost its files: %v", err)
	}
}

func TestAt_ExistingDirectory(t *testing.T) {
	path := t.TempDir()
	if _, err := At(path); err != nil {
		t.Fatalf("At on existing directory: %v", err)
	}
}

func TestAt_FileInTheWay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := At(path); err == nil {
		t.Error("At should fail when a file occupies the path")
	}
}

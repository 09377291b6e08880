package backend

import (
	"reflect"
	"testing"

	"github.com/wippyai/codewrap/naming"
)

func TestFortran_BuildCommand(t *testing.T) {
	b, err := New("fortran", Toolchain{
		FC:     "flang",
		FFlags: []string{"--target=wasm32-unknown-unknown", "-O2"},
	})
	if err != nil {
		t.Fatal(err)
	}
	names := naming.NewRegistry().Next()

	argv := b.BuildCommand(names, "f90", []string{"-ffast-math"})
	want := []string{
		"flang", "--target=wasm32-unknown-unknown", "-O2", "-ffast-math",
		"-o", names.Module + ".wasm", names.FileBase + ".f90",
	}
	if !reflect.DeepEqual(argv, want) {
		t.Errorf("argv = %v, want %v", argv, want)
	}
}

func TestFortran_PreparesNoFiles(t *testing.T) {
	b := &Fortran{tc: DefaultToolchain()}
	dir := t.TempDir()
	names := naming.NewRegistry().Next()

	r := mustRoutine(t, "autofunc", nil, nil)
	if err := b.PrepareFiles(dir, names, r, nil); err != nil {
		t.Fatalf("PrepareFiles: %v", err)
	}
}

package backend

// Toolchain names the external compiler frontends and their base flags.
// The zero value resolves to the clang/flang wasm32 defaults; any field
// set explicitly wins.
type Toolchain struct {
	// CC is the C frontend used by the cc backend.
	CC string
	// FC is the Fortran frontend used by the fortran backend.
	FC string
	// CFlags are passed to every cc compile phase.
	CFlags []string
	// FFlags are passed to the fortran frontend.
	FFlags []string
	// LDFlags are passed to the cc link phase.
	LDFlags []string
}

// DefaultToolchain targets freestanding wasm32 with stock clang and lld,
// which needs no sysroot for pure arithmetic code.
func DefaultToolchain() Toolchain {
	return Toolchain{
		CC:      "clang",
		FC:      "flang",
		CFlags:  []string{"--target=wasm32-unknown-unknown", "-ffreestanding", "-nostdlib", "-O2"},
		FFlags:  []string{"--target=wasm32-unknown-unknown", "-nostdlib", "-O2"},
		LDFlags: []string{"--target=wasm32-unknown-unknown", "-nostdlib", "-Wl,--no-entry", "-Wl,--export-dynamic"},
	}
}

func (t Toolchain) withDefaults() Toolchain {
	def := DefaultToolchain()
	if t.CC == "" {
		t.CC = def.CC
	}
	if t.FC == "" {
		t.FC = def.FC
	}
	if t.CFlags == nil {
		t.CFlags = def.CFlags
	}
	if t.FFlags == nil {
		t.FFlags = def.FFlags
	}
	if t.LDFlags == nil {
		t.LDFlags = def.LDFlags
	}
	return t
}

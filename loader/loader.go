package loader

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/wippyai/codewrap/errors"
)

// Loader owns one wazero runtime and loads compiled artifacts into it.
// Safe for concurrent use. Modules loaded through a Loader stay valid
// until the Loader closes.
type Loader struct {
	runtime  wazero.Runtime
	wasiOnce sync.Once
	wasiErr  error
}

func New(ctx context.Context) *Loader {
	return &Loader{runtime: wazero.NewRuntime(ctx)}
}

// initWASI instantiates the WASI host module once per runtime. Artifacts
// built against a libc import it; freestanding artifacts ignore it.
func (l *Loader) initWASI(ctx context.Context) error {
	l.wasiOnce.Do(func() {
		_, l.wasiErr = wasi_snapshot_preview1.Instantiate(ctx, l.runtime)
	})
	return l.wasiErr
}

// Load reads a compiled artifact from an explicit path, compiles it and
// instantiates it under an anonymous name. Reactor-style artifacts have
// their _initialize entry run during instantiation.
func (l *Loader) Load(ctx context.Context, path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read artifact "+path, err)
	}

	if err := l.initWASI(ctx); err != nil {
		return nil, errors.Load("instantiate WASI host module", err)
	}

	compiled, err := l.runtime.CompileModule(ctx, data)
	if err != nil {
		return nil, errors.Load("compile artifact "+path, err)
	}

	cfg := wazero.NewModuleConfig().
		WithName(""). // anonymous, repeated wraps may share one runtime
		WithStartFunctions("_initialize", "_start")
	instance, err := l.runtime.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		return nil, errors.Load("instantiate artifact "+path, err)
	}

	return &Module{mod: instance}, nil
}

func (l *Loader) Close(ctx context.Context) error {
	return l.runtime.Close(ctx)
}

// Module is a loaded artifact. Exactly one callable is extracted from it
// per wrap invocation; the module lives for the rest of the process unless
// its loader closes earlier.
type Module struct {
	mod api.Module
}

// Function resolves an exported function by name. Toolchains mangle
// exported names differently, so lookup probes the common variants before
// giving up: the exact name, the underscore-suffixed and lowercased forms
// Fortran frontends emit.
func (m *Module) Function(name string) (api.Function, error) {
	for _, candidate := range exportCandidates(name) {
		if fn := m.mod.ExportedFunction(candidate); fn != nil {
			return fn, nil
		}
	}
	return nil, errors.MissingExport(name)
}

func exportCandidates(name string) []string {
	candidates := []string{name, name + "_"}
	if lower := strings.ToLower(name); lower != name {
		candidates = append(candidates, lower, lower+"_")
	}
	return candidates
}

// ReadBytes copies length bytes from the module's linear memory.
func (m *Module) ReadBytes(ptr, length uint32) ([]byte, error) {
	mem := m.mod.Memory()
	if mem == nil {
		return nil, errors.Load("artifact has no linear memory", nil)
	}
	data, ok := mem.Read(ptr, length)
	if !ok {
		return nil, errors.Load("memory read out of bounds", nil)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// ReadFloat64s reads n consecutive float64 values starting at ptr.
func (m *Module) ReadFloat64s(ptr uint32, n int) ([]float64, error) {
	mem := m.mod.Memory()
	if mem == nil {
		return nil, errors.Load("artifact has no linear memory", nil)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, ok := mem.ReadFloat64Le(ptr + uint32(i)*8)
		if !ok {
			return nil, errors.Load("memory read out of bounds", nil)
		}
		out[i] = v
	}
	return out, nil
}

func (m *Module) Close(ctx context.Context) error {
	return m.mod.Close(ctx)
}

package wrap

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os/exec"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/codewrap"
	"github.com/wippyai/codewrap/backend"
	"github.com/wippyai/codewrap/errors"
	"github.com/wippyai/codewrap/loader"
	"github.com/wippyai/codewrap/naming"
	"github.com/wippyai/codewrap/workspace"
)

// Options configures a Wrapper. The zero value selects the cc backend
// with the default toolchain, an ephemeral workspace, a shared naming
// registry and a no-op logger.
type Options struct {
	// Backend is the case-insensitive strategy key: cc, fortran or dummy.
	Backend string
	// Dir, when set, is a persistent workspace path. Generated source,
	// wrapper glue and build scripts stay on disk after the wrap, success
	// or failure. When empty every invocation gets a fresh ephemeral
	// workspace that is always destroyed.
	Dir string
	// Flags are extra arguments appended to the backend's build command.
	Flags []string
	// Quiet discards build process output instead of capturing it.
	Quiet bool
	// Toolchain overrides the external compiler frontends.
	Toolchain backend.Toolchain
	Logger    *zap.Logger
	// Names overrides the process-wide naming registry.
	Names *naming.Registry
	// Loader overrides the artifact loader. Callables extracted through
	// a loader stay valid until that loader closes.
	Loader *loader.Loader
}

// Wrapper drives the wrap pipeline for one generator/backend pairing.
// Safe for concurrent use; each invocation owns its workspace and draws
// its own names.
type Wrapper struct {
	gen        codewrap.Generator
	backend    backend.Backend
	names      *naming.Registry
	loader     *loader.Loader
	ownsLoader bool
	dir        string
	flags      []string
	quiet      bool
	log        *zap.Logger
}

// New resolves the backend eagerly so configuration errors surface before
// any file I/O. The generator may be nil only for the dummy backend.
func New(ctx context.Context, gen codewrap.Generator, opts Options) (*Wrapper, error) {
	key := opts.Backend
	if key == "" {
		key = "cc"
	}
	b, err := backend.New(key, opts.Toolchain)
	if err != nil {
		return nil, err
	}
	if gen == nil {
		if _, ok := b.(*backend.Dummy); !ok {
			return nil, errors.InvalidInput(errors.PhaseConfig, "backend "+b.Name()+" requires a source generator")
		}
	}

	w := &Wrapper{
		gen:     gen,
		backend: b,
		names:   opts.Names,
		loader:  opts.Loader,
		dir:     opts.Dir,
		flags:   opts.Flags,
		quiet:   opts.Quiet,
		log:     opts.Logger,
	}
	if w.names == nil {
		w.names = naming.Default()
	}
	if w.loader == nil {
		w.loader = loader.New(ctx)
		w.ownsLoader = true
	}
	if w.log == nil {
		w.log = zap.NewNop()
	}
	return w, nil
}

// Close releases the loader when the Wrapper owns it. Callables returned
// by Wrap are invalidated by closing their loader.
func (w *Wrapper) Close(ctx context.Context) error {
	if !w.ownsLoader {
		return nil
	}
	return w.loader.Close(ctx)
}

// Wrap builds the routine (with helper routines appended to the same
// compilation unit) and returns the extracted callable. The call blocks
// until the external build and the dynamic load complete or fail; a
// failed build is never retried. The ephemeral workspace is destroyed on
// every exit path.
func (w *Wrapper) Wrap(ctx context.Context, r *codewrap.Routine, helpers ...*codewrap.Routine) (codewrap.Callable, error) {
	// Drawn before any file is written so every file of this invocation
	// shares one counter suffix.
	names := w.names.Next()

	log := w.log.With(
		zap.String("backend", w.backend.Name()),
		zap.String("routine", r.Name()),
		zap.String("module", names.Module),
	)

	st := stateInit
	advance := func(next state) {
		st = next
		log.Debug("state transition", zap.Stringer("state", st))
	}
	defer func() {
		if st != stateDone {
			log.Debug("state transition", zap.Stringer("state", stateFailed))
		}
	}()

	ws, err := w.acquireWorkspace()
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := ws.Release(); rerr != nil {
			log.Warn("release workspace", zap.Error(rerr))
		}
	}()
	advance(stateWorkspaceReady)
	log.Debug("workspace acquired", zap.String("dir", ws.Dir()), zap.Bool("persistent", ws.Persistent()))

	// Header files and structural empty lines are only worth keeping
	// when the workspace outlives the invocation.
	if err := w.backend.RenderSource(ws.Dir(), names, r, helpers, w.gen, ws.Persistent()); err != nil {
		return nil, err
	}
	advance(stateSourceGenerated)

	if err := w.backend.PrepareFiles(ws.Dir(), names, r, w.gen); err != nil {
		return nil, err
	}
	advance(stateWrapperPrepared)

	if argv := w.backend.BuildCommand(names, w.sourceExt(), w.flags); len(argv) > 0 {
		if err := runBuild(ctx, ws.Dir(), argv, w.quiet, log); err != nil {
			return nil, err
		}
	}
	advance(stateBuilt)

	mod, err := w.loader.Load(ctx, filepath.Join(ws.Dir(), w.backend.Artifact(names)))
	if err != nil {
		return nil, err
	}
	advance(stateLoaded)

	fn, err := w.backend.Extract(mod, r)
	if err != nil {
		return nil, err
	}
	advance(stateDone)
	return fn, nil
}

func (w *Wrapper) acquireWorkspace() (*workspace.Workspace, error) {
	if w.dir != "" {
		return workspace.At(w.dir)
	}
	return workspace.Ephemeral()
}

func (w *Wrapper) sourceExt() string {
	if w.gen == nil {
		return ""
	}
	return w.gen.FileExtension()
}

// runBuild executes the backend's build command with the workspace as its
// working directory. Output is discarded in quiet mode; otherwise it is
// captured and surfaced on failure.
func runBuild(ctx context.Context, dir string, argv []string, quiet bool, log *zap.Logger) error {
	log.Debug("running build command", zap.Strings("argv", argv))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var output bytes.Buffer
	if quiet {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	} else {
		cmd.Stdout = &output
		cmd.Stderr = &output
	}

	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if stderrors.As(err, &ee) {
			return errors.BuildFailed(argv[0], ee.ExitCode(), output.String())
		}
		return errors.Wrap(errors.PhaseBuild, errors.KindIOFailure, err, "start build command "+argv[0])
	}

	if output.Len() > 0 {
		log.Debug("build output", zap.String("output", output.String()))
	}
	return nil
}

var (
	sharedLoaderOnce sync.Once
	sharedLoader     *loader.Loader
)

// processLoader is the loader behind the package-level Wrap convenience:
// artifacts loaded through it live for the remainder of the process.
func processLoader(ctx context.Context) *loader.Loader {
	sharedLoaderOnce.Do(func() {
		sharedLoader = loader.New(ctx)
	})
	return sharedLoader
}

// Wrap is the one-shot convenience entry point: it builds a Wrapper for a
// single invocation, using the process-wide loader so the returned
// callable outlives the call.
func Wrap(ctx context.Context, gen codewrap.Generator, r *codewrap.Routine, opts Options, helpers ...*codewrap.Routine) (codewrap.Callable, error) {
	if opts.Loader == nil {
		opts.Loader = processLoader(ctx)
	}
	w, err := New(ctx, gen, opts)
	if err != nil {
		return nil, err
	}
	return w.Wrap(ctx, r, helpers...)
}

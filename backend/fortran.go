package backend

import (
	"github.com/wippyai/codewrap"
	"github.com/wippyai/codewrap/loader"
	"github.com/wippyai/codewrap/naming"
)

// Fortran is the Fortran-compiler backend. Argument marshaling is
// delegated entirely to the external frontend: no wrapper glue is
// prepared, the frontend builds the module from the generated source in
// one invocation, and the artifact exports the routine under its base
// name (modulo the frontend's mangling, which extraction probes for).
type Fortran struct {
	tc Toolchain
}

func (b *Fortran) Name() string { return "fortran" }

func (b *Fortran) RenderSource(dir string, names naming.Names, r *codewrap.Routine, helpers []*codewrap.Routine, gen codewrap.Generator, withHeader bool) error {
	return renderGenerated(dir, names, r, helpers, gen, withHeader)
}

func (b *Fortran) PrepareFiles(dir string, names naming.Names, r *codewrap.Routine, gen codewrap.Generator) error {
	return nil
}

func (b *Fortran) BuildCommand(names naming.Names, sourceExt string, flags []string) []string {
	argv := []string{b.tc.FC}
	argv = append(argv, b.tc.FFlags...)
	argv = append(argv, flags...)
	return append(argv, "-o", b.Artifact(names), names.FileBase+"."+sourceExt)
}

func (b *Fortran) Artifact(names naming.Names) string {
	return names.Module + ".wasm"
}

func (b *Fortran) Extract(mod *loader.Module, r *codewrap.Routine) (codewrap.Callable, error) {
	fn, err := mod.Function(r.Name())
	if err != nil {
		return nil, err
	}
	inputs, produced := codewrap.SplitArgs(r.Arguments())
	slots := make([]codewrap.Datatype, 0, len(r.Results())+len(produced))
	for _, res := range r.Results() {
		slots = append(slots, res.Datatype)
	}
	for _, a := range produced {
		slots = append(slots, a.Datatype)
	}
	return &directCallable{
		fn:     fn,
		inputs: inputs,
		slots:  slots,
	}, nil
}

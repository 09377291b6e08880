package backend

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wippyai/codewrap"
	"github.com/wippyai/codewrap/errors"
	"github.com/wippyai/codewrap/loader"
	"github.com/wippyai/codewrap/naming"
)

// CC is the native-extension backend. It wraps the generated C routine in
// glue that exposes a host-callable export: the wrapper takes only the
// caller-supplied arguments, declares local storage for produced scalars,
// calls the native routine with all arguments in declared order, and hands
// the result composite back through a static float64 buffer.
type CC struct {
	tc Toolchain
}

func (b *CC) Name() string { return "cc" }

func (b *CC) RenderSource(dir string, names naming.Names, r *codewrap.Routine, helpers []*codewrap.Routine, gen codewrap.Generator, withHeader bool) error {
	return renderGenerated(dir, names, r, helpers, gen, withHeader)
}

func (b *CC) PrepareFiles(dir string, names naming.Names, r *codewrap.Routine, gen codewrap.Generator) error {
	glue, err := b.renderWrapper(r, gen)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, names.Module+".c"), []byte(glue), 0o644); err != nil {
		return errors.Prepare("write wrapper glue", err)
	}

	script := b.renderBuildScript(names, gen.FileExtension())
	if err := os.WriteFile(filepath.Join(dir, buildScript(names)), []byte(script), 0o755); err != nil {
		return errors.Prepare("write build script", err)
	}
	return nil
}

func (b *CC) BuildCommand(names naming.Names, sourceExt string, flags []string) []string {
	argv := []string{"/bin/sh", buildScript(names)}
	return append(argv, flags...)
}

func (b *CC) Artifact(names naming.Names) string {
	return names.Module + ".wasm"
}

func (b *CC) Extract(mod *loader.Module, r *codewrap.Routine) (codewrap.Callable, error) {
	fn, err := mod.Function(wrapperExport(r))
	if err != nil {
		return nil, err
	}
	inputs, produced := codewrap.SplitArgs(r.Arguments())
	return &bufferCallable{
		mod:    mod,
		fn:     fn,
		inputs: inputs,
		width:  len(r.Results()) + len(produced),
	}, nil
}

func wrapperExport(r *codewrap.Routine) string {
	return r.Name() + "_w"
}

func buildScript(names naming.Names) string {
	return names.Module + "_build.sh"
}

// renderWrapper emits the glue source for one routine. The produced
// composite is stored in declaration order, explicit results first, so
// the host side can read it back with one linear-memory scan.
func (b *CC) renderWrapper(r *codewrap.Routine, gen codewrap.Generator) (string, error) {
	if len(r.Results()) > 1 {
		return "", errors.Unsupported(errors.PhasePrepare, "cc backend: multiple explicit results")
	}
	for _, res := range r.Results() {
		if res.Datatype != codewrap.Float64 {
			return "", errors.Unsupported(errors.PhasePrepare, "cc backend: non-float64 result "+res.Name)
		}
	}

	inputs, produced := codewrap.SplitArgs(r.Arguments())
	for _, a := range produced {
		if a.IsArray() {
			return "", errors.Unsupported(errors.PhasePrepare, "cc backend: produced array argument "+a.Name)
		}
		if a.Datatype != codewrap.Float64 {
			return "", errors.Unsupported(errors.PhasePrepare, "cc backend: non-float64 produced argument "+a.Name)
		}
	}

	proto, err := gen.Prototype(r)
	if err != nil {
		return "", errors.Prepare("prototype for "+r.Name(), err)
	}

	width := len(r.Results()) + len(produced)
	buf := r.Name() + "_w_buf"

	var w strings.Builder
	fmt.Fprintf(&w, "/* Wrapper glue for %s. Generated; do not edit. */\n", r.Name())
	w.WriteString("#include <stdint.h>\n\n")
	fmt.Fprintf(&w, "extern %s;\n\n", strings.TrimSuffix(strings.TrimSpace(proto), ";"))
	fmt.Fprintf(&w, "static double %s[%d];\n\n", buf, max(width, 1))

	fmt.Fprintf(&w, "__attribute__((export_name(\"%s\")))\n", wrapperExport(r))
	fmt.Fprintf(&w, "double *%s(%s) {\n", wrapperExport(r), paramList(inputs))

	// Local storage for produced scalars. InOut locals are seeded from
	// the wrapper parameter before the call.
	for _, a := range r.Arguments() {
		switch a.Kind {
		case codewrap.Output:
			fmt.Fprintf(&w, "    double %s;\n", a.Name)
		case codewrap.InOut:
			fmt.Fprintf(&w, "    double %s_io = %s;\n", a.Name, a.Name)
		}
	}

	call := fmt.Sprintf("%s(%s)", r.Name(), callArgs(r.Arguments()))
	if len(r.Results()) == 1 {
		fmt.Fprintf(&w, "    %s[0] = %s;\n", buf, call)
	} else {
		fmt.Fprintf(&w, "    %s;\n", call)
	}
	for i, a := range produced {
		name := a.Name
		if a.Kind == codewrap.InOut {
			name += "_io"
		}
		fmt.Fprintf(&w, "    %s[%d] = %s;\n", buf, len(r.Results())+i, name)
	}
	fmt.Fprintf(&w, "    return %s;\n}\n", buf)

	return w.String(), nil
}

// paramList renders the wrapper signature: caller inputs only, declared
// order preserved.
func paramList(inputs []codewrap.Argument) string {
	if len(inputs) == 0 {
		return "void"
	}
	params := make([]string, len(inputs))
	for i, a := range inputs {
		if a.IsArray() {
			params[i] = fmt.Sprintf("%s *%s", a.Datatype.CName(), a.Name)
		} else {
			params[i] = fmt.Sprintf("%s %s", a.Datatype.CName(), a.Name)
		}
	}
	return strings.Join(params, ", ")
}

// callArgs renders the native call with all arguments in original order:
// produced scalars go by address, arrays pass through as pointers.
func callArgs(args []codewrap.Argument) string {
	rendered := make([]string, len(args))
	for i, a := range args {
		switch {
		case a.Kind == codewrap.Output:
			rendered[i] = "&" + a.Name
		case a.Kind == codewrap.InOut:
			rendered[i] = "&" + a.Name + "_io"
		default:
			rendered[i] = a.Name
		}
	}
	return strings.Join(rendered, ", ")
}

func (b *CC) renderBuildScript(names naming.Names, sourceExt string) string {
	source := names.FileBase + "." + sourceExt
	glue := names.Module + ".c"
	cflags := strings.Join(b.tc.CFlags, " ")
	ldflags := strings.Join(b.tc.LDFlags, " ")

	var w strings.Builder
	w.WriteString("#!/bin/sh\n")
	w.WriteString("# Two-phase build: compile the generated code and the wrapper glue,\n")
	w.WriteString("# then link the module in place.\n")
	w.WriteString("set -e\n")
	fmt.Fprintf(&w, "%s %s -c %s -o %s \"$@\"\n", b.tc.CC, cflags, source, names.FileBase+".o")
	fmt.Fprintf(&w, "%s %s -c %s -o %s \"$@\"\n", b.tc.CC, cflags, glue, names.Module+".o")
	fmt.Fprintf(&w, "%s %s -o %s %s %s \"$@\"\n", b.tc.CC, ldflags, names.Module+".wasm", names.FileBase+".o", names.Module+".o")
	return w.String()
}

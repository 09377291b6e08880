package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/codewrap"
	"github.com/wippyai/codewrap/errors"
)

// Manifest is the on-disk description of a wrap job: a backend key, a
// pre-rendered compilation unit, and the routines it defines.
type Manifest struct {
	Backend  string        `yaml:"backend"`
	Flags    []string      `yaml:"flags,omitempty"`
	Source   SourceSpec    `yaml:"source"`
	RoutineSpecs []RoutineSpec `yaml:"routines"`
}

// SourceSpec points at the pre-rendered source file to compile. Extension
// defaults to the file's own suffix.
type SourceSpec struct {
	File      string `yaml:"file"`
	Extension string `yaml:"extension,omitempty"`
}

// RoutineSpec describes one routine of the compilation unit. Prototype is
// the native declaration used for wrapper glue; backends that generate no
// glue ignore it.
type RoutineSpec struct {
	Name      string       `yaml:"name"`
	Prototype string       `yaml:"prototype,omitempty"`
	Args      []ArgSpec    `yaml:"args,omitempty"`
	Results   []ResultSpec `yaml:"results,omitempty"`
}

type ArgSpec struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Type       string `yaml:"type,omitempty"`
	Dimensions []int  `yaml:"dimensions,omitempty"`
	Expr       string `yaml:"expr,omitempty"`
}

type ResultSpec struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr,omitempty"`
	Type string `yaml:"type,omitempty"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindIOFailure, err, "read manifest "+path)
	}
	return Parse(data)
}

// Parse decodes and validates a manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "decode manifest")
	}
	if len(m.RoutineSpecs) == 0 {
		return nil, errors.InvalidInput(errors.PhaseConfig, "manifest declares no routines")
	}
	for i, rs := range m.RoutineSpecs {
		if rs.Name == "" {
			return nil, errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("routine #%d has no name", i))
		}
	}
	if !strings.EqualFold(m.Backend, "dummy") && m.Source.File == "" {
		return nil, errors.InvalidInput(errors.PhaseConfig, "manifest declares no source file")
	}
	return &m, nil
}

// Extension resolves the source extension, falling back to the file suffix.
func (m *Manifest) Extension() string {
	if m.Source.Extension != "" {
		return m.Source.Extension
	}
	return strings.TrimPrefix(filepath.Ext(m.Source.File), ".")
}

// Routines materializes the declared routines. The first routine is the
// primary one; the rest are helpers sharing its compilation unit.
func (m *Manifest) Routines() ([]*codewrap.Routine, error) {
	out := make([]*codewrap.Routine, 0, len(m.RoutineSpecs))
	for _, rs := range m.RoutineSpecs {
		r, err := rs.routine()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (rs RoutineSpec) routine() (*codewrap.Routine, error) {
	args := make([]codewrap.Argument, 0, len(rs.Args))
	for _, as := range rs.Args {
		kind, err := parseKind(as.Kind)
		if err != nil {
			return nil, err
		}
		dt, err := parseType(as.Type)
		if err != nil {
			return nil, err
		}
		args = append(args, codewrap.Argument{
			Name:       as.Name,
			Kind:       kind,
			Datatype:   dt,
			Dimensions: as.Dimensions,
			Expr:       as.Expr,
		})
	}

	results := make([]codewrap.Result, 0, len(rs.Results))
	for _, res := range rs.Results {
		dt, err := parseType(res.Type)
		if err != nil {
			return nil, err
		}
		results = append(results, codewrap.Result{Name: res.Name, Expr: res.Expr, Datatype: dt})
	}
	return codewrap.NewRoutine(rs.Name, args, results)
}

func parseKind(s string) (codewrap.Kind, error) {
	switch strings.ToLower(s) {
	case "", "input", "in":
		return codewrap.Input, nil
	case "output", "out":
		return codewrap.Output, nil
	case "inout":
		return codewrap.InOut, nil
	}
	return 0, errors.InvalidInput(errors.PhaseConfig, "unknown argument kind "+s)
}

func parseType(s string) (codewrap.Datatype, error) {
	switch strings.ToLower(s) {
	case "", "float64", "double", "real8":
		return codewrap.Float64, nil
	case "int64", "integer8":
		return codewrap.Int64, nil
	}
	return 0, errors.InvalidInput(errors.PhaseConfig, "unknown datatype "+s)
}

// Generator adapts the manifest's pre-rendered source into the generator
// interface: Write copies the source into the workspace under the
// counter-derived base name, and Prototype answers from the declared
// routine prototypes. Paths in the manifest resolve against baseDir.
func (m *Manifest) Generator(baseDir string) codewrap.Generator {
	protos := make(map[string]string, len(m.RoutineSpecs))
	for _, rs := range m.RoutineSpecs {
		protos[rs.Name] = rs.Prototype
	}
	return &fileGenerator{
		path:   filepath.Join(baseDir, m.Source.File),
		ext:    m.Extension(),
		protos: protos,
	}
}

type fileGenerator struct {
	path   string
	ext    string
	protos map[string]string
}

func (g *fileGenerator) Write(dir string, routines []*codewrap.Routine, baseName string, header, empty bool) error {
	src, err := os.ReadFile(g.path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, baseName+"."+g.ext), src, 0o644); err != nil {
		return err
	}
	if !header {
		return nil
	}

	var b strings.Builder
	for _, r := range routines {
		proto, err := g.Prototype(r)
		if err != nil {
			return err
		}
		b.WriteString(proto)
		b.WriteString(";\n")
	}
	return os.WriteFile(filepath.Join(dir, baseName+".h"), []byte(b.String()), 0o644)
}

func (g *fileGenerator) Prototype(r *codewrap.Routine) (string, error) {
	proto, ok := g.protos[r.Name()]
	if !ok || proto == "" {
		return "", errors.InvalidInput(errors.PhaseGenerate, "manifest declares no prototype for routine "+r.Name())
	}
	return proto, nil
}

func (g *fileGenerator) FileExtension() string { return g.ext }

package main

import (
	"path/filepath"

	"github.com/wippyai/codewrap"
	"github.com/wippyai/codewrap/manifest"
	"github.com/wippyai/codewrap/wrap"
)

// job is a manifest resolved against the command-line flags: the primary
// routine, its helpers, and the wrap options to run them with.
type job struct {
	m       *manifest.Manifest
	primary *codewrap.Routine
	helpers []*codewrap.Routine
	gen     codewrap.Generator
	opts    wrap.Options
}

func loadJob(path string) (*job, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	routines, err := m.Routines()
	if err != nil {
		return nil, err
	}

	key := backendKey
	if key == "" {
		key = m.Backend
	}

	return &job{
		m:       m,
		primary: routines[0],
		helpers: routines[1:],
		gen:     m.Generator(filepath.Dir(path)),
		opts: wrap.Options{
			Backend:   key,
			Dir:       workDir,
			Flags:     append(append([]string{}, m.Flags...), buildFlags...),
			Quiet:     quiet,
			Toolchain: toolchain(),
			Logger:    logger(),
		},
	}, nil
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package kernel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"husk.sh/log"
)

type CompileOptions struct {
	jobs  int
	force bool
}

type CompileOption func(co *CompileOptions)

// WithJobs bounds the number of concurrently translated units.
func WithJobs(jobs int) CompileOption {
	return func(co *CompileOptions) {
		co.jobs = jobs
	}
}

// WithForce recompiles every unit regardless of staleness.
func WithForce(force bool) CompileOption {
	return func(co *CompileOptions) {
		co.force = force
	}
}

// Compile translates every stale source unit into its object artifact,
// creating intermediate build directories on demand.  Units have no data
// dependency on one another, so translation is parallelized across workers
// bounded by the job count (the number of cores by default).
//
// The first translation failure aborts the stage; artifacts already produced
// by other units are deliberately retained so a subsequent invocation can
// resume incrementally.  Returns the number of units compiled.
func (p *Project) Compile(ctx context.Context, copts ...CompileOption) (int, error) {
	opts := &CompileOptions{}
	for _, o := range copts {
		o(opts)
	}

	if opts.jobs <= 0 {
		opts.jobs = runtime.NumCPU()
	}

	if p.toolchain == nil {
		return 0, fmt.Errorf("project has no toolchain")
	}

	units, err := p.Sources(ctx)
	if err != nil {
		return 0, err
	}

	if len(units) == 0 {
		return 0, fmt.Errorf("no translation units found under %s", p.sourceDir)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.jobs)

	compiled := 0

	for _, unit := range units {
		obj, err := p.ObjectPath(unit)
		if err != nil {
			return compiled, err
		}

		if !opts.force {
			stale, err := Stale(unit.Path, obj)
			if err != nil {
				return compiled, err
			}

			if !stale {
				log.G(ctx).
					WithField("unit", p.relPath(unit.Path)).
					Trace("up to date")
				continue
			}
		}

		if err := os.MkdirAll(filepath.Dir(obj), 0o755); err != nil {
			return compiled, fmt.Errorf("could not create build directory: %w", err)
		}

		unit := unit
		compiled++

		eg.Go(func() error {
			log.G(egCtx).
				WithField("unit", p.relPath(unit.Path)).
				Info("compiling")

			return p.toolchain.Compile(egCtx, unit.Path, obj)
		})
	}

	if err := eg.Wait(); err != nil {
		return compiled, err
	}

	return compiled, nil
}

func (p *Project) relPath(path string) string {
	if rel, err := filepath.Rel(p.workdir, path); err == nil {
		return rel
	}

	return path
}

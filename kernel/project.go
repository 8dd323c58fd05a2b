// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package kernel models a bare-metal kernel project: a tree of freestanding
// translation units which is compiled, unit by unit, into a mirrored build
// tree of object artifacts and finally linked, against a fixed memory layout
// descriptor, into a single bootable image.
package kernel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultSourceDir is the directory of translation units, relative to the
	// project working directory.
	DefaultSourceDir = "src"

	// DefaultBuildDir is the build tree holding object artifacts, mirroring
	// the source tree's structure.
	DefaultBuildDir = "build"

	// DefaultImageName is the linked kernel image, placed at the root of the
	// working directory, outside the build tree.
	DefaultImageName = "kernel.elf"

	// DefaultLinkerScript is the memory layout descriptor consumed opaquely
	// by the link stage.
	DefaultLinkerScript = "linker.ld"
)

var (
	ErrNoSourceDir    = errors.New("project has no source directory")
	ErrNoLinkerScript = errors.New("project has no linker script")
)

// Toolchain is the translation and linking backend of a project.  It is an
// interface at this layer so the pipeline stages can be exercised without a
// cross compiler installed.
type Toolchain interface {
	// Compile translates one source unit into one object artifact.
	Compile(ctx context.Context, src, obj string) error

	// Link combines all object artifacts, per the memory layout descriptor
	// ldscript, into the executable at out.
	Link(ctx context.Context, ldscript, out string, objs ...string) error
}

type Project struct {
	workdir   string
	sourceDir string
	buildDir  string
	image     string
	ldscript  string
	toolchain Toolchain
}

type ProjectOption func(p *Project) error

// WithProjectWorkdir sets the working directory the project layout is
// resolved against.
func WithProjectWorkdir(workdir string) ProjectOption {
	return func(p *Project) error {
		p.workdir = workdir
		return nil
	}
}

// WithProjectSourceDir overrides the source tree location.
func WithProjectSourceDir(dir string) ProjectOption {
	return func(p *Project) error {
		p.sourceDir = dir
		return nil
	}
}

// WithProjectBuildDir overrides the build tree location.
func WithProjectBuildDir(dir string) ProjectOption {
	return func(p *Project) error {
		p.buildDir = dir
		return nil
	}
}

// WithProjectImage overrides the kernel image location.
func WithProjectImage(image string) ProjectOption {
	return func(p *Project) error {
		p.image = image
		return nil
	}
}

// WithProjectLinkerScript overrides the memory layout descriptor location.
func WithProjectLinkerScript(ldscript string) ProjectOption {
	return func(p *Project) error {
		p.ldscript = ldscript
		return nil
	}
}

// WithProjectToolchain sets the translation and linking backend.
func WithProjectToolchain(tc Toolchain) ProjectOption {
	return func(p *Project) error {
		p.toolchain = tc
		return nil
	}
}

// NewProjectFromOptions instantiates a kernel project rooted at a working
// directory.  Relative layout paths are resolved against the working
// directory.
func NewProjectFromOptions(ctx context.Context, popts ...ProjectOption) (*Project, error) {
	p := &Project{}

	for _, o := range popts {
		if err := o(p); err != nil {
			return nil, err
		}
	}

	if len(p.workdir) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}

		p.workdir = cwd
	}

	if len(p.sourceDir) == 0 {
		p.sourceDir = DefaultSourceDir
	}
	if len(p.buildDir) == 0 {
		p.buildDir = DefaultBuildDir
	}
	if len(p.image) == 0 {
		p.image = DefaultImageName
	}
	if len(p.ldscript) == 0 {
		p.ldscript = DefaultLinkerScript
	}

	p.sourceDir = p.resolve(p.sourceDir)
	p.buildDir = p.resolve(p.buildDir)
	p.image = p.resolve(p.image)
	p.ldscript = p.resolve(p.ldscript)

	if fi, err := os.Stat(p.sourceDir); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoSourceDir, p.sourceDir)
	}

	return p, nil
}

func (p *Project) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(p.workdir, path)
}

func (p *Project) Workdir() string {
	return p.workdir
}

func (p *Project) SourceDir() string {
	return p.sourceDir
}

func (p *Project) BuildDir() string {
	return p.buildDir
}

// Image is the path of the linked kernel image.
func (p *Project) Image() string {
	return p.image
}

// LinkerScript is the path of the memory layout descriptor.
func (p *Project) LinkerScript() string {
	return p.ldscript
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"husk.sh/cmdfactory"
	"husk.sh/config"
	"husk.sh/kernel"
	"husk.sh/log"
	"husk.sh/toolchain"
)

type BuildOptions struct {
	Force bool `long:"force" short:"F" usage:"Recompile every source unit even if its object is up to date"`
	Jobs  int  `long:"jobs" short:"j" usage:"Allow N compile jobs at once (default is the number of CPUs)"`
}

// NewCmd instantiates the `build` subcommand.
func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&BuildOptions{}, cobra.Command{
		Short:   "Compile the kernel sources and link the bootable image",
		Use:     "build [FLAGS] [DIR]",
		Args:    cmdfactory.MaxDirArgs(1),
		GroupID: "build",
		Long: heredoc.Doc(`
			Compile the kernel sources and link the bootable image.

			Every C and assembly unit under the source tree is compiled into a
			mirrored object tree under the build directory.  Units whose object
			is newer than the source are skipped, so repeated builds only do
			the work that is necessary.  Once all objects exist the image is
			linked against the project linker script.`),
		Example: heredoc.Doc(`
			# Build the kernel in the current working directory
			$ husk build

			# Build a kernel at a path with 2 compile jobs
			$ husk build -j 2 path/to/kernel`),
	})
	if err != nil {
		panic("could not initialize subcommand: " + err.Error())
	}

	return cmd
}

// Build compiles and links the kernel project rooted at the first of args
// (or the current working directory) and returns the project.  It is used
// directly by `husk build` and as the implicit first step of the launch
// subcommands.
func Build(ctx context.Context, opts *BuildOptions, args ...string) (*kernel.Project, error) {
	if opts == nil {
		opts = &BuildOptions{}
	}

	workdir := ""
	if len(args) > 0 {
		workdir = args[0]
	}
	if workdir == "" {
		var err error
		workdir, err = os.Getwd()
		if err != nil {
			return nil, err
		}
	}

	tc, err := toolchain.NewToolchain(
		toolchain.WithBin(config.G(ctx).Binaries.CC),
	)
	if err != nil {
		return nil, err
	}

	project, err := kernel.NewProjectFromOptions(ctx,
		kernel.WithProjectWorkdir(workdir),
		kernel.WithProjectToolchain(tc),
	)
	if err != nil {
		return nil, err
	}

	compiled, err := project.Compile(ctx,
		kernel.WithJobs(opts.Jobs),
		kernel.WithForce(opts.Force),
	)
	if err != nil {
		return nil, err
	}

	if compiled == 0 {
		if fresh, err := project.ImageFresh(ctx); err == nil && fresh {
			log.G(ctx).Info("nothing to be done")
			return project, nil
		}
	}

	if err := project.Link(ctx); err != nil {
		return nil, err
	}

	return project, nil
}

func (opts *BuildOptions) Run(ctx context.Context, args []string) error {
	project, err := Build(ctx, opts, args...)
	if err != nil {
		return err
	}

	fi, err := os.Stat(project.Image())
	if err != nil {
		return fmt.Errorf("statting kernel image: %w", err)
	}

	image := project.Image()
	if rel, err := filepath.Rel(project.Workdir(), image); err == nil {
		image = rel
	}

	log.G(ctx).
		WithField("size", humanize.Bytes(uint64(fi.Size()))).
		Infof("built %s", image)

	return nil
}

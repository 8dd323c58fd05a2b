// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package clean

import (
	"context"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"husk.sh/cmdfactory"
	"husk.sh/kernel"
	"husk.sh/log"
)

type CleanOptions struct{}

// NewCmd instantiates the `clean` subcommand.
func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&CleanOptions{}, cobra.Command{
		Short:   "Remove all build artifacts",
		Use:     "clean [DIR]",
		Args:    cmdfactory.MaxDirArgs(1),
		GroupID: "build",
		Long: heredoc.Doc(`
			Remove all build artifacts.

			Deletes the build directory and the linked kernel image.  Source
			files are never touched and it is safe to invoke this on an
			already-clean tree.`),
		Example: heredoc.Doc(`
			# Remove the build artifacts of the kernel in the current directory
			$ husk clean`),
	})
	if err != nil {
		panic("could not initialize subcommand: " + err.Error())
	}

	return cmd
}

func (opts *CleanOptions) Run(ctx context.Context, args []string) error {
	workdir := ""
	if len(args) > 0 {
		workdir = args[0]
	}
	if workdir == "" {
		var err error
		workdir, err = os.Getwd()
		if err != nil {
			return err
		}
	}

	project, err := kernel.NewProjectFromOptions(ctx,
		kernel.WithProjectWorkdir(workdir),
	)
	if err != nil {
		return err
	}

	if err := project.Clean(ctx); err != nil {
		return err
	}

	log.G(ctx).Info("removed build artifacts")

	return nil
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package run

import (
	"context"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"husk.sh/cmdfactory"
	"husk.sh/config"
	"husk.sh/internal/cli/husk/build"
	"husk.sh/log"
	"husk.sh/machine"
	"husk.sh/machine/qemu"
)

type RunOptions struct {
	Jobs int `long:"jobs" short:"j" usage:"Allow N compile jobs at once (default is the number of CPUs)"`
}

// NewCmd instantiates the `run` subcommand.
func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&RunOptions{}, cobra.Command{
		Short:   "Build the kernel and boot it in the emulator",
		Use:     "run [FLAGS] [DIR]",
		Args:    cmdfactory.MaxDirArgs(1),
		GroupID: "run",
		Long: heredoc.Doc(`
			Build the kernel and boot it in the emulator.

			The kernel is rebuilt if any of its sources changed, then booted
			with a graphical display attached and the guest serial console
			multiplexed with the QEMU monitor on the invoking terminal.  Use
			Ctrl-A X to terminate the guest, or Ctrl-A C to switch to the
			monitor.`),
		Example: heredoc.Doc(`
			# Build and boot the kernel in the current working directory
			$ husk run

			# Build and boot a kernel at a path
			$ husk run path/to/kernel`),
	})
	if err != nil {
		panic("could not initialize subcommand: " + err.Error())
	}

	return cmd
}

func (opts *RunOptions) Run(ctx context.Context, args []string) error {
	project, err := build.Build(ctx, &build.BuildOptions{Jobs: opts.Jobs}, args...)
	if err != nil {
		return err
	}

	m, err := qemu.NewMachine(ctx,
		machine.LaunchProfileInteractive,
		project.Image(),
		qemu.WithBin(config.G(ctx).Binaries.Qemu),
	)
	if err != nil {
		return err
	}

	log.G(ctx).Info("booting kernel, use Ctrl-A X to exit")

	return m.Run(ctx)
}

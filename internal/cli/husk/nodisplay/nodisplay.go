// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package nodisplay

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

type NoDisplayRunOptions struct {
	Jobs int `long:"jobs" short:"j" usage:"Allow N compile jobs at once (default is the number of CPUs)"`
}

// NewCmd instantiates the `no-display-run` subcommand.
func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&NoDisplayRunOptions{}, cobra.Command{
		Short:   "Build the kernel and boot it without a graphical display",
		Use:     "no-display-run [FLAGS] [DIR]",
		Aliases: []string{"headless"},
		Args:    cmdfactory.MaxDirArgs(1),
		GroupID: "run",
		Long: heredoc.Doc(`
			Build the kernel and boot it without a graphical display.

			Identical to 'husk run' except that no display device is attached,
			which makes it suitable for terminals without a windowing system,
			CI pipelines and remote shells.  The guest serial console remains
			multiplexed with the QEMU monitor on the invoking terminal.`),
		Example: heredoc.Doc(`
			# Boot the kernel in the current working directory over serial only
			$ husk no-display-run

			# The same, using the short alias
			$ husk headless path/to/kernel`),
	})
	if err != nil {
		panic("could not initialize subcommand: " + err.Error())
	}

	return cmd
}

func (opts *NoDisplayRunOptions) Run(ctx context.Context, args []string) error {
	project, err := build.Build(ctx, &build.BuildOptions{Jobs: opts.Jobs}, args...)
	if err != nil {
		return err
	}

	m, err := qemu.NewMachine(ctx,
		machine.LaunchProfileHeadless,
		project.Image(),
		qemu.WithBin(config.G(ctx).Binaries.Qemu),
	)
	if err != nil {
		return err
	}

	log.G(ctx).Info("booting kernel, use Ctrl-A X to exit")

	return m.Run(ctx)
}

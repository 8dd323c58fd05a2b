// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package debug

import (
	"context"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"husk.sh/cmdfactory"
	"husk.sh/config"
	"husk.sh/internal/cli/husk/build"
	"husk.sh/log"
	"husk.sh/machine"
	"husk.sh/machine/gdb"
	"husk.sh/machine/qemu"
)

type DebugOptions struct {
	Jobs      int  `long:"jobs" short:"j" usage:"Allow N compile jobs at once (default is the number of CPUs)"`
	KeepAlive bool `long:"keep-alive" short:"k" usage:"Leave the emulator running after the debugger detaches"`
}

// NewCmd instantiates the `debug` subcommand.
func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&DebugOptions{}, cobra.Command{
		Short:   "Build the kernel, boot it paused and attach a debugger",
		Use:     "debug [FLAGS] [DIR]",
		Args:    cmdfactory.MaxDirArgs(1),
		GroupID: "run",
		Long: heredoc.Docf(`
			Build the kernel, boot it paused and attach a debugger.

			The emulator starts in the background with the virtual CPUs halted
			and a GDB stub listening on tcp::%d.  The debugger is then spawned
			in the foreground, loaded with the kernel's symbols and connected
			to the stub.  Execution only begins once you continue from the
			debugger.

			When the debugger exits the emulator is terminated, unless
			--keep-alive is given, in which case it stays paused and ready for
			another session.`, machine.DebugPort),
		Example: heredoc.Doc(`
			# Debug the kernel in the current working directory
			$ husk debug

			# Detach without tearing the emulator down, then re-attach later
			$ husk debug --keep-alive`),
	})
	if err != nil {
		panic("could not initialize subcommand: " + err.Error())
	}

	return cmd
}

func (opts *DebugOptions) Run(ctx context.Context, args []string) error {
	project, err := build.Build(ctx, &build.BuildOptions{Jobs: opts.Jobs}, args...)
	if err != nil {
		return err
	}

	m, err := qemu.NewMachine(ctx,
		machine.LaunchProfileDebug,
		project.Image(),
		qemu.WithBin(config.G(ctx).Binaries.Qemu),
		qemu.WithStateDir(project.BuildDir()),
	)
	if err != nil {
		return err
	}

	if err := m.Start(ctx); err != nil {
		return err
	}

	defer func() {
		// The session may have ended because the user interrupted it, so do
		// not let an already-cancelled context get in the way of teardown.
		ctx := context.WithoutCancel(ctx)

		if opts.KeepAlive {
			log.G(ctx).
				WithField("port", machine.DebugPort).
				Info("emulator left running, re-attach with 'target remote' or stop it manually")
			return
		}

		if err := m.Stop(ctx); err != nil {
			log.G(ctx).Warnf("could not stop emulator: %v", err)
		}
	}()

	debugger, err := gdb.NewDebugger(
		gdb.WithBin(config.G(ctx).Binaries.Gdb),
		gdb.WithScript(filepath.Join(project.Workdir(), gdb.DefaultCommandScript)),
	)
	if err != nil {
		return err
	}

	return debugger.Attach(ctx, project.Image(), machine.DebugPort)
}

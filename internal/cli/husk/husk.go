// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package husk

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"husk.sh/cmdfactory"
	"husk.sh/config"
	"husk.sh/internal/cli"
	"husk.sh/internal/cli/husk/build"
	"husk.sh/internal/cli/husk/clean"
	"husk.sh/internal/cli/husk/debug"
	"husk.sh/internal/cli/husk/nodisplay"
	"husk.sh/internal/cli/husk/run"
	"husk.sh/internal/cli/husk/version"
	iversion "husk.sh/internal/version"
	"husk.sh/log"
)

type HuskOptions struct {
	LogLevel string `long:"log-level" usage:"Set the log level verbosity (panic/fatal/error/warn/info/debug/trace)"`
	LogType  string `long:"log-type" usage:"Set the logger type (quiet/basic/json)"`
	NoColor  bool   `long:"no-color" usage:"Disable color output"`
}

func NewCmd() *cobra.Command {
	opts := &HuskOptions{}

	cmd, err := cmdfactory.New(opts, cobra.Command{
		Short: "Build and boot bare-metal RISC-V kernels",
		Use:   "husk [FLAGS] SUBCOMMAND",
		Long: heredoc.Docf(`
			Build and boot bare-metal RISC-V kernels.

			husk turns a tree of C and assembly sources into a bootable ELF
			image and drives it under the QEMU system emulator, with optional
			GDB debugging of the paused guest.

			VERSION
			  %s`, iversion.String()),
		Example: heredoc.Doc(`
			# Build the kernel in the current working directory
			$ husk build

			# Build and boot it on the serial console only
			$ husk no-display-run

			# Boot it paused and attach the debugger
			$ husk debug`),
	})
	if err != nil {
		panic("could not initialize root command: " + err.Error())
	}

	cmd.AddGroup(&cobra.Group{ID: "build", Title: "BUILD COMMANDS"})
	cmd.AddCommand(build.NewCmd())
	cmd.AddCommand(clean.NewCmd())

	cmd.AddGroup(&cobra.Group{ID: "run", Title: "RUN COMMANDS"})
	cmd.AddCommand(run.NewCmd())
	cmd.AddCommand(nodisplay.NewCmd())
	cmd.AddCommand(debug.NewCmd())

	cmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISCELLANEOUS COMMANDS"})
	cmd.AddCommand(version.NewCmd())

	// The logger lives in the command context by the time any subcommand
	// runs, so flag overrides are applied onto it here.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		logger := log.G(cmd.Context())

		if len(opts.LogLevel) > 0 {
			level, ok := log.Levels()[opts.LogLevel]
			if !ok {
				return cmdfactory.FlagErrorf("unknown log level: %s", opts.LogLevel)
			}

			logger.SetLevel(level)
		}

		if len(opts.LogType) > 0 {
			switch log.LoggerTypeFromString(opts.LogType) {
			case log.QUIET:
				logger.Formatter = new(logrus.TextFormatter)
			case log.JSON:
				logger.Formatter = new(logrus.JSONFormatter)
			default:
				formatter := new(log.TextFormatter)
				formatter.FullTimestamp = true
				formatter.DisableColors = opts.NoColor
				logger.Formatter = formatter
			}
		}

		if opts.NoColor {
			if formatter, ok := logger.Formatter.(*log.TextFormatter); ok {
				formatter.DisableColors = true
			}
		}

		return nil
	}

	return cmd
}

func (opts *HuskOptions) Run(_ context.Context, _ []string) error {
	return pflag.ErrHelp
}

// Main is the true entrypoint of husk: it wires up the configuration, the
// logger and signal-aware cancellation before dispatching to the requested
// subcommand, and reports the process exit status.
func Main(args []string) int {
	cmd := NewCmd()
	cmd.SetArgs(args)

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	copts := &cli.CliOptions{}

	for _, o := range []cli.CliOption{
		cli.WithDefaultConfigManager(),
		cli.WithDefaultLogger(),
	} {
		if err := o(copts); err != nil {
			log.L.Error(err)
			return 1
		}
	}

	ctx = config.WithConfigManager(ctx, copts.ConfigManager)
	ctx = log.WithLogger(ctx, copts.Logger)

	log.G(ctx).Debugf("husk %s", iversion.Version())

	return cmdfactory.Main(ctx, cmd)
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package gdb attaches an external debugger to the remote-debug stub of a
// paused emulator.
package gdb

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"husk.sh/exec"
	"husk.sh/internal/retrytimeout"
	"husk.sh/log"
)

// DefaultBinaryName is the cross debugger of the build target.
const DefaultBinaryName = "riscv64-unknown-elf-gdb"

// DefaultCommandScript is the preset command script loaded into the debugger
// session when present in the working directory.
const DefaultCommandScript = ".gdbinit"

// ConnectTimeout bounds how long the debugger waits for the remote-debug
// stub to accept connections.  There is no explicit readiness handshake with
// the emulator beyond this connection retry.
const ConnectTimeout = 10 * time.Second

// GdbConfig carries the command-line arguments of the debugger.
type GdbConfig struct {
	Quiet    bool     `flag:"-q"`
	Commands []string `flag:"-ex"`
	Script   string   `flag:"-x"`
}

type Debugger struct {
	opts *DebuggerOptions
}

// NewDebugger prepares a debugger front end with optional overrides.
func NewDebugger(dopts ...DebuggerOption) (*Debugger, error) {
	opts, err := NewDebuggerOptions(dopts...)
	if err != nil {
		return nil, err
	}

	return &Debugger{opts: opts}, nil
}

// Attach blocks until the remote-debug stub on the given local port accepts
// connections, then runs an interactive debugger session against it in the
// foreground, loading the kernel image's symbols and, when present, the
// preset command script.  Attach returns when the session ends.
func (d *Debugger) Attach(ctx context.Context, image string, port int) error {
	addr := fmt.Sprintf("localhost:%d", port)

	if err := retrytimeout.RetryTimeout(ConnectTimeout, func() error {
		conn, err := net.DialTimeout("tcp", addr, time.Second)
		if err != nil {
			return err
		}

		return conn.Close()
	}); err != nil {
		return fmt.Errorf("remote-debug stub on %s never became reachable: %w", addr, err)
	}

	gcfg := GdbConfig{
		Quiet: true,
		Commands: []string{
			fmt.Sprintf("target remote %s", addr),
		},
	}

	if _, err := os.Stat(d.opts.script); err == nil {
		gcfg.Script = d.opts.script
	}

	e, err := exec.NewExecutable(d.opts.bin, gcfg, image)
	if err != nil {
		return fmt.Errorf("could not prepare debugger executable: %w", err)
	}

	process, err := exec.NewProcessFromExecutable(e,
		exec.WithStdin(os.Stdin),
		exec.WithStdout(os.Stdout),
		exec.WithStderr(os.Stderr),
	)
	if err != nil {
		return fmt.Errorf("could not prepare debugger process: %w", err)
	}

	log.G(ctx).Debug(process.Cmdline())

	if err := process.StartAndWait(ctx); err != nil {
		return fmt.Errorf("debugger session failed: %w", err)
	}

	return nil
}

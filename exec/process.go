// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package exec

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

type Process struct {
	executable *Executable
	opts       *ExecOptions
	cmd        *exec.Cmd
}

// NewProcess prepares a process to be executed from a given binary name and
// optional execution options.
func NewProcess(bin string, args []string, eopts ...ExecOption) (*Process, error) {
	executable, err := NewExecutable(bin, nil)
	if err != nil {
		return nil, err
	}

	executable.args = append(executable.args, args...)

	return NewProcessFromExecutable(executable, eopts...)
}

// NewProcessFromExecutable prepares a process to be executed from a given
// *Executable object and optional execution options.
func NewProcessFromExecutable(executable *Executable, eopts ...ExecOption) (*Process, error) {
	if executable == nil {
		return nil, fmt.Errorf("cannot prepare process without executable")
	}

	opts, err := NewExecOptions(eopts...)
	if err != nil {
		return nil, err
	}

	return &Process{
		executable: executable,
		opts:       opts,
	}, nil
}

// Cmdline returns the full command line to be executed.
func (e *Process) Cmdline() string {
	return strings.Join(
		append(
			[]string{e.executable.bin},
			e.executable.Args()...,
		),
		" ",
	)
}

// Start the process.
func (e *Process) Start(ctx context.Context) error {
	if e.opts.detach {
		// A detached process must not be tied to the lifetime of the caller's
		// context, it lives in its own session until explicitly signalled.
		e.cmd = exec.Command(e.executable.bin, e.executable.Args()...)
		e.cmd.SysProcAttr = &syscall.SysProcAttr{
			Setsid: true,
		}
	} else if e.opts.stdin != nil {
		// An interactive process owns the terminal and handles its own
		// signals, a cancelled context must not kill it mid-session.
		e.cmd = exec.Command(e.executable.bin, e.executable.Args()...)
	} else {
		e.cmd = exec.CommandContext(ctx, e.executable.bin, e.executable.Args()...)
	}

	if e.opts.stdout != nil {
		e.cmd.Stdout = e.opts.stdout
	}

	if e.opts.stderr != nil {
		e.cmd.Stderr = e.opts.stderr
	} else if e.opts.stdout != nil {
		e.cmd.Stderr = e.opts.stdout
	}

	if e.opts.stdin != nil {
		e.cmd.Stdin = e.opts.stdin
	}

	// Add any set environmental variables including the host's
	e.cmd.Env = append(os.Environ(), e.opts.env...)

	return e.cmd.Start()
}

// Wait for the process to complete.
func (e *Process) Wait() error {
	if e.cmd == nil {
		return fmt.Errorf("process has not yet started cannot wait")
	}

	err := e.cmd.Wait()
	for _, cb := range e.opts.callbacks {
		cb(e.cmd.ProcessState.ExitCode())
	}

	return err
}

// StartAndWait starts the process and waits for it to exit.
func (e *Process) StartAndWait(ctx context.Context) error {
	if err := e.Start(ctx); err != nil {
		return err
	}

	return e.Wait()
}

// Pid returns the process identifier of the running process.
func (e *Process) Pid() (int, error) {
	if e.cmd == nil || e.cmd.Process == nil {
		return 0, fmt.Errorf("process has not yet started")
	}

	return e.cmd.Process.Pid, nil
}

// Signal sends a signal to the running process.  If this fails, for example
// if the process is not running, this will return an error.
func (e *Process) Signal(signal syscall.Signal) error {
	if e.cmd == nil || e.cmd.Process == nil {
		return fmt.Errorf("process has not yet started")
	}

	return e.cmd.Process.Signal(signal)
}

// Kill sends a SIGKILL to the running process.  If this fails, for example if
// the process is not running, this will return an error.
func (e *Process) Kill() error {
	return e.Signal(syscall.SIGKILL)
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package qemu launches kernel images on the QEMU generic virtual RISC-V
// machine, either in the foreground or detached with a remote-debug stub.
package qemu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Masterminds/semver/v3"
	goprocess "github.com/shirou/gopsutil/v3/process"

	"husk.sh/exec"
	"husk.sh/internal/retrytimeout"
	"husk.sh/log"
	"husk.sh/machine"
)

// QemuSystemRiscv64 is the system emulator of the build target.
const QemuSystemRiscv64 = "qemu-system-riscv64"

// QemuVersionMinimum is the oldest QEMU the -machine virt parameters are
// known to work against.
var QemuVersionMinimum = semver.MustParse("4.2.0")

const (
	pidFileName = "qemu.pid"
	logFileName = "qemu.log"
)

// Machine is a single QEMU invocation prepared for a kernel image and a
// launch profile.
type Machine struct {
	bin     string
	config  *QemuConfig
	opts    *MachineOptions
	process *exec.Process
}

// NewMachine prepares a QEMU invocation for the given kernel image under the
// given launch profile.  The emulator binary is probed for a supported
// version before anything is launched.
func NewMachine(ctx context.Context, profile machine.LaunchProfile, kernel string, mopts ...MachineOption) (*Machine, error) {
	opts, err := NewMachineOptions(mopts...)
	if err != nil {
		return nil, err
	}

	version, err := GetQemuVersionFromBin(ctx, opts.bin)
	if err != nil {
		return nil, err
	}

	if version.LessThan(QemuVersionMinimum) {
		return nil, fmt.Errorf("unsupported QEMU version: %s: please upgrade to at least %s", version, QemuVersionMinimum)
	}

	qopts := []QemuOption{}
	if profile == machine.LaunchProfileDebug {
		qopts = append(qopts, WithPidFile(filepath.Join(opts.stateDir, pidFileName)))
	}

	qcfg, err := NewQemuConfigFromProfile(profile, kernel, qopts...)
	if err != nil {
		return nil, fmt.Errorf("could not generate QEMU config: %w", err)
	}

	return &Machine{
		bin:    opts.bin,
		config: qcfg,
		opts:   opts,
	}, nil
}

// Config returns the rendered QEMU configuration.
func (m *Machine) Config() *QemuConfig {
	return m.config
}

// Run launches the emulator in the foreground, with the serial console wired
// to the invoking terminal, and blocks until it exits on its own terms.
func (m *Machine) Run(ctx context.Context) error {
	e, err := exec.NewExecutable(m.bin, *m.config)
	if err != nil {
		return fmt.Errorf("could not prepare QEMU executable: %w", err)
	}

	process, err := exec.NewProcessFromExecutable(e,
		exec.WithStdin(os.Stdin),
		exec.WithStdout(os.Stdout),
		exec.WithStderr(os.Stderr),
	)
	if err != nil {
		return fmt.Errorf("could not prepare QEMU process: %w", err)
	}

	log.G(ctx).Debug(process.Cmdline())

	if err := process.StartAndWait(ctx); err != nil {
		return fmt.Errorf("could not start QEMU process: %w", err)
	}

	return nil
}

// Start launches the emulator detached in its own session, with its output
// captured to a log file inside the state directory.  It returns once the
// emulator has written its pidfile, i.e. once the machine exists and, under
// the debug profile, the remote-debug stub is listening.
func (m *Machine) Start(ctx context.Context) error {
	if err := os.MkdirAll(m.opts.stateDir, 0o755); err != nil {
		return err
	}

	logFile := filepath.Join(m.opts.stateDir, logFileName)

	fi, err := os.Create(logFile)
	if err != nil {
		return err
	}

	defer fi.Close()

	e, err := exec.NewExecutable(m.bin, *m.config)
	if err != nil {
		return fmt.Errorf("could not prepare QEMU executable: %w", err)
	}

	m.process, err = exec.NewProcessFromExecutable(e,
		exec.WithStdout(fi),
		exec.WithDetach(true),
	)
	if err != nil {
		return fmt.Errorf("could not prepare QEMU process: %w", err)
	}

	log.G(ctx).Debug(m.process.Cmdline())

	if err := m.process.Start(ctx); err != nil {
		return fmt.Errorf("could not start QEMU process: %w", err)
	}

	// Surface an early exit, e.g. a bad argument, with the contents of the
	// QEMU log rather than a dangling pidfile wait.
	if err := retrytimeout.RetryTimeout(5*time.Second, func() error {
		if _, err := os.Stat(m.config.PidFile); err != nil {
			return fmt.Errorf("pidfile not yet written")
		}

		return nil
	}); err != nil {
		if errLog, err2 := os.ReadFile(logFile); err2 == nil && len(errLog) > 0 {
			err = errors.Join(errors.New(strings.TrimSpace(string(errLog))), err)
		}

		return fmt.Errorf("could not start QEMU process: %w", err)
	}

	return nil
}

// Stop terminates a detached emulator and waits for it to disappear.  QEMU
// removes its pidfile on exit, which is used as the teardown barrier.
func (m *Machine) Stop(ctx context.Context) error {
	if m.process != nil {
		if err := m.process.Signal(syscall.SIGTERM); err != nil {
			return err
		}
	} else {
		process, err := processFromPidFile(m.config.PidFile)
		if err != nil {
			return err
		}

		if err := process.TerminateWithContext(ctx); err != nil {
			return err
		}
	}

	if err := retrytimeout.RetryTimeout(5*time.Second, func() error {
		if _, err := os.ReadFile(m.config.PidFile); !os.IsNotExist(err) {
			return fmt.Errorf("process still active")
		}

		return nil
	}); err != nil {
		return err
	}

	return nil
}

// Running reports whether a previously detached emulator is still alive.
func (m *Machine) Running() bool {
	process, err := processFromPidFile(m.config.PidFile)
	if err != nil {
		return false
	}

	running, err := process.IsRunning()

	return err == nil && running
}

func processFromPidFile(pidFile string) (*goprocess.Process, error) {
	raw, err := os.ReadFile(pidFile)
	if err != nil {
		return nil, fmt.Errorf("could not read pidfile %s: %w", pidFile, err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("could not parse pidfile %s: %w", pidFile, err)
	}

	process, err := goprocess.NewProcess(int32(pid))
	if err != nil {
		return nil, fmt.Errorf("could not look up process %d: %w", pid, err)
	}

	return process, nil
}

// GetQemuVersionFromBin runs the QEMU binary with -version and parses the
// reported release.
func GetQemuVersionFromBin(ctx context.Context, bin string) (*semver.Version, error) {
	e, err := exec.NewExecutable(bin, QemuConfig{
		Version: true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not prepare QEMU executable: %w", err)
	}

	var buf bytes.Buffer

	process, err := exec.NewProcessFromExecutable(e,
		exec.WithStdout(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("could not prepare QEMU process: %w", err)
	}

	if err := process.StartAndWait(ctx); err != nil {
		return nil, fmt.Errorf("could not start and wait for QEMU process: %w", err)
	}

	ret := strings.Split(strings.TrimSpace(buf.String()), "\n")[0]

	if !strings.HasPrefix(ret, "QEMU emulator version ") {
		return nil, fmt.Errorf("malformed return value cannot parse QEMU version")
	}

	ret = strings.TrimPrefix(ret, "QEMU emulator version ")

	// Some QEMU versions include the OS distribution that it was compiled
	// for after the version number (surrounded by brackets).  In every case,
	// just split the string and gather everything before the first bracket.
	return semver.NewVersion(strings.TrimSpace(strings.Split(ret, " (")[0]))
}

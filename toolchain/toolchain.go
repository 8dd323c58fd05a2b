// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package toolchain drives the cross compiler which translates freestanding
// C and assembly units into objects and links them, against a memory layout
// descriptor, into a single bootable kernel image.  The target identity is a
// fixed property of a build: a rv64gc bare-metal executable with the lp64d
// ABI and the medany code model.
package toolchain

import (
	"context"
	"fmt"

	"husk.sh/exec"
	"husk.sh/log"
)

// DefaultBinaryName is the executable of the cross toolchain front end, used
// for both translation and linking.
const DefaultBinaryName = "riscv64-unknown-elf-gcc"

// targetFlags apply to every translation unit.  The same rule covers C and
// assembly units since the instruction-set and ABI flags are identical for
// both.
var targetFlags = []string{
	"-march=rv64gc",
	"-mabi=lp64d",
	"-mcmodel=medany",
	"-ffreestanding",
	"-fno-common",
	"-fno-stack-protector",
	"-fno-pie",
	"-nostdlib",
	"-O2",
	"-g",
	"-Wall",
}

// linkFlags apply to the final image only.
var linkFlags = []string{
	"-nostdlib",
	"-static",
	"-Wl,--build-id=none",
}

// GccConfig carries the per-invocation arguments of the front end.  The
// fixed target flags and the input paths are appended as raw arguments.
type GccConfig struct {
	Compile      bool   `flag:"-c"`
	Output       string `flag:"-o"`
	LinkerScript string `flag:"-T"`
}

type Toolchain struct {
	opts *ToolchainOptions
}

// NewToolchain prepares a cross toolchain front end with optional overrides,
// e.g. a distribution-prefixed compiler executable.
func NewToolchain(topts ...ToolchainOption) (*Toolchain, error) {
	opts, err := NewToolchainOptions(topts...)
	if err != nil {
		return nil, err
	}

	return &Toolchain{opts: opts}, nil
}

// Compile translates a single source unit into one object artifact.  The
// same invocation covers both C and assembly units.  Diagnostics from the
// underlying compiler stream through to the configured stderr unmodified.
func (tc *Toolchain) Compile(ctx context.Context, src, obj string) error {
	e, err := exec.NewExecutable(tc.opts.bin, GccConfig{
		Compile: true,
		Output:  obj,
	}, append(targetFlags, src)...)
	if err != nil {
		return fmt.Errorf("could not prepare compiler executable: %w", err)
	}

	process, err := exec.NewProcessFromExecutable(e, tc.opts.eopts...)
	if err != nil {
		return fmt.Errorf("could not prepare compiler process: %w", err)
	}

	log.G(ctx).Debug(process.Cmdline())

	if err := process.StartAndWait(ctx); err != nil {
		return fmt.Errorf("compiling %s: %w", src, err)
	}

	return nil
}

// Link combines all object artifacts, in accordance with the memory layout
// descriptor given by ldscript, into the executable at out.
func (tc *Toolchain) Link(ctx context.Context, ldscript, out string, objs ...string) error {
	if len(objs) == 0 {
		return fmt.Errorf("cannot link without object artifacts")
	}

	e, err := exec.NewExecutable(tc.opts.bin, GccConfig{
		Output:       out,
		LinkerScript: ldscript,
	}, append(append([]string{}, linkFlags...), objs...)...)
	if err != nil {
		return fmt.Errorf("could not prepare linker executable: %w", err)
	}

	process, err := exec.NewProcessFromExecutable(e, tc.opts.eopts...)
	if err != nil {
		return fmt.Errorf("could not prepare linker process: %w", err)
	}

	log.G(ctx).Debug(process.Cmdline())

	if err := process.StartAndWait(ctx); err != nil {
		return fmt.Errorf("linking %s: %w", out, err)
	}

	return nil
}

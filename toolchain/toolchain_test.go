// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package toolchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"husk.sh/exec"
)

func TestGccConfigCompileArgs(t *testing.T) {
	args, err := exec.ParseInterfaceArgs(GccConfig{
		Compile: true,
		Output:  "build/main.o",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"-c", "-o", "build/main.o"}, args)
}

func TestGccConfigLinkArgs(t *testing.T) {
	args, err := exec.ParseInterfaceArgs(GccConfig{
		Output:       "kernel.elf",
		LinkerScript: "linker.ld",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"-o", "kernel.elf", "-T", "linker.ld"}, args)
}

func TestNewToolchainDefaults(t *testing.T) {
	tc, err := NewToolchain()
	require.NoError(t, err)

	assert.Equal(t, DefaultBinaryName, tc.opts.bin)
}

func TestNewToolchainWithBin(t *testing.T) {
	tc, err := NewToolchain(WithBin("riscv64-linux-gnu-gcc"))
	require.NoError(t, err)

	assert.Equal(t, "riscv64-linux-gnu-gcc", tc.opts.bin)

	// An empty override falls back to the default executable.
	tc, err = NewToolchain(WithBin(""))
	require.NoError(t, err)

	assert.Equal(t, DefaultBinaryName, tc.opts.bin)
}

func TestLinkRequiresObjects(t *testing.T) {
	tc, err := NewToolchain()
	require.NoError(t, err)

	err = tc.Link(context.Background(), "linker.ld", "kernel.elf")
	assert.Error(t, err)
}

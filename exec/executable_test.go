// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memory struct {
	Size string
}

func (m memory) String() string {
	return "size=" + m.Size
}

type nestedConfig struct {
	Append string `flag:"-append"`
}

type testConfig struct {
	Enabled bool     `flag:"-enabled"`
	Output  string   `flag:"-o"`
	Memory  memory   `flag:"-m"`
	Serial  []string `flag:"-serial"`
	Nested  nestedConfig
}

func TestParseInterfaceArgs(t *testing.T) {
	testCases := []struct {
		desc   string
		face   testConfig
		expect []string
	}{
		{
			desc:   "zero values serialize to nothing",
			face:   testConfig{Memory: memory{Size: "64M"}},
			expect: []string{"-m", "size=64M"},
		},
		{
			desc: "set booleans emit the bare flag",
			face: testConfig{
				Enabled: true,
				Memory:  memory{Size: "64M"},
			},
			expect: []string{"-enabled", "-m", "size=64M"},
		},
		{
			desc: "slices repeat the flag per element",
			face: testConfig{
				Memory: memory{Size: "64M"},
				Serial: []string{"stdio", "null"},
			},
			expect: []string{"-m", "size=64M", "-serial", "stdio", "-serial", "null"},
		},
		{
			desc: "untagged structures are flattened recursively",
			face: testConfig{
				Memory: memory{Size: "64M"},
				Nested: nestedConfig{Append: "console=ttyS0"},
			},
			expect: []string{"-m", "size=64M", "-append", "console=ttyS0"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			args, err := ParseInterfaceArgs(tc.face)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, args)
		})
	}
}

func TestParseInterfaceArgsRejectsPointers(t *testing.T) {
	_, err := ParseInterfaceArgs(&testConfig{})
	assert.Error(t, err)
}

func TestNewExecutable(t *testing.T) {
	e, err := NewExecutable("qemu-system-riscv64",
		testConfig{Output: "out.elf"},
		"-nographic",
	)
	require.NoError(t, err)

	assert.Equal(t, "qemu-system-riscv64", e.Bin())

	// Raw arguments always precede the serialized interface arguments.
	assert.Equal(t, []string{"-nographic", "-o", "out.elf"}, e.Args())
}

func TestNewExecutableSplitsBin(t *testing.T) {
	e, err := NewExecutable("gcc -pipe", nil)
	require.NoError(t, err)

	assert.Equal(t, "gcc", e.Bin())
	assert.Equal(t, []string{"-pipe"}, e.Args())
}

func TestNewExecutableRequiresBin(t *testing.T) {
	_, err := NewExecutable("", nil)
	assert.Error(t, err)
}

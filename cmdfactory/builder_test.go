// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package cmdfactory

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type BuildOptions struct {
	Force bool   `long:"force" short:"F" usage:"Force the operation"`
	Jobs  int    `long:"jobs" short:"j" usage:"Number of jobs"`
	Out   string `long:"out" usage:"Output path" default:"kernel.elf"`
}

func (opts *BuildOptions) Run(_ context.Context, _ []string) error {
	return nil
}

func TestName(t *testing.T) {
	assert.Equal(t, "build", Name(&BuildOptions{}))
}

func TestNewAttributesFlags(t *testing.T) {
	opts := &BuildOptions{}

	cmd, err := New(opts, cobra.Command{
		Use: "build [FLAGS] [DIR]",
	})
	require.NoError(t, err)

	require.NoError(t, cmd.ParseFlags([]string{"--force", "-j", "4"}))

	assert.True(t, opts.Force)
	assert.Equal(t, 4, opts.Jobs)

	// Untouched flags keep their tagged default.
	assert.Equal(t, "kernel.elf", opts.Out)
}

func TestNewDerivesUse(t *testing.T) {
	cmd, err := New(&BuildOptions{}, cobra.Command{})
	require.NoError(t, err)

	assert.Equal(t, "build [FLAGS]", cmd.Use)
}

func TestMaxDirArgs(t *testing.T) {
	validate := MaxDirArgs(1)
	cmd := &cobra.Command{Use: "test"}

	assert.NoError(t, validate(cmd, nil))
	assert.NoError(t, validate(cmd, []string{t.TempDir()}))
	assert.Error(t, validate(cmd, []string{"/nonexistent/path"}))
	assert.Error(t, validate(cmd, []string{t.TempDir(), t.TempDir()}))
}

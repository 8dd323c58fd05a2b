// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	c, err := NewDefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "basic", c.Log.Type)
	assert.False(t, c.NoColor)
	assert.Empty(t, c.Binaries.CC)
}

func TestYamlFeeder(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")

	err := os.WriteFile(file, []byte(`
log:
  level: debug
binaries:
  qemu: /opt/qemu/bin/qemu-system-riscv64
`), 0o600)
	require.NoError(t, err)

	cm, err := NewConfigManager(WithFile(file, false))
	require.NoError(t, err)

	assert.Equal(t, "debug", cm.Config.Log.Level)
	assert.Equal(t, "/opt/qemu/bin/qemu-system-riscv64", cm.Config.Binaries.Qemu)

	// Values absent from the file keep their defaults.
	assert.Equal(t, "basic", cm.Config.Log.Type)
}

func TestYamlFeederIgnoresEmptyFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	cm, err := NewConfigManager(WithFile(file, false))
	require.NoError(t, err)

	assert.Equal(t, "info", cm.Config.Log.Level)
}

func TestEnvFeederTakesPrecedence(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")

	err := os.WriteFile(file, []byte("log:\n  level: warn\n"), 0o600)
	require.NoError(t, err)

	t.Setenv("HUSK_LOG_LEVEL", "trace")
	t.Setenv("HUSK_BINARIES_CC", "riscv64-linux-gnu-gcc")

	cm, err := NewConfigManager(WithFile(file, false))
	require.NoError(t, err)

	assert.Equal(t, "trace", cm.Config.Log.Level)
	assert.Equal(t, "riscv64-linux-gnu-gcc", cm.Config.Binaries.CC)
}

func TestWithFileForceCreate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "husk", "config.yaml")

	cm, err := NewConfigManager(WithFile(file, true))
	require.NoError(t, err)
	assert.Equal(t, file, cm.ConfigFile)

	_, err = os.Stat(file)
	assert.NoError(t, err)
}

func TestManagerWrite(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")

	cm, err := NewConfigManager(WithFile(file, true))
	require.NoError(t, err)

	cm.Config.Binaries.Gdb = "gdb-multiarch"
	require.NoError(t, cm.Write())

	again, err := NewConfigManager(WithFile(file, false))
	require.NoError(t, err)

	assert.Equal(t, "gdb-multiarch", again.Config.Binaries.Gdb)
}

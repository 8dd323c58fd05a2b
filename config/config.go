// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

// Config holds the ambient, user-tunable settings of husk.  The identity of
// the build target (ISA, ABI, optimization level) is deliberately not
// configurable here: those are fixed constants of a build, see the toolchain
// package.
type Config struct {
	NoColor bool `yaml:"no_color" env:"HUSK_NO_COLOR" long:"no-color" usage:"Disable color output" default:"false"`

	Log struct {
		Level      string `yaml:"level" env:"HUSK_LOG_LEVEL" long:"log-level" usage:"Log level verbosity" default:"info"`
		Timestamps bool   `yaml:"timestamps" env:"HUSK_LOG_TIMESTAMPS" long:"log-timestamps" usage:"Enable log timestamps"`
		Type       string `yaml:"type" env:"HUSK_LOG_TYPE" long:"log-type" usage:"Log type" default:"basic"`
	} `yaml:"log"`

	// Binaries optionally overrides the executables husk invokes, e.g. to
	// point at gdb-multiarch or a distribution-prefixed cross compiler.
	Binaries struct {
		CC   string `yaml:"cc,omitempty" env:"HUSK_BINARIES_CC" long:"with-cc" usage:"Override the cross compiler executable"`
		Qemu string `yaml:"qemu,omitempty" env:"HUSK_BINARIES_QEMU" long:"with-qemu" usage:"Override the QEMU system emulator executable"`
		Gdb  string `yaml:"gdb,omitempty" env:"HUSK_BINARIES_GDB" long:"with-gdb" usage:"Override the debugger executable"`
	} `yaml:"binaries,omitempty"`
}

// NewDefaultConfig returns a Config seeded with the values of each
// attribute's `default` tag.
func NewDefaultConfig() (*Config, error) {
	c := &Config{}

	if err := setDefaults(c); err != nil {
		return nil, err
	}

	return c, nil
}

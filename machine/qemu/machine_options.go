// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package qemu

import (
	"fmt"
	"os"
)

type MachineOptions struct {
	bin      string
	stateDir string
}

type MachineOption func(mo *MachineOptions) error

func NewMachineOptions(mopts ...MachineOption) (*MachineOptions, error) {
	options := &MachineOptions{
		bin: QemuSystemRiscv64,
	}

	for _, o := range mopts {
		if err := o(options); err != nil {
			return nil, fmt.Errorf("could not apply option: %v", err)
		}
	}

	if len(options.stateDir) == 0 {
		options.stateDir = os.TempDir()
	}

	return options, nil
}

// WithBin overrides the emulator executable.
func WithBin(bin string) MachineOption {
	return func(mo *MachineOptions) error {
		if len(bin) > 0 {
			mo.bin = bin
		}
		return nil
	}
}

// WithStateDir sets the directory holding the pidfile and emulator log of a
// detached machine.
func WithStateDir(dir string) MachineOption {
	return func(mo *MachineOptions) error {
		mo.stateDir = dir
		return nil
	}
}

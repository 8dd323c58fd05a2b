// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package qemu

import (
	"fmt"

	"husk.sh/machine"
)

type QemuOption func(*QemuConfig) error

// NewQemuConfig accepts a series of options and returns a rendered
// *QemuConfig structure.
func NewQemuConfig(qopts ...QemuOption) (*QemuConfig, error) {
	qcfg := &QemuConfig{}

	for _, o := range qopts {
		if err := o(qcfg); err != nil {
			return nil, fmt.Errorf("could not apply option: %v", err)
		}
	}

	return qcfg, nil
}

// NewQemuConfigFromProfile renders the fixed hardware description of the
// generic virtual RISC-V machine for the given launch profile: no firmware,
// the kernel image loaded directly as the boot object, four harts, 512 MiB
// of memory and the serial console multiplexed onto the invoking terminal.
func NewQemuConfigFromProfile(profile machine.LaunchProfile, kernel string, qopts ...QemuOption) (*QemuConfig, error) {
	base := []QemuOption{
		WithBios("none"),
		WithKernel(kernel),
		WithMachine(QemuMachine{Type: QemuMachineTypeVirt}),
		WithMemory(QemuMemory{Size: machine.MemoryMB, Unit: QemuMemoryUnitMB}),
		WithSMP(QemuSMP{CPUs: machine.ProcessorCount}),
		WithSerial(QemuHostCharDevStdio{Multiplex: true}),
	}

	switch profile {
	case machine.LaunchProfileInteractive:
		// The default graphical output device stays attached.

	case machine.LaunchProfileHeadless:
		base = append(base, WithDisplay(QemuDisplayNone{}))

	case machine.LaunchProfileDebug:
		base = append(base,
			WithDisplay(QemuDisplayNone{}),
			WithNoStart(true),
			WithGDB(QemuGDB{Port: machine.DebugPort}),
		)

	default:
		return nil, fmt.Errorf("unsupported launch profile: %s", profile)
	}

	return NewQemuConfig(append(base, qopts...)...)
}

func WithBios(bios string) QemuOption {
	return func(qcfg *QemuConfig) error {
		qcfg.Bios = bios
		return nil
	}
}

func WithKernel(kernel string) QemuOption {
	return func(qcfg *QemuConfig) error {
		if len(kernel) == 0 {
			return fmt.Errorf("kernel image path cannot be empty")
		}

		qcfg.Kernel = kernel
		return nil
	}
}

func WithMachine(machine QemuMachine) QemuOption {
	return func(qcfg *QemuConfig) error {
		qcfg.Machine = machine
		return nil
	}
}

func WithMemory(memory QemuMemory) QemuOption {
	return func(qcfg *QemuConfig) error {
		qcfg.Memory = memory
		return nil
	}
}

func WithSMP(smp QemuSMP) QemuOption {
	return func(qcfg *QemuConfig) error {
		qcfg.SMP = smp
		return nil
	}
}

func WithSerial(serial QemuHostCharDev) QemuOption {
	return func(qcfg *QemuConfig) error {
		qcfg.Serial = append(qcfg.Serial, serial)
		return nil
	}
}

func WithDisplay(display QemuDisplay) QemuOption {
	return func(qcfg *QemuConfig) error {
		qcfg.Display = display
		return nil
	}
}

func WithGDB(gdb QemuGDB) QemuOption {
	return func(qcfg *QemuConfig) error {
		qcfg.GDB = gdb
		return nil
	}
}

func WithNoStart(noStart bool) QemuOption {
	return func(qcfg *QemuConfig) error {
		qcfg.NoStart = noStart
		return nil
	}
}

func WithPidFile(pidFile string) QemuOption {
	return func(qcfg *QemuConfig) error {
		qcfg.PidFile = pidFile
		return nil
	}
}

func WithName(name string) QemuOption {
	return func(qcfg *QemuConfig) error {
		qcfg.Name = name
		return nil
	}
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package machine describes the generic virtual RISC-V machine a kernel
// image is launched on, and the profiles it can be launched under.
package machine

// LaunchProfile selects how the emulator is invoked against a kernel image.
type LaunchProfile string

const (
	// LaunchProfileInteractive attaches a graphical output device and
	// multiplexes the serial console onto the controlling terminal.
	LaunchProfileInteractive = LaunchProfile("interactive")

	// LaunchProfileHeadless uses identical machine parameters to the
	// interactive profile but attaches no graphical output device.
	LaunchProfileHeadless = LaunchProfile("headless")

	// LaunchProfileDebug halts the virtual CPU at reset and exposes a
	// remote-debug stub for an external debugger to attach to.
	LaunchProfileDebug = LaunchProfile("debug")
)

func (lp LaunchProfile) String() string {
	return string(lp)
}

// Fixed parameters of the virtual machine.  These are a property of the
// target, not runtime configuration.
const (
	// ProcessorCount is the number of virtual harts.
	ProcessorCount = 4

	// MemoryMB is the guest memory size in MiB.
	MemoryMB = 512

	// DebugPort is the local TCP port of the remote-debug stub under the
	// debug profile.
	DebugPort = 1234
)

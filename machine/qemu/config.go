// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package qemu

// QemuConfig carries the command-line arguments for qemu-system-*.  Field
// order determines argument order.
type QemuConfig struct {
	Bios    string            `flag:"-bios"    json:"bios,omitempty"`
	Display QemuDisplay       `flag:"-display" json:"display,omitempty"`
	GDB     QemuGDB           `flag:"-gdb"     json:"gdb,omitempty"`
	Kernel  string            `flag:"-kernel"  json:"kernel,omitempty"`
	Machine QemuMachine       `flag:"-machine" json:"machine,omitempty"`
	Memory  QemuMemory        `flag:"-m"       json:"memory,omitempty"`
	Name    string            `flag:"-name"    json:"name,omitempty"`
	NoStart bool              `flag:"-S"       json:"no_start,omitempty"`
	PidFile string            `flag:"-pidfile" json:"pidfile,omitempty"`
	Serial  []QemuHostCharDev `flag:"-serial"  json:"serial,omitempty"`
	SMP     QemuSMP           `flag:"-smp"     json:"smp,omitempty"`
	Version bool              `flag:"-version" json:"-"`
}

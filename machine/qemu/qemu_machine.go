// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package qemu

import "strings"

type QemuMachineType string

const (
	QemuMachineTypeVirt = QemuMachineType("virt")
	QemuMachineTypeNone = QemuMachineType("none")
)

func (qmt QemuMachineType) String() string {
	return string(qmt)
}

type QemuMachineAccelerator string

const (
	QemuMachineAccelKVM = QemuMachineAccelerator("kvm")
	QemuMachineAccelTCG = QemuMachineAccelerator("tcg")
)

func (qma QemuMachineAccelerator) String() string {
	return string(qma)
}

type QemuMachine struct {
	Type         QemuMachineType          `json:"type,omitempty"`
	Accelerators []QemuMachineAccelerator `json:"accelerators,omitempty"`
}

func (qm QemuMachine) String() string {
	if len(qm.Type) == 0 {
		return ""
	}

	var ret strings.Builder
	ret.WriteString(qm.Type.String())

	if len(qm.Accelerators) > 0 {
		accels := make([]string, 0, len(qm.Accelerators))
		for _, accel := range qm.Accelerators {
			accels = append(accels, accel.String())
		}

		ret.WriteString(",accel=")
		ret.WriteString(strings.Join(accels, ":"))
	}

	return ret.String()
}

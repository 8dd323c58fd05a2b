// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package qemu

import (
	"strconv"
	"strings"
)

type QemuMemoryUnit string

const (
	QemuMemoryUnitMB = QemuMemoryUnit("M")
	QemuMemoryUnitGB = QemuMemoryUnit("G")
)

const QemuMemoryDefault = 64

type QemuMemory struct {
	Size uint64         `json:"size,omitempty"`
	Unit QemuMemoryUnit `json:"unit,omitempty"`
}

func (qm QemuMemory) String() string {
	if qm.Size == 0 && len(qm.Unit) == 0 {
		return ""
	}

	if qm.Size == 0 {
		qm.Size = QemuMemoryDefault
	}
	if len(qm.Unit) == 0 {
		qm.Unit = QemuMemoryUnitMB
	}

	var ret strings.Builder
	ret.WriteString("size=")
	ret.WriteString(strconv.FormatUint(qm.Size, 10))
	ret.WriteString(string(qm.Unit))

	return ret.String()
}

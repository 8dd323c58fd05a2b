// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package qemu

import (
	"strconv"
	"strings"
)

type QemuSMP struct {
	// CPUs sets the number of CPUs (default is 1).
	CPUs uint64 `json:"cpus,omitempty"`

	// Cores is the number of CPU cores on one socket.
	Cores uint64 `json:"cores,omitempty"`

	// Threads is the number of threads on one CPU core.
	Threads uint64 `json:"threads,omitempty"`
}

func (qsmp QemuSMP) String() string {
	if qsmp.CPUs == 0 {
		return ""
	}

	var ret strings.Builder
	ret.WriteString("cpus=")
	ret.WriteString(strconv.FormatUint(qsmp.CPUs, 10))

	if qsmp.Cores > 0 {
		ret.WriteString(",cores=")
		ret.WriteString(strconv.FormatUint(qsmp.Cores, 10))
	}

	if qsmp.Threads > 0 {
		ret.WriteString(",threads=")
		ret.WriteString(strconv.FormatUint(qsmp.Threads, 10))
	}

	return ret.String()
}

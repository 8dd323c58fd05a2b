// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package qemu

import (
	"fmt"
)

// QemuGDB is the remote-debug stub backend, a TCP listener on a local port
// an external debugger can attach to while the virtual CPU is halted.
type QemuGDB struct {
	Port int `json:"port,omitempty"`
}

func (qg QemuGDB) String() string {
	if qg.Port == 0 {
		return ""
	}

	return fmt.Sprintf("tcp::%d", qg.Port)
}

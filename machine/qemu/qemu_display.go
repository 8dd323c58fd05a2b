// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package qemu

import "fmt"

type QemuDisplay interface {
	fmt.Stringer
}

// QemuDisplayNone attaches no graphical output device; the serial console
// remains the only guest I/O channel.
type QemuDisplayNone struct{}

func (qd QemuDisplayNone) String() string {
	return "none"
}

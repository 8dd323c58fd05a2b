// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package qemu

import "fmt"

// QemuHostCharDev is a host-side character device backend, e.g. for the
// guest's serial console.
type QemuHostCharDev interface {
	fmt.Stringer
}

// QemuHostCharDevStdio routes the device onto the invoking terminal's
// standard streams.  With Multiplex set, the QEMU monitor shares the stream.
type QemuHostCharDevStdio struct {
	Multiplex bool `json:"multiplex,omitempty"`
}

func (cd QemuHostCharDevStdio) String() string {
	if cd.Multiplex {
		return "mon:stdio"
	}

	return "stdio"
}

// QemuHostCharDevNull discards everything written to the device.
type QemuHostCharDevNull struct{}

func (cd QemuHostCharDevNull) String() string {
	return "null"
}

// QemuHostCharDevNone disconnects the device.
type QemuHostCharDevNone struct{}

func (cd QemuHostCharDevNone) String() string {
	return "none"
}

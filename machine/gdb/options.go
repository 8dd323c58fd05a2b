// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package gdb

import "fmt"

type DebuggerOptions struct {
	bin    string
	script string
}

type DebuggerOption func(do *DebuggerOptions) error

func NewDebuggerOptions(dopts ...DebuggerOption) (*DebuggerOptions, error) {
	options := &DebuggerOptions{
		bin:    DefaultBinaryName,
		script: DefaultCommandScript,
	}

	for _, o := range dopts {
		if err := o(options); err != nil {
			return nil, fmt.Errorf("could not apply option: %v", err)
		}
	}

	return options, nil
}

// WithBin overrides the debugger executable, e.g. gdb-multiarch.
func WithBin(bin string) DebuggerOption {
	return func(do *DebuggerOptions) error {
		if len(bin) > 0 {
			do.bin = bin
		}
		return nil
	}
}

// WithScript overrides the preset command script path.
func WithScript(script string) DebuggerOption {
	return func(do *DebuggerOptions) error {
		if len(script) > 0 {
			do.script = script
		}
		return nil
	}
}

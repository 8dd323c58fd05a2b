// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package toolchain

import (
	"io"
	"os"

	"husk.sh/exec"
)

type ToolchainOptions struct {
	bin   string
	eopts []exec.ExecOption
}

type ToolchainOption func(to *ToolchainOptions) error

func NewToolchainOptions(topts ...ToolchainOption) (*ToolchainOptions, error) {
	options := &ToolchainOptions{
		bin: DefaultBinaryName,
	}

	for _, o := range topts {
		if err := o(options); err != nil {
			return nil, err
		}
	}

	if len(options.eopts) == 0 {
		// Toolchain diagnostics are never swallowed: they belong to the
		// invoker's standard error stream.
		options.eopts = []exec.ExecOption{
			exec.WithStdout(os.Stdout),
			exec.WithStderr(os.Stderr),
		}
	}

	return options, nil
}

// WithBin overrides the toolchain executable.
func WithBin(bin string) ToolchainOption {
	return func(to *ToolchainOptions) error {
		if len(bin) > 0 {
			to.bin = bin
		}
		return nil
	}
}

// WithStdout sets the writer receiving the toolchain's standard output.
func WithStdout(stdout io.Writer) ToolchainOption {
	return func(to *ToolchainOptions) error {
		to.eopts = append(to.eopts, exec.WithStdout(stdout))
		return nil
	}
}

// WithStderr sets the writer receiving the toolchain's diagnostics.
func WithStderr(stderr io.Writer) ToolchainOption {
	return func(to *ToolchainOptions) error {
		to.eopts = append(to.eopts, exec.WithStderr(stderr))
		return nil
	}
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package cmdfactory

import (
	"os"

	"github.com/spf13/cobra"
)

// ExactArgs requires exactly n positional arguments, failing with msg
// otherwise.
func ExactArgs(n int, msg string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) > n {
			return FlagErrorf("too many arguments")
		}

		if len(args) < n {
			return FlagErrorf("%s", msg)
		}

		return nil
	}
}

// MaxDirArgs accepts up to n positional arguments, each of which must be an
// existing directory.  No argument is treated as the current working
// directory.
func MaxDirArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) > n {
			return FlagErrorf("expected no more than %d paths received %d", n, len(args))
		} else if len(args) == 0 {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			args = []string{cwd}
		}

		for _, path := range args {
			f, err := os.Stat(path)
			if err != nil || !f.IsDir() {
				return FlagErrorf("path is not a valid directory: %s", path)
			}
		}

		return nil
	}
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package version

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"husk.sh/cmdfactory"
	"husk.sh/internal/version"
)

type VersionOptions struct{}

// NewCmd instantiates the `version` subcommand.
func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&VersionOptions{}, cobra.Command{
		Short:   "Show husk version information",
		Use:     "version",
		Args:    cobra.NoArgs,
		GroupID: "misc",
	})
	if err != nil {
		panic("could not initialize subcommand: " + err.Error())
	}

	return cmd
}

func (opts *VersionOptions) Run(_ context.Context, _ []string) error {
	fmt.Println(version.String())
	return nil
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package main

import (
	"os"

	"husk.sh/internal/cli/husk"
)

func main() {
	os.Exit(husk.Main(os.Args[1:]))
}

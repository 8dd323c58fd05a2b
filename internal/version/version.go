// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package version

import (
	"fmt"
	"runtime"
)

// Injected at build time via -ldflags "-X husk.sh/internal/version.version=...".
var (
	version   = "No version provided"
	commit    = "No commit provided"
	buildTime = "No build timestamp provided"
)

func Version() string {
	return version
}

func Commit() string {
	return commit
}

func BuildTime() string {
	return buildTime
}

func String() string {
	return fmt.Sprintf("%s (%s) %s %s",
		version,
		commit,
		runtime.Version(),
		buildTime,
	)
}

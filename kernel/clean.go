// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package kernel

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"husk.sh/log"
)

// Clean deletes the kernel image and every object artifact.  Source units
// and the memory layout descriptor are never touched.  Invoking it when no
// artifacts exist is a no-op.
func (p *Project) Clean(ctx context.Context) error {
	log.G(ctx).
		WithField("build", p.relPath(p.buildDir)).
		Debug("removing build artifacts")

	if err := os.RemoveAll(p.buildDir); err != nil {
		return fmt.Errorf("could not remove build tree: %w", err)
	}

	if err := os.Remove(p.image); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not remove kernel image: %w", err)
	}

	return nil
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package kernel

import (
	"context"
	"fmt"
	"os"

	"husk.sh/log"
)

// Link combines the complete set of object artifacts, per the memory layout
// descriptor, into the kernel image.  Every discovered source unit must have
// a fresh object artifact; linking a partial image is refused.
//
// The link writes to a temporary file which is renamed onto the image only
// after the linker succeeds, so the previous image is left untouched on
// failure and a truncated image is never observable.
func (p *Project) Link(ctx context.Context) error {
	if p.toolchain == nil {
		return fmt.Errorf("project has no toolchain")
	}

	if _, err := os.Stat(p.ldscript); err != nil {
		return fmt.Errorf("%w: %s", ErrNoLinkerScript, p.ldscript)
	}

	units, err := p.Sources(ctx)
	if err != nil {
		return err
	}

	if len(units) == 0 {
		return fmt.Errorf("no translation units found under %s", p.sourceDir)
	}

	objs := make([]string, 0, len(units))

	for _, unit := range units {
		obj, err := p.ObjectPath(unit)
		if err != nil {
			return err
		}

		stale, err := Stale(unit.Path, obj)
		if err != nil {
			return err
		}

		if stale {
			return fmt.Errorf("missing or stale object artifact for %s", p.relPath(unit.Path))
		}

		objs = append(objs, obj)
	}

	log.G(ctx).
		WithField("image", p.relPath(p.image)).
		WithField("objects", len(objs)).
		Info("linking")

	tmp := p.image + ".tmp"

	if err := p.toolchain.Link(ctx, p.ldscript, tmp, objs...); err != nil {
		// Never leave a partial output behind.
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, p.image)
}

// ImageFresh reports whether the kernel image exists and is at least as
// fresh as every object artifact, the precondition for launching it.
func (p *Project) ImageFresh(ctx context.Context) (bool, error) {
	istat, err := os.Stat(p.image)
	if err != nil {
		return false, nil
	}

	units, err := p.Sources(ctx)
	if err != nil {
		return false, err
	}

	for _, unit := range units {
		obj, err := p.ObjectPath(unit)
		if err != nil {
			return false, err
		}

		ostat, err := os.Stat(obj)
		if err != nil {
			return false, nil
		}

		if ostat.ModTime().After(istat.ModTime()) {
			return false, nil
		}
	}

	return true, nil
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package kernel

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ObjectExtension is the suffix of every object artifact in the build tree.
const ObjectExtension = ".o"

// ObjectPath derives the object artifact location of a source unit: the same
// path relative to the build tree as the unit holds relative to the source
// tree, with the object extension.  Exactly one artifact exists per unit.
func (p *Project) ObjectPath(unit SourceUnit) (string, error) {
	rel, err := filepath.Rel(p.sourceDir, unit.Path)
	if err != nil {
		return "", fmt.Errorf("source unit %s is outside the source tree: %w", unit.Path, err)
	}

	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("source unit %s is outside the source tree", unit.Path)
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ObjectExtension

	return filepath.Join(p.buildDir, rel), nil
}

// Stale reports whether the object artifact at obj must be regenerated from
// the source at src: it is stale when absent or older than its source.  This
// is the incremental-build contract; it is a pure modification-record
// comparison so it can be exercised directly.
func Stale(src, obj string) (bool, error) {
	ostat, err := os.Stat(obj)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	} else if err != nil {
		return false, err
	}

	sstat, err := os.Stat(src)
	if err != nil {
		return false, err
	}

	return sstat.ModTime().After(ostat.ModTime()), nil
}

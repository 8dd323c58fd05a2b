// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package kernel

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
)

// SourceType discriminates the two kinds of translation unit the pipeline
// understands.  Classification is by file extension alone.
type SourceType string

const (
	SourceTypeC        = SourceType("c")
	SourceTypeAssembly = SourceType("assembly")
)

func (st SourceType) String() string {
	return string(st)
}

// SourceUnit is a single file to be independently compiled into one object
// artifact.  Its identity is its path; it is immutable once discovered.
type SourceUnit struct {
	// Path is the absolute location of the translation unit.
	Path string

	// Type is the unit's discriminant.
	Type SourceType
}

// SourceTypeByExtension classifies a file extension, reporting false for
// file kinds the pipeline does not collect.
func SourceTypeByExtension(ext string) (SourceType, bool) {
	switch ext {
	case ".c":
		return SourceTypeC, true
	case ".S", ".s":
		return SourceTypeAssembly, true
	default:
		return "", false
	}
}

// Sources walks the project's source tree and returns the translation units
// found, in lexical path order.  The explicit ordered walk keeps discovery
// deterministic across repeated calls absent filesystem changes.
func (p *Project) Sources(ctx context.Context) ([]SourceUnit, error) {
	var units []SourceUnit

	err := filepath.WalkDir(p.sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			return nil
		}

		st, ok := SourceTypeByExtension(filepath.Ext(path))
		if !ok {
			return nil
		}

		units = append(units, SourceUnit{
			Path: path,
			Type: st,
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not walk source tree %s: %w", p.sourceDir, err)
	}

	return units, nil
}

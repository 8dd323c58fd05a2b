// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package kernel_test

import (
	"context"
	"path/filepath"
	"testing"

	"husk.sh/kernel"
)

func TestSourceTypeByExtension(t *testing.T) {
	testCases := []struct {
		ext    string
		expect kernel.SourceType
		ok     bool
	}{
		{".c", kernel.SourceTypeC, true},
		{".S", kernel.SourceTypeAssembly, true},
		{".s", kernel.SourceTypeAssembly, true},
		{".h", "", false},
		{".ld", "", false},
		{".o", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		st, ok := kernel.SourceTypeByExtension(tc.ext)
		if ok != tc.ok || st != tc.expect {
			t.Errorf("SourceTypeByExtension(%q) = (%q, %t), expected (%q, %t)",
				tc.ext, st, ok, tc.expect, tc.ok)
		}
	}
}

func TestSourcesAreDeterministic(t *testing.T) {
	ctx := context.Background()
	workdir := makeWorkdir(t)
	project := makeProject(t, workdir, nil)

	units, err := project.Sources(ctx)
	if err != nil {
		t.Fatal("Sources:", err)
	}

	expect := []kernel.SourceUnit{
		{Path: filepath.Join(workdir, "src/boot/start.S"), Type: kernel.SourceTypeAssembly},
		{Path: filepath.Join(workdir, "src/main.c"), Type: kernel.SourceTypeC},
		{Path: filepath.Join(workdir, "src/trap.s"), Type: kernel.SourceTypeAssembly},
	}

	if len(units) != len(expect) {
		t.Fatalf("expected %d units, got %d: %v", len(expect), len(units), units)
	}

	for i := range expect {
		if units[i] != expect[i] {
			t.Errorf("unit %d: expected %+v, got %+v", i, expect[i], units[i])
		}
	}

	// Repeated discovery over an unchanged tree yields the identical slice.
	again, err := project.Sources(ctx)
	if err != nil {
		t.Fatal("Sources:", err)
	}

	for i := range units {
		if units[i] != again[i] {
			t.Errorf("unit %d changed between walks: %+v vs %+v", i, units[i], again[i])
		}
	}
}

func TestSourcesHonorCancellation(t *testing.T) {
	workdir := makeWorkdir(t)
	project := makeProject(t, workdir, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := project.Sources(ctx); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

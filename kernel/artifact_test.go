// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package kernel_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"husk.sh/kernel"
)

func TestObjectPathMirrorsSourceTree(t *testing.T) {
	workdir := makeWorkdir(t)
	project := makeProject(t, workdir, nil)

	testCases := []struct {
		src    string
		expect string
	}{
		{"src/main.c", "build/main.o"},
		{"src/trap.s", "build/trap.o"},
		{"src/boot/start.S", "build/boot/start.o"},
	}

	for _, tc := range testCases {
		obj, err := project.ObjectPath(kernel.SourceUnit{
			Path: filepath.Join(workdir, tc.src),
		})
		if err != nil {
			t.Fatalf("ObjectPath(%s): %v", tc.src, err)
		}

		if expect := filepath.Join(workdir, tc.expect); obj != expect {
			t.Errorf("ObjectPath(%s) = %s, expected %s", tc.src, obj, expect)
		}
	}
}

func TestObjectPathRejectsForeignUnits(t *testing.T) {
	workdir := makeWorkdir(t)
	project := makeProject(t, workdir, nil)

	_, err := project.ObjectPath(kernel.SourceUnit{
		Path: filepath.Join(workdir, "main.c"),
	})
	if err == nil {
		t.Fatal("expected error for a unit outside the source tree")
	}
}

func TestStale(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "main.c")
	obj := filepath.Join(dir, "main.o")

	if err := os.WriteFile(src, []byte("void kmain(void) {}"), 0o644); err != nil {
		t.Fatal("WriteFile:", err)
	}

	// A missing object is always stale.
	stale, err := kernel.Stale(src, obj)
	if err != nil {
		t.Fatal("Stale:", err)
	}
	if !stale {
		t.Error("a missing object must be stale")
	}

	if err := os.WriteFile(obj, []byte("obj"), 0o644); err != nil {
		t.Fatal("WriteFile:", err)
	}

	older := time.Now().Add(-time.Hour)
	if err := os.Chtimes(src, older, older); err != nil {
		t.Fatal("Chtimes:", err)
	}

	stale, err = kernel.Stale(src, obj)
	if err != nil {
		t.Fatal("Stale:", err)
	}
	if stale {
		t.Error("an object newer than its source must not be stale")
	}

	newer := time.Now().Add(time.Hour)
	if err := os.Chtimes(src, newer, newer); err != nil {
		t.Fatal("Chtimes:", err)
	}

	stale, err = kernel.Stale(src, obj)
	if err != nil {
		t.Fatal("Stale:", err)
	}
	if !stale {
		t.Error("an object older than its source must be stale")
	}
}

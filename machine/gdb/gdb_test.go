// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package gdb

import (
	"testing"

	"husk.sh/exec"
)

func TestGdbConfigArgs(t *testing.T) {
	args, err := exec.ParseInterfaceArgs(GdbConfig{
		Quiet: true,
		Commands: []string{
			"target remote localhost:1234",
		},
		Script: ".gdbinit",
	})
	if err != nil {
		t.Fatal("ParseInterfaceArgs:", err)
	}

	expect := []string{
		"-q",
		"-ex", "target remote localhost:1234",
		"-x", ".gdbinit",
	}

	if len(args) != len(expect) {
		t.Fatalf("expected args %q, got %q", expect, args)
	}
	for i := range expect {
		if args[i] != expect[i] {
			t.Fatalf("expected args %q, got %q", expect, args)
		}
	}
}

func TestNewDebuggerDefaults(t *testing.T) {
	d, err := NewDebugger()
	if err != nil {
		t.Fatal("NewDebugger:", err)
	}

	if d.opts.bin != DefaultBinaryName {
		t.Errorf("expected default binary %s, got %s", DefaultBinaryName, d.opts.bin)
	}
	if d.opts.script != DefaultCommandScript {
		t.Errorf("expected default script %s, got %s", DefaultCommandScript, d.opts.script)
	}
}

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package kernel_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"husk.sh/kernel"
)

// fakeToolchain is an in-memory translation backend: compiling writes a stub
// object file, linking concatenates a marker with the object count.  It
// records every call so staleness decisions can be asserted.
type fakeToolchain struct {
	mu       sync.Mutex
	compiled []string
	linked   int

	// failOn makes compilation of the named source fail.
	failOn string

	// failLink makes every link attempt fail before writing output.
	failLink bool
}

func (tc *fakeToolchain) Compile(_ context.Context, src, obj string) error {
	tc.mu.Lock()
	tc.compiled = append(tc.compiled, src)
	tc.mu.Unlock()

	if tc.failOn != "" && filepath.Base(src) == tc.failOn {
		return fmt.Errorf("compiling %s: exit status 1", src)
	}

	return os.WriteFile(obj, []byte("obj:"+filepath.Base(src)), 0o644)
}

func (tc *fakeToolchain) Link(_ context.Context, ldscript, out string, objs ...string) error {
	tc.mu.Lock()
	tc.linked++
	tc.mu.Unlock()

	if tc.failLink {
		return fmt.Errorf("linking %s: exit status 1", out)
	}

	if _, err := os.Stat(ldscript); err != nil {
		return err
	}

	return os.WriteFile(out, []byte(fmt.Sprintf("image:%d", len(objs))), 0o644)
}

func (tc *fakeToolchain) compileCount() int {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return len(tc.compiled)
}

// makeWorkdir lays out a small kernel project: three translation units, one
// of them nested, plus a linker script and a header that must be ignored.
func makeWorkdir(t *testing.T) string {
	t.Helper()

	workdir := t.TempDir()

	files := map[string]string{
		"src/boot/start.S": ".section .text.boot",
		"src/main.c":       "void kmain(void) {}",
		"src/trap.s":       "trap_entry: j trap_entry",
		"src/kernel.h":     "#pragma once",
		"linker.ld":        "ENTRY(_start)",
	}

	for name, content := range files {
		path := filepath.Join(workdir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal("MkdirAll:", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal("WriteFile:", err)
		}
	}

	return workdir
}

func makeProject(t *testing.T, workdir string, tc kernel.Toolchain) *kernel.Project {
	t.Helper()

	project, err := kernel.NewProjectFromOptions(context.Background(),
		kernel.WithProjectWorkdir(workdir),
		kernel.WithProjectToolchain(tc),
	)
	if err != nil {
		t.Fatal("NewProjectFromOptions:", err)
	}

	return project
}

func TestNewProjectFromOptionsRequiresSourceDir(t *testing.T) {
	workdir := t.TempDir()

	_, err := kernel.NewProjectFromOptions(context.Background(),
		kernel.WithProjectWorkdir(workdir),
	)
	if err == nil {
		t.Fatal("expected error for missing source directory")
	}
}

func TestCompileTranslatesEveryUnit(t *testing.T) {
	ctx := context.Background()
	workdir := makeWorkdir(t)
	tc := &fakeToolchain{}
	project := makeProject(t, workdir, tc)

	compiled, err := project.Compile(ctx)
	if err != nil {
		t.Fatal("Compile:", err)
	}

	if compiled != 3 {
		t.Errorf("expected 3 compiled units, got %d", compiled)
	}

	for _, obj := range []string{
		"build/boot/start.o",
		"build/main.o",
		"build/trap.o",
	} {
		if _, err := os.Stat(filepath.Join(workdir, obj)); err != nil {
			t.Errorf("expected object artifact %s: %v", obj, err)
		}
	}

	if _, err := os.Stat(filepath.Join(workdir, "build/kernel.o")); err == nil {
		t.Error("header must not be compiled")
	}
}

func TestCompileIsIncremental(t *testing.T) {
	ctx := context.Background()
	workdir := makeWorkdir(t)
	tc := &fakeToolchain{}
	project := makeProject(t, workdir, tc)

	if _, err := project.Compile(ctx); err != nil {
		t.Fatal("Compile:", err)
	}

	// A second run with nothing changed must do zero work.
	compiled, err := project.Compile(ctx)
	if err != nil {
		t.Fatal("Compile:", err)
	}
	if compiled != 0 {
		t.Errorf("expected no recompilation, got %d units", compiled)
	}

	// Touching one source must recompile exactly that unit.
	main := filepath.Join(workdir, "src/main.c")
	now := time.Now().Add(time.Hour)
	if err := os.Chtimes(main, now, now); err != nil {
		t.Fatal("Chtimes:", err)
	}

	before := tc.compileCount()

	compiled, err = project.Compile(ctx)
	if err != nil {
		t.Fatal("Compile:", err)
	}
	if compiled != 1 {
		t.Errorf("expected 1 recompiled unit, got %d", compiled)
	}
	if got := tc.compiled[before:]; len(got) != 1 || got[0] != main {
		t.Errorf("expected recompilation of %s, got %q", main, got)
	}
}

func TestCompileForceIgnoresFreshness(t *testing.T) {
	ctx := context.Background()
	workdir := makeWorkdir(t)
	tc := &fakeToolchain{}
	project := makeProject(t, workdir, tc)

	if _, err := project.Compile(ctx); err != nil {
		t.Fatal("Compile:", err)
	}

	compiled, err := project.Compile(ctx, kernel.WithForce(true))
	if err != nil {
		t.Fatal("Compile:", err)
	}
	if compiled != 3 {
		t.Errorf("expected all 3 units recompiled, got %d", compiled)
	}
}

func TestCompileFailureRetainsArtifacts(t *testing.T) {
	ctx := context.Background()
	workdir := makeWorkdir(t)

	// trap.s sorts last in the lexical walk, so with a single job the two
	// preceding units finish before the failure aborts the stage.
	tc := &fakeToolchain{failOn: "trap.s"}
	project := makeProject(t, workdir, tc)

	if _, err := project.Compile(ctx, kernel.WithJobs(1)); err == nil {
		t.Fatal("expected compile failure")
	}

	for _, obj := range []string{"build/boot/start.o", "build/main.o"} {
		if _, err := os.Stat(filepath.Join(workdir, obj)); err != nil {
			t.Errorf("expected retained artifact %s: %v", obj, err)
		}
	}

	// A subsequent invocation resumes with only the failed unit.
	tc.failOn = ""

	compiled, err := project.Compile(ctx, kernel.WithJobs(1))
	if err != nil {
		t.Fatal("Compile:", err)
	}
	if compiled != 1 {
		t.Errorf("expected 1 resumed unit, got %d", compiled)
	}
}

func TestCompileWithoutToolchain(t *testing.T) {
	workdir := makeWorkdir(t)
	project := makeProject(t, workdir, nil)

	if _, err := project.Compile(context.Background()); err == nil {
		t.Fatal("expected error without toolchain")
	}
}

func TestLinkProducesImage(t *testing.T) {
	ctx := context.Background()
	workdir := makeWorkdir(t)
	tc := &fakeToolchain{}
	project := makeProject(t, workdir, tc)

	if _, err := project.Compile(ctx); err != nil {
		t.Fatal("Compile:", err)
	}

	if err := project.Link(ctx); err != nil {
		t.Fatal("Link:", err)
	}

	content, err := os.ReadFile(project.Image())
	if err != nil {
		t.Fatal("expected kernel image:", err)
	}
	if string(content) != "image:3" {
		t.Errorf("expected all 3 objects linked, got %q", content)
	}

	fresh, err := project.ImageFresh(ctx)
	if err != nil {
		t.Fatal("ImageFresh:", err)
	}
	if !fresh {
		t.Error("expected image to be fresh after linking")
	}
}

func TestLinkRefusesPartialObjectSet(t *testing.T) {
	ctx := context.Background()
	workdir := makeWorkdir(t)
	tc := &fakeToolchain{}
	project := makeProject(t, workdir, tc)

	if _, err := project.Compile(ctx); err != nil {
		t.Fatal("Compile:", err)
	}

	if err := os.Remove(filepath.Join(workdir, "build/main.o")); err != nil {
		t.Fatal("Remove:", err)
	}

	if err := project.Link(ctx); err == nil {
		t.Fatal("expected link to refuse a missing object artifact")
	}

	if _, err := os.Stat(project.Image()); err == nil {
		t.Error("no image must be produced from a partial object set")
	}

	if tc.linked != 0 {
		t.Error("the linker must not be invoked for a partial object set")
	}
}

func TestLinkFailureKeepsPreviousImage(t *testing.T) {
	ctx := context.Background()
	workdir := makeWorkdir(t)
	tc := &fakeToolchain{}
	project := makeProject(t, workdir, tc)

	if _, err := project.Compile(ctx); err != nil {
		t.Fatal("Compile:", err)
	}
	if err := project.Link(ctx); err != nil {
		t.Fatal("Link:", err)
	}

	previous, err := os.ReadFile(project.Image())
	if err != nil {
		t.Fatal("ReadFile:", err)
	}

	tc.failLink = true

	if err := project.Link(ctx); err == nil {
		t.Fatal("expected link failure")
	}

	content, err := os.ReadFile(project.Image())
	if err != nil {
		t.Fatal("previous image must survive a failed link:", err)
	}
	if string(content) != string(previous) {
		t.Error("previous image must be left untouched by a failed link")
	}

	if _, err := os.Stat(project.Image() + ".tmp"); err == nil {
		t.Error("no temporary link output must be left behind")
	}
}

func TestLinkRequiresLinkerScript(t *testing.T) {
	ctx := context.Background()
	workdir := makeWorkdir(t)
	tc := &fakeToolchain{}
	project := makeProject(t, workdir, tc)

	if _, err := project.Compile(ctx); err != nil {
		t.Fatal("Compile:", err)
	}

	if err := os.Remove(filepath.Join(workdir, "linker.ld")); err != nil {
		t.Fatal("Remove:", err)
	}

	if err := project.Link(ctx); err == nil {
		t.Fatal("expected error for missing linker script")
	}
}

func TestImageFreshTracksObjects(t *testing.T) {
	ctx := context.Background()
	workdir := makeWorkdir(t)
	tc := &fakeToolchain{}
	project := makeProject(t, workdir, tc)

	fresh, err := project.ImageFresh(ctx)
	if err != nil {
		t.Fatal("ImageFresh:", err)
	}
	if fresh {
		t.Error("a missing image must not be fresh")
	}

	if _, err := project.Compile(ctx); err != nil {
		t.Fatal("Compile:", err)
	}
	if err := project.Link(ctx); err != nil {
		t.Fatal("Link:", err)
	}

	// An object newer than the image invalidates it.
	obj := filepath.Join(workdir, "build/main.o")
	now := time.Now().Add(time.Hour)
	if err := os.Chtimes(obj, now, now); err != nil {
		t.Fatal("Chtimes:", err)
	}

	fresh, err = project.ImageFresh(ctx)
	if err != nil {
		t.Fatal("ImageFresh:", err)
	}
	if fresh {
		t.Error("an image older than an object must not be fresh")
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	ctx := context.Background()
	workdir := makeWorkdir(t)
	tc := &fakeToolchain{}
	project := makeProject(t, workdir, tc)

	if _, err := project.Compile(ctx); err != nil {
		t.Fatal("Compile:", err)
	}
	if err := project.Link(ctx); err != nil {
		t.Fatal("Link:", err)
	}

	if err := project.Clean(ctx); err != nil {
		t.Fatal("Clean:", err)
	}

	if _, err := os.Stat(project.BuildDir()); err == nil {
		t.Error("build tree must be removed")
	}
	if _, err := os.Stat(project.Image()); err == nil {
		t.Error("kernel image must be removed")
	}
	for _, kept := range []string{"src/main.c", "src/boot/start.S", "linker.ld"} {
		if _, err := os.Stat(filepath.Join(workdir, kept)); err != nil {
			t.Errorf("%s must survive a clean: %v", kept, err)
		}
	}

	// Cleaning an already-clean tree is a no-op.
	if err := project.Clean(ctx); err != nil {
		t.Fatal("Clean:", err)
	}
}

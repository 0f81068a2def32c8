//
//  Copyright 2026 The JCFS authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//  	http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package container_test

import (
	"errors"
	"testing"

	"github.com/jcfs/jcfs"
	"github.com/jcfs/jcfs/container"
)

// TestPackageGroup tests the flat group flavor.
func TestPackageGroup(t *testing.T) {
	g := container.NewPackageGroup(nil, jcfs.ClassPath)

	if g.Category() != container.CategoryPackage {
		t.Errorf("Category : want %v, got %v", container.CategoryPackage, g.Category())
	}

	first := newRoot(t, "pg-first", []string{"com/example/Shared.class", "com/example/First.class"})
	second := newRoot(t, "pg-second", []string{"com/example/Shared.class", "com/example/Second.class"})

	if err := g.AddRoot(first); err != nil {
		t.Fatalf("AddRoot : want error to be nil, got %v", err)
	}

	if err := g.AddRoot(second); err != nil {
		t.Fatalf("AddRoot : want error to be nil, got %v", err)
	}

	t.Run("FirstMatchWins", func(t *testing.T) {
		fo, ok := g.FileForInput("com.example", "Shared.class")
		if !ok {
			t.Fatal("FileForInput Shared.class : want true, got false")
		}

		if fo.Root().FS.Name() != "pg-first" {
			t.Errorf("FileForInput : want the first container to win, got %s", fo.Root().FS.Name())
		}
	})

	t.Run("LaterContainerSearched", func(t *testing.T) {
		if _, ok := g.FileForInput("com.example", "Second.class"); !ok {
			t.Error("FileForInput Second.class : want true, got false")
		}
	})

	t.Run("OutputTargetsFirst", func(t *testing.T) {
		fo, err := g.FileForOutput("com.example", "New.class")
		if err != nil {
			t.Fatalf("FileForOutput : want error to be nil, got %v", err)
		}

		if fo.Root().FS.Name() != "pg-first" {
			t.Errorf("FileForOutput : want the first container to be the write target, got %s", fo.Root().FS.Name())
		}
	})

	t.Run("ListAllContainers", func(t *testing.T) {
		found := names(g.List("com.example", jcfs.Kinds(jcfs.KindClass), false))
		if len(found) != 4 {
			t.Errorf("List : want 4 class files across both containers, got %v", found)
		}
	})

	t.Run("NoModules", func(t *testing.T) {
		if _, ok := g.Module("any"); ok {
			t.Error("Module : want false on a package oriented group, got true")
		}

		if _, err := g.OrCreateModule("any"); err == nil {
			t.Error("OrCreateModule : want an error on a package oriented group, got nil")
		}
	})

	t.Run("Loader", func(t *testing.T) {
		ldr, err := g.Loader()
		if err != nil {
			t.Fatalf("Loader : want error to be nil, got %v", err)
		}

		content, ok, err := ldr.ReadClass("com.example.Second")
		if err != nil {
			t.Fatalf("ReadClass : want error to be nil, got %v", err)
		}

		if !ok || len(content) == 0 {
			t.Errorf("ReadClass com.example.Second : want content, got (%q, %t)", content, ok)
		}
	})

	t.Run("Release", func(t *testing.T) {
		g.Release()

		if containers := g.Containers(); len(containers) != 0 {
			t.Errorf("Containers : want none after Release, got %d", len(containers))
		}

		if _, ok := g.FileForInput("com.example", "First.class"); ok {
			t.Error("FileForInput : want false after Release, got true")
		}
	})
}

// TestEmptyPackageGroupOutput tests output on a group without containers.
func TestEmptyPackageGroupOutput(t *testing.T) {
	g := container.NewPackageGroup(nil, jcfs.ClassPath)

	_, err := g.FileForOutput("com.example", "New.class")

	var noContainerErr container.NoContainerError
	if !errors.As(err, &noContainerErr) {
		t.Errorf("FileForOutput : want a NoContainerError, got %v", err)
	}
}

// TestModuleGroup tests module discovery and nested groups.
func TestModuleGroup(t *testing.T) {
	g := container.NewModuleGroup(nil, jcfs.ModuleSourcePath)

	if g.Category() != container.CategoryModule {
		t.Errorf("Category : want %v, got %v", container.CategoryModule, g.Category())
	}

	root := newRoot(t, "mg", []string{
		"org.alpha/module-info.java",
		"org.alpha/org/alpha/Main.java",
		"org.beta/module-info.java",
		"org.beta/org/beta/Util.java",
		"not-a-module/README.txt",
	})

	if err := g.AddRoot(root); err != nil {
		t.Fatalf("AddRoot : want error to be nil, got %v", err)
	}

	t.Run("Discovery", func(t *testing.T) {
		moduleNames := g.ModuleNames()

		want := []string{"org.alpha", "org.beta"}
		if len(moduleNames) != len(want) {
			t.Fatalf("ModuleNames : want %v, got %v", want, moduleNames)
		}

		for i, name := range moduleNames {
			if name != want[i] {
				t.Errorf("ModuleNames : want %s at %d, got %s", want[i], i, name)
			}
		}
	})

	t.Run("NestedLookup", func(t *testing.T) {
		nested, ok := g.Module("org.alpha")
		if !ok {
			t.Fatal("Module org.alpha : want true, got false")
		}

		if nested.Location().Name() != "MODULE_SOURCE_PATH[org.alpha]" {
			t.Errorf("Location : want MODULE_SOURCE_PATH[org.alpha], got %s", nested.Location().Name())
		}

		if _, ok = nested.FileForInput("org.alpha", "Main.java"); !ok {
			t.Error("FileForInput Main.java : want true, got false")
		}
	})

	t.Run("SpeculativeCreate", func(t *testing.T) {
		nested, err := g.OrCreateModule("org.unknown")
		if err != nil {
			t.Fatalf("OrCreateModule : want error to be nil, got %v", err)
		}

		if _, ok := nested.FileForInput("org.unknown", "Any.java"); ok {
			t.Error("FileForInput : want an unknown module to look empty, got a file")
		}

		again, err := g.OrCreateModule("org.unknown")
		if err != nil {
			t.Fatalf("OrCreateModule : want error to be nil, got %v", err)
		}

		if nested != again {
			t.Error("OrCreateModule : want repeated creation to be idempotent, got different groups")
		}
	})

	t.Run("FlatOperations", func(t *testing.T) {
		if found := names(g.List("org.alpha", jcfs.AllKinds, true)); len(found) != 0 {
			t.Errorf("List : want a module oriented group to list empty, got %v", found)
		}

		if _, ok := g.FileForInput("org.alpha", "Main.java"); ok {
			t.Error("FileForInput : want false on a module oriented group, got true")
		}

		_, err := g.FileForOutput("org.alpha", "Main.java")

		var notPackageErr container.NotPackageOrientedError
		if !errors.As(err, &notPackageErr) {
			t.Errorf("FileForOutput : want a NotPackageOrientedError, got %v", err)
		}

		if _, err = g.Loader(); !errors.As(err, &notPackageErr) {
			t.Errorf("Loader : want a NotPackageOrientedError, got %v", err)
		}
	})

	t.Run("ContainsThroughModules", func(t *testing.T) {
		nested, _ := g.Module("org.beta")

		fo, ok := nested.FileForInput("org.beta", "Util.java")
		if !ok {
			t.Fatal("FileForInput Util.java : want true, got false")
		}

		if !g.Contains(fo) {
			t.Errorf("Contains %s : want the parent group to find it, got false", fo.URI())
		}

		name, ok := g.InferBinaryName(fo)
		if !ok || name != "org.beta.Util" {
			t.Errorf("InferBinaryName : want (org.beta.Util, true), got (%s, %t)", name, ok)
		}
	})

	t.Run("MissingBase", func(t *testing.T) {
		empty := container.NewModuleGroup(nil, jcfs.ModulePath)

		missing := jcfs.Root{FS: root.FS, Base: "/nowhere"}
		if err := empty.AddRoot(missing); err != nil {
			t.Errorf("AddRoot : want a missing base to add nothing, got %v", err)
		}

		if len(empty.ModuleNames()) != 0 {
			t.Errorf("ModuleNames : want none, got %v", empty.ModuleNames())
		}
	})
}

// TestOutputGroup tests the dual flat and module behavior.
func TestOutputGroup(t *testing.T) {
	g := container.NewOutputGroup(nil, jcfs.ClassOutput)

	if g.Category() != container.CategoryOutput {
		t.Errorf("Category : want %v, got %v", container.CategoryOutput, g.Category())
	}

	root := newRoot(t, "og", nil)

	if err := g.AddRoot(root); err != nil {
		t.Fatalf("AddRoot : want error to be nil, got %v", err)
	}

	t.Run("FlatWrite", func(t *testing.T) {
		fo, err := g.FileForOutput("com.example", "Foo.class")
		if err != nil {
			t.Fatalf("FileForOutput : want error to be nil, got %v", err)
		}

		if err = fo.WriteText("bytecode"); err != nil {
			t.Fatalf("WriteText : want error to be nil, got %v", err)
		}

		if fo.AbsolutePath() != "/com/example/Foo.class" {
			t.Errorf("AbsolutePath : want /com/example/Foo.class, got %s", fo.AbsolutePath())
		}
	})

	t.Run("ModuleWrite", func(t *testing.T) {
		nested, err := g.OrCreateModule("org.alpha")
		if err != nil {
			t.Fatalf("OrCreateModule : want error to be nil, got %v", err)
		}

		fo, err := nested.FileForOutput("org.alpha", "Main.class")
		if err != nil {
			t.Fatalf("FileForOutput : want error to be nil, got %v", err)
		}

		if err = fo.WriteText("bytecode"); err != nil {
			t.Fatalf("WriteText : want error to be nil, got %v", err)
		}

		// Module output lands in the module subdirectory of the primary
		// write target.
		if fo.AbsolutePath() != "/org.alpha/org/alpha/Main.class" {
			t.Errorf("AbsolutePath : want /org.alpha/org/alpha/Main.class, got %s", fo.AbsolutePath())
		}

		if !g.Contains(fo) {
			t.Errorf("Contains %s : want true through the module side, got false", fo.URI())
		}
	})

	t.Run("ModuleWithoutRoot", func(t *testing.T) {
		empty := container.NewOutputGroup(nil, jcfs.SourceOutput)

		_, err := empty.OrCreateModule("org.alpha")

		var noContainerErr container.NoContainerError
		if !errors.As(err, &noContainerErr) {
			t.Errorf("OrCreateModule : want a NoContainerError, got %v", err)
		}
	})
}

// TestCopy tests container copying between groups.
func TestCopy(t *testing.T) {
	t.Run("PackageToPackage", func(t *testing.T) {
		src := container.NewPackageGroup(nil, jcfs.ClassPath)
		if err := src.AddRoot(newRoot(t, "copy-src", []string{"com/example/Foo.class"})); err != nil {
			t.Fatalf("AddRoot : want error to be nil, got %v", err)
		}

		dst := container.NewPackageGroup(nil, jcfs.AnnotationProcessorPath)
		if err := container.Copy(src, dst); err != nil {
			t.Fatalf("Copy : want error to be nil, got %v", err)
		}

		fo, ok := dst.FileForInput("com.example", "Foo.class")
		if !ok {
			t.Fatal("FileForInput : want the copied container to resolve, got false")
		}

		// The copy rewraps under the target location.
		if fo.Location().Name() != jcfs.AnnotationProcessorPath.Name() {
			t.Errorf("Location : want %s, got %s", jcfs.AnnotationProcessorPath.Name(), fo.Location().Name())
		}
	})

	t.Run("ModuleToModule", func(t *testing.T) {
		src := container.NewModuleGroup(nil, jcfs.ModulePath)
		root := newRoot(t, "copy-mod", []string{
			"org.alpha/module-info.class",
			"org.alpha/org/alpha/Main.class",
		})

		if err := src.AddRoot(root); err != nil {
			t.Fatalf("AddRoot : want error to be nil, got %v", err)
		}

		dst := container.NewModuleGroup(nil, jcfs.UpgradeModulePath)
		if err := container.Copy(src, dst); err != nil {
			t.Fatalf("Copy : want error to be nil, got %v", err)
		}

		nested, ok := dst.Module("org.alpha")
		if !ok {
			t.Fatal("Module org.alpha : want the module to be copied, got false")
		}

		if _, ok = nested.FileForInput("org.alpha", "Main.class"); !ok {
			t.Error("FileForInput Main.class : want true in the copied module, got false")
		}
	})

	t.Run("CategoryMismatch", func(t *testing.T) {
		src := container.NewPackageGroup(nil, jcfs.ClassPath)
		dst := container.NewModuleGroup(nil, jcfs.ModulePath)

		err := container.Copy(src, dst)

		var mismatchErr *container.CategoryMismatchError
		if !errors.As(err, &mismatchErr) {
			t.Errorf("Copy : want a CategoryMismatchError, got %v", err)
		}
	})
}

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

package jcfs_test

import (
	"errors"
	"testing"

	"github.com/jcfs/jcfs"
	"github.com/jcfs/jcfs/vfs/memfs"
)

// TestNewFileObject tests construction and path validation.
func TestNewFileObject(t *testing.T) {
	cfg := jcfs.NewConfig()
	vfs := memfs.New()

	defer vfs.Close()

	root := jcfs.NewRoot(vfs, "/")

	t.Run("Relative", func(t *testing.T) {
		fo, err := jcfs.NewFileObject(cfg, jcfs.SourcePath, root, "com/example/Foo.java")
		if err != nil {
			t.Fatalf("NewFileObject : want error to be nil, got %v", err)
		}

		if fo.Name() != "com/example/Foo.java" {
			t.Errorf("Name : want com/example/Foo.java, got %s", fo.Name())
		}

		if fo.AbsolutePath() != "/com/example/Foo.java" {
			t.Errorf("AbsolutePath : want /com/example/Foo.java, got %s", fo.AbsolutePath())
		}

		if fo.Kind() != jcfs.KindSource {
			t.Errorf("Kind : want %v, got %v", jcfs.KindSource, fo.Kind())
		}

		if fo.Location() != jcfs.Location(jcfs.SourcePath) {
			t.Errorf("Location : want %s, got %s", jcfs.SourcePath.Name(), fo.Location().Name())
		}

		if fo.BinaryName() != "com.example.Foo" {
			t.Errorf("BinaryName : want com.example.Foo, got %s", fo.BinaryName())
		}
	})

	t.Run("Backslashes", func(t *testing.T) {
		fo, err := jcfs.NewFileObject(cfg, jcfs.SourcePath, root, "com\\example\\Foo.java")
		if err != nil {
			t.Fatalf("NewFileObject : want error to be nil, got %v", err)
		}

		if fo.Name() != "com/example/Foo.java" {
			t.Errorf("Name : want com/example/Foo.java, got %s", fo.Name())
		}
	})

	t.Run("Rejected", func(t *testing.T) {
		for _, rel := range []string{"/absolute/Foo.java", ".", "..", "../escape.java"} {
			_, err := jcfs.NewFileObject(cfg, jcfs.SourcePath, root, rel)

			var absErr jcfs.AbsolutePathError
			if !errors.As(err, &absErr) {
				t.Errorf("NewFileObject %s : want an AbsolutePathError, got %v", rel, err)
			}
		}
	})
}

// TestFileObjectURI tests that URI equality identifies files independently
// of how the file object was constructed.
func TestFileObjectURI(t *testing.T) {
	cfg := jcfs.NewConfig()
	vfs := memfs.New(memfs.WithName("uri-test"))

	defer vfs.Close()

	outer := jcfs.NewRoot(vfs, "/")
	inner := jcfs.NewRoot(vfs, "/com")

	a, err := jcfs.NewFileObject(cfg, jcfs.ClassPath, outer, "com/example/Foo.class")
	if err != nil {
		t.Fatalf("NewFileObject : want error to be nil, got %v", err)
	}

	b, err := jcfs.NewFileObject(cfg, jcfs.ClassPath, inner, "example/Foo.class")
	if err != nil {
		t.Fatalf("NewFileObject : want error to be nil, got %v", err)
	}

	if a.URI() != "jcfs://uri-test/com/example/Foo.class" {
		t.Errorf("URI : want jcfs://uri-test/com/example/Foo.class, got %s", a.URI())
	}

	if !jcfs.SameFile(a, b) {
		t.Errorf("SameFile : want %s and %s to designate the same file", a.URI(), b.URI())
	}

	other := memfs.New(memfs.WithName("uri-other"))

	defer other.Close()

	c, err := jcfs.NewFileObject(cfg, jcfs.ClassPath, jcfs.NewRoot(other, "/"), "com/example/Foo.class")
	if err != nil {
		t.Fatalf("NewFileObject : want error to be nil, got %v", err)
	}

	if jcfs.SameFile(a, c) {
		t.Error("SameFile : want files on different file systems to differ")
	}
}

// TestFileObjectReadWrite tests the write, read and decode operations.
func TestFileObjectReadWrite(t *testing.T) {
	cfg := jcfs.NewConfig()
	vfs := memfs.New()

	defer vfs.Close()

	root := jcfs.NewRoot(vfs, "/")

	newFO := func(t *testing.T, rel string) jcfs.FileObject {
		t.Helper()

		fo, err := jcfs.NewFileObject(cfg, jcfs.SourcePath, root, rel)
		if err != nil {
			t.Fatalf("NewFileObject %s : want error to be nil, got %v", rel, err)
		}

		return fo
	}

	t.Run("RoundTrip", func(t *testing.T) {
		fo := newFO(t, "com/example/Foo.java")

		content := "package com.example;\n\nclass Foo {}\n"
		if err := fo.WriteText(content); err != nil {
			t.Fatalf("WriteText : want error to be nil, got %v", err)
		}

		got, err := fo.ReadText(jcfs.DecodeReport)
		if err != nil {
			t.Fatalf("ReadText : want error to be nil, got %v", err)
		}

		if got != content {
			t.Errorf("ReadText : want content to be %q, got %q", content, got)
		}

		raw, err := fo.ReadBytes()
		if err != nil {
			t.Fatalf("ReadBytes : want error to be nil, got %v", err)
		}

		if string(raw) != content {
			t.Errorf("ReadBytes : want content to be %q, got %q", content, raw)
		}
	})

	t.Run("DecodeReport", func(t *testing.T) {
		fo := newFO(t, "bad/Malformed.java")

		wc, err := fo.Create()
		if err != nil {
			t.Fatalf("Create : want error to be nil, got %v", err)
		}

		if _, err = wc.Write([]byte{'o', 'k', 0xff, 0xfe, '!'}); err != nil {
			t.Fatalf("Write : want error to be nil, got %v", err)
		}

		if err = wc.Close(); err != nil {
			t.Fatalf("Close : want error to be nil, got %v", err)
		}

		_, err = fo.ReadText(jcfs.DecodeReport)
		if !errors.Is(err, jcfs.ErrMalformedInput) {
			t.Errorf("ReadText REPORT : want error to be %v, got %v", jcfs.ErrMalformedInput, err)
		}

		got, err := fo.ReadText(jcfs.DecodeIgnore)
		if err != nil {
			t.Fatalf("ReadText IGNORE : want error to be nil, got %v", err)
		}

		if got != "ok!" {
			t.Errorf("ReadText IGNORE : want ill-formed bytes to be dropped, got %q", got)
		}
	})

	t.Run("DecodeDefault", func(t *testing.T) {
		lenient := jcfs.NewConfig(jcfs.WithDecodePolicy(jcfs.DecodeIgnore))

		fo, err := jcfs.NewFileObject(lenient, jcfs.SourcePath, root, "bad/Default.java")
		if err != nil {
			t.Fatalf("NewFileObject : want error to be nil, got %v", err)
		}

		wc, err := fo.Create()
		if err != nil {
			t.Fatalf("Create : want error to be nil, got %v", err)
		}

		if _, err = wc.Write([]byte{'o', 'k', 0xff, 0xfe, '!'}); err != nil {
			t.Fatalf("Write : want error to be nil, got %v", err)
		}

		if err = wc.Close(); err != nil {
			t.Fatalf("Close : want error to be nil, got %v", err)
		}

		got, err := fo.ReadTextDefault()
		if err != nil {
			t.Fatalf("ReadTextDefault : want error to be nil, got %v", err)
		}

		if got != "ok!" {
			t.Errorf("ReadTextDefault : want the IGNORE default to apply, got %q", got)
		}

		// The configuration defaults to REPORT.
		strict := newFO(t, "bad/Default.java")
		if _, err = strict.ReadTextDefault(); !errors.Is(err, jcfs.ErrMalformedInput) {
			t.Errorf("ReadTextDefault : want error to be %v, got %v", jcfs.ErrMalformedInput, err)
		}
	})

	t.Run("WriteMalformed", func(t *testing.T) {
		fo := newFO(t, "bad/Encode.java")

		err := fo.WriteText(string([]byte{0xff, 0xfe}))
		if !errors.Is(err, jcfs.ErrMalformedInput) {
			t.Errorf("WriteText : want error to be %v, got %v", jcfs.ErrMalformedInput, err)
		}
	})

	t.Run("ReadMissing", func(t *testing.T) {
		fo := newFO(t, "missing/Nowhere.java")

		_, err := fo.ReadBytes()

		var ioErr *jcfs.IOError
		if !errors.As(err, &ioErr) {
			t.Errorf("ReadBytes : want an IOError, got %v", err)
		}
	})
}

// TestFileObjectLifecycle tests modification time and deletion.
func TestFileObjectLifecycle(t *testing.T) {
	cfg := jcfs.NewConfig()
	vfs := memfs.New()

	defer vfs.Close()

	fo, err := jcfs.NewFileObject(cfg, jcfs.ClassOutput, jcfs.NewRoot(vfs, "/"), "com/example/Foo.class")
	if err != nil {
		t.Fatalf("NewFileObject : want error to be nil, got %v", err)
	}

	if !fo.LastModified().IsZero() {
		t.Error("LastModified : want zero time for a missing file, got a timestamp")
	}

	if fo.Delete() {
		t.Error("Delete : want false for a missing file, got true")
	}

	if err = fo.WriteText("content"); err != nil {
		t.Fatalf("WriteText : want error to be nil, got %v", err)
	}

	if fo.LastModified().IsZero() {
		t.Error("LastModified : want a timestamp for an existing file, got zero time")
	}

	if !fo.Delete() {
		t.Error("Delete : want true for an existing file, got false")
	}

	if vfs.Exists(fo.AbsolutePath()) {
		t.Errorf("Exists %s : want false after deletion, got true", fo.AbsolutePath())
	}
}

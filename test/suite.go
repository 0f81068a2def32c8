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

// Package test provides a conformance suite run against every virtual file
// system implementation.
package test

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/jcfs/jcfs"
)

// SuiteVFS is a conformance test suite for jcfs.VFS implementations. Write
// tests are skipped on read-only file systems.
type SuiteVFS struct {
	vfs  jcfs.VFS // vfs is the file system under test.
	base string   // base is the directory the suite creates its fixture under.
}

// Option defines the option function used for initializing SuiteVFS.
type Option func(*SuiteVFS)

// NewSuiteVFS creates a new conformance suite for vfs. The base directory
// must exist; real file systems pass a temporary directory, in-memory and
// archive file systems pass "/".
func NewSuiteVFS(tb testing.TB, vfs jcfs.VFS, opts ...Option) *SuiteVFS {
	if vfs == nil {
		tb.Fatal("NewSuiteVFS : want vfs to be set, got nil")
	}

	sv := &SuiteVFS{vfs: vfs, base: "/"}

	for _, opt := range opts {
		opt(sv)
	}

	return sv
}

// WithBase returns an option function which sets the fixture directory.
func WithBase(base string) Option {
	return func(sv *SuiteVFS) {
		sv.base = jcfs.ToSlash(base)
	}
}

// readOnly returns true if the file system under test rejects writes.
func (sv *SuiteVFS) readOnly() bool {
	return sv.vfs.Features()&jcfs.FeatReadOnly != 0
}

// join resolves a relative path against the fixture directory.
func (sv *SuiteVFS) join(rel string) string {
	if sv.base == "/" {
		return "/" + rel
	}

	return sv.base + "/" + rel
}

// All runs every conformance test.
func (sv *SuiteVFS) All(t *testing.T) {
	sv.TestName(t)
	sv.TestNonExisting(t)
	sv.TestBaseDir(t)
	sv.TestCreateRead(t)
	sv.TestCreateTruncate(t)
	sv.TestReadDirOrder(t)
	sv.TestRemove(t)
	sv.TestReadOnly(t)
}

// TestName tests that the file system has a name.
func (sv *SuiteVFS) TestName(t *testing.T) {
	t.Run("Name", func(t *testing.T) {
		if sv.vfs.Name() == "" {
			t.Error("Name : want name to be non-empty, got an empty string")
		}
	})
}

// TestNonExisting tests probes and operations on a path that does not
// exist.
func (sv *SuiteVFS) TestNonExisting(t *testing.T) {
	path := sv.join("NonExistingFile")

	t.Run("NonExistingProbes", func(t *testing.T) {
		if sv.vfs.Exists(path) {
			t.Errorf("Exists %s : want false, got true", path)
		}

		if sv.vfs.IsDir(path) {
			t.Errorf("IsDir %s : want false, got true", path)
		}

		if sv.vfs.IsRegular(path) {
			t.Errorf("IsRegular %s : want false, got true", path)
		}
	})

	t.Run("NonExistingStat", func(t *testing.T) {
		_, err := sv.vfs.Stat(path)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat %s : want error to be %v, got %v", path, fs.ErrNotExist, err)
		}
	})

	t.Run("NonExistingOpen", func(t *testing.T) {
		_, err := sv.vfs.Open(path)
		if err == nil {
			t.Errorf("Open %s : want an error, got nil", path)
		}
	})
}

// TestBaseDir tests that the fixture directory is a listable directory.
func (sv *SuiteVFS) TestBaseDir(t *testing.T) {
	t.Run("BaseDir", func(t *testing.T) {
		if !sv.vfs.IsDir(sv.base) {
			t.Errorf("IsDir %s : want true, got false", sv.base)
		}

		if _, err := sv.vfs.ReadDir(sv.base); err != nil {
			t.Errorf("ReadDir %s : want error to be nil, got %v", sv.base, err)
		}
	})
}

// TestCreateRead tests that created content is readable once the writer is
// closed, with parent directories created on demand.
func (sv *SuiteVFS) TestCreateRead(t *testing.T) {
	if sv.readOnly() {
		return
	}

	path := sv.join("create/nested/file.txt")
	content := []byte("conformance content")

	t.Run("CreateRead", func(t *testing.T) {
		wc, err := sv.vfs.Create(path)
		if err != nil {
			t.Fatalf("Create %s : want error to be nil, got %v", path, err)
		}

		if _, err = wc.Write(content); err != nil {
			t.Fatalf("Write %s : want error to be nil, got %v", path, err)
		}

		if err = wc.Close(); err != nil {
			t.Fatalf("Close %s : want error to be nil, got %v", path, err)
		}

		if !sv.vfs.IsRegular(path) {
			t.Errorf("IsRegular %s : want true, got false", path)
		}

		if !sv.vfs.IsDir(sv.join("create/nested")) {
			t.Errorf("IsDir %s : want true, got false", sv.join("create/nested"))
		}

		rc, err := sv.vfs.Open(path)
		if err != nil {
			t.Fatalf("Open %s : want error to be nil, got %v", path, err)
		}

		defer rc.Close()

		got, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("ReadAll %s : want error to be nil, got %v", path, err)
		}

		if string(got) != string(content) {
			t.Errorf("ReadAll %s : want content to be %s, got %s", path, content, got)
		}

		info, err := sv.vfs.Stat(path)
		if err != nil {
			t.Fatalf("Stat %s : want error to be nil, got %v", path, err)
		}

		if info.Size() != int64(len(content)) {
			t.Errorf("Stat %s : want size to be %d, got %d", path, len(content), info.Size())
		}
	})
}

// TestCreateTruncate tests that creating an existing file replaces its
// content.
func (sv *SuiteVFS) TestCreateTruncate(t *testing.T) {
	if sv.readOnly() {
		return
	}

	path := sv.join("truncate.txt")

	t.Run("CreateTruncate", func(t *testing.T) {
		for _, content := range []string{"first version, long enough", "second"} {
			wc, err := sv.vfs.Create(path)
			if err != nil {
				t.Fatalf("Create %s : want error to be nil, got %v", path, err)
			}

			if _, err = io.WriteString(wc, content); err != nil {
				t.Fatalf("Write %s : want error to be nil, got %v", path, err)
			}

			if err = wc.Close(); err != nil {
				t.Fatalf("Close %s : want error to be nil, got %v", path, err)
			}
		}

		rc, err := sv.vfs.Open(path)
		if err != nil {
			t.Fatalf("Open %s : want error to be nil, got %v", path, err)
		}

		defer rc.Close()

		got, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("ReadAll %s : want error to be nil, got %v", path, err)
		}

		if string(got) != "second" {
			t.Errorf("ReadAll %s : want content to be second, got %s", path, got)
		}
	})
}

// TestReadDirOrder tests that directory entries come back sorted by name.
func (sv *SuiteVFS) TestReadDirOrder(t *testing.T) {
	if sv.readOnly() {
		return
	}

	dir := sv.join("order")

	t.Run("ReadDirOrder", func(t *testing.T) {
		for _, name := range []string{"charlie", "alpha", "bravo"} {
			path := dir + "/" + name

			wc, err := sv.vfs.Create(path)
			if err != nil {
				t.Fatalf("Create %s : want error to be nil, got %v", path, err)
			}

			if err = wc.Close(); err != nil {
				t.Fatalf("Close %s : want error to be nil, got %v", path, err)
			}
		}

		entries, err := sv.vfs.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir %s : want error to be nil, got %v", dir, err)
		}

		want := []string{"alpha", "bravo", "charlie"}
		if len(entries) != len(want) {
			t.Fatalf("ReadDir %s : want %d entries, got %d", dir, len(want), len(entries))
		}

		for i, entry := range entries {
			if entry.Name() != want[i] {
				t.Errorf("ReadDir %s : want entry %d to be %s, got %s", dir, i, want[i], entry.Name())
			}

			if entry.IsDir() {
				t.Errorf("ReadDir %s : want entry %s to be a file, got a directory", dir, entry.Name())
			}
		}
	})
}

// TestRemove tests removal of files and directories.
func (sv *SuiteVFS) TestRemove(t *testing.T) {
	if sv.readOnly() {
		return
	}

	t.Run("RemoveFile", func(t *testing.T) {
		path := sv.join("removable.txt")

		wc, err := sv.vfs.Create(path)
		if err != nil {
			t.Fatalf("Create %s : want error to be nil, got %v", path, err)
		}

		if err = wc.Close(); err != nil {
			t.Fatalf("Close %s : want error to be nil, got %v", path, err)
		}

		if err = sv.vfs.Remove(path); err != nil {
			t.Errorf("Remove %s : want error to be nil, got %v", path, err)
		}

		if sv.vfs.Exists(path) {
			t.Errorf("Exists %s : want false after removal, got true", path)
		}
	})

	t.Run("RemoveNonEmptyDir", func(t *testing.T) {
		path := sv.join("full/child.txt")

		wc, err := sv.vfs.Create(path)
		if err != nil {
			t.Fatalf("Create %s : want error to be nil, got %v", path, err)
		}

		if err = wc.Close(); err != nil {
			t.Fatalf("Close %s : want error to be nil, got %v", path, err)
		}

		if err = sv.vfs.Remove(sv.join("full")); err == nil {
			t.Errorf("Remove %s : want an error on a non-empty directory, got nil", sv.join("full"))
		}

		if err = sv.vfs.Remove(path); err != nil {
			t.Errorf("Remove %s : want error to be nil, got %v", path, err)
		}

		if err = sv.vfs.Remove(sv.join("full")); err != nil {
			t.Errorf("Remove %s : want error to be nil on an empty directory, got %v", sv.join("full"), err)
		}
	})

	t.Run("RemoveNonExisting", func(t *testing.T) {
		path := sv.join("NonExistingFile")

		err := sv.vfs.Remove(path)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Remove %s : want error to be %v, got %v", path, fs.ErrNotExist, err)
		}
	})
}

// TestReadOnly tests that read-only file systems reject writes with
// ErrReadOnly.
func (sv *SuiteVFS) TestReadOnly(t *testing.T) {
	if !sv.readOnly() {
		return
	}

	path := sv.join("forbidden.txt")

	t.Run("ReadOnlyCreate", func(t *testing.T) {
		_, err := sv.vfs.Create(path)
		if !errors.Is(err, jcfs.ErrReadOnly) {
			t.Errorf("Create %s : want error to be %v, got %v", path, jcfs.ErrReadOnly, err)
		}
	})

	t.Run("ReadOnlyRemove", func(t *testing.T) {
		err := sv.vfs.Remove(path)
		if !errors.Is(err, jcfs.ErrReadOnly) {
			t.Errorf("Remove %s : want error to be %v, got %v", path, jcfs.ErrReadOnly, err)
		}
	})
}

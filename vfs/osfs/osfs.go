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

// Package osfs exposes the real file system of the operating system through
// the jcfs.VFS interface. Paths are slash separated and converted to the
// native representation on every call.
package osfs

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jcfs/jcfs"
)

// Name is the shared file system name of every OsFS instance: all real
// file system roots live in the same namespace, so file objects resolved
// through different OsFS instances compare equal when their paths are.
const Name = "os"

// OsFS implements the jcfs.VFS interface by thin delegation to the
// operating system.
type OsFS struct{}

var _ jcfs.VFS = &OsFS{}

// New returns a new real file system (OsFS).
func New() *OsFS {
	return &OsFS{}
}

// NewRoot returns a root for the given directory or file path on the real
// file system. The path is made absolute and normalized to slashes.
func NewRoot(path string) (jcfs.Root, error) {
	abs, err := filepath.Abs(filepath.FromSlash(jcfs.ToSlash(path)))
	if err != nil {
		return jcfs.Root{}, jcfs.WrapIO("abs", path, err)
	}

	return jcfs.NewRoot(New(), filepath.ToSlash(abs)), nil
}

// Name returns the name of the file system.
func (vfs *OsFS) Name() string {
	return Name
}

// Features returns the set of features provided by the file system.
func (vfs *OsFS) Features() jcfs.Features {
	return 0
}

// Exists returns true if name exists, whatever its type.
func (vfs *OsFS) Exists(name string) bool {
	_, err := os.Stat(toNative(name))

	return err == nil
}

// IsDir returns true if name exists and is a directory.
func (vfs *OsFS) IsDir(name string) bool {
	info, err := os.Stat(toNative(name))

	return err == nil && info.IsDir()
}

// IsRegular returns true if name exists and is a regular file.
func (vfs *OsFS) IsRegular(name string) bool {
	info, err := os.Stat(toNative(name))

	return err == nil && info.Mode().IsRegular()
}

// Stat returns a FileInfo describing the named file.
func (vfs *OsFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(toNative(name))
}

// ReadDir reads the named directory, returning all its directory entries
// sorted by filename.
func (vfs *OsFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(toNative(name))
}

// Open opens the named file for reading.
func (vfs *OsFS) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(toNative(name))
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Create creates or truncates the named file for writing, creating any
// missing parent directories first.
func (vfs *OsFS) Create(name string) (io.WriteCloser, error) {
	native := toNative(name)

	if err := os.MkdirAll(filepath.Dir(native), 0o755); err != nil {
		return nil, err
	}

	f, err := os.Create(native)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Remove removes the named file or empty directory.
func (vfs *OsFS) Remove(name string) error {
	return os.Remove(toNative(name))
}

// Close is a no-op: the real file system is never released.
func (vfs *OsFS) Close() error {
	return nil
}

// toNative converts a slash separated path to its native representation.
func toNative(name string) string {
	return filepath.FromSlash(name)
}

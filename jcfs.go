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

// Package jcfs defines the interfaces and types shared by all components of
// the compiler file-manager library: the minimal virtual file system
// contract, compiler locations, file kinds and file objects.
//
// All paths exchanged through the VFS interface are slash-separated and
// absolute within their file system, regardless of the host operating
// system. Implementations backed by the real file system translate to
// native separators internally.
package jcfs

import (
	"io"
	"io/fs"
	"strings"
)

// PathSeparator is the separator used by every path exchanged through VFS.
const PathSeparator = '/'

// Features defines the set of features available on a file system.
type Features uint64

const (
	// FeatReadOnly indicates that the file system rejects Create and Remove.
	FeatReadOnly Features = 1 << iota

	// FeatInMemory indicates that the file system holds its content in
	// process memory and must be closed to release it.
	FeatInMemory
)

// String returns the features as a | separated list of names.
func (f Features) String() string {
	var names []string

	if f&FeatReadOnly != 0 {
		names = append(names, "ReadOnly")
	}

	if f&FeatInMemory != 0 {
		names = append(names, "InMemory")
	}

	if len(names) == 0 {
		return "None"
	}

	return strings.Join(names, "|")
}

// VFS is the capability set a root file system must provide to back a
// container: existence and type probes, buffered read and write access and
// directory enumeration. Any simulated, archive backed or real file system
// should implement this interface.
type VFS interface {
	// Name returns the name of the file system. Names take part in file
	// object URIs, so every in-memory or archive instance must have a
	// distinct name while all real file system instances share one.
	Name() string

	// Features returns the set of features provided by the file system.
	Features() Features

	// Exists returns true if name exists, whatever its type.
	Exists(name string) bool

	// IsDir returns true if name exists and is a directory.
	IsDir(name string) bool

	// IsRegular returns true if name exists and is a regular file.
	IsRegular(name string) bool

	// Stat returns a FileInfo describing the named file.
	// If there is an error, it will be of type *fs.PathError.
	Stat(name string) (fs.FileInfo, error)

	// ReadDir reads the named directory, returning all its directory
	// entries sorted by filename.
	ReadDir(name string) ([]fs.DirEntry, error)

	// Open opens the named file for reading.
	// If there is an error, it will be of type *fs.PathError.
	Open(name string) (io.ReadCloser, error)

	// Create creates or truncates the named file for writing, creating any
	// missing parent directories first. The content is visible once the
	// returned writer is closed.
	// If there is an error, it will be of type *fs.PathError.
	Create(name string) (io.WriteCloser, error)

	// Remove removes the named file or empty directory.
	// If there is an error, it will be of type *fs.PathError.
	Remove(name string) error

	// Close releases the resources held by the file system. Closing an
	// already closed file system is a no-op.
	Close() error
}

// Root designates one directory of a file system as the base every relative
// path of a container or file object resolves against. It is the unit a
// container wraps: a real directory, an archive root or an in-memory root.
type Root struct {
	FS   VFS    // FS is the file system the root lives on.
	Base string // Base is the absolute, slash separated base directory.
}

// NewRoot returns a Root for base on fsys. The base is cleaned and made
// absolute within the file system.
func NewRoot(fsys VFS, base string) Root {
	return Root{FS: fsys, Base: cleanAbs(base)}
}

// Join resolves the slash separated relative path rel against the root base.
func (r Root) Join(rel string) string {
	rel = strings.Trim(rel, "/")
	if rel == "" || rel == "." {
		return r.Base
	}

	if r.Base == "/" {
		return "/" + rel
	}

	return r.Base + "/" + rel
}

// Rel returns the path of abs relative to the root base and true if abs is
// located under the root.
func (r Root) Rel(abs string) (string, bool) {
	if abs == r.Base {
		return ".", true
	}

	base := r.Base
	if base != "/" {
		base += "/"
	}

	if !strings.HasPrefix(abs, base) {
		return "", false
	}

	return abs[len(base):], true
}

// URI returns the canonical URI of the slash separated relative path rel
// under the root. Two file objects are interchangeable if and only if their
// URIs are equal, independently of the root/relative-path pair used to
// construct them.
func (r Root) URI(rel string) string {
	return "jcfs://" + r.FS.Name() + r.Join(rel)
}

// cleanAbs normalizes a slash separated path into an absolute one.
func cleanAbs(name string) string {
	name = strings.TrimRight(name, "/")
	if name == "" {
		return "/"
	}

	if !strings.HasPrefix(name, "/") {
		return "/" + name
	}

	return name
}

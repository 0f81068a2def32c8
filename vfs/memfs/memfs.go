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

// Package memfs implements an in-memory file system for compiler inputs
// and outputs.
//
// Every MemFS instance is an isolated tree identified by a generated name.
// Output locations are auto-provisioned with such a tree so compilers can
// always write somewhere; the content stays readable until the instance is
// closed, which normally happens asynchronously once the owning file
// manager becomes unreachable.
package memfs

import (
	"io"
	"io/fs"
	"path"
	"sort"

	"github.com/jcfs/jcfs"
)

var _ jcfs.VFS = &MemFS{}

// Name returns the name of the file system instance.
func (vfs *MemFS) Name() string {
	return vfs.name
}

// Features returns the set of features provided by the file system.
func (vfs *MemFS) Features() jcfs.Features {
	return jcfs.FeatInMemory
}

// Exists returns true if name exists, whatever its type.
func (vfs *MemFS) Exists(name string) bool {
	vfs.mu.RLock()
	defer vfs.mu.RUnlock()

	if vfs.closed {
		return false
	}

	_, err := vfs.searchNode(name)

	return err == nil
}

// IsDir returns true if name exists and is a directory.
func (vfs *MemFS) IsDir(name string) bool {
	vfs.mu.RLock()
	defer vfs.mu.RUnlock()

	if vfs.closed {
		return false
	}

	nd, err := vfs.searchNode(name)
	if err != nil {
		return false
	}

	_, ok := nd.(*dirNode)

	return ok
}

// IsRegular returns true if name exists and is a regular file.
func (vfs *MemFS) IsRegular(name string) bool {
	vfs.mu.RLock()
	defer vfs.mu.RUnlock()

	if vfs.closed {
		return false
	}

	nd, err := vfs.searchNode(name)
	if err != nil {
		return false
	}

	_, ok := nd.(*fileNode)

	return ok
}

// Stat returns a FileInfo describing the named file.
func (vfs *MemFS) Stat(name string) (fs.FileInfo, error) {
	vfs.mu.RLock()
	defer vfs.mu.RUnlock()

	if vfs.closed {
		return nil, pathError("stat", name, fs.ErrClosed)
	}

	nd, err := vfs.searchNode(name)
	if err != nil {
		return nil, pathError("stat", name, err)
	}

	return nd.fillStatFrom(path.Base(path.Clean(name))), nil
}

// ReadDir reads the named directory, returning all its directory entries
// sorted by filename.
func (vfs *MemFS) ReadDir(name string) ([]fs.DirEntry, error) {
	vfs.mu.RLock()
	defer vfs.mu.RUnlock()

	if vfs.closed {
		return nil, pathError("readdir", name, fs.ErrClosed)
	}

	nd, err := vfs.searchNode(name)
	if err != nil {
		return nil, pathError("readdir", name, err)
	}

	dn, ok := nd.(*dirNode)
	if !ok {
		return nil, pathError("readdir", name, errNotADirectory)
	}

	entries := make([]fs.DirEntry, 0, len(dn.children))
	for childName, child := range dn.children {
		entries = append(entries, child.fillStatFrom(childName))
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	return entries, nil
}

// Open opens the named file for reading. The returned reader sees the
// content of the file at open time, unaffected by later writes.
func (vfs *MemFS) Open(name string) (io.ReadCloser, error) {
	vfs.mu.RLock()
	defer vfs.mu.RUnlock()

	if vfs.closed {
		return nil, pathError("open", name, fs.ErrClosed)
	}

	nd, err := vfs.searchNode(name)
	if err != nil {
		return nil, pathError("open", name, err)
	}

	fn, ok := nd.(*fileNode)
	if !ok {
		return nil, pathError("open", name, fs.ErrInvalid)
	}

	return newMemReader(fn.data), nil
}

// Create creates or truncates the named file for writing, creating any
// missing parent directories first. The content becomes visible when the
// returned writer is closed.
func (vfs *MemFS) Create(name string) (io.WriteCloser, error) {
	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	if vfs.closed {
		return nil, pathError("create", name, fs.ErrClosed)
	}

	nd, err := vfs.searchNode(name)
	if err == nil {
		if _, ok := nd.(*dirNode); ok {
			return nil, pathError("create", name, fs.ErrExist)
		}
	}

	return newMemWriter(vfs, path.Clean(name)), nil
}

// Remove removes the named file or empty directory.
func (vfs *MemFS) Remove(name string) error {
	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	if vfs.closed {
		return pathError("remove", name, fs.ErrClosed)
	}

	dir, base := path.Split(path.Clean(name))
	if base == "" || base == "/" {
		return pathError("remove", name, fs.ErrInvalid)
	}

	parent, err := vfs.searchNode(dir)
	if err != nil {
		return pathError("remove", name, err)
	}

	dn, ok := parent.(*dirNode)
	if !ok {
		return pathError("remove", name, errNotADirectory)
	}

	child, ok := dn.children[base]
	if !ok {
		return pathError("remove", name, fs.ErrNotExist)
	}

	if childDir, ok := child.(*dirNode); ok && len(childDir.children) > 0 {
		return pathError("remove", name, errDirNotEmpty)
	}

	delete(dn.children, base)

	return nil
}

// Close releases the whole tree. Closing an already closed file system is
// a no-op.
func (vfs *MemFS) Close() error {
	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	vfs.closed = true
	vfs.rootNode = &dirNode{children: map[string]node{}}

	return nil
}

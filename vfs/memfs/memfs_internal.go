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

package memfs

import (
	"errors"
	"io/fs"
	"path"
	"strings"
	"time"
)

var (
	// errNotADirectory is returned when a path segment resolves to a file.
	errNotADirectory = errors.New("not a directory")

	// errDirNotEmpty is returned when removing a non-empty directory.
	errDirNotEmpty = errors.New("directory not empty")
)

// splitPath splits an absolute slash separated path into its segments.
// The root path yields no segment.
func splitPath(name string) []string {
	name = path.Clean(name)
	if name == "/" || name == "." {
		return nil
	}

	return strings.Split(strings.TrimPrefix(name, "/"), "/")
}

// searchNode returns the node for the given path, walking the tree from
// the root. The caller must hold the lock.
func (vfs *MemFS) searchNode(name string) (node, error) {
	current := node(vfs.rootNode)

	for _, segment := range splitPath(name) {
		dn, ok := current.(*dirNode)
		if !ok {
			return nil, errNotADirectory
		}

		child, ok := dn.children[segment]
		if !ok {
			return nil, fs.ErrNotExist
		}

		current = child
	}

	return current, nil
}

// createDirs returns the directory node for the given path, creating every
// missing intermediate directory. The caller must hold the lock for
// writing.
func (vfs *MemFS) createDirs(name string) (*dirNode, error) {
	current := vfs.rootNode

	for _, segment := range splitPath(name) {
		child, ok := current.children[segment]
		if !ok {
			child = &dirNode{
				children: map[string]node{},
				mtime:    time.Now().UnixNano(),
			}
			current.children[segment] = child
		}

		dn, ok := child.(*dirNode)
		if !ok {
			return nil, errNotADirectory
		}

		current = dn
	}

	return current, nil
}

// commit stores data as the content of the file name, creating parent
// directories as needed. It is called when a writer is closed.
func (vfs *MemFS) commit(name string, data []byte) error {
	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	if vfs.closed {
		return fs.ErrClosed
	}

	dir, base := path.Split(path.Clean(name))
	if base == "" || base == "/" {
		return fs.ErrInvalid
	}

	parent, err := vfs.createDirs(dir)
	if err != nil {
		return err
	}

	if _, ok := parent.children[base].(*dirNode); ok {
		return fs.ErrExist
	}

	parent.children[base] = &fileNode{
		data:  data,
		mtime: time.Now().UnixNano(),
	}

	return nil
}

// pathError wraps err into a *fs.PathError for the operation op.
func pathError(op, name string, err error) error {
	return &fs.PathError{Op: op, Path: name, Err: err}
}

// fillStatFrom returns a *MemInfo describing the directory named name.
func (dn *dirNode) fillStatFrom(name string) *MemInfo {
	return &MemInfo{
		name:  name,
		fsize: dn.size(),
		mtime: dn.mtime,
		dir:   true,
	}
}

// size returns the number of entries in the directory.
func (dn *dirNode) size() int64 {
	return int64(len(dn.children))
}

// fillStatFrom returns a *MemInfo describing the file named name.
func (fn *fileNode) fillStatFrom(name string) *MemInfo {
	return &MemInfo{
		name:  name,
		fsize: fn.size(),
		mtime: fn.mtime,
	}
}

// size returns the size of the file content.
func (fn *fileNode) size() int64 {
	return int64(len(fn.data))
}

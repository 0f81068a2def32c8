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
	"io/fs"
	"sync"
	"time"
)

// MemFS implements an in-memory file system using the jcfs.VFS interface.
// Every instance is an isolated tree with a generated name; the content is
// released by Close.
type MemFS struct {
	name     string       // name is the generated or configured name of the instance.
	rootNode *dirNode     // rootNode represents the root directory of the file system.
	mu       sync.RWMutex // mu guards the node tree and the closed flag.
	closed   bool         // closed is set by Close; all operations fail afterwards.
}

// Option defines the option function used for initializing MemFS.
type Option func(*MemFS)

// node is the interface implemented by dirNode and fileNode.
type node interface {
	// fillStatFrom returns a *MemInfo describing the node named name.
	fillStatFrom(name string) *MemInfo

	// size returns the size of the node.
	size() int64
}

// dirNode is the structure for a directory.
type dirNode struct {
	children map[string]node // children are the nodes present in the directory.
	mtime    int64           // mtime is the modification time.
}

// fileNode is the structure for a file.
type fileNode struct {
	data  []byte // data is the file content.
	mtime int64  // mtime is the modification time.
}

// MemInfo is the implementation of fs.FileInfo and fs.DirEntry for MemFS.
type MemInfo struct {
	name  string // name is the base name of the file.
	fsize int64  // fsize is the size of the file.
	mtime int64  // mtime is the modification time.
	dir   bool   // dir is true for a directory.
}

var (
	_ fs.FileInfo = &MemInfo{}
	_ fs.DirEntry = &MemInfo{}
)

// Name returns the base name of the file.
func (info *MemInfo) Name() string {
	return info.name
}

// Size returns the length in bytes for regular files.
func (info *MemInfo) Size() int64 {
	return info.fsize
}

// Mode returns the file mode bits.
func (info *MemInfo) Mode() fs.FileMode {
	if info.dir {
		return fs.ModeDir | 0o755
	}

	return 0o644
}

// ModTime returns the modification time.
func (info *MemInfo) ModTime() time.Time {
	return time.Unix(0, info.mtime)
}

// IsDir reports whether the entry describes a directory.
func (info *MemInfo) IsDir() bool {
	return info.dir
}

// Sys returns the underlying data source (always nil for MemFS).
func (info *MemInfo) Sys() any {
	return nil
}

// Type returns the type bits for the entry.
func (info *MemInfo) Type() fs.FileMode {
	return info.Mode().Type()
}

// Info returns the FileInfo for the file or subdirectory described by the
// entry.
func (info *MemInfo) Info() (fs.FileInfo, error) {
	return info, nil
}

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

// Package zipfs exposes the content of a zip or jar archive as a read-only
// jcfs.VFS. The archive is opened lazily on first access and its root is
// resolved once and cached; closing the ZipFS closes the archive.
package zipfs

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/jcfs/jcfs"
)

// ZipFS implements the jcfs.VFS interface over one archive file.
type ZipFS struct {
	archive string              // archive is the native path of the archive file.
	name    string              // name is the URI namespace of this instance.
	rc      *zip.ReadCloser     // rc is the opened archive, nil until first access.
	entries map[string]*zipInfo // entries indexes every file and directory by absolute path.
	mu      sync.Mutex          // mu guards lazy opening and closing.
	opened  bool                // opened is set once the archive has been indexed.
	closed  bool                // closed rejects any further access.
}

var _ jcfs.VFS = &ZipFS{}

// New returns a read-only file system over the archive at the given path
// on the real file system. The archive is not opened before first access.
func New(archive string) *ZipFS {
	abs, err := filepath.Abs(filepath.FromSlash(jcfs.ToSlash(archive)))
	if err != nil {
		abs = archive
	}

	return &ZipFS{
		archive: abs,
		name:    "zip:" + filepath.ToSlash(abs),
	}
}

// Detect reports whether the file at the given real path is a zip archive,
// by probing its magic number rather than trusting the extension.
func Detect(name string) bool {
	f, err := os.Open(filepath.FromSlash(jcfs.ToSlash(name)))
	if err != nil {
		return false
	}

	defer f.Close()

	var magic [4]byte

	if _, err = io.ReadFull(f, magic[:]); err != nil {
		return false
	}

	if magic[0] != 'P' || magic[1] != 'K' {
		return false
	}

	switch {
	case magic[2] == 3 && magic[3] == 4: // regular archive
		return true
	case magic[2] == 5 && magic[3] == 6: // empty archive
		return true
	case magic[2] == 7 && magic[3] == 8: // spanned archive
		return true
	default:
		return false
	}
}

// Name returns the name of the file system instance.
func (vfs *ZipFS) Name() string {
	return vfs.name
}

// Features returns the set of features provided by the file system.
func (vfs *ZipFS) Features() jcfs.Features {
	return jcfs.FeatReadOnly
}

// Exists returns true if name exists, whatever its type.
func (vfs *ZipFS) Exists(name string) bool {
	info, err := vfs.lookup(name)

	return err == nil && info != nil
}

// IsDir returns true if name exists and is a directory.
func (vfs *ZipFS) IsDir(name string) bool {
	info, err := vfs.lookup(name)

	return err == nil && info != nil && info.dir
}

// IsRegular returns true if name exists and is a regular file.
func (vfs *ZipFS) IsRegular(name string) bool {
	info, err := vfs.lookup(name)

	return err == nil && info != nil && !info.dir
}

// Stat returns a FileInfo describing the named file.
func (vfs *ZipFS) Stat(name string) (fs.FileInfo, error) {
	info, err := vfs.lookup(name)
	if err != nil {
		return nil, pathError("stat", name, err)
	}

	if info == nil {
		return nil, pathError("stat", name, fs.ErrNotExist)
	}

	return info, nil
}

// ReadDir reads the named directory, returning all its directory entries
// sorted by filename. The lock is held for the whole read so a concurrent
// Close cannot empty the index halfway through.
func (vfs *ZipFS) ReadDir(name string) ([]fs.DirEntry, error) {
	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	dir, err := vfs.lookupLocked(name)
	if err != nil {
		return nil, pathError("readdir", name, err)
	}

	if dir == nil {
		return nil, pathError("readdir", name, fs.ErrNotExist)
	}

	if !dir.dir {
		return nil, pathError("readdir", name, fs.ErrInvalid)
	}

	prefix := abs(name)
	if prefix != "/" {
		prefix += "/"
	}

	entries := make([]fs.DirEntry, 0, len(dir.childNames))
	for _, child := range dir.childNames {
		entries = append(entries, vfs.entries[prefix+child])
	}

	return entries, nil
}

// Open opens the named file for reading.
func (vfs *ZipFS) Open(name string) (io.ReadCloser, error) {
	info, err := vfs.lookup(name)
	if err != nil {
		return nil, pathError("open", name, err)
	}

	if info == nil {
		return nil, pathError("open", name, fs.ErrNotExist)
	}

	if info.dir {
		return nil, pathError("open", name, fs.ErrInvalid)
	}

	rc, err := info.file.Open()
	if err != nil {
		return nil, pathError("open", name, err)
	}

	return rc, nil
}

// Create always fails: archives are read-only.
func (vfs *ZipFS) Create(name string) (io.WriteCloser, error) {
	return nil, pathError("create", name, jcfs.ErrReadOnly)
}

// Remove always fails: archives are read-only.
func (vfs *ZipFS) Remove(name string) error {
	return pathError("remove", name, jcfs.ErrReadOnly)
}

// Close closes the archive. Closing an already closed or never opened
// archive is a no-op.
func (vfs *ZipFS) Close() error {
	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	vfs.closed = true
	vfs.entries = nil

	if vfs.rc == nil {
		return nil
	}

	rc := vfs.rc
	vfs.rc = nil

	return rc.Close()
}

// lookup returns the indexed entry for name, opening the archive on first
// access. A nil entry with a nil error means the name does not exist.
func (vfs *ZipFS) lookup(name string) (*zipInfo, error) {
	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	return vfs.lookupLocked(name)
}

// lookupLocked is lookup for callers already holding the lock.
func (vfs *ZipFS) lookupLocked(name string) (*zipInfo, error) {
	if vfs.closed {
		return nil, fs.ErrClosed
	}

	if !vfs.opened {
		if err := vfs.index(); err != nil {
			return nil, err
		}
	}

	return vfs.entries[abs(name)], nil
}

// index opens the archive and builds the entry index, creating implied
// directory entries for every ancestor. The caller must hold the lock.
func (vfs *ZipFS) index() error {
	rc, err := zip.OpenReader(vfs.archive)
	if err != nil {
		return err
	}

	vfs.rc = rc
	vfs.opened = true
	vfs.entries = map[string]*zipInfo{
		"/": {name: "/", dir: true},
	}

	for _, zf := range rc.File {
		full := abs(zf.Name)
		if full == "/" {
			continue
		}

		if strings.HasSuffix(zf.Name, "/") || zf.FileInfo().IsDir() {
			vfs.addDir(full, zf.Modified.UnixNano())

			continue
		}

		vfs.addDir(path.Dir(full), zf.Modified.UnixNano())

		_, known := vfs.entries[full]

		vfs.entries[full] = &zipInfo{
			name:  path.Base(full),
			fsize: zf.FileInfo().Size(),
			mtime: zf.Modified.UnixNano(),
			file:  zf,
		}

		if !known {
			vfs.link(full)
		}
	}

	for _, info := range vfs.entries {
		sort.Strings(info.childNames)
	}

	return nil
}

// addDir creates the directory entry for full and its ancestors, parents
// first so every child can be linked to an existing parent.
func (vfs *ZipFS) addDir(full string, mtime int64) {
	if full == "/" {
		return
	}

	if _, ok := vfs.entries[full]; ok {
		return
	}

	vfs.addDir(path.Dir(full), mtime)

	vfs.entries[full] = &zipInfo{
		name:  path.Base(full),
		mtime: mtime,
		dir:   true,
	}

	vfs.link(full)
}

// link registers full as a child of its parent directory.
func (vfs *ZipFS) link(full string) {
	parent := vfs.entries[path.Dir(full)]
	if parent != nil {
		parent.childNames = append(parent.childNames, path.Base(full))
	}
}

// abs normalizes an archive entry name or a caller path into an absolute
// slash separated path.
func abs(name string) string {
	name = path.Clean("/" + jcfs.ToSlash(name))

	return name
}

// pathError wraps err into a *fs.PathError for the operation op.
func pathError(op, name string, err error) error {
	return &fs.PathError{Op: op, Path: name, Err: err}
}

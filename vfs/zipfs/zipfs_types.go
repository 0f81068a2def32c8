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

package zipfs

import (
	"archive/zip"
	"io/fs"
	"time"
)

// zipInfo is the implementation of fs.FileInfo and fs.DirEntry for one
// archive entry, indexed by ZipFS.
type zipInfo struct {
	name       string    // name is the base name of the entry.
	childNames []string  // childNames are the sorted children of a directory entry.
	file       *zip.File // file is the backing archive member, nil for directories.
	fsize      int64     // fsize is the uncompressed size of the entry.
	mtime      int64     // mtime is the modification time recorded in the archive.
	dir        bool      // dir is true for a directory entry, explicit or implied.
}

var (
	_ fs.FileInfo = &zipInfo{}
	_ fs.DirEntry = &zipInfo{}
)

// Name returns the base name of the entry.
func (info *zipInfo) Name() string {
	return info.name
}

// Size returns the uncompressed length in bytes for archive members.
func (info *zipInfo) Size() int64 {
	return info.fsize
}

// Mode returns the file mode bits.
func (info *zipInfo) Mode() fs.FileMode {
	if info.dir {
		return fs.ModeDir | 0o555
	}

	return 0o444
}

// ModTime returns the modification time recorded in the archive.
func (info *zipInfo) ModTime() time.Time {
	return time.Unix(0, info.mtime)
}

// IsDir reports whether the entry describes a directory.
func (info *zipInfo) IsDir() bool {
	return info.dir
}

// Sys returns the underlying data source (always nil for ZipFS).
func (info *zipInfo) Sys() any {
	return nil
}

// Type returns the type bits for the entry.
func (info *zipInfo) Type() fs.FileMode {
	return info.Mode().Type()
}

// Info returns the FileInfo for the file or subdirectory described by the
// entry.
func (info *zipInfo) Info() (fs.FileInfo, error) {
	return info, nil
}

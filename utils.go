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

package jcfs

import (
	"io/fs"
	"path"
	"strings"
)

// BinaryName derives the dot separated binary name of a class from its
// slash separated relative path: every segment has its registered extension
// stripped and the segments are joined with dots. Deriving again from the
// result yields the same name, since only registered extensions are
// stripped.
//
//	BinaryName(kinds, "com/example/Foo.java") == "com.example.Foo"
func BinaryName(kinds KindTable, relPath string) string {
	segments := strings.Split(strings.Trim(path.Clean(ToSlash(relPath)), "/"), "/")

	for i, segment := range segments {
		segments[i] = kinds.StripExtension(segment)
	}

	return strings.Join(segments, ".")
}

// SplitBinaryName splits a dot separated binary name at its last dot into
// the package name and the simple class name. A name without a dot is all
// simple name in the root package.
func SplitBinaryName(binaryName string) (packageName, simpleName string) {
	i := strings.LastIndexByte(binaryName, '.')
	if i < 0 {
		return "", binaryName
	}

	return binaryName[:i], binaryName[i+1:]
}

// PackagePath converts a package name into the slash separated relative
// directory path of the package. Both dotted names ("com.example") and
// already slashed paths ("com/example") are accepted; the empty name
// designates the root package.
func PackagePath(packageName string) string {
	if packageName == "" {
		return ""
	}

	if !strings.Contains(packageName, "/") {
		packageName = strings.ReplaceAll(packageName, ".", "/")
	}

	return strings.Trim(path.Clean(packageName), "/")
}

// ToSlash replaces every backslash in the path with a slash, so callers may
// supply paths in their platform representation.
func ToSlash(name string) string {
	return strings.ReplaceAll(name, "\\", "/")
}

// WalkDir walks the tree rooted at root on fsys, calling fn for each entry
// below root. Directories more than maxDepth levels below root are not
// descended into; a negative maxDepth walks the whole tree. When reading a
// directory fails, fn is called once with the directory path, a nil entry
// and the error, and the walk continues with its siblings.
//
// fn may return fs.SkipDir on a directory entry to skip its content; any
// other error aborts the walk.
func WalkDir(fsys VFS, root string, maxDepth int, fn fs.WalkDirFunc) error {
	return walkDir(fsys, root, maxDepth, fn)
}

func walkDir(fsys VFS, dir string, depthLeft int, fn fs.WalkDirFunc) error {
	if depthLeft == 0 {
		return nil
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if err = fn(dir, nil, err); err != nil && err != fs.SkipDir { //nolint:errorlint // fs.SkipDir is a sentinel.
			return err
		}

		return nil
	}

	for _, entry := range entries {
		name := dir + "/" + entry.Name()
		if dir == "/" {
			name = "/" + entry.Name()
		}

		err = fn(name, entry, nil)
		if err != nil {
			if err == fs.SkipDir { //nolint:errorlint // fs.SkipDir is a sentinel.
				continue
			}

			return err
		}

		if entry.IsDir() {
			if err = walkDir(fsys, name, depthLeft-1, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

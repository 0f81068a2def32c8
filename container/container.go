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

// Package container aggregates file system roots behind compiler
// locations.
//
// A Container is the ownership boundary around one root: a directory tree,
// an archive root or an in-memory root. A container group owns the ordered
// containers of one location and comes in three flavors, distinguished by
// an explicit category: package oriented, module oriented and output.
package container

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"

	"github.com/jcfs/jcfs"
	"github.com/jcfs/jcfs/vfs/osfs"
	"github.com/jcfs/jcfs/vfs/zipfs"
)

// Container wraps one root backing a location. It answers existence,
// listing, lookup and output requests for paths below its root.
type Container struct {
	cfg      *jcfs.Config  // cfg carries the kind table and the logger.
	location jcfs.Location // location is the location the container backs.
	root     jcfs.Root     // root is the backing file system root.
}

// New returns a container for the given root, backing location.
func New(cfg *jcfs.Config, location jcfs.Location, root jcfs.Root) *Container {
	if cfg == nil {
		cfg = jcfs.NewConfig()
	}

	return &Container{cfg: cfg, location: location, root: root}
}

// RootForPath wraps a real path into a root: directories become real file
// system roots and regular files probed as archives become archive roots.
// Anything else is rejected.
func RootForPath(cfg *jcfs.Config, pathname string) (jcfs.Root, error) {
	native := filepath.FromSlash(jcfs.ToSlash(pathname))

	info, err := os.Stat(native)
	if err != nil {
		return jcfs.Root{}, jcfs.WrapIO("stat", pathname, err)
	}

	if info.IsDir() {
		return osfs.NewRoot(pathname)
	}

	if info.Mode().IsRegular() && zipfs.Detect(native) {
		return jcfs.NewRoot(zipfs.New(native), "/"), nil
	}

	return jcfs.Root{}, UnsupportedPathError(pathname)
}

// Root returns the backing root.
func (c *Container) Root() jcfs.Root {
	return c.root
}

// Location returns the location the container backs.
func (c *Container) Location() jcfs.Location {
	return c.location
}

// Contains returns true if the file object designates an existing file
// below the container root.
func (c *Container) Contains(fo jcfs.FileObject) bool {
	rel, ok := c.relOf(fo)
	if !ok {
		return false
	}

	return c.root.FS.Exists(c.root.Join(rel))
}

// errStopIteration aborts a walk when the consumer stops the sequence.
var errStopIteration = errors.New("stop iteration")

// List returns the file objects of the given package whose kind is in
// kinds. A non-recursive listing stays at depth one below the package
// directory; a recursive one walks the whole subtree. The sequence is
// lazy: the walk advances as the consumer does. Unreadable entries are
// logged and skipped, one unreadable artifact does not stop the walk.
func (c *Container) List(packageName string, kinds jcfs.KindSet, recurse bool) iter.Seq[jcfs.FileObject] {
	return func(yield func(jcfs.FileObject) bool) {
		dir := c.root.Join(jcfs.PackagePath(packageName))
		if !c.root.FS.IsDir(dir) {
			return
		}

		depth := 1
		if recurse {
			depth = -1
		}

		_ = jcfs.WalkDir(c.root.FS, dir, depth, func(name string, entry fs.DirEntry, err error) error {
			if err != nil {
				c.cfg.Logger().Warn("skipping unreadable entry", "path", name, "err", err)

				return nil
			}

			if entry.IsDir() || !kinds.Contains(c.cfg.Kinds().KindOf(name)) {
				return nil
			}

			rel, ok := c.root.Rel(name)
			if !ok {
				return nil
			}

			fo, foErr := jcfs.NewFileObject(c.cfg, c.location, c.root, rel)
			if foErr != nil {
				return nil
			}

			if !yield(fo) {
				return errStopIteration
			}

			return nil
		})
	}
}

// FileForInput returns the file object for relativeName within the given
// package if the file exists below the container root.
func (c *Container) FileForInput(packageName, relativeName string) (jcfs.FileObject, bool) {
	fo, err := c.fileObject(packageName, relativeName)
	if err != nil {
		return nil, false
	}

	if !c.root.FS.IsRegular(fo.AbsolutePath()) {
		return nil, false
	}

	return fo, true
}

// FileForOutput returns the file object relativeName within the given
// package would be written as. The file itself is not created.
func (c *Container) FileForOutput(packageName, relativeName string) (jcfs.FileObject, error) {
	return c.fileObject(packageName, relativeName)
}

// InferBinaryName derives the binary name of a file object resolved under
// this container, or false if the file object lives elsewhere.
func (c *Container) InferBinaryName(fo jcfs.FileObject) (string, bool) {
	rel, ok := c.relOf(fo)
	if !ok {
		return "", false
	}

	return jcfs.BinaryName(c.cfg.Kinds(), rel), true
}

// fileObject builds the file object for relativeName below the package
// directory.
func (c *Container) fileObject(packageName, relativeName string) (jcfs.FileObject, error) {
	rel := path.Join(jcfs.PackagePath(packageName), jcfs.ToSlash(relativeName))

	return jcfs.NewFileObject(c.cfg, c.location, c.root, rel)
}

// relOf returns the path of the file object relative to the container
// root, or false if the file object belongs to another file system or
// lives outside the root.
func (c *Container) relOf(fo jcfs.FileObject) (string, bool) {
	if fo == nil || fo.Root().FS == nil {
		return "", false
	}

	if fo.Root().FS.Name() != c.root.FS.Name() {
		return "", false
	}

	return c.root.Rel(fo.AbsolutePath())
}

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

package container

import (
	"iter"

	"github.com/jcfs/jcfs"
	"github.com/jcfs/jcfs/loader"
)

// Category is the explicit discriminant of the three group flavors.
type Category uint8

const (
	// CategoryPackage is a flat group backing one non-module location.
	CategoryPackage Category = iota + 1

	// CategoryModule is a group owning one nested package oriented group
	// per module name.
	CategoryModule

	// CategoryOutput behaves like CategoryModule for module addressed
	// writes but also accepts bare packages directly.
	CategoryOutput
)

// String returns the name of the category.
func (c Category) String() string {
	switch c {
	case CategoryPackage:
		return "package-oriented"
	case CategoryModule:
		return "module-oriented"
	case CategoryOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Group is the capability set common to the three container group flavors.
// Only the package within this module implements it: the flavors form a
// closed set dispatched by Category, not an open hierarchy.
type Group interface {
	// Location returns the location the group backs.
	Location() jcfs.Location

	// Category returns the flavor discriminant of the group.
	Category() Category

	// AddRoot registers one more root. On a module oriented group the
	// root is fanned out into the modules discovered under it instead of
	// being added flatly.
	AddRoot(root jcfs.Root) error

	// Containers returns the flat containers of the group in registration
	// order. Module oriented groups have none.
	Containers() []*Container

	// Module returns the nested group of the named module without
	// creating it.
	Module(name string) (Group, bool)

	// OrCreateModule returns the nested group of the named module,
	// creating an empty one on first access. Unknown names never fail:
	// annotation processors probe module locations speculatively.
	OrCreateModule(name string) (Group, error)

	// ModuleNames returns the sorted names of the nested modules.
	ModuleNames() []string

	// List returns the file objects of the given package whose kind is in
	// kinds, across every container of the group.
	List(packageName string, kinds jcfs.KindSet, recurse bool) iter.Seq[jcfs.FileObject]

	// FileForInput resolves relativeName within the given package across
	// the containers in registration order, first match wins.
	FileForInput(packageName, relativeName string) (jcfs.FileObject, bool)

	// FileForOutput targets the first registered container, the stable
	// primary write target; later containers are read-only fallbacks.
	FileForOutput(packageName, relativeName string) (jcfs.FileObject, error)

	// InferBinaryName derives the binary name of a file object resolved
	// under one of the group containers.
	InferBinaryName(fo jcfs.FileObject) (string, bool)

	// Contains returns true if the file object designates an existing
	// file below one of the group containers.
	Contains(fo jcfs.FileObject) bool

	// Loader returns the loader of the group. Module oriented groups have
	// no loader of their own; request a module location instead.
	Loader() (*loader.Loader, error)

	// Release drops the containers and invalidates the loader. Underlying
	// file systems are not closed synchronously; the cleanup reaper takes
	// care of them once they become unreachable.
	Release()

	// adopt copies one container into the group, rewrapped under the
	// group location. Used by Copy; keeps the implementation set closed.
	adopt(c *Container) error
}

// Copy deep-copies every container and every nested module of the source
// group into the target group, preserving registration order without
// deduplication. Both groups must have the same category.
func Copy(from, to Group) error {
	if from.Category() != to.Category() {
		return &CategoryMismatchError{From: from.Location(), To: to.Location(), FromCategory: from.Category(), ToCategory: to.Category()}
	}

	for _, c := range from.Containers() {
		if err := to.adopt(c); err != nil {
			return err
		}
	}

	for _, name := range from.ModuleNames() {
		src, ok := from.Module(name)
		if !ok {
			continue
		}

		dst, err := to.OrCreateModule(name)
		if err != nil {
			return err
		}

		for _, c := range src.Containers() {
			if err := dst.adopt(c); err != nil {
				return err
			}
		}
	}

	return nil
}

// CategoryMismatchError is returned when containers are copied between
// groups of different categories.
type CategoryMismatchError struct {
	From         jcfs.Location // From is the source location.
	To           jcfs.Location // To is the target location.
	FromCategory Category      // FromCategory is the category of the source group.
	ToCategory   Category      // ToCategory is the category of the target group.
}

func (e *CategoryMismatchError) Error() string {
	return "cannot copy containers from " + e.From.Name() + " (" + e.FromCategory.String() +
		") to " + e.To.Name() + " (" + e.ToCategory.String() + "): categories differ"
}

// NotPackageOrientedError is returned when a package level operation is
// attempted on a module oriented location.
type NotPackageOrientedError string

func (e NotPackageOrientedError) Error() string {
	return "location " + string(e) + " is module-oriented; address one of its module locations instead"
}

// NoContainerError is returned when an output operation is attempted on a
// group without any registered container.
type NoContainerError string

func (e NoContainerError) Error() string {
	return "location " + string(e) + " has no registered container to write to"
}

// UnsupportedPathError is returned when a path is neither a directory nor
// a recognized archive.
type UnsupportedPathError string

func (e UnsupportedPathError) Error() string {
	return "path " + string(e) + " is neither a directory nor a recognized archive"
}

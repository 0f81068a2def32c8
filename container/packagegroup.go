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
	"sync"

	"github.com/jcfs/jcfs"
	"github.com/jcfs/jcfs/loader"
)

// PackageGroup is the flat, package oriented group flavor: an insertion
// ordered set of containers backing one non-module location.
type PackageGroup struct {
	cfg        *jcfs.Config   // cfg carries the kind table and the logger.
	location   jcfs.Location  // location is the location the group backs.
	ldr        *loader.Loader // ldr is the loader owned by the group.
	mu         sync.RWMutex   // mu guards containers.
	containers []*Container   // containers in registration order.
}

var _ Group = &PackageGroup{}

// NewPackageGroup returns an empty package oriented group for location.
func NewPackageGroup(cfg *jcfs.Config, location jcfs.Location) *PackageGroup {
	if cfg == nil {
		cfg = jcfs.NewConfig()
	}

	return &PackageGroup{
		cfg:      cfg,
		location: location,
		ldr:      loader.New(cfg),
	}
}

// Location returns the location the group backs.
func (g *PackageGroup) Location() jcfs.Location {
	return g.location
}

// Category returns CategoryPackage.
func (g *PackageGroup) Category() Category {
	return CategoryPackage
}

// AddRoot appends a container for root and invalidates the loader.
func (g *PackageGroup) AddRoot(root jcfs.Root) error {
	g.mu.Lock()
	g.containers = append(g.containers, New(g.cfg, g.location, root))
	g.mu.Unlock()

	g.ldr.AddRoot(root)

	return nil
}

// adopt copies a container into the group, rewrapped under the group
// location.
func (g *PackageGroup) adopt(c *Container) error {
	return g.AddRoot(c.Root())
}

// Containers returns the containers in registration order.
func (g *PackageGroup) Containers() []*Container {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]*Container(nil), g.containers...)
}

// firstRoot returns the root of the first registered container, the
// primary write target.
func (g *PackageGroup) firstRoot() (jcfs.Root, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if len(g.containers) == 0 {
		return jcfs.Root{}, false
	}

	return g.containers[0].Root(), true
}

// Module always reports the module as absent: a package oriented group
// holds no modules.
func (g *PackageGroup) Module(string) (Group, bool) {
	return nil, false
}

// OrCreateModule always fails: a package oriented group holds no modules.
func (g *PackageGroup) OrCreateModule(string) (Group, error) {
	return nil, jcfs.InvalidModuleParentError(g.location.Name())
}

// ModuleNames returns nil: a package oriented group holds no modules.
func (g *PackageGroup) ModuleNames() []string {
	return nil
}

// List returns the matching file objects of every container, in container
// registration order.
func (g *PackageGroup) List(packageName string, kinds jcfs.KindSet, recurse bool) iter.Seq[jcfs.FileObject] {
	containers := g.Containers()

	return func(yield func(jcfs.FileObject) bool) {
		for _, c := range containers {
			for fo := range c.List(packageName, kinds, recurse) {
				if !yield(fo) {
					return
				}
			}
		}
	}
}

// FileForInput resolves relativeName across the containers in
// registration order, first match wins.
func (g *PackageGroup) FileForInput(packageName, relativeName string) (jcfs.FileObject, bool) {
	for _, c := range g.Containers() {
		if fo, ok := c.FileForInput(packageName, relativeName); ok {
			return fo, true
		}
	}

	return nil, false
}

// FileForOutput targets the first registered container regardless of how
// many containers were added later.
func (g *PackageGroup) FileForOutput(packageName, relativeName string) (jcfs.FileObject, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if len(g.containers) == 0 {
		return nil, NoContainerError(g.location.Name())
	}

	return g.containers[0].FileForOutput(packageName, relativeName)
}

// InferBinaryName derives the binary name of fo from the first container
// it resolves under.
func (g *PackageGroup) InferBinaryName(fo jcfs.FileObject) (string, bool) {
	for _, c := range g.Containers() {
		if name, ok := c.InferBinaryName(fo); ok {
			return name, true
		}
	}

	return "", false
}

// Contains returns true if fo designates an existing file below one of
// the group containers.
func (g *PackageGroup) Contains(fo jcfs.FileObject) bool {
	for _, c := range g.Containers() {
		if c.Contains(fo) {
			return true
		}
	}

	return false
}

// Loader returns the loader owned by the group.
func (g *PackageGroup) Loader() (*loader.Loader, error) {
	return g.ldr, nil
}

// Release drops the containers and invalidates the loader.
func (g *PackageGroup) Release() {
	g.mu.Lock()
	g.containers = nil
	g.mu.Unlock()

	g.ldr.Invalidate()
}

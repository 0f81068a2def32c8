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
	"sort"
	"sync"

	"github.com/jcfs/jcfs"
	"github.com/jcfs/jcfs/loader"
)

// OutputGroup is the output group flavor. Whether an output location is
// used flatly (legacy mode) or per module (multi-module mode) is unknown
// until the first write, so the group carries both a flat package oriented
// side and a module map: bare packages go to the flat side, module
// addressed writes to nested groups rooted in subdirectories of the
// primary write target.
type OutputGroup struct {
	cfg       *jcfs.Config             // cfg carries the kind table and the logger.
	location  jcfs.Location            // location is the output location the group backs.
	flat      *PackageGroup            // flat serves bare, non-module packages.
	provision func() jcfs.Root         // provision supplies the fallback write target, may be nil.
	once      sync.Once                // once guards provisioning.
	mu        sync.RWMutex             // mu guards modules.
	modules   map[string]*PackageGroup // modules maps module names to their nested groups.
}

var _ Group = &OutputGroup{}

// NewOutputGroup returns an empty output group for location.
func NewOutputGroup(cfg *jcfs.Config, location jcfs.Location) *OutputGroup {
	if cfg == nil {
		cfg = jcfs.NewConfig()
	}

	return &OutputGroup{
		cfg:      cfg,
		location: location,
		flat:     NewPackageGroup(cfg, location),
		modules:  map[string]*PackageGroup{},
	}
}

// ProvisionWith sets the provider of the fallback write target. The
// provider runs at most once, on the first write into the group while it
// still has no container: a root registered explicitly before any write
// always stays the primary write target.
func (g *OutputGroup) ProvisionWith(provide func() jcfs.Root) {
	g.provision = provide
}

// Location returns the location the group backs.
func (g *OutputGroup) Location() jcfs.Location {
	return g.location
}

// Category returns CategoryOutput.
func (g *OutputGroup) Category() Category {
	return CategoryOutput
}

// AddRoot appends a container to the flat side. The first registered root
// is the primary write target for bare packages and the parent of every
// module subdirectory.
func (g *OutputGroup) AddRoot(root jcfs.Root) error {
	return g.flat.AddRoot(root)
}

// adopt copies a container into the flat side.
func (g *OutputGroup) adopt(c *Container) error {
	return g.flat.adopt(c)
}

// Containers returns the flat containers in registration order.
func (g *OutputGroup) Containers() []*Container {
	return g.flat.Containers()
}

// Module returns the nested group of the named module without creating
// it.
func (g *OutputGroup) Module(name string) (Group, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nested, ok := g.modules[name]
	if !ok {
		return nil, false
	}

	return nested, true
}

// OrCreateModule returns the nested group of the named module, creating
// it on first access rooted in the module subdirectory of the primary
// write target, so module output lands under <first root>/<module name>.
func (g *OutputGroup) OrCreateModule(name string) (Group, error) {
	g.mu.RLock()
	nested, ok := g.modules[name]
	g.mu.RUnlock()

	if ok {
		return nested, nil
	}

	moduleLocation, err := jcfs.NewModuleLocation(g.location, name)
	if err != nil {
		return nil, err
	}

	if err = g.ensureRoot(); err != nil {
		return nil, err
	}

	first, ok := g.flat.firstRoot()
	if !ok {
		return nil, NoContainerError(g.location.Name())
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if nested, ok = g.modules[name]; ok {
		return nested, nil
	}

	nested = NewPackageGroup(g.cfg, moduleLocation)
	if err = nested.AddRoot(jcfs.Root{FS: first.FS, Base: first.Join(name)}); err != nil {
		return nil, err
	}

	g.modules[name] = nested

	return nested, nil
}

// ModuleNames returns the sorted names of the nested modules.
func (g *OutputGroup) ModuleNames() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	names := make([]string, 0, len(g.modules))
	for name := range g.modules {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// List lists the flat side: module output is listed through the module
// locations.
func (g *OutputGroup) List(packageName string, kinds jcfs.KindSet, recurse bool) iter.Seq[jcfs.FileObject] {
	return g.flat.List(packageName, kinds, recurse)
}

// FileForInput resolves bare package inputs from the flat side.
func (g *OutputGroup) FileForInput(packageName, relativeName string) (jcfs.FileObject, bool) {
	return g.flat.FileForInput(packageName, relativeName)
}

// FileForOutput targets the first registered flat container, provisioning
// the fallback write target first when the group is still empty.
func (g *OutputGroup) FileForOutput(packageName, relativeName string) (jcfs.FileObject, error) {
	if err := g.ensureRoot(); err != nil {
		return nil, err
	}

	return g.flat.FileForOutput(packageName, relativeName)
}

// ensureRoot provisions the fallback write target once the group is used
// as a write target while still empty. A group with a root, or one without
// a provider, is left untouched.
func (g *OutputGroup) ensureRoot() error {
	if _, ok := g.flat.firstRoot(); ok {
		return nil
	}

	if g.provision == nil {
		return NoContainerError(g.location.Name())
	}

	var err error

	g.once.Do(func() { err = g.flat.AddRoot(g.provision()) })

	return err
}

// InferBinaryName tries the flat side first, then every nested module.
func (g *OutputGroup) InferBinaryName(fo jcfs.FileObject) (string, bool) {
	if name, ok := g.flat.InferBinaryName(fo); ok {
		return name, true
	}

	for _, name := range g.ModuleNames() {
		nested, ok := g.Module(name)
		if !ok {
			continue
		}

		if binary, ok := nested.InferBinaryName(fo); ok {
			return binary, true
		}
	}

	return "", false
}

// Contains returns true if fo lives in the flat side or in one of the
// nested modules.
func (g *OutputGroup) Contains(fo jcfs.FileObject) bool {
	if g.flat.Contains(fo) {
		return true
	}

	for _, name := range g.ModuleNames() {
		if nested, ok := g.Module(name); ok && nested.Contains(fo) {
			return true
		}
	}

	return false
}

// Loader returns the loader of the flat side.
func (g *OutputGroup) Loader() (*loader.Loader, error) {
	return g.flat.Loader()
}

// Release releases the flat side and every nested module group.
func (g *OutputGroup) Release() {
	g.flat.Release()

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, nested := range g.modules {
		nested.Release()
	}

	g.modules = map[string]*PackageGroup{}
}

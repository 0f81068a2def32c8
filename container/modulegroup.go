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

// moduleDescriptors are the files whose presence marks a directory as a
// module root, in exploded source and compiled form.
var moduleDescriptors = []string{"module-info.java", "module-info.class"}

// ModuleGroup is the module oriented group flavor: a mapping from module
// name to a nested package oriented group, created lazily on first access.
type ModuleGroup struct {
	cfg      *jcfs.Config             // cfg carries the kind table and the logger.
	location jcfs.Location            // location is the module oriented location the group backs.
	mu       sync.RWMutex             // mu guards modules.
	modules  map[string]*PackageGroup // modules maps module names to their nested groups.
}

var _ Group = &ModuleGroup{}

// NewModuleGroup returns an empty module oriented group for location.
func NewModuleGroup(cfg *jcfs.Config, location jcfs.Location) *ModuleGroup {
	if cfg == nil {
		cfg = jcfs.NewConfig()
	}

	return &ModuleGroup{
		cfg:      cfg,
		location: location,
		modules:  map[string]*PackageGroup{},
	}
}

// Location returns the location the group backs.
func (g *ModuleGroup) Location() jcfs.Location {
	return g.location
}

// Category returns CategoryModule.
func (g *ModuleGroup) Category() Category {
	return CategoryModule
}

// AddRoot fans the root out into the modules discovered under it: every
// direct subdirectory carrying a module descriptor becomes (or extends)
// the nested group named after it. A root without discoverable modules
// adds nothing.
func (g *ModuleGroup) AddRoot(root jcfs.Root) error {
	entries, err := root.FS.ReadDir(root.Base)
	if err != nil {
		if !root.FS.Exists(root.Base) {
			return nil
		}

		return jcfs.WrapIO("readdir", root.Base, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		moduleRoot := jcfs.Root{FS: root.FS, Base: root.Join(entry.Name())}
		if !hasModuleDescriptor(moduleRoot) {
			continue
		}

		nested, err := g.orCreateModule(entry.Name())
		if err != nil {
			return err
		}

		if err = nested.AddRoot(moduleRoot); err != nil {
			return err
		}
	}

	return nil
}

// hasModuleDescriptor returns true if the root directory carries an
// installable module descriptor.
func hasModuleDescriptor(root jcfs.Root) bool {
	for _, descriptor := range moduleDescriptors {
		if root.FS.IsRegular(root.Join(descriptor)) {
			return true
		}
	}

	return false
}

// adopt always fails: a module oriented group has no flat container list.
func (g *ModuleGroup) adopt(*Container) error {
	return NotPackageOrientedError(g.location.Name())
}

// Containers returns nil: every container lives in a nested module group.
func (g *ModuleGroup) Containers() []*Container {
	return nil
}

// Module returns the nested group of the named module without creating
// it.
func (g *ModuleGroup) Module(name string) (Group, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nested, ok := g.modules[name]
	if !ok {
		return nil, false
	}

	return nested, true
}

// OrCreateModule returns the nested group of the named module, creating
// an empty one on first access. Unknown names never fail: annotation
// processors probe module locations speculatively, so absence must look
// like emptiness. Two racing creators are idempotent, only one winner's
// group is retained.
func (g *ModuleGroup) OrCreateModule(name string) (Group, error) {
	return g.orCreateModule(name)
}

func (g *ModuleGroup) orCreateModule(name string) (*PackageGroup, error) {
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

	g.mu.Lock()
	defer g.mu.Unlock()

	if nested, ok = g.modules[name]; ok {
		return nested, nil
	}

	nested = NewPackageGroup(g.cfg, moduleLocation)
	g.modules[name] = nested

	return nested, nil
}

// ModuleNames returns the sorted names of the nested modules.
func (g *ModuleGroup) ModuleNames() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	names := make([]string, 0, len(g.modules))
	for name := range g.modules {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// List returns an empty sequence: packages of a module oriented location
// are listed through its module locations.
func (g *ModuleGroup) List(string, jcfs.KindSet, bool) iter.Seq[jcfs.FileObject] {
	return func(func(jcfs.FileObject) bool) {}
}

// FileForInput reports every file as absent: inputs of a module oriented
// location are resolved through its module locations.
func (g *ModuleGroup) FileForInput(string, string) (jcfs.FileObject, bool) {
	return nil, false
}

// FileForOutput always fails: outputs of a module oriented location are
// written through its module locations.
func (g *ModuleGroup) FileForOutput(string, string) (jcfs.FileObject, error) {
	return nil, NotPackageOrientedError(g.location.Name())
}

// InferBinaryName tries every nested module in name order.
func (g *ModuleGroup) InferBinaryName(fo jcfs.FileObject) (string, bool) {
	for _, nested := range g.nestedGroups() {
		if name, ok := nested.InferBinaryName(fo); ok {
			return name, true
		}
	}

	return "", false
}

// Contains returns true if fo lives in one of the nested modules.
func (g *ModuleGroup) Contains(fo jcfs.FileObject) bool {
	for _, nested := range g.nestedGroups() {
		if nested.Contains(fo) {
			return true
		}
	}

	return false
}

// Loader always fails: each module owns its own loader.
func (g *ModuleGroup) Loader() (*loader.Loader, error) {
	return nil, NotPackageOrientedError(g.location.Name())
}

// Release releases every nested module group.
func (g *ModuleGroup) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, nested := range g.modules {
		nested.Release()
	}

	g.modules = map[string]*PackageGroup{}
}

// nestedGroups returns the nested groups in module name order.
func (g *ModuleGroup) nestedGroups() []*PackageGroup {
	g.mu.RLock()
	defer g.mu.RUnlock()

	names := make([]string, 0, len(g.modules))
	for name := range g.modules {
		names = append(names, name)
	}

	sort.Strings(names)

	groups := make([]*PackageGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, g.modules[name])
	}

	return groups
}

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

package filemanager

import (
	"sync"

	"github.com/jcfs/jcfs"
	"github.com/jcfs/jcfs/cleanup"
	"github.com/jcfs/jcfs/container"
	"github.com/jcfs/jcfs/vfs/memfs"
)

// Registry is the single source of truth mapping locations to container
// groups, and the arbiter of compilation mode exclusivity: SourcePath and
// ModuleSourcePath groups must never coexist.
type Registry struct {
	cfg    *jcfs.Config                      // cfg carries the kind table and the logger.
	reaper *cleanup.Reaper                   // reaper owns deferred closing of auto-provisioned roots.
	mu     sync.RWMutex                      // mu guards groups.
	groups map[jcfs.Location]container.Group // groups keyed by top-level location.
}

// NewRegistry returns an empty registry. Auto-provisioned in-memory roots
// are registered with the reaper for deferred closing.
func NewRegistry(cfg *jcfs.Config, reaper *cleanup.Reaper) *Registry {
	if cfg == nil {
		cfg = jcfs.NewConfig()
	}

	if reaper == nil {
		reaper = cleanup.Default()
	}

	return &Registry{
		cfg:    cfg,
		reaper: reaper,
		groups: map[jcfs.Location]container.Group{},
	}
}

// Get returns the group of the location without creating it. A module
// location is resolved through its parent's group; absence at either
// level yields false, never an error.
func (r *Registry) Get(location jcfs.Location) (container.Group, bool) {
	if ml, ok := location.(jcfs.ModuleLocation); ok {
		parent, ok := r.Get(ml.Parent)
		if !ok {
			return nil, false
		}

		return parent.Module(ml.ModuleName)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	group, ok := r.groups[location]

	return group, ok
}

// GetOrCreate returns the group of the location, creating missing groups
// on demand. Creating a new top-level group fails with a mode conflict
// when SourcePath and ModuleSourcePath would coexist. Output groups
// provision a fresh in-memory root on their first write while still
// empty, so writers never fail for lack of a destination while explicit
// registration keeps precedence.
func (r *Registry) GetOrCreate(location jcfs.Location) (container.Group, error) {
	if ml, ok := location.(jcfs.ModuleLocation); ok {
		parent, err := r.GetOrCreate(ml.Parent)
		if err != nil {
			return nil, err
		}

		return parent.OrCreateModule(ml.ModuleName)
	}

	r.mu.RLock()
	group, ok := r.groups[location]
	r.mu.RUnlock()

	if ok {
		return group, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if group, ok = r.groups[location]; ok {
		return group, nil
	}

	if err := r.checkModeConflict(location); err != nil {
		return nil, err
	}

	group, err := r.newGroup(location)
	if err != nil {
		return nil, err
	}

	r.groups[location] = group

	return group, nil
}

// Contains returns true if a group exists for the location, module aware,
// without creating anything.
func (r *Registry) Contains(location jcfs.Location) bool {
	_, ok := r.Get(location)

	return ok
}

// Close releases every owned group. The underlying file systems are not
// closed synchronously: compiled output must remain inspectable, so the
// reaper closes them once they become unreachable.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, group := range r.groups {
		group.Release()
	}

	r.groups = map[jcfs.Location]container.Group{}
}

// checkModeConflict fails when registering the location would make the
// legacy and multi-module compilation modes coexist. The caller must hold
// the lock for writing.
func (r *Registry) checkModeConflict(location jcfs.Location) error {
	var conflicting jcfs.Location

	switch location {
	case jcfs.Location(jcfs.SourcePath):
		conflicting = jcfs.ModuleSourcePath
	case jcfs.Location(jcfs.ModuleSourcePath):
		conflicting = jcfs.SourcePath
	default:
		return nil
	}

	if _, ok := r.groups[conflicting]; ok {
		return &jcfs.ModeConflictError{Existing: conflicting, Requested: location}
	}

	return nil
}

// newGroup creates the group flavor matching the location facets. The
// caller must hold the lock for writing.
func (r *Registry) newGroup(location jcfs.Location) (container.Group, error) {
	switch {
	case location.IsOutput():
		group := container.NewOutputGroup(r.cfg, location)
		group.ProvisionWith(func() jcfs.Root {
			vfs := memfs.New()
			cleanup.Register(r.reaper, vfs)

			return jcfs.NewRoot(vfs, "/")
		})

		return group, nil

	case location.IsModuleOriented():
		return container.NewModuleGroup(r.cfg, location), nil

	default:
		return container.NewPackageGroup(r.cfg, location), nil
	}
}

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
	"github.com/jcfs/jcfs"
	"github.com/jcfs/jcfs/cleanup"
	"github.com/jcfs/jcfs/vfs/memfs"
)

// Workspace owns a file manager together with the in-memory file systems
// a test creates next to it, so a compilation fixture is set up and torn
// down as one unit.
type Workspace struct {
	manager *Manager
	reaper  *cleanup.Reaper
}

// NewWorkspace returns a workspace around a fresh manager.
func NewWorkspace(opts ...Option) *Workspace {
	m := New(opts...)

	return &Workspace{manager: m, reaper: m.reaper}
}

// Manager returns the file manager of the workspace.
func (w *Workspace) Manager() *Manager {
	return w.manager
}

// NewMemRoot creates a fresh in-memory file system, hands its closing to
// the reaper and returns its root. An empty name yields a generated one.
func (w *Workspace) NewMemRoot(name string) jcfs.Root {
	vfs := memfs.New(memfs.WithName(name))
	cleanup.Register(w.reaper, vfs)

	return jcfs.NewRoot(vfs, "/")
}

// AddMemRoot creates a fresh in-memory root and registers it with the
// location, a shorthand for NewMemRoot followed by AddRoot.
func (w *Workspace) AddMemRoot(location jcfs.Location, name string) (jcfs.Root, error) {
	root := w.NewMemRoot(name)

	return root, w.manager.AddRoot(location, root)
}

// Close closes the file manager of the workspace.
func (w *Workspace) Close() error {
	return w.manager.Close()
}

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

// Package filemanager assembles the location registry, container groups,
// loaders and the cleanup reaper into the file manager a compiler front
// end programs against.
package filemanager

import (
	"fmt"
	"sync/atomic"

	"github.com/jcfs/jcfs"
	"github.com/jcfs/jcfs/cleanup"
	"github.com/jcfs/jcfs/container"
	"github.com/jcfs/jcfs/loader"
)

// FileManager is the operation surface a compiler front end programs
// against. Manager is the canonical implementation; LoggingManager wraps
// any implementation with operation logging.
type FileManager interface {
	// AddPath registers a real path (directory or archive) as one more
	// root of the location, probing archives by content.
	AddPath(location jcfs.Location, pathname string) error

	// AddPaths registers several real paths in order.
	AddPaths(location jcfs.Location, pathnames []string) error

	// AddRoot registers an already constructed root, typically an
	// in-memory one, as one more root of the location.
	AddRoot(location jcfs.Location, root jcfs.Root) error

	// LocationForModule derives the location of the named module within
	// an output or module oriented location.
	LocationForModule(location jcfs.Location, moduleName string) (jcfs.ModuleLocation, error)

	// LocationForModuleOf finds the module location within location that
	// contains the given file object.
	LocationForModuleOf(location jcfs.Location, fo jcfs.FileObject) (jcfs.ModuleLocation, error)

	// List returns the file objects of the given package whose kind is in
	// kinds. An unregistered location lists as empty.
	List(location jcfs.Location, packageName string, kinds jcfs.KindSet, recurse bool) ([]jcfs.FileObject, error)

	// FileForInput resolves an existing file by package and relative name.
	FileForInput(location jcfs.Location, packageName, relativeName string) (jcfs.FileObject, bool, error)

	// FileForOutput returns a writable file object by package and relative
	// name; the file need not exist yet.
	FileForOutput(location jcfs.Location, packageName, relativeName string) (jcfs.FileObject, error)

	// JavaFileForInput resolves an existing source or class file by binary
	// name and kind.
	JavaFileForInput(location jcfs.Location, binaryName string, kind jcfs.Kind) (jcfs.FileObject, bool, error)

	// JavaFileForOutput returns a writable file object by binary name and
	// kind; the file need not exist yet.
	JavaFileForOutput(location jcfs.Location, binaryName string, kind jcfs.Kind) (jcfs.FileObject, error)

	// InferBinaryName derives the binary name of a file object resolved
	// within the location.
	InferBinaryName(location jcfs.Location, fo jcfs.FileObject) (string, bool, error)

	// HasLocation returns true if the location has been registered.
	HasLocation(location jcfs.Location) bool

	// Contains returns true if the file object designates an existing file
	// below one of the location containers.
	Contains(location jcfs.Location, fo jcfs.FileObject) (bool, error)

	// Loader returns the class loader of the location.
	Loader(location jcfs.Location) (*loader.Loader, error)

	// CopyContainers copies every container of one location into another.
	CopyContainers(from, to jcfs.Location) error

	// CreateEmptyLocation registers the location with no containers at all.
	CreateEmptyLocation(location jcfs.Location) error

	// Close releases every location. Subsequent operations fail with
	// ErrClosed; file objects already handed out remain readable.
	Close() error
}

// Manager is the canonical file manager. The zero value is not usable,
// construct managers with New.
type Manager struct {
	cfg      *jcfs.Config    // cfg carries the kind table, the logger and the decode policy.
	reaper   *cleanup.Reaper // reaper closes auto-provisioned file systems once unreachable.
	registry *Registry       // registry maps locations to container groups.
	closed   atomic.Bool     // closed is set once by Close.
}

var _ FileManager = &Manager{}

// Option defines the option function used to set manager options.
type Option func(*Manager)

// New returns a file manager with no registered locations. Output
// locations are provisioned on demand with in-memory roots.
func New(opts ...Option) *Manager {
	m := &Manager{}

	for _, opt := range opts {
		opt(m)
	}

	if m.cfg == nil {
		m.cfg = jcfs.NewConfig()
	}

	if m.reaper == nil {
		m.reaper = cleanup.Default()
	}

	m.registry = NewRegistry(m.cfg, m.reaper)

	return m
}

// WithConfig sets the configuration of the manager.
func WithConfig(cfg *jcfs.Config) Option {
	return func(m *Manager) {
		m.cfg = cfg
	}
}

// WithReaper sets the cleanup reaper closing file systems the manager
// provisions.
func WithReaper(reaper *cleanup.Reaper) Option {
	return func(m *Manager) {
		m.reaper = reaper
	}
}

// Config returns the configuration of the manager.
func (m *Manager) Config() *jcfs.Config {
	return m.cfg
}

// AddPath registers pathname as one more root of the location. A
// directory becomes a directory root; a file carrying the archive magic
// becomes a pre-mounted archive root; anything else is rejected.
func (m *Manager) AddPath(location jcfs.Location, pathname string) error {
	if m.closed.Load() {
		return jcfs.ErrClosed
	}

	group, err := m.registry.GetOrCreate(location)
	if err != nil {
		return err
	}

	root, err := container.RootForPath(m.cfg, pathname)
	if err != nil {
		return err
	}

	return group.AddRoot(root)
}

// AddPaths registers several real paths in order, stopping at the first
// failure.
func (m *Manager) AddPaths(location jcfs.Location, pathnames []string) error {
	for _, pathname := range pathnames {
		if err := m.AddPath(location, pathname); err != nil {
			return err
		}
	}

	return nil
}

// AddRoot registers an already constructed root as one more root of the
// location.
func (m *Manager) AddRoot(location jcfs.Location, root jcfs.Root) error {
	if m.closed.Load() {
		return jcfs.ErrClosed
	}

	group, err := m.registry.GetOrCreate(location)
	if err != nil {
		return err
	}

	return group.AddRoot(root)
}

// LocationForModule derives the location of the named module within an
// output or module oriented location. Derivation is purely structural:
// the module need not exist.
func (m *Manager) LocationForModule(location jcfs.Location, moduleName string) (jcfs.ModuleLocation, error) {
	if m.closed.Load() {
		return jcfs.ModuleLocation{}, jcfs.ErrClosed
	}

	return jcfs.NewModuleLocation(location, moduleName)
}

// LocationForModuleOf finds the module location within location that
// contains fo, by checking every module the location currently knows.
func (m *Manager) LocationForModuleOf(location jcfs.Location, fo jcfs.FileObject) (jcfs.ModuleLocation, error) {
	if m.closed.Load() {
		return jcfs.ModuleLocation{}, jcfs.ErrClosed
	}

	if !location.IsOutput() && !location.IsModuleOriented() {
		return jcfs.ModuleLocation{}, jcfs.InvalidModuleParentError(location.Name())
	}

	if err := checkOwn(fo); err != nil {
		return jcfs.ModuleLocation{}, err
	}

	group, ok := m.registry.Get(location)
	if !ok {
		return jcfs.ModuleLocation{}, fmt.Errorf("no module of %s contains %s: %w", location.Name(), fo.URI(), jcfs.ErrNotFound)
	}

	for _, name := range group.ModuleNames() {
		nested, ok := group.Module(name)
		if !ok || !nested.Contains(fo) {
			continue
		}

		return jcfs.NewModuleLocation(location, name)
	}

	return jcfs.ModuleLocation{}, fmt.Errorf("no module of %s contains %s: %w", location.Name(), fo.URI(), jcfs.ErrNotFound)
}

// List returns the file objects of the given package whose kind is in
// kinds, in container registration order. An unregistered location lists
// as empty.
func (m *Manager) List(location jcfs.Location, packageName string, kinds jcfs.KindSet, recurse bool) ([]jcfs.FileObject, error) {
	if m.closed.Load() {
		return nil, jcfs.ErrClosed
	}

	group, ok := m.registry.Get(location)
	if !ok {
		return nil, nil
	}

	var found []jcfs.FileObject
	for fo := range group.List(packageName, kinds, recurse) {
		found = append(found, fo)
	}

	return found, nil
}

// FileForInput resolves an existing file by package and relative name,
// first registered container wins. Absence is not an error.
func (m *Manager) FileForInput(location jcfs.Location, packageName, relativeName string) (jcfs.FileObject, bool, error) {
	if m.closed.Load() {
		return nil, false, jcfs.ErrClosed
	}

	group, ok := m.registry.Get(location)
	if !ok {
		return nil, false, nil
	}

	fo, ok := group.FileForInput(packageName, relativeName)

	return fo, ok, nil
}

// FileForOutput returns a writable file object targeting the first
// registered container of the location, registering the location first
// when necessary.
func (m *Manager) FileForOutput(location jcfs.Location, packageName, relativeName string) (jcfs.FileObject, error) {
	if m.closed.Load() {
		return nil, jcfs.ErrClosed
	}

	group, err := m.registry.GetOrCreate(location)
	if err != nil {
		return nil, err
	}

	return group.FileForOutput(packageName, relativeName)
}

// JavaFileForInput resolves an existing source or class file by binary
// name and kind.
func (m *Manager) JavaFileForInput(location jcfs.Location, binaryName string, kind jcfs.Kind) (jcfs.FileObject, bool, error) {
	packageName, relativeName := m.splitBinaryName(binaryName, kind)

	return m.FileForInput(location, packageName, relativeName)
}

// JavaFileForOutput returns a writable file object by binary name and
// kind; the file need not exist yet.
func (m *Manager) JavaFileForOutput(location jcfs.Location, binaryName string, kind jcfs.Kind) (jcfs.FileObject, error) {
	packageName, relativeName := m.splitBinaryName(binaryName, kind)

	return m.FileForOutput(location, packageName, relativeName)
}

// splitBinaryName splits a binary name into its package and the simple
// file name carrying the extension of kind.
func (m *Manager) splitBinaryName(binaryName string, kind jcfs.Kind) (packageName, relativeName string) {
	packageName, simpleName := jcfs.SplitBinaryName(binaryName)

	return packageName, simpleName + m.cfg.Kinds().Extension(kind)
}

// InferBinaryName derives the binary name of fo from the container of
// location it resolves under.
func (m *Manager) InferBinaryName(location jcfs.Location, fo jcfs.FileObject) (string, bool, error) {
	if m.closed.Load() {
		return "", false, jcfs.ErrClosed
	}

	if err := checkOwn(fo); err != nil {
		return "", false, err
	}

	group, ok := m.registry.Get(location)
	if !ok {
		return "", false, nil
	}

	name, ok := group.InferBinaryName(fo)

	return name, ok, nil
}

// HasLocation returns true if the location has been registered, either
// explicitly or as a discovered module.
func (m *Manager) HasLocation(location jcfs.Location) bool {
	if m.closed.Load() {
		return false
	}

	return m.registry.Contains(location)
}

// Contains returns true if fo designates an existing file below one of
// the location containers.
func (m *Manager) Contains(location jcfs.Location, fo jcfs.FileObject) (bool, error) {
	if m.closed.Load() {
		return false, jcfs.ErrClosed
	}

	if err := checkOwn(fo); err != nil {
		return false, err
	}

	group, ok := m.registry.Get(location)
	if !ok {
		return false, nil
	}

	return group.Contains(fo), nil
}

// Loader returns the class loader of the location, registering the
// location first when necessary so an empty class path still loads.
func (m *Manager) Loader(location jcfs.Location) (*loader.Loader, error) {
	if m.closed.Load() {
		return nil, jcfs.ErrClosed
	}

	group, err := m.registry.GetOrCreate(location)
	if err != nil {
		return nil, err
	}

	return group.Loader()
}

// CopyContainers copies every container and every nested module of one
// location into another, preserving registration order without
// deduplication. Copying from an unregistered location is a no-op.
func (m *Manager) CopyContainers(from, to jcfs.Location) error {
	if m.closed.Load() {
		return jcfs.ErrClosed
	}

	src, ok := m.registry.Get(from)
	if !ok {
		return nil
	}

	dst, err := m.registry.GetOrCreate(to)
	if err != nil {
		return err
	}

	return container.Copy(src, dst)
}

// CreateEmptyLocation registers the location with no containers at all,
// so HasLocation holds while every lookup comes back empty. Output
// locations are never empty (they auto-provision a write target) and
// module locations exist only through their parent, so both are rejected.
func (m *Manager) CreateEmptyLocation(location jcfs.Location) error {
	if m.closed.Load() {
		return jcfs.ErrClosed
	}

	if location.IsOutput() || jcfs.IsModuleLocation(location) {
		return NotEmptiableError(location.Name())
	}

	_, err := m.registry.GetOrCreate(location)

	return err
}

// Close releases every location and marks the manager closed. File
// objects already handed out remain readable: the underlying file
// systems are closed by the reaper once nothing references them anymore.
// Closing an already closed manager is a no-op.
func (m *Manager) Close() error {
	if m.closed.Swap(true) {
		return nil
	}

	m.registry.Close()

	return nil
}

// checkOwn rejects nil file objects and file objects that were not
// produced by this library.
func checkOwn(fo jcfs.FileObject) error {
	pfo, ok := fo.(*jcfs.PathFileObject)

	switch {
	case fo == nil, ok && pfo == nil:
		return fmt.Errorf("nil file object: %w", jcfs.ErrForeignFileObject)
	case !ok:
		return fmt.Errorf("%s: %w", fo.URI(), jcfs.ErrForeignFileObject)
	}

	return nil
}

// NotEmptiableError is returned when an empty location is requested for
// an output or module location.
type NotEmptiableError string

func (e NotEmptiableError) Error() string {
	return "location " + string(e) + " cannot be registered empty"
}

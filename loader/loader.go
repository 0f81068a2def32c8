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

// Package loader resolves classes and resources over an ordered set of
// container roots, the way a class loader resolves them over a class path.
//
// A loader is built lazily from its roots at first access and cached;
// adding a root invalidates the cached build so the next access sees the
// new root. Resolution scans the roots in registration order and the first
// match wins. Archive roots are mounted as nested file systems when they
// are registered, so they resolve exactly like exploded directories.
package loader

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jcfs/jcfs"
)

// Loader resolves classes and resources across an ordered set of roots.
type Loader struct {
	cfg     *jcfs.Config       // cfg carries the kind table and the logger.
	mu      sync.Mutex         // mu guards roots, snap and version.
	roots   []jcfs.Root        // roots in registration order.
	snap    []jcfs.Root        // snap is the cached build, nil when invalidated.
	version uint64             // version increases on every mutation.
	group   singleflight.Group // group collapses concurrent rebuilds.
}

// New returns an empty loader.
func New(cfg *jcfs.Config) *Loader {
	if cfg == nil {
		cfg = jcfs.NewConfig()
	}

	return &Loader{cfg: cfg}
}

// AddRoot appends a root to the search order and invalidates the cached
// build.
func (l *Loader) AddRoot(root jcfs.Root) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.roots = append(l.roots, root)
	l.snap = nil
	l.version++
}

// Invalidate discards the cached build; the next access rebuilds it. It is
// called by every path-mutating operation of the owning container group.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.snap = nil
	l.version++
}

// Roots returns the built search order. The build is memoized and rebuilt
// at most once per invalidation, even under concurrent access.
func (l *Loader) Roots() []jcfs.Root {
	l.mu.Lock()

	if l.snap != nil {
		snap := l.snap
		l.mu.Unlock()

		return snap
	}

	version := l.version
	l.mu.Unlock()

	// The version key ties the flight to the mutation generation it was
	// started for: a racing Invalidate bumps the version and gets its own
	// flight instead of reusing a stale build.
	snap, _, _ := l.group.Do(strconv.FormatUint(version, 10), func() (any, error) {
		l.mu.Lock()
		defer l.mu.Unlock()

		if l.version == version {
			l.snap = append([]jcfs.Root(nil), l.roots...)

			return l.snap, nil
		}

		return append([]jcfs.Root(nil), l.roots...), nil
	})

	roots, _ := snap.([]jcfs.Root)

	return roots
}

// OpenResource opens the named resource, scanning the roots in order and
// returning the first match. The name is a slash separated path relative
// to each root.
func (l *Loader) OpenResource(name string) (io.ReadCloser, bool, error) {
	name = strings.Trim(jcfs.ToSlash(name), "/")

	for _, root := range l.Roots() {
		full := root.Join(name)
		if !root.FS.IsRegular(full) {
			continue
		}

		rc, err := root.FS.Open(full)
		if err != nil {
			return nil, false, jcfs.WrapIO("open resource", full, err)
		}

		return rc, true, nil
	}

	return nil, false, nil
}

// ReadResource returns the content of the named resource, or false if no
// root provides it.
func (l *Loader) ReadResource(name string) ([]byte, bool, error) {
	rc, ok, err := l.OpenResource(name)
	if !ok || err != nil {
		return nil, false, err
	}

	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, false, jcfs.WrapIO("read resource", name, err)
	}

	return content, true, nil
}

// ReadClass returns the class file content for the given binary name, or
// false if no root provides it.
func (l *Loader) ReadClass(binaryName string) ([]byte, bool, error) {
	return l.ReadResource(strings.ReplaceAll(binaryName, ".", "/") + ".class")
}

// ResourceURIs returns the URIs of every root providing the named
// resource, in search order. Unlike OpenResource it does not stop at the
// first match.
func (l *Loader) ResourceURIs(name string) []string {
	name = strings.Trim(jcfs.ToSlash(name), "/")

	var uris []string

	for _, root := range l.Roots() {
		if root.FS.IsRegular(root.Join(name)) {
			uris = append(uris, root.URI(name))
		}
	}

	return uris
}

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

package memfs

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/valyala/fastrand"
)

// instances counts the file systems created in this process. Generated
// names mix the counter with a random part so two instances never share a
// URI namespace.
var instances atomic.Uint64

// New returns a new in-memory file system (MemFS) with an empty root
// directory. Without the WithName option the instance is named after a
// generated identifier, so every instance forms its own URI namespace.
func New(opts ...Option) *MemFS {
	vfs := &MemFS{
		name: fmt.Sprintf("mem-%08x-%d", fastrand.Uint32(), instances.Add(1)),
		rootNode: &dirNode{
			children: map[string]node{},
			mtime:    time.Now().UnixNano(),
		},
	}

	for _, opt := range opts {
		opt(vfs)
	}

	return vfs
}

// WithName returns an option function which sets the name of the file
// system instance. Names take part in file object URIs and should be
// unique within one process.
func WithName(name string) Option {
	return func(vfs *MemFS) {
		if name != "" {
			vfs.name = name
		}
	}
}

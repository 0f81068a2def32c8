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

// Package cleanup closes resources asynchronously once they become
// unreachable.
//
// Compiled output must stay readable after the compilation call returns,
// even when the intermediate wrapper objects have been dropped, so
// in-memory file systems are not closed on scope exit. Instead they are
// registered with a Reaper: a finalizer enqueues the resource when the
// collector proves it unreachable, and a single background goroutine
// closes it off the critical path. Close failures are logged and
// swallowed, there is no caller left to report them to.
package cleanup

import (
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
)

// Reaper closes registered resources on a background goroutine once their
// owners become unreachable. The zero value is not usable; use New.
type Reaper struct {
	logger  *log.Logger    // logger receives swallowed close failures.
	queue   chan io.Closer // queue feeds the background goroutine.
	pending sync.WaitGroup // pending counts enqueued, not yet closed resources.
	start   sync.Once      // start launches the background goroutine once.
	mu      sync.Mutex     // mu guards stopped.
	stopped bool           // stopped makes further closes synchronous.
}

// New returns a reaper logging close failures to logger. The background
// goroutine is started lazily on first use.
func New(logger *log.Logger) *Reaper {
	if logger == nil {
		logger = log.Default()
	}

	return &Reaper{
		logger: logger,
		queue:  make(chan io.Closer, 64),
	}
}

var (
	defaultReaper *Reaper   //nolint:gochecknoglobals // process wide fallback reaper.
	defaultOnce   sync.Once //nolint:gochecknoglobals // guards defaultReaper.
)

// Default returns the shared process wide reaper.
func Default() *Reaper {
	defaultOnce.Do(func() {
		defaultReaper = New(log.Default())
	})

	return defaultReaper
}

// Register arranges for res to be closed asynchronously once it becomes
// unreachable. The finalizer only captures the reaper, never the resource,
// so registration does not keep res alive. Explicitly closed resources are
// simply closed twice; Close must therefore be idempotent.
func Register[T io.Closer](r *Reaper, res T) {
	runtime.SetFinalizer(res, func(unreachable T) {
		r.CloseAsync(unreachable)
	})
}

// CloseAsync enqueues res to be closed by the background goroutine without
// blocking the caller. When the queue is full a goroutine is spawned
// instead, so a finalizing collector thread is never stalled.
func (r *Reaper) CloseAsync(res io.Closer) {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		r.close(res)

		return
	}

	r.pending.Add(1)
	r.mu.Unlock()

	r.start.Do(func() { go r.run() })

	select {
	case r.queue <- res:
	default:
		go func() { r.queue <- res }()
	}
}

// Flush blocks until every resource enqueued so far has been closed. It is
// a test hook: production code never needs to wait for the reaper.
func (r *Reaper) Flush() {
	r.pending.Wait()
}

// Stop drains the queue and makes any further CloseAsync synchronous. It
// is intended for tests; a process wide reaper is never stopped.
func (r *Reaper) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()

		return
	}

	r.stopped = true
	r.mu.Unlock()

	r.pending.Wait()
}

// run is the background goroutine body.
func (r *Reaper) run() {
	for res := range r.queue {
		r.close(res)
		r.pending.Done()
	}
}

// close closes one resource, logging and swallowing any failure.
func (r *Reaper) close(res io.Closer) {
	if err := res.Close(); err != nil {
		r.logger.Warn("deferred close failed", "err", err)

		return
	}

	r.logger.Debug("deferred resource closed")
}

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

package jcfs

import "errors"

var (
	// ErrClosed is returned when a file manager is used after Close.
	ErrClosed = errors.New("file manager closed")

	// ErrNotFound is returned by operations that have no sensible empty
	// result when their target does not exist.
	ErrNotFound = errors.New("not found")

	// ErrReadOnly is returned when writing to a read-only file system.
	ErrReadOnly = errors.New("read-only file system")

	// ErrMalformedInput is returned by strict text decoding and encoding
	// when the content is not well formed UTF-8.
	ErrMalformedInput = errors.New("malformed UTF-8 input")

	// ErrForeignFileObject is returned when a file object that was not
	// produced by this library is passed to a file manager operation.
	ErrForeignFileObject = errors.New("file object was not produced by this file manager")

	// ErrEmptyModuleName is returned when a module location is derived
	// with an empty module name.
	ErrEmptyModuleName = errors.New("module name must not be empty")
)

// ModeConflictError is returned when both legacy (SOURCE_PATH) and
// multi-module (MODULE_SOURCE_PATH) compilation modes are requested within
// the same file manager.
type ModeConflictError struct {
	Existing  Location // Existing is the location already registered.
	Requested Location // Requested is the location whose registration failed.
}

func (e *ModeConflictError) Error() string {
	return "cannot register " + e.Requested.Name() + ": " + e.Existing.Name() +
		" is already in use, legacy and multi-module compilation modes are mutually exclusive"
}

// InvalidModuleParentError is returned when a module location is derived
// from a location that is neither an output nor a module oriented location.
type InvalidModuleParentError string

func (e InvalidModuleParentError) Error() string {
	return "location " + string(e) + " is neither an output nor a module-oriented location and cannot contain modules"
}

// AbsolutePathError is returned when an absolute path is supplied where a
// relative one is required.
type AbsolutePathError string

func (e AbsolutePathError) Error() string {
	return "path " + string(e) + " must be relative"
}

// IOError wraps a file system failure with the failing operation and path.
// It is the single category every underlying I/O failure is reported as;
// the original cause is available through Unwrap.
type IOError struct {
	Op   string // Op is the failing operation.
	Path string // Path is the path the operation failed on.
	Err  error  // Err is the original cause.
}

func (e *IOError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// WrapIO wraps err into an *IOError carrying op and path. It returns nil
// if err is nil and err unchanged if it already is an *IOError.
func WrapIO(op, path string, err error) error {
	if err == nil {
		return nil
	}

	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return err
	}

	return &IOError{Op: op, Path: path, Err: err}
}

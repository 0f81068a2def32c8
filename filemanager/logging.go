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
	"github.com/charmbracelet/log"

	"github.com/jcfs/jcfs"
	"github.com/jcfs/jcfs/loader"
)

// LoggingManager wraps a file manager and logs every operation with its
// arguments and outcome at debug level, failures at error level. It adds
// no behavior of its own; wrapping is explicit and opt-in.
type LoggingManager struct {
	next   FileManager // next is the wrapped manager.
	logger *log.Logger // logger receives one record per operation.
}

var _ FileManager = &LoggingManager{}

// NewLogging wraps next so every operation is logged to logger. A nil
// logger falls back to the default logger.
func NewLogging(next FileManager, logger *log.Logger) *LoggingManager {
	if logger == nil {
		logger = log.Default()
	}

	return &LoggingManager{next: next, logger: logger}
}

// Unwrap returns the wrapped manager.
func (lm *LoggingManager) Unwrap() FileManager {
	return lm.next
}

func (lm *LoggingManager) done(op string, err error, keyvals ...any) {
	if err != nil {
		lm.logger.Error(op, append(keyvals, "err", err)...)

		return
	}

	lm.logger.Debug(op, keyvals...)
}

// AddPath implements FileManager.
func (lm *LoggingManager) AddPath(location jcfs.Location, pathname string) error {
	err := lm.next.AddPath(location, pathname)
	lm.done("AddPath", err, "location", location.Name(), "path", pathname)

	return err
}

// AddPaths implements FileManager.
func (lm *LoggingManager) AddPaths(location jcfs.Location, pathnames []string) error {
	err := lm.next.AddPaths(location, pathnames)
	lm.done("AddPaths", err, "location", location.Name(), "paths", pathnames)

	return err
}

// AddRoot implements FileManager.
func (lm *LoggingManager) AddRoot(location jcfs.Location, root jcfs.Root) error {
	err := lm.next.AddRoot(location, root)
	lm.done("AddRoot", err, "location", location.Name(), "root", root.URI(""))

	return err
}

// LocationForModule implements FileManager.
func (lm *LoggingManager) LocationForModule(location jcfs.Location, moduleName string) (jcfs.ModuleLocation, error) {
	ml, err := lm.next.LocationForModule(location, moduleName)
	lm.done("LocationForModule", err, "location", location.Name(), "module", moduleName)

	return ml, err
}

// LocationForModuleOf implements FileManager.
func (lm *LoggingManager) LocationForModuleOf(location jcfs.Location, fo jcfs.FileObject) (jcfs.ModuleLocation, error) {
	ml, err := lm.next.LocationForModuleOf(location, fo)
	lm.done("LocationForModuleOf", err, "location", location.Name(), "uri", fo.URI())

	return ml, err
}

// List implements FileManager.
func (lm *LoggingManager) List(location jcfs.Location, packageName string, kinds jcfs.KindSet, recurse bool) ([]jcfs.FileObject, error) {
	found, err := lm.next.List(location, packageName, kinds, recurse)
	lm.done("List", err, "location", location.Name(), "package", packageName, "recurse", recurse, "found", len(found))

	return found, err
}

// FileForInput implements FileManager.
func (lm *LoggingManager) FileForInput(location jcfs.Location, packageName, relativeName string) (jcfs.FileObject, bool, error) {
	fo, ok, err := lm.next.FileForInput(location, packageName, relativeName)
	lm.done("FileForInput", err, "location", location.Name(), "package", packageName, "name", relativeName, "found", ok)

	return fo, ok, err
}

// FileForOutput implements FileManager.
func (lm *LoggingManager) FileForOutput(location jcfs.Location, packageName, relativeName string) (jcfs.FileObject, error) {
	fo, err := lm.next.FileForOutput(location, packageName, relativeName)
	lm.done("FileForOutput", err, "location", location.Name(), "package", packageName, "name", relativeName)

	return fo, err
}

// JavaFileForInput implements FileManager.
func (lm *LoggingManager) JavaFileForInput(location jcfs.Location, binaryName string, kind jcfs.Kind) (jcfs.FileObject, bool, error) {
	fo, ok, err := lm.next.JavaFileForInput(location, binaryName, kind)
	lm.done("JavaFileForInput", err, "location", location.Name(), "binary", binaryName, "kind", kind.String(), "found", ok)

	return fo, ok, err
}

// JavaFileForOutput implements FileManager.
func (lm *LoggingManager) JavaFileForOutput(location jcfs.Location, binaryName string, kind jcfs.Kind) (jcfs.FileObject, error) {
	fo, err := lm.next.JavaFileForOutput(location, binaryName, kind)
	lm.done("JavaFileForOutput", err, "location", location.Name(), "binary", binaryName, "kind", kind.String())

	return fo, err
}

// InferBinaryName implements FileManager.
func (lm *LoggingManager) InferBinaryName(location jcfs.Location, fo jcfs.FileObject) (string, bool, error) {
	name, ok, err := lm.next.InferBinaryName(location, fo)
	lm.done("InferBinaryName", err, "location", location.Name(), "uri", fo.URI(), "binary", name, "found", ok)

	return name, ok, err
}

// HasLocation implements FileManager.
func (lm *LoggingManager) HasLocation(location jcfs.Location) bool {
	ok := lm.next.HasLocation(location)
	lm.logger.Debug("HasLocation", "location", location.Name(), "found", ok)

	return ok
}

// Contains implements FileManager.
func (lm *LoggingManager) Contains(location jcfs.Location, fo jcfs.FileObject) (bool, error) {
	ok, err := lm.next.Contains(location, fo)
	lm.done("Contains", err, "location", location.Name(), "uri", fo.URI(), "found", ok)

	return ok, err
}

// Loader implements FileManager.
func (lm *LoggingManager) Loader(location jcfs.Location) (*loader.Loader, error) {
	ldr, err := lm.next.Loader(location)
	lm.done("Loader", err, "location", location.Name())

	return ldr, err
}

// CopyContainers implements FileManager.
func (lm *LoggingManager) CopyContainers(from, to jcfs.Location) error {
	err := lm.next.CopyContainers(from, to)
	lm.done("CopyContainers", err, "from", from.Name(), "to", to.Name())

	return err
}

// CreateEmptyLocation implements FileManager.
func (lm *LoggingManager) CreateEmptyLocation(location jcfs.Location) error {
	err := lm.next.CreateEmptyLocation(location)
	lm.done("CreateEmptyLocation", err, "location", location.Name())

	return err
}

// Close implements FileManager.
func (lm *LoggingManager) Close() error {
	err := lm.next.Close()
	lm.done("Close", err)

	return err
}

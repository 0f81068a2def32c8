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

// Location is an abstract named slot for compiler inputs or outputs, such
// as the source path or the class output directory. Implementations must be
// comparable values so locations can be used as map keys.
type Location interface {
	// Name returns the unique name of the location.
	Name() string

	// IsOutput returns true if the location is an output location.
	IsOutput() bool

	// IsModuleOriented returns true if the location may contain modules,
	// each addressed through its own module location.
	IsModuleOriented() bool
}

// StandardLocation is one of the well known locations every compiler
// understands. The zero value is not a valid location.
type StandardLocation struct {
	name           string
	output         bool
	moduleOriented bool
}

// Standard locations, named after their compiler counterparts.
var (
	// ClassPath is the search path for compiled user classes.
	ClassPath = StandardLocation{name: "CLASS_PATH"}

	// SourcePath is the search path for source files in legacy, single
	// root compilation mode. Mutually exclusive with ModuleSourcePath.
	SourcePath = StandardLocation{name: "SOURCE_PATH"}

	// AnnotationProcessorPath is the search path for annotation processors.
	AnnotationProcessorPath = StandardLocation{name: "ANNOTATION_PROCESSOR_PATH"}

	// AnnotationProcessorModulePath is the module search path for
	// annotation processors.
	AnnotationProcessorModulePath = StandardLocation{name: "ANNOTATION_PROCESSOR_MODULE_PATH", moduleOriented: true}

	// PlatformClassPath is the search path for platform classes.
	PlatformClassPath = StandardLocation{name: "PLATFORM_CLASS_PATH"}

	// ClassOutput is the location where compiled classes are written.
	ClassOutput = StandardLocation{name: "CLASS_OUTPUT", output: true}

	// SourceOutput is the location where generated sources are written.
	SourceOutput = StandardLocation{name: "SOURCE_OUTPUT", output: true}

	// NativeHeaderOutput is the location where native headers are written.
	NativeHeaderOutput = StandardLocation{name: "NATIVE_HEADER_OUTPUT", output: true}

	// ModuleSourcePath is the search path for source files in multi-module
	// compilation mode. Mutually exclusive with SourcePath.
	ModuleSourcePath = StandardLocation{name: "MODULE_SOURCE_PATH", moduleOriented: true}

	// UpgradeModulePath is the search path for upgradeable modules.
	UpgradeModulePath = StandardLocation{name: "UPGRADE_MODULE_PATH", moduleOriented: true}

	// SystemModules is the location of the system modules.
	SystemModules = StandardLocation{name: "SYSTEM_MODULES", moduleOriented: true}

	// ModulePath is the search path for compiled modules.
	ModulePath = StandardLocation{name: "MODULE_PATH", moduleOriented: true}

	// PatchModulePath is the search path for module patches.
	PatchModulePath = StandardLocation{name: "PATCH_MODULE_PATH", moduleOriented: true}
)

// StandardLocations returns all well known locations.
func StandardLocations() []StandardLocation {
	return []StandardLocation{
		ClassPath, SourcePath, AnnotationProcessorPath, AnnotationProcessorModulePath,
		PlatformClassPath, ClassOutput, SourceOutput, NativeHeaderOutput,
		ModuleSourcePath, UpgradeModulePath, SystemModules, ModulePath, PatchModulePath,
	}
}

// Name returns the unique name of the location.
func (sl StandardLocation) Name() string {
	return sl.name
}

// IsOutput returns true if the location is an output location.
func (sl StandardLocation) IsOutput() bool {
	return sl.output
}

// IsModuleOriented returns true if the location may contain modules.
func (sl StandardLocation) IsModuleOriented() bool {
	return sl.moduleOriented
}

// ModuleLocation addresses one named module within an output or module
// oriented parent location. Two module locations are equal if and only if
// their parents and module names are equal.
type ModuleLocation struct {
	Parent     Location // Parent is the output or module oriented location containing the module.
	ModuleName string   // ModuleName is the name of the module.
}

// NewModuleLocation derives the location of the named module within parent.
// The parent must be an output or module oriented location and must not be
// a module location itself.
func NewModuleLocation(parent Location, moduleName string) (ModuleLocation, error) {
	if moduleName == "" {
		return ModuleLocation{}, ErrEmptyModuleName
	}

	if IsModuleLocation(parent) {
		return ModuleLocation{}, InvalidModuleParentError(parent.Name())
	}

	if !parent.IsOutput() && !parent.IsModuleOriented() {
		return ModuleLocation{}, InvalidModuleParentError(parent.Name())
	}

	return ModuleLocation{Parent: parent, ModuleName: moduleName}, nil
}

// Name returns the parent name with the module name in brackets, for
// example "MODULE_SOURCE_PATH[org.example]".
func (ml ModuleLocation) Name() string {
	return ml.Parent.Name() + "[" + ml.ModuleName + "]"
}

// IsOutput returns true if the parent location is an output location.
func (ml ModuleLocation) IsOutput() bool {
	return ml.Parent.IsOutput()
}

// IsModuleOriented returns false: a module location holds packages, not
// further modules.
func (ml ModuleLocation) IsModuleOriented() bool {
	return false
}

// IsModuleLocation returns true if the location addresses a single module
// within a parent location.
func IsModuleLocation(location Location) bool {
	_, ok := location.(ModuleLocation)

	return ok
}

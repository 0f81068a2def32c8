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

import (
	"sort"
	"strings"
)

// Kind is the category of a file handled by the file manager, inferred from
// its extension.
type Kind uint8

const (
	// KindOther is any file without a known extension.
	KindOther Kind = iota

	// KindSource is a Java source file (.java).
	KindSource

	// KindClass is a compiled class file (.class).
	KindClass

	// KindHTML is an HTML file (.html).
	KindHTML
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSource:
		return "SOURCE"
	case KindClass:
		return "CLASS"
	case KindHTML:
		return "HTML"
	default:
		return "OTHER"
	}
}

// KindSet is a bit set of kinds used to filter listings.
type KindSet uint8

// Kinds returns the set containing the given kinds.
func Kinds(kinds ...Kind) KindSet {
	var ks KindSet

	for _, k := range kinds {
		ks |= 1 << k
	}

	return ks
}

// AllKinds is the set accepting every kind.
var AllKinds = Kinds(KindOther, KindSource, KindClass, KindHTML)

// Contains returns true if the set contains the kind k.
func (ks KindSet) Contains(k Kind) bool {
	return ks&(1<<k) != 0
}

// KindTable maps file extensions to kinds. Inference uses the longest
// matching extension; names matching no extension are KindOther. The zero
// value matches nothing; use DefaultKindTable for the standard table.
type KindTable struct {
	exts []kindExt
}

type kindExt struct {
	ext  string
	kind Kind
}

// NewKindTable returns a table mapping each extension (with leading dot) to
// its kind.
func NewKindTable(exts map[string]Kind) KindTable {
	kt := KindTable{exts: make([]kindExt, 0, len(exts))}

	for ext, kind := range exts {
		kt.exts = append(kt.exts, kindExt{ext: ext, kind: kind})
	}

	// Longest extensions first, then lexical, so inference is deterministic
	// and longest-suffix wins.
	sort.Slice(kt.exts, func(i, j int) bool {
		ei, ej := kt.exts[i].ext, kt.exts[j].ext
		if len(ei) != len(ej) {
			return len(ei) > len(ej)
		}

		return ei < ej
	})

	return kt
}

// DefaultKindTable returns the standard extension table: .java, .class and
// .html files.
func DefaultKindTable() KindTable {
	return NewKindTable(map[string]Kind{
		".java":  KindSource,
		".class": KindClass,
		".html":  KindHTML,
	})
}

// KindOf returns the kind of the named file.
func (kt KindTable) KindOf(name string) Kind {
	for _, ke := range kt.exts {
		if strings.HasSuffix(name, ke.ext) {
			return ke.kind
		}
	}

	return KindOther
}

// Extension returns the extension registered for the kind k, or an empty
// string for KindOther and unregistered kinds.
func (kt KindTable) Extension(k Kind) string {
	if k == KindOther {
		return ""
	}

	for _, ke := range kt.exts {
		if ke.kind == k {
			return ke.ext
		}
	}

	return ""
}

// StripExtension returns the name with its longest registered extension
// removed. Names without a registered extension are returned unchanged, so
// stripping is idempotent.
func (kt KindTable) StripExtension(name string) string {
	for _, ke := range kt.exts {
		if strings.HasSuffix(name, ke.ext) && len(name) > len(ke.ext) {
			return name[:len(name)-len(ke.ext)]
		}
	}

	return name
}

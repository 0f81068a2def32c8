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
	"bytes"
	"io"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"fortio.org/safecast"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// FileObject is the compiler facing handle for one source, class or
// resource file below a container root. File objects are immutable values;
// two file objects designate the same file if and only if their URIs are
// equal, independently of the root/relative-path pair used to construct
// them.
type FileObject interface {
	// Name returns the slash separated path of the file relative to its
	// container root.
	Name() string

	// RelativePath returns the same path as Name.
	RelativePath() string

	// AbsolutePath returns the absolute path of the file within its file
	// system.
	AbsolutePath() string

	// URI returns the canonical URI of the file.
	URI() string

	// Kind returns the kind of the file, inferred from its extension.
	Kind() Kind

	// Location returns the location the file was resolved against.
	Location() Location

	// Root returns the container root the file lives under.
	Root() Root

	// Open opens the file for reading.
	Open() (io.ReadCloser, error)

	// Create creates or truncates the file for writing, creating missing
	// parent directories first.
	Create() (io.WriteCloser, error)

	// ReadBytes returns the whole content of the file.
	ReadBytes() ([]byte, error)

	// ReadText returns the content of the file decoded as UTF-8 under the
	// given policy: DecodeReport fails on ill-formed input with
	// ErrMalformedInput, DecodeIgnore drops ill-formed sequences.
	ReadText(policy DecodePolicy) (string, error)

	// ReadTextDefault returns the content of the file decoded under the
	// default policy of the configuration (see WithDecodePolicy).
	ReadTextDefault() (string, error)

	// WriteText writes text as the new content of the file, replacing any
	// previous content. The text must be well formed UTF-8.
	WriteText(text string) error

	// LastModified returns the modification time of the file, or the zero
	// time if it cannot be determined.
	LastModified() time.Time

	// Delete removes the file, reporting whether it was removed.
	Delete() bool
}

// PathFileObject is the file object implementation backed by a container
// root and a relative path.
type PathFileObject struct {
	cfg      *Config  // cfg carries the kind table and the logger.
	location Location // location is the location the file was resolved against.
	root     Root     // root is the container root the file lives under.
	rel      string   // rel is the slash separated path below the root.
	kind     Kind     // kind is inferred from the extension at construction.
}

var _ FileObject = (*PathFileObject)(nil)

// NewFileObject returns a file object for the path rel below root, resolved
// against location. The path must be relative; backslashes are accepted and
// normalized to slashes.
func NewFileObject(cfg *Config, location Location, root Root, rel string) (*PathFileObject, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	rel = path.Clean(ToSlash(rel))
	if strings.HasPrefix(rel, "/") || rel == "." || strings.HasPrefix(rel, "..") {
		return nil, AbsolutePathError(rel)
	}

	return &PathFileObject{
		cfg:      cfg,
		location: location,
		root:     root,
		rel:      rel,
		kind:     cfg.Kinds().KindOf(rel),
	}, nil
}

// SameFile reports whether a and b designate the same file, by URI
// equality.
func SameFile(a, b FileObject) bool {
	return a != nil && b != nil && a.URI() == b.URI()
}

// Name returns the slash separated path of the file relative to its
// container root.
func (fo *PathFileObject) Name() string {
	return fo.rel
}

// RelativePath returns the same path as Name.
func (fo *PathFileObject) RelativePath() string {
	return fo.rel
}

// AbsolutePath returns the absolute path of the file within its file
// system.
func (fo *PathFileObject) AbsolutePath() string {
	return fo.root.Join(fo.rel)
}

// URI returns the canonical URI of the file.
func (fo *PathFileObject) URI() string {
	return fo.root.URI(fo.rel)
}

// Kind returns the kind of the file.
func (fo *PathFileObject) Kind() Kind {
	return fo.kind
}

// Location returns the location the file was resolved against.
func (fo *PathFileObject) Location() Location {
	return fo.location
}

// Root returns the container root the file lives under.
func (fo *PathFileObject) Root() Root {
	return fo.root
}

// BinaryName returns the binary name derived from the relative path of the
// file.
func (fo *PathFileObject) BinaryName() string {
	return BinaryName(fo.cfg.Kinds(), fo.rel)
}

// Open opens the file for reading.
func (fo *PathFileObject) Open() (io.ReadCloser, error) {
	rc, err := fo.root.FS.Open(fo.AbsolutePath())

	return rc, WrapIO("open", fo.AbsolutePath(), err)
}

// Create creates or truncates the file for writing, creating missing
// parent directories first.
func (fo *PathFileObject) Create() (io.WriteCloser, error) {
	wc, err := fo.root.FS.Create(fo.AbsolutePath())

	return wc, WrapIO("create", fo.AbsolutePath(), err)
}

// ReadBytes returns the whole content of the file.
func (fo *PathFileObject) ReadBytes() ([]byte, error) {
	abs := fo.AbsolutePath()

	rc, err := fo.root.FS.Open(abs)
	if err != nil {
		return nil, WrapIO("read", abs, err)
	}

	defer rc.Close()

	size := 0

	if info, err := fo.root.FS.Stat(abs); err == nil {
		if n, err := safecast.Conv[int](info.Size()); err == nil {
			size = n
		}
	}

	buf := bytes.NewBuffer(make([]byte, 0, size))

	if _, err = io.Copy(buf, rc); err != nil {
		return nil, WrapIO("read", abs, err)
	}

	return buf.Bytes(), nil
}

// ReadText returns the content of the file decoded as UTF-8 under the
// given policy.
func (fo *PathFileObject) ReadText(policy DecodePolicy) (string, error) {
	content, err := fo.ReadBytes()
	if err != nil {
		return "", err
	}

	if policy == DecodeIgnore {
		content, _, err = transform.Bytes(lenientUTF8(), content)
		if err != nil {
			return "", WrapIO("decode", fo.AbsolutePath(), err)
		}

		return string(content), nil
	}

	if !utf8.Valid(content) {
		return "", WrapIO("decode", fo.AbsolutePath(), ErrMalformedInput)
	}

	return string(content), nil
}

// ReadTextDefault returns the content of the file decoded under the
// default policy of the configuration the file object was built with.
func (fo *PathFileObject) ReadTextDefault() (string, error) {
	return fo.ReadText(fo.cfg.DecodePolicy())
}

// WriteText writes text as the new content of the file. The text must be
// well formed UTF-8; parent directories are created as needed and previous
// content is truncated.
func (fo *PathFileObject) WriteText(text string) error {
	abs := fo.AbsolutePath()

	if !utf8.ValidString(text) {
		return WrapIO("encode", abs, ErrMalformedInput)
	}

	wc, err := fo.root.FS.Create(abs)
	if err != nil {
		return WrapIO("write", abs, err)
	}

	if _, err = io.WriteString(wc, text); err != nil {
		wc.Close()

		return WrapIO("write", abs, err)
	}

	return WrapIO("write", abs, wc.Close())
}

// LastModified returns the modification time of the file. Stat failures
// are logged and reported as the zero time: a missing timestamp should not
// fail the caller.
func (fo *PathFileObject) LastModified() time.Time {
	info, err := fo.root.FS.Stat(fo.AbsolutePath())
	if err != nil {
		fo.cfg.Logger().Warn("cannot stat file, returning zero time", "path", fo.AbsolutePath(), "err", err)

		return time.Time{}
	}

	return info.ModTime()
}

// Delete removes the file, reporting whether it was removed. Failures are
// logged and reported as false.
func (fo *PathFileObject) Delete() bool {
	err := fo.root.FS.Remove(fo.AbsolutePath())
	if err != nil {
		fo.cfg.Logger().Warn("cannot delete file", "path", fo.AbsolutePath(), "err", err)

		return false
	}

	return true
}

// lenientUTF8 returns a transformer dropping ill-formed UTF-8 sequences:
// ill-formed input is first replaced by U+FFFD, then every U+FFFD is
// removed.
func lenientUTF8() transform.Transformer {
	return transform.Chain(
		runes.ReplaceIllFormed(),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError })),
	)
}

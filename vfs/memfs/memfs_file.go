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
	"bytes"
	"io/fs"
)

// memReader reads a snapshot of a file content taken at open time.
type memReader struct {
	*bytes.Reader
}

func newMemReader(data []byte) *memReader {
	return &memReader{Reader: bytes.NewReader(data)}
}

// Close implements io.ReadCloser; the snapshot needs no release.
func (r *memReader) Close() error {
	return nil
}

// memWriter buffers writes to a file; the content is committed to the tree
// when the writer is closed.
type memWriter struct {
	vfs    *MemFS       // vfs is the file system the file is committed to.
	name   string       // name is the cleaned absolute path of the file.
	buf    bytes.Buffer // buf accumulates the written content.
	closed bool         // closed rejects writes after Close.
}

func newMemWriter(vfs *MemFS, name string) *memWriter {
	return &memWriter{vfs: vfs, name: name}
}

// Write appends p to the buffered content.
func (w *memWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, pathError("write", w.name, fs.ErrClosed)
	}

	return w.buf.Write(p)
}

// Close commits the buffered content as the new file content.
func (w *memWriter) Close() error {
	if w.closed {
		return nil
	}

	w.closed = true

	if err := w.vfs.commit(w.name, w.buf.Bytes()); err != nil {
		return pathError("close", w.name, err)
	}

	return nil
}

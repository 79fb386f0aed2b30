// Package sliceedit implements buffered editing of byte slices on top of
// rsc.io/edit. Edits are queued against the original data and applied in one
// pass, so a scan that produces many small replacements needs a single
// allocation for the result.
package sliceedit

import (
	"bytes"

	"rsc.io/edit"
)

// A Buffer is a queue of edits to apply to a given byte slice.
type Buffer struct {
	ed  edit.Buffer
	buf []byte
}

// NewBuffer returns a new buffer to accumulate changes to an initial data
// slice. The buffer keeps a reference to the data, so the caller must not
// modify it until the Buffer is done being used.
func NewBuffer(buf []byte) *Buffer {
	b := &Buffer{}
	b.buf = buf
	b.ed = *edit.NewBuffer(buf)
	return b
}

// FindAll finds the offsets of all non-overlapping instances of item in buf.
func FindAll(buf []byte, item string) []int {
	found := []int{}

	if len(item) == 0 {
		return found
	}

	offset := 0
	for {
		i := bytes.Index(buf, []byte(item))
		if i == -1 {
			return found
		}
		found = append(found, i+offset)
		buf = buf[i+len(item):]
		offset += i + len(item)
	}
}

// Replace queues the replacement of buf[start:end] with new.
func (b *Buffer) Replace(start, end int, new string) {
	b.ed.Replace(start, end, new)
}

// ReplaceAllString queues the replacement of every instance of old with new.
func (b *Buffer) ReplaceAllString(old string, new string) {
	for _, hit := range FindAll(b.buf, old) {
		b.ed.Replace(hit, hit+len(old), new)
	}
}

// Bytes returns a new byte slice containing the original data with the
// queued edits applied.
func (b *Buffer) Bytes() []byte {
	return b.ed.Bytes()
}

// String returns a string containing the original data with the queued
// edits applied.
func (b *Buffer) String() string {
	return string(b.ed.Bytes())
}

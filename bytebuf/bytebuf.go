// Package bytebuf provides the byte buffer underlying the codec layers. A
// [Buffer] is a flat run of bytes with a write cursor at the end and an
// explicit read cursor, usable as both a byte sink (io.Writer, io.ByteWriter)
// and a byte source (io.Reader, io.ByteReader).
//
// A Buffer is either growable (the zero value) or fixed. A fixed Buffer
// writes into caller-provided memory and fails with [ErrFull] instead of
// allocating, which allows encoding into pre-allocated frames.
package bytebuf

import (
	"errors"
	"io"
)

// ErrFull is returned when a write does not fit into a fixed Buffer.
var ErrFull = errors.New("bytebuf: buffer full")

// Buffer is a byte buffer with separate read and write cursors. The zero value
// is an empty growable buffer ready for use.
//
// Reads consume bytes between the read cursor and the write cursor. Writes
// always append at the write cursor.
type Buffer struct {
	buf   []byte
	off   int // read cursor, <= len(buf)
	fixed bool
}

// New returns an empty growable Buffer with the given initial capacity.
func New(capacity int) *Buffer {
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// NewFixed returns a Buffer writing into p. The Buffer never grows beyond
// len(p); writes that do not fit fail with [ErrFull].
func NewFixed(p []byte) *Buffer {
	return &Buffer{buf: p[:0], fixed: true}
}

// FromBytes returns a Buffer whose unread contents are p. The Buffer aliases
// p; it is the usual way to decode from an existing byte slice.
func FromBytes(p []byte) *Buffer {
	return &Buffer{buf: p}
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int { return len(b.buf) - b.off }

// Offset returns the position of the read cursor, i.e. the number of bytes
// consumed so far.
func (b *Buffer) Offset() int { return b.off }

// Bytes returns the unread portion of the buffer. The slice aliases the
// buffer contents and is only valid until the next write.
func (b *Buffer) Bytes() []byte { return b.buf[b.off:] }

// Reset discards all contents and rewinds both cursors. The allocated memory
// is retained.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.off = 0
}

// grow ensures space for n more bytes.
func (b *Buffer) grow(n int) error {
	if len(b.buf)+n <= cap(b.buf) {
		return nil
	}
	if b.fixed {
		return ErrFull
	}
	next := make([]byte, len(b.buf), max(2*cap(b.buf), len(b.buf)+n, 64))
	copy(next, b.buf)
	b.buf = next
	return nil
}

// WriteByte implements [io.ByteWriter].
func (b *Buffer) WriteByte(c byte) error {
	if err := b.grow(1); err != nil {
		return err
	}
	b.buf = append(b.buf, c)
	return nil
}

// Write implements [io.Writer]. On a full fixed buffer no partial data is
// written.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.grow(len(p)); err != nil {
		return 0, err
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// ReadByte implements [io.ByteReader]. At the end of the buffer it returns
// [io.EOF].
func (b *Buffer) ReadByte() (byte, error) {
	if b.off >= len(b.buf) {
		return 0, io.EOF
	}
	c := b.buf[b.off]
	b.off++
	return c, nil
}

// Read implements [io.Reader].
func (b *Buffer) Read(p []byte) (int, error) {
	if b.off >= len(b.buf) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.off:])
	b.off += n
	return n, nil
}

// Next consumes and returns the next n unread bytes. If fewer than n bytes
// are available, nothing is consumed and [io.ErrUnexpectedEOF] is returned.
// The slice aliases the buffer contents and is only valid until the next
// write.
func (b *Buffer) Next(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.New("bytebuf: negative count")
	}
	if b.Len() < n {
		return nil, io.ErrUnexpectedEOF
	}
	p := b.buf[b.off : b.off+n]
	b.off += n
	return p, nil
}

// Skip consumes n unread bytes. If fewer than n bytes are available, nothing
// is consumed and [io.ErrUnexpectedEOF] is returned.
func (b *Buffer) Skip(n int) error {
	_, err := b.Next(n)
	return err
}

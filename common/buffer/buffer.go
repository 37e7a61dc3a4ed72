// Package buffer provides a light-weight memory allocation mechanism.
package buffer

import (
	"github.com/simophin/cpxy/common/bytespool"
	"github.com/simophin/cpxy/common/io"
)

const (
	// Size of a regular buffer.
	Size = 2048
)

// Buffer is a recyclable allocation of a byte array. Buffer.Release() recycles
// the buffer into an internal buffer pool, in order to recreate a buffer more
// quickly.
type Buffer struct {
	v     []byte
	start int
	end   int
}

// New creates a Buffer with 0 length and 2K capacity.
func New() *Buffer {
	return &Buffer{
		v: bytespool.Alloc(Size),
	}
}

// FromBytes creates a Buffer over an existing byte array.
// The underlying bytes are unmanaged, do not call Release() on this.
func FromBytes(data []byte) *Buffer {
	return &Buffer{
		v:   data,
		end: len(data),
	}
}

// Release recycles the buffer into an internal buffer pool.
func (b *Buffer) Release() {
	b2 := b.v
	bytespool.Free(b2)

	b.v = nil
	b.Clear()
}

// Clear clears the content of the buffer, results an empty buffer with
// Len() = 0.
func (b *Buffer) Clear() {
	b.start = 0
	b.end = 0
}

// Bytes returns the content bytes of this Buffer.
func (b *Buffer) Bytes() []byte {
	return b.v[b.start:b.end]
}

// Extend increases the buffer size by n bytes, and returns the extended part.
// It panics if result size is larger than the underlying array.
func (b *Buffer) Extend(n int) []byte {
	end := b.end + n
	if end > len(b.v) {
		panic("extend out of bound")
	}
	ext := b.v[b.end:end]
	b.end = end
	return ext
}

// Resize cuts the buffer at the given position.
func (b *Buffer) Resize(from, to int) {
	if from < 0 {
		from += b.Len()
	}
	if to < 0 {
		to += b.Len()
	}
	if to < from {
		panic("invalid buffer")
	}
	b.end = b.start + to
	b.start += from
}

// Advance cuts the buffer at the given position.
func (b *Buffer) Advance(from int) {
	if from < 0 {
		from += b.Len()
	}
	b.start += from
}

// Cap returns the capacity of the buffer content.
func (b *Buffer) Cap() int {
	return len(b.v)
}

// Len returns the length of the buffer content.
func (b *Buffer) Len() int {
	return b.end - b.start
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// IsFull returns true if the buffer has no more room to grow.
func (b *Buffer) IsFull() bool {
	return b.end == len(b.v)
}

// Write implements Write method in io.Writer.
func (b *Buffer) Write(data []byte) (int, error) {
	nBytes := copy(b.v[b.end:], data)
	b.end += nBytes
	return nBytes, nil
}

// Read implements io.Reader.Read().
func (b *Buffer) Read(data []byte) (int, error) {
	if b.Len() == 0 {
		return 0, io.EOF
	}
	nBytes := copy(data, b.v[b.start:b.end])
	if nBytes == b.Len() {
		b.Clear()
	} else {
		b.start += nBytes
	}
	return nBytes, nil
}

// ReadByte implements io.ByteReader.
func (b *Buffer) ReadByte() (byte, error) {
	if b.start == b.end {
		return 0, io.EOF
	}

	nb := b.v[b.start]
	b.start++
	return nb, nil
}

// ReadBytes reads exactly length bytes, or fails with EOF.
func (b *Buffer) ReadBytes(length int) ([]byte, error) {
	if b.end-b.start < length {
		return nil, io.EOF
	}

	nb := b.v[b.start : b.start+length]
	b.start += length
	return nb, nil
}

// String returns the string form of this Buffer.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

//go:generate go run github.com/simophin/cpxy/common/errors/errorgen

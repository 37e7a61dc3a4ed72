package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferClear(t *testing.T) {
	b := New()
	defer b.Release()

	b.Clear()
	require.Equal(t, 0, b.Len())

	_, err := b.Write([]byte("payload"))
	require.NoError(t, err)
	require.Equal(t, 7, b.Len())

	b.Clear()
	require.Equal(t, 0, b.Len())
}

func TestBufferIsEmpty(t *testing.T) {
	b := New()
	defer b.Release()

	require.True(t, b.IsEmpty())
}

func TestBufferString(t *testing.T) {
	b := New()
	defer b.Release()

	_, err := b.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, "hello", b.String())

	_, err = b.Write([]byte(" world"))
	require.NoError(t, err)
	require.Equal(t, "hello world", b.String())
}

func TestBufferWrite(t *testing.T) {
	b := New()
	defer b.Release()

	n, err := b.Write([]byte("abcd"))
	require.NoError(t, err)
	require.Equal(t, 4, n)

	// A write past capacity is truncated, not grown.
	n, err = b.Write(make([]byte, b.Cap()))
	require.NoError(t, err)
	require.Equal(t, b.Cap()-4, n)
	require.True(t, b.IsFull())

	n, err = b.Write([]byte("more"))
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestBufferResize(t *testing.T) {
	b := New()
	defer b.Release()

	_, err := b.Write([]byte("hello world"))
	require.NoError(t, err)

	b.Resize(0, 5)
	require.Equal(t, "hello", b.String())
}

func TestBufferAdvance(t *testing.T) {
	b := New()
	defer b.Release()

	_, err := b.Write([]byte("hello world"))
	require.NoError(t, err)

	b.Advance(6)
	require.Equal(t, "world", b.String())
}

func TestBufferReadBytes(t *testing.T) {
	b := FromBytes([]byte("hello"))

	first, err := b.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte('h'), first)

	rest, err := b.ReadBytes(4)
	require.NoError(t, err)
	require.Equal(t, []byte("ello"), rest)

	_, err = b.ReadByte()
	require.Error(t, err)
}

package simdata

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader returns one scripted result per Read call.
type chunkReader struct {
	chunks []chunk
}

type chunk struct {
	data []byte
	err  error
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	next := c.chunks[0]
	c.chunks = c.chunks[1:]
	n := copy(p, next.data)
	return n, next.err
}

func frame(payload string) []byte {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, []byte(payload)); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("hello")))
	require.NoError(t, WriteFrame(&buf, []byte("world!")))

	fr := NewFrameReader(&buf)
	p1, err := fr.Next()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(p1))

	p2, err := fr.Next()
	require.NoError(t, err)
	assert.Equal(t, "world!", string(p2))
}

func TestFrameHeader(t *testing.T) {
	f := frame("0123456789")
	// 10-byte payload encodes as 0x0A 0x00 little-endian
	assert.Equal(t, []byte{0x0A, 0x00}, f[:2])
	assert.Len(t, f, 12)
}

func TestPartialFrameNotDecoded(t *testing.T) {
	errTimeout := errors.New("i/o timeout")
	f := frame("0123456789")

	r := &chunkReader{chunks: []chunk{
		{data: f[:6]},               // header + 4 of 10 payload bytes
		{err: errTimeout},           // deadline expires mid-frame
		{data: f[6:]},               // remainder arrives
	}}
	fr := NewFrameReader(r)

	_, err := fr.Next()
	assert.ErrorIs(t, err, errTimeout)

	payload, err := fr.Next()
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(payload))
}

func TestFrameCompletedOnErroringRead(t *testing.T) {
	f := frame("abc")
	r := &chunkReader{chunks: []chunk{
		{data: f, err: io.EOF}, // data and EOF in the same read
	}}
	fr := NewFrameReader(r)

	payload, err := fr.Next()
	require.NoError(t, err)
	assert.Equal(t, "abc", string(payload))

	_, err = fr.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestMultipleFramesPerRead(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("one")))
	require.NoError(t, WriteFrame(&buf, []byte("two")))

	r := &chunkReader{chunks: []chunk{{data: buf.Bytes()}}}
	fr := NewFrameReader(r)

	for _, want := range []string{"one", "two"} {
		payload, err := fr.Next()
		require.NoError(t, err)
		assert.Equal(t, want, string(payload))
	}
}

func TestWriteFrameTooLarge(t *testing.T) {
	err := WriteFrame(io.Discard, make([]byte, 1<<16))
	assert.Error(t, err)
}

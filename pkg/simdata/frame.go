package simdata

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Wire framing: each record is prefixed by its encoded byte length as a
// 2-byte little-endian unsigned integer, followed by exactly that many bytes.
const (
	frameHeaderSize = 2
	maxPayloadSize  = 1 << 16
)

// WriteFrame writes one length-prefixed frame to w.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) >= maxPayloadSize {
		return fmt.Errorf("payload too large: %d bytes", len(payload))
	}

	var header [frameHeaderSize]byte
	binary.LittleEndian.PutUint16(header[:], uint16(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// FrameReader reads length-prefixed frames from a stream. Bytes already
// received are buffered between calls, so a read that ends mid-frame (for
// example on a deadline) resumes where it left off; a partial frame is never
// handed out.
type FrameReader struct {
	r   io.Reader
	buf []byte
}

// NewFrameReader wraps r for frame-at-a-time reading.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: r}
}

// Next returns the payload of the next complete frame. It performs at most
// one read on the underlying stream per call when more data is needed; read
// errors (including deadline expiry) are returned as-is with any partial
// frame retained for the next call.
func (fr *FrameReader) Next() ([]byte, error) {
	for {
		if payload, ok := fr.pop(); ok {
			return payload, nil
		}

		chunk := make([]byte, 4096)
		n, err := fr.r.Read(chunk)
		if n > 0 {
			fr.buf = append(fr.buf, chunk[:n]...)
		}
		if err != nil {
			// a frame may have completed in the same read that errored
			if payload, ok := fr.pop(); ok {
				return payload, nil
			}
			return nil, err
		}
	}
}

// pop removes one complete frame from the buffer, if present.
func (fr *FrameReader) pop() ([]byte, bool) {
	if len(fr.buf) < frameHeaderSize {
		return nil, false
	}
	size := int(binary.LittleEndian.Uint16(fr.buf))
	if len(fr.buf) < frameHeaderSize+size {
		return nil, false
	}

	payload := make([]byte, size)
	copy(payload, fr.buf[frameHeaderSize:frameHeaderSize+size])
	fr.buf = fr.buf[frameHeaderSize+size:]
	return payload, true
}

package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

// ErrMalformedStream reports a display list that violates the wire
// format: a truncated payload, an unknown opcode, or invalid UTF-8 in
// a string field. Applying stops at the first malformed record; records
// decoded before it remain applied.
var ErrMalformedStream = errors.New("wire: malformed display list")

// Reader consumes little-endian primitives from a display-list buffer.
// All methods fail with ErrMalformedStream once the buffer runs short;
// the error message carries the byte offset of the failing read.
type Reader struct {
	buf []byte
	off int
}

// NewReader wraps buf without copying it.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

func (r *Reader) short(what string, n int) error {
	return fmt.Errorf("%w: truncated %s at offset %d (need %d bytes, have %d)",
		ErrMalformedStream, what, r.off, n, r.Remaining())
}

// U8 reads one byte.
func (r *Reader) U8() (byte, error) {
	if r.Remaining() < 1 {
		return 0, r.short("u8", 1)
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// U32 reads a little-endian uint32.
func (r *Reader) U32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, r.short("u32", 4)
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

// F32 reads a little-endian IEEE-754 float32. NaN and infinities are
// passed through; consumers decide how to interpret them.
func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	if err != nil {
		return 0, r.short("f32", 4)
	}
	return math.Float32frombits(v), nil
}

// Mat3 reads six float32 values [a, b, c, d, e, f] describing the
// affine map (x, y) -> (a*x + c*y + e, b*x + d*y + f).
func (r *Reader) Mat3() ([6]float32, error) {
	var m [6]float32
	if r.Remaining() < 24 {
		return m, r.short("mat3", 24)
	}
	for i := range m {
		m[i], _ = r.F32()
	}
	return m, nil
}

// RGBA reads four float32 color components in r, g, b, a order.
func (r *Reader) RGBA() ([4]float32, error) {
	var c [4]float32
	if r.Remaining() < 16 {
		return c, r.short("rgba", 16)
	}
	for i := range c {
		c[i], _ = r.F32()
	}
	return c, nil
}

// String reads a u32 byte length followed by that many bytes of UTF-8.
func (r *Reader) String() (string, error) {
	n, err := r.U32()
	if err != nil {
		return "", r.short("string length", 4)
	}
	if uint64(n) > uint64(r.Remaining()) {
		return "", r.short("string payload", int(n))
	}
	b := r.buf[r.off : r.off+int(n)]
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: invalid UTF-8 in string at offset %d", ErrMalformedStream, r.off)
	}
	r.off += int(n)
	return string(b), nil
}

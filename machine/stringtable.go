package machine

import (
	"unicode/utf8"
	"unsafe"

	"github.com/dxserializer/dx/endian"
	"github.com/dxserializer/dx/errs"
	"github.com/dxserializer/dx/internal/pool"
)

// stringTableBuilder accumulates the unique strings a container needs to
// reference by offset, writing each as a u32 length prefix followed by its
// UTF-8 bytes, padded to a 4-byte boundary (§4.5 "String table").
// Identical strings are interned to the same offset.
type stringTableBuilder struct {
	buf     pool.ByteBuffer
	offsets map[string]uint32
	base    uint32 // absolute file offset the table starts at
}

func newStringTableBuilder(base uint32) *stringTableBuilder {
	return &stringTableBuilder{offsets: make(map[string]uint32), base: base}
}

// intern returns the absolute file offset of s's string-table entry,
// appending a new entry the first time s is seen.
func (b *stringTableBuilder) intern(s string) uint32 {
	if off, ok := b.offsets[s]; ok {
		return off
	}

	off := b.base + uint32(b.buf.Len())
	b.offsets[s] = off

	var lenBuf [4]byte
	endian.GetLittleEndianEngine().PutUint32(lenBuf[:], uint32(len(s)))
	b.buf.MustWrite(lenBuf[:])
	b.buf.MustWrite([]byte(s))

	if pad := (4 - b.buf.Len()%4) % 4; pad > 0 {
		b.buf.MustWrite(make([]byte, pad))
	}

	return off
}

func (b *stringTableBuilder) bytes() []byte {
	return b.buf.Bytes()
}

// readTableString reads the length-prefixed string at absolute offset off
// within buf, returning it as a zero-copy view via unsafe.String (§4.5
// "Zero-copy access": the Document view... returns &str slices directly
// into the buffer).
func readTableString(buf []byte, off uint32) (string, error) {
	if uint64(off)+4 > uint64(len(buf)) {
		return "", errs.BufferTooSmall(int(off) + 4)
	}

	n := endian.GetLittleEndianEngine().Uint32(buf[off : off+4])
	start := uint64(off) + 4
	end := start + uint64(n)
	if end > uint64(len(buf)) {
		return "", errs.BufferTooSmall(int(end))
	}

	if n == 0 {
		return "", nil
	}

	data := buf[start:end]
	if !utf8.Valid(data) {
		return "", errs.ErrInvalidUTF8
	}

	return unsafe.String(&buf[start], n), nil
}

// unsafeStringFrom returns a zero-copy view of buf[off:off+n], used for
// StringInline TaggedValue payloads embedded directly in a row.
func unsafeStringFrom(buf []byte, off, n int) string {
	if n == 0 {
		return ""
	}

	return unsafe.String(&buf[off], n)
}

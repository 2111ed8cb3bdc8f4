// Package machine implements the Machine binary container (§4.5): a
// packed, little-endian-only format built for zero-copy reads.
package machine

import (
	"github.com/dxserializer/dx/endian"
	"github.com/dxserializer/dx/errs"
)

// Magic is the 4-byte container signature.
var Magic = [4]byte{'D', 'X', 'M', 0}

// Version is the container format version this package reads and writes.
const Version uint16 = 1

// FlagLittleEndian marks the container's payload as little-endian. It is
// always set in v1; a container without this bit set, or any container
// parsed on a big-endian host, fails with UnsupportedPlatform rather than
// being byte-swapped.
const FlagLittleEndian uint16 = 1 << 0

// HeaderSize is the fixed byte length of the Magic+Version+Flags+HeaderHash
// and offsets-table region preceding the string table.
const HeaderSize = 4 + 2 + 2 + 16 + 8*4

// Header is the fixed-size preamble of a Machine container.
type Header struct {
	Version        uint16
	Flags          uint16
	HeaderHash     [16]byte
	ContextOff     uint64
	RefsOff        uint64
	SectionDirOff  uint64
	StringTableOff uint64
}

// Bytes serializes h into HeaderSize bytes.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := endian.GetLittleEndianEngine()

	copy(b[0:4], Magic[:])
	engine.PutUint16(b[4:6], h.Version)
	engine.PutUint16(b[6:8], h.Flags)
	copy(b[8:24], h.HeaderHash[:])
	engine.PutUint64(b[24:32], h.StringTableOff)
	engine.PutUint64(b[32:40], h.ContextOff)
	engine.PutUint64(b[40:48], h.RefsOff)
	engine.PutUint64(b[48:56], h.SectionDirOff)

	return b
}

// Parse reads a Header from the start of data. Validation order follows
// §4.5: magic, then version, then flags; bounds-checking the offsets
// themselves against buffer length is the caller's responsibility once the
// full buffer length is known.
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.BufferTooSmall(HeaderSize)
	}

	if data[0] != Magic[0] || data[1] != Magic[1] || data[2] != Magic[2] || data[3] != Magic[3] {
		return errs.ErrInvalidMagic
	}

	engine := endian.GetLittleEndianEngine()

	h.Version = engine.Uint16(data[4:6])
	if h.Version != Version {
		return errs.ErrUnsupportedVersion
	}

	h.Flags = engine.Uint16(data[6:8])
	if h.Flags&FlagLittleEndian == 0 || !endian.HostIsLittleEndian() {
		return errs.ErrUnsupportedPlatform
	}

	copy(h.HeaderHash[:], data[8:24])
	h.StringTableOff = engine.Uint64(data[24:32])
	h.ContextOff = engine.Uint64(data[32:40])
	h.RefsOff = engine.Uint64(data[40:48])
	h.SectionDirOff = engine.Uint64(data[48:56])

	return nil
}

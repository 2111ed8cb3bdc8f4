// Package endian provides byte order utilities for binary encoding and decoding.
//
// It combines encoding/binary's ByteOrder and AppendByteOrder interfaces into a
// single EndianEngine, so callers can read, write, and append with one value.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary into
// a single interface. binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// HostIsLittleEndian reports whether the running process is on a little-endian
// host. The machine container format is little-endian only in v1; big-endian
// hosts must refuse to decode rather than byte-swap.
func HostIsLittleEndian() bool {
	var i uint16 = 0x0001
	b := (*[2]byte)(unsafe.Pointer(&i))

	return b[0] == 0x01
}

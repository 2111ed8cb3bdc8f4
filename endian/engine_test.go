package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()
	require.Equal(t, binary.LittleEndian, engine)

	buf := engine.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)
}

func TestGetBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()
	require.Equal(t, binary.BigEndian, engine)

	buf := engine.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf)
}

func TestHostIsLittleEndian(t *testing.T) {
	var engine EndianEngine
	if HostIsLittleEndian() {
		engine = GetLittleEndianEngine()
	} else {
		engine = GetBigEndianEngine()
	}

	var native uint32 = 0x01020304
	buf := make([]byte, 4)
	engine.PutUint32(buf, native)
	got := engine.Uint32(buf)
	require.Equal(t, native, got)
}

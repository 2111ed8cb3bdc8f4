package machine

import (
	"github.com/dxserializer/dx/document"
	"github.com/dxserializer/dx/internal/hash"
)

// sectionBlock holds a section's precomputed schema and rows bytes before
// their absolute file offsets are known, plus the values needed to write its
// section-directory entry once they are.
type sectionBlock struct {
	idOff     uint32
	rowCount  uint32
	schema    []byte
	rows      []byte
	schemaPtr uint32
	rowsPtr   uint32
}

// Encode serializes doc into the Machine binary container (§4.5).
// All offsets are absolute byte offsets into the returned buffer.
func Encode(doc *document.Document) ([]byte, error) {
	st := newStringTableBuilder(HeaderSize)

	// Pass 1: intern context keys, ref keys and values, section ids and
	// schema keys. String values longer than maxInlineStringLen are interned
	// by encodeValue while the blocks below are built; every block is built
	// before the string table's bytes are taken, so the table is complete
	// when its length fixes the later offsets.
	for _, key := range doc.ContextKeys() {
		st.intern(key)
	}
	for _, key := range doc.RefKeys() {
		st.intern(key)
		val, _ := doc.Ref(key)
		st.intern(val)
	}
	for sec := range doc.Sections {
		st.intern(sec.ID())
		for _, k := range sec.Schema() {
			st.intern(k)
		}
	}

	contextBytes, err := encodeContextBlock(doc, st)
	if err != nil {
		return nil, err
	}

	refsBytes := encodeRefsBlock(doc, st)

	blocks, err := buildSectionBlocks(doc, st)
	if err != nil {
		return nil, err
	}

	stringTableBytes := st.bytes()

	contextOff := HeaderSize + uint64(len(stringTableBytes))
	refsOff := contextOff + uint64(len(contextBytes))
	cursor := refsOff + uint64(len(refsBytes))

	for _, b := range blocks {
		b.schemaPtr = uint32(cursor)
		cursor += uint64(len(b.schema))
		b.rowsPtr = uint32(cursor)
		cursor += uint64(len(b.rows))
	}

	sectionDirOff := cursor
	dirBytes := encodeSectionDir(blocks)

	h := &Header{
		Version:        Version,
		Flags:          FlagLittleEndian,
		ContextOff:     contextOff,
		RefsOff:        refsOff,
		SectionDirOff:  sectionDirOff,
		StringTableOff: HeaderSize,
	}

	buf := make([]byte, 0, sectionDirOff+uint64(len(dirBytes)))
	buf = append(buf, h.Bytes()...)
	buf = append(buf, stringTableBytes...)
	buf = append(buf, contextBytes...)
	buf = append(buf, refsBytes...)
	for _, b := range blocks {
		buf = append(buf, b.schema...)
		buf = append(buf, b.rows...)
	}
	buf = append(buf, dirBytes...)

	lo, hi := hash.Sum128(buf[HeaderSize:])
	le.PutUint64(buf[8:16], lo)
	le.PutUint64(buf[16:24], hi)

	return buf, nil
}

func encodeContextBlock(doc *document.Document, st *stringTableBuilder) ([]byte, error) {
	keys := doc.ContextKeys()

	buf := make([]byte, 0, 4+len(keys)*16)
	var countBuf [4]byte
	le.PutUint32(countBuf[:], uint32(len(keys)))
	buf = append(buf, countBuf[:]...)

	for _, key := range keys {
		var keyOff [4]byte
		le.PutUint32(keyOff[:], st.intern(key))
		buf = append(buf, keyOff[:]...)

		v, _ := doc.Context(key)
		if err := encodeValue(&buf, v, st); err != nil {
			return nil, err
		}
	}

	return buf, nil
}

func encodeRefsBlock(doc *document.Document, st *stringTableBuilder) []byte {
	keys := doc.RefKeys()

	buf := make([]byte, 0, 4+len(keys)*8)
	var countBuf [4]byte
	le.PutUint32(countBuf[:], uint32(len(keys)))
	buf = append(buf, countBuf[:]...)

	for _, key := range keys {
		val, _ := doc.Ref(key)

		var keyOff, valOff [4]byte
		le.PutUint32(keyOff[:], st.intern(key))
		le.PutUint32(valOff[:], st.intern(val))
		buf = append(buf, keyOff[:]...)
		buf = append(buf, valOff[:]...)
	}

	return buf
}

func buildSectionBlocks(doc *document.Document, st *stringTableBuilder) ([]*sectionBlock, error) {
	var blocks []*sectionBlock

	for sec := range doc.Sections {
		schema := sec.Schema()

		schemaBytes := make([]byte, 0, 4+len(schema)*4)
		var fieldCount [2]byte
		le.PutUint16(fieldCount[:], uint16(len(schema)))
		schemaBytes = append(schemaBytes, fieldCount[:]...)
		schemaBytes = append(schemaBytes, 0, 0) // pad to 4-byte boundary

		for _, k := range schema {
			var off [4]byte
			le.PutUint32(off[:], st.intern(k))
			schemaBytes = append(schemaBytes, off[:]...)
		}

		var rowsBytes []byte
		for _, row := range sec.Rows() {
			for _, v := range row.Values() {
				if err := encodeValue(&rowsBytes, v, st); err != nil {
					return nil, err
				}
			}
		}

		blocks = append(blocks, &sectionBlock{
			idOff:    st.intern(sec.ID()),
			rowCount: uint32(len(sec.Rows())),
			schema:   schemaBytes,
			rows:     rowsBytes,
		})
	}

	return blocks, nil
}

func encodeSectionDir(blocks []*sectionBlock) []byte {
	buf := make([]byte, 0, 4+len(blocks)*16)

	var countBuf [4]byte
	le.PutUint32(countBuf[:], uint32(len(blocks)))
	buf = append(buf, countBuf[:]...)

	for _, b := range blocks {
		var idOff, schemaPtr, rowCount, rowsPtr [4]byte
		le.PutUint32(idOff[:], b.idOff)
		le.PutUint32(schemaPtr[:], b.schemaPtr)
		le.PutUint32(rowCount[:], b.rowCount)
		le.PutUint32(rowsPtr[:], b.rowsPtr)

		buf = append(buf, idOff[:]...)
		buf = append(buf, schemaPtr[:]...)
		buf = append(buf, rowCount[:]...)
		buf = append(buf, rowsPtr[:]...)
	}

	return buf
}

package machine

import (
	"github.com/dxserializer/dx/document"
	"github.com/dxserializer/dx/errs"
	"github.com/dxserializer/dx/internal/hash"
)

// Decode parses a Machine binary container (§4.5). When checkIntegrity
// is true, the header hash is recomputed over the rest of the buffer and
// compared against the stored value, returning errs.ErrIntegrityCheckFailed
// on mismatch; callers that trust the source (e.g. a cache file they wrote
// themselves) can skip the recomputation by passing false.
func Decode(buf []byte, limits Limits, checkIntegrity bool) (*document.Document, error) {
	limits = limits.orDefault()

	if len(buf) > limits.MaxInputSize {
		return nil, errs.InputTooLarge(len(buf), limits.MaxInputSize)
	}

	var h Header
	if err := h.Parse(buf); err != nil {
		return nil, err
	}

	if err := checkOffset(buf, h.StringTableOff, "string table"); err != nil {
		return nil, err
	}
	if err := checkOffset(buf, h.ContextOff, "context"); err != nil {
		return nil, err
	}
	if err := checkOffset(buf, h.RefsOff, "refs"); err != nil {
		return nil, err
	}
	if err := checkOffset(buf, h.SectionDirOff, "section directory"); err != nil {
		return nil, err
	}

	if checkIntegrity {
		lo, hi := hash.Sum128(buf[HeaderSize:])
		var want [16]byte
		le.PutUint64(want[0:8], lo)
		le.PutUint64(want[8:16], hi)
		if want != h.HeaderHash {
			return nil, errs.ErrIntegrityCheckFailed
		}
	}

	doc := document.NewDocument()

	if err := decodeContextBlock(doc, buf, int(h.ContextOff), limits); err != nil {
		return nil, err
	}
	if err := decodeRefsBlock(doc, buf, int(h.RefsOff)); err != nil {
		return nil, err
	}
	if err := decodeSectionDir(doc, buf, int(h.SectionDirOff), limits); err != nil {
		return nil, err
	}

	return doc, nil
}

func checkOffset(buf []byte, off uint64, what string) error {
	if off > uint64(len(buf)) {
		return errs.BufferTooSmall(int(off)).WithHint(what + " offset exceeds buffer length")
	}

	return nil
}

func decodeContextBlock(doc *document.Document, buf []byte, off int, limits Limits) error {
	if off+4 > len(buf) {
		return errs.BufferTooSmall(off + 4)
	}

	count := le.Uint32(buf[off : off+4])
	off += 4

	for i := uint32(0); i < count; i++ {
		if off+4 > len(buf) {
			return errs.BufferTooSmall(off + 4)
		}

		keyOff := le.Uint32(buf[off : off+4])
		off += 4

		key, err := readTableString(buf, keyOff)
		if err != nil {
			return err
		}

		v, next, err := decodeValue(buf, off, buf, 0, limits)
		if err != nil {
			return err
		}
		off = next

		doc.SetContext(key, v)
	}

	return nil
}

func decodeRefsBlock(doc *document.Document, buf []byte, off int) error {
	if off+4 > len(buf) {
		return errs.BufferTooSmall(off + 4)
	}

	count := le.Uint32(buf[off : off+4])
	off += 4

	for i := uint32(0); i < count; i++ {
		if off+8 > len(buf) {
			return errs.BufferTooSmall(off + 8)
		}

		keyOff := le.Uint32(buf[off : off+4])
		valOff := le.Uint32(buf[off+4 : off+8])
		off += 8

		key, err := readTableString(buf, keyOff)
		if err != nil {
			return err
		}
		val, err := readTableString(buf, valOff)
		if err != nil {
			return err
		}

		doc.SetRef(key, val)
	}

	return nil
}

func decodeSectionDir(doc *document.Document, buf []byte, off int, limits Limits) error {
	if off+4 > len(buf) {
		return errs.BufferTooSmall(off + 4)
	}

	count := le.Uint32(buf[off : off+4])
	off += 4

	for i := uint32(0); i < count; i++ {
		if off+16 > len(buf) {
			return errs.BufferTooSmall(off + 16)
		}

		idOff := le.Uint32(buf[off : off+4])
		schemaPtr := le.Uint32(buf[off+4 : off+8])
		rowCount := le.Uint32(buf[off+8 : off+12])
		rowsPtr := le.Uint32(buf[off+12 : off+16])
		off += 16

		if rowCount > uint32(limits.MaxTableRows) {
			return errs.TableTooLarge(int(rowCount), limits.MaxTableRows)
		}

		id, err := readTableString(buf, idOff)
		if err != nil {
			return err
		}

		schema, err := decodeSchema(buf, int(schemaPtr))
		if err != nil {
			return err
		}

		sec, err := document.NewSection(id, schema)
		if err != nil {
			return err
		}

		rowsOff := int(rowsPtr)
		for r := uint32(0); r < rowCount; r++ {
			vals := make([]document.Value, len(schema))
			for c := range schema {
				v, next, err := decodeValue(buf, rowsOff, buf, 0, limits)
				if err != nil {
					return err
				}
				vals[c] = v
				rowsOff = next
			}

			if err := sec.AddRow(vals, limits.MaxTableRows); err != nil {
				return err
			}
		}

		if err := doc.AddSection(sec); err != nil {
			return err
		}
	}

	return nil
}

func decodeSchema(buf []byte, off int) ([]string, error) {
	if off+4 > len(buf) {
		return nil, errs.BufferTooSmall(off + 4)
	}

	fieldCount := le.Uint16(buf[off : off+2])
	off += 4 // 2-byte count + 2-byte padding

	schema := make([]string, fieldCount)
	for i := range schema {
		if off+4 > len(buf) {
			return nil, errs.BufferTooSmall(off + 4)
		}

		keyOff := le.Uint32(buf[off : off+4])
		off += 4

		k, err := readTableString(buf, keyOff)
		if err != nil {
			return nil, err
		}
		schema[i] = k
	}

	return schema, nil
}

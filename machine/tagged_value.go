package machine

import (
	"math"
	"unicode/utf8"

	"github.com/dxserializer/dx/document"
	"github.com/dxserializer/dx/endian"
	"github.com/dxserializer/dx/errs"
)

// TaggedValue tag bytes (§4.5).
const (
	tagNull         byte = 0
	tagBoolFalse    byte = 1
	tagBoolTrue     byte = 2
	tagInt          byte = 3
	tagFloat        byte = 4
	tagStringInline byte = 5
	tagStringOffset byte = 6
	tagArray        byte = 7
)

// maxInlineStringLen is the longest string that fits in a StringInline
// TaggedValue (§4.5: "for strings ≤ 14 bytes").
const maxInlineStringLen = 14

var le = endian.GetLittleEndianEngine()

// encodeValue appends v's TaggedValue encoding to buf, interning strings
// longer than maxInlineStringLen into the string table.
func encodeValue(buf *[]byte, v document.Value, st *stringTableBuilder) error {
	switch v.Kind() {
	case document.KindNull:
		*buf = append(*buf, tagNull)

	case document.KindBool:
		b, _ := v.AsBool()
		if b {
			*buf = append(*buf, tagBoolTrue)
		} else {
			*buf = append(*buf, tagBoolFalse)
		}

	case document.KindInt:
		i, _ := v.AsInt()
		*buf = append(*buf, tagInt)
		var b [8]byte
		le.PutUint64(b[:], uint64(i))
		*buf = append(*buf, b[:]...)

	case document.KindFloat:
		f, _ := v.AsFloat()
		*buf = append(*buf, tagFloat)
		var b [8]byte
		le.PutUint64(b[:], math.Float64bits(f))
		*buf = append(*buf, b[:]...)

	case document.KindString:
		s, _ := v.AsString()
		if len(s) <= maxInlineStringLen {
			*buf = append(*buf, tagStringInline, byte(len(s)))
			*buf = append(*buf, s...)
		} else {
			off := st.intern(s)
			*buf = append(*buf, tagStringOffset)
			var b [4]byte
			le.PutUint32(b[:], off)
			*buf = append(*buf, b[:]...)
		}

	case document.KindArray:
		elems, _ := v.AsArray()
		*buf = append(*buf, tagArray)
		var b [4]byte
		le.PutUint32(b[:], uint32(len(elems)))
		*buf = append(*buf, b[:]...)
		for _, e := range elems {
			if err := encodeValue(buf, e, st); err != nil {
				return err
			}
		}

	default:
		return errs.ErrInvalidMagic.WithHint("unknown Value kind in machine encoder")
	}

	return nil
}

// decodeValue reads one TaggedValue starting at data[off], returning the
// value, the offset immediately past it, and any error. table is the full
// container buffer, used to resolve StringOffset views.
func decodeValue(data []byte, off int, table []byte, depth int, limits Limits) (document.Value, int, error) {
	if depth > limits.MaxRecursionDepth {
		return document.Value{}, 0, errs.RecursionLimitExceeded(depth, limits.MaxRecursionDepth)
	}
	if off >= len(data) {
		return document.Value{}, 0, errs.BufferTooSmall(off + 1)
	}

	tag := data[off]
	off++

	switch tag {
	case tagNull:
		return document.Null(), off, nil

	case tagBoolFalse:
		return document.NewBool(false), off, nil

	case tagBoolTrue:
		return document.NewBool(true), off, nil

	case tagInt:
		if off+8 > len(data) {
			return document.Value{}, 0, errs.BufferTooSmall(off + 8)
		}

		return document.NewInt(int64(le.Uint64(data[off : off+8]))), off + 8, nil

	case tagFloat:
		if off+8 > len(data) {
			return document.Value{}, 0, errs.BufferTooSmall(off + 8)
		}

		return document.NewFloat(math.Float64frombits(le.Uint64(data[off : off+8]))), off + 8, nil

	case tagStringInline:
		if off+1 > len(data) {
			return document.Value{}, 0, errs.BufferTooSmall(off + 1)
		}

		n := int(data[off])
		off++
		if off+n > len(data) {
			return document.Value{}, 0, errs.BufferTooSmall(off + n)
		}

		if !utf8.Valid(data[off : off+n]) {
			return document.Value{}, 0, errs.ErrInvalidUTF8
		}

		s := unsafeStringFrom(data, off, n)

		return document.NewString(s), off + n, nil

	case tagStringOffset:
		if off+4 > len(data) {
			return document.Value{}, 0, errs.BufferTooSmall(off + 4)
		}

		tableOff := le.Uint32(data[off : off+4])
		s, err := readTableString(table, tableOff)
		if err != nil {
			return document.Value{}, 0, err
		}

		return document.NewString(s), off + 4, nil

	case tagArray:
		if off+4 > len(data) {
			return document.Value{}, 0, errs.BufferTooSmall(off + 4)
		}

		count := le.Uint32(data[off : off+4])
		off += 4

		elems := make([]document.Value, 0, count)
		for i := uint32(0); i < count; i++ {
			v, next, err := decodeValue(data, off, table, depth+1, limits)
			if err != nil {
				return document.Value{}, 0, err
			}
			elems = append(elems, v)
			off = next
		}

		return document.NewArray(elems...), off, nil

	default:
		return document.Value{}, 0, errs.ErrInvalidMagic.WithHint("unknown TaggedValue tag")
	}
}

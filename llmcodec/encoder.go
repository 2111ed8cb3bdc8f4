package llmcodec

import (
	"strings"

	"github.com/dxserializer/dx/document"
)

// Encode renders doc as LLM text. Output is deterministic: context first,
// refs next, data sections in section order, rows in insertion order,
// values in schema order (§4.3 "Ordering and determinism").
func Encode(doc *document.Document) string {
	var b strings.Builder

	encodeContext(&b, doc)
	encodeRefs(&b, doc)
	encodeSections(&b, doc)

	return b.String()
}

func encodeContext(b *strings.Builder, doc *document.Document) {
	keys := doc.ContextKeys()
	if len(keys) == 0 {
		return
	}

	b.WriteString("#c:")
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}

		v, _ := doc.Context(k)
		b.WriteString(k)
		b.WriteByte('|')
		b.WriteString(formatValue(v))
	}
	b.WriteByte('\n')
}

func encodeRefs(b *strings.Builder, doc *document.Document) {
	for _, k := range doc.RefKeys() {
		v, _ := doc.Ref(k)
		b.WriteString("#:")
		b.WriteString(k)
		b.WriteByte('|')
		b.WriteString(v)
		b.WriteByte('\n')
	}
}

func encodeSections(b *strings.Builder, doc *document.Document) {
	doc.Sections(func(s *document.Section) bool {
		b.WriteByte('#')
		b.WriteString(s.ID())
		b.WriteByte('(')
		b.WriteString(strings.Join(s.Schema(), ","))
		b.WriteString(")\n")

		for _, row := range s.Rows() {
			vals := row.Values()
			cells := make([]string, len(vals))
			for i, v := range vals {
				cells[i] = formatCell(v)
			}
			b.WriteString(strings.Join(cells, "|"))
			b.WriteByte('\n')
		}

		return true
	})
}

// formatCell renders a single row cell. Unlike formatValue, arrays are not
// expected here (rows are flat); an Array value still
// formats via formatValue as a defensive fallback rather than panicking.
func formatCell(v document.Value) string {
	return formatValue(v)
}

package humancodec

import (
	"strings"

	"github.com/dxserializer/dx/dict"
	"github.com/dxserializer/dx/document"
)

// Encode renders doc as Human text. It supports sections with exactly one
// row (config style), sections with more than one row (a pipe-separated
// schema line followed by one pipe-separated line per row), and one-row
// sections whose schema is entirely "child.key"-shaped (rendered as
// `[parent.child]` groups). A section with
// zero rows has no Human-form representation and is skipped; callers that
// need to round-trip such a section should use the LLM or Machine codec.
func Encode(doc *document.Document, opts ...Option) string {
	cfg := newConfig(opts...)

	var b strings.Builder

	encodePreamble(&b, doc)
	encodeStack(&b, doc)

	doc.Sections(func(s *document.Section) bool {
		if len(s.Rows()) == 0 {
			return true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}

		encodeSection(&b, s, cfg)

		return true
	})

	return b.String()
}

func encodePreamble(b *strings.Builder, doc *document.Document) {
	keys := doc.ContextKeys()
	if len(keys) == 0 {
		return
	}

	longKeys := make([]string, len(keys))
	width := 0
	for i, k := range keys {
		longKeys[i] = longKeyName(k)
		if len(longKeys[i]) > width {
			width = len(longKeys[i])
		}
	}

	for i, k := range keys {
		v, _ := doc.Context(k)
		b.WriteString(padRight(longKeys[i], width))
		b.WriteString(" = ")
		b.WriteString(formatRHS(v))
		b.WriteByte('\n')
	}
}

func encodeStack(b *strings.Builder, doc *document.Document) {
	keys := doc.RefKeys()
	if len(keys) == 0 {
		return
	}

	if b.Len() > 0 {
		b.WriteByte('\n')
	}

	width := 0
	for _, k := range keys {
		if len(k) > width {
			width = len(k)
		}
	}

	b.WriteString("[" + stackSectionName + "]\n")
	for _, k := range keys {
		v, _ := doc.Ref(k)
		b.WriteString(padRight(k, width))
		b.WriteString(" = ")
		b.WriteString(v)
		b.WriteByte('\n')
	}
}

func encodeSection(b *strings.Builder, s *document.Section, cfg *config) {
	schema := s.Schema()
	rows := s.Rows()

	if allDotted(schema) && len(rows) == 1 {
		encodeNestedSection(b, s, cfg)
		return
	}

	name := longSectionName(s.ID())

	b.WriteString("[" + name + "]\n")

	width := 0
	for _, k := range schema {
		if len(k) > width {
			width = len(k)
		}
	}

	if len(rows) == 1 {
		vals := rows[0].Values()
		for i, k := range schema {
			b.WriteString(padRight(k, width))
			b.WriteString(" = ")
			b.WriteString(formatRHS(vals[i]))
			b.WriteByte('\n')
		}

		return
	}

	// More than one row: no key carries a single scalar, so `key = value`
	// would be ambiguous with an Array value. Render as a schema line
	// (no '=', so decode can tell it apart) followed by one pipe-separated
	// row per line, in schema order — this codec's own convention for a
	// multi-row section (see buildGenericSection).
	for _, line := range wrapJoin(schema, cfg.wrapWidth) {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	for _, row := range rows {
		vals := row.Values()
		cells := make([]string, len(vals))
		for i, v := range vals {
			cells[i] = formatScalar(v)
		}

		for _, line := range wrapJoin(cells, cfg.wrapWidth) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
}

// encodeNestedSection re-derives `[parent.child]` groups from a merged
// section's dotted schema, preserving the order each child first appeared
// in the schema.
func encodeNestedSection(b *strings.Builder, s *document.Section, cfg *config) {
	parent := longSectionName(s.ID())
	vals := s.Rows()[0].Values()

	var children []string
	grouped := make(map[string][]int)
	for i, k := range s.Schema() {
		child, _, _ := strings.Cut(k, ".")
		if _, ok := grouped[child]; !ok {
			children = append(children, child)
		}
		grouped[child] = append(grouped[child], i)
	}

	for gi, child := range children {
		if gi > 0 {
			b.WriteByte('\n')
		}

		b.WriteString("[" + parent + "." + child + "]\n")

		idxs := grouped[child]
		width := 0
		for _, i := range idxs {
			_, suffix, _ := strings.Cut(s.Schema()[i], ".")
			if len(suffix) > width {
				width = len(suffix)
			}
		}

		for _, i := range idxs {
			_, suffix, _ := strings.Cut(s.Schema()[i], ".")
			b.WriteString(padRight(suffix, width))
			b.WriteString(" = ")
			b.WriteString(formatRHS(vals[i]))
			b.WriteByte('\n')
		}
	}

	_ = cfg
}

func allDotted(schema []string) bool {
	if len(schema) == 0 {
		return false
	}
	for _, k := range schema {
		if !strings.Contains(k, ".") {
			return false
		}
	}

	return true
}

func longSectionName(id string) string {
	if name, ok := dict.LongSection(id); ok {
		return name
	}

	return id
}

func longKeyName(key string) string {
	if name, ok := dict.LongKey(key); ok {
		return name
	}

	return key
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return s + strings.Repeat(" ", width-len(s))
}

// wrapJoin joins tokens with " | ", breaking only at token boundaries once
// the line would exceed width and marking each continuation with a
// trailing backslash (§4.4 continuation marker). width <= 0 disables
// wrapping.
func wrapJoin(tokens []string, width int) []string {
	if width <= 0 || len(tokens) == 0 {
		return []string{strings.Join(tokens, " | ")}
	}

	var lines []string
	cur := tokens[0]

	for _, tok := range tokens[1:] {
		piece := " | " + tok
		if len(cur)+len(piece) > width {
			lines = append(lines, cur+` \`)
			cur = "| " + tok
		} else {
			cur += piece
		}
	}

	lines = append(lines, cur)

	return lines
}

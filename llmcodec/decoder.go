// Package llmcodec implements the LLM text form (§4.3): the canonical,
// token-lean sigil-line encoding decoders and encoders exchange on disk and
// over the wire.
package llmcodec

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dxserializer/dx/document"
	"github.com/dxserializer/dx/errs"
)

// Decode parses LLM text into a Document. limits bounds input size,
// recursion depth (array nesting), and per-section row count; pass
// DefaultLimits() for the published default ceilings.
func Decode(text string, limits Limits) (*document.Document, error) {
	limits = limits.orDefault()
	if len(text) > limits.MaxInputSize {
		return nil, errs.InputTooLarge(len(text), limits.MaxInputSize)
	}
	if !utf8.ValidString(text) {
		return nil, errs.ErrInvalidUTF8
	}

	doc := document.NewDocument()

	lines := strings.Split(text, "\n")

	var (
		curSection *document.Section
		curSchema  []string
	)

	flushSection := func() error {
		if curSection == nil {
			return nil
		}

		return doc.AddSection(curSection)
	}

	for lineNo, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		loc := errs.Location{Offset: lineNo, Line: lineNo + 1, Column: 1, Excerpt: line}

		switch {
		case line == "":
			continue

		case strings.HasPrefix(line, "# "):
			continue

		case strings.HasPrefix(line, "#c:"):
			if err := flushSection(); err != nil {
				return nil, err.(*errs.Error).WithLocation(loc)
			}
			curSection, curSchema = nil, nil

			if err := decodeContextLine(doc, line[len("#c:"):], limits); err != nil {
				return nil, err.(*errs.Error).WithLocation(loc)
			}

		case strings.HasPrefix(line, "#:"):
			if err := flushSection(); err != nil {
				return nil, err.(*errs.Error).WithLocation(loc)
			}
			curSection, curSchema = nil, nil

			if err := decodeRefLine(doc, line[len("#:"):]); err != nil {
				return nil, err.(*errs.Error).WithLocation(loc)
			}

		case strings.HasPrefix(line, "#") && strings.Contains(line, "("):
			if err := flushSection(); err != nil {
				return nil, err.(*errs.Error).WithLocation(loc)
			}

			sec, schema, err := decodeSectionHeader(line)
			if err != nil {
				return nil, err.(*errs.Error).WithLocation(loc)
			}
			curSection, curSchema = sec, schema

		case curSection != nil:
			vals, err := decodeRowLine(line, curSchema)
			if err != nil {
				return nil, err.(*errs.Error).WithLocation(loc)
			}
			if err := curSection.AddRow(vals, limits.MaxTableRows); err != nil {
				return nil, err.(*errs.Error).WithLocation(loc)
			}

		default:
			return nil, errs.ErrUnknownSigil.WithLocation(loc)
		}
	}

	if err := flushSection(); err != nil {
		return nil, err
	}

	return doc, nil
}

// decodeContextLine parses the body after "#c:": `k|v;k2|v2;...`.
func decodeContextLine(doc *document.Document, body string, limits Limits) error {
	if body == "" {
		return nil
	}

	for _, entry := range splitUnquoted(body, ';') {
		if entry == "" {
			continue
		}

		idx := strings.IndexByte(entry, '|')
		if idx < 0 {
			return errs.ErrUnknownSigil.WithHint("context entry missing '|' separator: " + entry)
		}

		key := entry[:idx]
		valTok := entry[idx+1:]

		v, err := parseTopLevelValue(valTok, 0, limits)
		if err != nil {
			return err
		}

		doc.SetContext(key, v)
	}

	return nil
}

// decodeRefLine parses the body after "#:": `key|value`. The value is kept
// as a raw string — refs are never split into arrays (§4.1 "values may
// encode lists via a `|` separator" as an opaque convention, not a
// structural array).
func decodeRefLine(doc *document.Document, body string) error {
	idx := strings.IndexByte(body, '|')
	if idx < 0 {
		return errs.ErrUnknownSigil.WithHint("ref entry missing '|' separator: " + body)
	}

	doc.SetRef(body[:idx], body[idx+1:])

	return nil
}

// decodeSectionHeader parses `#<id>(k1,k2,k3)`.
func decodeSectionHeader(line string) (*document.Section, []string, error) {
	open := strings.IndexByte(line, '(')
	close := strings.LastIndexByte(line, ')')
	if open < 1 || close < open {
		return nil, nil, errs.ErrUnknownSigil.WithHint("malformed section header: " + line)
	}

	id := line[1:open]
	if !document.ValidSectionID(id) {
		return nil, nil, errs.ErrUnknownSigil.WithHint("invalid section id: " + id)
	}

	schemaBody := line[open+1 : close]

	var schema []string
	if schemaBody != "" {
		schema = strings.Split(schemaBody, ",")
	}

	sec, err := document.NewSection(id, schema)
	if err != nil {
		return nil, nil, err
	}

	return sec, schema, nil
}

// decodeRowLine splits a data row into exactly len(schema) cells.
func decodeRowLine(line string, schema []string) ([]document.Value, error) {
	parts := splitUnquoted(line, '|')
	if len(parts) != len(schema) {
		return nil, errs.ErrSchemaMismatch.WithHint(
			"row has " + strconv.Itoa(len(parts)) + " cells, schema has " + strconv.Itoa(len(schema)))
	}

	vals := make([]document.Value, len(parts))
	for i, p := range parts {
		v, err := parseCell(p)
		if err != nil {
			return nil, err
		}

		vals[i] = v
	}

	return vals, nil
}

// parseCell parses a single row cell: quoted string or scalar. Row cells do
// not expand into arrays — rows are flat (§4.3 limits note).
func parseCell(tok string) (document.Value, error) {
	if isQuoted(tok) {
		s, err := unquote(tok)
		if err != nil {
			return document.Value{}, err
		}

		return document.NewString(s), nil
	}

	return parseScalar(tok)
}

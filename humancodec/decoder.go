// Package humancodec implements the Human ("V3") form (§4.4): a
// TOML-like readable view that is a bijection with the LLM form modulo
// whitespace and aliasing.
package humancodec

import (
	"strings"
	"unicode/utf8"

	"github.com/dxserializer/dx/dict"
	"github.com/dxserializer/dx/document"
	"github.com/dxserializer/dx/errs"
	"github.com/dxserializer/dx/internal/dedupe"
)

// stackSectionName is the long section name that, by convention, is
// interpreted as the Reference table rather than a data section (§4.4:
// "`[stack]`... is interpreted as the Reference table").
const stackSectionName = "stack"

// kv is one `key = value` body line, with the RHS left unsplit so callers
// can decide whether it is a scalar/array expression or a raw ref string.
type kv struct {
	key string
	rhs string
}

// Decode parses Human text into a Document.
func Decode(text string, limits Limits) (*document.Document, error) {
	limits = limits.orDefault()
	if len(text) > limits.MaxInputSize {
		return nil, errs.InputTooLarge(len(text), limits.MaxInputSize)
	}
	if !utf8.ValidString(text) {
		return nil, errs.ErrInvalidUTF8
	}

	rawLines := joinContinuations(strings.Split(text, "\n"))

	doc := document.NewDocument()

	var (
		pendingParent   string
		pendingChildren []nestedChild
	)

	flushNested := func() error {
		if pendingParent == "" {
			return nil
		}

		sec, err := buildNestedSection(pendingParent, pendingChildren)
		pendingParent, pendingChildren = "", nil
		if err != nil {
			return err
		}

		return doc.AddSection(sec)
	}

	i := 0
	preambleKeys := dedupe.NewTracker()
	// Preamble: zero or more key=value lines before the first header.
	for i < len(rawLines) {
		line := strings.TrimSpace(rawLines[i])
		if line == "" || strings.HasPrefix(line, "#") {
			i++
			continue
		}
		if strings.HasPrefix(line, "[") {
			break
		}

		pair, ok := splitKV(line)
		if !ok {
			return nil, errs.ErrUnknownSigil.WithHint("expected key = value in config preamble: " + line)
		}

		v, err := parseRHS(pair.rhs)
		if err != nil {
			return nil, err
		}

		key := dict.NormalizeKey(pair.key)
		if err := preambleKeys.Track(key, errs.ErrDuplicateKey); err != nil {
			return nil, err
		}

		doc.SetContext(key, v)
		i++
	}

	for i < len(rawLines) {
		line := strings.TrimSpace(rawLines[i])
		i++

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
			return nil, errs.ErrUnknownSigil.WithHint("expected a section header: " + line)
		}

		name := line[1 : len(line)-1]

		var bodyLines []string
		for i < len(rawLines) {
			bl := strings.TrimSpace(rawLines[i])
			if bl == "" || strings.HasPrefix(bl, "#") {
				i++
				continue
			}
			if strings.HasPrefix(bl, "[") {
				break
			}

			bodyLines = append(bodyLines, bl)
			i++
		}

		parent, child, nested := strings.Cut(name, ".")
		switch {
		case name == stackSectionName:
			if err := flushNested(); err != nil {
				return nil, err
			}
			for _, bl := range bodyLines {
				pair, ok := splitKV(bl)
				if !ok {
					return nil, errs.ErrUnknownSigil.WithHint("expected key = value: " + bl)
				}
				doc.SetRef(pair.key, pair.rhs)
			}

		case nested:
			body, err := parseKVLines(bodyLines)
			if err != nil {
				return nil, err
			}
			if pendingParent != "" && pendingParent != parent {
				if err := flushNested(); err != nil {
					return nil, err
				}
			}
			pendingParent = parent
			pendingChildren = append(pendingChildren, nestedChild{name: child, body: body})

		default:
			if err := flushNested(); err != nil {
				return nil, err
			}

			sec, err := buildGenericSection(name, bodyLines, limits)
			if err != nil {
				return nil, err
			}
			if err := doc.AddSection(sec); err != nil {
				return nil, err
			}
		}
	}

	if err := flushNested(); err != nil {
		return nil, err
	}

	return doc, nil
}

// splitKV splits "key = value" on the first '='.
func splitKV(line string) (kv, bool) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return kv{}, false
	}

	return kv{
		key: strings.TrimSpace(line[:idx]),
		rhs: strings.TrimSpace(line[idx+1:]),
	}, true
}

func parseKVLines(lines []string) ([]kv, error) {
	out := make([]kv, 0, len(lines))
	for _, l := range lines {
		pair, ok := splitKV(l)
		if !ok {
			return nil, errs.ErrUnknownSigil.WithHint("expected key = value: " + l)
		}
		out = append(out, pair)
	}

	return out, nil
}

// joinContinuations merges a wrapped line (ending in " \") with the
// following physical line(s), stripping the marker and leading indentation
// on the continuation (§4.4 "wrap lines exceeding a configurable
// width... using a continuation marker").
func joinContinuations(lines []string) []string {
	out := make([]string, 0, len(lines))

	i := 0
	for i < len(lines) {
		line := lines[i]
		i++

		for strings.HasSuffix(line, `\`) && strings.HasSuffix(strings.TrimSuffix(line, `\`), " ") {
			line = strings.TrimSuffix(line, `\`)
			if i >= len(lines) {
				break
			}
			line += strings.TrimLeft(lines[i], " \t")
			i++
		}

		out = append(out, line)
	}

	return out
}

type nestedChild struct {
	name string
	body []kv
}

// buildNestedSection merges children of the same parent into a single
// section: schema is the concatenation of each child's keys prefixed with
// the child name, in order of first appearance across children (§4.4;
// resolved per this module's nested-merge convention).
func buildNestedSection(parent string, children []nestedChild) (*document.Section, error) {
	var (
		schema []string
		vals   []document.Value
	)

	for _, c := range children {
		for _, pair := range c.body {
			v, err := parseRHS(pair.rhs)
			if err != nil {
				return nil, err
			}

			schema = append(schema, c.name+"."+pair.key)
			vals = append(vals, v)
		}
	}

	id := dict.NormalizeSection(parent)

	sec, err := document.NewSection(id, schema)
	if err != nil {
		return nil, err
	}
	if err := sec.AddRow(vals, 0); err != nil {
		return nil, err
	}

	return sec, nil
}

// buildGenericSection builds a simple (non-nested, non-stack) section. A
// body whose first line contains no '=' is read as a table: that line is
// the pipe-separated schema, and every following line is a pipe-separated
// row in schema order. Otherwise the body is `key = value` lines forming a
// single row (a key's own value may still be an Array).
//
// The table form is this codec's own convention for representing a
// multi-row section in Human text — the `key = value` form is inherently
// single-row, and nothing else prescribes a Human-form layout for
// sections with more than one row.
func buildGenericSection(name string, bodyLines []string, limits Limits) (*document.Section, error) {
	id := dict.NormalizeSection(name)

	if len(bodyLines) > 0 && !strings.Contains(bodyLines[0], "=") {
		schema := splitPipeList(bodyLines[0])

		sec, err := document.NewSection(id, schema)
		if err != nil {
			return nil, err
		}

		for _, rowLine := range bodyLines[1:] {
			cells := splitPipeList(rowLine)
			if len(cells) != len(schema) {
				return nil, errs.ErrSchemaMismatch.WithHint("row has a different cell count than the section schema")
			}

			vals := make([]document.Value, len(cells))
			for i, c := range cells {
				v, err := parseScalarToken(c)
				if err != nil {
					return nil, err
				}
				vals[i] = v
			}

			if err := sec.AddRow(vals, limits.MaxTableRows); err != nil {
				return nil, err
			}
		}

		return sec, nil
	}

	body, err := parseKVLines(bodyLines)
	if err != nil {
		return nil, err
	}

	schema := make([]string, len(body))
	vals := make([]document.Value, len(body))
	for i, pair := range body {
		schema[i] = pair.key

		v, err := parseRHS(pair.rhs)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}

	sec, err := document.NewSection(id, schema)
	if err != nil {
		return nil, err
	}
	if err := sec.AddRow(vals, 0); err != nil {
		return nil, err
	}

	return sec, nil
}

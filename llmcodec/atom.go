package llmcodec

import (
	"strconv"
	"strings"

	"github.com/dxserializer/dx/document"
	"github.com/dxserializer/dx/errs"
)

// parseTopLevelValue parses a single `|`-delimited field into a Value,
// applying the Array-via-pipe rule (§4.3): an unquoted top-level value
// containing `|` splits into an Array of atoms, each re-classified on its
// own.
func parseTopLevelValue(tok string, depth int, limits Limits) (document.Value, error) {
	if isQuoted(tok) {
		s, err := unquote(tok)
		if err != nil {
			return document.Value{}, err
		}

		return document.NewString(s), nil
	}

	parts := splitUnquoted(tok, '|')
	if len(parts) == 1 {
		return parseScalar(tok)
	}

	if depth+1 > limits.MaxRecursionDepth {
		return document.Value{}, errs.RecursionLimitExceeded(depth+1, limits.MaxRecursionDepth)
	}

	elems := make([]document.Value, 0, len(parts))
	for _, p := range parts {
		v, err := parseTopLevelValue(p, depth+1, limits)
		if err != nil {
			return document.Value{}, err
		}

		elems = append(elems, v)
	}

	return document.NewArray(elems...), nil
}

// parseScalar classifies a non-array, non-quoted atom: null, bool, int,
// float, or (as a fallback) an unquoted string.
func parseScalar(tok string) (document.Value, error) {
	switch tok {
	case "-", "~":
		return document.Null(), nil
	case "true":
		return document.NewBool(true), nil
	case "false":
		return document.NewBool(false), nil
	}

	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return document.NewInt(i), nil
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return document.NewFloat(f), nil
	}

	return document.NewString(tok), nil
}

// splitUnquoted splits s on sep, treating sep as ordinary text while inside
// a matching pair of `"` or `'` quotes so a quoted field carrying the
// delimiter (e.g. a row cell `"a|b"`) survives the split intact. `\`-escapes
// inside the quoted span are honored so an escaped quote character doesn't
// end the span early.
func splitUnquoted(s string, sep byte) []string {
	var parts []string

	var quote byte
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case quote != 0:
			if c == '\\' && i+1 < len(s) {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}

		case c == '"' || c == '\'':
			quote = c

		case c == sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}

	return append(parts, s[start:])
}

func isQuoted(tok string) bool {
	if len(tok) < 2 {
		return false
	}

	c := tok[0]
	return (c == '"' || c == '\'') && tok[len(tok)-1] == c
}

// unquote strips the surrounding quote and resolves \\, \", \', \n, \t.
func unquote(tok string) (string, error) {
	quote := tok[0]
	body := tok[1 : len(tok)-1]

	var b strings.Builder
	b.Grow(len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}

		if i+1 >= len(body) {
			return "", errs.ErrUnclosedQuote
		}
		i++

		switch body[i] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			return "", errs.ErrUnclosedQuote.WithHint("unknown escape sequence '\\" + string(body[i]) + "'")
		}
	}

	_ = quote

	return b.String(), nil
}

// needsQuoting reports whether s must be quoted to round-trip: presence of
// a sigil character, `|`, `;`, leading/trailing whitespace, or a spelling
// that would otherwise lex as another atom.
func needsQuoting(s string) bool {
	if s == "" {
		return false
	}

	switch s {
	case "-", "~", "true", "false":
		return true
	}

	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}

	if s[0] == ' ' || s[len(s)-1] == ' ' {
		return true
	}

	return strings.ContainsAny(s, "|;#\"'\n\t")
}

func escapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(s[i])
		}
	}

	return b.String()
}

// formatValue renders v as a single `|`-joinable field: a bare token when
// unambiguous, a quoted token when needsQuoting requires it, and a
// recursively-joined `|`-list for Array.
func formatValue(v document.Value) string {
	switch v.Kind() {
	case document.KindNull:
		return "-"
	case document.KindBool:
		b, _ := v.AsBool()
		if b {
			return "true"
		}

		return "false"
	case document.KindInt:
		i, _ := v.AsInt()
		return strconv.FormatInt(i, 10)
	case document.KindFloat:
		f, _ := v.AsFloat()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case document.KindString:
		s, _ := v.AsString()
		if needsQuoting(s) {
			return `"` + escapeString(s) + `"`
		}

		return s
	case document.KindArray:
		elems, _ := v.AsArray()
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = formatValue(e)
		}

		return strings.Join(parts, "|")
	default:
		return "-"
	}
}

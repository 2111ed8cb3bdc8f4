package humancodec

import (
	"strconv"
	"strings"

	"github.com/dxserializer/dx/document"
	"github.com/dxserializer/dx/errs"
)

// splitPipeList splits a right-hand-side value into its ` | `-separated
// tokens, trimming the padding spaces the Human encoding adds for
// readability (§4.4: "spaces around `|` for readability, stripped on
// decode").
func splitPipeList(s string) []string {
	parts := splitUnquoted(s, '|')
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}

	return out
}

// splitUnquoted splits s on sep, treating sep as ordinary text while inside
// a matching pair of `"` or `'` quotes so a quoted token carrying the
// delimiter (e.g. `"a|b"`) survives the split intact. `\`-escapes inside the
// quoted span are honored so an escaped quote character doesn't end the
// span early.
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

// parseScalarToken parses a single trimmed RHS token: quoted string, null,
// bool, int, float, or bare string.
func parseScalarToken(tok string) (document.Value, error) {
	if isQuoted(tok) {
		s, err := unquote(tok)
		if err != nil {
			return document.Value{}, err
		}

		return document.NewString(s), nil
	}

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

// parseRHS parses a full right-hand-side expression, building an Array when
// it splits into more than one pipe-separated token.
func parseRHS(rhs string) (document.Value, error) {
	tokens := splitPipeList(rhs)
	if len(tokens) == 1 {
		return parseScalarToken(tokens[0])
	}

	elems := make([]document.Value, len(tokens))
	for i, tok := range tokens {
		v, err := parseScalarToken(tok)
		if err != nil {
			return document.Value{}, err
		}

		elems[i] = v
	}

	return document.NewArray(elems...), nil
}

func isQuoted(tok string) bool {
	if len(tok) < 2 {
		return false
	}

	c := tok[0]
	return (c == '"' || c == '\'') && tok[len(tok)-1] == c
}

func unquote(tok string) (string, error) {
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

	return b.String(), nil
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

func needsQuoting(s string) bool {
	if s == "" {
		return true
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

	return strings.ContainsAny(s, "|=#\"'\n\t[]")
}

// formatScalar renders v as a single RHS token.
func formatScalar(v document.Value) string {
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
	default:
		return "-"
	}
}

// formatRHS renders v as a full right-hand-side expression: a bare/quoted
// token for scalars, ` | `-joined tokens for Array (§4.4 "Arrays are
// written as ` | `-separated values... spaces around `|` for readability").
func formatRHS(v document.Value) string {
	if elems, ok := v.AsArray(); ok {
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = formatScalar(e)
		}

		return strings.Join(parts, " | ")
	}

	return formatScalar(v)
}

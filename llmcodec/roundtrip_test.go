package llmcodec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dxserializer/dx/document"
	"github.com/dxserializer/dx/errs"
)

func TestDecodeMinimalContext(t *testing.T) {
	doc, err := Decode("#c:nm|dx;v|0.0.1\n", DefaultLimits())
	require.NoError(t, err)

	v, ok := doc.Context("nm")
	require.True(t, ok)
	s, _ := v.AsString()
	require.Equal(t, "dx", s)

	v, ok = doc.Context("v")
	require.True(t, ok)
	s, _ = v.AsString()
	require.Equal(t, "0.0.1", s)
}

func TestEncodeMinimalContext(t *testing.T) {
	doc := document.NewDocument()
	doc.SetContext("nm", document.NewString("dx"))
	doc.SetContext("v", document.NewString("0.0.1"))

	require.Equal(t, "#c:nm|dx;v|0.0.1\n", Encode(doc))
}

func TestArrayViaPipe(t *testing.T) {
	doc, err := Decode("#c:editors|neovim|zed|vscode\n", DefaultLimits())
	require.NoError(t, err)

	v, ok := doc.Context("editors")
	require.True(t, ok)
	elems, ok := v.AsArray()
	require.True(t, ok)
	require.Len(t, elems, 3)
	s0, _ := elems[0].AsString()
	require.Equal(t, "neovim", s0)
}

func TestRefLinePreservesPipes(t *testing.T) {
	doc, err := Decode("#:js|javascript/typescript|bun|tsc\n", DefaultLimits())
	require.NoError(t, err)

	v, ok := doc.Ref("js")
	require.True(t, ok)
	require.Equal(t, "javascript/typescript|bun|tsc", v)
}

func TestSectionRoundTrip(t *testing.T) {
	src := "#f(forge,url)\ngithub|https://example.test\n"
	doc, err := Decode(src, DefaultLimits())
	require.NoError(t, err)

	sec, ok := doc.Section("f")
	require.True(t, ok)
	require.Equal(t, []string{"forge", "url"}, sec.Schema())
	require.Len(t, sec.Rows(), 1)

	require.Equal(t, src, Encode(doc))
}

func TestQuotedStringWithEscapes(t *testing.T) {
	doc, err := Decode(`#c:nm|"a\"b\nc"`+"\n", DefaultLimits())
	require.NoError(t, err)

	v, _ := doc.Context("nm")
	s, _ := v.AsString()
	require.Equal(t, "a\"b\nc", s)
}

func TestQuotedPipeSurvivesRowSplit(t *testing.T) {
	doc := document.NewDocument()
	sec, err := document.NewSection("f", []string{"a", "b"})
	require.NoError(t, err)
	require.NoError(t, sec.AddRow([]document.Value{document.NewString("a|b"), document.NewInt(2)}, 0))
	require.NoError(t, doc.AddSection(sec))

	text := Encode(doc)

	decoded, err := Decode(text, DefaultLimits())
	require.NoError(t, err)
	require.True(t, doc.Equal(decoded), "round trip through %q", text)
}

func TestQuotedSemicolonSurvivesContextSplit(t *testing.T) {
	doc := document.NewDocument()
	doc.SetContext("nm", document.NewString("a;b"))

	text := Encode(doc)

	decoded, err := Decode(text, DefaultLimits())
	require.NoError(t, err)
	require.True(t, doc.Equal(decoded), "round trip through %q", text)
}

func TestDecodeRejectsInvalidUTF8(t *testing.T) {
	_, err := Decode("#c:nm|"+string([]byte{0xff, 0xfe})+"\n", DefaultLimits())
	require.ErrorIs(t, err, errs.ErrInvalidUTF8)
}

func TestNullAndBoolAtoms(t *testing.T) {
	doc, err := Decode("#c:a|-;b|true;c|false\n", DefaultLimits())
	require.NoError(t, err)

	a, _ := doc.Context("a")
	require.True(t, a.IsNull())

	b, _ := doc.Context("b")
	bv, _ := b.AsBool()
	require.True(t, bv)

	c, _ := doc.Context("c")
	cv, _ := c.AsBool()
	require.False(t, cv)
}

func TestSchemaMismatchRow(t *testing.T) {
	_, err := Decode("#f(a,b)\nonly-one\n", DefaultLimits())
	require.ErrorIs(t, err, errs.ErrSchemaMismatch)
}

func TestUnknownSigil(t *testing.T) {
	_, err := Decode("?notasigil\n", DefaultLimits())
	require.ErrorIs(t, err, errs.ErrUnknownSigil)
}

func TestInputTooLarge(t *testing.T) {
	limits := Limits{MaxInputSize: 4, MaxRecursionDepth: 10, MaxTableRows: 10}
	_, err := Decode("#c:a|b\n", limits)
	require.ErrorIs(t, err, errs.ErrInputTooLarge)
}

func TestCommentAndBlankLinesSkipped(t *testing.T) {
	doc, err := Decode("# a comment\n\n#c:nm|dx\n", DefaultLimits())
	require.NoError(t, err)

	v, ok := doc.Context("nm")
	require.True(t, ok)
	s, _ := v.AsString()
	require.Equal(t, "dx", s)
}

// randomDocument builds a pseudo-random Document with a seeded generator,
// used to exercise decode(encode(d)) == d across many shapes (P1-P5).
func randomDocument(r *rand.Rand) *document.Document {
	doc := document.NewDocument()

	n := r.Intn(4)
	for i := 0; i < n; i++ {
		doc.SetContext(randomKey(r), randomScalar(r))
	}

	if r.Intn(2) == 0 {
		doc.SetRef("js", "javascript|bun|tsc")
	}

	if r.Intn(2) == 0 {
		sec, _ := document.NewSection("f", []string{"a", "b"})
		rows := r.Intn(3)
		for i := 0; i < rows; i++ {
			_ = sec.AddRow([]document.Value{randomScalar(r), randomScalar(r)}, 0)
		}
		_ = doc.AddSection(sec)
	}

	return doc
}

func randomKey(r *rand.Rand) string {
	keys := []string{"nm", "v", "au", "custom-key"}
	return keys[r.Intn(len(keys))]
}

// randomStrings covers the quoting edge cases that exercise needsQuoting/
// unquote round-tripping: a top-level array separator, a context-entry
// separator, an embedded quote character, and plain text.
var randomStrings = []string{
	"plain",
	"a|b",
	"a;b",
	`has "quotes" inside`,
	"a|b;c",
	"trailing space ",
}

func randomScalar(r *rand.Rand) document.Value {
	switch r.Intn(5) {
	case 0:
		return document.NewInt(int64(r.Intn(1000) - 500))
	case 1:
		return document.NewBool(r.Intn(2) == 0)
	case 2:
		return document.NewString("plain")
	case 3:
		return document.NewString(randomStrings[r.Intn(len(randomStrings))])
	default:
		return document.Null()
	}
}

func TestRoundTripProperty(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 150; i++ {
		doc := randomDocument(r)

		text := Encode(doc)
		decoded, err := Decode(text, DefaultLimits())
		require.NoError(t, err)
		require.True(t, doc.Equal(decoded), "round-trip mismatch for %q", text)
	}
}

package humancodec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dxserializer/dx/document"
	"github.com/dxserializer/dx/errs"
)

func TestMinimalContextRoundTrip(t *testing.T) {
	doc, err := Decode("name = dx\nversion = 0.0.1\n", DefaultLimits())
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

func TestNestedSectionMerging(t *testing.T) {
	src := "[i18n.locales]\ndefault = en-US\n\n[i18n.ttses]\ndefault = en-US\n"
	doc, err := Decode(src, DefaultLimits())
	require.NoError(t, err)

	sec, ok := doc.Section("i")
	require.True(t, ok)
	require.Equal(t, []string{"locales.default", "ttses.default"}, sec.Schema())
	require.Len(t, sec.Rows(), 1)

	vals := sec.Rows()[0].Values()
	a, _ := vals[0].AsString()
	b, _ := vals[1].AsString()
	require.Equal(t, "en-US", a)
	require.Equal(t, "en-US", b)
}

func TestArrayViaPipeInPreamble(t *testing.T) {
	doc, err := Decode("editors = neovim | zed | vscode\n", DefaultLimits())
	require.NoError(t, err)

	v, ok := doc.Context("editors")
	require.True(t, ok)
	elems, ok := v.AsArray()
	require.True(t, ok)
	require.Len(t, elems, 3)
}

func TestStackSectionAsRefs(t *testing.T) {
	src := "[stack]\njs = javascript/typescript | bun | tsc\n"
	doc, err := Decode(src, DefaultLimits())
	require.NoError(t, err)

	v, ok := doc.Ref("js")
	require.True(t, ok)
	require.Equal(t, "javascript/typescript | bun | tsc", v)
}

func TestSimpleSectionSingleRow(t *testing.T) {
	doc := document.NewDocument()
	sec, _ := document.NewSection("f", []string{"forge", "url"})
	_ = sec.AddRow([]document.Value{document.NewString("github"), document.NewString("https://example.test")}, 0)
	require.NoError(t, doc.AddSection(sec))

	text := Encode(doc)
	require.Equal(t, "[forge]\nforge = github\nurl   = https://example.test\n", text)

	decoded, err := Decode(text, DefaultLimits())
	require.NoError(t, err)
	require.True(t, doc.Equal(decoded))
}

func TestMultiRowSectionRoundTrip(t *testing.T) {
	doc := document.NewDocument()
	sec, _ := document.NewSection("f", []string{"forge", "url"})
	_ = sec.AddRow([]document.Value{document.NewString("github"), document.NewString("https://a.test")}, 0)
	_ = sec.AddRow([]document.Value{document.NewString("gitlab"), document.NewString("https://b.test")}, 0)
	require.NoError(t, doc.AddSection(sec))

	text := Encode(doc)
	decoded, err := Decode(text, DefaultLimits())
	require.NoError(t, err)
	require.True(t, doc.Equal(decoded), "round-trip mismatch for %q", text)
}

func TestSingleKeyMultiRowIsUnambiguous(t *testing.T) {
	doc := document.NewDocument()
	sec, _ := document.NewSection("f", []string{"url"})
	_ = sec.AddRow([]document.Value{document.NewString("https://a.test")}, 0)
	_ = sec.AddRow([]document.Value{document.NewString("https://b.test")}, 0)
	require.NoError(t, doc.AddSection(sec))

	text := Encode(doc)
	decoded, err := Decode(text, DefaultLimits())
	require.NoError(t, err)
	require.True(t, doc.Equal(decoded))

	gotSec, ok := decoded.Section("f")
	require.True(t, ok)
	require.Len(t, gotSec.Rows(), 2)
}

func TestWrapWidthContinuation(t *testing.T) {
	doc := document.NewDocument()
	sec, _ := document.NewSection("f", []string{"a", "b", "c"})
	_ = sec.AddRow([]document.Value{document.NewString("aaaaaaaaaa"), document.NewString("bbbbbbbbbb"), document.NewString("cccccccccc")}, 0)
	_ = sec.AddRow([]document.Value{document.NewString("dddddddddd"), document.NewString("eeeeeeeeee"), document.NewString("ffffffffff")}, 0)
	require.NoError(t, doc.AddSection(sec))

	text := Encode(doc, WithWrapWidth(20))
	decoded, err := Decode(text, DefaultLimits())
	require.NoError(t, err)
	require.True(t, doc.Equal(decoded), "round-trip mismatch for %q", text)
}

func TestQuotedPipeSurvivesTableRowSplit(t *testing.T) {
	doc := document.NewDocument()
	sec, _ := document.NewSection("f", []string{"a", "b"})
	require.NoError(t, sec.AddRow([]document.Value{document.NewString("a|b"), document.NewInt(2)}, 0))
	require.NoError(t, sec.AddRow([]document.Value{document.NewString("c"), document.NewInt(3)}, 0))
	require.NoError(t, doc.AddSection(sec))

	text := Encode(doc)

	decoded, err := Decode(text, DefaultLimits())
	require.NoError(t, err)
	require.True(t, doc.Equal(decoded), "round trip through %q", text)
}

func TestDecodeRejectsInvalidUTF8(t *testing.T) {
	_, err := Decode("name = "+string([]byte{0xff, 0xfe})+"\n", DefaultLimits())
	require.ErrorIs(t, err, errs.ErrInvalidUTF8)
}

func TestSchemaMismatchRow(t *testing.T) {
	src := "[f]\na | b\n1 | 2 | 3\n"
	_, err := Decode(src, DefaultLimits())
	require.ErrorIs(t, err, errs.ErrSchemaMismatch)
}

func TestInputTooLarge(t *testing.T) {
	limits := Limits{MaxInputSize: 4, MaxRecursionDepth: 10, MaxTableRows: 10}
	_, err := Decode("name = dx\n", limits)
	require.ErrorIs(t, err, errs.ErrInputTooLarge)
}

// randomCellStrings covers the quoting edge cases that exercise splitPipeList
// round-tripping through a quoted RHS token.
var randomCellStrings = []string{
	"x",
	"a|b",
	`has "quotes" inside`,
	"trailing space ",
}

func randomHumanDocument(r *rand.Rand) *document.Document {
	doc := document.NewDocument()

	if r.Intn(2) == 0 {
		doc.SetContext("nm", document.NewString("dx"))
	}
	if r.Intn(2) == 0 {
		doc.SetRef("js", "javascript|bun|tsc")
	}
	if r.Intn(2) == 0 {
		sec, _ := document.NewSection("f", []string{"a", "b"})
		rows := 1 + r.Intn(3)
		for i := 0; i < rows; i++ {
			cell := randomCellStrings[r.Intn(len(randomCellStrings))]
			_ = sec.AddRow([]document.Value{document.NewString(cell), document.NewInt(int64(i))}, 0)
		}
		_ = doc.AddSection(sec)
	}

	return doc
}

func TestRoundTripProperty(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 120; i++ {
		doc := randomHumanDocument(r)

		text := Encode(doc)
		decoded, err := Decode(text, DefaultLimits())
		require.NoError(t, err)
		require.True(t, doc.Equal(decoded), "round-trip mismatch for %q", text)
	}
}

package document

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dxserializer/dx/errs"
)

func TestValueEquality(t *testing.T) {
	require.True(t, NewInt(5).Equal(NewInt(5)))
	require.False(t, NewInt(5).Equal(NewInt(6)))
	require.False(t, NewInt(5).Equal(NewFloat(5)))
	require.True(t, Null().Equal(Null()))

	arr1 := NewArray(NewString("a"), NewInt(1))
	arr2 := NewArray(NewString("a"), NewInt(1))
	arr3 := NewArray(NewString("a"), NewInt(2))
	require.True(t, arr1.Equal(arr2))
	require.False(t, arr1.Equal(arr3))
}

func TestValueArrayImmutable(t *testing.T) {
	src := []Value{NewInt(1), NewInt(2)}
	v := NewArray(src...)
	src[0] = NewInt(99)

	elems, ok := v.AsArray()
	require.True(t, ok)
	i, _ := elems[0].AsInt()
	require.Equal(t, int64(1), i)
}

func TestSectionSchemaValidation(t *testing.T) {
	_, err := NewSection("f", []string{"a", "b", "a"})
	require.ErrorIs(t, err, errs.ErrDuplicateKey)

	sec, err := NewSection("f", []string{"a", "b"})
	require.NoError(t, err)

	require.NoError(t, sec.AddRow([]Value{NewInt(1), NewInt(2)}, 0))
	err = sec.AddRow([]Value{NewInt(1)}, 0)
	require.ErrorIs(t, err, errs.ErrSchemaMismatch)
}

func TestSectionMaxRows(t *testing.T) {
	sec, err := NewSection("f", []string{"a"})
	require.NoError(t, err)

	require.NoError(t, sec.AddRow([]Value{NewInt(1)}, 1))
	err = sec.AddRow([]Value{NewInt(2)}, 1)
	require.ErrorIs(t, err, errs.ErrTableTooLarge)
}

func TestSectionGet(t *testing.T) {
	sec, err := NewSection("f", []string{"a", "b"})
	require.NoError(t, err)
	require.NoError(t, sec.AddRow([]Value{NewInt(1), NewString("x")}, 0))

	v, ok := sec.Get(sec.Rows()[0], "b")
	require.True(t, ok)
	s, _ := v.AsString()
	require.Equal(t, "x", s)

	_, ok = sec.Get(sec.Rows()[0], "missing")
	require.False(t, ok)
}

func TestDocumentAddSectionDuplicate(t *testing.T) {
	doc := NewDocument()
	sec1, _ := NewSection("f", []string{"a"})
	sec2, _ := NewSection("f", []string{"b"})

	require.NoError(t, doc.AddSection(sec1))
	require.ErrorIs(t, doc.AddSection(sec2), errs.ErrDuplicateSection)
}

func TestDocumentSectionOrderIsPermutation(t *testing.T) {
	doc := NewDocument()
	for _, id := range []string{"f", "y", "m"} {
		sec, _ := NewSection(id, []string{"a"})
		require.NoError(t, doc.AddSection(sec))
	}

	require.Equal(t, []string{"f", "y", "m"}, doc.SectionOrder())

	var visited []string
	doc.Sections(func(s *Section) bool {
		visited = append(visited, s.ID())
		return true
	})
	require.Equal(t, doc.SectionOrder(), visited)
}

func TestDocumentContextOverwritePreservesPosition(t *testing.T) {
	doc := NewDocument()
	doc.SetContext("nm", NewString("dx"))
	doc.SetContext("v", NewString("0.0.1"))
	doc.SetContext("nm", NewString("dx2"))

	require.Equal(t, []string{"nm", "v"}, doc.ContextKeys())
	v, _ := doc.Context("nm")
	s, _ := v.AsString()
	require.Equal(t, "dx2", s)
}

func TestDocumentEqual(t *testing.T) {
	build := func() *Document {
		doc := NewDocument()
		doc.SetContext("nm", NewString("dx"))
		doc.SetRef("js", "javascript|bun")
		sec, _ := NewSection("f", []string{"a"})
		_ = sec.AddRow([]Value{NewInt(1)}, 0)
		_ = doc.AddSection(sec)

		return doc
	}

	a := build()
	b := build()
	require.True(t, a.Equal(b))

	b.SetContext("nm", NewString("other"))
	require.False(t, a.Equal(b))
}

func TestDocumentClone(t *testing.T) {
	doc := NewDocument()
	sec, _ := NewSection("f", []string{"a"})
	_ = sec.AddRow([]Value{NewInt(1)}, 0)
	require.NoError(t, doc.AddSection(sec))

	cp := doc.Clone()
	require.True(t, doc.Equal(cp))

	sec2, _ := NewSection("y", []string{"b"})
	require.NoError(t, cp.AddSection(sec2))
	require.False(t, doc.Equal(cp))
}

func TestValidSectionID(t *testing.T) {
	require.True(t, ValidSectionID("f"))
	require.True(t, ValidSectionID("wsdp"))
	require.False(t, ValidSectionID(""))
	require.False(t, ValidSectionID("toolong"))
	require.False(t, ValidSectionID("UP"))
}

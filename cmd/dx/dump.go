package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dxserializer/dx/document"
)

// dumpDocument writes a readable structural summary of doc to w — context
// entries, refs, and each section's schema and rows in document order.
// It is a debug view, not one of the three wire forms.
func dumpDocument(w io.Writer, doc *document.Document) {
	for _, k := range doc.ContextKeys() {
		v, _ := doc.Context(k)
		fmt.Fprintf(w, "context %s = %s\n", k, v.String())
	}

	for _, k := range doc.RefKeys() {
		v, _ := doc.Ref(k)
		fmt.Fprintf(w, "ref %s = %s\n", k, v)
	}

	for _, id := range doc.SectionOrder() {
		sec, _ := doc.Section(id)
		fmt.Fprintf(w, "section %s(%s)\n", id, strings.Join(sec.Schema(), ","))

		for _, row := range sec.Rows() {
			cells := make([]string, 0, row.Len())
			for _, v := range row.Values() {
				cells = append(cells, v.String())
			}
			fmt.Fprintf(w, "  %s\n", strings.Join(cells, "|"))
		}
	}
}

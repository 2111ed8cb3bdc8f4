// Package document implements the in-memory Document model (§3): the
// single pivot every conversion passes through — {decode to Document} →
// {encode from Document}.
//
// A Document holds a Context table, a Refs table, and an ordered collection
// of Sections, each with a fixed Schema shared by every Row it contains.
// Values are immutable tagged sums (Null/Bool/Int/Float/String/Array); there
// is no nested-object variant, structure is expressed only through sections.
package document

package document

import (
	"github.com/dxserializer/dx/errs"
	"github.com/dxserializer/dx/internal/dedupe"
)

// Document is the root entity (§3): a Context table, a Refs table, a
// set of Sections, and the order those sections appeared in (or should be
// emitted in).
type Document struct {
	context    *orderedMap[Value]
	refs       *orderedMap[string]
	sections   map[string]*Section
	sectionIDs *dedupe.Tracker
	order      []string
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{
		context:    newOrderedMap[Value](),
		refs:       newOrderedMap[string](),
		sections:   make(map[string]*Section),
		sectionIDs: dedupe.NewTracker(),
	}
}

// SetContext sets a context entry. Keys are opaque at this layer — the
// abbreviation dictionary (dict package) is applied by the codecs, not here.
func (d *Document) SetContext(key string, val Value) {
	d.context.Set(key, val)
}

// Context returns the context value for key, and whether it is present.
func (d *Document) Context(key string) (Value, bool) {
	return d.context.Get(key)
}

// ContextKeys returns context keys in insertion order.
func (d *Document) ContextKeys() []string {
	return d.context.Keys()
}

// SetRef sets a reference-table entry. Ref keys are never abbreviated and
// live in a separate namespace from section ids (I4).
func (d *Document) SetRef(key, val string) {
	d.refs.Set(key, val)
}

// Ref returns the ref value for key, and whether it is present.
func (d *Document) Ref(key string) (string, bool) {
	return d.refs.Get(key)
}

// RefKeys returns ref keys in insertion order.
func (d *Document) RefKeys() []string {
	return d.refs.Keys()
}

// AddSection inserts a new section and appends its id to the document
// order. Returns errs.ErrDuplicateSection if the id is already present (I2,
// I3).
func (d *Document) AddSection(s *Section) error {
	if err := d.sectionIDs.Track(s.id, errs.ErrDuplicateSection); err != nil {
		return err
	}

	d.sections[s.id] = s
	d.order = append(d.order, s.id)

	return nil
}

// Section returns the section with the given id, and whether it exists.
// Lookup is O(1) expected, as required by §4.1.
func (d *Document) Section(id string) (*Section, bool) {
	s, ok := d.sections[id]
	return s, ok
}

// SectionOrder returns section ids in document order (I2: a permutation of
// the ids in the section map).
func (d *Document) SectionOrder() []string {
	return d.order
}

// Sections iterates sections in SectionOrder, yielding each in turn. This is
// the only supported iteration order (§4.1: "Iteration over sections
// must follow section_order").
func (d *Document) Sections(yield func(*Section) bool) {
	for _, id := range d.order {
		if !yield(d.sections[id]) {
			return
		}
	}
}

// Equal reports structural equality across context, refs, section_order,
// and each section's schema/row order — the comparison P1-P5 require.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}

	if !equalOrderedValues(d.context, other.context) {
		return false
	}
	if !equalOrderedStrings(d.refs, other.refs) {
		return false
	}

	if len(d.order) != len(other.order) {
		return false
	}
	for i := range d.order {
		if d.order[i] != other.order[i] {
			return false
		}
	}

	for id, sec := range d.sections {
		otherSec, ok := other.sections[id]
		if !ok || !sec.Equal(otherSec) {
			return false
		}
	}

	return len(d.sections) == len(other.sections)
}

// equalOrderedValues compares both the key set and insertion order: two
// context tables with the same entries added in a different order are not
// Equal, so a codec regression that reorders context keys is caught instead
// of masked by set comparison.
func equalOrderedValues(a, b *orderedMap[Value]) bool {
	aKeys, bKeys := a.Keys(), b.Keys()
	if len(aKeys) != len(bKeys) {
		return false
	}

	for i, k := range aKeys {
		if k != bKeys[i] {
			return false
		}

		av, _ := a.Get(k)
		bv, _ := b.Get(k)
		if !av.Equal(bv) {
			return false
		}
	}

	return true
}

func equalOrderedStrings(a, b *orderedMap[string]) bool {
	aKeys, bKeys := a.Keys(), b.Keys()
	if len(aKeys) != len(bKeys) {
		return false
	}

	for i, k := range aKeys {
		if k != bKeys[i] {
			return false
		}

		av, _ := a.Get(k)
		bv, _ := b.Get(k)
		if av != bv {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of d. Decoders build a Document incrementally;
// callers that need a stable snapshot while continuing to mutate the
// original (or vice versa) should Clone first, since Values are immutable
// but the Document container itself is not (I5 applies to Values, not to
// the Document that holds them).
func (d *Document) Clone() *Document {
	cp := NewDocument()
	cp.context = d.context.clone()
	cp.refs = d.refs.clone()
	cp.order = append([]string(nil), d.order...)
	for id, s := range d.sections {
		cp.sections[id] = s.clone()
	}
	for _, id := range d.order {
		_ = cp.sectionIDs.Track(id, errs.ErrDuplicateSection)
	}

	return cp
}

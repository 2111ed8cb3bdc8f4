package document

import (
	"regexp"
	"strconv"

	"github.com/dxserializer/dx/errs"
	"github.com/dxserializer/dx/internal/dedupe"
)

// sectionIDPattern enforces §3's "1-4 chars, lowercase" section id rule.
var sectionIDPattern = regexp.MustCompile(`^[a-z]{1,4}$`)

// ValidSectionID reports whether id satisfies §3's section-id shape.
func ValidSectionID(id string) bool {
	return sectionIDPattern.MatchString(id)
}

// Row is an ordered mapping from key to Value. Every Row in a Section shares
// that Section's Schema, so a Row only stores its values, in schema order
// (I1).
type Row struct {
	values []Value
}

// NewRow constructs a Row whose values slice is copied from vals.
func NewRow(vals []Value) Row {
	cp := make([]Value, len(vals))
	copy(cp, vals)

	return Row{values: cp}
}

// Values returns the row's values in schema order. Callers must not mutate
// the returned slice.
func (r Row) Values() []Value {
	return r.values
}

// Len returns the number of values in the row.
func (r Row) Len() int {
	return len(r.values)
}

// Equal reports whether r and other hold equal values in the same order.
func (r Row) Equal(other Row) bool {
	if len(r.values) != len(other.values) {
		return false
	}
	for i := range r.values {
		if !r.values[i].Equal(other.values[i]) {
			return false
		}
	}

	return true
}

// Section is a named table: an id, an ordered schema (key sequence), and an
// ordered sequence of rows conforming to that schema (§3).
type Section struct {
	id     string
	schema []string
	rows   []Row
}

// NewSection creates an empty Section with the given id and schema. It
// returns errs.ErrDuplicateKey if schema contains a repeated key.
func NewSection(id string, schema []string) (*Section, error) {
	tr := dedupe.NewTracker()
	for _, k := range schema {
		if err := tr.Track(k, errs.ErrDuplicateKey); err != nil {
			return nil, err
		}
	}

	cp := make([]string, len(schema))
	copy(cp, schema)

	return &Section{id: id, schema: cp}, nil
}

// ID returns the section's id.
func (s *Section) ID() string { return s.id }

// Schema returns the section's ordered key sequence. Callers must not mutate
// the returned slice.
func (s *Section) Schema() []string { return s.schema }

// Rows returns the section's rows in insertion order. Callers must not
// mutate the returned slice.
func (s *Section) Rows() []Row { return s.rows }

// AddRow appends a row, validating it has exactly the section's schema keys
// in the same order (I1). Returns errs.ErrSchemaMismatch on a length
// mismatch and errs.ErrTableTooLarge once maxRows is exceeded (maxRows <= 0
// disables the check, for callers that enforce limits elsewhere).
func (s *Section) AddRow(vals []Value, maxRows int) error {
	if len(vals) != len(s.schema) {
		return errs.ErrSchemaMismatch.WithHint(
			"section expects " + strconv.Itoa(len(s.schema)) + " values, got " + strconv.Itoa(len(vals)))
	}

	if maxRows > 0 && len(s.rows) >= maxRows {
		return errs.TableTooLarge(len(s.rows)+1, maxRows)
	}

	s.rows = append(s.rows, NewRow(vals))

	return nil
}

// Get returns the value for key in row, and whether key exists in the
// section's schema.
func (s *Section) Get(row Row, key string) (Value, bool) {
	for i, k := range s.schema {
		if k == key {
			if i >= len(row.values) {
				return Value{}, false
			}

			return row.values[i], true
		}
	}

	return Value{}, false
}

// Equal reports structural equality: same id, same schema order, same rows
// in the same order.
func (s *Section) Equal(other *Section) bool {
	if s == nil || other == nil {
		return s == other
	}

	if s.id != other.id || len(s.schema) != len(other.schema) {
		return false
	}
	for i := range s.schema {
		if s.schema[i] != other.schema[i] {
			return false
		}
	}

	if len(s.rows) != len(other.rows) {
		return false
	}
	for i := range s.rows {
		if !s.rows[i].Equal(other.rows[i]) {
			return false
		}
	}

	return true
}

// clone returns a deep copy of s.
func (s *Section) clone() *Section {
	cp := &Section{id: s.id, schema: append([]string(nil), s.schema...)}
	cp.rows = make([]Row, len(s.rows))
	for i, r := range s.rows {
		cp.rows[i] = NewRow(r.values)
	}

	return cp
}

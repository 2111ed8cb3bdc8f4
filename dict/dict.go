// Package dict holds the two static, process-wide dictionaries the codecs
// use to shrink keys on the wire: the Abbreviation Dictionary (context/row
// keys) and the Section Dictionary (section identifiers). Both are built
// once at init from parallel long/short pairs and never mutated afterward
// (§9: "static global dictionaries").
package dict

// entry pairs a long identifier with its short form. Section and
// abbreviation tables are both seeded from slices of entry rather than a
// map literal, so the canonical long->short order is explicit and the
// reverse table is derived rather than duplicated.
type entry struct {
	long, short string
}

// abbreviationSeeds is the Abbreviation Dictionary (§4.2): long
// context/row keys mapped to their short wire form. "editors" and
// "locales" and "default" are seeded as pass-through entries — present in
// the table so long_of/short_of are total over the known key set, but
// with no actual shortening.
var abbreviationSeeds = []entry{
	{"version", "v"},
	{"author", "au"},
	{"workspace", "ws"},
	{"name", "nm"},
	{"description", "d"},
	{"license", "lc"},
	{"editors", "editors"},
	{"locales", "locales"},
	{"default", "default"},
}

// sectionSeeds is the Section Dictionary (§4.2): long section names
// mapped to their short section ids. Every short id must satisfy
// document.ValidSectionID (1-4 lowercase ASCII letters).
var sectionSeeds = []entry{
	{"forge", "f"},
	{"style", "y"},
	{"media", "m"},
	{"stack", "k"},
	{"config", "c"},
	{"i18n", "i"},
	{"scripts", "s"},
	{"dependencies", "dp"},
}

// table is a bidirectional lookup over a fixed set of entries.
type table struct {
	longToShort map[string]string
	shortToLong map[string]string
}

func newTable(seeds []entry) *table {
	t := &table{
		longToShort: make(map[string]string, len(seeds)),
		shortToLong: make(map[string]string, len(seeds)),
	}
	for _, e := range seeds {
		t.longToShort[e.long] = e.short
		t.shortToLong[e.short] = e.long
	}

	return t
}

func (t *table) shortOf(long string) (string, bool) {
	s, ok := t.longToShort[long]
	return s, ok
}

func (t *table) longOf(short string) (string, bool) {
	l, ok := t.shortToLong[short]
	return l, ok
}

var (
	abbreviations = newTable(abbreviationSeeds)
	sections      = newTable(sectionSeeds)
)

// ShortKey returns the abbreviated form of a long context/row key, and
// whether the dictionary defines one. Unknown keys pass through verbatim
// at the call site — this function only reports whether a mapping exists.
func ShortKey(long string) (string, bool) {
	return abbreviations.shortOf(long)
}

// LongKey returns the long form of an abbreviated context/row key, and
// whether the dictionary defines one.
func LongKey(short string) (string, bool) {
	return abbreviations.longOf(short)
}

// ShortSection returns the short section id for a long section name, and
// whether the dictionary defines one.
func ShortSection(long string) (string, bool) {
	return sections.shortOf(long)
}

// LongSection returns the long section name for a short section id, and
// whether the dictionary defines one.
func LongSection(short string) (string, bool) {
	return sections.longOf(short)
}

// NormalizeKey returns the canonical (short) form of a context/row key
// regardless of whether the caller passed the long or short spelling —
// decoders accept both (§4.4: "decoders accept both long and short,
// re-abbreviating on load").
func NormalizeKey(key string) string {
	if short, ok := ShortKey(key); ok {
		return short
	}
	if _, ok := LongKey(key); ok {
		return key
	}

	return key
}

// NormalizeSection returns the canonical (short) section id regardless of
// whether the caller passed the long or short spelling.
func NormalizeSection(id string) string {
	if short, ok := ShortSection(id); ok {
		return short
	}
	if _, ok := LongSection(id); ok {
		return id
	}

	return id
}

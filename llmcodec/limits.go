package llmcodec

// Decode-time limits shared with the Human and Machine codecs (§4.3,
// §4.6). A zero value for any Limits field falls back to the corresponding
// default below.
const (
	DefaultMaxInputSize      = 100 * 1024 * 1024 // 100 MiB
	DefaultMaxRecursionDepth = 1000
	DefaultMaxTableRows      = 10_000_000
)

// Limits bounds a single decode call. Decode replaces any field <= 0 with
// its default, so the zero Limits behaves like DefaultLimits().
type Limits struct {
	MaxInputSize      int
	MaxRecursionDepth int
	MaxTableRows      int
}

// DefaultLimits returns the limit set §4.3 mandates.
func DefaultLimits() Limits {
	return Limits{
		MaxInputSize:      DefaultMaxInputSize,
		MaxRecursionDepth: DefaultMaxRecursionDepth,
		MaxTableRows:      DefaultMaxTableRows,
	}
}

func (l Limits) orDefault() Limits {
	d := DefaultLimits()
	if l.MaxInputSize <= 0 {
		l.MaxInputSize = d.MaxInputSize
	}
	if l.MaxRecursionDepth <= 0 {
		l.MaxRecursionDepth = d.MaxRecursionDepth
	}
	if l.MaxTableRows <= 0 {
		l.MaxTableRows = d.MaxTableRows
	}

	return l
}

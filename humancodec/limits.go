package humancodec

// Limits mirrors llmcodec.Limits (§4.6: "Limits (identical across
// facades)"). Kept as its own type rather than a re-export so this package
// has no import-time dependency on llmcodec.
type Limits struct {
	MaxInputSize      int
	MaxRecursionDepth int
	MaxTableRows      int
}

const (
	DefaultMaxInputSize      = 100 * 1024 * 1024
	DefaultMaxRecursionDepth = 1000
	DefaultMaxTableRows      = 10_000_000
)

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

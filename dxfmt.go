// Package dx provides the top-level conversion facade (§4.6): five
// operations that move a Document between its LLM, Human, and Machine
// forms, plus format detection and the cache-file naming convention a
// host editor uses when it persists a Human document.
//
// This package is a thin wrapper around document/llmcodec/humancodec/
// machine, in the same spirit as mebo's own root package wraps blob.* —
// it adds no behavior beyond applying Limits before decoding.
//
//	doc, err := dx.ParseHuman(text)
//	llmText := dx.FormatLLM(doc)
//	bin, err := dx.SerializeBinary(doc)
package dx

import (
	"path/filepath"
	"strings"

	"github.com/dxserializer/dx/document"
	"github.com/dxserializer/dx/humancodec"
	"github.com/dxserializer/dx/internal/options"
	"github.com/dxserializer/dx/llmcodec"
	"github.com/dxserializer/dx/machine"
)

// Format identifies which textual form a document is (or should be) in.
type Format uint8

const (
	FormatLLM Format = iota
	FormatHuman
)

func (f Format) String() string {
	if f == FormatLLM {
		return "llm"
	}

	return "human"
}

// Default limit values (§4.3), re-exported from llmcodec. humancodec and
// machine declare the same values as their own constants; the facade always
// passes its Limits to each codec explicitly.
const (
	DefaultMaxInputSize      = llmcodec.DefaultMaxInputSize
	DefaultMaxRecursionDepth = llmcodec.DefaultMaxRecursionDepth
	DefaultMaxTableRows      = llmcodec.DefaultMaxTableRows
)

// FormatVersion is the Machine container version this module reads and
// writes (the §6.1 format_version getter).
const FormatVersion = machine.Version

// Limits bounds the resources a single call may consume. The same values
// apply across all three facades (§4.6: "identical across facades").
type Limits struct {
	MaxInputSize      int
	MaxRecursionDepth int
	MaxTableRows      int
}

// Option configures Limits via the functional-options pattern shared with
// humancodec's formatting knobs (internal/options).
type Option = options.Option[*Limits]

// WithMaxInputSize overrides the maximum accepted input size, in bytes.
func WithMaxInputSize(n int) Option {
	return options.NoError(func(l *Limits) { l.MaxInputSize = n })
}

// WithMaxRecursionDepth overrides the maximum Array nesting depth.
func WithMaxRecursionDepth(n int) Option {
	return options.NoError(func(l *Limits) { l.MaxRecursionDepth = n })
}

// WithMaxTableRows overrides the maximum row count for any one section.
func WithMaxTableRows(n int) Option {
	return options.NoError(func(l *Limits) { l.MaxTableRows = n })
}

func newLimits(opts ...Option) (*Limits, error) {
	l := &Limits{
		MaxInputSize:      DefaultMaxInputSize,
		MaxRecursionDepth: DefaultMaxRecursionDepth,
		MaxTableRows:      DefaultMaxTableRows,
	}

	if err := options.Apply(l, opts...); err != nil {
		return nil, err
	}

	return l, nil
}

func (l *Limits) llm() llmcodec.Limits {
	return llmcodec.Limits{MaxInputSize: l.MaxInputSize, MaxRecursionDepth: l.MaxRecursionDepth, MaxTableRows: l.MaxTableRows}
}

func (l *Limits) human() humancodec.Limits {
	return humancodec.Limits{MaxInputSize: l.MaxInputSize, MaxRecursionDepth: l.MaxRecursionDepth, MaxTableRows: l.MaxTableRows}
}

func (l *Limits) machine() machine.Limits {
	return machine.Limits{MaxInputSize: l.MaxInputSize, MaxRecursionDepth: l.MaxRecursionDepth, MaxTableRows: l.MaxTableRows}
}

// ParseLLM decodes LLM-form text into a Document.
func ParseLLM(text string, opts ...Option) (*document.Document, error) {
	l, err := newLimits(opts...)
	if err != nil {
		return nil, err
	}

	return llmcodec.Decode(text, l.llm())
}

// FormatLLM encodes doc as LLM-form text.
func FormatLLM(doc *document.Document) string {
	return llmcodec.Encode(doc)
}

// ParseHuman decodes Human-form text into a Document.
func ParseHuman(text string, opts ...Option) (*document.Document, error) {
	l, err := newLimits(opts...)
	if err != nil {
		return nil, err
	}

	return humancodec.Decode(text, l.human())
}

// FormatHuman encodes doc as Human-form text. Formatting knobs (e.g.
// humancodec.WithWrapWidth) are forwarded to the Human codec unchanged.
func FormatHuman(doc *document.Document, opts ...humancodec.Option) string {
	return humancodec.Encode(doc, opts...)
}

// SerializeBinary encodes doc as a Machine binary container.
func SerializeBinary(doc *document.Document) ([]byte, error) {
	return machine.Encode(doc)
}

// DeserializeBinary decodes a Machine binary container, verifying its
// header integrity hash against the buffer it was handed.
func DeserializeBinary(buf []byte, opts ...Option) (*document.Document, error) {
	l, err := newLimits(opts...)
	if err != nil {
		return nil, err
	}

	return machine.Decode(buf, l.machine(), true)
}

// DetectFormat inspects the first non-whitespace characters of text to
// guess which textual form it is in (§4.6): a leading '#' followed by
// "c:", ":", or a section sigil ("<id>(") routes to LLM; anything else to
// Human. Detection is advisory only — callers may call ParseLLM/ParseHuman
// directly regardless of what this reports.
func DetectFormat(text string) Format {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	if !strings.HasPrefix(trimmed, "#") {
		return FormatHuman
	}

	rest := trimmed[1:]
	if strings.HasPrefix(rest, "c:") || strings.HasPrefix(rest, ":") {
		return FormatLLM
	}

	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	if paren := strings.IndexByte(rest, '('); paren > 0 {
		return FormatLLM
	}

	return FormatHuman
}

// ValidationReport is the result of Validate: either well-formed, or the
// list of errors encountered while parsing.
type ValidationReport struct {
	OK     bool
	Format Format
	Errors []error
}

// Validate parses text under its auto-detected form and reports whether it
// is well-formed, without returning the decoded Document.
func Validate(text string, opts ...Option) *ValidationReport {
	format := DetectFormat(text)

	var err error
	switch format {
	case FormatLLM:
		_, err = ParseLLM(text, opts...)
	default:
		_, err = ParseHuman(text, opts...)
	}

	if err != nil {
		return &ValidationReport{OK: false, Format: format, Errors: []error{err}}
	}

	return &ValidationReport{OK: true, Format: format}
}

// CachePaths computes the two cache-file paths a host should write after
// saving a Human document at path p under root (§6.5):
// <root>/<p>.llm and <root>/<p>.machine. Subdirectory structure in p is
// preserved. This function never touches the filesystem; the core "never
// touches the filesystem" per §5 — writing the bytes is the host's job.
func CachePaths(root, p string) (llmPath, machinePath string) {
	joined := filepath.Join(root, p)

	return joined + ".llm", joined + ".machine"
}

package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesByKind(t *testing.T) {
	err := InputTooLarge(200, 100)
	require.ErrorIs(t, err, ErrInputTooLarge)
	require.NotErrorIs(t, err, ErrTableTooLarge)
}

func TestWithLocation(t *testing.T) {
	err := ErrSchemaMismatch.WithLocation(Location{Offset: 10, Line: 2, Column: 3, Excerpt: "a|b"})
	require.NotNil(t, err.Location)
	require.Equal(t, 2, err.Location.Line)
	require.ErrorIs(t, err, ErrSchemaMismatch)
	// Original sentinel must be unmodified.
	require.Nil(t, ErrSchemaMismatch.Location)
}

func TestWithHint(t *testing.T) {
	err := ErrUnclosedQuote.WithHint("close the quote before end of line")
	require.Equal(t, "close the quote before end of line", err.Hint)
	require.Empty(t, ErrUnclosedQuote.Hint)
}

func TestErrorMessageFormatting(t *testing.T) {
	plain := ErrDuplicateKey
	require.Contains(t, plain.Error(), "DuplicateKey")

	withLoc := plain.WithLocation(Location{Line: 5, Column: 1})
	require.Contains(t, withLoc.Error(), "line 5")
}

func TestBuilders(t *testing.T) {
	require.ErrorIs(t, InputTooLarge(1, 2), ErrInputTooLarge)
	require.ErrorIs(t, RecursionLimitExceeded(1, 2), ErrRecursionLimitExceeded)
	require.ErrorIs(t, TableTooLarge(1, 2), ErrTableTooLarge)
	require.ErrorIs(t, BufferTooSmall(10), ErrBufferTooSmall)
}

func TestStdlibErrorsIsInterop(t *testing.T) {
	wrapped := errors.New("wrapped")
	require.False(t, errors.Is(ErrInputTooLarge, wrapped))
}

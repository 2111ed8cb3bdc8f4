package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum64Deterministic(t *testing.T) {
	a := Sum64([]byte("hello"))
	b := Sum64([]byte("hello"))
	require.Equal(t, a, b)

	c := Sum64([]byte("hellp"))
	require.NotEqual(t, a, c)
}

func TestSum128Deterministic(t *testing.T) {
	lo1, hi1 := Sum128([]byte("the quick brown fox"))
	lo2, hi2 := Sum128([]byte("the quick brown fox"))
	require.Equal(t, lo1, lo2)
	require.Equal(t, hi1, hi2)
	require.NotEqual(t, lo1, hi1, "low and high words should differ for non-trivial input")
}

func TestSum128ChangesWithInput(t *testing.T) {
	lo1, hi1 := Sum128([]byte("a"))
	lo2, hi2 := Sum128([]byte("b"))
	require.False(t, lo1 == lo2 && hi1 == hi2)
}

package dict

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyRoundTrip(t *testing.T) {
	cases := []struct{ long, short string }{
		{"version", "v"},
		{"author", "au"},
		{"workspace", "ws"},
		{"name", "nm"},
		{"description", "d"},
		{"license", "lc"},
	}

	for _, c := range cases {
		short, ok := ShortKey(c.long)
		require.True(t, ok, c.long)
		require.Equal(t, c.short, short)

		long, ok := LongKey(c.short)
		require.True(t, ok, c.short)
		require.Equal(t, c.long, long)
	}
}

func TestKeyPassThrough(t *testing.T) {
	short, ok := ShortKey("editors")
	require.True(t, ok)
	require.Equal(t, "editors", short)
}

func TestKeyUnknown(t *testing.T) {
	_, ok := ShortKey("totally-unknown-key")
	require.False(t, ok)
	_, ok = LongKey("zz")
	require.False(t, ok)
}

func TestAbbreviationIdempotence(t *testing.T) {
	for _, e := range abbreviationSeeds {
		short, ok := ShortKey(e.long)
		require.True(t, ok)
		long, ok := LongKey(short)
		require.True(t, ok)
		require.Equal(t, e.long, long)

		short2, ok := LongKey(short)
		require.True(t, ok)
		short3, ok := ShortKey(short2)
		if ok {
			require.Equal(t, short, short3)
		}
	}
}

func TestSectionRoundTrip(t *testing.T) {
	cases := []struct{ long, short string }{
		{"forge", "f"},
		{"style", "y"},
		{"media", "m"},
		{"stack", "k"},
		{"config", "c"},
		{"i18n", "i"},
		{"scripts", "s"},
		{"dependencies", "dp"},
	}

	for _, c := range cases {
		short, ok := ShortSection(c.long)
		require.True(t, ok, c.long)
		require.Equal(t, c.short, short)

		long, ok := LongSection(c.short)
		require.True(t, ok, c.short)
		require.Equal(t, c.long, long)
	}
}

func TestNormalizeKeyAcceptsBothForms(t *testing.T) {
	require.Equal(t, "v", NormalizeKey("version"))
	require.Equal(t, "v", NormalizeKey("v"))
	require.Equal(t, "totally-custom", NormalizeKey("totally-custom"))
}

func TestNormalizeSectionAcceptsBothForms(t *testing.T) {
	require.Equal(t, "f", NormalizeSection("forge"))
	require.Equal(t, "f", NormalizeSection("f"))
}

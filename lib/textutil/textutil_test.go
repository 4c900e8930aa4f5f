package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", Truncate("abc", 5))
	require.Equal(t, "ab", Truncate("abc", 2))
	require.Equal(t, "", Truncate("", 10))

	// rune-safe: never cuts inside a multi-byte character
	require.Equal(t, "ukir kayu jépara", Truncate("ukir kayu jépara", 16))
	require.Equal(t, "ukir kayu jé", Truncate("ukir kayu jépara", 12))
	long := strings.Repeat("é", 300)
	require.Len(t, []rune(Truncate(long, 200)), 200)
}

func TestNormalizeTag(t *testing.T) {
	require.Equal(t, "wood", NormalizeTag("#Wood"))
	require.Equal(t, "teak wood", NormalizeTag("  Teak Wood "))
	require.Equal(t, "", NormalizeTag(""))
	require.Equal(t, "", NormalizeTag("#"))
}

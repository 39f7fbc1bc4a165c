package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRequired(t *testing.T) {
	normalized, ok := NormalizeRequired("  Morning Reset  ", 2)
	require.True(t, ok)
	require.Equal(t, "Morning Reset", normalized)

	_, ok = NormalizeRequired("   ", 2)
	require.False(t, ok)

	_, ok = NormalizeRequired("x", 2)
	require.False(t, ok)
}

func TestNormalizeRequired_CountsRunes(t *testing.T) {
	// Multi-byte characters count once each, not per byte.
	_, ok := NormalizeRequired("漢", 2)
	require.False(t, ok)

	normalized, ok := NormalizeRequired("漢字", 2)
	require.True(t, ok)
	require.Equal(t, "漢字", normalized)
}

func TestNormalizeOptional(t *testing.T) {
	require.Nil(t, NormalizeOptional(nil))

	empty := "   "
	require.Nil(t, NormalizeOptional(&empty))

	value := "  keep me  "
	normalized := NormalizeOptional(&value)
	require.NotNil(t, normalized)
	require.Equal(t, "keep me", *normalized)
}

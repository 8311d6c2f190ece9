package equipment

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumns(t *testing.T) {
	cols := Columns()

	require.Len(t, cols, len(Vocabulary))
	assert.True(t, sort.StringsAreSorted(cols))

	// Mutating the returned slice must not affect the vocabulary.
	cols[0] = "changed"
	assert.NotContains(t, Vocabulary, "changed")
}

func TestEncode(t *testing.T) {
	indicators := Encode([]string{"Bluetooth", "Leather seats", "Cupholder deluxe"})

	require.Len(t, indicators, len(Vocabulary))
	assert.Equal(t, 1, indicators["Bluetooth"])
	assert.Equal(t, 1, indicators["Leather seats"])
	assert.Equal(t, 0, indicators["Navigation system"])

	// Features outside the vocabulary never become columns.
	_, ok := indicators["Cupholder deluxe"]
	assert.False(t, ok)
}

func TestEncodeNil(t *testing.T) {
	indicators := Encode(nil)

	require.Len(t, indicators, len(Vocabulary))
	for feature, v := range indicators {
		assert.Zero(t, v, feature)
	}
}

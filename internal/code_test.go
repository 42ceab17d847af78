package internal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func getSign(v int) int {
	if v > 0 {
		return 1
	} else if v < 0 {
		return -1
	}
	return 0
}

func compareTuples(id1 string, idx1 uint64, id2 string, idx2 uint64) int {
	if res := strings.Compare(id1, id2); res != 0 {
		return res
	}
	if idx1 < idx2 {
		return -1
	} else if idx1 > idx2 {
		return 1
	}
	return 0
}

func TestTupleKeyOrder(t *testing.T) {
	n := 10000
	for i := 0; i < n; i++ {
		id1, id2 := gofakeit.UUID(), gofakeit.UUID()
		if gofakeit.Bool() {
			id2 = id1
		}
		idx1, idx2 := gofakeit.Uint64(), gofakeit.Uint64()

		k1, err := TupleKey(id1, idx1)
		require.NoError(t, err)
		k2, err := TupleKey(id2, idx2)
		require.NoError(t, err)

		require.Equal(t, getSign(compareTuples(id1, idx1, id2, idx2)),
			getSign(bytes.Compare(k1, k2)))
	}
}

func TestTupleKeyHasFeaturePrefix(t *testing.T) {
	id := gofakeit.UUID()

	prefix, err := FeaturePrefix(id)
	require.NoError(t, err)

	for i := uint64(0); i < 100; i++ {
		key, err := TupleKey(id, i)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(key, prefix))

		parsedId, parsedIdx, err := ParseTupleKey(key)
		require.NoError(t, err)
		require.Equal(t, id, parsedId)
		require.Equal(t, i, parsedIdx)
	}

	otherPrefix, err := FeaturePrefix(gofakeit.UUID())
	require.NoError(t, err)
	key, err := TupleKey(id, 0)
	require.NoError(t, err)
	require.False(t, bytes.HasPrefix(key, otherPrefix))
}

func TestParseFeaturePrefix(t *testing.T) {
	id := gofakeit.UUID()

	prefix, err := FeaturePrefix(id)
	require.NoError(t, err)

	parsed, ok := ParseFeaturePrefix(prefix)
	require.True(t, ok)
	require.Equal(t, id, parsed)

	key, err := TupleKey(id, 3)
	require.NoError(t, err)
	_, ok = ParseFeaturePrefix(key)
	require.False(t, ok)
}

// Package storetest checks that a store.Store behaves the way the catalog expects.
package storetest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/gpt-tools/partition/store"
	"github.com/stretchr/testify/require"
)

func key(prefix string, i int) []byte {
	return []byte(fmt.Sprintf("%s:%03d", prefix, i))
}

// Run exercises s; it expects s to be empty.
func Run(t *testing.T, s store.Store) {
	t.Run("SetGet", func(t *testing.T) { testSetGet(t, s) })
	t.Run("Rollback", func(t *testing.T) { testRollback(t, s) })
	t.Run("PrefixScan", func(t *testing.T) { testPrefixScan(t, s) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, s) })
}

func testSetGet(t *testing.T, s store.Store) {
	tx, err := s.Begin(true)
	require.NoError(t, err)
	require.NoError(t, tx.Set([]byte("hello"), []byte("partition")))
	require.NoError(t, tx.Commit())

	tx, err = s.Begin(false)
	require.NoError(t, err)
	defer tx.Rollback()

	value, err := tx.Get([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, []byte("partition"), value)

	value, err = tx.Get([]byte("missing"))
	require.NoError(t, err)
	require.Nil(t, value)
}

func testRollback(t *testing.T, s store.Store) {
	tx, err := s.Begin(true)
	require.NoError(t, err)
	require.NoError(t, tx.Set([]byte("discarded"), []byte("value")))
	require.NoError(t, tx.Rollback())

	tx, err = s.Begin(false)
	require.NoError(t, err)
	defer tx.Rollback()

	value, err := tx.Get([]byte("discarded"))
	require.NoError(t, err)
	require.Nil(t, value)
}

func testPrefixScan(t *testing.T, s store.Store) {
	tx, err := s.Begin(true)
	require.NoError(t, err)
	for _, prefix := range []string{"a", "b", "c"} {
		for i := 9; i >= 0; i-- {
			require.NoError(t, tx.Set(key(prefix, i), []byte(prefix)))
		}
	}
	require.NoError(t, tx.Commit())

	tx, err = s.Begin(false)
	require.NoError(t, err)
	defer tx.Rollback()

	cursor, err := tx.Cursor(true)
	require.NoError(t, err)
	defer cursor.Close()

	prefix := []byte("b:")
	n := 0
	for err = cursor.Seek(prefix); err == nil && cursor.Valid(); cursor.Next() {
		item, itemErr := cursor.Item()
		require.NoError(t, itemErr)
		if !bytes.HasPrefix(item.Key, prefix) {
			break
		}

		require.Equal(t, key("b", n), item.Key)
		require.Equal(t, []byte("b"), item.Value)
		n++
	}
	require.NoError(t, err)
	require.Equal(t, 10, n)
}

func testDelete(t *testing.T, s store.Store) {
	tx, err := s.Begin(true)
	require.NoError(t, err)
	require.NoError(t, tx.Set([]byte("deleted"), []byte("value")))
	require.NoError(t, tx.Commit())

	tx, err = s.Begin(true)
	require.NoError(t, err)
	require.NoError(t, tx.Delete([]byte("deleted")))
	require.NoError(t, tx.Commit())

	tx, err = s.Begin(false)
	require.NoError(t, err)
	defer tx.Rollback()

	value, err := tx.Get([]byte("deleted"))
	require.NoError(t, err)
	require.Nil(t, value)
}

package bbolt

import (
	"os"
	"testing"

	"github.com/gpt-tools/partition/store/storetest"
	"github.com/stretchr/testify/require"
)

func TestBoltStore(t *testing.T) {
	dir, err := os.MkdirTemp("", "partition-bbolt")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	s, err := Open(dir)
	require.NoError(t, err)
	defer s.Close()

	storetest.Run(t, s)
}

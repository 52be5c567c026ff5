package badger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true, nil)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "db")
	backend, err := OpenBackend(dir, false, nil)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenBackend_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	backend, err := OpenBackend(path, false, nil)
	if backend != nil {
		backend.Close()
	}
	assert.Error(t, err)
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true, nil)
	require.NoError(t, err)

	assert.False(t, backend.IsClosed())
	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	backend, err := OpenBackend("", true, nil)
	require.NoError(t, err)
	defer backend.Close()

	boom := errors.New("boom")
	err = backend.WithTransaction(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestWithBatch_AndDropPrefix(t *testing.T) {
	backend, err := OpenBackend("", true, nil)
	require.NoError(t, err)
	defer backend.Close()

	err = backend.WithBatch(func(wb *badger.WriteBatch) error {
		for i := 0; i < 3; i++ {
			if err := wb.Set(makePositionKey(investorPrefix, i), []byte{byte(i)}); err != nil {
				return err
			}
		}
		return wb.Set([]byte(snapshotMetaKey), []byte("keep"))
	})
	require.NoError(t, err)

	count := func(prefix string) int {
		n := 0
		err := backend.WithTx(func(tx *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(prefix)
			it := tx.NewIterator(opts)
			defer it.Close()
			for it.Rewind(); it.Valid(); it.Next() {
				n++
			}
			return nil
		}, false)
		require.NoError(t, err)
		return n
	}

	assert.Equal(t, 3, count(investorPrefix))
	require.NoError(t, backend.DropPrefix([]byte(investorPrefix)))
	assert.Equal(t, 0, count(investorPrefix))
	assert.Equal(t, 1, count(snapshotMetaKey))
}

func TestPositionKeys_SortInLoadOrder(t *testing.T) {
	a := makePositionKey(startupPrefix, 9)
	b := makePositionKey(startupPrefix, 10)
	assert.Less(t, string(a), string(b))

	pos, ok := decodePosition(encodePosition(300))
	assert.True(t, ok)
	assert.Equal(t, 300, pos)

	_, ok = decodePosition([]byte{1, 2})
	assert.False(t, ok)
}

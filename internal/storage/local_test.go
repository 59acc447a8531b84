package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSaveOpenOverwrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "invoices")
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Open(ctx, "invoice-INV-2610-0001.pdf")
	assert.ErrorIs(t, err, ErrNotExist)

	require.NoError(t, store.Save(ctx, "invoice-INV-2610-0001.pdf", []byte("first")))
	require.NoError(t, store.Save(ctx, "invoice-INV-2610-0001.pdf", []byte("second")))

	data, err := store.Open(ctx, "invoice-INV-2610-0001.pdf")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestLocalStoreRejectsPaths(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Save(context.Background(), "../escape.pdf", []byte("x")))
	_, err = store.Open(context.Background(), "")
	assert.Error(t, err)
}

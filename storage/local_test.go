package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		input  string
		suffix string
	}{
		{"plain", "cmr.pdf", "-cmr.pdf"},
		{"path stripped", "../../etc/passwd", "-passwd"},
		{"windows path", `C:\Users\jana\faktura 1.pdf`, "-faktura_1.pdf"},
		{"diacritics replaced", "dodací list.pdf", "-dodac_list.pdf"},
		{"empty", "", "-file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewKey(now, tt.input)
			assert.True(t, strings.HasPrefix(key, "dokumenty/2025/03/07/"), key)
			assert.True(t, strings.HasSuffix(key, tt.suffix), key)
			assert.NoError(t, validKey(key))
		})
	}
}

func TestLocalStoreRoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, func() time.Time { return time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC) })
	ctx := context.Background()

	key, err := store.Save(ctx, "cmr.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(key)))
	require.NoError(t, err)

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Open(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx, key))
}

func TestLocalStoreRejectsEscapingKeys(t *testing.T) {
	store := NewLocalStore(t.TempDir(), nil)

	_, err := store.Open(context.Background(), "../secret")
	assert.Error(t, err)
	assert.Error(t, store.Delete(context.Background(), "/etc/passwd"))
}

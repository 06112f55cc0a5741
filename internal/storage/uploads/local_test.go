package uploads

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyNeverContainsPathComponents(t *testing.T) {
	for _, name := range []string{
		"report.pdf",
		"../../etc/passwd",
		"..\\..\\evil.sh",
		"weird name with spaces.PNG",
		"no-extension",
		"trailing.",
		".hidden",
		"double.tar.gz",
		"bad.ex%t",
	} {
		key := NewKey(name)
		assert.NotContains(t, key, "/", "name %q", name)
		assert.NotContains(t, key, "\\", "name %q", name)
		assert.NotContains(t, key, "..", "name %q", name)

		ext := filepath.Ext(key)
		base := strings.TrimSuffix(key, ext)
		_, err := uuid.Parse(base)
		assert.NoError(t, err, "key %q for name %q should start with a uuid", key, name)
	}
}

func TestNewKeyKeepsSanitizedExtension(t *testing.T) {
	assert.True(t, strings.HasSuffix(NewKey("report.PDF"), ".pdf"))
	assert.True(t, strings.HasSuffix(NewKey("../../evil.sh"), ".sh"))
	assert.True(t, strings.HasSuffix(NewKey("archive.tar.gz"), ".gz"))

	// Hostile or absent extensions are dropped rather than escaped.
	for _, name := range []string{"no-extension", "bad.ex%t", "dot.", strings.Repeat("x", 5) + "." + strings.Repeat("y", 20)} {
		key := NewKey(name)
		assert.Equal(t, "", filepath.Ext(key), "name %q", name)
	}
}

func TestLocalStoreSaveRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads/")
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	key := NewKey("notes.txt")
	path, err := store.Save(context.Background(), key, strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+key, path)

	data, err := os.ReadFile(filepath.Join(dir, key))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestLocalStoreRejectsDuplicateKey(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	key := NewKey("a.txt")
	_, err = store.Save(context.Background(), key, strings.NewReader("one"))
	require.NoError(t, err)

	_, err = store.Save(context.Background(), key, strings.NewReader("two"))
	assert.Error(t, err, "a key must never be overwritten")
}

func TestLocalStoreCleansUpFailedWrite(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	key := NewKey("big.bin")
	_, err = store.Save(context.Background(), key, failingReader{})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, key))
	assert.True(t, os.IsNotExist(statErr), "partial file must be removed")
}

func TestLocalStoreHonorsCanceledContext(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Save(ctx, NewKey("a.txt"), strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, os.ErrClosed }

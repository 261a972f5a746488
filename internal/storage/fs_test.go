package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStoreRoundTrip(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	key, err := store.Put("videos/lesson_7.mp4", strings.NewReader("content"))
	require.NoError(t, err)
	assert.Equal(t, "videos/lesson_7.mp4", key)
	assert.True(t, store.Exists(key))

	f, size, err := store.Open(key)
	require.NoError(t, err)
	defer f.Close()
	assert.EqualValues(t, 7, size)

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestFSStoreSeek(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	_, err = store.Put("a.bin", strings.NewReader("0123456789"))
	require.NoError(t, err)

	f, _, err := store.Open("a.bin")
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Seek(4, io.SeekStart)
	require.NoError(t, err)
	rest, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "456789", string(rest))
}

func TestFSStoreRejectsTraversal(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Put("../outside.txt", strings.NewReader("x"))
	assert.Error(t, err)

	_, _, err = store.Open("../../etc/passwd")
	assert.Error(t, err)

	assert.False(t, store.Exists("../outside.txt"))

	_, err = store.Put("", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestFSStoreMissingKey(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	assert.False(t, store.Exists("nope"))
	_, _, err = store.Open("nope")
	assert.Error(t, err)
}

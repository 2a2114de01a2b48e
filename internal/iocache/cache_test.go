package iocache_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vgarchive/vgdb/internal/iocache"
	"github.com/vgarchive/vgdb/pkg/errcode"
)

type countingFetcher struct {
	calls int
	body  string
	err   error
}

func (f *countingFetcher) Get(_ context.Context, _ string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.body), nil
}

func openCache(t *testing.T) *iocache.Cache {
	t.Helper()
	c, err := iocache.Open(filepath.Join(t.TempDir(), "pages.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_GetPut(t *testing.T) {
	ctx := context.Background()
	c := openCache(t)

	_, ok, err := c.Get(ctx, "https://example.org/wiki/Ico")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "https://example.org/wiki/Ico", []byte("v1")))
	require.NoError(t, c.Put(ctx, "https://example.org/wiki/Ico", []byte("v2")))

	body, ok, err := c.Get(ctx, "https://example.org/wiki/Ico")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", string(body))

	n, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCache_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pages.sqlite")

	c, err := iocache.Open(path)
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, "u", []byte("body")))
	require.NoError(t, c.Close())

	c, err = iocache.Open(path)
	require.NoError(t, err)
	defer c.Close()
	body, ok, err := c.Get(ctx, "u")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "body", string(body))
}

func TestOpen_BadPath(t *testing.T) {
	_, err := iocache.Open(filepath.Join(t.TempDir(), "missing", "dir", "pages.sqlite"))
	assert.Error(t, err)
}

func TestFetcher(t *testing.T) {
	ctx := context.Background()
	c := openCache(t)
	next := &countingFetcher{body: "<html></html>"}
	f := iocache.NewFetcher(c, next)

	for range 3 {
		body, err := f.Get(ctx, "https://example.org/wiki/Ico")
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", string(body))
	}
	assert.Equal(t, 1, next.calls)
}

func TestFetcher_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c := openCache(t)
	next := &countingFetcher{err: errors.New("boom")}
	f := iocache.NewFetcher(c, next)

	_, err := f.Get(ctx, "https://example.org/wiki/Ico")
	assert.Error(t, err)
	_, ok, err := c.Get(ctx, "https://example.org/wiki/Ico")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_Locked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.sqlite")
	c, err := iocache.Open(path)
	require.NoError(t, err)

	_, err = iocache.Open(path)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CacheLockedError, gnErr.Code)

	require.NoError(t, c.Close())
	c, err = iocache.Open(path)
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}

package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type rendered struct {
	Text  string
	Width int
}

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

func TestInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, rendered]("lines", DefaultExpiration, DefaultCleanupInterval)
	want := rendered{Text: "int x;", Width: 6}
	cache.Set(context.Background(), "row:1", want, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "row:1")
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestInMemoryCacheManager_Miss(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("lines", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "row:1")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_WrongTypeIsMiss(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("lines", DefaultExpiration, DefaultCleanupInterval)
	cache.cache.Set("row:1", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "row:1")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("lines", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "row:1", "x", 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	_, ok := cache.Get(context.Background(), "row:1")
	require.False(t, ok)
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("lines", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "row:1", "x", 40*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	_, ok := cache.GetWithRefresh(context.Background(), "row:1", time.Minute)
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	got, ok := cache.Get(context.Background(), "row:1")
	require.True(t, ok, "refresh extended the expiry")
	require.Equal(t, "x", got)

	_, ok = cache.GetWithRefresh(context.Background(), "row:2", time.Minute)
	require.False(t, ok)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, string]("lines", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(ctx, "a", "1", DefaultExpiration)
	cache.Set(ctx, "b", "2", DefaultExpiration)
	cache.Set(ctx, "c", "3", DefaultExpiration)
	require.Equal(t, 3, cache.Len())

	require.NoError(t, cache.Delete(ctx, "a", "b"))
	require.NoError(t, cache.Delete(ctx))
	require.Equal(t, 1, cache.Len())

	require.NoError(t, cache.Flush(ctx))
	require.Zero(t, cache.Len())
}

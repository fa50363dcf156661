package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)
	defer c.Close()

	var got item
	found, err := c.Get(ctx, "item:1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "item:1", item{ID: "1", Name: "Comedy"}, time.Minute))

	found, err = c.Get(ctx, "item:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, item{ID: "1", Name: "Comedy"}, got)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	require.NoError(t, c.Set(ctx, "k", item{ID: "1"}, 10*time.Millisecond))
	time.Sleep(25 * time.Millisecond)

	var got item
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	original := &item{ID: "1", Name: "Comedy"}
	require.NoError(t, c.Set(ctx, "k", original, time.Minute))
	original.Name = "mutated"

	var got item
	_, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.Equal(t, "Comedy", got.Name)
	assert.NoError(t, c.Ping(ctx))
}

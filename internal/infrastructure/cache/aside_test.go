package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var errNoItem = errors.New("item not found")

// countingLoader returns a loader that serves items from data and counts calls.
func countingLoader(data map[string]item, id string, calls *int32) Loader[item] {
	return func(ctx context.Context) (*item, error) {
		atomic.AddInt32(calls, 1)
		it, ok := data[id]
		if !ok {
			return nil, errNoItem
		}
		return &it, nil
	}
}

// failingCache errors on every Get and records Set calls.
type failingCache struct {
	MemoryCache
	sets int32
}

func (f *failingCache) Get(context.Context, string, interface{}) (bool, error) {
	return false, errors.New("connection refused")
}

func (f *failingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	atomic.AddInt32(&f.sets, 1)
	return errors.New("connection refused")
}

func TestGetOrLoad_MissThenHit(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryCache(time.Minute)
	aside := NewAside(mem)
	data := map[string]item{"i1": {ID: "i1", Name: "Drama"}}
	var calls int32

	first, err := GetOrLoad(ctx, aside, "item", "item:i1", time.Minute, countingLoader(data, "i1", &calls))
	require.NoError(t, err)
	assert.Equal(t, "Drama", first.Name)
	assert.Equal(t, int32(1), calls)
	assert.Equal(t, 1, mem.Len())

	second, err := GetOrLoad(ctx, aside, "item", "item:i1", time.Minute, countingLoader(data, "i1", &calls))
	require.NoError(t, err)
	assert.Equal(t, *first, *second)
	assert.Equal(t, int32(1), calls, "hit must not call the loader")
}

func TestGetOrLoad_NotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryCache(time.Minute)
	aside := NewAside(mem)
	var calls int32

	for i := 0; i < 2; i++ {
		_, err := GetOrLoad(ctx, aside, "item", "item:nope", time.Minute, countingLoader(nil, "nope", &calls))
		assert.ErrorIs(t, err, errNoItem)
	}
	assert.Equal(t, int32(2), calls)
	assert.Equal(t, 0, mem.Len())
}

func TestGetOrLoad_CacheErrorsDegradeToLoad(t *testing.T) {
	ctx := context.Background()
	broken := &failingCache{MemoryCache: *NewMemoryCache(time.Minute)}
	aside := NewAside(broken)
	data := map[string]item{"i1": {ID: "i1", Name: "Drama"}}
	var calls int32

	got, err := GetOrLoad(ctx, aside, "item", "item:i1", time.Minute, countingLoader(data, "i1", &calls))
	require.NoError(t, err)
	assert.Equal(t, "Drama", got.Name)
	assert.Equal(t, int32(1), calls)
	assert.Equal(t, int32(1), atomic.LoadInt32(&broken.sets))
}

func TestGetOrLoad_ExpiredEntryReloads(t *testing.T) {
	ctx := context.Background()
	aside := NewAside(NewMemoryCache(time.Minute))
	data := map[string]item{"i1": {ID: "i1", Name: "Drama"}}
	var calls int32

	_, err := GetOrLoad(ctx, aside, "item", "item:i1", 20*time.Millisecond, countingLoader(data, "i1", &calls))
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)

	_, err = GetOrLoad(ctx, aside, "item", "item:i1", 20*time.Millisecond, countingLoader(data, "i1", &calls))
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls)
}

func TestGetOrLoad_ConcurrentMissesShareOneLoad(t *testing.T) {
	ctx := context.Background()
	aside := NewAside(NewMemoryCache(time.Minute))
	var calls int32
	release := make(chan struct{})

	load := func(ctx context.Context) (*item, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return &item{ID: "i1", Name: "Drama"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := GetOrLoad(ctx, aside, "item", "item:i1", time.Minute, load)
			assert.NoError(t, err)
			assert.Equal(t, "Drama", got.Name)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(8))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))
}

func TestGetOrLoad_CancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	aside := NewAside(NewMemoryCache(time.Minute))
	release := make(chan struct{})
	started := make(chan struct{})
	var calls int32

	load := func(ctx context.Context) (*item, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		select {
		case <-release:
			return &item{ID: "i1", Name: "Drama"}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	ctx1, cancel1 := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := GetOrLoad(ctx1, aside, "item", "item:i1", time.Minute, load)
		first <- err
	}()
	<-started

	second := make(chan *item, 1)
	go func() {
		got, err := GetOrLoad(context.Background(), aside, "item", "item:i1", time.Minute, load)
		assert.NoError(t, err)
		second <- got
	}()

	time.Sleep(20 * time.Millisecond)
	cancel1()
	assert.ErrorIs(t, <-first, context.Canceled)

	close(release)
	got := <-second
	require.NotNil(t, got)
	assert.Equal(t, "Drama", got.Name)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	cached, err := GetOrLoad(context.Background(), aside, "item", "item:i1", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, "Drama", cached.Name)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "shared load still populated the cache")
}

func TestGetOrLoad_DetachedLoadIsBounded(t *testing.T) {
	aside := NewAside(NewMemoryCache(time.Minute), WithLoadTimeout(20*time.Millisecond))

	load := func(ctx context.Context) (*item, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	_, err := GetOrLoad(context.Background(), aside, "item", "item:slow", time.Minute, load)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

package manifest

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unsafe"

	"modpack-updater/core/diff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (l *countingLoader) Load(_ context.Context, key string) ([]diff.FileRecord, error) {
	l.calls.Add(1)
	time.Sleep(l.delay)
	if l.err != nil {
		return nil, l.err
	}
	return []diff.FileRecord{{Path: "/", Name: key, ContentHash: "x", Size: 1}}, nil
}

func TestCache_Load(t *testing.T) {
	t.Run("Hit", func(t *testing.T) {
		loader := &countingLoader{}
		cache := NewCache(loader, time.Minute)

		first, err := cache.Load(context.Background(), "a.json")
		require.NoError(t, err)
		second, err := cache.Load(context.Background(), "a.json")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), loader.calls.Load())
	})

	t.Run("ZeroTTLDisables", func(t *testing.T) {
		loader := &countingLoader{}
		cache := NewCache(loader, 0)

		_, _ = cache.Load(context.Background(), "a.json")
		_, _ = cache.Load(context.Background(), "a.json")
		assert.Equal(t, int32(2), loader.calls.Load())
	})

	t.Run("Invalidate", func(t *testing.T) {
		loader := &countingLoader{}
		cache := NewCache(loader, time.Minute)

		_, _ = cache.Load(context.Background(), "a.json")
		cache.Invalidate("a.json")
		_, _ = cache.Load(context.Background(), "a.json")
		assert.Equal(t, int32(2), loader.calls.Load())
	})

	t.Run("ErrorsNotCached", func(t *testing.T) {
		loader := &countingLoader{err: errors.New("boom")}
		cache := NewCache(loader, time.Minute)

		_, err := cache.Load(context.Background(), "a.json")
		assert.Error(t, err)
		_, err = cache.Load(context.Background(), "a.json")
		assert.Error(t, err)
		assert.Equal(t, int32(2), loader.calls.Load())
	})

	t.Run("ConcurrentMissesShareLoad", func(t *testing.T) {
		loader := &countingLoader{delay: 50 * time.Millisecond}
		cache := NewCache(loader, time.Minute)

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := cache.Load(context.Background(), "shared.json")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), loader.calls.Load())
	})
	t.Run("KeyBufferReused", func(t *testing.T) {
		loader := &countingLoader{}
		cache := NewCache(loader, time.Minute)

		// Mimics a zero-copy key whose bytes are recycled after the call.
		buf := []byte("a.json")
		key := unsafe.String(&buf[0], len(buf))
		_, err := cache.Load(context.Background(), key)
		require.NoError(t, err)
		copy(buf, "b.json")

		records, err := cache.Load(context.Background(), "a.json")
		require.NoError(t, err)
		assert.Equal(t, "a.json", records[0].Name)
		assert.Equal(t, int32(1), loader.calls.Load())

		cache.Invalidate("a.json")
		_, err = cache.Load(context.Background(), "a.json")
		require.NoError(t, err)
		assert.Equal(t, int32(2), loader.calls.Load())
	})
}

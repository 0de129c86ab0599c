package cache

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func BenchmarkCache(b *testing.B) {
	c := NewWithTTL[*time.Time](time.Millisecond*100, func(_ context.Context, key string) (*time.Time, error) {
		t := time.Now()
		return &t, nil
	})

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	ctx := context.Background()

	for i := 0; i < b.N; i++ {
		_, _ = c.Load(ctx, strconv.Itoa(r.Intn(50)))
	}
}

func TestCache(t *testing.T) {
	ttl := time.Millisecond * 10
	c := NewWithTTL[*time.Time](ttl, func(_ context.Context, key string) (*time.Time, error) {
		t := time.Now()
		return &t, nil
	})

	wg := new(sync.WaitGroup)
	ctx := context.Background()

	go func() {
		c.Clean()
	}()

	for n := 0; n < 50; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r := rand.New(rand.NewSource(time.Now().UnixNano()))

			for i := 0; i < 10000; i++ {
				res, err := c.Load(ctx, strconv.Itoa(r.Intn(1000)))

				assert.NoError(t, err)
				assert.NotNil(t, res)
				// a value may age past ttl only while the caller is descheduled
				assert.Less(t, time.Since(*res), ttl+time.Millisecond*500)
			}
		}()
	}

	wg.Wait()
}

func TestCacheErrorNotStored(t *testing.T) {
	errMissing := errors.New("missing")

	var calls atomic.Int32
	present := false

	c := NewWithTTL[string](time.Minute, func(_ context.Context, key string) (string, error) {
		calls.Add(1)

		if !present {
			return "", errMissing
		}

		return "v:" + key, nil
	})

	ctx := context.Background()

	_, err := c.Load(ctx, "a")
	require.ErrorIs(t, err, errMissing)

	present = true

	v, err := c.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "v:a", v)

	v, err = c.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "v:a", v)
	assert.EqualValues(t, 2, calls.Load())

	c.Forget("a")

	_, err = c.Load(ctx, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())
}

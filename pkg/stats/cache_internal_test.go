package stats

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

func TestCacheLoadsOncePerPath(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})

	c := NewCache()
	c.load = func(path string) (*Dataset, error) {
		calls.Add(1)
		<-release
		return NewDataset(path, []Record{{Date: time.Now(), State: "Goa", DUI: 0.1, BUBI: 0.2}}), nil
	}

	var wg sync.WaitGroup
	results := make([]*Dataset, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ds, err := c.Load(context.Background(), "data.csv")
			assert.NoError(t, err)
			results[i] = ds
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, ds := range results {
		assert.Same(t, results[0], ds)
	}

	again, err := c.Load(context.Background(), "./data.csv")
	require.NoError(t, err)
	assert.Same(t, results[0], again)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, c.Loaded("data.csv"))
}

func TestCacheDoesNotRememberFailures(t *testing.T) {
	fail := true
	c := NewCache()
	c.load = func(path string) (*Dataset, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return NewDataset(path, []Record{{State: "Goa"}}), nil
	}

	_, err := c.Load(context.Background(), "data.csv")
	require.Error(t, err)
	assert.False(t, c.Loaded("data.csv"))

	fail = false
	ds, err := c.Load(context.Background(), "data.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
}

func TestCacheHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	c := NewCache()
	c.load = func(path string) (*Dataset, error) {
		<-release
		return nil, errors.New("too late")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Load(ctx, "slow.csv")
	require.ErrorIs(t, err, context.Canceled)
}

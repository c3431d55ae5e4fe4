package queue

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMPMC_ExactCapacity(t *testing.T) {
	q := New[int](3)
	assert.Equal(t, 3, q.Cap())

	assert.True(t, q.Offer(1))
	assert.True(t, q.Offer(2))
	assert.True(t, q.Offer(3))
	// ring is 4 wide but only 3 may be held
	assert.False(t, q.Offer(4))
	assert.Equal(t, 3, q.Len())

	v, ok := q.Poll()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.True(t, q.Offer(4))
	assert.Equal(t, 3, q.Len())
}

func TestMPMC_PollEmpty(t *testing.T) {
	q := New[string](1)
	v, ok := q.Poll()
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.Equal(t, 0, q.Len())
}

func TestMPMC_MinimumCapacity(t *testing.T) {
	q := New[int](0)
	assert.Equal(t, 1, q.Cap())
	assert.True(t, q.Offer(7))
	assert.False(t, q.Offer(8))
}

func TestMPMC_WrapAround(t *testing.T) {
	q := New[int](2)
	for i := 0; i < 100; i++ {
		require.True(t, q.Offer(i))
		v, ok := q.Poll()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	assert.Equal(t, 0, q.Len())
}

func TestMPMC_PollReleasesReference(t *testing.T) {
	q := New[*int](2)
	x := 42
	require.True(t, q.Offer(&x))
	_, ok := q.Poll()
	require.True(t, ok)
	for i := range q.cells {
		assert.Nil(t, q.cells[i].data)
	}
}

func TestMPMC_ConcurrentProducersConsumers(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	q := New[int](1000)
	producers := 10
	consumers := 10
	itemsPerProducer := 10000
	totalItems := int64(producers * itemsPerProducer)

	var sentSum, receivedSum, receivedCount int64
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			for i := 0; i < itemsPerProducer; i++ {
				val := pid*itemsPerProducer + i + 1
				for !q.Offer(val) {
					runtime.Gosched()
				}
				atomic.AddInt64(&sentSum, int64(val))
			}
		}(p)
	}

	var consumerWg sync.WaitGroup
	for c := 0; c < consumers; c++ {
		consumerWg.Add(1)
		go func() {
			defer consumerWg.Done()
			for {
				if val, ok := q.Poll(); ok {
					atomic.AddInt64(&receivedSum, int64(val))
					if atomic.AddInt64(&receivedCount, 1) == totalItems {
						return
					}
					continue
				}
				if atomic.LoadInt64(&receivedCount) >= totalItems {
					return
				}
				runtime.Gosched()
			}
		}()
	}

	wg.Wait()

	done := make(chan struct{})
	go func() {
		consumerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		assert.Equal(t, sentSum, receivedSum)
		assert.Equal(t, 0, q.Len())
	case <-time.After(10 * time.Second):
		t.Fatalf("timeout waiting for consumers, received %d/%d", atomic.LoadInt64(&receivedCount), totalItems)
	}
}

func TestMPMC_ConcurrentOfferNeverExceedsCapacity(t *testing.T) {
	q := New[int](16)
	var wg sync.WaitGroup
	var accepted atomic.Int64
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if q.Offer(i) {
					accepted.Add(1)
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(16), accepted.Load())
	assert.Equal(t, 16, q.Len())
}

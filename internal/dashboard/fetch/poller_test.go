package fetch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPollerRunsImmediately(t *testing.T) {
	var runs int32
	p := NewPoller(time.Hour, func(context.Context) { atomic.AddInt32(&runs, 1) })
	p.Start(context.Background())
	defer p.Stop()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) == 1 }, time.Second, time.Millisecond)
}

func TestPollerTicks(t *testing.T) {
	var runs int32
	p := NewPoller(10*time.Millisecond, func(context.Context) { atomic.AddInt32(&runs, 1) })
	p.Start(context.Background())

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 3 }, time.Second, time.Millisecond)
	p.Stop()

	after := atomic.LoadInt32(&runs)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&runs))
}

func TestPollerRunsNeverOverlap(t *testing.T) {
	var active, maxActive int32
	p := NewPoller(time.Millisecond, func(context.Context) {
		n := atomic.AddInt32(&active, 1)
		for {
			m := atomic.LoadInt32(&maxActive)
			if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&active, -1)
	})

	p.Start(context.Background())
	// Restarting must not leave a second loop behind.
	p.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	assert.EqualValues(t, 1, atomic.LoadInt32(&maxActive))
	assert.EqualValues(t, 0, atomic.LoadInt32(&active))
}

func TestPollerStopsWithContext(t *testing.T) {
	var runs int32
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoller(5*time.Millisecond, func(context.Context) { atomic.AddInt32(&runs, 1) })
	p.Start(ctx)

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 1 }, time.Second, time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
	after := atomic.LoadInt32(&runs)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&runs))
	assert.NoError(t, p.Close())
}

func TestPollerConcurrentStartKeepsOneLoop(t *testing.T) {
	var runs int32
	p := NewPoller(time.Millisecond, func(context.Context) { atomic.AddInt32(&runs, 1) })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Start(context.Background())
		}()
	}
	wg.Wait()
	p.Stop()

	after := atomic.LoadInt32(&runs)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&runs))
}

package fetch

import (
	"context"
	"sync"
	"time"

	"stock-forecast-dashboard/pkg/utils"
)

// Poller runs a task on a fixed interval. The first run happens as soon as
// the poller starts. Runs never overlap: ticks that fire while a run is in
// progress are dropped.
type Poller struct {
	interval time.Duration
	task     func(ctx context.Context)

	// mu is held across swap-and-stop so concurrent Start and Stop calls
	// serialize.
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a stopped poller.
func NewPoller(interval time.Duration, task func(ctx context.Context)) *Poller {
	return &Poller{interval: interval, task: task}
}

// Start begins polling until ctx is done or Stop is called. Starting a
// running poller restarts it, so at most one loop is ever active.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	utils.GoSafe(func() {
		defer close(done)
		p.loop(loopCtx)
	})
}

// Stop ends the loop and waits for the current run to return. The task
// must not call Start or Stop.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Poller) stopLocked() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel, p.done = nil, nil
}

// Close stops the poller. It always returns nil.
func (p *Poller) Close() error {
	p.Stop()
	return nil
}

func (p *Poller) loop(ctx context.Context) {
	p.task(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.task(ctx)
		}
	}
}

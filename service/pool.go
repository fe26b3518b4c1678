package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/ternarybob/arbor"
	"golang.org/x/sync/semaphore"
)

// Pool names used by the search pipeline.
const (
	DIRECTORY_POOL   = "directory"
	VENUE_CHECK_POOL = "venue-check"
	ENRICHMENT_POOL  = "enrichment"
)

// Pool is a named, bounded worker pool. One Pool is built at startup and
// shared by every request, so its size bounds concurrency process-wide.
type Pool struct {
	name   string
	size   int64
	sem    *semaphore.Weighted
	logger arbor.ILogger
}

// NewPool creates a pool allowing at most size concurrent tasks.
func NewPool(name string, size int, logger arbor.ILogger) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		name:   name,
		size:   int64(size),
		sem:    semaphore.NewWeighted(int64(size)),
		logger: logger,
	}
}

func (p *Pool) Name() string { return p.name }
func (p *Pool) Size() int    { return int(p.size) }

// Run executes task for i in [0, n) and blocks until all started tasks return.
// A panicking task is logged and does not affect its siblings. Tasks not yet
// started when ctx is cancelled are skipped.
func (p *Pool) Run(ctx context.Context, n int, task func(ctx context.Context, i int)) {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			p.logger.Warn().Err(err).Str("pool", p.name).Int("skipped", n-i).Msg("[Pool] Context done, skipping remaining tasks")
			break
		}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer p.sem.Release(1)
			defer func() {
				if r := recover(); r != nil {
					p.logger.Error().Err(fmt.Errorf("panic: %v", r)).Str("pool", p.name).Int("task", idx).Msg("[Pool] Task panicked")
				}
			}()
			task(ctx, idx)
		}(i)
	}
	wg.Wait()
}

// internal/app/system/workers/loop.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// loop runs job on a fixed interval until stopped. Each run gets its own
// context bounded by budget; a run that overlaps Stop is allowed to finish.
type loop struct {
	name     string
	interval time.Duration
	budget   time.Duration
	job      func(ctx context.Context)
	log      *zap.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func newLoop(name string, interval, budget time.Duration, logger *zap.Logger, job func(ctx context.Context)) *loop {
	return &loop{
		name:     name,
		interval: interval,
		budget:   budget,
		job:      job,
		log:      logger,
		stopCh:   make(chan struct{}),
	}
}

func (l *loop) start(fields ...zap.Field) {
	l.wg.Add(1)
	go l.run()
	l.log.Info(l.name+" worker started", append([]zap.Field{zap.Duration("interval", l.interval)}, fields...)...)
}

// stop is safe to call more than once.
func (l *loop) stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
	l.wg.Wait()
	l.log.Info(l.name + " worker stopped")
}

func (l *loop) run() {
	defer l.wg.Done()

	t := time.NewTicker(l.interval)
	defer t.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-t.C:
			ctx, cancel := context.WithTimeout(context.Background(), l.budget)
			l.job(ctx)
			cancel()
		}
	}
}

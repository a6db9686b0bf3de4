package memcache

import (
	"context"
	"log"
	"time"
)

// Интервалы фоновой чистки: штатный и укороченный после сбоя.
const (
	SweepInterval      = 300 * time.Second
	SweepRetryInterval = 60 * time.Second
)

// Sweeper периодически вычищает истёкшие записи. Сбой одного прохода
// (включая панику) логируется и укорачивает паузу до следующего,
// но никогда не валит процесс и не портит состояние кеша.
type Sweeper struct {
	cache    *Cache
	logger   *log.Logger
	interval time.Duration
	retry    time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewSweeper(c *Cache, interval time.Duration, logger *log.Logger) *Sweeper {
	if interval <= 0 {
		interval = SweepInterval
	}
	return &Sweeper{
		cache:    c,
		logger:   logger,
		interval: interval,
		retry:    SweepRetryInterval,
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.run(ctx)
	s.logger.Printf("sweeper started (interval=%s)", s.interval)
}

func (s *Sweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.logger.Println("sweeper stopped")
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		wait := s.interval
		if err := s.sweepOnce(); err != nil {
			s.logger.Printf("sweep failed: %v (retry in %s)", err, s.retry)
			wait = s.retry
		}
		timer.Reset(wait)
	}
}

// sweepOnce переводит панику в ошибку, чтобы цикл пережил любой сбой.
func (s *Sweeper) sweepOnce() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &sweepPanic{v: r}
		}
	}()
	s.cache.CleanupExpired()
	return nil
}

type sweepPanic struct{ v any }

func (p *sweepPanic) Error() string { return "panic during cleanup" }

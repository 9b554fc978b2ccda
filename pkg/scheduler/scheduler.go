// Package scheduler runs crawls periodically in background.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/crawler.go -pkg mocks -skip-ensure -fmt goimports . Crawler

// Crawler performs a single crawl of all projects
type Crawler interface {
	CrawlOnce(ctx context.Context) error
}

// Params holds scheduler dependencies and configuration
type Params struct {
	Crawler      Crawler
	Interval     time.Duration // time between crawls
	CrawlOnStart bool          // run a crawl right after Start
	CrawlTimeout time.Duration // optional limit of a single crawl
}

// Scheduler manages periodic crawls
type Scheduler struct {
	crawler      Crawler
	interval     time.Duration
	crawlOnStart bool
	crawlTimeout time.Duration

	trigger chan struct{}
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// NewScheduler creates a new scheduler instance
func NewScheduler(p Params) *Scheduler {
	if p.Interval <= 0 {
		p.Interval = time.Hour
	}
	return &Scheduler{
		crawler:      p.Crawler,
		interval:     p.Interval,
		crawlOnStart: p.CrawlOnStart,
		crawlTimeout: p.CrawlTimeout,
		trigger:      make(chan struct{}, 1),
	}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.crawlWorker(ctx)

	lgr.Printf("[INFO] scheduler started with crawl interval %v", s.interval)
}

// Stop gracefully stops the scheduler, waiting for the running crawl to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// CrawlNow requests an immediate crawl, ignored if one is already pending
func (s *Scheduler) CrawlNow() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// crawlWorker runs crawls on every tick and on demand
func (s *Scheduler) crawlWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if s.crawlOnStart {
		s.crawl(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.crawl(ctx)
		case <-s.trigger:
			s.crawl(ctx)
		}
	}
}

func (s *Scheduler) crawl(ctx context.Context) {
	if s.crawlTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.crawlTimeout)
		defer cancel()
	}
	start := time.Now()
	if err := s.crawler.CrawlOnce(ctx); err != nil {
		lgr.Printf("[WARN] crawl completed with errors in %v: %v", time.Since(start), err)
		return
	}
	lgr.Printf("[INFO] crawl completed in %v", time.Since(start))
}

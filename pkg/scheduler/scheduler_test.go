package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/wikifeedia/pkg/scheduler/mocks"
)

func TestNewScheduler(t *testing.T) {
	crawler := &mocks.CrawlerMock{}
	s := NewScheduler(Params{Crawler: crawler, Interval: 5 * time.Minute, CrawlOnStart: true})
	assert.Equal(t, 5*time.Minute, s.interval)
	assert.True(t, s.crawlOnStart)

	s = NewScheduler(Params{Crawler: crawler})
	assert.Equal(t, time.Hour, s.interval)
}

func TestScheduler_CrawlOnStartAndTicks(t *testing.T) {
	var calls atomic.Int32
	crawler := &mocks.CrawlerMock{
		CrawlOnceFunc: func(ctx context.Context) error {
			calls.Add(1)
			return nil
		},
	}
	s := NewScheduler(Params{Crawler: crawler, Interval: 20 * time.Millisecond, CrawlOnStart: true})
	s.Start(context.Background())

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	stopped := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load(), "no crawls after stop")
}

func TestScheduler_CrawlNow(t *testing.T) {
	done := make(chan struct{}, 10)
	crawler := &mocks.CrawlerMock{
		CrawlOnceFunc: func(ctx context.Context) error {
			done <- struct{}{}
			return errors.New("partial failure")
		},
	}
	s := NewScheduler(Params{Crawler: crawler, Interval: time.Hour})
	s.Start(context.Background())
	defer s.Stop()

	select {
	case <-done:
		t.Fatal("unexpected crawl without trigger")
	case <-time.After(30 * time.Millisecond):
	}

	s.CrawlNow()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("crawl not triggered")
	}
}

func TestScheduler_CrawlTimeout(t *testing.T) {
	deadline := make(chan bool, 1)
	crawler := &mocks.CrawlerMock{
		CrawlOnceFunc: func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			deadline <- ok
			<-ctx.Done()
			return ctx.Err()
		},
	}
	s := NewScheduler(Params{Crawler: crawler, Interval: time.Hour, CrawlOnStart: true, CrawlTimeout: 10 * time.Millisecond})
	s.Start(context.Background())
	defer s.Stop()

	select {
	case ok := <-deadline:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("crawl not started")
	}
}

func TestScheduler_StopInterruptsCrawl(t *testing.T) {
	started := make(chan struct{})
	crawler := &mocks.CrawlerMock{
		CrawlOnceFunc: func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		},
	}
	s := NewScheduler(Params{Crawler: crawler, Interval: time.Hour, CrawlOnStart: true})
	s.Start(context.Background())
	<-started

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("stop blocked")
	}
	assert.Len(t, crawler.CrawlOnceCalls(), 1)
}

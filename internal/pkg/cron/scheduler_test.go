package cron

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	s := NewScheduler(discardLogger())
	var runs atomic.Int32
	s.AddJob("count", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs after Stop")
}

func TestScheduler_FailuresDoNotStopJob(t *testing.T) {
	s := NewScheduler(discardLogger())
	var runs atomic.Int32
	s.AddJob("flaky", 5*time.Millisecond, func(ctx context.Context) error {
		if runs.Add(1)%2 == 0 {
			panic("boom")
		}
		return errors.New("failed")
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 4 }, time.Second, 5*time.Millisecond)
	s.Stop()
}

func TestScheduler_ParentCancellationStopsJobs(t *testing.T) {
	s := NewScheduler(discardLogger())
	ctx, cancel := context.WithCancel(context.Background())

	seen := make(chan struct{})
	s.AddJob("wait", time.Hour, func(ctx context.Context) error {
		close(seen)
		<-ctx.Done()
		return ctx.Err()
	})

	s.Start(ctx)
	<-seen
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(discardLogger())
	var a, b atomic.Int32
	s.AddJob("a", time.Hour, func(context.Context) error { a.Add(1); return nil })
	s.AddJob("b", time.Hour, func(context.Context) error { b.Add(1); return errors.New("ignored") })

	s.RunOnce(context.Background())
	assert.Equal(t, int32(1), a.Load())
	assert.Equal(t, int32(1), b.Load())
}

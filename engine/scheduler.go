package engine

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSchedulerClosed is returned by FrameScheduler.Next once the scheduler will release no more frames.
var ErrSchedulerClosed = errors.New("frame scheduler closed")

// FrameScheduler paces the render loop. Run calls Next exactly once before every step.
type FrameScheduler interface {
	// Next blocks until the next frame may run.
	//
	// Parameters:
	//   - ctx: cancelled when the loop is stopped
	//
	// Returns:
	//   - error: ctx.Err() on cancellation, ErrSchedulerClosed when no more frames will come
	Next(ctx context.Context) error

	// Close releases resources held by the scheduler and makes pending and future Next calls return.
	Close()
}

// tickerScheduler releases a frame on every tick of a time.Ticker.
type tickerScheduler struct {
	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

var _ FrameScheduler = &tickerScheduler{}

// NewTickerScheduler creates a scheduler releasing frames at a fixed rate.
//
// Parameters:
//   - fps: frames per second (defaults to 60 if <= 0)
//
// Returns:
//   - FrameScheduler: the scheduler
func NewTickerScheduler(fps float64) FrameScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &tickerScheduler{
		ticker: time.NewTicker(time.Duration(float64(time.Second) / fps)),
		done:   make(chan struct{}),
	}
}

func (s *tickerScheduler) Next(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrSchedulerClosed
	case <-s.ticker.C:
		return nil
	}
}

func (s *tickerScheduler) Close() {
	s.closeOnce.Do(func() {
		s.ticker.Stop()
		close(s.done)
	})
}

// ManualScheduler releases frames only when told to. Headless runs and tests use it to drive
// an exact number of steps.
type ManualScheduler interface {
	FrameScheduler

	// Release allows n more frames to run.
	//
	// Parameters:
	//   - n: the number of frames
	Release(n int)

	// Pending returns the number of released frames not yet consumed.
	Pending() int
}

type manualScheduler struct {
	mu      sync.Mutex
	pending int
	closed  bool
	signal  chan struct{}
}

var _ ManualScheduler = &manualScheduler{}

// NewManualScheduler creates a scheduler with no frames released.
//
// Returns:
//   - ManualScheduler: the scheduler
func NewManualScheduler() ManualScheduler {
	return &manualScheduler{signal: make(chan struct{}, 1)}
}

func (s *manualScheduler) notify() {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *manualScheduler) Release(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	s.pending += n
	s.mu.Unlock()
	s.notify()
}

func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Next consumes one released frame. After Close, frames released earlier are still handed out
// before ErrSchedulerClosed is returned.
func (s *manualScheduler) Next(ctx context.Context) error {
	for {
		s.mu.Lock()
		switch {
		case s.pending > 0:
			s.pending--
			s.mu.Unlock()
			return nil
		case s.closed:
			s.mu.Unlock()
			return ErrSchedulerClosed
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.signal:
		}
	}
}

func (s *manualScheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.notify()
}

// Package strand runs every mutation of a world.World on a single
// goroutine, serializing concurrent HTTP handlers through a request
// channel the same way the original serializes work through a boost::
// asio::strand. It also owns the game clock: either a self-re-arming
// ticker that measures real wall-clock elapsed time between firings
// (internal mode), or a purely external one driven by explicit Tick
// calls (used by the /api/v1/game/tick debug endpoint).
package strand

import (
	"context"
	"log"
	"time"

	"github.com/dogwalk/server/internal/game/world"
)

// Strand owns w exclusively once Run starts: every read or write of w
// from outside this package must go through Do or Tick.
type Strand struct {
	world  *world.World
	logger *log.Logger

	period time.Duration

	requests chan func()
}

// New builds a Strand for w. period <= 0 disables the internal ticker;
// callers must drive ticks with Tick instead.
func New(w *world.World, period time.Duration, logger *log.Logger) *Strand {
	return &Strand{
		world:    w,
		logger:   logger,
		period:   period,
		requests: make(chan func(), 64),
	}
}

// Do runs fn on the strand and blocks until it completes. Safe to call
// concurrently from many goroutines (e.g. HTTP handlers).
func (s *Strand) Do(fn func()) {
	done := make(chan struct{})
	s.requests <- func() {
		fn()
		close(done)
	}
	<-done
}

// Tick advances the world by exactly deltaMs on the strand. Used by
// external tick-mode callers; the internal ticker in Run calls runTick
// directly, since it already runs on the strand goroutine.
func (s *Strand) Tick(deltaMs uint64) {
	s.Do(func() {
		s.runTick(deltaMs)
	})
}

// runTick must only be called from the strand goroutine.
func (s *Strand) runTick(deltaMs uint64) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("recovered panic during tick: %v", r)
		}
	}()
	s.world.GameTick(deltaMs)
}

// Run processes requests until ctx is cancelled, additionally firing
// Tick automatically every period of wall-clock time if period > 0.
// Each firing measures the actual elapsed time since the previous one,
// so jitter in the scheduler never desyncs simulated time from wall
// time.
func (s *Strand) Run(ctx context.Context) {
	var timerC <-chan time.Time
	var timer *time.Timer
	var lastTick time.Time

	if s.period > 0 {
		timer = time.NewTimer(s.period)
		defer timer.Stop()
		timerC = timer.C
		lastTick = time.Now()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-s.requests:
			req()
		case now := <-timerC:
			delta := now.Sub(lastTick)
			lastTick = now
			s.runTick(uint64(delta.Milliseconds()))
			timer.Reset(s.period)
		}
	}
}

// Package loop runs games headless: a paced frame loop that feeds queued
// intents to a game and polls its state, plus a random-intent autopilot.
package loop

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

// Pacer holds each frame to a fixed budget: the caller measures its work and
// the pacer sleeps out the remainder.
type Pacer struct {
	frame time.Duration
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPacer creates a pacer for frameRate frames per second. With a
// *core.ManualTime source the pacer advances that clock instead of sleeping,
// so simulations run as fast as the CPU allows.
func NewPacer(frameRate int, ts core.TimeSource) *Pacer {
	if frameRate <= 0 {
		frameRate = core.DefaultFrameRate
	}
	if ts == nil {
		ts = core.SystemTime{}
	}
	p := &Pacer{
		frame: time.Second / time.Duration(frameRate),
		now:   ts.Now,
		sleep: sleepCtx,
	}
	if manual, ok := ts.(*core.ManualTime); ok {
		p.sleep = func(ctx context.Context, d time.Duration) error {
			manual.Advance(d)
			return ctx.Err()
		}
	}
	return p
}

// Frame returns the frame budget.
func (p *Pacer) Frame() time.Duration { return p.frame }

// Now returns the pacer's current time.
func (p *Pacer) Now() time.Time { return p.now() }

// Wait sleeps for whatever is left of the frame that began at start. An
// overrun frame returns immediately.
func (p *Pacer) Wait(ctx context.Context, start time.Time) error {
	remaining := p.frame - p.now().Sub(start)
	if remaining <= 0 {
		return ctx.Err()
	}
	return p.sleep(ctx, remaining)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Options configures a headless run.
type Options struct {
	FrameRate int
	// MaxFrames stops the run after this many frames; 0 runs until game over.
	MaxFrames uint64
	Time      core.TimeSource
	Logger    *log.Logger
	// Lockstep, when set, is polled for intents once per frame.
	Lockstep *Lockstep
}

// Lockstep connects Run to an intent producer on another goroutine. Each
// frame Run sends the frame's start time on Ticks and applies the batch it
// receives on Batches before updating the game. Run closes Ticks when it
// returns; a closed Batches ends the exchange.
type Lockstep struct {
	Ticks   chan<- time.Time
	Batches <-chan []core.Action
}

// exchange hands now to the producer and returns its batch. A nil batch
// with ok false means the producer is gone.
func (l *Lockstep) exchange(ctx context.Context, now time.Time) (batch []core.Action, ok bool, err error) {
	select {
	case l.Ticks <- now:
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
	select {
	case batch, ok = <-l.Batches:
		return batch, ok, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// Stats summarizes a run.
type Stats struct {
	Frames  uint64
	Cycles  uint64
	Score   int
	Level   int
	Phase   core.Phase
	Elapsed time.Duration
}

// Run drives game frame by frame until it is over, MaxFrames is reached or
// ctx is cancelled. Actions from the lockstep producer and from intents are
// applied before the frame that follows them. The game must already be Reset.
func Run(ctx context.Context, game registry.Game, intents <-chan core.Action, opts Options) (Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	pacer := NewPacer(opts.FrameRate, opts.Time)
	framesPerSecond := uint64(time.Second / pacer.Frame())

	lockstep := opts.Lockstep
	polling := lockstep != nil
	if polling {
		defer close(lockstep.Ticks)
	}

	var st Stats
	began := pacer.Now()
	logger.Info("game started", "game", game.ID())

	for opts.MaxFrames == 0 || st.Frames < opts.MaxFrames {
		start := pacer.Now()

		if polling {
			batch, ok, err := lockstep.exchange(ctx, start)
			if err != nil {
				st.Elapsed = pacer.Now().Sub(began)
				return st, fmt.Errorf("loop: %s: %w", game.ID(), err)
			}
			polling = ok
			for _, a := range batch {
				game.Handle(a)
			}
		}

	drain:
		for {
			select {
			case a, ok := <-intents:
				if !ok {
					intents = nil
					break drain
				}
				game.Handle(a)
			default:
				break drain
			}
		}

		res := game.Update()
		st.Frames++
		st.Cycles += uint64(res.Cycles)
		st.Score, st.Level, st.Phase = res.State.Score, res.State.Level, res.State.Phase

		if st.Frames%framesPerSecond == 0 {
			logger.Debug("frame stats", "frames", st.Frames, "cycles", st.Cycles, "score", st.Score, "phase", st.Phase)
		}
		if res.State.GameOver() {
			break
		}

		if err := pacer.Wait(ctx, start); err != nil {
			st.Elapsed = pacer.Now().Sub(began)
			return st, fmt.Errorf("loop: %s: %w", game.ID(), err)
		}
	}

	st.Elapsed = pacer.Now().Sub(began)
	logger.Info("game finished",
		"game", game.ID(),
		"phase", st.Phase,
		"score", st.Score,
		"level", st.Level,
		"frames", st.Frames,
		"cycles", st.Cycles,
	)
	return st, nil
}

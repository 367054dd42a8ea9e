package loop

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

// intentsFor lists the actions the autopilot may press for a game.
func intentsFor(gameID string) []core.Action {
	switch gameID {
	case "tetris":
		return []core.Action{
			core.ActionLeft, core.ActionRight,
			core.ActionRotateCW, core.ActionRotateCCW,
			core.ActionSoftDrop, core.ActionSoftDropEnd,
		}
	default:
		return []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}
	}
}

// Autopilot presses a random intent every interval of frame time. It answers
// each frame time received on ticks with the presses that came due since the
// previous one (often none) and stops when ticks is closed or ctx is done.
// The presses depend only on rng and the frame times, so a run driven by a
// manual clock replays exactly for a given seed.
func Autopilot(ctx context.Context, gameID string, rng *rand.Rand, interval time.Duration, ticks <-chan time.Time, out chan<- []core.Action) error {
	defer close(out)
	actions := intentsFor(gameID)

	var next time.Time
	for {
		var now time.Time
		select {
		case <-ctx.Done():
			return nil
		case t, ok := <-ticks:
			if !ok {
				return nil
			}
			now = t
		}

		if next.IsZero() {
			next = now.Add(interval)
		}
		var batch []core.Action
		for !now.Before(next) {
			batch = append(batch, actions[rng.Intn(len(actions))])
			next = next.Add(interval)
		}

		select {
		case out <- batch:
		case <-ctx.Done():
			return nil
		}
	}
}

// SimOptions configures Simulate.
type SimOptions struct {
	Options
	Seed int64
	// Interval between autopilot key presses, in frame time.
	Interval time.Duration
}

// Simulate starts a game and plays it with the autopilot: one goroutine
// generates intents in lockstep with the frame loop running on another. It
// returns when the game ends, the frame limit is hit or ctx is cancelled.
func Simulate(ctx context.Context, game registry.Game, opts SimOptions) (Stats, error) {
	if opts.Interval <= 0 {
		opts.Interval = 150 * time.Millisecond
	}
	game.Reset(core.RuntimeConfig{
		ScreenW:   core.DefaultConfig().ScreenW,
		ScreenH:   core.DefaultConfig().ScreenH,
		FrameRate: opts.FrameRate,
		Seed:      opts.Seed,
		Time:      opts.Time,
	})
	game.Handle(core.ActionConfirm)

	g, gctx := errgroup.WithContext(ctx)
	ticks := make(chan time.Time)
	batches := make(chan []core.Action)
	opts.Lockstep = &Lockstep{Ticks: ticks, Batches: batches}

	g.Go(func() error {
		return Autopilot(gctx, game.ID(), rand.New(rand.NewSource(opts.Seed+1)), opts.Interval, ticks, batches)
	})

	var st Stats
	g.Go(func() error {
		var err error
		st, err = Run(gctx, game, nil, opts.Options)
		return err
	})

	err := g.Wait()
	return st, err
}

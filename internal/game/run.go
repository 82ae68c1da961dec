package game

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/spritewalk/internal/input"
	"github.com/plus3/spritewalk/internal/logging"
	"github.com/plus3/spritewalk/internal/render"
)

// Pacer holds a loop to a fixed tick budget by sleeping for whatever is left
// of it. Overruns are not made up on later ticks.
type Pacer struct {
	Budget time.Duration

	now   func() time.Time
	sleep func(time.Duration)
	start time.Time
}

func NewPacer(tps int) *Pacer {
	return &Pacer{
		Budget: time.Second / time.Duration(tps),
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// Begin marks the start of a tick.
func (p *Pacer) Begin() {
	p.start = p.now()
}

// Wait sleeps until the budget since Begin is used up and returns the time slept.
func (p *Pacer) Wait() time.Duration {
	remaining := p.Budget - p.now().Sub(p.start)
	if remaining <= 0 {
		return 0
	}
	p.sleep(remaining)
	return remaining
}

// Run drives loop from source until it terminates, ctx is cancelled, or
// maxTicks ticks have run (0 means no limit). A nil pacer runs unthrottled.
// Rendering errors stop the loop and are returned. Run logs through the
// logger carried by ctx.
func Run(ctx context.Context, loop *Loop, source input.Source, canvas render.Canvas, pacer *Pacer, maxTicks uint64) error {
	log := logging.FromContext(ctx)
	for {
		if err := ctx.Err(); err != nil {
			log.Info("run interrupted", zap.Uint64("tick", loop.Ticks()), zap.Error(err))
			return err
		}

		if pacer != nil {
			pacer.Begin()
		}

		events := source.Poll(loop.Ticks())
		if loop.Step(events) == Terminated {
			return nil
		}

		if err := loop.Render(canvas); err != nil {
			log.Error("render failed", zap.Uint64("tick", loop.Ticks()), zap.Error(err))
			return err
		}

		if maxTicks > 0 && loop.Ticks() >= maxTicks {
			log.Info("tick limit reached", zap.Uint64("ticks", maxTicks))
			return nil
		}

		var slept time.Duration
		if pacer != nil {
			slept = pacer.Wait()
		}
		if ce := log.Check(zap.DebugLevel, "tick"); ce != nil {
			ce.Write(
				zap.Uint64("tick", loop.Ticks()),
				zap.Int("events", len(events)),
				zap.Duration("slept", slept),
			)
		}
	}
}

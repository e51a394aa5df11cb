package scenario

import (
	"go.uber.org/zap"

	"github.com/wippyai/droptrace/errors"
	"github.com/wippyai/droptrace/lifetime"
	"github.com/wippyai/droptrace/trace"
)

// Runner executes scenarios in order, each against its own runtime.
type Runner struct {
	trace  *trace.Recorder
	logger *zap.Logger
}

// NewRunner creates a runner that reports into rec. A nil logger disables
// logging.
func NewRunner(rec *trace.Recorder, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{trace: rec, logger: logger}
}

// Run executes scenarios sequentially. A scenario that leaves guards
// unreleased is reported as a leak after its leftovers are released.
func (r *Runner) Run(scenarios []Scenario) error {
	for _, sc := range scenarios {
		if err := r.runOne(sc); err != nil {
			return err
		}
	}
	return r.trace.Err()
}

func (r *Runner) runOne(sc Scenario) error {
	rt := lifetime.NewRuntime()
	rt.Subscribe(r.trace)

	r.trace.Header(sc.Title)
	r.logger.Debug("scenario started", zap.String("scenario", sc.Name))

	sc.Run(&Env{Runtime: rt, Trace: r.trace})

	live := rt.Live()
	if err := rt.Close(); err != nil {
		return errors.Wrap(errors.PhaseScope, errors.KindInvalidInput, err, "close runtime for scenario "+sc.Name)
	}
	if live > 0 {
		r.logger.Warn("scenario leaked guards",
			zap.String("scenario", sc.Name),
			zap.Int("live", live))
		return errors.Leak([]string{sc.Name}, live)
	}

	r.logger.Debug("scenario finished", zap.String("scenario", sc.Name))
	return nil
}

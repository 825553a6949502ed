package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Laaxxmm/Pomodoro/usecase/planner"
)

// RolloverScheduler triggers the planner's rollover once per day boundary.
// The engine itself is trigger-agnostic; this is the periodic caller the
// design expects. Running the job more than once per day would advance
// tasks more than one day, so the schedule must fire once per boundary.
type RolloverScheduler struct {
	planner *planner.UseCase
	spec    string
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewRolloverScheduler wires the daily trigger. The spec is a cron
// expression with a seconds field; it defaults to UTC midnight.
func NewRolloverScheduler(uc *planner.UseCase, spec string, logger *zap.Logger) *RolloverScheduler {
	if spec == "" {
		spec = "0 0 0 * * *"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RolloverScheduler{
		planner: uc,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds(), cron.WithLocation(time.UTC)),
		logger:  logger,
	}
}

func (s *RolloverScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		// Empty user rolls over every scope in one pass.
		result, err := s.planner.Rollover(ctx, "")
		if err != nil {
			s.logger.Error("scheduled rollover failed", zap.Error(err))
			return
		}
		s.logger.Info("scheduled rollover done",
			zap.Int("rolled_over", result.RolledOver),
			zap.String("new_date", result.NewDate))
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("rollover scheduler started", zap.String("spec", s.spec))
	return nil
}

func (s *RolloverScheduler) Stop(ctx context.Context) {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("rollover scheduler stopped")
}

package job

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/schedcu/rotacheck/internal/repository"

	"go.uber.org/zap"
)

// StaleRunMaxAge is the age, in days, past which the sweeper removes a
// terminal (COMPLETE or FAILED) OptimizerRun via CleanupOldRuns. Runs still
// in a non-terminal state are kept whatever their age.
const StaleRunMaxAge = 7

// Sweeper periodically clears old terminal OptimizerRun records via
// repository.OptimizerRunRepository.CleanupOldRuns, using the same
// cron.New()-plus-AddFunc pattern as the rest of this package's
// scheduled maintenance jobs.
type Sweeper struct {
	cron *cron.Cron
	db   repository.Database
	log  *zap.SugaredLogger
}

// NewSweeper builds a Sweeper that has not yet been started.
func NewSweeper(db repository.Database, log *zap.SugaredLogger) *Sweeper {
	return &Sweeper{cron: cron.New(), db: db, log: log}
}

// Start schedules the sweep to run once a day and starts the cron loop in
// its own goroutine.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc("@daily", s.sweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron loop, waiting for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.db.OptimizerRunRepository().CleanupOldRuns(ctx, StaleRunMaxAge)
	if err != nil {
		s.log.Errorw("stale optimizer run sweep failed", "error", err)
		return
	}
	s.log.Infow("swept stale optimizer runs", "count", n)
}

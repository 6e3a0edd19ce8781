// Package sweeper owns the recurring job that purges expired links from
// the store.
package sweeper

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/Buddhisha1997/linkshoter/repository"
)

const sweepTimeout = 30 * time.Second

type Sweeper struct {
	db        repository.Repository
	log       *zap.Logger
	scheduler gocron.Scheduler
	job       gocron.Job
}

// New builds a sweeper that purges once per interval. Nothing runs until
// Start is called; the first sweep fires one interval after that.
func New(db repository.Repository, log *zap.Logger, interval time.Duration) (*Sweeper, error) {
	s := &Sweeper{db: db, log: log}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	s.scheduler = scheduler

	job, err := scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.sweep),
	)
	if err != nil {
		return nil, err
	}
	s.job = job

	return s, nil
}

func (s *Sweeper) Start() {
	s.scheduler.Start()
}

// Shutdown stops the schedule and waits for an in-flight sweep to finish.
func (s *Sweeper) Shutdown() error {
	return s.scheduler.Shutdown()
}

// sweep removes expired links. Failures are logged and left for the next
// tick; the schedule itself keeps running.
func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	deleted, err := s.db.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error("failed to delete expired links", zap.Error(err))
		return
	}
	if deleted > 0 {
		s.log.Info("deleted expired links", zap.Int64("count", deleted))
	}
}

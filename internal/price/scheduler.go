package price

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type fetchFunc func(ctx context.Context, execID string) error

// Scheduler re-runs the price fetch on a fixed interval.
type Scheduler struct {
	fetch    fetchFunc
	interval time.Duration
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		if fetchErr := s.fetch(jobCtx, execID); fetchErr != nil {
			logrus.WithError(fetchErr).WithField("exec_id", execID).Error("Scheduled price fetch failed")
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
	scheduler.Start()

	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func NewScheduler(fetcher *Fetcher, interval time.Duration) *Scheduler {
	return &Scheduler{
		fetch: func(ctx context.Context, execID string) error {
			_, err := fetcher.fetchAndPersist(ctx, execID)
			return err
		},
		interval: interval,
	}
}

package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/terraincognita07/samaan/internal/observability"
	"github.com/terraincognita07/samaan/internal/services"
)

// DigestBuilder produces the report for the period before today.
type DigestBuilder interface {
	BuildPeriodDigest(today time.Time) (services.PeriodDigest, error)
}

// Scheduler runs the period digest on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	digests  DigestBuilder
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time

	mu   sync.Mutex
	last *services.PeriodDigest
}

// New creates a scheduler. An empty schedule yields a scheduler whose Start
// is a no-op.
func New(schedule string, location *time.Location, digests DigestBuilder, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		schedule: schedule,
		digests:  digests,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

// Enabled reports whether a digest schedule is configured.
func (s *Scheduler) Enabled() bool {
	return s.schedule != ""
}

// Start registers the digest job and starts the cron loop.
func (s *Scheduler) Start() error {
	if !s.Enabled() {
		s.logger.Info("digest schedule disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runDigest); err != nil {
		return fmt.Errorf("schedule digest %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if !s.Enabled() {
		return
	}
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// LastDigest returns the most recent digest produced by the job.
func (s *Scheduler) LastDigest() (services.PeriodDigest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return services.PeriodDigest{}, false
	}
	return *s.last, true
}

func (s *Scheduler) runDigest() {
	today := s.now().In(s.location)
	s.logger.Info("building period digest", zap.Time("today", today))

	digest, err := s.digests.BuildPeriodDigest(today)
	if err != nil {
		s.logger.Error("failed to build period digest", zap.Error(err))
		return
	}

	progress := digest.Progress
	fields := []zap.Field{
		zap.String("from", services.FormatCalendarDay(progress.Range.Start)),
		zap.String("to", services.FormatCalendarDay(progress.Range.End)),
		zap.Int("total_net_calories", progress.TotalNetCalories),
		zap.Bool("has_goal", progress.HasGoal),
	}
	if progress.Evaluation != nil {
		delta := progress.Evaluation.Delta
		fields = append(fields, zap.String("delta", delta.StringFixed(2)))
		observability.RecordPeriodDigest(progress.TotalNetCalories, &delta)
	} else {
		observability.RecordPeriodDigest(progress.TotalNetCalories, nil)
	}
	s.logger.Info("period digest ready", fields...)

	s.mu.Lock()
	s.last = &digest
	s.mu.Unlock()
}

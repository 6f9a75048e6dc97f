package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmsim/internal/config"
	"github.com/mamadbah2/farmsim/internal/domain/farm"
)

// StatusSource provides the snapshot the report is built from.
type StatusSource interface {
	Status() farm.Status
}

// Summarizer renders a snapshot as a short message.
type Summarizer interface {
	Summary(status farm.Status) string
}

// Notifier delivers the message to the players.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Scheduler pushes a farm status summary on a cron schedule. It only
// reports: days advance when players sleep.
type Scheduler struct {
	cron       *cron.Cron
	spec       string
	status     StatusSource
	summarizer Summarizer
	notifier   Notifier
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, status StatusSource, summarizer Summarizer, notifier Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
	if _, err := cron.ParseStandard(cfg.CronSchedule); err != nil {
		return nil, fmt.Errorf("parse cron schedule %q: %w", cfg.CronSchedule, err)
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		spec:       cfg.CronSchedule,
		status:     status,
		summarizer: summarizer,
		notifier:   notifier,
		logger:     logger,
	}, nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.spec))

	if _, err := s.cron.AddFunc(s.spec, s.sendStatusReport); err != nil {
		return fmt.Errorf("schedule status report: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running report to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendStatusReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	s.SendStatusReport(ctx)
}

// SendStatusReport builds and sends one summary now.
func (s *Scheduler) SendStatusReport(ctx context.Context) {
	st := s.status.Status()
	s.logger.Info("sending status report", zap.Int("day", st.Day))

	if err := s.notifier.Notify(ctx, s.summarizer.Summary(st)); err != nil {
		s.logger.Error("failed to send status report", zap.Error(err))
		return
	}
	s.logger.Info("status report sent successfully")
}

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// DigestSource produces the digest for the day containing now.
type DigestSource interface {
	Digest(now time.Time) models.DailyDigest
}

// DigestSender delivers a digest to the owner.
type DigestSender interface {
	SendDigest(ctx context.Context, digest models.DailyDigest) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	location *time.Location
	source   DigestSource
	sender   DigestSender
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a scheduler running in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, source DigestSource, sender DigestSender, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: cfg.CronSchedule,
		location: loc,
		source:   source,
		sender:   sender,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Start registers the daily digest and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("timezone", s.location.String()))

	if _, err := s.cron.AddFunc(s.schedule, s.sendDailyDigest); err != nil {
		return fmt.Errorf("schedule daily digest %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendDailyDigest() {
	s.logger.Info("generating daily digest")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	digest := s.source.Digest(s.now().In(s.location))
	if err := s.sender.SendDigest(ctx, digest); err != nil {
		s.logger.Error("failed to send daily digest", zap.Error(err))
		return
	}
	s.logger.Info("daily digest sent",
		zap.Int("receipts", digest.ReceiptCount),
		zap.Int("low_stock", digest.Inventory.LowStockCount))
}

package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/satyammall/stockledger/internal/config"
	"github.com/satyammall/stockledger/internal/domain/models"
	"github.com/satyammall/stockledger/internal/repository/mongodb"
	"github.com/satyammall/stockledger/internal/service/report"
)

// Scheduler archives one aggregated snapshot per day into MongoDB.
type Scheduler struct {
	cron    *cron.Cron
	reports *report.Service
	archive mongodb.Archive
	cfg     config.ReportingConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewScheduler creates a new scheduler instance. The cron runs in the
// configured timezone so "yesterday" means the mall's calendar day.
func NewScheduler(cfg config.ReportingConfig, reports *report.Service, archive mongodb.Archive, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []cron.Option{}
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		opts = append(opts, cron.WithLocation(loc))
	} else {
		logger.Warn("unknown timezone, scheduler falls back to local time", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	return &Scheduler{
		cron:    cron.New(opts...),
		reports: reports,
		archive: archive,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// Start registers and starts the daily archive job.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.archiveYesterday); err != nil {
		s.logger.Error("failed to schedule daily snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) archiveYesterday() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	yesterday := s.now().AddDate(0, 0, -1)
	s.logger.Info("archiving daily snapshot", zap.String("date", yesterday.Format("2006-01-02")))

	rep, err := s.reports.Build(ctx, report.Filter{Start: &yesterday, End: &yesterday})
	if err != nil {
		s.logger.Error("failed to build daily snapshot", zap.Error(err))
		return
	}

	snapshot := models.DailySnapshot{
		Date:         yesterday,
		Transactions: len(rep.Transactions),
		Summary:      rep.Summary,
		CreatedAt:    s.now(),
	}

	if err := s.archive.SaveDailySnapshot(ctx, snapshot); err != nil {
		s.logger.Error("failed to archive daily snapshot", zap.Error(err))
		return
	}

	s.logger.Info("daily snapshot archived",
		zap.Int("transactions", snapshot.Transactions),
		zap.Int("floors", len(snapshot.Summary.Floors)))
}

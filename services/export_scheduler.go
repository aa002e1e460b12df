package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const scheduledExportTimeout = 2 * time.Minute

type TodayExporter interface {
	ExportToday(ctx context.Context) (*ExportResult, error)
}

// ExportScheduler runs the daily export on a cron spec, e.g. "0 21 * * *".
type ExportScheduler struct {
	cron     *cron.Cron
	exporter TodayExporter
	logger   *slog.Logger
}

func NewExportScheduler(spec string, loc *time.Location, exporter TodayExporter, logger *slog.Logger) (*ExportScheduler, error) {
	s := &ExportScheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		exporter: exporter,
		logger:   logger,
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid export schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *ExportScheduler) Start() {
	s.cron.Start()
	s.logger.Info("export scheduler started")
}

// Stop prevents new runs and waits for a running export to finish.
func (s *ExportScheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *ExportScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), scheduledExportTimeout)
	defer cancel()

	result, err := s.exporter.ExportToday(ctx)
	if err != nil {
		s.logger.Error("scheduled export failed", "error", err)
		return
	}
	s.logger.Info("scheduled export",
		"date", result.Date,
		"message", result.Message,
		"new_exports", result.NewExports,
	)
}

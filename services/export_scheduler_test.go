package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExporter struct {
	calls int
	err   error
}

func (c *countingExporter) ExportToday(ctx context.Context) (*ExportResult, error) {
	c.calls++
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("missing deadline")
	}
	if c.err != nil {
		return nil, c.err
	}
	return &ExportResult{Date: "2026-10-15", Message: msgAlreadyExported}, nil
}

func TestNewExportSchedulerRejectsBadSpec(t *testing.T) {
	_, err := NewExportScheduler("every evening", time.UTC, &countingExporter{}, discardLogger())
	assert.ErrorContains(t, err, "invalid export schedule")
}

func TestExportSchedulerRun(t *testing.T) {
	exporter := &countingExporter{}
	s, err := NewExportScheduler("0 21 * * *", time.UTC, exporter, discardLogger())
	require.NoError(t, err)

	s.run()
	exporter.err = errors.New("sheet unavailable")
	s.run()

	assert.Equal(t, 2, exporter.calls)
}

func TestExportSchedulerStartStop(t *testing.T) {
	s, err := NewExportScheduler("@every 1h", time.UTC, &countingExporter{}, discardLogger())
	require.NoError(t, err)

	s.Start()
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}

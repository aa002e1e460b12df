package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"capster-board/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeekly, p)

	p, err = ParsePeriod("monthly")
	require.NoError(t, err)
	assert.Equal(t, PeriodMonthly, p)

	_, err = ParsePeriod("yearly")
	assert.ErrorIs(t, err, ErrUnknownPeriod)
}

func TestPeriodWindow(t *testing.T) {
	tests := []struct {
		name   string
		period Period
		now    time.Time
		start  string
		end    string
	}{
		{"weekly on wednesday", PeriodWeekly, time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC), "2026-10-12", "2026-10-14"},
		{"weekly on sunday", PeriodWeekly, time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC), "2026-10-12", "2026-10-18"},
		{"weekly on monday", PeriodWeekly, time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC), "2026-10-12", "2026-10-12"},
		{"monthly", PeriodMonthly, time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC), "2026-10-01", "2026-10-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.period.Window(tt.now)
			assert.Equal(t, tt.start, start.Format(models.DateLayout))
			assert.Equal(t, tt.end, end.Format(models.DateLayout))
		})
	}
}

func TestGetSummary(t *testing.T) {
	store := &stubAppointments{rows: []models.Appointment{
		appointment(1, johnDoe, "10:00:00", "Haircut", budi),
		appointment(2, johnDoe, "10:00:00", "Shave", budi),
		appointment(3, siti, "10:30:00", "Haircut", andi),
		appointment(4, siti, "11:30:00", "", andi),
	}}
	store.rows[3].Date = "2026-10-13"

	svc := NewSummaryService(store)
	svc.Now = func() time.Time { return time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC) }

	summary, err := svc.GetSummary(context.Background(), PeriodWeekly)

	require.NoError(t, err)
	assert.Equal(t, models.Date("2026-10-12"), store.start)
	assert.Equal(t, models.Date("2026-10-14"), store.end)
	assert.Equal(t, PeriodWeekly, summary.Period)
	assert.Equal(t, 3, summary.Days)
	assert.Equal(t, 4, summary.TotalAppointments)
	assert.Equal(t, 4, summary.TotalTreatments)
	assert.Equal(t, 2, summary.TotalCustomers)
	assert.Equal(t, map[string]int{"2026-10-15": 3, "2026-10-13": 1}, summary.DailyBreakdown)
	assert.Equal(t, map[string]int{"Haircut": 2, "Shave": 1}, summary.PopularTreatments)
	assert.Equal(t, map[string]int{"Budi": 2, "Andi": 2}, summary.PopularCapsters)
	assert.Zero(t, summary.Revenue)
}

func TestGetSummaryEmptyPeriod(t *testing.T) {
	svc := NewSummaryService(&stubAppointments{})
	svc.Now = fixedNow

	summary, err := svc.GetSummary(context.Background(), PeriodMonthly)

	require.NoError(t, err)
	assert.Equal(t, 15, summary.Days)
	assert.Zero(t, summary.TotalCustomers)
	assert.NotNil(t, summary.DailyBreakdown)
	assert.Empty(t, summary.PopularTreatments)
}

func TestGetSummaryStoreError(t *testing.T) {
	svc := NewSummaryService(&stubAppointments{err: errors.New("timeout")})
	svc.Now = fixedNow

	_, err := svc.GetSummary(context.Background(), PeriodWeekly)
	assert.ErrorContains(t, err, "timeout")
}

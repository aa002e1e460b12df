package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"capster-board/models"
	"capster-board/utils"
)

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

var ErrUnknownPeriod = errors.New("type must be weekly or monthly")

// ParsePeriod reads the summary type; an empty value means weekly.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "", PeriodWeekly:
		return PeriodWeekly, nil
	case PeriodMonthly:
		return PeriodMonthly, nil
	default:
		return "", ErrUnknownPeriod
	}
}

// Window returns the inclusive first and last day covered by the period
// ending at now: Monday..today for weekly, the 1st..today for monthly.
func (p Period) Window(now time.Time) (start, end time.Time) {
	end = utils.BeginningOfDay(now)
	if p == PeriodMonthly {
		return utils.StartOfMonth(now), end
	}
	return utils.StartOfWeek(now), end
}

type AppointmentRangeReader interface {
	ListBetween(ctx context.Context, start, end models.Date) ([]models.Appointment, error)
}

type Summary struct {
	Period            Period         `json:"period"`
	StartDate         models.Date    `json:"startDate"`
	EndDate           models.Date    `json:"endDate"`
	Days              int            `json:"days"`
	TotalAppointments int            `json:"totalAppointments"`
	TotalCustomers    int            `json:"totalCustomers"`
	TotalTreatments   int            `json:"totalTreatments"`
	DailyBreakdown    map[string]int `json:"dailyBreakdown"`
	PopularTreatments map[string]int `json:"popularTreatments"`
	PopularCapsters   map[string]int `json:"popularCapsters"`
	// Revenue stays 0 until treatments carry prices.
	Revenue float64 `json:"revenue"`
}

type SummaryService struct {
	appointments AppointmentRangeReader
	Now          func() time.Time
}

func NewSummaryService(appointments AppointmentRangeReader) *SummaryService {
	return &SummaryService{appointments: appointments, Now: time.Now}
}

func (s *SummaryService) GetSummary(ctx context.Context, period Period) (*Summary, error) {
	start, end := period.Window(s.Now())
	startDate, endDate := models.DateOf(start), models.DateOf(end)

	appointments, err := s.appointments.ListBetween(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("load appointments %s..%s: %w", startDate, endDate, err)
	}
	return summarize(period, startDate, endDate, utils.DaysBetween(start, end)+1, appointments), nil
}

func summarize(period Period, start, end models.Date, days int, appointments []models.Appointment) *Summary {
	summary := &Summary{
		Period:            period,
		StartDate:         start,
		EndDate:           end,
		Days:              days,
		TotalAppointments: len(appointments),
		TotalTreatments:   len(appointments),
		DailyBreakdown:    map[string]int{},
		PopularTreatments: map[string]int{},
		PopularCapsters:   map[string]int{},
	}

	customers := map[int64]struct{}{}
	for _, a := range appointments {
		customers[a.CustomerID] = struct{}{}
		summary.DailyBreakdown[string(a.Date)]++
		if name := a.TreatmentName(); name != "" {
			summary.PopularTreatments[name]++
		}
		if name := a.CapsterName(); name != "" {
			summary.PopularCapsters[name]++
		}
	}
	summary.TotalCustomers = len(customers)
	return summary
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"capster-board/metrics"
	"capster-board/models"
)

var ErrInvalidBooking = errors.New("customer_id, capster_id and treatment_id are required")

// BookingRequest is one visit: a customer with a capster for one or more treatments.
type BookingRequest struct {
	CustomerID   int64
	CapsterID    int64
	TreatmentIDs []int64
}

type VisitStore interface {
	CreateVisit(ctx context.Context, rows []models.Appointment) error
	ListByIDs(ctx context.Context, ids []int64) ([]models.Appointment, error)
}

// VisitNotifier tells the customer their visit was booked.
type VisitNotifier interface {
	NotifyVisit(ctx context.Context, visit GroupedAppointment)
}

type BookingService struct {
	store    VisitStore
	notifier VisitNotifier
	metrics  *metrics.Metrics
	logger   *slog.Logger

	Now func() time.Time
}

// NewBookingService builds the booking flow; notifier may be nil.
func NewBookingService(store VisitStore, notifier VisitNotifier, m *metrics.Metrics, logger *slog.Logger) *BookingService {
	return &BookingService{
		store:    store,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		Now:      time.Now,
	}
}

// Book stamps the visit with the current date and time and stores one row per
// treatment in a single transaction.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) ([]models.Appointment, error) {
	treatments := uniqueIDs(req.TreatmentIDs)
	if req.CustomerID <= 0 || req.CapsterID <= 0 || len(treatments) == 0 {
		return nil, ErrInvalidBooking
	}

	now := s.Now()
	rows := make([]models.Appointment, 0, len(treatments))
	for _, treatmentID := range treatments {
		rows = append(rows, models.Appointment{
			Date:        models.DateOf(now),
			Time:        models.ClockOf(now),
			CustomerID:  req.CustomerID,
			TreatmentID: treatmentID,
			CapsterID:   req.CapsterID,
		})
	}
	if err := s.store.CreateVisit(ctx, rows); err != nil {
		return nil, fmt.Errorf("create visit: %w", err)
	}
	s.metrics.ObserveBooking(len(rows))

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	booked, err := s.store.ListByIDs(ctx, ids)
	if err != nil {
		// the visit is committed; answer with what was written
		s.logger.Warn("reload booked visit", "ids", ids, "error", err)
		return rows, nil
	}

	s.logger.Info("visit booked",
		"customer_id", req.CustomerID,
		"capster_id", req.CapsterID,
		"treatments", len(booked),
	)
	if s.notifier != nil {
		for _, visit := range GroupAppointments(booked) {
			s.notifier.NotifyVisit(ctx, visit)
		}
	}
	return booked, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"capster-board/models"
)

// Masters is the reference data the booking form picks from.
type Masters struct {
	Treatments []models.Treatment `json:"treatments"`
	Capsters   []models.Capster   `json:"capsters"`
}

type MasterStore interface {
	ListTreatments(ctx context.Context) ([]models.Treatment, error)
	ListCapsters(ctx context.Context) ([]models.Capster, error)
	UpsertTreatments(ctx context.Context, names []string) error
	UpsertCapsters(ctx context.Context, names []string) error
}

// MastersCache is optional; a nil cache always misses.
type MastersCache interface {
	Get(ctx context.Context) (*Masters, bool)
	Set(ctx context.Context, masters *Masters)
	Invalidate(ctx context.Context)
}

type MastersService struct {
	store  MasterStore
	cache  MastersCache
	logger *slog.Logger
}

func NewMastersService(store MasterStore, cache MastersCache, logger *slog.Logger) *MastersService {
	return &MastersService{store: store, cache: cache, logger: logger}
}

func (s *MastersService) List(ctx context.Context) (*Masters, error) {
	if s.cache != nil {
		if m, ok := s.cache.Get(ctx); ok {
			return m, nil
		}
	}

	treatments, err := s.store.ListTreatments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}
	capsters, err := s.store.ListCapsters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list capsters: %w", err)
	}
	m := &Masters{Treatments: treatments, Capsters: capsters}

	s.logger.Debug("masters loaded", "treatments", len(treatments), "capsters", len(capsters))
	if s.cache != nil {
		s.cache.Set(ctx, m)
	}
	return m, nil
}

// Seed inserts missing treatments and capsters by name and drops the cached list.
func (s *MastersService) Seed(ctx context.Context, treatments, capsters []string) error {
	if err := s.store.UpsertTreatments(ctx, treatments); err != nil {
		return fmt.Errorf("upsert treatments: %w", err)
	}
	if err := s.store.UpsertCapsters(ctx, capsters); err != nil {
		return fmt.Errorf("upsert capsters: %w", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return nil
}

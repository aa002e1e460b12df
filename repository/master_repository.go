package repository

import (
	"context"

	"capster-board/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MasterRepository serves the reference data picked in the booking form.
type MasterRepository struct {
	db *gorm.DB
}

func NewMasterRepository(db *gorm.DB) *MasterRepository {
	return &MasterRepository{db: db}
}

func (r *MasterRepository) ListTreatments(ctx context.Context) ([]models.Treatment, error) {
	treatments := []models.Treatment{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&treatments).Error; err != nil {
		return nil, err
	}
	return treatments, nil
}

func (r *MasterRepository) ListCapsters(ctx context.Context) ([]models.Capster, error) {
	capsters := []models.Capster{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&capsters).Error; err != nil {
		return nil, err
	}
	return capsters, nil
}

// UpsertTreatments inserts the names that are not present yet.
func (r *MasterRepository) UpsertTreatments(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	rows := make([]models.Treatment, 0, len(names))
	for _, name := range names {
		rows = append(rows, models.Treatment{Name: name})
	}
	return r.db.WithContext(ctx).Clauses(onConflictName()).Create(&rows).Error
}

func (r *MasterRepository) UpsertCapsters(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	rows := make([]models.Capster, 0, len(names))
	for _, name := range names {
		rows = append(rows, models.Capster{Name: name})
	}
	return r.db.WithContext(ctx).Clauses(onConflictName()).Create(&rows).Error
}

func onConflictName() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}
}

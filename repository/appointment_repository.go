package repository

import (
	"context"
	"errors"

	"capster-board/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// AppointmentUpdate carries the fields of an edit; nil fields are left alone.
type AppointmentUpdate struct {
	Date        *models.Date
	Time        *models.ClockTime
	CustomerID  *int64
	TreatmentID *int64
	CapsterID   *int64
}

func (u AppointmentUpdate) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.Date != nil {
		cols["date"] = *u.Date
	}
	if u.Time != nil {
		cols["time"] = *u.Time
	}
	if u.CustomerID != nil {
		cols["customer_id"] = *u.CustomerID
	}
	if u.TreatmentID != nil {
		cols["treatment_id"] = *u.TreatmentID
	}
	if u.CapsterID != nil {
		cols["capster_id"] = *u.CapsterID
	}
	return cols
}

func (r *AppointmentRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Treatment").
		Preload("Capster")
}

// ListByDate returns one day's appointments with their customer, treatment
// and capster, earliest first.
func (r *AppointmentRepository) ListByDate(ctx context.Context, date models.Date) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	err := r.withRelations(ctx).
		Where("date = ?", date).
		Order("time ASC").
		Order("id ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// ListBetween returns appointments whose date lies in [start, end].
func (r *AppointmentRepository) ListBetween(ctx context.Context, start, end models.Date) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	err := r.withRelations(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Order("time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *AppointmentRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	if len(ids) == 0 {
		return appointments, nil
	}
	err := r.withRelations(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id int64) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := r.withRelations(ctx).First(&appointment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &appointment, nil
}

// CreateVisit writes every treatment row of one visit in a single
// transaction, so a booking is either fully stored or not at all.
func (r *AppointmentRepository) CreateVisit(ctx context.Context, rows []models.Appointment) error {
	if len(rows) == 0 {
		return errors.New("visit has no appointments")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&rows).Error
	})
}

func (r *AppointmentRepository) Update(ctx context.Context, id int64, update AppointmentUpdate) (*models.Appointment, error) {
	cols := update.columns()
	if len(cols) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("id = ?", id).
			Updates(cols)
		if result.Error != nil {
			return nil, translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.FindByID(ctx, id)
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

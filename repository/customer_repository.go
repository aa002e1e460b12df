package repository

import (
	"context"
	"strings"

	"capster-board/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Search matches q as a case-insensitive substring of the name or the
// WhatsApp number. An empty q lists customers by name.
func (r *CustomerRepository) Search(ctx context.Context, q string, limit int) ([]models.Customer, error) {
	tx := r.db.WithContext(ctx).Model(&models.Customer{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + escapeLike(q) + "%"
		tx = tx.Where("name ILIKE ? OR whatsapp ILIKE ?", like, like)
	}

	customers := []models.Customer{}
	if err := tx.Order("name ASC").Limit(limit).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomerRepository) FindByWhatsApp(ctx context.Context, whatsapp string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("whatsapp = ?", whatsapp).First(&customer).Error
	if err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return translate(r.db.WithContext(ctx).Create(customer).Error)
}

// UpsertByWhatsApp inserts customers, refreshing the name of any whose
// WhatsApp number already exists.
func (r *CustomerRepository) UpsertByWhatsApp(ctx context.Context, customers []models.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "whatsapp"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&customers).Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}

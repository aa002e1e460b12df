package models

import "time"

// Appointment is one treatment booked for a customer with a capster. A visit
// with several treatments is stored as several rows sharing date, time,
// customer and capster.
type Appointment struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Date        Date      `gorm:"type:date;index;not null" json:"date"`
	Time        ClockTime `gorm:"type:time;not null" json:"time"`
	CustomerID  int64     `gorm:"index;not null" json:"customer_id"`
	TreatmentID int64     `gorm:"index;not null" json:"treatment_id"`
	CapsterID   int64     `gorm:"index;not null" json:"capster_id"`
	CreatedAt   time.Time `json:"created_at"`

	Customer  *Customer  `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"customer"`
	Treatment *Treatment `gorm:"foreignKey:TreatmentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"treatment"`
	Capster   *Capster   `gorm:"foreignKey:CapsterID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"capster"`
}

// CustomerName returns the joined customer's name, or "" when the relation
// was not loaded.
func (a Appointment) CustomerName() string {
	if a.Customer == nil {
		return ""
	}
	return a.Customer.Name
}

func (a Appointment) TreatmentName() string {
	if a.Treatment == nil {
		return ""
	}
	return a.Treatment.Name
}

func (a Appointment) CapsterName() string {
	if a.Capster == nil {
		return ""
	}
	return a.Capster.Name
}

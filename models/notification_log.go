// models/notification_log.go
package models

import "time"

type NotificationLog struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	CustomerID   int64     `gorm:"index;not null" json:"customer_id"`
	VisitDate    Date      `gorm:"type:date;index" json:"visit_date"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // whatsapp
	Recipient    string    `json:"recipient"`
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ProviderSID  string    `json:"provider_sid"`
	ErrorMessage string    `gorm:"type:text" json:"error_message"`
	SentAt       time.Time `json:"sent_at"`
}

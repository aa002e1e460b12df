package models

import "time"

// Customer is a walk-in or regular client, identified for deduplication by
// their WhatsApp number.
type Customer struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	WhatsApp  string    `gorm:"column:whatsapp;uniqueIndex;not null" json:"whatsapp"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

const (
	ServiceStatusAvailable   = "available"
	ServiceStatusUnavailable = "unavailable"
)

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	DurationMin int     `gorm:"not null" json:"duration_min"`
	Category    string  `gorm:"size:50" json:"category"`

	ImageURL string `gorm:"size:255" json:"image_url"`
	ImageKey string `gorm:"size:255" json:"image_key"`

	Status string `gorm:"size:20;default:'available'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// SpaSettings is a single-row table: one location, one record. It is
// created lazily with these defaults on first read.
type SpaSettings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TotalRooms  int    `gorm:"not null;default:1" json:"total_rooms"`
	OpeningTime string `gorm:"size:5;default:'09:00'" json:"opening_time"`
	ClosingTime string `gorm:"size:5;default:'20:00'" json:"closing_time"`

	// Percentage of the service price charged up front, 1-100.
	DownPayment int `gorm:"default:30" json:"down_payment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	DefaultTotalRooms  = 1
	DefaultOpeningTime = "09:00"
	DefaultClosingTime = "20:00"
	DefaultDownPayment = 30
)

func DefaultSpaSettings() SpaSettings {
	return SpaSettings{
		TotalRooms:  DefaultTotalRooms,
		OpeningTime: DefaultOpeningTime,
		ClosingTime: DefaultClosingTime,
		DownPayment: DefaultDownPayment,
	}
}

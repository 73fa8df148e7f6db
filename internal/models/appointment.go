package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `gorm:"index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Calendar day of the booking; time-of-day lives in StartTime/EndTime.
	Date time.Time `gorm:"type:date;index:idx_appointments_slot" json:"date"`

	// Half-open interval [StartTime, EndTime), 24h "HH:MM" strings.
	StartTime string `gorm:"size:5;index:idx_appointments_slot" json:"start_time"`
	EndTime   string `gorm:"size:5;index:idx_appointments_slot" json:"end_time"`

	Status string `gorm:"size:20;default:'Pending'" json:"status"`

	ModeOfPayment    string  `gorm:"size:10;default:'Cash'" json:"mode_of_payment"`
	TotalPrice       float64 `json:"total_price"`
	DownPayment      float64 `json:"down_payment"`
	RemainingBalance float64 `json:"remaining_balance"`

	Notes string `gorm:"size:255" json:"notes"`

	// Soft hold awaiting payment confirmation. ExpiresAt only means
	// something while IsTemporary is true.
	IsTemporary bool       `gorm:"default:false" json:"is_temporary"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

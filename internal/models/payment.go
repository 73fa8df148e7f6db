package models

import "time"

const (
	PaymentMethodOnline = "Online"
	PaymentMethodCash   = "Cash"

	PaymentTypeDownpayment = "Downpayment"
	PaymentTypeFull        = "Full"
	PaymentTypeBalance     = "Balance"
	PaymentTypeRefund      = "Refund"

	PaymentStatusPending   = "Pending"
	PaymentStatusCompleted = "Completed"
	PaymentStatusFailed    = "Failed"
)

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"index;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"appointment"`

	Amount float64 `gorm:"not null" json:"amount"`
	Method string  `gorm:"size:10;not null" json:"method"`
	Type   string  `gorm:"size:20;not null" json:"type"`
	Status string  `gorm:"size:20;default:'Pending'" json:"status"`

	TransactionID string `gorm:"size:100;uniqueIndex" json:"transaction_id"`
	Remarks       string `gorm:"size:255" json:"remarks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

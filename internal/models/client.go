package models

import "time"

const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
	ClientStatusBanned   = "banned"
)

type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string `gorm:"size:100;not null" json:"firstname"`
	LastName  string `gorm:"size:100;not null" json:"lastname"`
	Username  string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email     string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`

	Status string `gorm:"size:20;default:'active'" json:"status"`

	PasswordHash string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanBook reports whether the client is in good standing. Inactive and
// banned clients are rejected before any slot validation runs.
func (c *Client) CanBook() bool {
	return c.Status == ClientStatusActive
}

package models

import "time"

// OTP is a short-lived one-time code tied to a user. All rows for the user
// are deleted on successful verification; expired rows are simply ignored.
type OTP struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Code      string    `gorm:"not null" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

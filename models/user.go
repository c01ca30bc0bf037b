package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

type User struct {
	ID             string  `gorm:"primaryKey" json:"id"`
	Name           string  `gorm:"not null" json:"name"`
	Email          string  `gorm:"unique;not null" json:"email"`
	PasswordHash   string  `json:"-"`
	Phone          string  `json:"phone"`
	Location       string  `json:"location"`
	Bio            string  `json:"bio"`
	Image          string  `json:"image"`
	WalletBalance  float64 `gorm:"default:0" json:"wallet_balance"`
	Rating         float64 `gorm:"default:0" json:"rating"`
	TotalPurchased int     `gorm:"default:0" json:"total_purchased"`
	TotalSold      int     `gorm:"default:0" json:"total_sold"`
	// Subject id issued by the external social-login provider.
	// Pointer so unlinked accounts store NULL, keeping the unique index sparse.
	GoogleID  *string   `gorm:"uniqueIndex" json:"google_id,omitempty"`
	Role      Role      `gorm:"type:VARCHAR(20);default:'user'" json:"role"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	Banned    bool      `gorm:"default:false" json:"banned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

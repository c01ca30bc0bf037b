package models

import "time"

// Payment methods a seller may attach to a listing.
const (
	PaymentMethodBank   = "bank"
	PaymentMethodBkash  = "bkash"
	PaymentMethodNagad  = "nagad"
	PaymentMethodRocket = "rocket"
	PaymentMethodCash   = "cash"
)

var AllowedPaymentMethods = []string{
	PaymentMethodBank,
	PaymentMethodBkash,
	PaymentMethodNagad,
	PaymentMethodRocket,
	PaymentMethodCash,
}

func IsAllowedPaymentMethod(method string) bool {
	for _, m := range AllowedPaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID    string  `gorm:"index;not null" json:"seller_id"`
	Seller      User    `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Category    string  `gorm:"index" json:"category"`
	Price       float64 `gorm:"not null" json:"price"`
	Stock       int     `gorm:"default:0" json:"stock"`
	// Rating is derived: mean of review ratings rounded to 2 decimals,
	// 0 when no reviews exist. Recomputed on every review mutation.
	Rating         float64         `gorm:"default:0" json:"rating"`
	Images         []ProductImage  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	PaymentOptions []PaymentOption `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"payment_options"`
	Reviews        []Review        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index" json:"product_id"`
	URL       string `gorm:"not null" json:"url"`
}

type PaymentOption struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ProductID     uint   `gorm:"index" json:"product_id"`
	Method        string `gorm:"not null" json:"method"`
	AccountNumber string `gorm:"not null" json:"account_number"`
}

// Review is owned by its parent Product; mutation and deletion are
// restricted to the authoring user.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index" json:"product_id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Comment   string    `json:"comment"`
	Rating    float64   `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

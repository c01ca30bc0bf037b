package models

import "time"

type OrderStatus string
type DeliveryStatus string

const (
	// Order statuses (peer-to-peer payment flow)
	OrderStatusPending     OrderStatus = "pending"      // Order placed, awaiting payment
	OrderStatusPaymentSent OrderStatus = "payment_sent" // Buyer submitted payment proof
	OrderStatusPaid        OrderStatus = "paid"         // Seller confirmed the payment
	OrderStatusShipped     OrderStatus = "shipped"      // Out for delivery
	OrderStatusCompleted   OrderStatus = "completed"    // Buyer received the item
	OrderStatusCancelled   OrderStatus = "cancelled"    // Cancelled before shipping

	// Delivery statuses, coupled to the order status
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusShipped   DeliveryStatus = "shipped"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
)

type Order struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderRef  string  `gorm:"uniqueIndex" json:"order_ref"`
	BuyerID   string  `gorm:"index;not null" json:"buyer_id"`
	Buyer     User    `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	SellerID  string  `gorm:"index;not null" json:"seller_id"`
	Seller    User    `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	// Price x quantity at creation time; never recomputed afterwards.
	TotalAmount              float64        `gorm:"not null" json:"total_amount"`
	PaymentProof             string         `json:"payment_proof"`
	PaymentConfirmedBySeller bool           `gorm:"default:false" json:"payment_confirmed_by_seller"`
	Status                   OrderStatus    `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	DeliveryStatus           DeliveryStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"delivery_status"`
	Delivery                 DeliveryInfo   `gorm:"embedded;embeddedPrefix:delivery_" json:"delivery"`
	CreatedAt                time.Time      `json:"created_at"`
	UpdatedAt                time.Time      `json:"updated_at"`
}

// DeliveryInfo is embedded in Order.
type DeliveryInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderPending    = "pending"
	OrderPreparing  = "preparing"
	OrderDelivering = "delivering"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

var OrderStatuses = []string{OrderPending, OrderPreparing, OrderDelivering, OrderCompleted, OrderCancelled}

type Order struct {
	gorm.Model
	OrderNumber   string          `gorm:"size:40;uniqueIndex;not null" json:"orderNumber"`
	Status        string          `gorm:"index;not null;default:pending" json:"status"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalPrice"`
	DeliveryFee   decimal.Decimal `gorm:"type:decimal(12,2)" json:"deliveryFee"`
	PaymentMethod string          `json:"paymentMethod"`

	RestaurantID uint       `gorm:"index" json:"merchantId"`
	Restaurant   Restaurant `json:"-"` // preload when needed

	// customer data is denormalized on the order; clients are derived from it
	CustomerID    string `gorm:"index" json:"customerId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`

	Items []OrderItem `json:"items,omitempty"`
}

// BeforeSave stores CreatedAt in UTC; range filters compare it as text.
func (o *Order) BeforeSave(tx *gorm.DB) error {
	o.CreatedAt = o.CreatedAt.UTC()
	return nil
}

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

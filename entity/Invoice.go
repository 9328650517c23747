package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	InvoicePaid      = "paid"
	InvoicePending   = "pending"
	InvoiceOverdue   = "overdue"
	InvoiceCancelled = "cancelled"
)

var InvoiceStatuses = []string{InvoicePaid, InvoicePending, InvoiceOverdue, InvoiceCancelled}

type Invoice struct {
	gorm.Model
	Number   string          `gorm:"size:40;uniqueIndex;not null" json:"number"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Tax      decimal.Decimal `gorm:"type:decimal(12,2)" json:"tax"`
	Status   string          `gorm:"index;not null;default:pending" json:"status"`
	IssuedAt time.Time       `gorm:"index" json:"issuedAt"`
	DueAt    time.Time       `json:"dueAt"`
	PaidAt   *time.Time      `json:"paidAt,omitempty"`

	RestaurantID uint       `gorm:"index" json:"merchantId"`
	Restaurant   Restaurant `json:"-"`

	OrderID *uint `json:"orderId,omitempty"`
}

func (i *Invoice) BeforeSave(tx *gorm.DB) error {
	i.IssuedAt = i.IssuedAt.UTC()
	i.DueAt = i.DueAt.UTC()
	if i.PaidAt != nil {
		t := i.PaidAt.UTC()
		i.PaidAt = &t
	}
	return nil
}

// EffectiveStatus is the status as of now: a pending invoice past due reads as overdue.
func (i Invoice) EffectiveStatus(now time.Time) string {
	if i.Status == InvoicePending && i.DueAt.Before(now) {
		return InvoiceOverdue
	}
	return i.Status
}

func (i Invoice) Total() decimal.Decimal {
	return i.Amount.Add(i.Tax)
}

func ValidInvoiceStatus(s string) bool {
	for _, v := range InvoiceStatuses {
		if v == s {
			return true
		}
	}
	return false
}

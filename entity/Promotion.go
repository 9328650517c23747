package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PromoPercent      = "percent"
	PromoFixed        = "fixed"
	PromoFreeDelivery = "free_delivery"
)

type Promotion struct {
	gorm.Model
	Code        string          `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Description string          `json:"description"`
	Type        string          `gorm:"not null" json:"type"`
	Value       decimal.Decimal `gorm:"type:decimal(12,2)" json:"value"`
	MinOrder    decimal.Decimal `gorm:"type:decimal(12,2)" json:"minOrder"`
	StartAt     *time.Time      `json:"startAt,omitempty"`
	EndAt       *time.Time      `json:"endAt,omitempty"`
	Active      bool            `json:"active"`
	UsageCount  int             `json:"usageCount"`
	UsageLimit  int             `json:"usageLimit"`

	// nil means platform-wide
	RestaurantID *uint      `json:"restaurantId,omitempty"`
	Restaurant   Restaurant `json:"-"`
}

func (p *Promotion) BeforeSave(tx *gorm.DB) error {
	if p.StartAt != nil {
		t := p.StartAt.UTC()
		p.StartAt = &t
	}
	if p.EndAt != nil {
		t := p.EndAt.UTC()
		p.EndAt = &t
	}
	return nil
}

func ValidPromoType(t string) bool {
	switch t {
	case PromoPercent, PromoFixed, PromoFreeDelivery:
		return true
	}
	return false
}

// Running reports whether the promotion is active and inside its window at t.
func (p Promotion) Running(t time.Time) bool {
	if !p.Active {
		return false
	}
	if p.StartAt != nil && t.Before(*p.StartAt) {
		return false
	}
	if p.EndAt != nil && t.After(*p.EndAt) {
		return false
	}
	return p.UsageLimit == 0 || p.UsageCount < p.UsageLimit
}

package entity

import (
	"gorm.io/gorm"
)

const (
	RestaurantActive    = "active"
	RestaurantPending   = "pending"
	RestaurantSuspended = "suspended"
)

// Restaurant is a merchant on the marketplace.
type Restaurant struct {
	gorm.Model
	Name           string  `gorm:"not null" json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	Category       string  `json:"category"`
	OwnerName      string  `json:"ownerName"`
	Status         string  `gorm:"not null;default:pending" json:"status"`
	Rating         float64 `json:"rating"`
	CommissionRate float64 `json:"commissionRate"`

	// preload only on detail endpoints
	Menus       []Menu       `json:"menus,omitempty"`
	Ingredients []Ingredient `json:"-"`
	Orders      []Order      `json:"-"`
	Invoices    []Invoice    `json:"-"`
}

func ValidRestaurantStatus(s string) bool {
	switch s {
	case RestaurantActive, RestaurantPending, RestaurantSuspended:
		return true
	}
	return false
}

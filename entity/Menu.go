package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Menu struct {
	gorm.Model
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Available   bool            `gorm:"not null;default:true" json:"available"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Ingredients []Ingredient `gorm:"many2many:menu_ingredients;" json:"ingredients,omitempty"`
}

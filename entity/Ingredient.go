package entity

import (
	"gorm.io/gorm"
)

type Ingredient struct {
	gorm.Model
	Name         string  `gorm:"not null" json:"name"`
	Unit         string  `json:"unit"`
	StockQty     float64 `json:"stockQty"`
	ReorderLevel float64 `json:"reorderLevel"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Menus []Menu `gorm:"many2many:menu_ingredients;" json:"-"`
}

func (i Ingredient) LowStock() bool {
	return i.StockQty <= i.ReorderLevel
}

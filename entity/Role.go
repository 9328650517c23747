package entity

import (
	"gorm.io/gorm"
)

type Role struct {
	gorm.Model
	Name        string   `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string   `json:"description"`
	Permissions []string `gorm:"serializer:json" json:"permissions"`

	// not sent by default
	Users []User `json:"-"`
}

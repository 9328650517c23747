package entity

import (
	"gorm.io/gorm"
)

const (
	UserActive   = "active"
	UserInactive = "inactive"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Status      string `gorm:"not null;default:active" json:"status"`

	RoleID uint `json:"roleId"`
	Role   Role `json:"role"`
}

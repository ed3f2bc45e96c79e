package models

import "gorm.io/gorm"

const DefaultRole = "USER"

type User struct {
	gorm.Model
	Username string `gorm:"unique;not null"`
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null" json:"-"` // Don't expose password hash
	Role     string `gorm:"default:USER"`
}

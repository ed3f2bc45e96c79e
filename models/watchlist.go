package models

import "gorm.io/gorm"

// Watchlist is a named, user-owned collection of movie entries. The name is
// unique among the same owner's watchlists only.
type Watchlist struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Description string
	UserID      uint `gorm:"not null;index"`
}

package models

import (
	"fmt"

	"gorm.io/gorm"
)

// WatchlistStatus is stored and serialized with the labels the source data
// uses: À_VOIR (not watched), VU (watched), EN_COURS (in progress).
type WatchlistStatus string

const (
	StatusToWatch    WatchlistStatus = "À_VOIR"
	StatusWatched    WatchlistStatus = "VU"
	StatusInProgress WatchlistStatus = "EN_COURS"
)

// ParseWatchlistStatus validates a raw status label.
func ParseWatchlistStatus(s string) (WatchlistStatus, error) {
	switch WatchlistStatus(s) {
	case StatusToWatch, StatusWatched, StatusInProgress:
		return WatchlistStatus(s), nil
	}
	return "", fmt.Errorf("invalid status: %q", s)
}

// WatchlistItem is one movie's membership record within a watchlist.
// MovieID is not a foreign key: the movie may be deleted from the catalog
// after the item was created, and the item survives.
type WatchlistItem struct {
	gorm.Model
	WatchlistID uint  `gorm:"not null;index"`
	MovieID     int64 `gorm:"not null"`
	Status      WatchlistStatus
	Rating      *int
	Notes       *string
}

package models

import "time"

// Movie is a catalog entry keyed by its TMDb id. The id is assigned by the
// metadata provider, never by the store.
type Movie struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false"`
	Title       string
	Overview    string `gorm:"type:text"`
	PosterPath  string
	ReleaseDate *time.Time
	Genres      []string `gorm:"serializer:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

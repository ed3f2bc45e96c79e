package repositories

import (
	"github.com/MohamedHARBILI/appMoviesBackend/models"

	"gorm.io/gorm"
)

// WatchlistRepository interface defines Watchlist-related database operations
type WatchlistRepository interface {
	Create(watchlist *models.Watchlist) error
	FindByID(id uint) (*models.Watchlist, error)
	FindByUserID(userID uint) ([]models.Watchlist, error)
	ExistsByID(id uint) (bool, error)
	Update(watchlist *models.Watchlist) error
	Delete(watchlist *models.Watchlist) error
}

// watchlistRepository implements the WatchlistRepository interface
type watchlistRepository struct {
	db *gorm.DB
}

// NewWatchlistRepository creates a new WatchlistRepository instance
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

// Create creates a new Watchlist
func (r *watchlistRepository) Create(watchlist *models.Watchlist) error {
	result := r.db.Create(watchlist)
	return result.Error
}

// FindByID finds Watchlist by ID
func (r *watchlistRepository) FindByID(id uint) (*models.Watchlist, error) {
	var watchlist models.Watchlist
	result := r.db.First(&watchlist, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &watchlist, nil
}

// FindByUserID finds all Watchlists owned by a user, in insertion order
func (r *watchlistRepository) FindByUserID(userID uint) ([]models.Watchlist, error) {
	var watchlists []models.Watchlist
	result := r.db.Where("user_id = ?", userID).Find(&watchlists)
	if result.Error != nil {
		return nil, result.Error
	}
	return watchlists, nil
}

// ExistsByID reports whether a Watchlist with the given id exists
func (r *watchlistRepository) ExistsByID(id uint) (bool, error) {
	var count int64
	result := r.db.Model(&models.Watchlist{}).Where("id = ?", id).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update updates Watchlist information
func (r *watchlistRepository) Update(watchlist *models.Watchlist) error {
	result := r.db.Save(watchlist)
	return result.Error
}

// Delete deletes Watchlist
func (r *watchlistRepository) Delete(watchlist *models.Watchlist) error {
	result := r.db.Delete(watchlist)
	return result.Error
}

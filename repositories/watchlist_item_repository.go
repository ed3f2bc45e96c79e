package repositories

import (
	"github.com/MohamedHARBILI/appMoviesBackend/models"

	"gorm.io/gorm"
)

// WatchlistItemRepository interface defines WatchlistItem-related database operations
type WatchlistItemRepository interface {
	Create(item *models.WatchlistItem) error
	FindByID(id uint) (*models.WatchlistItem, error)
	FindByWatchlistID(watchlistID uint) ([]models.WatchlistItem, error)
	FindByWatchlistIDAndStatus(watchlistID uint, status models.WatchlistStatus) ([]models.WatchlistItem, error)
	ExistsByWatchlistIDAndMovieID(watchlistID uint, movieID int64) (bool, error)
	Update(item *models.WatchlistItem) error
	Delete(item *models.WatchlistItem) error
	DeleteByWatchlistID(watchlistID uint) error
}

// watchlistItemRepository implements the WatchlistItemRepository interface
type watchlistItemRepository struct {
	db *gorm.DB
}

// NewWatchlistItemRepository creates a new WatchlistItemRepository instance
func NewWatchlistItemRepository(db *gorm.DB) WatchlistItemRepository {
	return &watchlistItemRepository{db: db}
}

// Create creates a new WatchlistItem
func (r *watchlistItemRepository) Create(item *models.WatchlistItem) error {
	result := r.db.Create(item)
	return result.Error
}

// FindByID finds WatchlistItem by ID
func (r *watchlistItemRepository) FindByID(id uint) (*models.WatchlistItem, error) {
	var item models.WatchlistItem
	result := r.db.First(&item, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &item, nil
}

// FindByWatchlistID finds all items in a watchlist, in insertion order
func (r *watchlistItemRepository) FindByWatchlistID(watchlistID uint) ([]models.WatchlistItem, error) {
	var items []models.WatchlistItem
	result := r.db.Where("watchlist_id = ?", watchlistID).Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

// FindByWatchlistIDAndStatus finds items in a watchlist with an exact status
func (r *watchlistItemRepository) FindByWatchlistIDAndStatus(watchlistID uint, status models.WatchlistStatus) ([]models.WatchlistItem, error) {
	var items []models.WatchlistItem
	result := r.db.Where("watchlist_id = ? AND status = ?", watchlistID, status).Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

// ExistsByWatchlistIDAndMovieID reports whether a movie already has an entry
// in the given watchlist
func (r *watchlistItemRepository) ExistsByWatchlistIDAndMovieID(watchlistID uint, movieID int64) (bool, error) {
	var count int64
	result := r.db.Model(&models.WatchlistItem{}).
		Where("watchlist_id = ? AND movie_id = ?", watchlistID, movieID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update updates WatchlistItem information
func (r *watchlistItemRepository) Update(item *models.WatchlistItem) error {
	result := r.db.Save(item)
	return result.Error
}

// Delete deletes WatchlistItem
func (r *watchlistItemRepository) Delete(item *models.WatchlistItem) error {
	result := r.db.Delete(item)
	return result.Error
}

// DeleteByWatchlistID deletes every item belonging to a watchlist
func (r *watchlistItemRepository) DeleteByWatchlistID(watchlistID uint) error {
	result := r.db.Where("watchlist_id = ?", watchlistID).Delete(&models.WatchlistItem{})
	return result.Error
}

package services

import (
	"errors"
	"fmt"

	"github.com/MohamedHARBILI/appMoviesBackend/models"
	"github.com/MohamedHARBILI/appMoviesBackend/repositories"

	"gorm.io/gorm"
)

// UnknownMovieTitle is rendered for items whose movie no longer exists in
// the catalog. Dangling movie references are tolerated on read paths.
const UnknownMovieTitle = "Unknown"

// The WatchlistItemService interface defines the methods that watchlist
// item services need to implement
type WatchlistItemService interface {
	AddMovieToWatchlist(watchlistID uint, movieID int64, status models.WatchlistStatus) (*WatchlistItemResponse, error)
	UpdateWatchlistItem(itemID uint, input *UpdateWatchlistItemInput) (*WatchlistItemResponse, error)
	RemoveMovieFromWatchlist(itemID uint) error
	GetWatchlistItems(watchlistID uint) ([]WatchlistItemResponse, error)
	GetWatchlistItemsByStatus(watchlistID uint, status models.WatchlistStatus) ([]WatchlistItemResponse, error)
	GetWatchlistItemByID(itemID uint) (*WatchlistItemResponse, error)
}

// --- Structs for Input/Output ---

// UpdateWatchlistItemInput carries a partial update: every field is
// independently optional, and an absent field means "leave unchanged",
// never "clear to default".
type UpdateWatchlistItemInput struct {
	Status *models.WatchlistStatus `json:"status"`
	Rating *int                    `json:"rating"`
	Notes  *string                 `json:"notes"`
}

// WatchlistItemResponse is the display projection of an item, with the
// movie title denormalized for rendering.
type WatchlistItemResponse struct {
	ID         uint                   `json:"id"`
	MovieID    int64                  `json:"movieId"`
	MovieTitle string                 `json:"movieTitle"`
	Status     models.WatchlistStatus `json:"status"`
	Rating     *int                   `json:"rating"`
	Notes      *string                `json:"notes"`
}

// watchlistItemService is the implementation of the WatchlistItemService interface
type watchlistItemService struct {
	itemRepo      repositories.WatchlistItemRepository
	watchlistRepo repositories.WatchlistRepository
	movieService  MovieService
}

var _ WatchlistItemService = (*watchlistItemService)(nil)

// NewWatchlistItemService creates a new WatchlistItemService instance
func NewWatchlistItemService(
	itemRepo repositories.WatchlistItemRepository,
	watchlistRepo repositories.WatchlistRepository,
	movieService MovieService,
) WatchlistItemService {
	return &watchlistItemService{
		itemRepo:      itemRepo,
		watchlistRepo: watchlistRepo,
		movieService:  movieService,
	}
}

// AddMovieToWatchlist creates an entry for a movie in a watchlist. The
// watchlist and the movie must exist, and a movie can have at most one
// entry per watchlist. Rating and notes start unset.
func (s *watchlistItemService) AddMovieToWatchlist(watchlistID uint, movieID int64, status models.WatchlistStatus) (*WatchlistItemResponse, error) {
	exists, err := s.watchlistRepo.ExistsByID(watchlistID)
	if err != nil {
		return nil, fmt.Errorf("database error checking watchlist: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("watchlist %d: %w", watchlistID, ErrNotFound)
	}

	movie, err := s.movieService.GetMovieByID(movieID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("movie %d: %w", movieID, ErrNotFound)
		}
		return nil, err
	}

	inList, err := s.itemRepo.ExistsByWatchlistIDAndMovieID(watchlistID, movieID)
	if err != nil {
		return nil, fmt.Errorf("database error checking watchlist entry: %w", err)
	}
	if inList {
		return nil, fmt.Errorf("movie %d in watchlist %d: %w", movieID, watchlistID, ErrAlreadyExists)
	}

	item := models.WatchlistItem{
		WatchlistID: watchlistID,
		MovieID:     movieID,
		Status:      status,
	}
	if err := s.itemRepo.Create(&item); err != nil {
		return nil, fmt.Errorf("failed to create watchlist item: %w", err)
	}

	return &WatchlistItemResponse{
		ID:         item.ID,
		MovieID:    item.MovieID,
		MovieTitle: movie.Title,
		Status:     item.Status,
		Rating:     item.Rating,
		Notes:      item.Notes,
	}, nil
}

// UpdateWatchlistItem applies a partial update to an item.
func (s *watchlistItemService) UpdateWatchlistItem(itemID uint, input *UpdateWatchlistItemInput) (*WatchlistItemResponse, error) {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("watchlist item %d: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error retrieving watchlist item: %w", err)
	}

	if input != nil {
		if input.Status != nil {
			item.Status = *input.Status
		}
		if input.Rating != nil {
			item.Rating = input.Rating
		}
		if input.Notes != nil {
			item.Notes = input.Notes
		}
	}

	if err := s.itemRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to save watchlist item updates: %w", err)
	}

	return s.toResponse(item)
}

// RemoveMovieFromWatchlist deletes an item. The movie itself is untouched.
func (s *watchlistItemService) RemoveMovieFromWatchlist(itemID uint) error {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("watchlist item %d: %w", itemID, ErrNotFound)
		}
		return fmt.Errorf("database error retrieving watchlist item: %w", err)
	}
	if err := s.itemRepo.Delete(item); err != nil {
		return fmt.Errorf("failed to delete watchlist item: %w", err)
	}
	return nil
}

// GetWatchlistItems returns all items of a watchlist, in insertion order.
func (s *watchlistItemService) GetWatchlistItems(watchlistID uint) ([]WatchlistItemResponse, error) {
	items, err := s.itemRepo.FindByWatchlistID(watchlistID)
	if err != nil {
		return nil, fmt.Errorf("database error retrieving watchlist items: %w", err)
	}
	return s.toResponses(items)
}

// GetWatchlistItemsByStatus returns the items of a watchlist with an exact
// status match.
func (s *watchlistItemService) GetWatchlistItemsByStatus(watchlistID uint, status models.WatchlistStatus) ([]WatchlistItemResponse, error) {
	items, err := s.itemRepo.FindByWatchlistIDAndStatus(watchlistID, status)
	if err != nil {
		return nil, fmt.Errorf("database error retrieving watchlist items: %w", err)
	}
	return s.toResponses(items)
}

// GetWatchlistItemByID retrieves a single item.
func (s *watchlistItemService) GetWatchlistItemByID(itemID uint) (*WatchlistItemResponse, error) {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("watchlist item %d: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error retrieving watchlist item: %w", err)
	}
	return s.toResponse(item)
}

// resolveMovieTitle looks up the title of the referenced movie, falling
// back to UnknownMovieTitle when the movie is gone from the catalog.
func (s *watchlistItemService) resolveMovieTitle(movieID int64) (string, error) {
	movie, err := s.movieService.GetMovieByID(movieID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return UnknownMovieTitle, nil
		}
		return "", err
	}
	return movie.Title, nil
}

func (s *watchlistItemService) toResponse(item *models.WatchlistItem) (*WatchlistItemResponse, error) {
	title, err := s.resolveMovieTitle(item.MovieID)
	if err != nil {
		return nil, err
	}
	return &WatchlistItemResponse{
		ID:         item.ID,
		MovieID:    item.MovieID,
		MovieTitle: title,
		Status:     item.Status,
		Rating:     item.Rating,
		Notes:      item.Notes,
	}, nil
}

func (s *watchlistItemService) toResponses(items []models.WatchlistItem) ([]WatchlistItemResponse, error) {
	responses := make([]WatchlistItemResponse, 0, len(items))
	for i := range items {
		response, err := s.toResponse(&items[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}
	return responses, nil
}

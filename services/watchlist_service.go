package services

import (
	"errors"
	"fmt"

	"github.com/MohamedHARBILI/appMoviesBackend/models"
	"github.com/MohamedHARBILI/appMoviesBackend/repositories"

	"gorm.io/gorm"
)

// The WatchlistService interface defines the methods that watchlist
// services need to implement. Item operations delegate to the
// WatchlistItemService.
type WatchlistService interface {
	GetWatchlistsByUserID(userID uint) ([]WatchlistResponse, error)
	GetWatchlistByID(id uint) (*WatchlistResponse, error)
	CreateWatchlist(input *CreateWatchlistInput, userID uint) (*WatchlistResponse, error)
	UpdateWatchlist(id uint, input *UpdateWatchlistInput) (*WatchlistResponse, error)
	DeleteWatchlist(id uint) error

	AddMovieToWatchlist(watchlistID uint, movieID int64, status models.WatchlistStatus) (*WatchlistItemResponse, error)
	UpdateWatchlistItem(itemID uint, input *UpdateWatchlistItemInput) (*WatchlistItemResponse, error)
	RemoveMovieFromWatchlist(itemID uint) error
	GetWatchlistItems(watchlistID uint) ([]WatchlistItemResponse, error)
	GetWatchlistItemsByStatus(watchlistID uint, status models.WatchlistStatus) ([]WatchlistItemResponse, error)
}

// --- Structs for Input/Output ---

type CreateWatchlistInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateWatchlistInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// WatchlistResponse is the aggregate view of a watchlist with its items.
// The owning user is deliberately omitted.
type WatchlistResponse struct {
	ID          uint                    `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Items       []WatchlistItemResponse `json:"items"`
}

// watchlistService is the implementation of the WatchlistService interface
type watchlistService struct {
	repo        repositories.WatchlistRepository
	itemRepo    repositories.WatchlistItemRepository
	itemService WatchlistItemService
}

var _ WatchlistService = (*watchlistService)(nil)

// NewWatchlistService creates a new WatchlistService instance
func NewWatchlistService(
	repo repositories.WatchlistRepository,
	itemRepo repositories.WatchlistItemRepository,
	itemService WatchlistItemService,
) WatchlistService {
	return &watchlistService{repo: repo, itemRepo: itemRepo, itemService: itemService}
}

// GetWatchlistsByUserID returns every watchlist owned by the user, each
// expanded with its items.
func (s *watchlistService) GetWatchlistsByUserID(userID uint) ([]WatchlistResponse, error) {
	watchlists, err := s.repo.FindByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("database error retrieving watchlists: %w", err)
	}

	responses := make([]WatchlistResponse, 0, len(watchlists))
	for i := range watchlists {
		response, err := s.toResponse(&watchlists[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}
	return responses, nil
}

// GetWatchlistByID returns a single watchlist aggregate.
func (s *watchlistService) GetWatchlistByID(id uint) (*WatchlistResponse, error) {
	watchlist, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("watchlist %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error retrieving watchlist: %w", err)
	}
	return s.toResponse(watchlist)
}

// CreateWatchlist creates a watchlist for a user. The name must be set and
// unique among that user's watchlists (exact, case-sensitive match).
//
// The uniqueness check is read-then-write: two concurrent creates with the
// same name can both pass it. The window is accepted as a rare failure
// mode; see the uniqueness notes in DESIGN.md.
func (s *watchlistService) CreateWatchlist(input *CreateWatchlistInput, userID uint) (*WatchlistResponse, error) {
	if input == nil || input.Name == "" || userID == 0 {
		return nil, fmt.Errorf("watchlist name and user are required: %w", ErrValidation)
	}

	userWatchlists, err := s.repo.FindByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("database error checking watchlist name: %w", err)
	}
	for i := range userWatchlists {
		if userWatchlists[i].Name == input.Name {
			return nil, fmt.Errorf("watchlist %q for user %d: %w", input.Name, userID, ErrAlreadyExists)
		}
	}

	watchlist := models.Watchlist{
		Name:        input.Name,
		Description: input.Description,
		UserID:      userID,
	}
	if err := s.repo.Create(&watchlist); err != nil {
		return nil, fmt.Errorf("failed to create watchlist: %w", err)
	}
	return s.toResponse(&watchlist)
}

// UpdateWatchlist renames a watchlist and/or changes its description. A
// rename is checked against the owner's other watchlists only, so renaming
// a watchlist to its own current name always succeeds.
func (s *watchlistService) UpdateWatchlist(id uint, input *UpdateWatchlistInput) (*WatchlistResponse, error) {
	watchlist, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("watchlist %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error retrieving watchlist for update: %w", err)
	}

	if input == nil || input.Name == "" {
		return nil, fmt.Errorf("watchlist name is required: %w", ErrValidation)
	}

	if input.Name != watchlist.Name {
		userWatchlists, err := s.repo.FindByUserID(watchlist.UserID)
		if err != nil {
			return nil, fmt.Errorf("database error checking watchlist name: %w", err)
		}
		for i := range userWatchlists {
			if userWatchlists[i].ID != id && userWatchlists[i].Name == input.Name {
				return nil, fmt.Errorf("watchlist %q for user %d: %w", input.Name, watchlist.UserID, ErrAlreadyExists)
			}
		}
	}

	watchlist.Name = input.Name
	watchlist.Description = input.Description

	if err := s.repo.Update(watchlist); err != nil {
		return nil, fmt.Errorf("failed to save watchlist updates: %w", err)
	}
	return s.toResponse(watchlist)
}

// DeleteWatchlist removes a watchlist and, as a cascade, every item in it.
func (s *watchlistService) DeleteWatchlist(id uint) error {
	watchlist, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("watchlist %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("database error retrieving watchlist for delete: %w", err)
	}

	if err := s.itemRepo.DeleteByWatchlistID(id); err != nil {
		return fmt.Errorf("failed to delete watchlist items: %w", err)
	}
	if err := s.repo.Delete(watchlist); err != nil {
		return fmt.Errorf("failed to delete watchlist: %w", err)
	}
	return nil
}

// AddMovieToWatchlist verifies the watchlist exists, then delegates.
func (s *watchlistService) AddMovieToWatchlist(watchlistID uint, movieID int64, status models.WatchlistStatus) (*WatchlistItemResponse, error) {
	exists, err := s.repo.ExistsByID(watchlistID)
	if err != nil {
		return nil, fmt.Errorf("database error checking watchlist: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("watchlist %d: %w", watchlistID, ErrNotFound)
	}
	return s.itemService.AddMovieToWatchlist(watchlistID, movieID, status)
}

// UpdateWatchlistItem delegates to the item service.
func (s *watchlistService) UpdateWatchlistItem(itemID uint, input *UpdateWatchlistItemInput) (*WatchlistItemResponse, error) {
	return s.itemService.UpdateWatchlistItem(itemID, input)
}

// RemoveMovieFromWatchlist delegates to the item service.
func (s *watchlistService) RemoveMovieFromWatchlist(itemID uint) error {
	return s.itemService.RemoveMovieFromWatchlist(itemID)
}

// GetWatchlistItems delegates to the item service.
func (s *watchlistService) GetWatchlistItems(watchlistID uint) ([]WatchlistItemResponse, error) {
	return s.itemService.GetWatchlistItems(watchlistID)
}

// GetWatchlistItemsByStatus delegates to the item service.
func (s *watchlistService) GetWatchlistItemsByStatus(watchlistID uint, status models.WatchlistStatus) ([]WatchlistItemResponse, error) {
	return s.itemService.GetWatchlistItemsByStatus(watchlistID, status)
}

func (s *watchlistService) toResponse(watchlist *models.Watchlist) (*WatchlistResponse, error) {
	items, err := s.itemService.GetWatchlistItems(watchlist.ID)
	if err != nil {
		return nil, err
	}
	return &WatchlistResponse{
		ID:          watchlist.ID,
		Name:        watchlist.Name,
		Description: watchlist.Description,
		Items:       items,
	}, nil
}

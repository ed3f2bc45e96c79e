package services

import (
	"errors"
	"fmt"

	"github.com/MohamedHARBILI/appMoviesBackend/models"
	"github.com/MohamedHARBILI/appMoviesBackend/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// The UserService interface defines the methods that user services need to implement
type UserService interface {
	CreateUser(input *CreateUserInput) (*UserResponse, error)
	GetUserByID(id uint) (*UserResponse, error)
	GetUserByUsername(username string) (*UserResponse, error)
	GetUserByEmail(email string) (*UserResponse, error)
	ListUsers() ([]UserResponse, error)
	UpdateUser(id uint, input *UpdateUserInput) (*UserResponse, error)
	DeleteUser(id uint) error
	Authenticate(username string, password string) (*models.User, error)
}

// --- Structs for Input/Output ---

type CreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserInput struct {
	// Pointers distinguish "not provided" from "set to empty".
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserResponse is the display projection of a User: the password hash and
// role stay internal.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// userService is the implementation of the UserService interface
type userService struct {
	repo          repositories.UserRepository
	watchlistRepo repositories.WatchlistRepository
	itemRepo      repositories.WatchlistItemRepository
}

var _ UserService = (*userService)(nil)

// NewUserService creates a new UserService instance
func NewUserService(
	repo repositories.UserRepository,
	watchlistRepo repositories.WatchlistRepository,
	itemRepo repositories.WatchlistItemRepository,
) UserService {
	return &userService{repo: repo, watchlistRepo: watchlistRepo, itemRepo: itemRepo}
}

// CreateUser handles the registration of a new user.
func (s *userService) CreateUser(input *CreateUserInput) (*UserResponse, error) {
	if input == nil || input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", ErrValidation)
	}

	// Check if username or email already exists
	if _, err := s.repo.FindByUsername(input.Username); err == nil {
		return nil, fmt.Errorf("username %q: %w", input.Username, ErrAlreadyExists)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error checking existing user: %w", err)
	}

	if _, err := s.repo.FindByEmail(input.Email); err == nil {
		return nil, fmt.Errorf("email %q: %w", input.Email, ErrAlreadyExists)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error checking existing user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = models.DefaultRole
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.repo.Create(&user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toUserResponse(&user), nil
}

// GetUserByID retrieves a single user by id.
func (s *userService) GetUserByID(id uint) (*UserResponse, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error retrieving user: %w", err)
	}
	return toUserResponse(user), nil
}

// GetUserByUsername retrieves a single user by username.
func (s *userService) GetUserByUsername(username string) (*UserResponse, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("database error retrieving user: %w", err)
	}
	return toUserResponse(user), nil
}

// GetUserByEmail retrieves a single user by email.
func (s *userService) GetUserByEmail(email string) (*UserResponse, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("database error retrieving user: %w", err)
	}
	return toUserResponse(user), nil
}

// ListUsers retrieves all users.
func (s *userService) ListUsers() ([]UserResponse, error) {
	users, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("database error retrieving users: %w", err)
	}
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *toUserResponse(&users[i])
	}
	return responses, nil
}

// UpdateUser updates a user's details. A changed username or email is
// re-checked for uniqueness against other accounts.
func (s *userService) UpdateUser(id uint, input *UpdateUserInput) (*UserResponse, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error retrieving user for update: %w", err)
	}
	if input == nil {
		return nil, fmt.Errorf("no fields to update: %w", ErrValidation)
	}

	if input.Username != nil && *input.Username != user.Username {
		existing, err := s.repo.FindByUsername(*input.Username)
		if err == nil && existing.ID != user.ID {
			return nil, fmt.Errorf("username %q: %w", *input.Username, ErrAlreadyExists)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("database error checking username uniqueness: %w", err)
		}
		user.Username = *input.Username
	}

	if input.Email != nil && *input.Email != user.Email {
		existing, err := s.repo.FindByEmail(*input.Email)
		if err == nil && existing.ID != user.ID {
			return nil, fmt.Errorf("email %q: %w", *input.Email, ErrAlreadyExists)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("database error checking email uniqueness: %w", err)
		}
		user.Email = *input.Email
	}

	if input.Password != nil && *input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("could not hash new password: %w", err)
		}
		user.Password = string(hashedPassword)
	}

	if err := s.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to save user updates: %w", err)
	}
	return toUserResponse(user), nil
}

// DeleteUser removes a user and cascades to their watchlists and items.
func (s *userService) DeleteUser(id uint) error {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("database error retrieving user for delete: %w", err)
	}

	watchlists, err := s.watchlistRepo.FindByUserID(id)
	if err != nil {
		return fmt.Errorf("database error retrieving user watchlists: %w", err)
	}
	for i := range watchlists {
		if err := s.itemRepo.DeleteByWatchlistID(watchlists[i].ID); err != nil {
			return fmt.Errorf("failed to delete watchlist items: %w", err)
		}
		if err := s.watchlistRepo.Delete(&watchlists[i]); err != nil {
			return fmt.Errorf("failed to delete watchlist: %w", err)
		}
	}

	if err := s.repo.Delete(user); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// Authenticate verifies a username/password pair and returns the matching
// user. Failures never reveal whether the account exists.
func (s *userService) Authenticate(username string, password string) (*models.User, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error retrieving user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func toUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

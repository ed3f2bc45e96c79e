package services

import (
	"testing"

	"github.com/MohamedHARBILI/appMoviesBackend/models"
	"github.com/MohamedHARBILI/appMoviesBackend/repositories"
	"github.com/MohamedHARBILI/appMoviesBackend/tmdb"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB initializes an in-memory SQLite database for testing.
// ":memory:" gives every call a brand new, isolated database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Movie{},
		&models.Watchlist{},
		&models.WatchlistItem{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// testEnv wires the full service graph on top of a fresh test database.
type testEnv struct {
	db         *gorm.DB
	movies     MovieService
	items      WatchlistItemService
	watchlists WatchlistService
	users      UserService
}

// newTestEnv builds the service graph. When tmdbClient is nil a client
// with an unreachable base URL is used, which is fine for every test
// that does not exercise the catalog backfill.
func newTestEnv(t *testing.T, tmdbClient *tmdb.Client) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	if tmdbClient == nil {
		tmdbClient = tmdb.NewClient(tmdb.Config{
			BaseURL:      "http://127.0.0.1:0",
			ImageBaseURL: "https://image.tmdb.org/t/p/w500",
			PageLimit:    2,
		}, zap.NewNop())
	}

	userRepo := repositories.NewUserRepository(db)
	movieRepo := repositories.NewMovieRepository(db)
	watchlistRepo := repositories.NewWatchlistRepository(db)
	itemRepo := repositories.NewWatchlistItemRepository(db)

	movies := NewMovieService(movieRepo, tmdbClient, zap.NewNop())
	items := NewWatchlistItemService(itemRepo, watchlistRepo, movies)
	watchlists := NewWatchlistService(watchlistRepo, itemRepo, items)
	users := NewUserService(userRepo, watchlistRepo, itemRepo)

	return &testEnv{
		db:         db,
		movies:     movies,
		items:      items,
		watchlists: watchlists,
		users:      users,
	}
}

// seedMovie inserts a catalog movie directly, bypassing the service.
func (env *testEnv) seedMovie(t *testing.T, id int64, title string) {
	t.Helper()
	if err := env.db.Create(&models.Movie{ID: id, Title: title}).Error; err != nil {
		t.Fatalf("Failed to seed movie %d: %v", id, err)
	}
}

// seedUser inserts a user directly and returns its ID.
func (env *testEnv) seedUser(t *testing.T, username string) uint {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed-password",
		Role:     models.DefaultRole,
	}
	if err := env.db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user %s: %v", username, err)
	}
	return user.ID
}

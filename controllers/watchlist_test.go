package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MohamedHARBILI/appMoviesBackend/models"
	"github.com/MohamedHARBILI/appMoviesBackend/repositories"
	"github.com/MohamedHARBILI/appMoviesBackend/services"
	"github.com/MohamedHARBILI/appMoviesBackend/tmdb"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestServer wires the whole stack on an in-memory SQLite database
// and returns the container plus the database for seeding.
func setupTestServer(t *testing.T) (*restful.Container, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Movie{}, &models.Watchlist{}, &models.WatchlistItem{})
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	tmdbClient := tmdb.NewClient(tmdb.Config{
		BaseURL:      "http://127.0.0.1:0",
		ImageBaseURL: "https://image.tmdb.org/t/p/w500",
		PageLimit:    1,
	}, zap.NewNop())

	userRepo := repositories.NewUserRepository(db)
	movieRepo := repositories.NewMovieRepository(db)
	watchlistRepo := repositories.NewWatchlistRepository(db)
	itemRepo := repositories.NewWatchlistItemRepository(db)

	movieService := services.NewMovieService(movieRepo, tmdbClient, zap.NewNop())
	itemService := services.NewWatchlistItemService(itemRepo, watchlistRepo, movieService)
	watchlistService := services.NewWatchlistService(watchlistRepo, itemRepo, itemService)
	userService := services.NewUserService(userRepo, watchlistRepo, itemRepo)

	container := restful.NewContainer()
	for _, ctl := range []interface {
		RegisterRoutes(ws *restful.WebService)
	}{
		NewUserController(userService),
		NewMovieController(movieService),
		NewWatchlistController(watchlistService),
		NewWatchlistItemController(itemService),
	} {
		ws := new(restful.WebService)
		ctl.RegisterRoutes(ws)
		container.Add(ws)
	}
	return container, db
}

func seedUserAndMovie(t *testing.T, db *gorm.DB) uint {
	t.Helper()

	user := models.User{Username: "alice", Email: "alice@example.com", Password: "hash", Role: models.DefaultRole}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Movie{ID: 550, Title: "Fight Club"}).Error)
	return user.ID
}

func doJSON(container *restful.Container, method, target string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	container.ServeHTTP(w, req)
	return w
}

func TestWatchlistRoutes(t *testing.T) {
	t.Run("Create and fetch a watchlist", func(t *testing.T) {
		container, db := setupTestServer(t)
		userID := seedUserAndMovie(t, db)

		w := doJSON(container, "POST", fmt.Sprintf("/api/watchlists/user/%d", userID),
			services.CreateWatchlistInput{Name: "Favorites", Description: "The best ones"})
		require.Equal(t, http.StatusCreated, w.Code)

		var created services.WatchlistResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, "Favorites", created.Name)

		w = doJSON(container, "GET", fmt.Sprintf("/api/watchlists/%d", created.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Duplicate name returns 409", func(t *testing.T) {
		container, db := setupTestServer(t)
		userID := seedUserAndMovie(t, db)

		target := fmt.Sprintf("/api/watchlists/user/%d", userID)
		w := doJSON(container, "POST", target, services.CreateWatchlistInput{Name: "Favorites"})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(container, "POST", target, services.CreateWatchlistInput{Name: "Favorites"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Unknown watchlist returns 404", func(t *testing.T) {
		container, _ := setupTestServer(t)

		w := doJSON(container, "GET", "/api/watchlists/9999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Item lifecycle through the watchlist routes", func(t *testing.T) {
		container, db := setupTestServer(t)
		userID := seedUserAndMovie(t, db)

		w := doJSON(container, "POST", fmt.Sprintf("/api/watchlists/user/%d", userID),
			services.CreateWatchlistInput{Name: "Favorites"})
		require.Equal(t, http.StatusCreated, w.Code)
		var created services.WatchlistResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		// Add with the default status.
		w = doJSON(container, "POST", fmt.Sprintf("/api/watchlists/%d/items?movieId=550", created.ID), nil)
		require.Equal(t, http.StatusCreated, w.Code)
		var item services.WatchlistItemResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
		assert.Equal(t, models.StatusToWatch, item.Status)
		assert.Equal(t, "Fight Club", item.MovieTitle)

		// Adding the same movie again conflicts.
		w = doJSON(container, "POST", fmt.Sprintf("/api/watchlists/%d/items?movieId=550", created.ID), nil)
		assert.Equal(t, http.StatusConflict, w.Code)

		// Update status and rating through query parameters.
		w = doJSON(container, "PUT", fmt.Sprintf("/api/watchlists/items/%d?status=VU&rating=5", item.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var updated services.WatchlistItemResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, models.StatusWatched, updated.Status)
		require.NotNil(t, updated.Rating)
		assert.Equal(t, 5, *updated.Rating)
		assert.Nil(t, updated.Notes)

		// Filter by status.
		w = doJSON(container, "GET", fmt.Sprintf("/api/watchlists/%d/items/status/VU", created.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var items []services.WatchlistItemResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		assert.Len(t, items, 1)

		// Remove the item.
		w = doJSON(container, "DELETE", fmt.Sprintf("/api/watchlists/items/%d", item.ID), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(container, "DELETE", fmt.Sprintf("/api/watchlists/items/%d", item.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Invalid status value returns 400", func(t *testing.T) {
		container, db := setupTestServer(t)
		userID := seedUserAndMovie(t, db)

		w := doJSON(container, "POST", fmt.Sprintf("/api/watchlists/user/%d", userID),
			services.CreateWatchlistInput{Name: "Favorites"})
		require.Equal(t, http.StatusCreated, w.Code)
		var created services.WatchlistResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		w = doJSON(container, "GET", fmt.Sprintf("/api/watchlists/%d/items/status/WATCHED", created.ID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(container, "POST", fmt.Sprintf("/api/watchlists/%d/items?movieId=550&status=WATCHED", created.ID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserRoutes(t *testing.T) {
	t.Run("Register and login", func(t *testing.T) {
		container, _ := setupTestServer(t)

		w := doJSON(container, "POST", "/api/users/register", services.CreateUserInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(container, "POST", "/api/users/login", LoginCredentials{Username: "alice", Password: "secret"})
		require.Equal(t, http.StatusOK, w.Code)

		var login LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
		assert.NotEmpty(t, login.Token)
	})

	t.Run("Login with wrong password returns 401", func(t *testing.T) {
		container, _ := setupTestServer(t)

		w := doJSON(container, "POST", "/api/users/register", services.CreateUserInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(container, "POST", "/api/users/login", LoginCredentials{Username: "alice", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Duplicate registration returns 409", func(t *testing.T) {
		container, _ := setupTestServer(t)

		input := services.CreateUserInput{Username: "alice", Email: "alice@example.com", Password: "secret"}
		w := doJSON(container, "POST", "/api/users/register", input)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(container, "POST", "/api/users/register", input)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

package services

import (
	"errors"
	"testing"

	"github.com/MohamedHARBILI/appMoviesBackend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMovieToWatchlist(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := newTestEnv(t, nil)
		userID := env.seedUser(t, "alice")
		env.seedMovie(t, 550, "Fight Club")

		watchlist, err := env.watchlists.CreateWatchlist(&CreateWatchlistInput{Name: "Favorites"}, userID)
		require.NoError(t, err)

		item, err := env.items.AddMovieToWatchlist(watchlist.ID, 550, models.StatusToWatch)
		require.NoError(t, err)
		assert.Equal(t, int64(550), item.MovieID)
		assert.Equal(t, "Fight Club", item.MovieTitle)
		assert.Equal(t, models.StatusToWatch, item.Status)
		assert.Nil(t, item.Rating)
		assert.Nil(t, item.Notes)
	})

	t.Run("Unknown watchlist", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.seedMovie(t, 550, "Fight Club")

		_, err := env.items.AddMovieToWatchlist(9999, 550, models.StatusToWatch)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("Unknown movie", func(t *testing.T) {
		env := newTestEnv(t, nil)
		userID := env.seedUser(t, "alice")

		watchlist, err := env.watchlists.CreateWatchlist(&CreateWatchlistInput{Name: "Favorites"}, userID)
		require.NoError(t, err)

		_, err = env.items.AddMovieToWatchlist(watchlist.ID, 12345, models.StatusToWatch)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("Same movie twice fails even with a different status", func(t *testing.T) {
		env := newTestEnv(t, nil)
		userID := env.seedUser(t, "alice")
		env.seedMovie(t, 550, "Fight Club")

		watchlist, err := env.watchlists.CreateWatchlist(&CreateWatchlistInput{Name: "Favorites"}, userID)
		require.NoError(t, err)

		_, err = env.items.AddMovieToWatchlist(watchlist.ID, 550, models.StatusToWatch)
		require.NoError(t, err)

		_, err = env.items.AddMovieToWatchlist(watchlist.ID, 550, models.StatusWatched)
		assert.True(t, errors.Is(err, ErrAlreadyExists))
	})

	t.Run("Same movie on two watchlists is allowed", func(t *testing.T) {
		env := newTestEnv(t, nil)
		userID := env.seedUser(t, "alice")
		env.seedMovie(t, 550, "Fight Club")

		first, err := env.watchlists.CreateWatchlist(&CreateWatchlistInput{Name: "Favorites"}, userID)
		require.NoError(t, err)
		second, err := env.watchlists.CreateWatchlist(&CreateWatchlistInput{Name: "To Watch"}, userID)
		require.NoError(t, err)

		_, err = env.items.AddMovieToWatchlist(first.ID, 550, models.StatusToWatch)
		require.NoError(t, err)
		_, err = env.items.AddMovieToWatchlist(second.ID, 550, models.StatusToWatch)
		assert.NoError(t, err)
	})
}

func TestUpdateWatchlistItem(t *testing.T) {
	t.Run("Partial update leaves absent fields unchanged", func(t *testing.T) {
		env := newTestEnv(t, nil)
		userID := env.seedUser(t, "alice")
		env.seedMovie(t, 550, "Fight Club")

		watchlist, err := env.watchlists.CreateWatchlist(&CreateWatchlistInput{Name: "Favorites"}, userID)
		require.NoError(t, err)
		item, err := env.items.AddMovieToWatchlist(watchlist.ID, 550, models.StatusToWatch)
		require.NoError(t, err)

		status := models.StatusWatched
		rating := 5
		updated, err := env.items.UpdateWatchlistItem(item.ID, &UpdateWatchlistItemInput{
			Status: &status,
			Rating: &rating,
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusWatched, updated.Status)
		require.NotNil(t, updated.Rating)
		assert.Equal(t, 5, *updated.Rating)
		assert.Nil(t, updated.Notes)
		assert.Equal(t, "Fight Club", updated.MovieTitle)

		// A later update of the notes alone keeps status and rating.
		notes := "Great movie"
		updated, err = env.items.UpdateWatchlistItem(item.ID, &UpdateWatchlistItemInput{Notes: &notes})
		require.NoError(t, err)
		assert.Equal(t, models.StatusWatched, updated.Status)
		require.NotNil(t, updated.Rating)
		assert.Equal(t, 5, *updated.Rating)
		require.NotNil(t, updated.Notes)
		assert.Equal(t, "Great movie", *updated.Notes)
	})

	t.Run("Unknown item", func(t *testing.T) {
		env := newTestEnv(t, nil)

		status := models.StatusWatched
		_, err := env.items.UpdateWatchlistItem(9999, &UpdateWatchlistItemInput{Status: &status})
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestRemoveMovieFromWatchlist(t *testing.T) {
	env := newTestEnv(t, nil)
	userID := env.seedUser(t, "alice")
	env.seedMovie(t, 550, "Fight Club")

	watchlist, err := env.watchlists.CreateWatchlist(&CreateWatchlistInput{Name: "Favorites"}, userID)
	require.NoError(t, err)
	item, err := env.items.AddMovieToWatchlist(watchlist.ID, 550, models.StatusToWatch)
	require.NoError(t, err)

	require.NoError(t, env.items.RemoveMovieFromWatchlist(item.ID))

	_, err = env.items.GetWatchlistItemByID(item.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	err = env.items.RemoveMovieFromWatchlist(item.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetWatchlistItemsByStatus(t *testing.T) {
	env := newTestEnv(t, nil)
	userID := env.seedUser(t, "alice")
	env.seedMovie(t, 550, "Fight Club")
	env.seedMovie(t, 680, "Pulp Fiction")
	env.seedMovie(t, 155, "The Dark Knight")

	watchlist, err := env.watchlists.CreateWatchlist(&CreateWatchlistInput{Name: "Favorites"}, userID)
	require.NoError(t, err)

	_, err = env.items.AddMovieToWatchlist(watchlist.ID, 550, models.StatusWatched)
	require.NoError(t, err)
	_, err = env.items.AddMovieToWatchlist(watchlist.ID, 680, models.StatusToWatch)
	require.NoError(t, err)
	_, err = env.items.AddMovieToWatchlist(watchlist.ID, 155, models.StatusWatched)
	require.NoError(t, err)

	watched, err := env.items.GetWatchlistItemsByStatus(watchlist.ID, models.StatusWatched)
	require.NoError(t, err)
	assert.Len(t, watched, 2)

	toWatch, err := env.items.GetWatchlistItemsByStatus(watchlist.ID, models.StatusToWatch)
	require.NoError(t, err)
	require.Len(t, toWatch, 1)
	assert.Equal(t, int64(680), toWatch[0].MovieID)
}

func TestItemTitleFallsBackWhenMovieRemoved(t *testing.T) {
	env := newTestEnv(t, nil)
	userID := env.seedUser(t, "alice")
	env.seedMovie(t, 550, "Fight Club")

	watchlist, err := env.watchlists.CreateWatchlist(&CreateWatchlistInput{Name: "Favorites"}, userID)
	require.NoError(t, err)
	item, err := env.items.AddMovieToWatchlist(watchlist.ID, 550, models.StatusToWatch)
	require.NoError(t, err)

	require.NoError(t, env.movies.DeleteMovie(550))

	got, err := env.items.GetWatchlistItemByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, UnknownMovieTitle, got.MovieTitle)
	assert.Equal(t, int64(550), got.MovieID)
}

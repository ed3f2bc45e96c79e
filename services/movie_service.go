package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MohamedHARBILI/appMoviesBackend/models"
	"github.com/MohamedHARBILI/appMoviesBackend/repositories"
	"github.com/MohamedHARBILI/appMoviesBackend/tmdb"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// The MovieService interface defines the methods that movie services need to implement
type MovieService interface {
	GetMovieByID(id int64) (*MovieResponse, error)
	FindAllMovies(ctx context.Context) ([]MovieResponse, error)
	FindMoviesPage(page int, pageSize int) (*PagedMoviesResponse, error)
	SearchMovies(query string) ([]MovieResponse, error)
	RecentMovies() ([]MovieResponse, error)
	CreateMovie(input *CreateMovieInput) (*MovieResponse, error)
	UpdateMovie(id int64, input *UpdateMovieInput) (*MovieResponse, error)
	DeleteMovie(id int64) error
}

// --- Structs for Input/Output ---

type CreateMovieInput struct {
	ID          int64    `json:"id" description:"TMDb id of the movie"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	PosterPath  string   `json:"posterPath"`
	ReleaseDate string   `json:"releaseDate" description:"ISO date, e.g. 1999-10-15"`
	Genres      []string `json:"genres"`
}

type UpdateMovieInput struct {
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	PosterPath  string   `json:"posterPath"`
	ReleaseDate string   `json:"releaseDate"`
	Genres      []string `json:"genres"`
}

// MovieResponse is the display projection of a Movie: the raw poster path
// is replaced by a fully qualified image URL, absent when there is no
// poster.
type MovieResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	PosterURL   string   `json:"posterUrl,omitempty"`
	ReleaseDate string   `json:"releaseDate,omitempty"`
	Genres      []string `json:"genres"`
}

type PagedMoviesResponse struct {
	Movies   []MovieResponse `json:"movies"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

const recentMoviesLimit = 10

// movieService is the implementation of the MovieService interface
type movieService struct {
	repo   repositories.MovieRepository
	tmdb   *tmdb.Client
	logger *zap.Logger
}

var _ MovieService = (*movieService)(nil)

// NewMovieService creates a new MovieService instance
func NewMovieService(repo repositories.MovieRepository, tmdbClient *tmdb.Client, logger *zap.Logger) MovieService {
	return &movieService{repo: repo, tmdb: tmdbClient, logger: logger}
}

// GetMovieByID retrieves a single movie from the local catalog.
func (s *movieService) GetMovieByID(id int64) (*MovieResponse, error) {
	movie, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("movie %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error retrieving movie: %w", err)
	}
	return s.toResponse(movie), nil
}

// FindAllMovies returns the whole catalog. When the catalog is empty it is
// backfilled once from TMDb; upstream failures degrade to a partial (or
// empty) catalog and never fail the read.
func (s *movieService) FindAllMovies(ctx context.Context) ([]MovieResponse, error) {
	count, err := s.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("database error counting movies: %w", err)
	}

	if count == 0 {
		s.logger.Info("catalog empty, backfilling popular movies from TMDb")
		fetched := s.fetchPopularMovies(ctx)
		if len(fetched) > 0 {
			if _, err := s.repo.SaveAll(fetched); err != nil {
				return nil, fmt.Errorf("failed to save backfilled movies: %w", err)
			}
			s.logger.Info("saved backfilled movies", zap.Int("count", len(fetched)))
		}
	}

	movies, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("database error retrieving movies: %w", err)
	}

	responses := make([]MovieResponse, len(movies))
	for i := range movies {
		responses[i] = *s.toResponse(&movies[i])
	}
	return responses, nil
}

// FindMoviesPage retrieves one page of the catalog. Paged reads never
// trigger a backfill.
func (s *movieService) FindMoviesPage(page int, pageSize int) (*PagedMoviesResponse, error) {
	movies, total, err := s.repo.FindAllPaged(page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("database error retrieving movies: %w", err)
	}

	responses := make([]MovieResponse, len(movies))
	for i := range movies {
		responses[i] = *s.toResponse(&movies[i])
	}
	return &PagedMoviesResponse{
		Movies:   responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// SearchMovies finds catalog movies whose title contains the query.
func (s *movieService) SearchMovies(query string) ([]MovieResponse, error) {
	if query == "" {
		return []MovieResponse{}, nil
	}
	movies, err := s.repo.SearchByTitle(query)
	if err != nil {
		return nil, fmt.Errorf("database error searching movies: %w", err)
	}

	responses := make([]MovieResponse, len(movies))
	for i := range movies {
		responses[i] = *s.toResponse(&movies[i])
	}
	return responses, nil
}

// RecentMovies returns the most recently released catalog movies.
func (s *movieService) RecentMovies() ([]MovieResponse, error) {
	movies, err := s.repo.FindRecent(recentMoviesLimit)
	if err != nil {
		return nil, fmt.Errorf("database error retrieving recent movies: %w", err)
	}

	responses := make([]MovieResponse, len(movies))
	for i := range movies {
		responses[i] = *s.toResponse(&movies[i])
	}
	return responses, nil
}

// CreateMovie adds a manually entered movie to the catalog.
func (s *movieService) CreateMovie(input *CreateMovieInput) (*MovieResponse, error) {
	if input == nil || input.ID == 0 || input.Title == "" {
		return nil, fmt.Errorf("movie id and title are required: %w", ErrValidation)
	}

	exists, err := s.repo.ExistsByID(input.ID)
	if err != nil {
		return nil, fmt.Errorf("database error checking existing movie: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("movie %d: %w", input.ID, ErrAlreadyExists)
	}

	movie := models.Movie{
		ID:          input.ID,
		Title:       input.Title,
		Overview:    input.Overview,
		PosterPath:  input.PosterPath,
		ReleaseDate: s.parseReleaseDate(input.ReleaseDate),
		Genres:      input.Genres,
	}
	if err := s.repo.Save(&movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	return s.toResponse(&movie), nil
}

// UpdateMovie replaces the descriptive fields of a catalog movie. The id is
// immutable.
func (s *movieService) UpdateMovie(id int64, input *UpdateMovieInput) (*MovieResponse, error) {
	movie, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("movie %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error retrieving movie for update: %w", err)
	}
	if input == nil || input.Title == "" {
		return nil, fmt.Errorf("movie title is required: %w", ErrValidation)
	}

	movie.Title = input.Title
	movie.Overview = input.Overview
	movie.PosterPath = input.PosterPath
	movie.ReleaseDate = s.parseReleaseDate(input.ReleaseDate)
	movie.Genres = input.Genres

	if err := s.repo.Update(movie); err != nil {
		return nil, fmt.Errorf("failed to save movie updates: %w", err)
	}
	return s.toResponse(movie), nil
}

// DeleteMovie removes a movie from the catalog. Watchlist items referencing
// it are left in place and render with an "Unknown" title.
func (s *movieService) DeleteMovie(id int64) error {
	movie, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("movie %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("database error retrieving movie for delete: %w", err)
	}
	if err := s.repo.Delete(movie); err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	return nil
}

// fetchPopularMovies pulls popular movies from TMDb, page by page, up to
// the configured page limit or the upstream's own total, whichever comes
// first. A malformed page is skipped; a transport failure stops the fetch
// and keeps what was already collected.
func (s *movieService) fetchPopularMovies(ctx context.Context) []models.Movie {
	var movies []models.Movie

	for page := 1; page <= s.tmdb.PageLimit(); page++ {
		result, err := s.tmdb.PopularMovies(ctx, page)
		if err != nil {
			if errors.Is(err, tmdb.ErrMalformedPayload) {
				s.logger.Warn("skipping malformed TMDb page",
					zap.Int("page", page), zap.Error(err))
				continue
			}
			s.logger.Warn("TMDb fetch aborted",
				zap.Int("page", page),
				zap.Int("fetched_so_far", len(movies)),
				zap.Error(err))
			break
		}

		s.logger.Info("fetched popular movies page",
			zap.Int("page", page), zap.Int("count", len(result.Results)))

		for _, record := range result.Results {
			movies = append(movies, models.Movie{
				ID:          record.ID,
				Title:       record.Title,
				Overview:    record.Overview,
				PosterPath:  record.PosterPath,
				ReleaseDate: s.parseReleaseDate(record.ReleaseDate),
			})
		}

		if result.TotalPages > 0 && page >= result.TotalPages {
			break
		}
	}

	return movies
}

// parseReleaseDate parses an ISO date, tolerating failures: a bad or empty
// date leaves the field unset rather than rejecting the record.
func (s *movieService) parseReleaseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		s.logger.Warn("ignoring unparseable release date", zap.String("date", raw))
		return nil
	}
	return &parsed
}

func (s *movieService) toResponse(movie *models.Movie) *MovieResponse {
	releaseDate := ""
	if movie.ReleaseDate != nil {
		releaseDate = movie.ReleaseDate.Format("2006-01-02")
	}
	genres := movie.Genres
	if genres == nil {
		genres = []string{}
	}
	return &MovieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Overview:    movie.Overview,
		PosterURL:   s.tmdb.PosterURL(movie.PosterPath),
		ReleaseDate: releaseDate,
		Genres:      genres,
	}
}

package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// ErrMalformedPayload marks a response that arrived but could not be
// decoded. Callers treat it as a per-page problem, unlike transport
// failures.
var ErrMalformedPayload = errors.New("malformed TMDb payload")

// Config holds the TMDb connection settings. It is populated once at
// startup and injected; the client never reads process-wide state.
type Config struct {
	BaseURL      string
	AccessToken  string
	ImageBaseURL string
	// PageLimit bounds how many pages of popular movies a backfill may
	// fetch.
	PageLimit int
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// MovieRecord is one entry of a popular-movies page.
type MovieRecord struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"`
}

// PopularMoviesPage is the shape of a /movie/popular response.
type PopularMoviesPage struct {
	Page       int           `json:"page"`
	Results    []MovieRecord `json:"results"`
	TotalPages int           `json:"total_pages"`
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// PageLimit exposes the configured backfill page bound.
func (c *Client) PageLimit() int {
	return c.cfg.PageLimit
}

// PopularMovies fetches one page of popular movies. Authentication uses the
// bearer access token from the injected config.
func (c *Client) PopularMovies(ctx context.Context, page int) (*PopularMoviesPage, error) {
	url := fmt.Sprintf("%s/movie/popular?language=en-US&page=%d", c.cfg.BaseURL, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", zap.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	var result PopularMoviesPage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return &result, nil
}

// PosterURL expands a relative poster path into a full image URL. An empty
// path stays empty.
func (c *Client) PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return c.cfg.ImageBaseURL + posterPath
}

package repositories

import (
	"github.com/MohamedHARBILI/appMoviesBackend/models"

	"gorm.io/gorm"
)

// MovieRepository interface defines Movie-related database operations.
// Movie ids come from the metadata provider, so Save is an upsert-style
// create and never generates ids.
type MovieRepository interface {
	Save(movie *models.Movie) error
	SaveAll(movies []models.Movie) ([]models.Movie, error)
	FindByID(id int64) (*models.Movie, error)
	FindAll() ([]models.Movie, error)
	FindAllPaged(page int, pageSize int) ([]models.Movie, int64, error)
	SearchByTitle(query string) ([]models.Movie, error)
	FindRecent(limit int) ([]models.Movie, error)
	ExistsByID(id int64) (bool, error)
	Update(movie *models.Movie) error
	Delete(movie *models.Movie) error
	Count() (int64, error)
}

// movieRepository implements the MovieRepository interface
type movieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new MovieRepository instance
func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

// Save creates a new Movie
func (r *movieRepository) Save(movie *models.Movie) error {
	result := r.db.Create(movie)
	return result.Error
}

// SaveAll persists a batch of Movies and returns the stored records
func (r *movieRepository) SaveAll(movies []models.Movie) ([]models.Movie, error) {
	if len(movies) == 0 {
		return movies, nil
	}
	result := r.db.Create(&movies)
	if result.Error != nil {
		return nil, result.Error
	}
	return movies, nil
}

// FindByID finds Movie by its TMDb id
func (r *movieRepository) FindByID(id int64) (*models.Movie, error) {
	var movie models.Movie
	result := r.db.First(&movie, "id = ?", id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &movie, nil
}

// FindAll returns all Movies in insertion order
func (r *movieRepository) FindAll() ([]models.Movie, error) {
	var movies []models.Movie
	result := r.db.Find(&movies)
	if result.Error != nil {
		return nil, result.Error
	}
	return movies, nil
}

// FindAllPaged returns one page of Movies plus the total count
func (r *movieRepository) FindAllPaged(page int, pageSize int) ([]models.Movie, int64, error) {
	offset := (page - 1) * pageSize
	var movies []models.Movie
	var total int64

	if err := r.db.Model(&models.Movie{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := r.db.Offset(offset).Limit(pageSize).Find(&movies)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return movies, total, nil
}

// SearchByTitle finds Movies whose title contains the query, case-insensitive
func (r *movieRepository) SearchByTitle(query string) ([]models.Movie, error) {
	var movies []models.Movie
	result := r.db.Where("LOWER(title) LIKE LOWER(?)", "%"+query+"%").Find(&movies)
	if result.Error != nil {
		return nil, result.Error
	}
	return movies, nil
}

// FindRecent returns the most recently released Movies
func (r *movieRepository) FindRecent(limit int) ([]models.Movie, error) {
	var movies []models.Movie
	result := r.db.Where("release_date IS NOT NULL").Order("release_date DESC").Limit(limit).Find(&movies)
	if result.Error != nil {
		return nil, result.Error
	}
	return movies, nil
}

// ExistsByID reports whether a Movie with the given id exists
func (r *movieRepository) ExistsByID(id int64) (bool, error) {
	var count int64
	result := r.db.Model(&models.Movie{}).Where("id = ?", id).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update updates Movie information
func (r *movieRepository) Update(movie *models.Movie) error {
	result := r.db.Save(movie)
	return result.Error
}

// Delete deletes Movie
func (r *movieRepository) Delete(movie *models.Movie) error {
	result := r.db.Delete(movie)
	return result.Error
}

// Count returns the number of Movies in the catalog
func (r *movieRepository) Count() (int64, error) {
	var count int64
	result := r.db.Model(&models.Movie{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

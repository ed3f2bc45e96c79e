package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/MohamedHARBILI/appMoviesBackend/config"
	"github.com/MohamedHARBILI/appMoviesBackend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB() *gorm.DB {
	databaseSignal := config.AppConfig.DatabaseURL

	// GORM logger configuration
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level (Silent, Error, Warn, Info)
			IgnoreRecordNotFoundError: true,        // Ignore ErrRecordNotFound error for logger
			ParameterizedQueries:      false,       // Don't include params in the SQL log
			Colorful:                  true,        // Enable color
		},
	)

	db, err := gorm.Open(mysql.Open(databaseSignal), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		panic(fmt.Errorf("failed to connect database: %w", err))
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Movie{},
		&models.Watchlist{},
		&models.WatchlistItem{},
	)
	if err != nil {
		panic(fmt.Errorf("failed to migrate database: %w", err))
	}

	DB = db
	fmt.Println("Database connection successful and migrations complete.")

	SeedSampleData(DB)
	return db
}

func date(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}

// SeedSampleData populates a fresh database with a handful of movies,
// demo users and watchlists. It is a no-op when users already exist, so
// restarting the server never duplicates data.
func SeedSampleData(DB *gorm.DB) {
	var userCount int64
	if err := DB.Model(&models.User{}).Count(&userCount).Error; err != nil {
		log.Printf("Failed to check for existing users: %v\n", err)
		return
	}
	if userCount > 0 {
		return
	}

	// --- Movies ---
	movies := []models.Movie{
		{
			ID:          550,
			Title:       "Fight Club",
			Overview:    "An insomniac office worker and a devil-may-care soapmaker form an underground fight club.",
			PosterPath:  "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
			ReleaseDate: date("1999-10-15"),
			Genres:      []string{"Drama", "Thriller"},
		},
		{
			ID:          680,
			Title:       "Pulp Fiction",
			Overview:    "The lives of two mob hitmen, a boxer and a pair of diner bandits intertwine.",
			PosterPath:  "/d5iIlFn5s0ImszYzBPb8JPIfbXD.jpg",
			ReleaseDate: date("1994-10-14"),
			Genres:      []string{"Thriller", "Crime"},
		},
		{
			ID:          155,
			Title:       "The Dark Knight",
			Overview:    "Batman raises the stakes in his war on crime against the Joker.",
			PosterPath:  "/qJ2tW6WMUDux911r6m7haRef0WH.jpg",
			ReleaseDate: date("2008-07-18"),
			Genres:      []string{"Action", "Crime", "Drama", "Thriller"},
		},
	}
	for i := range movies {
		var existing models.Movie
		if err := DB.Where("id = ?", movies[i].ID).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := DB.Create(&movies[i]).Error; err != nil {
				log.Printf("Failed to seed movie %q: %v\n", movies[i].Title, err)
			} else {
				log.Printf("Seeded movie: %s\n", movies[i].Title)
			}
		}
	}

	// --- Users ---
	seedUsers := []struct {
		Username string
		Email    string
		Password string
		Role     string
	}{
		{Username: "user1", Email: "user1@example.com", Password: "password1", Role: models.DefaultRole},
		{Username: "user2", Email: "user2@example.com", Password: "password2", Role: models.DefaultRole},
		{Username: "admin", Email: "admin@example.com", Password: "adminpassword", Role: "ADMIN"},
	}
	users := make(map[string]*models.User, len(seedUsers))
	for _, u := range seedUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		user := models.User{
			Username: u.Username,
			Email:    u.Email,
			Password: string(hashedPassword),
			Role:     u.Role,
		}
		if err := DB.Create(&user).Error; err != nil {
			log.Printf("Failed to seed user %s: %v\n", u.Username, err)
			continue
		}
		log.Printf("Seeded user: %s\n", u.Username)
		users[u.Username] = &user
	}

	// --- Watchlists ---
	user1, user2 := users["user1"], users["user2"]
	if user1 == nil || user2 == nil {
		return
	}

	watchlists := []models.Watchlist{
		{Name: "Favorites", Description: "All-time favorite movies", UserID: user1.ID},
		{Name: "To Watch", Description: "Movies to watch soon", UserID: user1.ID},
		{Name: "Classics", Description: "Classic cinema", UserID: user2.ID},
	}
	for i := range watchlists {
		if err := DB.Create(&watchlists[i]).Error; err != nil {
			log.Printf("Failed to seed watchlist %q: %v\n", watchlists[i].Name, err)
			return
		}
		log.Printf("Seeded watchlist: %s\n", watchlists[i].Name)
	}

	// --- Watchlist items ---
	ratingOf := func(value int) *int { return &value }
	notesOf := func(value string) *string { return &value }

	items := []models.WatchlistItem{
		{
			WatchlistID: watchlists[0].ID,
			MovieID:     550,
			Status:      models.StatusWatched,
			Rating:      ratingOf(5),
			Notes:       notesOf("Absolutely brilliant!"),
		},
		{
			WatchlistID: watchlists[1].ID,
			MovieID:     680,
			Status:      models.StatusToWatch,
		},
		{
			WatchlistID: watchlists[2].ID,
			MovieID:     550,
			Status:      models.StatusWatched,
			Rating:      ratingOf(4),
			Notes:       notesOf("A modern classic"),
		},
		{
			WatchlistID: watchlists[2].ID,
			MovieID:     155,
			Status:      models.StatusInProgress,
		},
	}
	for i := range items {
		if err := DB.Create(&items[i]).Error; err != nil {
			log.Printf("Failed to seed watchlist item for movie %d: %v\n", items[i].MovieID, err)
		}
	}
	log.Println("Seeded sample watchlists and items.")
}

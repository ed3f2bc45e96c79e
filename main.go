package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MohamedHARBILI/appMoviesBackend/auth"
	"github.com/MohamedHARBILI/appMoviesBackend/config"
	"github.com/MohamedHARBILI/appMoviesBackend/controllers"
	"github.com/MohamedHARBILI/appMoviesBackend/database"
	"github.com/MohamedHARBILI/appMoviesBackend/repositories"
	"github.com/MohamedHARBILI/appMoviesBackend/services"
	"github.com/MohamedHARBILI/appMoviesBackend/tmdb"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"
)

// RequestLogger logs every request after it has been handled.
func RequestLogger(logger *zap.Logger) restful.FilterFunction {
	return func(request *restful.Request, response *restful.Response, chain *restful.FilterChain) {
		startTime := time.Now()

		chain.ProcessFilter(request, response)

		latency := time.Since(startTime)
		logger.Info("Request",
			zap.String("client_ip", request.Request.RemoteAddr),
			zap.String("method", request.Request.Method),
			zap.Int("status_code", response.StatusCode()),
			zap.Duration("latency", latency),
			zap.String("user_agent", request.Request.UserAgent()),
			zap.String("path", request.Request.URL.Path),
		)
	}
}

func main() {
	// Initialize configs
	config.InitConfig()

	var logger *zap.Logger
	switch config.AppConfig.LogLevel {
	case "debug":
		logger, _ = zap.NewDevelopment()
	case "info":
		logger, _ = zap.NewProduction()
	default:
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync() // Make sure the buffer is flushed before the program exits

	auth.SetSigningKey([]byte(config.AppConfig.JwtSecret))

	db := database.InitDB()

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	movieRepo := repositories.NewMovieRepository(db)
	watchlistRepo := repositories.NewWatchlistRepository(db)
	itemRepo := repositories.NewWatchlistItemRepository(db)

	// TMDb client for the catalog backfill
	tmdbClient := tmdb.NewClient(tmdb.Config{
		BaseURL:      config.AppConfig.TmdbBaseURL,
		AccessToken:  config.AppConfig.TmdbAccessToken,
		ImageBaseURL: config.AppConfig.TmdbImageBaseURL,
		PageLimit:    config.AppConfig.TmdbPageLimit,
	}, logger)

	// Services
	movieService := services.NewMovieService(movieRepo, tmdbClient, logger)
	itemService := services.NewWatchlistItemService(itemRepo, watchlistRepo, movieService)
	watchlistService := services.NewWatchlistService(watchlistRepo, itemRepo, itemService)
	userService := services.NewUserService(userRepo, watchlistRepo, itemRepo)

	container := restful.NewContainer()
	container.Filter(RequestLogger(logger))

	cors := restful.CrossOriginResourceSharing{
		AllowedHeaders: []string{"Content-Type", "Accept", "Authorization"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CookiesAllowed: false,
		Container:      container,
	}
	container.Filter(cors.Filter)
	container.Filter(container.OPTIONSFilter)

	// Controllers
	register := func(ctl interface {
		RegisterRoutes(ws *restful.WebService)
	}) {
		ws := new(restful.WebService)
		ctl.RegisterRoutes(ws)
		container.Add(ws)
	}
	register(controllers.NewUserController(userService))
	register(controllers.NewMovieController(movieService))
	register(controllers.NewWatchlistController(watchlistService))
	register(controllers.NewWatchlistItemController(itemService))

	// OpenAPI documentation
	openAPIConfig := restfulspec.Config{
		WebServices: container.RegisteredWebServices(),
		APIPath:     "/apidocs.json",
	}
	container.Add(restfulspec.NewOpenAPIService(openAPIConfig))

	addr := fmt.Sprintf(":%d", config.AppConfig.HTTPPort)
	logger.Info("Starting server", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, container); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

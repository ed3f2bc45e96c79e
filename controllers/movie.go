package controllers

import (
	"net/http"
	"strconv"

	"github.com/MohamedHARBILI/appMoviesBackend/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
)

// MovieController exposes the catalog routes. Listing all movies on an
// empty catalog triggers the TMDb backfill.
type MovieController struct {
	movieService services.MovieService
}

// NewMovieController creates a MovieController instance
func NewMovieController(movieService services.MovieService) *MovieController {
	return &MovieController{movieService: movieService}
}

// RegisterRoutes sets up the movie-related routes.
func (ctl *MovieController) RegisterRoutes(ws *restful.WebService) {
	ws.Path("/api/movies").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	ws.Route(ws.GET("").To(ctl.listMoviesHandler).
		Doc("List all movies, backfilling from TMDb when the catalog is empty").
		Metadata(restfulspec.KeyOpenAPITags, []string{"movies"}).
		Writes([]services.MovieResponse{}).
		Returns(http.StatusOK, "Movies listed successfully", []services.MovieResponse{}))

	ws.Route(ws.GET("/page").To(ctl.moviesPageHandler).
		Doc("List movies with pagination").
		Param(ws.QueryParameter("page", "Page number (default 1)").DataType("integer").DefaultValue("1")).
		Param(ws.QueryParameter("size", "Movies per page (default 10)").DataType("integer").DefaultValue("10")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"movies"}).
		Writes(services.PagedMoviesResponse{}).
		Returns(http.StatusOK, "Movies listed successfully", services.PagedMoviesResponse{}))

	ws.Route(ws.GET("/search").To(ctl.searchMoviesHandler).
		Doc("Search movies by title substring").
		Param(ws.QueryParameter("query", "Title fragment to search for")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"movies"}).
		Writes([]services.MovieResponse{}).
		Returns(http.StatusOK, "Matching movies", []services.MovieResponse{}))

	ws.Route(ws.GET("/recent").To(ctl.recentMoviesHandler).
		Doc("List recently released movies").
		Metadata(restfulspec.KeyOpenAPITags, []string{"movies"}).
		Writes([]services.MovieResponse{}).
		Returns(http.StatusOK, "Recent movies", []services.MovieResponse{}))

	ws.Route(ws.GET("/{movie-id}").To(ctl.getMovieByIDHandler).
		Doc("Get movie by TMDb ID").
		Param(ws.PathParameter("movie-id", "TMDb identifier of the movie").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"movies"}).
		Writes(services.MovieResponse{}).
		Returns(http.StatusOK, "Movie found", services.MovieResponse{}).
		Returns(http.StatusNotFound, "Movie not found", nil))

	ws.Route(ws.POST("").To(ctl.createMovieHandler).
		Doc("Add a movie to the catalog manually").
		Metadata(restfulspec.KeyOpenAPITags, []string{"movies"}).
		Reads(services.CreateMovieInput{}).
		Returns(http.StatusCreated, "Movie created successfully", services.MovieResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body", nil).
		Returns(http.StatusConflict, "Movie already exists", nil))

	ws.Route(ws.PUT("/{movie-id}").To(ctl.updateMovieHandler).
		Doc("Update movie by TMDb ID").
		Param(ws.PathParameter("movie-id", "TMDb identifier of the movie").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"movies"}).
		Reads(services.UpdateMovieInput{}).
		Writes(services.MovieResponse{}).
		Returns(http.StatusOK, "Movie updated successfully", services.MovieResponse{}).
		Returns(http.StatusNotFound, "Movie not found", nil))

	ws.Route(ws.DELETE("/{movie-id}").To(ctl.deleteMovieHandler).
		Doc("Delete movie by TMDb ID").
		Param(ws.PathParameter("movie-id", "TMDb identifier of the movie").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"movies"}).
		Returns(http.StatusNoContent, "Movie deleted successfully", nil).
		Returns(http.StatusNotFound, "Movie not found", nil))
}

// listMoviesHandler (Handles GET /api/movies)
func (ctl *MovieController) listMoviesHandler(request *restful.Request, response *restful.Response) {
	movies, err := ctl.movieService.FindAllMovies(request.Request.Context())
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, movies, restful.MIME_JSON)
}

// moviesPageHandler (Handles GET /api/movies/page)
func (ctl *MovieController) moviesPageHandler(request *restful.Request, response *restful.Response) {
	page, err := strconv.Atoi(request.QueryParameter("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(request.QueryParameter("size"))
	if err != nil || size < 1 {
		size = 10
	}

	result, err := ctl.movieService.FindMoviesPage(page, size)
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, result, restful.MIME_JSON)
}

// searchMoviesHandler (Handles GET /api/movies/search)
func (ctl *MovieController) searchMoviesHandler(request *restful.Request, response *restful.Response) {
	movies, err := ctl.movieService.SearchMovies(request.QueryParameter("query"))
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, movies, restful.MIME_JSON)
}

// recentMoviesHandler (Handles GET /api/movies/recent)
func (ctl *MovieController) recentMoviesHandler(request *restful.Request, response *restful.Response) {
	movies, err := ctl.movieService.RecentMovies()
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, movies, restful.MIME_JSON)
}

// getMovieByIDHandler (Handles GET /api/movies/{movie-id})
func (ctl *MovieController) getMovieByIDHandler(request *restful.Request, response *restful.Response) {
	id, err := strconv.ParseInt(request.PathParameter("movie-id"), 10, 64)
	if err != nil {
		writeBadRequest(response, "Invalid movie ID format")
		return
	}

	movie, err := ctl.movieService.GetMovieByID(id)
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, movie, restful.MIME_JSON)
}

// createMovieHandler (Handles POST /api/movies)
func (ctl *MovieController) createMovieHandler(request *restful.Request, response *restful.Response) {
	input := new(services.CreateMovieInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body: "+err.Error())
		return
	}

	movie, err := ctl.movieService.CreateMovie(input)
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusCreated, movie, restful.MIME_JSON)
}

// updateMovieHandler (Handles PUT /api/movies/{movie-id})
func (ctl *MovieController) updateMovieHandler(request *restful.Request, response *restful.Response) {
	id, err := strconv.ParseInt(request.PathParameter("movie-id"), 10, 64)
	if err != nil {
		writeBadRequest(response, "Invalid movie ID format")
		return
	}

	input := new(services.UpdateMovieInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body: "+err.Error())
		return
	}

	movie, err := ctl.movieService.UpdateMovie(id, input)
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, movie, restful.MIME_JSON)
}

// deleteMovieHandler (Handles DELETE /api/movies/{movie-id})
func (ctl *MovieController) deleteMovieHandler(request *restful.Request, response *restful.Response) {
	id, err := strconv.ParseInt(request.PathParameter("movie-id"), 10, 64)
	if err != nil {
		writeBadRequest(response, "Invalid movie ID format")
		return
	}

	if err := ctl.movieService.DeleteMovie(id); err != nil {
		handleServiceError(response, err)
		return
	}
	response.WriteHeader(http.StatusNoContent)
}

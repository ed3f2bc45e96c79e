package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MohamedHARBILI/appMoviesBackend/models"
	"github.com/MohamedHARBILI/appMoviesBackend/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
)

// WatchlistItemController exposes the item routes addressed by item ID,
// independently of the owning watchlist aggregate.
type WatchlistItemController struct {
	itemService services.WatchlistItemService
}

// NewWatchlistItemController creates a WatchlistItemController instance
func NewWatchlistItemController(itemService services.WatchlistItemService) *WatchlistItemController {
	return &WatchlistItemController{itemService: itemService}
}

// RegisterRoutes sets up the watchlist-item routes.
func (ctl *WatchlistItemController) RegisterRoutes(ws *restful.WebService) {
	ws.Path("/api/watchlist-items").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	ws.Route(ws.GET("/{item-id}").To(ctl.getItemByIDHandler).
		Doc("Get a watchlist item by ID").
		Param(ws.PathParameter("item-id", "Identifier of the watchlist item").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"watchlist-items"}).
		Writes(services.WatchlistItemResponse{}).
		Returns(http.StatusOK, "Item found", services.WatchlistItemResponse{}).
		Returns(http.StatusNotFound, "Item not found", nil))

	ws.Route(ws.GET("/watchlist/{watchlist-id}").To(ctl.listByWatchlistHandler).
		Doc("List the items of a watchlist").
		Param(ws.PathParameter("watchlist-id", "Identifier of the watchlist").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"watchlist-items"}).
		Writes([]services.WatchlistItemResponse{}).
		Returns(http.StatusOK, "Items listed successfully", []services.WatchlistItemResponse{}))

	ws.Route(ws.GET("/watchlist/{watchlist-id}/status/{status}").To(ctl.listByStatusHandler).
		Doc("List the items of a watchlist filtered by status").
		Param(ws.PathParameter("watchlist-id", "Identifier of the watchlist").DataType("integer")).
		Param(ws.PathParameter("status", "Watch status (À_VOIR, VU, EN_COURS)")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"watchlist-items"}).
		Writes([]services.WatchlistItemResponse{}).
		Returns(http.StatusOK, "Items listed successfully", []services.WatchlistItemResponse{}).
		Returns(http.StatusBadRequest, "Unknown status value", nil))

	ws.Route(ws.POST("/watchlist/{watchlist-id}").To(ctl.addMovieHandler).
		Doc("Add a movie to a watchlist").
		Param(ws.PathParameter("watchlist-id", "Identifier of the watchlist").DataType("integer")).
		Param(ws.QueryParameter("movieId", "TMDb identifier of the movie").DataType("integer")).
		Param(ws.QueryParameter("status", "Initial watch status").DefaultValue(string(models.StatusToWatch))).
		Metadata(restfulspec.KeyOpenAPITags, []string{"watchlist-items"}).
		Returns(http.StatusCreated, "Movie added to watchlist", services.WatchlistItemResponse{}).
		Returns(http.StatusNotFound, "Watchlist or movie not found", nil).
		Returns(http.StatusConflict, "Movie already on this watchlist", nil))

	ws.Route(ws.PUT("/{item-id}").To(ctl.updateItemHandler).
		Doc("Update the status, rating or notes of a watchlist item").
		Param(ws.PathParameter("item-id", "Identifier of the watchlist item").DataType("integer")).
		Param(ws.QueryParameter("status", "New watch status")).
		Param(ws.QueryParameter("rating", "New rating").DataType("integer")).
		Param(ws.QueryParameter("notes", "New notes")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"watchlist-items"}).
		Writes(services.WatchlistItemResponse{}).
		Returns(http.StatusOK, "Item updated successfully", services.WatchlistItemResponse{}).
		Returns(http.StatusNotFound, "Item not found", nil))

	ws.Route(ws.DELETE("/{item-id}").To(ctl.removeItemHandler).
		Doc("Remove a movie from a watchlist").
		Param(ws.PathParameter("item-id", "Identifier of the watchlist item").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"watchlist-items"}).
		Returns(http.StatusNoContent, "Item removed successfully", nil).
		Returns(http.StatusNotFound, "Item not found", nil))
}

// readItemUpdateParams collects the optional status/rating/notes query
// parameters. Absence means "leave unchanged", so presence is checked on
// the raw query rather than on the decoded value.
func readItemUpdateParams(request *restful.Request) (*services.UpdateWatchlistItemInput, error) {
	query := request.Request.URL.Query()
	input := &services.UpdateWatchlistItemInput{}

	if query.Has("status") {
		status, err := models.ParseWatchlistStatus(query.Get("status"))
		if err != nil {
			return nil, err
		}
		input.Status = &status
	}
	if query.Has("rating") {
		rating, err := strconv.Atoi(query.Get("rating"))
		if err != nil {
			return nil, fmt.Errorf("invalid rating value %q", query.Get("rating"))
		}
		input.Rating = &rating
	}
	if query.Has("notes") {
		notes := query.Get("notes")
		input.Notes = &notes
	}
	return input, nil
}

// getItemByIDHandler (Handles GET /api/watchlist-items/{item-id})
func (ctl *WatchlistItemController) getItemByIDHandler(request *restful.Request, response *restful.Response) {
	itemID, err := strconv.ParseUint(request.PathParameter("item-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid item ID format")
		return
	}

	item, err := ctl.itemService.GetWatchlistItemByID(uint(itemID))
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, item, restful.MIME_JSON)
}

// listByWatchlistHandler (Handles GET /api/watchlist-items/watchlist/{watchlist-id})
func (ctl *WatchlistItemController) listByWatchlistHandler(request *restful.Request, response *restful.Response) {
	watchlistID, err := strconv.ParseUint(request.PathParameter("watchlist-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid watchlist ID format")
		return
	}

	items, err := ctl.itemService.GetWatchlistItems(uint(watchlistID))
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, items, restful.MIME_JSON)
}

// listByStatusHandler (Handles GET /api/watchlist-items/watchlist/{watchlist-id}/status/{status})
func (ctl *WatchlistItemController) listByStatusHandler(request *restful.Request, response *restful.Response) {
	watchlistID, err := strconv.ParseUint(request.PathParameter("watchlist-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid watchlist ID format")
		return
	}

	status, err := models.ParseWatchlistStatus(request.PathParameter("status"))
	if err != nil {
		writeBadRequest(response, err.Error())
		return
	}

	items, err := ctl.itemService.GetWatchlistItemsByStatus(uint(watchlistID), status)
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, items, restful.MIME_JSON)
}

// addMovieHandler (Handles POST /api/watchlist-items/watchlist/{watchlist-id})
func (ctl *WatchlistItemController) addMovieHandler(request *restful.Request, response *restful.Response) {
	watchlistID, err := strconv.ParseUint(request.PathParameter("watchlist-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid watchlist ID format")
		return
	}

	movieID, err := strconv.ParseInt(request.QueryParameter("movieId"), 10, 64)
	if err != nil {
		writeBadRequest(response, "Invalid or missing movieId parameter")
		return
	}

	status := models.StatusToWatch
	if raw := request.QueryParameter("status"); raw != "" {
		status, err = models.ParseWatchlistStatus(raw)
		if err != nil {
			writeBadRequest(response, err.Error())
			return
		}
	}

	item, err := ctl.itemService.AddMovieToWatchlist(uint(watchlistID), movieID, status)
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusCreated, item, restful.MIME_JSON)
}

// updateItemHandler (Handles PUT /api/watchlist-items/{item-id})
func (ctl *WatchlistItemController) updateItemHandler(request *restful.Request, response *restful.Response) {
	itemID, err := strconv.ParseUint(request.PathParameter("item-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid item ID format")
		return
	}

	input, err := readItemUpdateParams(request)
	if err != nil {
		writeBadRequest(response, err.Error())
		return
	}

	item, err := ctl.itemService.UpdateWatchlistItem(uint(itemID), input)
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, item, restful.MIME_JSON)
}

// removeItemHandler (Handles DELETE /api/watchlist-items/{item-id})
func (ctl *WatchlistItemController) removeItemHandler(request *restful.Request, response *restful.Response) {
	itemID, err := strconv.ParseUint(request.PathParameter("item-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid item ID format")
		return
	}

	if err := ctl.itemService.RemoveMovieFromWatchlist(uint(itemID)); err != nil {
		handleServiceError(response, err)
		return
	}
	response.WriteHeader(http.StatusNoContent)
}

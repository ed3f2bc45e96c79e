package controllers

import (
	"net/http"
	"strconv"

	"github.com/MohamedHARBILI/appMoviesBackend/models"
	"github.com/MohamedHARBILI/appMoviesBackend/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
)

// WatchlistController exposes the watchlist aggregate routes, including
// the item sub-resource operations.
type WatchlistController struct {
	watchlistService services.WatchlistService
}

// NewWatchlistController creates a WatchlistController instance
func NewWatchlistController(watchlistService services.WatchlistService) *WatchlistController {
	return &WatchlistController{watchlistService: watchlistService}
}

// RegisterRoutes sets up the watchlist-related routes.
func (ctl *WatchlistController) RegisterRoutes(ws *restful.WebService) {
	ws.Path("/api/watchlists").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	ws.Route(ws.GET("/user/{user-id}").To(ctl.listUserWatchlistsHandler).
		Doc("List all watchlists of a user").
		Param(ws.PathParameter("user-id", "Identifier of the owning user").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"watchlists"}).
		Writes([]services.WatchlistResponse{}).
		Returns(http.StatusOK, "Watchlists listed successfully", []services.WatchlistResponse{}))

	ws.Route(ws.GET("/{watchlist-id}").To(ctl.getWatchlistByIDHandler).
		Doc("Get a watchlist with its items").
		Param(ws.PathParameter("watchlist-id", "Identifier of the watchlist").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"watchlists"}).
		Writes(services.WatchlistResponse{}).
		Returns(http.StatusOK, "Watchlist found", services.WatchlistResponse{}).
		Returns(http.StatusNotFound, "Watchlist not found", nil))

	ws.Route(ws.POST("/user/{user-id}").To(ctl.createWatchlistHandler).
		Doc("Create a watchlist for a user").
		Param(ws.PathParameter("user-id", "Identifier of the owning user").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"watchlists"}).
		Reads(services.CreateWatchlistInput{}).
		Returns(http.StatusCreated, "Watchlist created successfully", services.WatchlistResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body", nil).
		Returns(http.StatusConflict, "Watchlist name already used by this user", nil))

	ws.Route(ws.PUT("/{watchlist-id}").To(ctl.updateWatchlistHandler).
		Doc("Rename a watchlist or change its description").
		Param(ws.PathParameter("watchlist-id", "Identifier of the watchlist").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"watchlists"}).
		Reads(services.UpdateWatchlistInput{}).
		Writes(services.WatchlistResponse{}).
		Returns(http.StatusOK, "Watchlist updated successfully", services.WatchlistResponse{}).
		Returns(http.StatusNotFound, "Watchlist not found", nil).
		Returns(http.StatusConflict, "Watchlist name already used by this user", nil))

	ws.Route(ws.DELETE("/{watchlist-id}").To(ctl.deleteWatchlistHandler).
		Doc("Delete a watchlist and all of its items").
		Param(ws.PathParameter("watchlist-id", "Identifier of the watchlist").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"watchlists"}).
		Returns(http.StatusNoContent, "Watchlist deleted successfully", nil).
		Returns(http.StatusNotFound, "Watchlist not found", nil))

	ws.Route(ws.GET("/{watchlist-id}/items").To(ctl.listWatchlistItemsHandler).
		Doc("List the items of a watchlist").
		Param(ws.PathParameter("watchlist-id", "Identifier of the watchlist").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"watchlists"}).
		Writes([]services.WatchlistItemResponse{}).
		Returns(http.StatusOK, "Items listed successfully", []services.WatchlistItemResponse{}))

	ws.Route(ws.GET("/{watchlist-id}/items/status/{status}").To(ctl.listItemsByStatusHandler).
		Doc("List the items of a watchlist filtered by status").
		Param(ws.PathParameter("watchlist-id", "Identifier of the watchlist").DataType("integer")).
		Param(ws.PathParameter("status", "Watch status (À_VOIR, VU, EN_COURS)")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"watchlists"}).
		Writes([]services.WatchlistItemResponse{}).
		Returns(http.StatusOK, "Items listed successfully", []services.WatchlistItemResponse{}).
		Returns(http.StatusBadRequest, "Unknown status value", nil))

	ws.Route(ws.POST("/{watchlist-id}/items").To(ctl.addMovieHandler).
		Doc("Add a movie to a watchlist").
		Param(ws.PathParameter("watchlist-id", "Identifier of the watchlist").DataType("integer")).
		Param(ws.QueryParameter("movieId", "TMDb identifier of the movie").DataType("integer")).
		Param(ws.QueryParameter("status", "Initial watch status").DefaultValue(string(models.StatusToWatch))).
		Metadata(restfulspec.KeyOpenAPITags, []string{"watchlists"}).
		Returns(http.StatusCreated, "Movie added to watchlist", services.WatchlistItemResponse{}).
		Returns(http.StatusNotFound, "Watchlist or movie not found", nil).
		Returns(http.StatusConflict, "Movie already on this watchlist", nil))

	ws.Route(ws.PUT("/items/{item-id}").To(ctl.updateItemHandler).
		Doc("Update the status, rating or notes of a watchlist item").
		Param(ws.PathParameter("item-id", "Identifier of the watchlist item").DataType("integer")).
		Param(ws.QueryParameter("status", "New watch status")).
		Param(ws.QueryParameter("rating", "New rating").DataType("integer")).
		Param(ws.QueryParameter("notes", "New notes")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"watchlists"}).
		Writes(services.WatchlistItemResponse{}).
		Returns(http.StatusOK, "Item updated successfully", services.WatchlistItemResponse{}).
		Returns(http.StatusNotFound, "Item not found", nil))

	ws.Route(ws.DELETE("/items/{item-id}").To(ctl.removeItemHandler).
		Doc("Remove a movie from a watchlist").
		Param(ws.PathParameter("item-id", "Identifier of the watchlist item").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"watchlists"}).
		Returns(http.StatusNoContent, "Item removed successfully", nil).
		Returns(http.StatusNotFound, "Item not found", nil))
}

// listUserWatchlistsHandler (Handles GET /api/watchlists/user/{user-id})
func (ctl *WatchlistController) listUserWatchlistsHandler(request *restful.Request, response *restful.Response) {
	userID, err := strconv.ParseUint(request.PathParameter("user-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid user ID format")
		return
	}

	watchlists, err := ctl.watchlistService.GetWatchlistsByUserID(uint(userID))
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, watchlists, restful.MIME_JSON)
}

// getWatchlistByIDHandler (Handles GET /api/watchlists/{watchlist-id})
func (ctl *WatchlistController) getWatchlistByIDHandler(request *restful.Request, response *restful.Response) {
	id, err := strconv.ParseUint(request.PathParameter("watchlist-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid watchlist ID format")
		return
	}

	watchlist, err := ctl.watchlistService.GetWatchlistByID(uint(id))
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, watchlist, restful.MIME_JSON)
}

// createWatchlistHandler (Handles POST /api/watchlists/user/{user-id})
func (ctl *WatchlistController) createWatchlistHandler(request *restful.Request, response *restful.Response) {
	userID, err := strconv.ParseUint(request.PathParameter("user-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid user ID format")
		return
	}

	input := new(services.CreateWatchlistInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body: "+err.Error())
		return
	}

	watchlist, err := ctl.watchlistService.CreateWatchlist(input, uint(userID))
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusCreated, watchlist, restful.MIME_JSON)
}

// updateWatchlistHandler (Handles PUT /api/watchlists/{watchlist-id})
func (ctl *WatchlistController) updateWatchlistHandler(request *restful.Request, response *restful.Response) {
	id, err := strconv.ParseUint(request.PathParameter("watchlist-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid watchlist ID format")
		return
	}

	input := new(services.UpdateWatchlistInput)
	if err := request.ReadEntity(input); err != nil {
		writeBadRequest(response, "Invalid request body: "+err.Error())
		return
	}

	watchlist, err := ctl.watchlistService.UpdateWatchlist(uint(id), input)
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, watchlist, restful.MIME_JSON)
}

// deleteWatchlistHandler (Handles DELETE /api/watchlists/{watchlist-id})
func (ctl *WatchlistController) deleteWatchlistHandler(request *restful.Request, response *restful.Response) {
	id, err := strconv.ParseUint(request.PathParameter("watchlist-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid watchlist ID format")
		return
	}

	if err := ctl.watchlistService.DeleteWatchlist(uint(id)); err != nil {
		handleServiceError(response, err)
		return
	}
	response.WriteHeader(http.StatusNoContent)
}

// listWatchlistItemsHandler (Handles GET /api/watchlists/{watchlist-id}/items)
func (ctl *WatchlistController) listWatchlistItemsHandler(request *restful.Request, response *restful.Response) {
	id, err := strconv.ParseUint(request.PathParameter("watchlist-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid watchlist ID format")
		return
	}

	items, err := ctl.watchlistService.GetWatchlistItems(uint(id))
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, items, restful.MIME_JSON)
}

// listItemsByStatusHandler (Handles GET /api/watchlists/{watchlist-id}/items/status/{status})
func (ctl *WatchlistController) listItemsByStatusHandler(request *restful.Request, response *restful.Response) {
	id, err := strconv.ParseUint(request.PathParameter("watchlist-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid watchlist ID format")
		return
	}

	status, err := models.ParseWatchlistStatus(request.PathParameter("status"))
	if err != nil {
		writeBadRequest(response, err.Error())
		return
	}

	items, err := ctl.watchlistService.GetWatchlistItemsByStatus(uint(id), status)
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, items, restful.MIME_JSON)
}

// addMovieHandler (Handles POST /api/watchlists/{watchlist-id}/items)
func (ctl *WatchlistController) addMovieHandler(request *restful.Request, response *restful.Response) {
	id, err := strconv.ParseUint(request.PathParameter("watchlist-id"), 10, 32)
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

	item, err := ctl.watchlistService.AddMovieToWatchlist(uint(id), movieID, status)
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusCreated, item, restful.MIME_JSON)
}

// updateItemHandler (Handles PUT /api/watchlists/items/{item-id})
func (ctl *WatchlistController) updateItemHandler(request *restful.Request, response *restful.Response) {
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

	item, err := ctl.watchlistService.UpdateWatchlistItem(uint(itemID), input)
	if err != nil {
		handleServiceError(response, err)
		return
	}
	_ = response.WriteHeaderAndJson(http.StatusOK, item, restful.MIME_JSON)
}

// removeItemHandler (Handles DELETE /api/watchlists/items/{item-id})
func (ctl *WatchlistController) removeItemHandler(request *restful.Request, response *restful.Response) {
	itemID, err := strconv.ParseUint(request.PathParameter("item-id"), 10, 32)
	if err != nil {
		writeBadRequest(response, "Invalid item ID format")
		return
	}

	if err := ctl.watchlistService.RemoveMovieFromWatchlist(uint(itemID)); err != nil {
		handleServiceError(response, err)
		return
	}
	response.WriteHeader(http.StatusNoContent)
}

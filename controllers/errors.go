package controllers

import (
	"errors"
	"net/http"

	"github.com/MohamedHARBILI/appMoviesBackend/services"

	restful "github.com/emicklei/go-restful/v3"
)

// handleServiceError translates domain errors to HTTP responses.
func handleServiceError(response *restful.Response, err error) {
	statusCode := http.StatusInternalServerError
	message := "An internal error occurred"

	switch {
	case errors.Is(err, services.ErrNotFound):
		statusCode = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, services.ErrAlreadyExists):
		statusCode = http.StatusConflict
		message = err.Error()
	case errors.Is(err, services.ErrValidation):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		message = "Invalid credentials"
	}

	_ = response.WriteHeaderAndJson(statusCode, map[string]string{"message": message}, restful.MIME_JSON)
}

func writeBadRequest(response *restful.Response, message string) {
	_ = response.WriteHeaderAndJson(http.StatusBadRequest, map[string]string{"message": message}, restful.MIME_JSON)
}

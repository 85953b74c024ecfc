package restapi

import (
	"encoding/json"
	"net/http"

	"railroute.dev/internal/models"
	"railroute.dev/internal/resolver"
)

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		api.Logger.Error("server error", "error", err, "path", r.URL.Path)
	}

	response := struct {
		Code        int    `json:"code"`
		CurrentTime int64  `json:"currentTime"`
		Text        string `json:"text"`
		Version     int    `json:"version"`
	}{
		Code:        http.StatusInternalServerError,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        "internal server error",
		Version:     2,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	encoderErr := json.NewEncoder(w).Encode(response)
	if encoderErr != nil {
		api.Logger.Error("failed to encode server error response", "error", encoderErr)
	}
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		Code        int                 `json:"code"`
		CurrentTime int64               `json:"currentTime"`
		FieldErrors map[string][]string `json:"fieldErrors"`
		Text        string              `json:"text"`
		Version     int                 `json:"version"`
	}{
		Code:        http.StatusBadRequest,
		CurrentTime: models.ResponseCurrentTime(),
		FieldErrors: fieldErrors,
		Text:        "invalid request parameters",
		Version:     2,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.Logger.Error("failed to encode validation error response", "error", err)
	}
}

// failureStatus maps a resolution failure to its HTTP status.
func failureStatus(reason resolver.Reason) int {
	switch reason {
	case resolver.ReasonInvalidRequest, resolver.ReasonOriginMissing, resolver.ReasonDestinationMissing:
		return http.StatusBadRequest
	default:
		return http.StatusNotFound
	}
}

func (api *RestAPI) failureResponse(w http.ResponseWriter, r *http.Request, failure *resolver.Failure) {
	response := models.NewResponse(failureStatus(failure.Reason), models.FailureEntry{
		Reason: string(failure.Reason),
		Side:   string(failure.Side),
	}, failure.Message)
	api.sendResponse(w, r, response)
}

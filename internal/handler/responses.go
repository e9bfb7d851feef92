package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/logger"
)

// Standard response types for consistent API responses

// DataResponse carries a payload and an optional status line for the UI
type DataResponse struct {
	Message *domain.Message `json:"message,omitempty"`
	Data    interface{}     `json:"data"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string         `json:"error"`
	Message domain.Message `json:"message"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondData sends a 200 with data and an optional message
func respondData(w http.ResponseWriter, data interface{}, msg *domain.Message) {
	respondJSON(w, http.StatusOK, DataResponse{Message: msg, Data: data})
}

// respondError sends a JSON error response with a danger message
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Message: domain.Message{Level: domain.MessageDanger, Text: message},
	})
}

// respondServiceError logs err and maps it onto a status and user message
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" failed", "error", err)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError     = "Something went wrong"
	ErrMsgUnknownError           = "Unknown error"
	ErrMsgItemNotFoundError      = "Item not found"
	ErrMsgTimeoutError           = "Request timed out. Please try again later or check your connection"
	ErrMsgSearchUnavailableError = "Search is unavailable right now. Please try again"
	ErrMsgUpstreamError          = "The data provider is unavailable. Please try again"
	ErrMsgMalformedError         = "The data provider returned an unexpected response"
	ErrMsgInvalidInputError      = "Invalid request. Please check your inputs."
	ErrMsgNoServerError          = "Please select a server first"
	ErrMsgUnknownDatacenterError = "Unknown datacenter"
	ErrMsgStaleError             = "A newer request replaced this one"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Timeouts are checked first so they keep their own message whatever else they wrap.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case domain.IsTimeout(err):
		return http.StatusGatewayTimeout, ErrMsgTimeoutError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrNoServerSelected):
		return http.StatusBadRequest, ErrMsgNoServerError
	case errors.Is(err, domain.ErrUnknownDatacenter):
		return http.StatusNotFound, ErrMsgUnknownDatacenterError
	case errors.Is(err, domain.ErrTotalSearchFailure):
		return http.StatusBadGateway, ErrMsgSearchUnavailableError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrStaleGeneration):
		return http.StatusConflict, ErrMsgStaleError
	case errors.Is(err, domain.ErrMalformedResponse):
		return http.StatusBadGateway, ErrMsgMalformedError
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, ErrMsgUpstreamError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

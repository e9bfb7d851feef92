package handler

import (
	"encoding/json"
	"net/http"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Clients int    `json:"sse_clients"`
}

// ClientCounter reports connected stream clients
type ClientCounter interface {
	ClientCount() int
}

// HandleHealthz provides a basic liveness check
func HandleHealthz(hub ClientCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{Status: "ok"}
		if hub != nil {
			response.Clients = hub.ClientCount()
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

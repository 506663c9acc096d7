package httpapi

import (
	"log"
	"net/http"

	"github.com/louisbranch/contactbook/internal/platform/httpx"
)

func (h *handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Welcome to the contacts API!"})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		log.Printf("health check failed: %v", err)
		_ = httpx.WriteDetail(w, http.StatusInternalServerError, "Error connecting to the database")
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Database connection is healthy!"})
}

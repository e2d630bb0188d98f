// Package handlers serves the HTTP validation API: checks are started
// asynchronously and polled for their findings.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/checkflac/checkflac/internal/models"
	"github.com/checkflac/checkflac/internal/release"
	"github.com/checkflac/checkflac/internal/storage"
	"github.com/checkflac/checkflac/internal/verify"
)

type Handler struct {
	// ctx bounds every background run; shutting the server down cancels
	// in-flight verifications through it.
	ctx        context.Context
	checkStore *storage.Store[*models.CheckRun]
	verifier   release.Verifier
}

func New(ctx context.Context) *Handler {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Handler{
		ctx:        ctx,
		checkStore: storage.New[*models.CheckRun](),
		verifier:   verify.New(verify.DefaultTimeout),
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Check helpers
func (h *Handler) getCheckOrError(w http.ResponseWriter, checkID string) (*models.CheckRun, bool) {
	check, exists := h.checkStore.Get(checkID)
	if !exists {
		h.writeError(w, "Check not found", http.StatusNotFound)
		return nil, false
	}
	return check, true
}

package api

import (
	"context"
	"net/http"
)

// AdminDependencies defines the interface for operator actions.
type AdminDependencies interface {
	InvalidateCache(ctx context.Context) error
}

// AdminHandler handles operator requests.
type AdminHandler struct {
	deps AdminDependencies
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(deps AdminDependencies) *AdminHandler {
	return &AdminHandler{deps: deps}
}

// HandleInvalidateCache handles POST /admin/cache/invalidate requests.
func (h *AdminHandler) HandleInvalidateCache(w http.ResponseWriter, r *http.Request) {
	const op = "api.invalidate_cache"
	if err := h.deps.InvalidateCache(r.Context()); err != nil {
		writeServiceError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "invalidated"})
}

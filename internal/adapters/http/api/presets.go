package api

import (
	"context"
	"net/http"

	"github.com/stiyes/fpvforge/internal/domain/model"
	"github.com/stiyes/fpvforge/internal/domain/preset"
)

// PresetDependencies defines the interface for preset operations.
type PresetDependencies interface {
	Presets() []preset.Preset
	PresetCatalog(ctx context.Context, name string) (map[model.Slot][]model.Component, error)
}

// PresetsHandler handles preset requests.
type PresetsHandler struct {
	deps PresetDependencies
}

// NewPresetsHandler creates a new presets handler.
func NewPresetsHandler(deps PresetDependencies) *PresetsHandler {
	return &PresetsHandler{deps: deps}
}

// HandleList handles GET /presets requests.
func (h *PresetsHandler) HandleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Presets())
}

// HandleCatalog handles GET /presets/{name}/catalog requests.
func (h *PresetsHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	const op = "api.preset_catalog"
	bySlot, err := h.deps.PresetCatalog(r.Context(), r.PathValue("name"))
	if err != nil {
		writeServiceError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, bySlot)
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/stiyes/fpvforge/internal/domain/model"
	"github.com/stiyes/fpvforge/internal/domain/recommend"
)

// RecommendationDependencies defines the interface for slot recommendations.
type RecommendationDependencies interface {
	Recommendations(ctx context.Context, frameID string, slot model.Slot, presetName string) ([]recommend.Annotated, error)
}

// RecommendationsHandler handles recommendation requests.
type RecommendationsHandler struct {
	deps RecommendationDependencies
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationDependencies) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps}
}

// HandleList handles GET /recommendations?slot=S&frame=ID&preset=P requests.
func (h *RecommendationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_recommendations"
	query := r.URL.Query()
	rawSlot := strings.TrimSpace(query.Get("slot"))
	slot, ok := model.ParseSlot(rawSlot)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, fmt.Errorf("unknown slot %q", rawSlot)))
		return
	}
	recs, err := h.deps.Recommendations(r.Context(),
		strings.TrimSpace(query.Get("frame")), slot, strings.TrimSpace(query.Get("preset")))
	if err != nil {
		writeServiceError(r.Context(), w, op, err)
		return
	}
	if recs == nil {
		recs = []recommend.Annotated{}
	}
	writeJSON(w, http.StatusOK, recs)
}

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	service "github.com/stiyes/fpvforge/internal/app"
	"github.com/stiyes/fpvforge/internal/domain/model"
)

// BuildDependencies defines the interface for build operations.
type BuildDependencies interface {
	Evaluate(ctx context.Context, parts map[model.Slot]string) (service.Evaluation, error)
	SaveBuild(ctx context.Context, req service.BuildRequest) (model.Build, error)
	Build(ctx context.Context, id string) (model.Build, error)
	Builds(ctx context.Context, limit int, publicOnly bool) ([]model.Build, error)
}

// BuildsHandler handles build evaluation and saved builds.
type BuildsHandler struct {
	deps BuildDependencies
}

// NewBuildsHandler creates a new builds handler.
func NewBuildsHandler(deps BuildDependencies) *BuildsHandler {
	return &BuildsHandler{deps: deps}
}

// evaluateRequest mirrors the OpenAPI schema for POST /builds/evaluate.
type evaluateRequest struct {
	Parts map[string]string `json:"parts"`
}

// buildRequest mirrors the OpenAPI schema for POST /builds.
type buildRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parts       map[string]string `json:"parts"`
	Level       string            `json:"level"`
	Tags        []string          `json:"tags"`
	Public      bool              `json:"public"`
}

func (b buildRequest) validate() error {
	switch {
	case strings.TrimSpace(b.Name) == "":
		return errors.New("missing name")
	case len(b.Parts) == 0:
		return errors.New("missing parts")
	}
	return nil
}

// HandleEvaluate handles POST /builds/evaluate requests.
func (h *BuildsHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate_build"
	var req evaluateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	parts, err := parseParts(req.Parts)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	eval, err := h.deps.Evaluate(r.Context(), parts)
	if err != nil {
		writeServiceError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

// HandleCreate handles POST /builds requests.
func (h *BuildsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_build"
	var req buildRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	parts, err := parseParts(req.Parts)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	b, err := h.deps.SaveBuild(r.Context(), service.BuildRequest{
		Name:        req.Name,
		Description: req.Description,
		Parts:       parts,
		Level:       model.SkillLevel(strings.ToLower(req.Level)),
		Tags:        req.Tags,
		Public:      req.Public,
	})
	if err != nil {
		writeServiceError(r.Context(), w, op, err)
		return
	}
	w.Header().Set("Location", "/builds/"+b.ID)
	writeJSON(w, http.StatusCreated, b)
}

// HandleList handles GET /builds?limit=N&public=true requests.
func (h *BuildsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_builds"
	limit, err := intParam(r.URL.Query(), "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	publicOnly := false
	if raw := r.URL.Query().Get("public"); raw != "" {
		if publicOnly, err = strconv.ParseBool(raw); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
	}
	list, err := h.deps.Builds(r.Context(), limit, publicOnly)
	if err != nil {
		writeServiceError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleGet handles GET /builds/{id} requests.
func (h *BuildsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_build"
	b, err := h.deps.Build(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// parseParts normalizes slot names ("fc", "vtx", "goggle", ...) to slots.
func parseParts(raw map[string]string) (map[model.Slot]string, error) {
	parts := make(map[model.Slot]string, len(raw))
	for name, id := range raw {
		slot, ok := model.ParseSlot(name)
		if !ok {
			return nil, fmt.Errorf("unknown slot %q", name)
		}
		if _, dup := parts[slot]; dup {
			return nil, fmt.Errorf("slot %q given twice", slot)
		}
		parts[slot] = id
	}
	return parts, nil
}

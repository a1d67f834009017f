package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/stiyes/fpvforge/internal/domain/browse"
	"github.com/stiyes/fpvforge/internal/domain/model"
)

// ComponentDependencies defines the interface for catalog reads.
type ComponentDependencies interface {
	Browse(ctx context.Context, q browse.Query) (browse.Page, error)
	Component(ctx context.Context, idOrSKU string) (model.Component, error)
	Facets(ctx context.Context) (browse.Facets, error)
}

// ComponentsHandler handles catalog requests.
type ComponentsHandler struct {
	deps ComponentDependencies
}

// NewComponentsHandler creates a new components handler.
func NewComponentsHandler(deps ComponentDependencies) *ComponentsHandler {
	return &ComponentsHandler{deps: deps}
}

// HandleList handles GET /components requests.
//
// Query parameters: q, category, brand, level, origin, scene (repeatable or
// comma separated), min_price, max_price, in_stock, sort, page, page_size.
func (h *ComponentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_components"
	q, err := parseBrowseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	page, err := h.deps.Browse(r.Context(), q)
	if err != nil {
		writeServiceError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandleGet handles GET /components/{id} requests. The id may be a SKU.
func (h *ComponentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_component"
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	c, err := h.deps.Component(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// HandleFacets handles GET /facets requests.
func (h *ComponentsHandler) HandleFacets(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_facets"
	f, err := h.deps.Facets(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func parseBrowseQuery(v url.Values) (browse.Query, error) {
	q := browse.Query{
		Search: strings.TrimSpace(v.Get("q")),
		Brands: listParam(v, "brand"),
		Scenes: listParam(v, "scene"),
	}

	for _, raw := range listParam(v, "category") {
		c, ok := model.ParseCategory(raw)
		if !ok {
			return q, fmt.Errorf("unknown category %q", raw)
		}
		q.Categories = append(q.Categories, c)
	}
	for _, raw := range listParam(v, "level") {
		q.Levels = append(q.Levels, model.SkillLevel(strings.ToLower(raw)))
	}
	for _, raw := range listParam(v, "origin") {
		q.Origins = append(q.Origins, model.Origin(strings.ToLower(raw)))
	}

	var err error
	if q.MinPrice, err = floatParam(v, "min_price"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = floatParam(v, "max_price"); err != nil {
		return q, err
	}
	if raw := v.Get("in_stock"); raw != "" {
		if q.InStockOnly, err = strconv.ParseBool(raw); err != nil {
			return q, fmt.Errorf("invalid in_stock %q", raw)
		}
	}
	if raw := v.Get("sort"); raw != "" {
		s, ok := browse.ParseSort(raw)
		if !ok {
			return q, fmt.Errorf("unknown sort %q", raw)
		}
		q.Sort = s
	}
	if q.Page, err = intParam(v, "page"); err != nil {
		return q, err
	}
	if q.PageSize, err = intParam(v, "page_size"); err != nil {
		return q, err
	}
	return q, nil
}

// listParam merges repeated and comma separated values, dropping blanks.
func listParam(v url.Values, key string) []string {
	var out []string
	for _, raw := range v[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func floatParam(v url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return nil, fmt.Errorf("invalid %s %q", key, raw)
	}
	return &f, nil
}

func intParam(v url.Values, key string) (int, error) {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return n, nil
}

// Package repository persists the component catalog and saved builds and
// owns the catalog snapshot cache.
package repository

import (
	"context"

	"github.com/stiyes/fpvforge/internal/domain/model"
)

// ComponentStore provides read/write access to the catalog.
type ComponentStore interface {
	// List returns every component in insertion order.
	List(ctx context.Context) ([]model.Component, error)

	// Get returns a component by id or SKU.
	// Returns ErrNotFound if neither matches.
	Get(ctx context.Context, idOrSKU string) (model.Component, error)

	// Upsert inserts or replaces components keyed by id.
	Upsert(ctx context.Context, components ...model.Component) error

	// Count returns the number of stored components.
	Count(ctx context.Context) (int, error)
}

// BuildStore persists saved builds.
type BuildStore interface {
	// SaveBuild stores b, assigning an id and creation time when unset.
	SaveBuild(ctx context.Context, b model.Build) (model.Build, error)

	// GetBuild returns a build by id. Returns ErrNotFound if unknown.
	GetBuild(ctx context.Context, id string) (model.Build, error)

	// ListBuilds returns up to limit builds, newest first. publicOnly
	// hides private builds.
	ListBuilds(ctx context.Context, limit int, publicOnly bool) ([]model.Build, error)
}

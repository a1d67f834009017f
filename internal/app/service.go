// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	repository "github.com/stiyes/fpvforge/internal/adapters/repository"
	"github.com/stiyes/fpvforge/internal/domain/browse"
	"github.com/stiyes/fpvforge/internal/domain/compat"
	"github.com/stiyes/fpvforge/internal/domain/model"
	"github.com/stiyes/fpvforge/internal/domain/preset"
	"github.com/stiyes/fpvforge/internal/domain/recommend"
	"github.com/stiyes/fpvforge/internal/domain/scoring"
	"github.com/stiyes/fpvforge/pkg/logger"
	"github.com/stiyes/fpvforge/pkg/metrics"
)

// Store is the persistence the service runs on.
type Store interface {
	repository.ComponentStore
	repository.BuildStore
}

// Service implements the API dependencies for the build configurator.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   Store
	cache   *repository.CatalogCache
	engine  *compat.Engine
	presets *preset.Registry

	// Configuration
	databasePath  string
	seedPath      string
	cacheTTL      time.Duration
	maxPageSize   int
	presetConfig  map[string]preset.Preset
	ownsStore     bool
	defaultBuilds int

	// State
	started   bool
	startedAt time.Time
	now       func() time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDatabasePath sets the SQLite file opened by Start.
func WithDatabasePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.databasePath = path
		}
	}
}

// WithSeedPath sets the catalog file loaded into an empty database.
// The bundled catalog is used when unset.
func WithSeedPath(path string) Option {
	return func(s *Service) {
		s.seedPath = path
	}
}

// WithStore uses an already opened store instead of opening databasePath.
// The caller keeps ownership and closes it.
func WithStore(store Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCacheTTL sets how long a catalog snapshot is served.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithMaxPageSize caps browse page sizes.
func WithMaxPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPageSize = n
		}
	}
}

// WithPresets adds or overrides named presets.
func WithPresets(presets map[string]preset.Preset) Option {
	return func(s *Service) {
		s.presetConfig = presets
	}
}

// WithEngine replaces the compatibility engine.
func WithEngine(engine *compat.Engine) Option {
	return func(s *Service) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for uptime.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		databasePath:  "fpvforge.db",
		cacheTTL:      time.Hour,
		maxPageSize:   browse.MaxPageSize,
		defaultBuilds: 50,
		engine:        compat.NewEngine(),
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.presets = preset.NewRegistry(preset.WithPresets(s.presetConfig))
	return s
}

// Start opens the store, seeds an empty catalog and warms the cache.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting build configurator service...")

	if s.store == nil {
		store, err := repository.NewSQLiteStore(ctx, s.databasePath)
		if err != nil {
			metrics.RecordErrorByComponent("service", "open_store")
			return fmt.Errorf("open store: %w", err)
		}
		s.store = store
		s.ownsStore = true
		s.logger.Info(ctx, "using sqlite store", logger.String("path", s.databasePath))
	}

	seeded, err := s.seedIfEmpty(ctx)
	if err != nil {
		s.closeStore()
		return err
	}

	s.cache = repository.NewCatalogCache(s.store,
		repository.WithTTL(s.cacheTTL),
		repository.WithCacheLogger(s.logger.Named("catalog-cache")),
	)
	catalog, err := s.cache.Snapshot(ctx)
	if err != nil {
		s.closeStore()
		return err
	}

	s.started = true
	s.startedAt = s.now()
	s.logger.Info(ctx, "build configurator service started",
		logger.Int("components", len(catalog)),
		logger.Int("seeded", seeded),
		logger.Int("presets", len(s.presets.List())),
		logger.Duration("cacheTTL", s.cacheTTL),
	)

	return nil
}

// Stop releases the store if the service opened it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping build configurator service...")
	s.closeStore()
	s.started = false
	s.logger.Info(context.Background(), "build configurator service stopped")
}

func (s *Service) closeStore() {
	if !s.ownsStore {
		return
	}
	if closer, ok := s.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			s.logger.Error(context.Background(), "close store failed", logger.Error(err))
		}
	}
	s.store = nil
	s.ownsStore = false
}

func (s *Service) seedIfEmpty(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count catalog: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	var seed []model.Component
	if s.seedPath != "" {
		seed, err = repository.LoadSeedFile(s.seedPath)
	} else {
		seed, err = repository.DefaultSeed()
	}
	if err != nil {
		return 0, fmt.Errorf("load seed: %w", err)
	}
	if err := s.store.Upsert(ctx, seed...); err != nil {
		return 0, fmt.Errorf("seed catalog: %w", err)
	}
	s.logger.Info(ctx, "seeded empty catalog", logger.Int("components", len(seed)))
	return len(seed), nil
}

// running returns the live components or ErrNotStarted.
func (s *Service) running() (Store, *repository.CatalogCache, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.store, s.cache, nil
}

func (s *Service) catalog(ctx context.Context) ([]model.Component, error) {
	_, cache, err := s.running()
	if err != nil {
		return nil, err
	}
	list, err := cache.Snapshot(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("catalog", "snapshot")
		return nil, err
	}
	return list, nil
}

// Browse returns one page of the filtered, sorted catalog.
func (s *Service) Browse(ctx context.Context, q browse.Query) (browse.Page, error) {
	list, err := s.catalog(ctx)
	if err != nil {
		return browse.Page{}, err
	}
	return browse.Run(list, q, s.maxPageSize), nil
}

// Component returns a component by id or SKU.
func (s *Service) Component(ctx context.Context, idOrSKU string) (model.Component, error) {
	store, _, err := s.running()
	if err != nil {
		return model.Component{}, err
	}
	c, err := store.Get(ctx, idOrSKU)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Component{}, fmt.Errorf("%w: component %q", ErrNotFound, idOrSKU)
	}
	return c, err
}

// Facets returns the filter values present in the catalog.
func (s *Service) Facets(ctx context.Context) (browse.Facets, error) {
	list, err := s.catalog(ctx)
	if err != nil {
		return browse.Facets{}, err
	}
	return browse.BuildFacets(list), nil
}

// Evaluation is the outcome of checking one selection.
type Evaluation struct {
	Parts    map[model.Slot]model.Component `json:"parts"`
	Warnings []string                       `json:"warnings"`
	Findings []compat.Finding               `json:"findings"`
	Score    scoring.Result                 `json:"score"`
	Totals   scoring.Summary                `json:"totals"`
}

// Evaluate resolves parts (slot -> component id or SKU) against the
// catalog and runs the compatibility rules and the scorer on them.
func (s *Service) Evaluate(ctx context.Context, parts map[model.Slot]string) (Evaluation, error) {
	sel, err := s.resolve(ctx, parts)
	if err != nil {
		return Evaluation{}, err
	}

	findings := s.engine.Findings(sel)
	warnings := make([]string, 0, len(findings))
	for _, f := range findings {
		warnings = append(warnings, f.Message)
		metrics.RecordBuildWarning(f.Rule)
	}

	score := scoring.Score(sel)
	metrics.RecordBuildEvaluation(sel.Count())
	for dim, v := range map[string]int{
		metrics.DimensionCostPerformance: score.CostPerformance,
		metrics.DimensionFunctionality:   score.Functionality,
		metrics.DimensionScalability:     score.Scalability,
	} {
		_ = metrics.RecordBuildScore(dim, v)
	}

	resolved := make(map[model.Slot]model.Component, len(sel))
	for slot, c := range sel {
		resolved[slot] = *c
	}

	return Evaluation{
		Parts:    resolved,
		Warnings: warnings,
		Findings: findings,
		Score:    score,
		Totals:   scoring.Totals(sel),
	}, nil
}

// resolve maps slot -> id to a Selection. Blank ids leave the slot empty;
// a component must belong to the slot's category.
func (s *Service) resolve(ctx context.Context, parts map[model.Slot]string) (model.Selection, error) {
	list, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*model.Component, 2*len(list))
	for i := range list {
		c := &list[i]
		if c.SKU != "" {
			index[c.SKU] = c
		}
	}
	for i := range list {
		index[list[i].ID] = &list[i]
	}

	sel := make(model.Selection, len(parts))
	for slot, id := range parts {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if !slot.Valid() {
			return nil, fmt.Errorf("%w: unknown slot %q", ErrInvalidSelection, slot)
		}
		c, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown component %q", ErrInvalidSelection, id)
		}
		if got, _ := c.Category.Slot(); got != slot {
			return nil, fmt.Errorf("%w: %q is a %s, not a %s", ErrInvalidSelection, id, c.Category, slot)
		}
		sel[slot] = c
	}
	return sel, nil
}

// Recommendations lists candidates for slot, marking those that fit the
// frame frameID. With a preset name the candidates are narrowed by it.
func (s *Service) Recommendations(ctx context.Context, frameID string, slot model.Slot, presetName string) ([]recommend.Annotated, error) {
	if !slot.Valid() {
		return nil, fmt.Errorf("%w: unknown slot %q", ErrInvalidSelection, slot)
	}
	list, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	var frame *model.Component
	if frameID != "" {
		sel, err := s.resolve(ctx, map[model.Slot]string{model.SlotFrame: frameID})
		if err != nil {
			return nil, err
		}
		frame, _ = sel.Get(model.SlotFrame)
	}

	var candidates []model.Component
	if presetName != "" {
		p, ok := s.presets.Get(presetName)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, presetName)
		}
		candidates = preset.Filter(list, p)[slot]
		metrics.RecordPresetFilter(p.Name)
	} else {
		for _, c := range list {
			if got, ok := c.Category.Slot(); ok && got == slot {
				candidates = append(candidates, c)
			}
		}
	}

	out := recommend.Annotate(frame, candidates)
	for _, a := range out {
		metrics.RecordRecommendation(string(slot), a.Recommended)
	}
	return out, nil
}

// Presets returns the configured presets sorted by name.
func (s *Service) Presets() []preset.Preset {
	return s.presets.List()
}

// PresetCatalog returns the per-slot candidates a preset allows.
func (s *Service) PresetCatalog(ctx context.Context, name string) (map[model.Slot][]model.Component, error) {
	p, ok := s.presets.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	list, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordPresetFilter(p.Name)
	return preset.Filter(list, p), nil
}

// BuildRequest is a build to save.
type BuildRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Parts       map[model.Slot]string `json:"parts"`
	Level       model.SkillLevel      `json:"level"`
	Tags        []string              `json:"tags"`
	Public      bool                  `json:"public"`
}

// SaveBuild validates the parts against the catalog and stores the build
// with its totals. Parts are stored by canonical component id.
func (s *Service) SaveBuild(ctx context.Context, req BuildRequest) (model.Build, error) {
	sel, err := s.resolve(ctx, req.Parts)
	if err != nil {
		return model.Build{}, err
	}
	if sel.Count() == 0 {
		return model.Build{}, fmt.Errorf("%w: build has no parts", ErrInvalidSelection)
	}
	store, _, err := s.running()
	if err != nil {
		return model.Build{}, err
	}

	parts := make(map[model.Slot]string, len(sel))
	for slot, c := range sel {
		parts[slot] = c.ID
	}
	totals := scoring.Totals(sel)

	b, err := store.SaveBuild(ctx, model.Build{
		Name:        req.Name,
		Description: req.Description,
		Parts:       parts,
		TotalPrice:  totals.Price,
		TotalWeight: totals.Weight,
		Level:       req.Level,
		Tags:        req.Tags,
		Public:      req.Public,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvalidBuild) {
			return model.Build{}, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
		}
		metrics.RecordErrorByComponent("builds", "save")
		return model.Build{}, err
	}
	metrics.RecordBuildSaved()
	s.logger.Debug(ctx, "build saved",
		logger.String("id", b.ID),
		logger.Int("parts", len(parts)),
		logger.Float64("price", b.TotalPrice),
	)
	return b, nil
}

// Build returns a saved build by id.
func (s *Service) Build(ctx context.Context, id string) (model.Build, error) {
	store, _, err := s.running()
	if err != nil {
		return model.Build{}, err
	}
	b, err := store.GetBuild(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Build{}, fmt.Errorf("%w: build %q", ErrNotFound, id)
	}
	return b, err
}

// Builds lists saved builds newest first. A zero limit uses the default.
func (s *Service) Builds(ctx context.Context, limit int, publicOnly bool) ([]model.Build, error) {
	store, _, err := s.running()
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = s.defaultBuilds
	}
	list, err := store.ListBuilds(ctx, limit, publicOnly)
	if errors.Is(err, repository.ErrInvalidLimit) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	return list, err
}

// InvalidateCache makes the next catalog read go to the store.
func (s *Service) InvalidateCache(ctx context.Context) error {
	_, cache, err := s.running()
	if err != nil {
		return err
	}
	cache.Invalidate()
	s.logger.Info(ctx, "catalog cache invalidated")
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	s.mu.RLock()
	started, startedAt, cache := s.started, s.startedAt, s.cache
	s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       started,
		"presets":       len(s.presets.List()),
		"rules":         len(s.engine.Rules()),
		"max_page_size": s.maxPageSize,
	}
	if !started {
		return stats
	}

	stats["uptime_seconds"] = int64(s.now().Sub(startedAt).Seconds())
	if at, ok := cache.LoadedAt(); ok {
		stats["catalog_loaded_at"] = at.UTC()
	}
	if list, err := s.catalog(ctx); err == nil {
		stats["catalog"] = browse.BuildStats(list)
	} else {
		s.logger.Warn(ctx, "catalog unavailable for stats", logger.Error(err))
	}
	return stats
}

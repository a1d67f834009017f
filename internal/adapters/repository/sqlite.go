package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/stiyes/fpvforge/internal/domain/model"
)

const (
	defaultBusyTimeout = 5 * time.Second
	defaultBuildLimit  = 50
)

// Compile-time interface guards.
var (
	_ ComponentStore = (*SQLiteStore)(nil)
	_ BuildStore     = (*SQLiteStore)(nil)
)

// migration is one forward-only schema step.
type migration struct {
	Version     int
	Description string
	Statements  []string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "components",
		Statements: []string{
			`CREATE TABLE components (
				id         TEXT    PRIMARY KEY,
				sku        TEXT    NOT NULL DEFAULT '',
				category   TEXT    NOT NULL,
				brand      TEXT    NOT NULL DEFAULT '',
				price      REAL    NOT NULL DEFAULT 0,
				payload    TEXT    NOT NULL,
				updated_at INTEGER NOT NULL
			)`,
			`CREATE INDEX idx_components_sku ON components(sku)`,
			`CREATE INDEX idx_components_category ON components(category)`,
		},
	},
	{
		Version:     2,
		Description: "saved builds",
		Statements: []string{
			`CREATE TABLE builds (
				id         TEXT    PRIMARY KEY,
				name       TEXT    NOT NULL,
				public     INTEGER NOT NULL DEFAULT 0,
				payload    TEXT    NOT NULL,
				created_at INTEGER NOT NULL
			)`,
			`CREATE INDEX idx_builds_created ON builds(created_at DESC)`,
		},
	},
}

// SQLiteStore implements ComponentStore and BuildStore on SQLite via
// modernc.org/sqlite. Components and builds are stored as JSON payloads
// next to the columns used for lookups.
type SQLiteStore struct {
	db          *sql.DB
	mu          sync.Mutex // serializes migrations
	now         func() time.Time
	busyTimeout time.Duration
}

// NewSQLiteStore opens (or creates) the database at path, applies pragmas
// and runs pending migrations.
func NewSQLiteStore(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	s := &SQLiteStore{
		now:         time.Now,
		busyTimeout: defaultBusyTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// SQLite performs best with a single write connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}

	// modernc.org/sqlite takes pragmas as statements, not DSN params.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", s.busyTimeout.Milliseconds()),
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	s.db = db
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// DB returns the underlying *sql.DB.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Tx executes fn within a transaction, committing when fn returns nil.
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _migrations (
			version     INTEGER  PRIMARY KEY,
			description TEXT     NOT NULL,
			applied_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	for _, m := range migrations {
		var n int
		if err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM _migrations WHERE version = ?", m.Version,
		).Scan(&n); err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if n > 0 {
			continue
		}
		err := s.Tx(ctx, func(tx *sql.Tx) error {
			for _, stmt := range m.Statements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO _migrations (version, description) VALUES (?, ?)",
				m.Version, m.Description,
			)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}
	}
	return nil
}

// List implements ComponentStore.
func (s *SQLiteStore) List(ctx context.Context) ([]model.Component, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT payload FROM components ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()

	out := []model.Component{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		var c model.Component
		if err := json.Unmarshal([]byte(payload), &c); err != nil {
			return nil, fmt.Errorf("decode component: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	return out, nil
}

// Get implements ComponentStore. An exact id match wins over a SKU match.
func (s *SQLiteStore) Get(ctx context.Context, idOrSKU string) (model.Component, error) {
	key := strings.TrimSpace(idOrSKU)
	if key == "" {
		return model.Component{}, ErrNotFound
	}
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM components WHERE id = ? OR sku = ? ORDER BY id = ? DESC LIMIT 1",
		key, key, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Component{}, fmt.Errorf("component %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return model.Component{}, fmt.Errorf("get component %q: %w", key, err)
	}
	var c model.Component
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return model.Component{}, fmt.Errorf("decode component: %w", err)
	}
	return c, nil
}

// Upsert implements ComponentStore. Components need an id and a known
// category; a zero CreatedAt is stamped with the current time. The batch is
// applied in one transaction.
func (s *SQLiteStore) Upsert(ctx context.Context, components ...model.Component) error {
	if len(components) == 0 {
		return nil
	}
	now := s.now().UTC()
	return s.Tx(ctx, func(tx *sql.Tx) error {
		for i := range components {
			c := components[i]
			if strings.TrimSpace(c.ID) == "" {
				return fmt.Errorf("%w: component %d has no id", ErrInvalidComponent, i)
			}
			cat, ok := model.ParseCategory(string(c.Category))
			if !ok {
				return fmt.Errorf("%w: component %q has unknown category %q", ErrInvalidComponent, c.ID, c.Category)
			}
			c.Category = cat
			if c.CreatedAt.IsZero() {
				c.CreatedAt = now
			}
			c.UpdatedAt = now

			payload, err := json.Marshal(c)
			if err != nil {
				return fmt.Errorf("encode component %q: %w", c.ID, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO components (id, sku, category, brand, price, payload, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					sku = excluded.sku,
					category = excluded.category,
					brand = excluded.brand,
					price = excluded.price,
					payload = excluded.payload,
					updated_at = excluded.updated_at`,
				c.ID, c.SKU, string(c.Category), c.Brand, c.Price, string(payload), now.UnixNano(),
			)
			if err != nil {
				return fmt.Errorf("upsert component %q: %w", c.ID, err)
			}
		}
		return nil
	})
}

// Count implements ComponentStore.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM components").Scan(&n); err != nil {
		return 0, fmt.Errorf("count components: %w", err)
	}
	return n, nil
}

// SaveBuild implements BuildStore.
func (s *SQLiteStore) SaveBuild(ctx context.Context, b model.Build) (model.Build, error) {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return model.Build{}, fmt.Errorf("%w: name is required", ErrInvalidBuild)
	}
	if len(b.Parts) == 0 {
		return model.Build{}, fmt.Errorf("%w: no parts selected", ErrInvalidBuild)
	}
	for slot, id := range b.Parts {
		if !slot.Valid() {
			return model.Build{}, fmt.Errorf("%w: unknown slot %q", ErrInvalidBuild, slot)
		}
		if id == "" {
			return model.Build{}, fmt.Errorf("%w: empty component id for slot %q", ErrInvalidBuild, slot)
		}
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.now().UTC()
	}

	payload, err := json.Marshal(b)
	if err != nil {
		return model.Build{}, fmt.Errorf("encode build: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO builds (id, name, public, payload, created_at) VALUES (?, ?, ?, ?, ?)",
		b.ID, b.Name, b.Public, string(payload), b.CreatedAt.UnixNano(),
	)
	if err != nil {
		return model.Build{}, fmt.Errorf("insert build: %w", err)
	}
	return b, nil
}

// GetBuild implements BuildStore.
func (s *SQLiteStore) GetBuild(ctx context.Context, id string) (model.Build, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM builds WHERE id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Build{}, fmt.Errorf("build %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Build{}, fmt.Errorf("get build %q: %w", id, err)
	}
	var b model.Build
	if err := json.Unmarshal([]byte(payload), &b); err != nil {
		return model.Build{}, fmt.Errorf("decode build: %w", err)
	}
	return b, nil
}

// ListBuilds implements BuildStore. A zero limit uses the default.
func (s *SQLiteStore) ListBuilds(ctx context.Context, limit int, publicOnly bool) ([]model.Build, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		limit = defaultBuildLimit
	}
	query := "SELECT payload FROM builds ORDER BY created_at DESC, rowid DESC LIMIT ?"
	if publicOnly {
		query = "SELECT payload FROM builds WHERE public = 1 ORDER BY created_at DESC, rowid DESC LIMIT ?"
	}
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	defer rows.Close()

	out := []model.Build{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		var b model.Build
		if err := json.Unmarshal([]byte(payload), &b); err != nil {
			return nil, fmt.Errorf("decode build: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	return out, nil
}

package repository

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/stiyes/fpvforge/internal/domain/model"
)

//go:embed seed/components.yaml
var defaultSeed []byte

type seedFile struct {
	Components []model.Component `yaml:"components"`
}

// DefaultSeed returns the catalog bundled with the binary.
func DefaultSeed() ([]model.Component, error) {
	return LoadSeed(bytes.NewReader(defaultSeed))
}

// LoadSeedFile reads a YAML (or JSON) seed file.
func LoadSeedFile(path string) ([]model.Component, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed %q: %w", path, err)
	}
	defer f.Close()
	return LoadSeed(f)
}

// LoadSeed decodes a seed document. Raw category spellings are normalized
// to canonical categories; unknown categories, missing ids and duplicate
// ids are rejected.
func LoadSeed(r io.Reader) ([]model.Component, error) {
	var doc seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []model.Component{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	seen := make(map[string]struct{}, len(doc.Components))
	for i := range doc.Components {
		c := &doc.Components[i]
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidSeed, i)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidSeed, c.ID)
		}
		seen[c.ID] = struct{}{}

		cat, ok := model.ParseCategory(string(c.Category))
		if !ok {
			return nil, fmt.Errorf("%w: %q has unknown category %q", ErrInvalidSeed, c.ID, c.Category)
		}
		c.Category = cat
	}
	if doc.Components == nil {
		doc.Components = []model.Component{}
	}
	return doc.Components, nil
}

// Package preset narrows the catalog per build slot according to a named
// combination of budget, skill level, frame size and usage scene.
package preset

import (
	"sort"

	"github.com/stiyes/fpvforge/internal/domain/model"
	"github.com/stiyes/fpvforge/internal/domain/specfield"
)

// DefaultMultiplier applies when a preset leaves Multiplier unset.
const DefaultMultiplier = 1.5

// Built-in preset names.
const (
	NameEntryWhoop = "entry-whoop"
	NameFreestyle5 = "freestyle-5"
	NameCinewhoop3 = "cinewhoop-3"
	NameLongRange7 = "long-range-7"
	NameOpen       = "open"
)

// Preset is a set of catalog constraints. Zero values disable a criterion;
// a zero Budget means unbounded.
type Preset struct {
	Name       string           `json:"name" koanf:"name"`
	Budget     float64          `json:"budget" koanf:"budget"`
	Multiplier float64          `json:"multiplier" koanf:"multiplier"`
	Level      model.SkillLevel `json:"level,omitempty" koanf:"level"`
	FrameSize  string           `json:"frame_size,omitempty" koanf:"frame_size"`
	Scene      string           `json:"scene,omitempty" koanf:"scene"`
}

// SlotCap returns the per-slot price ceiling and whether one applies.
func (p Preset) SlotCap() (float64, bool) {
	if p.Budget <= 0 {
		return 0, false
	}
	m := p.Multiplier
	if m <= 0 {
		m = DefaultMultiplier
	}
	return p.Budget / model.SlotCount * m, true
}

// Allows reports whether c satisfies every active criterion. A component
// without a size token is size-agnostic and passes the frame-size check.
func (p Preset) Allows(c *model.Component) bool {
	if p.Level != "" && c.Level != p.Level {
		return false
	}
	if limit, ok := p.SlotCap(); ok && c.Price > limit {
		return false
	}
	if want := specfield.SizeToken(p.FrameSize); want != "" {
		if size, ok := specfield.Size(c.Specs); ok && !specfield.ContainsEither(size, want) {
			return false
		}
	}
	if p.Scene != "" && !c.HasScene(p.Scene) {
		return false
	}
	return true
}

// Filter groups the catalog by slot, keeping catalog order and dropping
// components that fail p. Every slot is present in the result; categories
// that are not build slots are skipped.
func Filter(catalog []model.Component, p Preset) map[model.Slot][]model.Component {
	out := make(map[model.Slot][]model.Component, model.SlotCount)
	for _, slot := range model.Slots() {
		out[slot] = []model.Component{}
	}
	for i := range catalog {
		c := &catalog[i]
		slot, ok := c.Category.Slot()
		if !ok || !p.Allows(c) {
			continue
		}
		out[slot] = append(out[slot], *c)
	}
	return out
}

// Defaults returns the built-in presets keyed by name.
func Defaults() map[string]Preset {
	return map[string]Preset{
		NameEntryWhoop: {
			Name: NameEntryWhoop, Budget: 1500, Multiplier: 1.5,
			Level: model.LevelEntry, Scene: "室内",
		},
		NameFreestyle5: {
			Name: NameFreestyle5, Budget: 3000, Multiplier: 1.8,
			FrameSize: "5寸", Scene: "花飞",
		},
		NameCinewhoop3: {
			Name: NameCinewhoop3, Budget: 2500, Multiplier: 1.8,
			FrameSize: "3寸", Scene: "航拍",
		},
		NameLongRange7: {
			Name: NameLongRange7, Budget: 5000, Multiplier: 2.2,
			FrameSize: "7寸", Scene: "远航",
		},
		NameOpen: {Name: NameOpen},
	}
}

// Registry resolves presets by name.
type Registry struct {
	presets map[string]Preset
}

// Option configures a Registry.
type Option func(*Registry)

// WithPresets adds or replaces presets. Entries are keyed by map key; an
// empty Name is filled from it.
func WithPresets(presets map[string]Preset) Option {
	return func(r *Registry) {
		for name, p := range presets {
			if p.Name == "" {
				p.Name = name
			}
			r.presets[name] = p
		}
	}
}

// NewRegistry creates a registry seeded with Defaults.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{presets: Defaults()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get looks up a preset by name.
func (r *Registry) Get(name string) (Preset, bool) {
	p, ok := r.presets[name]
	return p, ok
}

// List returns every preset sorted by name.
func (r *Registry) List() []Preset {
	out := make([]Preset, 0, len(r.presets))
	for _, p := range r.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

package browse

import (
	"sort"

	"github.com/stiyes/fpvforge/internal/domain/model"
)

// Facets lists the values a catalog can be filtered by.
type Facets struct {
	Brands     []string         `json:"brands"`
	Scenes     []string         `json:"scenes"`
	Categories []model.Category `json:"categories"`
	MinPrice   float64          `json:"min_price"`
	MaxPrice   float64          `json:"max_price"`
}

// BuildFacets collects sorted distinct brands and scenes, the categories
// present in catalog order of Categories(), and the price range.
func BuildFacets(catalog []model.Component) Facets {
	brands := map[string]struct{}{}
	scenes := map[string]struct{}{}
	cats := map[model.Category]struct{}{}
	f := Facets{Brands: []string{}, Scenes: []string{}, Categories: []model.Category{}}

	for i, c := range catalog {
		if c.Brand != "" {
			brands[c.Brand] = struct{}{}
		}
		for _, s := range c.Scenes {
			scenes[s] = struct{}{}
		}
		cats[c.Category] = struct{}{}
		if i == 0 || c.Price < f.MinPrice {
			f.MinPrice = c.Price
		}
		if i == 0 || c.Price > f.MaxPrice {
			f.MaxPrice = c.Price
		}
	}

	f.Brands = sortedKeys(brands, f.Brands)
	f.Scenes = sortedKeys(scenes, f.Scenes)
	for _, c := range model.Categories() {
		if _, ok := cats[c]; ok {
			f.Categories = append(f.Categories, c)
		}
	}
	return f
}

// Stats summarizes a catalog.
type Stats struct {
	Total      int                      `json:"total"`
	Brands     int                      `json:"brands"`
	AvgPrice   float64                  `json:"avg_price"`
	AvgRating  float64                  `json:"avg_rating"`
	InStock    int                      `json:"in_stock"`
	ByCategory map[model.Category]int   `json:"by_category"`
	ByLevel    map[model.SkillLevel]int `json:"by_level"`
	ByOrigin   map[model.Origin]int     `json:"by_origin"`
}

// BuildStats computes catalog statistics. Averages are 0 for an empty
// catalog and the rating average only counts rated components.
func BuildStats(catalog []model.Component) Stats {
	s := Stats{
		Total:      len(catalog),
		ByCategory: map[model.Category]int{},
		ByLevel:    map[model.SkillLevel]int{},
		ByOrigin:   map[model.Origin]int{},
	}
	brands := map[string]struct{}{}
	var priceSum, ratingSum float64
	var rated int
	for i := range catalog {
		c := &catalog[i]
		brands[c.Brand] = struct{}{}
		priceSum += c.Price
		if c.Rating > 0 {
			ratingSum += c.Rating
			rated++
		}
		if c.Available() {
			s.InStock++
		}
		s.ByCategory[c.Category]++
		if c.Level != "" {
			s.ByLevel[c.Level]++
		}
		if c.Origin != "" {
			s.ByOrigin[c.Origin]++
		}
	}
	s.Brands = len(brands)
	if s.Total > 0 {
		s.AvgPrice = priceSum / float64(s.Total)
	}
	if rated > 0 {
		s.AvgRating = ratingSum / float64(rated)
	}
	return s
}

func sortedKeys(set map[string]struct{}, dst []string) []string {
	for k := range set {
		dst = append(dst, k)
	}
	sort.Strings(dst)
	return dst
}

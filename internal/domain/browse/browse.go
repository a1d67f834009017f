// Package browse implements catalog search, filtering, sorting, paging and
// the aggregate views built on top of a catalog snapshot.
package browse

import (
	"math"
	"sort"
	"strings"

	"github.com/stiyes/fpvforge/internal/domain/model"
)

// SortOption orders a result set.
type SortOption string

// Sort options.
const (
	SortNone      SortOption = ""
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortRating    SortOption = "rating-desc"
	SortNewest    SortOption = "newest"
	SortPopular   SortOption = "popular"
)

// Paging defaults.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParseSort validates a raw sort option.
func ParseSort(raw string) (SortOption, bool) {
	switch s := SortOption(strings.TrimSpace(raw)); s {
	case SortNone, SortPriceAsc, SortPriceDesc, SortRating, SortNewest, SortPopular:
		return s, true
	}
	return SortNone, false
}

// Query selects a page of the catalog. Empty slices and nil bounds disable
// the corresponding filter; list filters are any-of.
type Query struct {
	Search      string
	Categories  []model.Category
	Brands      []string
	Levels      []model.SkillLevel
	Origins     []model.Origin
	Scenes      []string
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly bool
	Sort        SortOption
	Page        int
	PageSize    int
}

// Page is one slice of a filtered result.
type Page struct {
	Items      []model.Component `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// Matches reports whether c passes every filter of q.
func (q Query) Matches(c *model.Component) bool {
	if q.Search != "" && !matchesSearch(c, strings.ToLower(strings.TrimSpace(q.Search))) {
		return false
	}
	if len(q.Categories) > 0 && !contains(q.Categories, c.Category) {
		return false
	}
	if len(q.Brands) > 0 && !contains(q.Brands, c.Brand) {
		return false
	}
	if len(q.Levels) > 0 && !contains(q.Levels, c.Level) {
		return false
	}
	if len(q.Origins) > 0 && !contains(q.Origins, c.Origin) {
		return false
	}
	if len(q.Scenes) > 0 && !anyScene(c, q.Scenes) {
		return false
	}
	if q.MinPrice != nil && c.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && c.Price > *q.MaxPrice {
		return false
	}
	if q.InStockOnly && !c.Available() {
		return false
	}
	return true
}

// Run filters, sorts and pages catalog. maxPageSize caps the requested
// page size; zero uses MaxPageSize. Out-of-range pages are clamped.
func Run(catalog []model.Component, q Query, maxPageSize int) Page {
	matched := make([]model.Component, 0, len(catalog))
	for i := range catalog {
		if q.Matches(&catalog[i]) {
			matched = append(matched, catalog[i])
		}
	}
	Sort(matched, q.Sort)

	if maxPageSize <= 0 {
		maxPageSize = MaxPageSize
	}
	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	total := len(matched)
	pages := int(math.Ceil(float64(total) / float64(size)))
	page := q.Page
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	end := min(start+size, total)
	items := []model.Component{}
	if start < end {
		items = matched[start:end]
	}
	return Page{Items: items, Total: total, Page: page, PageSize: size, TotalPages: pages}
}

// Sort orders list in place. Ties keep their catalog order.
func Sort(list []model.Component, by SortOption) {
	var less func(a, b *model.Component) bool
	switch by {
	case SortPriceAsc:
		less = func(a, b *model.Component) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b *model.Component) bool { return a.Price > b.Price }
	case SortRating:
		less = func(a, b *model.Component) bool { return a.Rating > b.Rating }
	case SortNewest:
		less = func(a, b *model.Component) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortPopular:
		less = func(a, b *model.Component) bool { return a.ReviewCount > b.ReviewCount }
	default:
		return
	}
	sort.SliceStable(list, func(i, j int) bool { return less(&list[i], &list[j]) })
}

func matchesSearch(c *model.Component, needle string) bool {
	for _, hay := range []string{c.Name, c.Brand, c.BrandCN, c.BrandEN, c.SKU} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func anyScene(c *model.Component, scenes []string) bool {
	for _, s := range scenes {
		if c.HasScene(s) {
			return true
		}
	}
	return false
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

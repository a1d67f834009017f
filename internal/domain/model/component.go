package model

import "time"

// SkillLevel grades how demanding a component is to build with.
type SkillLevel string

// Skill levels.
const (
	LevelEntry        SkillLevel = "entry"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelProfessional SkillLevel = "professional"
)

// Origin tells domestic and imported brands apart.
type Origin string

// Origins.
const (
	OriginDomestic      Origin = "domestic"
	OriginInternational Origin = "international"
)

// Specs is the free-form specification bag of a component. Values are
// numbers, strings or booleans and the key vocabulary is open; read it
// through the specfield accessors.
type Specs map[string]any

// Component is an inventory item of the catalog.
type Component struct {
	ID             string     `json:"id" yaml:"id"`
	SKU            string     `json:"sku" yaml:"sku"`
	Name           string     `json:"name" yaml:"name"`
	Brand          string     `json:"brand" yaml:"brand"`
	BrandCN        string     `json:"brand_cn,omitempty" yaml:"brand_cn"`
	BrandEN        string     `json:"brand_en,omitempty" yaml:"brand_en"`
	Category       Category   `json:"category" yaml:"category"`
	SubCategory    string     `json:"sub_category,omitempty" yaml:"sub_category"`
	Price          float64    `json:"price" yaml:"price"`
	Level          SkillLevel `json:"level" yaml:"level"`
	Weight         float64    `json:"weight,omitempty" yaml:"weight"`
	Rating         float64    `json:"rating,omitempty" yaml:"rating"`
	ReviewCount    int        `json:"review_count,omitempty" yaml:"review_count"`
	Specs          Specs      `json:"specs" yaml:"specs"`
	Origin         Origin     `json:"origin,omitempty" yaml:"origin"`
	Source         string     `json:"source,omitempty" yaml:"source"`
	Scenes         []string   `json:"scenes,omitempty" yaml:"scenes"`
	Material       string     `json:"material,omitempty" yaml:"material"`
	Mounting       string     `json:"mounting,omitempty" yaml:"mounting"`
	Remarks        string     `json:"remarks,omitempty" yaml:"remarks"`
	ImageURL       string     `json:"image_url,omitempty" yaml:"image_url"`
	InStock        *bool      `json:"in_stock,omitempty" yaml:"in_stock"`
	CompatibleWith []string   `json:"compatible_with,omitempty" yaml:"compatible_with"`
	Tags           []string   `json:"tags,omitempty" yaml:"tags"`
	CreatedAt      time.Time  `json:"created_at,omitempty" yaml:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at,omitempty" yaml:"updated_at"`
}

// Available reports whether the component counts as in stock. A missing
// stock flag means available.
func (c *Component) Available() bool {
	return c.InStock == nil || *c.InStock
}

// DisplayBrand renders the brand as "中文 / English" when both spellings
// exist and differ, falling back to whichever is set.
func (c *Component) DisplayBrand() string {
	en := c.BrandEN
	if en == "" {
		en = c.Brand
	}
	switch {
	case c.BrandCN != "" && en != "" && c.BrandCN != en:
		return c.BrandCN + " / " + en
	case c.BrandCN != "":
		return c.BrandCN
	case en != "":
		return en
	}
	return c.Brand
}

// HasScene reports whether the component is tagged with scene.
func (c *Component) HasScene(scene string) bool {
	for _, s := range c.Scenes {
		if s == scene {
			return true
		}
	}
	return false
}

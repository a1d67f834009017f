package model

import "time"

// Build is a saved selection. Parts map slots to component ids so the
// record survives catalog edits.
type Build struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parts       map[Slot]string `json:"parts"`
	TotalPrice  float64         `json:"total_price"`
	TotalWeight float64         `json:"total_weight"`
	Level       SkillLevel      `json:"level,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Public      bool            `json:"public"`
	CreatedAt   time.Time       `json:"created_at"`
}

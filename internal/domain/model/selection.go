package model

// Selection maps each build slot to at most one chosen component. A nil or
// missing entry is an empty slot.
type Selection map[Slot]*Component

// Get returns the component in slot, if one is selected.
func (s Selection) Get(slot Slot) (*Component, bool) {
	c, ok := s[slot]
	if !ok || c == nil {
		return nil, false
	}
	return c, true
}

// Has reports whether every given slot is filled.
func (s Selection) Has(slots ...Slot) bool {
	for _, slot := range slots {
		if _, ok := s.Get(slot); !ok {
			return false
		}
	}
	return true
}

// Components returns the selected components in canonical slot order.
// Entries keyed by something other than a build slot are ignored.
func (s Selection) Components() []*Component {
	out := make([]*Component, 0, len(s))
	for _, slot := range Slots() {
		if c, ok := s.Get(slot); ok {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the number of filled slots.
func (s Selection) Count() int {
	return len(s.Components())
}

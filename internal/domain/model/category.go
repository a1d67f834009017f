// Package model contains domain models passed between layers.
package model

import "strings"

// Category is the catalog category of a component.
type Category string

// Catalog categories. The first twelve double as build slots.
const (
	CategoryFrame            Category = "frame"
	CategoryMotor            Category = "motor"
	CategoryPropeller        Category = "propeller"
	CategoryESC              Category = "esc"
	CategoryFlightController Category = "flight-controller"
	CategoryCamera           Category = "camera"
	CategoryVideoTransmitter Category = "video-transmitter"
	CategoryAntenna          Category = "antenna"
	CategoryReceiver         Category = "receiver"
	CategoryBattery          Category = "battery"
	CategoryGoggles          Category = "goggles"
	CategoryRadio            Category = "radio"
	CategoryCharger          Category = "charger"
	CategoryAccessory        Category = "accessory"
	CategoryGPS              Category = "gps"
	CategoryTool             Category = "tool"
)

// categoryAliases maps raw catalog spellings onto canonical categories.
var categoryAliases = map[string]Category{
	"fc":                CategoryFlightController,
	"flight_controller": CategoryFlightController,
	"flightcontroller":  CategoryFlightController,
	"goggle":            CategoryGoggles,
	"vtx":               CategoryVideoTransmitter,
	"video_transmitter": CategoryVideoTransmitter,
	"motors":            CategoryMotor,
	"propellers":        CategoryPropeller,
}

// Categories returns every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryFrame, CategoryMotor, CategoryPropeller, CategoryESC,
		CategoryFlightController, CategoryCamera, CategoryVideoTransmitter,
		CategoryAntenna, CategoryReceiver, CategoryBattery, CategoryGoggles,
		CategoryRadio, CategoryCharger, CategoryAccessory, CategoryGPS, CategoryTool,
	}
}

// ParseCategory normalizes a raw category string, collapsing known aliases.
// The second result is false for unknown categories.
func ParseCategory(raw string) (Category, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if c, ok := categoryAliases[s]; ok {
		return c, true
	}
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return Category(s), false
}

// Slot is one of the twelve functional positions of a build.
type Slot string

// Build slots.
const (
	SlotFrame            = Slot(CategoryFrame)
	SlotMotor            = Slot(CategoryMotor)
	SlotPropeller        = Slot(CategoryPropeller)
	SlotESC              = Slot(CategoryESC)
	SlotFlightController = Slot(CategoryFlightController)
	SlotCamera           = Slot(CategoryCamera)
	SlotVideoTransmitter = Slot(CategoryVideoTransmitter)
	SlotAntenna          = Slot(CategoryAntenna)
	SlotReceiver         = Slot(CategoryReceiver)
	SlotBattery          = Slot(CategoryBattery)
	SlotGoggles          = Slot(CategoryGoggles)
	SlotRadio            = Slot(CategoryRadio)
)

// SlotCount is the number of build slots.
const SlotCount = 12

// Slots returns the build slots in canonical order.
func Slots() []Slot {
	return []Slot{
		SlotFrame, SlotMotor, SlotPropeller, SlotESC, SlotFlightController,
		SlotCamera, SlotVideoTransmitter, SlotAntenna, SlotReceiver,
		SlotBattery, SlotGoggles, SlotRadio,
	}
}

// Slot reports the build slot a category occupies, if any.
func (c Category) Slot() (Slot, bool) {
	s := Slot(c)
	return s, s.Valid()
}

// Valid reports whether s is one of the twelve build slots.
func (s Slot) Valid() bool {
	for _, slot := range Slots() {
		if slot == s {
			return true
		}
	}
	return false
}

// ParseSlot normalizes a raw slot name using the category aliases.
func ParseSlot(raw string) (Slot, bool) {
	c, ok := ParseCategory(raw)
	if !ok {
		return Slot(c), false
	}
	return c.Slot()
}

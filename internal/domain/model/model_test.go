package model_test

import (
	"testing"

	model "github.com/stiyes/fpvforge/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseCategory(t *testing.T) {
	Convey("Given raw category spellings", t, func() {
		cases := map[string]model.Category{
			"frame":             model.CategoryFrame,
			" Frame ":           model.CategoryFrame,
			"fc":                model.CategoryFlightController,
			"flight_controller": model.CategoryFlightController,
			"FlightController":  model.CategoryFlightController,
			"goggle":            model.CategoryGoggles,
			"VTX":               model.CategoryVideoTransmitter,
			"propellers":        model.CategoryPropeller,
			"charger":           model.CategoryCharger,
		}
		for raw, want := range cases {
			got, ok := model.ParseCategory(raw)
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, want)
		}

		Convey("Then unknown spellings are rejected", func() {
			_, ok := model.ParseCategory("blimp")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestSlots(t *testing.T) {
	Convey("Given the build slots", t, func() {
		So(model.Slots(), ShouldHaveLength, model.SlotCount)

		Convey("Then only build categories map to slots", func() {
			slot, ok := model.CategoryFrame.Slot()
			So(ok, ShouldBeTrue)
			So(slot, ShouldEqual, model.SlotFrame)

			_, ok = model.CategoryCharger.Slot()
			So(ok, ShouldBeFalse)
		})

		Convey("Then slot names accept category aliases", func() {
			slot, ok := model.ParseSlot("fc")
			So(ok, ShouldBeTrue)
			So(slot, ShouldEqual, model.SlotFlightController)

			_, ok = model.ParseSlot("tool")
			So(ok, ShouldBeFalse)
			_, ok = model.ParseSlot("nonsense")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestSelection(t *testing.T) {
	Convey("Given a sparse selection", t, func() {
		frame := &model.Component{ID: "f"}
		motor := &model.Component{ID: "m"}
		sel := model.Selection{
			model.SlotMotor:   motor,
			model.SlotFrame:   frame,
			model.SlotBattery: nil,
			"charger":         {ID: "c"},
		}

		Convey("Then nil entries count as empty", func() {
			_, ok := sel.Get(model.SlotBattery)
			So(ok, ShouldBeFalse)
			So(sel.Has(model.SlotFrame, model.SlotMotor), ShouldBeTrue)
			So(sel.Has(model.SlotFrame, model.SlotBattery), ShouldBeFalse)
		})

		Convey("Then components come back in slot order without stray keys", func() {
			list := sel.Components()
			So(list, ShouldHaveLength, 2)
			So(list[0].ID, ShouldEqual, "f")
			So(list[1].ID, ShouldEqual, "m")
			So(sel.Count(), ShouldEqual, 2)
		})
	})
}

func TestComponent(t *testing.T) {
	Convey("Given components with various brand spellings", t, func() {
		So((&model.Component{BrandCN: "银燕", BrandEN: "BetaFPV"}).DisplayBrand(), ShouldEqual, "银燕 / BetaFPV")
		So((&model.Component{BrandCN: "T-Motor", Brand: "T-Motor"}).DisplayBrand(), ShouldEqual, "T-Motor")
		So((&model.Component{BrandCN: "银燕"}).DisplayBrand(), ShouldEqual, "银燕")
		So((&model.Component{Brand: "iFlight"}).DisplayBrand(), ShouldEqual, "iFlight")
	})

	Convey("Given stock flags", t, func() {
		no := false
		So((&model.Component{}).Available(), ShouldBeTrue)
		So((&model.Component{InStock: &no}).Available(), ShouldBeFalse)
	})

	Convey("Given scene tags", t, func() {
		c := &model.Component{Scenes: []string{"花飞", "竞速"}}
		So(c.HasScene("竞速"), ShouldBeTrue)
		So(c.HasScene("航拍"), ShouldBeFalse)
	})
}

package compat_test

import (
	"strings"
	"testing"

	"github.com/stiyes/fpvforge/internal/domain/compat"
	"github.com/stiyes/fpvforge/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func part(id string, cat model.Category, specs model.Specs) *model.Component {
	return &model.Component{ID: id, Category: cat, Specs: specs}
}

func TestFramePropSize(t *testing.T) {
	Convey("Given a frame and a propeller", t, func() {
		frame := part("f1", model.CategoryFrame, model.Specs{"尺寸": "5寸"})

		Convey("When the sizes agree", func() {
			sel := model.Selection{
				model.SlotFrame:     frame,
				model.SlotPropeller: part("p1", model.CategoryPropeller, model.Specs{"桨叶": "5寸"}),
			}
			So(compat.Evaluate(sel), ShouldBeEmpty)
		})

		Convey("When the sizes differ", func() {
			sel := model.Selection{
				model.SlotFrame:     frame,
				model.SlotPropeller: part("p1", model.CategoryPropeller, model.Specs{"尺寸": "3寸"}),
			}
			warnings := compat.Evaluate(sel)

			Convey("Then exactly one warning names both tokens", func() {
				So(warnings, ShouldHaveLength, 1)
				So(warnings[0], ShouldContainSubstring, "5寸")
				So(warnings[0], ShouldContainSubstring, "3寸")
			})
		})

		Convey("When the propeller size is missing", func() {
			sel := model.Selection{
				model.SlotFrame:     frame,
				model.SlotPropeller: part("p1", model.CategoryPropeller, model.Specs{"尺寸": "-"}),
			}
			So(compat.Evaluate(sel), ShouldBeEmpty)
		})
	})
}

func TestMotorKVCells(t *testing.T) {
	Convey("Given a motor and a battery", t, func() {
		build := func(kv, cells any) model.Selection {
			return model.Selection{
				model.SlotMotor:   part("m", model.CategoryMotor, model.Specs{"KV": kv}),
				model.SlotBattery: part("b", model.CategoryBattery, model.Specs{"S": cells}),
			}
		}

		Convey("Then high KV on 6S warns", func() {
			w := compat.Evaluate(build(2600, 6))
			So(w, ShouldHaveLength, 1)
			So(w[0], ShouldContainSubstring, "too high")
		})

		Convey("Then moderate KV on 6S is fine", func() {
			So(compat.Evaluate(build(1800, 6)), ShouldBeEmpty)
		})

		Convey("Then low KV on 2S warns", func() {
			w := compat.Evaluate(build(8000, 2))
			So(w, ShouldHaveLength, 1)
			So(w[0], ShouldContainSubstring, "insufficient power")
		})

		Convey("Then whoop KV on 1S is fine", func() {
			So(compat.Evaluate(build(19000, 1)), ShouldBeEmpty)
		})

		Convey("Then unparseable values are ignored", func() {
			So(compat.Evaluate(build(2600, "6S")), ShouldBeEmpty)
			So(compat.Evaluate(build("", 6)), ShouldBeEmpty)
		})
	})
}

func TestESCMotorCurrent(t *testing.T) {
	Convey("Given an ESC and a motor", t, func() {
		build := func(esc, motor any) model.Selection {
			return model.Selection{
				model.SlotESC:   part("e", model.CategoryESC, model.Specs{"电流": esc}),
				model.SlotMotor: part("m", model.CategoryMotor, model.Specs{"最大电流": motor}),
			}
		}

		So(compat.Evaluate(build(20, 90)), ShouldHaveLength, 1)
		So(compat.Evaluate(build(30, 100)), ShouldBeEmpty)

		Convey("Then ESCs at or above the ceiling are never flagged", func() {
			So(compat.Evaluate(build(35, 500)), ShouldBeEmpty)
		})
	})
}

func TestFCFrameMount(t *testing.T) {
	Convey("Given a flight controller and a frame", t, func() {
		build := func(fcMount, frameMount string) model.Selection {
			return model.Selection{
				model.SlotFlightController: part("fc", model.CategoryFlightController, model.Specs{"安装": fcMount}),
				model.SlotFrame:            part("f", model.CategoryFrame, model.Specs{"安装孔": frameMount}),
			}
		}

		Convey("When the frame lists the FC pattern", func() {
			So(compat.Evaluate(build("30.5x30.5mm", "30.530.5/2020")), ShouldBeEmpty)
		})

		Convey("When it does not", func() {
			w := compat.Evaluate(build("20x20", "30.5x30.5"))
			So(w, ShouldHaveLength, 1)
			So(w[0], ShouldContainSubstring, "20x20")
		})
	})
}

func TestCameraVoltage(t *testing.T) {
	Convey("Given a camera", t, func() {
		build := func(v string) model.Selection {
			return model.Selection{
				model.SlotCamera: part("c", model.CategoryCamera, model.Specs{"电压": v}),
			}
		}

		So(compat.Evaluate(build("5-36V")), ShouldBeEmpty)
		So(compat.Evaluate(build("3.3V")), ShouldBeEmpty)
		So(compat.Evaluate(build("12V")), ShouldHaveLength, 1)
		So(compat.Evaluate(build("")), ShouldBeEmpty)
	})
}

func TestEngine(t *testing.T) {
	Convey("Given an empty selection", t, func() {
		Convey("Then no rule fires", func() {
			So(compat.Evaluate(model.Selection{}), ShouldBeEmpty)
			So(compat.Evaluate(nil), ShouldBeEmpty)
		})
	})

	Convey("Given a selection missing a required partner", t, func() {
		sel := model.Selection{
			model.SlotFrame: part("f", model.CategoryFrame, model.Specs{"尺寸": "5寸"}),
			model.SlotMotor: part("m", model.CategoryMotor, model.Specs{"KV": 2600}),
		}
		So(compat.Evaluate(sel), ShouldBeEmpty)
	})

	Convey("Given several violations", t, func() {
		sel := model.Selection{
			model.SlotCamera:    part("c", model.CategoryCamera, model.Specs{"电压": "12V"}),
			model.SlotFrame:     part("f", model.CategoryFrame, model.Specs{"尺寸": "5寸"}),
			model.SlotPropeller: part("p", model.CategoryPropeller, model.Specs{"尺寸": "3寸"}),
			model.SlotMotor:     part("m", model.CategoryMotor, model.Specs{"KV": 2600}),
			model.SlotBattery:   part("b", model.CategoryBattery, model.Specs{"S": 6}),
		}
		findings := compat.NewEngine().Findings(sel)

		Convey("Then findings follow rule declaration order", func() {
			So(findings, ShouldHaveLength, 3)
			So(findings[0].Rule, ShouldEqual, compat.RuleFramePropSize)
			So(findings[1].Rule, ShouldEqual, compat.RuleMotorKVCells)
			So(findings[2].Rule, ShouldEqual, compat.RuleCameraVoltage)
		})

		Convey("And evaluation is repeatable", func() {
			So(compat.Evaluate(sel), ShouldResemble, compat.Evaluate(sel))
		})
	})

	Convey("Given a custom rule list", t, func() {
		e := compat.NewEngine(compat.WithRules(compat.Rule{
			ID:            "always",
			RequiredSlots: []model.Slot{model.SlotRadio},
			Evaluate:      func(model.Selection) []string { return []string{"radio present"} },
		}))

		So(e.Evaluate(model.Selection{}), ShouldBeEmpty)
		So(e.Evaluate(model.Selection{model.SlotRadio: part("r", model.CategoryRadio, nil)}), ShouldResemble, []string{"radio present"})
		So(e.Rules(), ShouldHaveLength, 1)
	})
}

func TestCompatibleIDs(t *testing.T) {
	Convey("Given components with explicit compatibility lists", t, func() {
		frame := part("f1", model.CategoryFrame, nil)
		frame.CompatibleWith = []string{"m1", "SKU-P1"}
		motor := part("m1", model.CategoryMotor, nil)
		prop := part("p1", model.CategoryPropeller, nil)
		prop.SKU = "SKU-P1"
		esc := part("e1", model.CategoryESC, nil)
		sel := model.Selection{
			model.SlotFrame:     frame,
			model.SlotMotor:     motor,
			model.SlotPropeller: prop,
			model.SlotESC:       esc,
		}

		Convey("Then unlisted partners are computed by id or SKU", func() {
			unlisted := compat.UnlistedPartners(sel)
			So(unlisted, ShouldHaveLength, 1)
			So(unlisted[model.SlotFrame], ShouldResemble, []string{"e1"})
		})

		Convey("But the rule never reports them", func() {
			for _, w := range compat.Evaluate(sel) {
				So(strings.Contains(w, "e1"), ShouldBeFalse)
			}
			So(compat.Evaluate(sel), ShouldBeEmpty)
		})
	})
}

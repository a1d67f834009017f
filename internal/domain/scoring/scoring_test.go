package scoring_test

import (
	"testing"

	"github.com/stiyes/fpvforge/internal/domain/model"
	"github.com/stiyes/fpvforge/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func fullBuild(rating, price float64) model.Selection {
	sel := model.Selection{}
	for _, slot := range model.Slots() {
		sel[slot] = &model.Component{ID: string(slot), Category: model.Category(slot), Price: price, Rating: rating}
	}
	return sel
}

func TestScore(t *testing.T) {
	Convey("Given an empty selection", t, func() {
		res := scoring.Score(model.Selection{})

		Convey("Then every dimension falls back to its default", func() {
			So(res.CostPerformance, ShouldEqual, 50)
			So(res.Functionality, ShouldEqual, 0)
			So(res.Scalability, ShouldEqual, 40)
			So(res.Labels, ShouldNotBeNil)
			So(res.Labels, ShouldBeEmpty)
		})

		Convey("And nil behaves the same", func() {
			So(scoring.Score(nil), ShouldResemble, res)
		})
	})

	Convey("Given a single cheap, well-rated part", t, func() {
		sel := model.Selection{
			model.SlotFrame: {ID: "f", Price: 50, Rating: 5},
		}
		res := scoring.Score(sel)

		Convey("Then cost-performance follows the log-price formula", func() {
			// 30 + 5*20/log10(150) = 75.95
			So(res.CostPerformance, ShouldEqual, 76)
			// 1/12*60 + 5/5*40 = 45
			So(res.Functionality, ShouldEqual, 45)
			So(res.Labels, ShouldResemble, []string{scoring.LabelGoodValue})
		})

		Convey("And scoring is idempotent", func() {
			So(scoring.Score(sel), ShouldResemble, res)
		})
	})

	Convey("Given an expensive, poorly rated part", t, func() {
		res := scoring.Score(model.Selection{
			model.SlotMotor: {ID: "m", Price: 1000, Rating: 1},
		})
		So(res.CostPerformance, ShouldEqual, 37)
		So(res.Labels, ShouldContain, scoring.LabelOverBudget)
	})

	Convey("Given a complete, top-rated build with upgrade hooks", t, func() {
		sel := fullBuild(5, 100)
		sel[model.SlotFrame].Specs = model.Specs{"安装孔": "30.5x30.5"}
		sel[model.SlotMotor].CompatibleWith = []string{"frame"}
		res := scoring.Score(sel)

		Convey("Then scores are capped at 100", func() {
			So(res.Functionality, ShouldEqual, 100)
			So(res.Scalability, ShouldEqual, 100)
			So(res.CostPerformance, ShouldBeLessThanOrEqualTo, 100)
			So(res.Labels, ShouldContain, scoring.LabelComplete)
			So(res.Labels, ShouldContain, scoring.LabelUpgradeable)
		})
	})

	Convey("Given the scalability bonuses", t, func() {
		Convey("Then a mounting field counts as a mount spec", func() {
			res := scoring.Score(model.Selection{model.SlotFrame: {Mounting: "M3"}})
			So(res.Scalability, ShouldEqual, 65)
		})

		Convey("Then a compatible list adds its bonus", func() {
			res := scoring.Score(model.Selection{model.SlotFrame: {CompatibleWith: []string{"x"}}})
			So(res.Scalability, ShouldEqual, 60)
		})

		Convey("Then eight parts add the size bonus", func() {
			sel := fullBuild(0, 10)
			for _, slot := range model.Slots()[8:] {
				delete(sel, slot)
			}
			So(scoring.Score(sel).Scalability, ShouldEqual, 55)
		})
	})

	Convey("Given a build that gains a better, cheaper part", t, func() {
		before := model.Selection{model.SlotFrame: {Price: 100, Rating: 4}}
		after := model.Selection{
			model.SlotFrame: {Price: 100, Rating: 4},
			model.SlotMotor: {Price: 10, Rating: 5},
		}

		Convey("Then cost-performance does not decrease", func() {
			So(scoring.Score(after).CostPerformance, ShouldBeGreaterThanOrEqualTo, scoring.Score(before).CostPerformance)
		})
	})

	Convey("Given labels that all apply", t, func() {
		sel := fullBuild(5, 1)
		sel[model.SlotFrame].Mounting = "M3"
		sel[model.SlotFrame].CompatibleWith = []string{"x"}
		res := scoring.Score(sel)

		Convey("Then they keep the declared order", func() {
			So(res.Labels, ShouldResemble, []string{scoring.LabelGoodValue, scoring.LabelComplete, scoring.LabelUpgradeable})
		})
	})
}

func TestTotals(t *testing.T) {
	Convey("Given a partial build", t, func() {
		sel := model.Selection{
			model.SlotFrame:   {Price: 199, Weight: 120},
			model.SlotBattery: {Price: 89.5, Weight: 230},
			model.SlotRadio:   nil,
		}
		sum := scoring.Totals(sel)
		So(sum.Price, ShouldEqual, 288.5)
		So(sum.Weight, ShouldEqual, 350)
		So(sum.Count, ShouldEqual, 2)
		So(sum.Slots, ShouldEqual, model.SlotCount)
	})
}

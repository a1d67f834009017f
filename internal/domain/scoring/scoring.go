// Package scoring rates a build selection on cost-performance,
// functionality and scalability, each in [0, 100].
package scoring

import (
	"math"

	"github.com/stiyes/fpvforge/internal/domain/model"
	"github.com/stiyes/fpvforge/internal/domain/specfield"
)

// Scoring constants.
const (
	maxScoreValue = 100

	emptyCostPerformance = 50
	costBase             = 30
	costRatingWeight     = 20
	costPriceOffset      = 100

	completenessWeight = 60
	ratingWeight       = 40
	maxRating          = 5

	scalabilityBase     = 40
	mountBonus          = 25
	compatibleListBonus = 20
	largeBuildBonus     = 15
	largeBuildMinimum   = 8
)

// Label thresholds.
const (
	goodValueThreshold   = 75
	poorValueThreshold   = 50
	completeThreshold    = 80
	upgradeableThreshold = 70
)

// Labels, in the order they are emitted.
const (
	LabelGoodValue   = "cost-performance notably good"
	LabelOverBudget  = "consider optimizing budget"
	LabelComplete    = "feature-complete"
	LabelUpgradeable = "easy to upgrade later"
)

// Result is the score of one selection.
type Result struct {
	CostPerformance int      `json:"cost_performance"`
	Functionality   int      `json:"functionality"`
	Scalability     int      `json:"scalability"`
	Labels          []string `json:"labels"`
}

// Summary aggregates the selected components.
type Summary struct {
	Price  float64 `json:"price"`
	Weight float64 `json:"weight"`
	Count  int     `json:"count"`
	Slots  int     `json:"slots"`
}

// Totals sums price and weight over the selection.
func Totals(sel model.Selection) Summary {
	s := Summary{Slots: model.SlotCount}
	for _, c := range sel.Components() {
		s.Price += c.Price
		s.Weight += c.Weight
		s.Count++
	}
	return s
}

// Score computes every dimension from scratch. It is a pure function of
// sel; missing ratings count as 0.
func Score(sel model.Selection) Result {
	parts := sel.Components()
	count := len(parts)

	var total, ratingSum float64
	for _, c := range parts {
		total += c.Price
		ratingSum += c.Rating
	}
	var avg float64
	if count > 0 {
		avg = ratingSum / float64(count)
	}

	res := Result{
		CostPerformance: costPerformance(total, avg),
		Functionality:   functionality(count, avg),
		Scalability:     scalability(parts),
	}
	res.Labels = labels(res)
	return res
}

func costPerformance(total, avgRating float64) int {
	if total == 0 {
		return emptyCostPerformance
	}
	v := costBase + avgRating*costRatingWeight/math.Log10(total+costPriceOffset)
	return clamp(math.Round(v))
}

func functionality(count int, avgRating float64) int {
	v := float64(count)/model.SlotCount*completenessWeight + avgRating/maxRating*ratingWeight
	return clamp(math.Round(v))
}

func scalability(parts []*model.Component) int {
	score := scalabilityBase
	var mount, listed bool
	for _, c := range parts {
		if _, ok := specfield.MountHoles(c.Specs); ok || c.Mounting != "" {
			mount = true
		}
		if len(c.CompatibleWith) > 0 {
			listed = true
		}
	}
	if mount {
		score += mountBonus
	}
	if listed {
		score += compatibleListBonus
	}
	if len(parts) >= largeBuildMinimum {
		score += largeBuildBonus
	}
	return clamp(float64(score))
}

func labels(r Result) []string {
	out := make([]string, 0, 4)
	if r.CostPerformance >= goodValueThreshold {
		out = append(out, LabelGoodValue)
	}
	if r.CostPerformance < poorValueThreshold {
		out = append(out, LabelOverBudget)
	}
	if r.Functionality >= completeThreshold {
		out = append(out, LabelComplete)
	}
	if r.Scalability >= upgradeableThreshold {
		out = append(out, LabelUpgradeable)
	}
	return out
}

func clamp(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return int(math.Min(maxScoreValue, v))
}

// Package recommend decides whether a candidate component suits the frame
// already chosen for a build.
package recommend

import (
	"strings"

	"github.com/stiyes/fpvforge/internal/domain/model"
	"github.com/stiyes/fpvforge/internal/domain/specfield"
)

// Reasons attached to positive matches.
const (
	ReasonSizeMatch       = "Size matches the frame"
	ReasonMountMatch      = "Mount pattern fits the frame"
	ReasonFormFactorMatch = "Form factor fits this frame"
)

// Result is the outcome of matching one candidate. Reason is empty when
// the candidate is not recommended.
type Result struct {
	Recommended bool   `json:"recommended"`
	Reason      string `json:"reason,omitempty"`
}

// Match reports whether candidate is recommended for a build whose frame
// is anchor. A nil anchor or missing tokens on either side never match.
func Match(anchor *model.Component, candidate model.Component) Result {
	if anchor == nil {
		return Result{}
	}
	slot, ok := candidate.Category.Slot()
	if !ok {
		return Result{}
	}

	switch slot {
	case model.SlotPropeller, model.SlotMotor:
		if sizeFits(anchor, &candidate) {
			return Result{Recommended: true, Reason: ReasonSizeMatch}
		}
	case model.SlotFlightController:
		if mountFits(anchor, &candidate) {
			return Result{Recommended: true, Reason: ReasonMountMatch}
		}
	case model.SlotESC, model.SlotBattery, model.SlotCamera, model.SlotVideoTransmitter:
		if sizeFits(anchor, &candidate) {
			return Result{Recommended: true, Reason: ReasonFormFactorMatch}
		}
	}
	return Result{}
}

// Annotated pairs a candidate with its match result.
type Annotated struct {
	Component model.Component `json:"component"`
	Result
}

// Annotate matches every candidate against anchor, keeping input order.
func Annotate(anchor *model.Component, candidates []model.Component) []Annotated {
	out := make([]Annotated, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Annotated{Component: c, Result: Match(anchor, c)})
	}
	return out
}

func sizeFits(frame, candidate *model.Component) bool {
	frameSize, ok := specfield.Size(frame.Specs)
	if !ok {
		return false
	}
	size, ok := specfield.Size(candidate.Specs)
	if !ok {
		return false
	}
	return specfield.ContainsEither(frameSize, size)
}

func mountFits(frame, fc *model.Component) bool {
	frameMount, ok := specfield.FrameMount(frame.Specs)
	if !ok {
		return false
	}
	fcMount, ok := specfield.FCMount(fc.Specs)
	if !ok {
		return false
	}
	tok := specfield.MountToken(fcMount)
	return tok != "" && strings.Contains(frameMount, tok)
}

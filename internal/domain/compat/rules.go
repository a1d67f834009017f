package compat

import (
	"fmt"
	"strings"

	"github.com/stiyes/fpvforge/internal/domain/model"
	"github.com/stiyes/fpvforge/internal/domain/specfield"
)

// Rule identifiers.
const (
	RuleFramePropSize   = "frame-prop-size"
	RuleMotorKVCells    = "motor-kv-cells"
	RuleESCMotorCurrent = "esc-motor-current"
	RuleFCFrameMount    = "fc-frame-mount"
	RuleCameraVoltage   = "camera-voltage"
	RuleCompatibleIDs   = "compatible-ids"
)

// Thresholds of the motor/battery and ESC/motor heuristics.
const (
	highVoltageCells   = 6
	highVoltageMaxKV   = 2000
	lowVoltageCells    = 2
	lowVoltageMinKV    = 10000
	escCurrentCeiling  = 35
	escToMotorHeadroom = 4
	cameraVoltage5V    = "5"
	cameraVoltage3V3   = "3.3"
)

// DefaultRules returns the rule set in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:            RuleFramePropSize,
			RequiredSlots: []model.Slot{model.SlotFrame, model.SlotPropeller},
			Evaluate:      framePropSize,
		},
		{
			ID:            RuleMotorKVCells,
			RequiredSlots: []model.Slot{model.SlotMotor, model.SlotBattery},
			Evaluate:      motorKVCells,
		},
		{
			ID:            RuleESCMotorCurrent,
			RequiredSlots: []model.Slot{model.SlotESC, model.SlotMotor},
			Evaluate:      escMotorCurrent,
		},
		{
			ID:            RuleFCFrameMount,
			RequiredSlots: []model.Slot{model.SlotFlightController, model.SlotFrame},
			Evaluate:      fcFrameMount,
		},
		{
			ID:            RuleCameraVoltage,
			RequiredSlots: []model.Slot{model.SlotCamera},
			Evaluate:      cameraVoltage,
		},
		{
			ID:       RuleCompatibleIDs,
			Evaluate: compatibleIDs,
		},
	}
}

func framePropSize(sel model.Selection) []string {
	frame, _ := sel.Get(model.SlotFrame)
	prop, _ := sel.Get(model.SlotPropeller)
	frameSize, ok := specfield.Size(frame.Specs)
	if !ok {
		return nil
	}
	propSize, ok := specfield.Size(prop.Specs)
	if !ok || specfield.ContainsEither(frameSize, propSize) {
		return nil
	}
	return []string{fmt.Sprintf("Frame size %s does not match propeller size %s", frameSize, propSize)}
}

func motorKVCells(sel model.Selection) []string {
	motor, _ := sel.Get(model.SlotMotor)
	battery, _ := sel.Get(model.SlotBattery)
	kv, ok := specfield.KV(motor.Specs)
	if !ok {
		return nil
	}
	cells, ok := specfield.Cells(battery.Specs)
	if !ok {
		return nil
	}
	var out []string
	if cells >= highVoltageCells && kv > highVoltageMaxKV {
		out = append(out, fmt.Sprintf("Motor KV %g is too high for a %gS battery (6S+ wants KV <= %d)", kv, cells, highVoltageMaxKV))
	}
	if cells <= lowVoltageCells && kv < lowVoltageMinKV {
		out = append(out, fmt.Sprintf("Motor KV %g may give insufficient power on a %gS battery (<=2S wants KV >= %d)", kv, cells, lowVoltageMinKV))
	}
	return out
}

func escMotorCurrent(sel model.Selection) []string {
	esc, _ := sel.Get(model.SlotESC)
	motor, _ := sel.Get(model.SlotMotor)
	escAmps, ok := specfield.ESCCurrent(esc.Specs)
	if !ok || escAmps >= escCurrentCeiling {
		return nil
	}
	motorAmps, ok := specfield.MotorMaxCurrent(motor.Specs)
	if !ok || escAmps*escToMotorHeadroom >= motorAmps {
		return nil
	}
	return []string{fmt.Sprintf("ESC rated %gA may be insufficient for motors drawing up to %gA", escAmps, motorAmps)}
}

func fcFrameMount(sel model.Selection) []string {
	fc, _ := sel.Get(model.SlotFlightController)
	frame, _ := sel.Get(model.SlotFrame)
	fcMount, ok := specfield.FCMount(fc.Specs)
	if !ok {
		return nil
	}
	frameMount, ok := specfield.FrameMount(frame.Specs)
	if !ok || strings.Contains(frameMount, specfield.MountToken(fcMount)) {
		return nil
	}
	return []string{fmt.Sprintf("Flight controller mount %s may not fit frame mount %s", fcMount, frameMount)}
}

func cameraVoltage(sel model.Selection) []string {
	camera, _ := sel.Get(model.SlotCamera)
	v, ok := specfield.Voltage(camera.Specs)
	if !ok || strings.Contains(v, cameraVoltage5V) || strings.Contains(v, cameraVoltage3V3) {
		return nil
	}
	return []string{fmt.Sprintf("Camera supply %s: verify it against the FC/VTX power output", v)}
}

// compatibleIDs checks explicit compatibility lists against the rest of
// the build. It never reports: the result is reserved for a strict mode.
func compatibleIDs(sel model.Selection) []string {
	_ = UnlistedPartners(sel)
	return nil
}

// UnlistedPartners returns, per slot, the selected components that the
// component in that slot does not name in its CompatibleWith list. Slots
// whose component has no list are omitted.
func UnlistedPartners(sel model.Selection) map[model.Slot][]string {
	out := make(map[model.Slot][]string)
	for _, slot := range model.Slots() {
		c, ok := sel.Get(slot)
		if !ok || len(c.CompatibleWith) == 0 {
			continue
		}
		listed := make(map[string]struct{}, len(c.CompatibleWith))
		for _, id := range c.CompatibleWith {
			listed[id] = struct{}{}
		}
		for _, other := range sel.Components() {
			if other == c {
				continue
			}
			_, byID := listed[other.ID]
			_, bySKU := listed[other.SKU]
			if !byID && !bySKU {
				out[slot] = append(out[slot], other.ID)
			}
		}
	}
	return out
}

// Package specfield reads values out of the free-form component
// specification bag. All synonym-key knowledge lives here so rules never
// index Specs directly.
//
// Numeric accessors follow the catalog convention that 0 means unknown:
// they return ok == false for missing, unparseable and non-positive values.
package specfield

import (
	"math"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/spf13/cast"

	"github.com/stiyes/fpvforge/internal/domain/model"
)

// placeholder marks an intentionally blank catalog cell.
const placeholder = "-"

// Synonym keys per logical attribute, in lookup priority order.
var (
	sizeKeys            = []string{"尺寸", "寸", "桨叶"}
	kvKeys              = []string{"KV", "kv"}
	cellKeys            = []string{"S", "s", "节"}
	escCurrentKeys      = []string{"电流", "A", "持续"}
	motorMaxCurrentKeys = []string{"最大电流", "电流"}
	fcMountKeys         = []string{"安装", "孔距"}
	frameMountKeys      = []string{"安装孔", "飞控孔"}
	voltageKeys         = []string{"电压", "供电"}
	mountHoleKeys       = []string{"安装孔", "孔距"}
)

var (
	nonSizeRune  = regexp2.MustCompile(`[^0-9寸]`, regexp2.None)
	nonMountRune = regexp2.MustCompile(`[^0-9.]`, regexp2.None)
)

// Raw returns the first value among keys that renders to a non-empty,
// non-placeholder string.
func Raw(specs model.Specs, keys ...string) (any, bool) {
	for _, k := range keys {
		v, ok := specs[k]
		if !ok || v == nil {
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || s == placeholder {
			continue
		}
		return v, true
	}
	return nil, false
}

// First returns the first usable value among keys as a trimmed string.
func First(specs model.Specs, keys ...string) (string, bool) {
	v, ok := Raw(specs, keys...)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(cast.ToString(v)), true
}

// Number coerces a spec value to float64. Anything that is not a number
// or a strictly numeric string yields 0.
func Number(v any) float64 {
	switch t := v.(type) {
	case bool:
		return 0
	case string:
		v = strings.TrimSpace(t)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// SizeToken keeps only ASCII digits and the inch marker 寸.
func SizeToken(s string) string {
	return strip(nonSizeRune, s)
}

// MountToken keeps only ASCII digits and dots.
func MountToken(s string) string {
	return strip(nonMountRune, s)
}

func strip(re *regexp2.Regexp, s string) string {
	out, err := re.Replace(s, "", -1, -1)
	if err != nil {
		return ""
	}
	return out
}

// ContainsEither reports whether either string contains the other. This is
// the matching rule for size and mount tokens; "2.5寸" normalizes to "25寸"
// and therefore matches "5寸".
func ContainsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func positive(specs model.Specs, keys []string) (float64, bool) {
	v, ok := Raw(specs, keys...)
	if !ok {
		return 0, false
	}
	n := Number(v)
	return n, n > 0
}

// Size returns the normalized size token (e.g. "5寸").
func Size(specs model.Specs) (string, bool) {
	raw, ok := First(specs, sizeKeys...)
	if !ok {
		return "", false
	}
	tok := SizeToken(raw)
	return tok, tok != ""
}

// KV returns the motor speed constant.
func KV(specs model.Specs) (float64, bool) { return positive(specs, kvKeys) }

// Cells returns the battery series cell count.
func Cells(specs model.Specs) (float64, bool) { return positive(specs, cellKeys) }

// ESCCurrent returns the continuous current rating of an ESC.
func ESCCurrent(specs model.Specs) (float64, bool) { return positive(specs, escCurrentKeys) }

// MotorMaxCurrent returns the peak current draw of a motor.
func MotorMaxCurrent(specs model.Specs) (float64, bool) {
	return positive(specs, motorMaxCurrentKeys)
}

// FCMount returns the raw mount pattern of a flight controller.
func FCMount(specs model.Specs) (string, bool) { return First(specs, fcMountKeys...) }

// FrameMount returns the raw flight-controller mount pattern of a frame.
func FrameMount(specs model.Specs) (string, bool) { return First(specs, frameMountKeys...) }

// Voltage returns the raw supply voltage description.
func Voltage(specs model.Specs) (string, bool) { return First(specs, voltageKeys...) }

// MountHoles returns the raw mount-hole description used for upgrade
// potential.
func MountHoles(specs model.Specs) (string, bool) { return First(specs, mountHoleKeys...) }

package wheel

import "math"

// PointerAngle is the canvas angle, in degrees, of the fixed pointer at the top of the wheel.
const PointerAngle = 270.0

// EffectivePointerAngle maps the accumulated wheel angle onto [0, 360), with
// 0 aligned to the start of segment 0 as seen by the pointer.
func EffectivePointerAngle(angle float64) float64 {
	return math.Mod(PointerAngle-math.Mod(angle, 360)+360, 360)
}

// WinnerIndex returns the segment under the pointer for a wheel of count
// segments rotated by angle degrees. The result is always in [0, count).
func WinnerIndex(angle float64, count int) int {
	if count <= 0 {
		return 0
	}
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	slice := 360 / float64(count)
	idx := int(math.Floor(EffectivePointerAngle(angle) / slice))
	return ((idx % count) + count) % count
}

// Hue returns the colour-wheel position, in degrees, of segment index out of count.
func Hue(index, count int) float64 {
	if count <= 0 {
		return 0
	}
	return float64(index) * 360 / float64(count)
}

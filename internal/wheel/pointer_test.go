package wheel

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestWinnerIndex_FourEntriesAt90(t *testing.T) {
	entries := []string{"A", "B", "C", "D"}
	if got := EffectivePointerAngle(90); got != 180 {
		t.Fatalf("EffectivePointerAngle(90) = %v, want 180", got)
	}
	idx := WinnerIndex(90, len(entries))
	if idx != 2 || entries[idx] != "C" {
		t.Fatalf("WinnerIndex(90, 4) = %d (%q), want 2 (C)", idx, entries[idx])
	}
}

func TestWinnerIndex_Table(t *testing.T) {
	tests := []struct {
		angle float64
		count int
		want  int
	}{
		{0, 6, 4},     // 270 / 60
		{0, 1, 0},     // single segment
		{270, 4, 0},   // pointer on the start of segment 0
		{269.9, 4, 0}, // just past it
		{270.1, 4, 3}, // wraps to the last segment
		{360 * 1000, 6, 4},
		{90 + 360*57, 4, 2},
		{-90, 4, 0}, // 270+90+360 = 720 -> 0
		{-1e-9, 4, 3},
	}
	for _, tt := range tests {
		if got := WinnerIndex(tt.angle, tt.count); got != tt.want {
			t.Errorf("WinnerIndex(%v, %d) = %d, want %d", tt.angle, tt.count, got, tt.want)
		}
	}
}

func TestWinnerIndex_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	specials := []float64{
		0, -0.0, 1e-300, -1e-300, 359.9999999999999, -359.9999999999999,
		1e15, -1e15, math.MaxFloat64, -math.MaxFloat64, math.NaN(), math.Inf(1),
	}
	for n := 1; n <= 37; n++ {
		for _, a := range specials {
			if idx := WinnerIndex(a, n); idx < 0 || idx >= n {
				t.Fatalf("WinnerIndex(%v, %d) = %d out of range", a, n, idx)
			}
		}
		for i := 0; i < 2000; i++ {
			a := (rng.Float64() - 0.5) * 1e7
			if idx := WinnerIndex(a, n); idx < 0 || idx >= n {
				t.Fatalf("WinnerIndex(%v, %d) = %d out of range", a, n, idx)
			}
		}
	}
}

func TestWinnerIndex_NonPositiveCount(t *testing.T) {
	if got := WinnerIndex(123, 0); got != 0 {
		t.Fatalf("WinnerIndex(_, 0) = %d, want 0", got)
	}
}

func TestHue(t *testing.T) {
	if got := Hue(2, 6); got != 120 {
		t.Fatalf("Hue(2, 6) = %v, want 120", got)
	}
	if got := Hue(0, 0); got != 0 {
		t.Fatalf("Hue(0, 0) = %v, want 0", got)
	}
}

package config

import (
	"testing"

	"github.com/decker502/nightsky/pkg/types"
)

// TestMoonIllumination_Range 全年任意一天照度都落在 [0,100]
func TestMoonIllumination_Range(t *testing.T) {
	for day := 0.0; day < 365; day += 0.25 {
		got := MoonIlluminationForDay(day)
		if got < 0 || got > 100 {
			t.Fatalf("day %.2f: illumination = %v out of [0, 100]", day, got)
		}
	}
}

// TestMoonIllumination_NewMoonDark 新月日照度接近 0
func TestMoonIllumination_NewMoonDark(t *testing.T) {
	// 参考表中年内的新月日
	newMoons := []float64{18.3, 136.4, 254.1, 342.8}
	for _, day := range newMoons {
		if got := MoonIlluminationForDay(day); got > 1 {
			t.Errorf("new moon day %.1f: illumination = %v, want ~0", day, got)
		}
	}
}

// TestMoonIllumination_FullBetween 相邻新月的中点照度接近满月
func TestMoonIllumination_FullBetween(t *testing.T) {
	mid := (18.3 + 47.9) / 2
	if got := MoonIlluminationForDay(mid); got < 99 {
		t.Errorf("mid-cycle day %.1f: illumination = %v, want ~100", mid, got)
	}
}

// TestMoonIllumination_OutOfRangeClamps 年外日期不 panic、结果仍合法
func TestMoonIllumination_OutOfRangeClamps(t *testing.T) {
	for _, day := range []float64{-40, 400} {
		got := MoonIlluminationForDay(day)
		if got < 0 || got > 100 {
			t.Errorf("day %.1f: illumination = %v out of range", day, got)
		}
	}
}

// TestMoonPhaseForDay 新月日相名为 new，中点为 full
func TestMoonPhaseForDay(t *testing.T) {
	if got := MoonPhaseForDay(18.3); got != types.MoonNew {
		t.Errorf("new moon day: phase = %v, want new", got)
	}
	mid := (18.3 + 47.9) / 2
	if got := MoonPhaseForDay(mid); got != types.MoonFull {
		t.Errorf("mid-cycle day: phase = %v, want full", got)
	}
}

// TestMoonPhase_Progression 一个朔望周期内月相名单调经过 8 个阶段
func TestMoonPhase_Progression(t *testing.T) {
	prev, next := 18.3, 47.9
	seen := map[types.MoonPhase]bool{}
	for f := 0.0; f < 1.0; f += 0.01 {
		day := prev + f*(next-prev)
		seen[MoonPhaseForDay(day)] = true
	}
	if len(seen) != 8 {
		t.Errorf("expected all 8 phases within one cycle, saw %d: %v", len(seen), seen)
	}
}

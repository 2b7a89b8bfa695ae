package config

import (
	"math"
	"testing"

	"github.com/decker502/nightsky/pkg/types"
)

// TestLerpHue_ShortArc tests that hue interpolation takes the shorter arc
func TestLerpHue_ShortArc(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"identity", 120, 120, 0.5, 120},
		{"simple forward", 10, 50, 0.5, 30},
		{"wrap through zero", 350, 30, 0.5, 10},
		{"wrap backward", 30, 350, 0.5, 10},
		{"endpoint t=0", 350, 30, 0, 350},
		{"endpoint t=1", 350, 30, 1, 30},
		{"opposite hues", 0, 180, 0.25, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LerpHue(tt.a, tt.b, tt.t)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("LerpHue(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.expected)
			}
		})
	}
}

// TestLerpHue_RangeInvariant 插值结果必须落在 [0, 360)
func TestLerpHue_RangeInvariant(t *testing.T) {
	for a := 0.0; a < 360; a += 37 {
		for b := 0.0; b < 360; b += 53 {
			for _, frac := range []float64{0, 0.25, 0.5, 0.75, 1} {
				got := LerpHue(a, b, frac)
				if got < 0 || got >= 360 {
					t.Fatalf("LerpHue(%v, %v, %v) = %v out of [0, 360)", a, b, frac, got)
				}
			}
		}
	}
}

func sampleConfigs() (SceneConfig, SceneConfig) {
	a := SceneConfig{
		VelocityKmPerSec: 59,
		ZHR:              100,
		RadiantX:         0.2,
		RadiantY:         0.1,
		ColorHue:         350,
		MoonIllumination: 20,
		MoonPhaseName:    types.MoonWaxingCrescent,
		ParentObjectType: types.ParentComet,
		VelocityCategory: types.VelocitySwift,
		PeakMonth:        8,
	}
	b := SceneConfig{
		VelocityKmPerSec: 17,
		ZHR:              10,
		RadiantX:         0.8,
		RadiantY:         0.3,
		ColorHue:         30,
		MoonIllumination: 80,
		MoonPhaseName:    types.MoonFull,
		ParentObjectType: types.ParentAsteroid,
		VelocityCategory: types.VelocitySlow,
		PeakMonth:        11,
	}
	return a, b
}

// TestBlend_Endpoints tests Blend(a,b,0)==a and Blend(a,b,1)==b
func TestBlend_Endpoints(t *testing.T) {
	a, b := sampleConfigs()

	if got := Blend(a, b, 0); got != a {
		t.Errorf("Blend(a, b, 0) = %+v, want a = %+v", got, a)
	}
	if got := Blend(a, b, 1); got != b {
		t.Errorf("Blend(a, b, 1) = %+v, want b = %+v", got, b)
	}
	if got := Blend(a, a, 0.37); got != a {
		t.Errorf("Blend(a, a, t) = %+v, want a = %+v", got, a)
	}
}

// TestBlend_EnumSnap 枚举字段在 t<0.5 取 a，否则取 b
func TestBlend_EnumSnap(t *testing.T) {
	a, b := sampleConfigs()

	before := Blend(a, b, 0.49)
	if before.ParentObjectType != types.ParentComet {
		t.Errorf("t=0.49: ParentObjectType = %v, want comet", before.ParentObjectType)
	}
	if before.VelocityCategory != types.VelocitySwift {
		t.Errorf("t=0.49: VelocityCategory = %v, want swift", before.VelocityCategory)
	}
	if before.MoonPhaseName != types.MoonWaxingCrescent {
		t.Errorf("t=0.49: MoonPhaseName = %v, want waxing crescent", before.MoonPhaseName)
	}

	after := Blend(a, b, 0.5)
	if after.ParentObjectType != types.ParentAsteroid {
		t.Errorf("t=0.5: ParentObjectType = %v, want asteroid", after.ParentObjectType)
	}
	if after.VelocityCategory != types.VelocitySlow {
		t.Errorf("t=0.5: VelocityCategory = %v, want slow", after.VelocityCategory)
	}
	if after.MoonPhaseName != types.MoonFull {
		t.Errorf("t=0.5: MoonPhaseName = %v, want full", after.MoonPhaseName)
	}
}

// TestBlend_NumericFields 数值字段线性插值
func TestBlend_NumericFields(t *testing.T) {
	a, b := sampleConfigs()
	mid := Blend(a, b, 0.5)

	if math.Abs(mid.VelocityKmPerSec-38) > 1e-9 {
		t.Errorf("VelocityKmPerSec = %v, want 38", mid.VelocityKmPerSec)
	}
	if math.Abs(mid.ZHR-55) > 1e-9 {
		t.Errorf("ZHR = %v, want 55", mid.ZHR)
	}
	// 350° 和 30° 的中点走短弧经过 0°，应为 10°
	if math.Abs(mid.ColorHue-10) > 1e-9 {
		t.Errorf("ColorHue = %v, want 10", mid.ColorHue)
	}
}

// TestBlend_PeakMonthRounds peakMonth 插值后取最近整数
func TestBlend_PeakMonthRounds(t *testing.T) {
	a, b := sampleConfigs() // 8 和 11

	if got := Blend(a, b, 0.1).PeakMonth; got != 8 {
		t.Errorf("t=0.1: PeakMonth = %d, want 8", got)
	}
	if got := Blend(a, b, 0.5).PeakMonth; got != 10 {
		// 8 + 0.5*3 = 9.5，四舍五入为 10
		t.Errorf("t=0.5: PeakMonth = %d, want 10", got)
	}
	if got := Blend(a, b, 0.9).PeakMonth; got != 11 {
		t.Errorf("t=0.9: PeakMonth = %d, want 11", got)
	}
}

// TestBlend_ColorVariance 双方显式设置时插值，否则按 snap 规则
func TestBlend_ColorVariance(t *testing.T) {
	a, b := sampleConfigs()
	a.ColorVariance, a.ColorVarianceSet = 40, true
	b.ColorVariance, b.ColorVarianceSet = 20, true

	mid := Blend(a, b, 0.5)
	if !mid.ColorVarianceSet || math.Abs(mid.ColorVariance-30) > 1e-9 {
		t.Errorf("both set: ColorVariance = %v (set=%v), want 30 (set)", mid.ColorVariance, mid.ColorVarianceSet)
	}

	b.ColorVarianceSet = false
	early := Blend(a, b, 0.3)
	if !early.ColorVarianceSet || early.ColorVariance != 40 {
		t.Errorf("one set, t=0.3: got %v (set=%v), want 40 from a", early.ColorVariance, early.ColorVarianceSet)
	}
	late := Blend(a, b, 0.7)
	if late.ColorVarianceSet {
		t.Errorf("one set, t=0.7: ColorVarianceSet = true, want false from b")
	}
}

// TestBlend_ClampsT t 超出 [0,1] 时按端点处理
func TestBlend_ClampsT(t *testing.T) {
	a, b := sampleConfigs()
	if got := Blend(a, b, -0.5); got != a {
		t.Errorf("Blend(a, b, -0.5) should equal a")
	}
	if got := Blend(a, b, 1.5); got != b {
		t.Errorf("Blend(a, b, 1.5) should equal b")
	}
}

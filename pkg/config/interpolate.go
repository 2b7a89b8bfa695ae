package config

import (
	"math"

	"github.com/decker502/nightsky/pkg/utils"
)

// 场景配置插值
//
// 时间轴以天为粒度提供 365 份 SceneConfig，帧驱动层用小数日索引
// 取出相邻两天并调用 Blend 得到当前瞬间的配置。
// 保证：Blend(a,a,t)==a；Blend(a,b,0)==a；Blend(a,b,1)==b
//（枚举字段按 t<0.5 取 a、否则取 b，端点处同样精确）。

// LerpHue interpolates between two hues (degrees) along the shorter arc of
// the color wheel. 350°→30° passes through 0°, not through 180°.
func LerpHue(a, b, t float64) float64 {
	a = utils.WrapDegrees(a)
	b = utils.WrapDegrees(b)
	t = utils.Clamp01(t)

	// 将差值折叠到 (-180, 180]
	diff := math.Mod(b-a+540, 360) - 180
	return utils.WrapDegrees(a + diff*t)
}

// Blend returns the convex combination of two scene configs at t ∈ [0,1].
// Numeric fields lerp, hue takes the short arc, enum-valued fields snap at
// t=0.5, and peakMonth lerps then rounds to the nearest month.
func Blend(a, b SceneConfig, t float64) SceneConfig {
	t = utils.Clamp01(t)

	out := a
	out.VelocityKmPerSec = utils.Lerp(a.VelocityKmPerSec, b.VelocityKmPerSec, t)
	out.ZHR = utils.Lerp(a.ZHR, b.ZHR, t)
	out.RadiantX = utils.Lerp(a.RadiantX, b.RadiantX, t)
	out.RadiantY = utils.Lerp(a.RadiantY, b.RadiantY, t)
	out.ColorHue = LerpHue(a.ColorHue, b.ColorHue, t)
	out.MoonIllumination = utils.Lerp(a.MoonIllumination, b.MoonIllumination, t)
	// 月份不走最短弧：12→1 的跨年混合线性途经中间月份，
	// 扫过年界时季节会闪变两次
	out.PeakMonth = int(math.Round(utils.Lerp(float64(a.PeakMonth), float64(b.PeakMonth), t)))

	// 枚举字段不可插值：t<0.5 取 a，否则取 b
	if t < 0.5 {
		out.MoonPhaseName = a.MoonPhaseName
		out.ParentObjectType = a.ParentObjectType
		out.VelocityCategory = a.VelocityCategory
	} else {
		out.MoonPhaseName = b.MoonPhaseName
		out.ParentObjectType = b.ParentObjectType
		out.VelocityCategory = b.VelocityCategory
	}

	// ColorVariance：双方都显式设置时线性插值，否则按枚举的 snap 规则
	switch {
	case a.ColorVarianceSet && b.ColorVarianceSet:
		out.ColorVariance = utils.Lerp(a.ColorVariance, b.ColorVariance, t)
		out.ColorVarianceSet = true
	case t < 0.5:
		out.ColorVariance = a.ColorVariance
		out.ColorVarianceSet = a.ColorVarianceSet
	default:
		out.ColorVariance = b.ColorVariance
		out.ColorVarianceSet = b.ColorVarianceSet
	}

	return out
}

// Package config 定义夜空场景的配置数据与派生表
//
// 包含每日场景配置 (SceneConfig)、配置插值、流星样式表、
// 月相近似模型、流星雨目录以及渲染调参的加载。
// 本包只有纯数据和纯函数，不依赖渲染层。
package config

import (
	"github.com/decker502/nightsky/pkg/types"
	"github.com/decker502/nightsky/pkg/utils"
)

// SceneConfig describes the visual parameters of one instant of the night
// sky. It is a plain data record: produced by the shower catalog for whole
// days, or by Blend for in-between instants, and consumed read-only by the
// engine every frame.
type SceneConfig struct {
	// VelocityKmPerSec 流星速度来源值，期望范围 ~[11, 72]
	VelocityKmPerSec float64

	// ZHR 天顶每时出现率，驱动生成强度；0 表示当日无活跃流星雨
	ZHR float64

	// RadiantX/RadiantY 辐射点的归一化屏幕位置 [0,1]
	RadiantX float64
	RadiantY float64

	// ColorHue 流星尾迹的基础色相 [0,360)
	ColorHue float64

	// ColorVariance 色相扩散范围（度）。未显式设置时按母体类型取默认值，
	// 见 EffectiveColorVariance。
	ColorVariance    float64
	ColorVarianceSet bool

	// MoonIllumination 月面照明百分比 [0,100]，压暗星/流星、提亮天空
	MoonIllumination float64

	// MoonPhaseName 月相名称，仅用于展示文本
	MoonPhaseName types.MoonPhase

	// ParentObjectType 母体天体类型（彗星/小行星）
	ParentObjectType types.ParentObjectType

	// VelocityCategory 速度档位（slow/medium/swift）
	VelocityCategory types.VelocityCategory

	// PeakMonth 峰值月份 [1,12]，决定季节分桶
	PeakMonth int
}

// 默认色相扩散（度），按母体类型区分：
// 彗星尾迹成分复杂，颜色更散；小行星碎片颜色更一致。
const (
	DefaultVarianceComet    = 60.0
	DefaultVarianceAsteroid = 20.0
)

// DefaultSceneConfig returns the quiet-sky fallback used when no shower is
// active or per-shower metadata is missing: no spawns, center-top radiant,
// neutral hue.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		VelocityKmPerSec: 40,
		ZHR:              0,
		RadiantX:         0.5,
		RadiantY:         0.1,
		ColorHue:         210,
		MoonIllumination: 0,
		MoonPhaseName:    types.MoonNew,
		ParentObjectType: types.ParentComet,
		VelocityCategory: types.VelocityMedium,
		PeakMonth:        1,
	}
}

// Normalize clamps every bounded field into its valid range.
// Out-of-range upstream data is silently clamped, never rejected:
// a malformed day record must not crash the animation.
func (c SceneConfig) Normalize() SceneConfig {
	c.VelocityKmPerSec = utils.Clamp(c.VelocityKmPerSec, 11, 72)
	if c.ZHR < 0 {
		c.ZHR = 0
	}
	c.RadiantX = utils.Clamp01(c.RadiantX)
	c.RadiantY = utils.Clamp01(c.RadiantY)
	c.ColorHue = utils.WrapDegrees(c.ColorHue)
	if c.ColorVarianceSet && c.ColorVariance < 0 {
		c.ColorVariance = 0
	}
	c.MoonIllumination = utils.Clamp(c.MoonIllumination, 0, 100)
	if c.PeakMonth < 1 {
		c.PeakMonth = 1
	} else if c.PeakMonth > 12 {
		c.PeakMonth = 12
	}
	return c
}

// EffectiveColorVariance returns the hue spread to use for spawning,
// falling back to the parent-type default when not explicitly set.
func (c SceneConfig) EffectiveColorVariance() float64 {
	if c.ColorVarianceSet {
		return c.ColorVariance
	}
	if c.ParentObjectType == types.ParentAsteroid {
		return DefaultVarianceAsteroid
	}
	return DefaultVarianceComet
}

// Season 返回本配置的季节分桶（由 PeakMonth 推导）
func (c SceneConfig) Season() types.Season {
	return types.SeasonForMonth(c.PeakMonth)
}

// ScenePatch is a partial SceneConfig used by Engine.UpdateConfig.
// Nil fields leave the current value untouched.
type ScenePatch struct {
	VelocityKmPerSec *float64
	ZHR              *float64
	RadiantX         *float64
	RadiantY         *float64
	ColorHue         *float64
	ColorVariance    *float64
	MoonIllumination *float64
	MoonPhaseName    *types.MoonPhase
	ParentObjectType *types.ParentObjectType
	VelocityCategory *types.VelocityCategory
	PeakMonth        *int
}

// Apply merges the patch into cfg and returns the normalized result.
func (p ScenePatch) Apply(cfg SceneConfig) SceneConfig {
	if p.VelocityKmPerSec != nil {
		cfg.VelocityKmPerSec = *p.VelocityKmPerSec
	}
	if p.ZHR != nil {
		cfg.ZHR = *p.ZHR
	}
	if p.RadiantX != nil {
		cfg.RadiantX = *p.RadiantX
	}
	if p.RadiantY != nil {
		cfg.RadiantY = *p.RadiantY
	}
	if p.ColorHue != nil {
		cfg.ColorHue = *p.ColorHue
	}
	if p.ColorVariance != nil {
		cfg.ColorVariance = *p.ColorVariance
		cfg.ColorVarianceSet = true
	}
	if p.MoonIllumination != nil {
		cfg.MoonIllumination = *p.MoonIllumination
	}
	if p.MoonPhaseName != nil {
		cfg.MoonPhaseName = *p.MoonPhaseName
	}
	if p.ParentObjectType != nil {
		cfg.ParentObjectType = *p.ParentObjectType
	}
	if p.VelocityCategory != nil {
		cfg.VelocityCategory = *p.VelocityCategory
	}
	if p.PeakMonth != nil {
		cfg.PeakMonth = *p.PeakMonth
	}
	return cfg.Normalize()
}

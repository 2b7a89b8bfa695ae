package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// 渲染调参
//
// 生成率曲线、月光压制、尺寸分桶概率等都是美术向参数，
// 随版本微调，不是硬契约。参数从 assets/config/render_tuning.yaml
// 加载，文件缺失或字段为零时回落到编译期默认值。

// RenderTuning 汇总引擎的可调参数
type RenderTuning struct {
	Spawn    SpawnTuning    `yaml:"spawn"`
	Speed    SpeedTuning    `yaml:"speed"`
	Sizes    SizeTuning     `yaml:"sizes"`
	Parallax ParallaxTuning `yaml:"parallax"`
	Moon     MoonTuning     `yaml:"moon"`
}

// SpawnTuning 控制 ZHR → 每秒可见流星数的映射
//
// visualRate = base + scale * (zhr/150)^exponent
// 次线性曲线：低 ZHR 流星雨仍可见，高 ZHR 不会刷屏。
type SpawnTuning struct {
	Base     float64 `yaml:"base"`
	Scale    float64 `yaml:"scale"`
	Exponent float64 `yaml:"exponent"`
}

// SpeedTuning 控制速度来源值 → 屏幕速度的映射
//
// speed = base + scale * normalizedV^exponent，再加 ±Jitter 相对抖动。
// 幂曲线压缩低速端差异、拉开高速端差异。
type SpeedTuning struct {
	Base     float64 `yaml:"base"`
	Scale    float64 `yaml:"scale"`
	Exponent float64 `yaml:"exponent"`
	Jitter   float64 `yaml:"jitter"`
}

// SizeTuning 尺寸分桶概率（small/medium/large，剩余概率落入 small）
// MoonShift 表示满月时向大尺寸迁移的概率量：
// 月光下只有更粗的尾迹还能读出来。
type SizeTuning struct {
	Medium    float64 `yaml:"medium"`
	Large     float64 `yaml:"large"`
	MoonShift float64 `yaml:"moonShift"`
}

// ParallaxTuning 鼠标视差参数
type ParallaxTuning struct {
	// MaxShiftPx 最大像素偏移（按深度加权后封顶）
	MaxShiftPx float64 `yaml:"maxShiftPx"`
	// Smoothing 每帧向目标值逼近的指数系数 (0,1]
	Smoothing float64 `yaml:"smoothing"`
}

// MoonTuning 月光相关参数
type MoonTuning struct {
	// DimFactor 满月时对生成率的压制比例 [0,1]
	DimFactor float64 `yaml:"dimFactor"`
	// BoostMax 满月时星/流星亮度的补偿倍率上限（>=1）
	BoostMax float64 `yaml:"boostMax"`
	// FloorAlpha 压暗后的最低可见透明度（防止完全消失）
	FloorAlpha float64 `yaml:"floorAlpha"`
}

// DefaultRenderTuning 返回编译期默认调参
func DefaultRenderTuning() RenderTuning {
	return RenderTuning{
		Spawn:    SpawnTuning{Base: 0.08, Scale: 1.6, Exponent: 0.7},
		Speed:    SpeedTuning{Base: 4.0, Scale: 9.0, Exponent: 1.4, Jitter: 0.15},
		Sizes:    SizeTuning{Medium: 0.30, Large: 0.12, MoonShift: 0.18},
		Parallax: ParallaxTuning{MaxShiftPx: 24, Smoothing: 0.08},
		Moon:     MoonTuning{DimFactor: 0.65, BoostMax: 1.5, FloorAlpha: 0.12},
	}
}

// ParseRenderTuning 解析 YAML 数据并用默认值补齐零值字段
func ParseRenderTuning(data []byte) (RenderTuning, error) {
	tuning := DefaultRenderTuning()
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return DefaultRenderTuning(), fmt.Errorf("failed to parse render tuning YAML: %w", err)
	}
	return tuning.sanitize(), nil
}

// sanitize 把明显非法的值拉回安全范围（静默修正，不拒绝）
func (t RenderTuning) sanitize() RenderTuning {
	def := DefaultRenderTuning()
	if t.Spawn.Exponent <= 0 {
		t.Spawn.Exponent = def.Spawn.Exponent
	}
	if t.Speed.Exponent <= 0 {
		t.Speed.Exponent = def.Speed.Exponent
	}
	if t.Parallax.Smoothing <= 0 || t.Parallax.Smoothing > 1 {
		t.Parallax.Smoothing = def.Parallax.Smoothing
	}
	if t.Moon.DimFactor < 0 || t.Moon.DimFactor > 1 {
		t.Moon.DimFactor = def.Moon.DimFactor
	}
	if t.Moon.BoostMax < 1 {
		t.Moon.BoostMax = def.Moon.BoostMax
	}
	if t.Moon.FloorAlpha <= 0 || t.Moon.FloorAlpha >= 1 {
		t.Moon.FloorAlpha = def.Moon.FloorAlpha
	}
	if t.Sizes.Medium < 0 || t.Sizes.Large < 0 || t.Sizes.Medium+t.Sizes.Large > 1 {
		t.Sizes = def.Sizes
	}
	return t
}

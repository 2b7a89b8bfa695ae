// Package sky provides procedural generation for the persistent layers of
// the night-sky scene: the static star population, seasonal nebula glow
// patches, and the pre-rasterized star glyph sprites.
//
// Generation is purely random sampling with no failure paths. The star
// population is created once per engine instance (first nonzero surface
// size) and survives resizes; only pixel positions and glyphs are
// resolution-dependent.
package sky

import (
	"math"
	"math/rand"
	"sort"
)

// SizeClass 星点的亮度/尺寸分级（生成时缓存，渲染按类选择绘制路径）
type SizeClass int

const (
	// SizeFaint 暗星（约 70%，纯色小点绘制）
	SizeFaint SizeClass = iota
	// SizeMedium 中等（约 20%，纯色小点绘制）
	SizeMedium
	// SizeBright 亮星（约 8%，使用预渲染光晕图）
	SizeBright
	// SizeProminent 显著亮星（约 2%，光晕图 + 大幅泛光图）
	SizeProminent
)

// HueGroup 星点的色调分组（生成时缓存，与 SizeClass 共同构成图元缓存键）
type HueGroup int

const (
	// HueNeutral 无色调（白）
	HueNeutral HueGroup = iota
	// HueWarm 暖橙
	HueWarm
	// HueCool 冷蓝
	HueCool
	// HueYellow 黄
	HueYellow
	// HuePaleBlue 淡蓝
	HuePaleBlue
)

// hueGroupBase 各色调分组的基准色相（度）和饱和度
var hueGroupBase = map[HueGroup]struct {
	Hue float64
	Sat float64
}{
	HueWarm:     {Hue: 30, Sat: 0.45},
	HueCool:     {Hue: 225, Sat: 0.40},
	HueYellow:   {Hue: 55, Sat: 0.35},
	HuePaleBlue: {Hue: 200, Sat: 0.22},
}

// Star 一颗背景星的全部持久状态
//
// 归一化坐标在生成时确定，像素坐标在每次 Resize 时解析。
// 分级和色调分组是生成时缓存的派生字段，渲染期零重复计算。
type Star struct {
	// NX/NY 归一化位置 [0,1]
	NX float64
	NY float64

	// X/Y 解析后的像素位置（随 Resize 更新）
	X float64
	Y float64

	// Brightness 基础亮度 [0,1]
	Brightness float64

	// Radius 绘制半径（逻辑像素）
	Radius float64

	// PhaseOffset 闪烁相位偏移（弧度）
	PhaseOffset float64

	// TwinkleSpeed 闪烁角速度（弧度/秒）
	TwinkleSpeed float64

	// Blinker 闪烁速度前 ~15% 的星：在更宽的低-高区间振荡
	Blinker bool

	// Hue/Sat 色调（仅 Tinted 为 true 时有效）
	Hue    float64
	Sat    float64
	Tinted bool

	// Prominent 亮度前 ~2% 的星，额外绘制大幅低透明度泛光
	Prominent bool

	// Depth 视差权重 [0,1]，越大视觉上越"近"、随鼠标偏移越多
	Depth float64

	// Size/Group 生成时缓存的分级，选择预渲染图元
	Size  SizeClass
	Group HueGroup
}

const (
	baseStarCount = 420
	// 银河带的归一化 Y 范围与复制比例
	bandYMin      = 0.25
	bandYMax      = 0.45
	bandDuplicate = 0.35
	// 色调星占比
	tintedFraction = 0.40
	// blinker 占比（按闪烁速度排序后的前百分位）
	blinkerFraction = 0.15
)

// StarField 一次性生成的静态星空
type StarField struct {
	Stars []Star

	width  float64
	height float64
}

// NewStarField generates the full star population for the given surface
// size: the uniform background population, 2-3 tight clusters, and a
// galactic-band density boost created by duplicating a jittered subset of
// stars inside the band.
func NewStarField(width, height float64, rng *rand.Rand) *StarField {
	sf := &StarField{
		Stars: make([]Star, 0, baseStarCount+baseStarCount/2),
	}

	for i := 0; i < baseStarCount; i++ {
		sf.Stars = append(sf.Stars, randomStar(rng, rng.Float64(), rng.Float64()))
	}

	// 2-3 个致密星团
	clusterCount := 2 + rng.Intn(2)
	for c := 0; c < clusterCount; c++ {
		cx := 0.1 + rng.Float64()*0.8
		cy := 0.1 + rng.Float64()*0.6
		spread := 0.02 + rng.Float64()*0.02
		members := 14 + rng.Intn(9)
		for i := 0; i < members; i++ {
			nx := clamp01(cx + rng.NormFloat64()*spread)
			ny := clamp01(cy + rng.NormFloat64()*spread)
			sf.Stars = append(sf.Stars, randomStar(rng, nx, ny))
		}
	}

	// 银河带密度增强：复制带内约 35% 的星并轻微抖动位置
	bandCopies := make([]Star, 0)
	for _, s := range sf.Stars {
		if s.NY >= bandYMin && s.NY <= bandYMax && rng.Float64() < bandDuplicate {
			dup := s
			dup.NX = clamp01(dup.NX + (rng.Float64()-0.5)*0.03)
			dup.NY = clamp01(dup.NY + (rng.Float64()-0.5)*0.02)
			dup.PhaseOffset = rng.Float64() * 2 * math.Pi
			bandCopies = append(bandCopies, dup)
		}
	}
	sf.Stars = append(sf.Stars, bandCopies...)

	sf.markBlinkers()
	sf.Resize(width, height)
	return sf
}

// randomStar 采样一颗星的全部生成期属性
func randomStar(rng *rand.Rand, nx, ny float64) Star {
	s := Star{
		NX:           nx,
		NY:           ny,
		PhaseOffset:  rng.Float64() * 2 * math.Pi,
		TwinkleSpeed: 0.4 + rng.Float64()*2.2,
	}

	// 幂律亮度分布：70% 暗 / 20% 中 / 8% 亮 / 2% 显著
	roll := rng.Float64()
	switch {
	case roll < 0.70:
		s.Size = SizeFaint
		s.Brightness = 0.25 + rng.Float64()*0.25
		s.Radius = 0.6 + rng.Float64()*0.5
	case roll < 0.90:
		s.Size = SizeMedium
		s.Brightness = 0.45 + rng.Float64()*0.25
		s.Radius = 1.0 + rng.Float64()*0.6
	case roll < 0.98:
		s.Size = SizeBright
		s.Brightness = 0.65 + rng.Float64()*0.25
		s.Radius = 1.5 + rng.Float64()*0.8
	default:
		s.Size = SizeProminent
		s.Prominent = true
		s.Brightness = 0.85 + rng.Float64()*0.15
		s.Radius = 2.2 + rng.Float64()*1.0
	}

	// 深度与尺寸/显著性松散相关：大而亮的星视觉上更"近"
	if s.Prominent {
		s.Depth = 0.7 + rng.Float64()*0.3
	} else {
		switch s.Size {
		case SizeFaint:
			s.Depth = rng.Float64() * 0.3
		case SizeMedium:
			s.Depth = 0.2 + rng.Float64()*0.35
		default:
			s.Depth = 0.4 + rng.Float64()*0.4
		}
	}

	// 约 40% 的星带色调，从四个命名分组中选取
	if rng.Float64() < tintedFraction {
		groups := []HueGroup{HueWarm, HueCool, HueYellow, HuePaleBlue}
		s.Group = groups[rng.Intn(len(groups))]
		base := hueGroupBase[s.Group]
		s.Hue = base.Hue + (rng.Float64()-0.5)*16
		s.Sat = base.Sat * (0.8 + rng.Float64()*0.4)
		s.Tinted = true
	} else {
		s.Group = HueNeutral
	}

	return s
}

// markBlinkers 标记闪烁速度前百分位的星为 blinker
func (sf *StarField) markBlinkers() {
	if len(sf.Stars) == 0 {
		return
	}
	speeds := make([]float64, len(sf.Stars))
	for i, s := range sf.Stars {
		speeds[i] = s.TwinkleSpeed
	}
	// 取阈值：排序开销只在生成期发生一次
	sorted := append([]float64(nil), speeds...)
	sort.Float64s(sorted)
	idx := int(float64(len(sorted)) * (1 - blinkerFraction))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	threshold := sorted[idx]
	for i := range sf.Stars {
		sf.Stars[i].Blinker = sf.Stars[i].TwinkleSpeed >= threshold
	}
}

// Resize 把归一化坐标解析为像素坐标（星的集合本身不变）
func (sf *StarField) Resize(width, height float64) {
	sf.width = width
	sf.height = height
	for i := range sf.Stars {
		sf.Stars[i].X = sf.Stars[i].NX * width
		sf.Stars[i].Y = sf.Stars[i].NY * height
	}
}

// Size 返回当前解析尺寸
func (sf *StarField) Size() (width, height float64) {
	return sf.width, sf.height
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

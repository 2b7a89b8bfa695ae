package components

import "github.com/decker502/nightsky/pkg/types"

// MeteorSize 流星尺寸分桶，决定尾迹长度/粗细的基准值
type MeteorSize int

const (
	// MeteorSmall 小号（默认桶）
	MeteorSmall MeteorSize = iota
	// MeteorMedium 中号
	MeteorMedium
	// MeteorLarge 大号
	MeteorLarge
	// MeteorFireball 火流星（独立桶，带头部闪光）
	MeteorFireball
)

// MeteorComponent represents a single live meteor streak.
// It stores all per-meteor runtime state: heading, lifetime, and the visual
// properties fixed at spawn time by the spawn system.
//
// Created by MeteorSpawnSystem, advanced each frame by MeteorSystem, and
// drawn by SkyRenderSystem. Pure data, no methods.
type MeteorComponent struct {
	// Direction 单位方向向量（远离辐射点）
	DirX float64
	DirY float64

	// Speed 标量速度（逻辑像素/帧基准，16ms 为 1 个帧基准）
	Speed float64

	// TrailLength 尾迹长度（逻辑像素）
	TrailLength float64

	// Thickness 尾迹线宽（逻辑像素）
	Thickness float64

	// Opacity 基础透明度 [0,1]（实际绘制值还要乘淡入淡出和月光补偿）
	Opacity float64

	// Hue 尾迹色相（度）
	Hue float64

	// Saturation 尾迹饱和度 [0,1]
	Saturation float64

	// Fireball 是否为火流星
	Fireball bool

	// Size 尺寸分桶（生成时由概率表确定）
	Size MeteorSize

	// Life 已存活时间（帧基准单位）
	Life float64

	// MaxLife 最大存活时间（帧基准单位）
	MaxLife float64

	// AfterglowEligible 是否绘制宽幅低透明度余辉描边
	// （仅彗星母体的中/大号非火流星）
	AfterglowEligible bool

	// Curvature 角转率（弧度/帧基准），非零时方向向量每帧旋转，
	// 慢速流星用它画出轻微弧线
	Curvature float64

	// Parent 母体类型（小行星火流星头部有入场闪光）
	Parent types.ParentObjectType
}

package config

import "github.com/decker502/nightsky/pkg/types"

// 流星样式表
//
// 母体类型 × 速度档位 → 样式修正量。原先分散在生成逻辑里的嵌套分支
// 整理成查表结构，便于扩展和单独测试。
// 数值是美术向调参，测试只断言定性关系（如 swift 扩散角最窄）。

// MeteorStyle 描述一组生成期确定的流星样式修正量
type MeteorStyle struct {
	// LifeMul 生命周期倍率（彗星 1.3，小行星 0.8）
	LifeMul float64
	// SpreadDeg 相对辐射点方向的随机角度扩散半宽（度）
	SpreadDeg float64
	// LengthScale 尾迹长度缩放
	LengthScale float64
	// ThicknessScale 尾迹粗细缩放
	ThicknessScale float64
	// CurvatureMax 随机弯曲角速度上限（弧度/帧基准），0 表示直线
	CurvatureMax float64
	// Saturation 非火流星的基础饱和度
	Saturation float64
	// FireballChance 火流星概率
	FireballChance float64
	// AfterglowEligible 中/大号非火流星是否绘制宽幅余辉描边
	AfterglowEligible bool
}

// 按母体类型的基础样式：小行星火流星更多、饱和度更低、生命更短；
// 彗星生命更长，非火流星可带余辉。
var parentStyles = map[types.ParentObjectType]MeteorStyle{
	types.ParentComet: {
		LifeMul:           1.3,
		Saturation:        0.55,
		FireballChance:    0.05,
		AfterglowEligible: true,
	},
	types.ParentAsteroid: {
		LifeMul:           0.8,
		Saturation:        0.45,
		FireballChance:    0.14,
		AfterglowEligible: false,
	},
}

// 按速度档位的修正：快流星更平行（扩散窄）、更长更细；
// 慢流星扩散宽、更短更粗、带轻微弧线。
type velocityStyle struct {
	SpreadDeg      float64
	LengthScale    float64
	ThicknessScale float64
	CurvatureMax   float64
}

var velocityStyles = map[types.VelocityCategory]velocityStyle{
	types.VelocitySlow:   {SpreadDeg: 28, LengthScale: 0.75, ThicknessScale: 1.3, CurvatureMax: 0.012},
	types.VelocityMedium: {SpreadDeg: 18, LengthScale: 1.0, ThicknessScale: 1.0, CurvatureMax: 0},
	types.VelocitySwift:  {SpreadDeg: 9, LengthScale: 1.35, ThicknessScale: 0.8, CurvatureMax: 0},
}

// StyleFor 返回指定母体类型和速度档位组合的完整样式
func StyleFor(parent types.ParentObjectType, velocity types.VelocityCategory) MeteorStyle {
	style, ok := parentStyles[parent]
	if !ok {
		style = parentStyles[types.ParentComet]
	}
	v, ok := velocityStyles[velocity]
	if !ok {
		v = velocityStyles[types.VelocityMedium]
	}
	style.SpreadDeg = v.SpreadDeg
	style.LengthScale = v.LengthScale
	style.ThicknessScale = v.ThicknessScale
	style.CurvatureMax = v.CurvatureMax
	return style
}

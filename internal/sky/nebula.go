package sky

import (
	"math/rand"

	"github.com/decker502/nightsky/pkg/types"
)

// NebulaGlow 一块柔和的椭圆辉光
//
// 位置与半径都是归一化值，绘制时按表面尺寸解析。
// 只有季节变化时才整体重新生成，避免插值帧上的视觉"跳变"。
type NebulaGlow struct {
	// NX/NY 中心归一化位置
	NX float64
	NY float64

	// RadiusX/RadiusY 归一化椭圆半径
	RadiusX float64
	RadiusY float64

	// Hue 辉光色相（度）
	Hue float64

	// Opacity 基础透明度 [0,1]（月光会进一步压低）
	Opacity float64
}

// GenerateNebulae produces 2-4 glow patches colored from the season's
// palette: winter blue-violet, spring teal-cyan, summer amber/gold mixed
// with warm purple (roughly 60/40), fall magenta-violet.
func GenerateNebulae(season types.Season, rng *rand.Rand) []NebulaGlow {
	count := 2 + rng.Intn(3)
	nebulae := make([]NebulaGlow, 0, count)
	for i := 0; i < count; i++ {
		nebulae = append(nebulae, NebulaGlow{
			NX:      0.1 + rng.Float64()*0.8,
			NY:      0.08 + rng.Float64()*0.5,
			RadiusX: 0.10 + rng.Float64()*0.14,
			RadiusY: 0.06 + rng.Float64()*0.10,
			Hue:     seasonHue(season, rng),
			Opacity: 0.05 + rng.Float64()*0.07,
		})
	}
	return nebulae
}

// seasonHue 从季节调色板中采样一个色相
func seasonHue(season types.Season, rng *rand.Rand) float64 {
	switch season {
	case types.SeasonSpring:
		// 青色 160-200°
		return 160 + rng.Float64()*40
	case types.SeasonSummer:
		// 琥珀/金 与 暖紫 约 60/40 混合
		if rng.Float64() < 0.6 {
			return 40 + rng.Float64()*25
		}
		return 290 + rng.Float64()*25
	case types.SeasonFall:
		// 品红-紫 280-320°
		return 280 + rng.Float64()*40
	default:
		// 冬季 蓝-紫 220-260°
		return 220 + rng.Float64()*40
	}
}

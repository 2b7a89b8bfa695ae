package utils

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// HSV 颜色辅助函数
//
// 引擎内所有颜色都用色相 (0-360)、饱和度和明度描述，
// 渲染前才转换为 RGBA。转换委托给 go-colorful，
// 避免手写 HSV→RGB 的分段公式。

// HSVA converts hue (degrees), saturation, value and alpha (all but hue in
// [0,1]) into a premultiplied-friendly color.RGBA.
// Hue is wrapped into [0,360); other channels are clamped.
func HSVA(hue, sat, val, alpha float64) color.RGBA {
	c := colorful.Hsv(WrapDegrees(hue), Clamp01(sat), Clamp01(val))
	a := Clamp01(alpha)
	r, g, b := c.RGB255()
	return color.RGBA{
		R: uint8(float64(r) * a),
		G: uint8(float64(g) * a),
		B: uint8(float64(b) * a),
		A: uint8(a * 255),
	}
}

// HSV is HSVA with full opacity.
func HSV(hue, sat, val float64) color.RGBA {
	return HSVA(hue, sat, val, 1)
}

// LerpRGB 在两个 RGBA 颜色之间线性插值（逐通道，忽略 gamma）
// 用于新月/满月天空调色板的混合，视觉上足够平滑。
func LerpRGB(a, b color.RGBA, t float64) color.RGBA {
	t = Clamp01(t)
	return color.RGBA{
		R: uint8(Lerp(float64(a.R), float64(b.R), t)),
		G: uint8(Lerp(float64(a.G), float64(b.G), t)),
		B: uint8(Lerp(float64(a.B), float64(b.B), t)),
		A: uint8(Lerp(float64(a.A), float64(b.A), t)),
	}
}

// ScaleAlpha 返回按 alpha ∈ [0,1] 预乘缩放后的颜色
func ScaleAlpha(c color.RGBA, alpha float64) color.RGBA {
	alpha = Clamp01(alpha)
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

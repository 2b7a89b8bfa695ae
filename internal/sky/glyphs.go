package sky

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nightsky/pkg/utils"
)

// 星点图元缓存
//
// 亮星/显著星的柔和径向光晕如果每帧重算渐变会非常昂贵，
// 这里按 尺寸分级 × 色调分组 预渲染成小贴图，渲染期只做 DrawImage。
// 图元是分辨率相关的：表面尺寸或像素密度变化时必须整体重建，
// 星的集合本身不动。

// GlyphKey 图元缓存键
type GlyphKey struct {
	Size  SizeClass
	Group HueGroup
}

// GlyphCache 预渲染的星点贴图集合
type GlyphCache struct {
	// glyphs 亮星光晕图（柔和径向衰减）
	glyphs map[GlyphKey]*ebiten.Image
	// blooms 显著星的大幅泛光图（带微弱衍射芒）
	blooms map[HueGroup]*ebiten.Image

	scale    float64
	rebuilds int
}

// glyph 基准半径（逻辑像素），乘以 scale 得到实际贴图半径
const (
	glyphBaseRadius = 6.0
	bloomBaseRadius = 18.0
)

// NewGlyphCache builds the full sprite set at the given resolution scale.
// Call again (via Rebuild) whenever the surface pixel density changes.
func NewGlyphCache(scale float64) *GlyphCache {
	gc := &GlyphCache{}
	gc.Rebuild(scale)
	return gc
}

// Rebuild 以新的分辨率比例重建全部贴图
func (gc *GlyphCache) Rebuild(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	gc.scale = scale
	gc.rebuilds++
	gc.glyphs = make(map[GlyphKey]*ebiten.Image)
	gc.blooms = make(map[HueGroup]*ebiten.Image)

	groups := []HueGroup{HueNeutral, HueWarm, HueCool, HueYellow, HuePaleBlue}
	for _, group := range groups {
		for _, size := range []SizeClass{SizeBright, SizeProminent} {
			r := glyphBaseRadius * scale
			if size == SizeProminent {
				r *= 1.5
			}
			gc.glyphs[GlyphKey{Size: size, Group: group}] = renderGlow(r, groupColor(group), false)
		}
		gc.blooms[group] = renderGlow(bloomBaseRadius*scale, groupColor(group), true)
	}
}

// Scale 返回当前缓存的分辨率比例
func (gc *GlyphCache) Scale() float64 {
	return gc.scale
}

// Rebuilds 返回贴图集被重建的总次数（含构造时的首次渲染）
func (gc *GlyphCache) Rebuilds() int {
	return gc.rebuilds
}

// Glyph 返回指定分级/分组的光晕图；暗星没有图元，返回 nil
func (gc *GlyphCache) Glyph(size SizeClass, group HueGroup) *ebiten.Image {
	return gc.glyphs[GlyphKey{Size: size, Group: group}]
}

// Bloom 返回指定分组的泛光图
func (gc *GlyphCache) Bloom(group HueGroup) *ebiten.Image {
	return gc.blooms[group]
}

// GlyphCount 返回缓存的图元数量（测试用）
func (gc *GlyphCache) GlyphCount() int {
	return len(gc.glyphs) + len(gc.blooms)
}

// groupColor 色调分组的贴图基色
func groupColor(group HueGroup) color.RGBA {
	if base, ok := hueGroupBase[group]; ok {
		return utils.HSV(base.Hue, base.Sat, 1)
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

// RenderEllipseGlow 逐像素渲染一张椭圆径向衰减贴图
// 银河带与星云辉光共用此路径；贴图在生成/尺寸变化时构建一次。
func RenderEllipseGlow(radiusX, radiusY float64, tint color.RGBA) *ebiten.Image {
	if radiusX < 1 {
		radiusX = 1
	}
	if radiusY < 1 {
		radiusY = 1
	}
	w := int(math.Ceil(radiusX*2)) + 2
	h := int(math.Ceil(radiusY*2)) + 2
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - cx) / radiusX
			dy := (float64(y) + 0.5 - cy) / radiusY
			t := math.Hypot(dx, dy)
			if t > 1 {
				continue
			}
			alpha := math.Exp(-t * t * 3.5)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(float64(tint.R) * alpha),
				G: uint8(float64(tint.G) * alpha),
				B: uint8(float64(tint.B) * alpha),
				A: uint8(255 * alpha),
			})
		}
	}

	return ebiten.NewImageFromImage(img)
}

// renderGlow 逐像素渲染一张柔和径向衰减贴图
// spikes 为 true 时叠加微弱的水平/垂直衍射芒
func renderGlow(radius float64, tint color.RGBA, spikes bool) *ebiten.Image {
	size := int(math.Ceil(radius*2)) + 2
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float64(size) / 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			dist := math.Hypot(dx, dy)
			if dist > radius {
				continue
			}
			// 高斯式衰减，中心不饱和到纯白以保留色调
			t := dist / radius
			alpha := math.Exp(-t * t * 4.5)

			if spikes {
				// 衍射芒：沿水平/垂直轴的窄亮线，随距离衰减
				axis := math.Min(math.Abs(dx), math.Abs(dy))
				if axis < radius*0.04 {
					alpha = math.Max(alpha, 0.35*math.Exp(-t*2.2))
				}
			}

			img.SetRGBA(x, y, color.RGBA{
				R: uint8(float64(tint.R) * alpha),
				G: uint8(float64(tint.G) * alpha),
				B: uint8(float64(tint.B) * alpha),
				A: uint8(255 * alpha),
			})
		}
	}

	return ebiten.NewImageFromImage(img)
}

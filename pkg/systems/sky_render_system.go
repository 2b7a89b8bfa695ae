package systems

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/nightsky/internal/sky"
	"github.com/decker502/nightsky/pkg/components"
	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/ecs"
	"github.com/decker502/nightsky/pkg/types"
	"github.com/decker502/nightsky/pkg/utils"
)

// SkyRenderSystem 每帧按固定顺序合成整个夜空
//
// 绘制顺序（后画的覆盖先画的）：
//  1. 天空渐变（新月/满月调色板按月照插值）
//  2. 银河带辉光（反向鼠标视差，月照压暗）
//  3. 星云辉光（同上）
//  4. 季节地平线色调（冬季跳过）
//  5. 星空（正弦闪烁；暗/中星画纯色点，亮/显著星用预渲染图元）
//  6. 流星（余辉描边 → 渐变尾迹 → 头部光辉，加法混合）
//
// 每帧完整重画，不保留上一帧残影。流星与星的亮度都乘以月光
// 补偿倍率（1.0~1.5×）：天空被月光提亮的同时保持前景可读。
type SkyRenderSystem struct {
	EntityManager *ecs.EntityManager
	Tuning        config.RenderTuning

	width  float64
	height float64

	whiteImage *ebiten.Image // 顶点渐变的 1x1 源纹理
	whitePixel *ebiten.Image
	headGlow   *ebiten.Image // 流星头部光辉
	bandImage  *ebiten.Image // 银河带

	nebulae       []sky.NebulaGlow
	nebulaSprites []*ebiten.Image

	// 顶点数组复用，避免每帧分配
	vertices []ebiten.Vertex
	indices  []uint16
}

// FrameState 一帧渲染需要的全部外部状态（引擎每帧传入）
type FrameState struct {
	Config config.SceneConfig
	Stars  *sky.StarField
	Glyphs *sky.GlyphCache

	// TimeSeconds 引擎启动以来的时间（闪烁相位）
	TimeSeconds float64

	// MouseX/MouseY 平滑后的归一化鼠标位置 [0,1]
	MouseX float64
	MouseY float64
}

// 天空调色板：新月 ↔ 满月 间按月照线性插值
var (
	newMoonZenith   = color.RGBA{R: 4, G: 6, B: 18, A: 255}
	newMoonHorizon  = color.RGBA{R: 16, G: 22, B: 44, A: 255}
	fullMoonZenith  = color.RGBA{R: 26, G: 34, B: 60, A: 255}
	fullMoonHorizon = color.RGBA{R: 52, G: 64, B: 96, A: 255}
)

// 季节地平线色调的色相（冬季无地平线辉光）
var horizonHues = map[types.Season]float64{
	types.SeasonSpring: 170,
	types.SeasonSummer: 45,
	types.SeasonFall:   300,
}

// NewSkyRenderSystem creates a new SkyRenderSystem instance.
func NewSkyRenderSystem(em *ecs.EntityManager, tuning config.RenderTuning) *SkyRenderSystem {
	s := &SkyRenderSystem{
		EntityManager: em,
		Tuning:        tuning,
		vertices:      make([]ebiten.Vertex, 0, 1024),
		indices:       make([]uint16, 0, 1536),
	}
	s.whiteImage = ebiten.NewImage(3, 3)
	s.whiteImage.Fill(color.White)
	// 取中心 1x1 子图做顶点纹理，避免采样边缘渗色
	s.whitePixel = s.whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	return s
}

// SetSurfaceSize 更新表面尺寸并重建分辨率相关贴图
func (s *SkyRenderSystem) SetSurfaceSize(width, height float64) {
	s.width = width
	s.height = height

	// 银河带：一条宽而扁的椭圆辉光，位于 35% 高度附近
	s.bandImage = sky.RenderEllipseGlow(width*0.75, height*0.16, utils.HSV(225, 0.25, 0.85))
	// 流星头部光辉
	s.headGlow = sky.RenderEllipseGlow(10, 10, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	// 星云贴图依赖表面尺寸
	s.rebuildNebulaSprites()
}

// SetNebulae 替换星云集合并重建贴图（仅季节变化时被调用）
func (s *SkyRenderSystem) SetNebulae(nebulae []sky.NebulaGlow) {
	s.nebulae = nebulae
	s.rebuildNebulaSprites()
}

func (s *SkyRenderSystem) rebuildNebulaSprites() {
	if s.width <= 0 || s.height <= 0 {
		return
	}
	s.nebulaSprites = s.nebulaSprites[:0]
	for _, n := range s.nebulae {
		tint := utils.HSV(n.Hue, 0.55, 0.8)
		s.nebulaSprites = append(s.nebulaSprites, sky.RenderEllipseGlow(n.RadiusX*s.width, n.RadiusY*s.height, tint))
	}
}

// Draw 合成一帧（调用前表面必须已确定尺寸）
func (s *SkyRenderSystem) Draw(screen *ebiten.Image, state FrameState) {
	if screen == nil || s.width <= 0 || s.height <= 0 {
		return
	}

	moonFrac := utils.Clamp(state.Config.MoonIllumination, 0, 100) / 100
	parallaxX, parallaxY := s.parallaxOffset(state)

	s.drawSkyGradient(screen, moonFrac)
	s.drawGalacticBand(screen, moonFrac, parallaxX, parallaxY)
	s.drawNebulae(screen, moonFrac, parallaxX, parallaxY)
	s.drawHorizonTint(screen, state.Config.Season(), moonFrac)
	s.drawStars(screen, state, moonFrac, parallaxX, parallaxY)
	s.drawMeteors(screen, state, moonFrac)
}

// parallaxOffset 反向鼠标偏移（满深度时的像素量，按元素深度再缩放）
func (s *SkyRenderSystem) parallaxOffset(state FrameState) (float64, float64) {
	maxShift := s.Tuning.Parallax.MaxShiftPx
	dx := -(utils.Clamp01(state.MouseX) - 0.5) * 2 * maxShift
	dy := -(utils.Clamp01(state.MouseY) - 0.5) * 2 * maxShift
	return dx, dy
}

// drawSkyGradient 垂直渐变：天顶色 → 地平色
func (s *SkyRenderSystem) drawSkyGradient(screen *ebiten.Image, moonFrac float64) {
	zenith := utils.LerpRGB(newMoonZenith, fullMoonZenith, moonFrac)
	horizon := utils.LerpRGB(newMoonHorizon, fullMoonHorizon, moonFrac)
	s.fillVerticalGradient(screen, 0, s.height, zenith, horizon)
}

// drawGalacticBand 银河带辉光
func (s *SkyRenderSystem) drawGalacticBand(screen *ebiten.Image, moonFrac, parallaxX, parallaxY float64) {
	if s.bandImage == nil {
		return
	}
	const bandDepth = 0.2
	alpha := 0.45 * (1 - 0.55*moonFrac)

	bounds := s.bandImage.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(
		s.width/2-float64(bounds.Dx())/2+parallaxX*bandDepth,
		s.height*0.35-float64(bounds.Dy())/2+parallaxY*bandDepth,
	)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(s.bandImage, op)
}

// drawNebulae 星云辉光（月照上升时整体压低）
func (s *SkyRenderSystem) drawNebulae(screen *ebiten.Image, moonFrac, parallaxX, parallaxY float64) {
	const nebulaDepth = 0.3
	for i, n := range s.nebulae {
		if i >= len(s.nebulaSprites) {
			break
		}
		sprite := s.nebulaSprites[i]
		bounds := sprite.Bounds()
		alpha := n.Opacity * 4 * (1 - 0.6*moonFrac)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(
			n.NX*s.width-float64(bounds.Dx())/2+parallaxX*nebulaDepth,
			n.NY*s.height-float64(bounds.Dy())/2+parallaxY*nebulaDepth,
		)
		op.ColorScale.ScaleAlpha(float32(utils.Clamp01(alpha)))
		screen.DrawImage(sprite, op)
	}
}

// drawHorizonTint 底部的季节色调薄层（冬季跳过）
func (s *SkyRenderSystem) drawHorizonTint(screen *ebiten.Image, season types.Season, moonFrac float64) {
	hue, ok := horizonHues[season]
	if !ok {
		return
	}
	alpha := 0.14 * (1 - 0.5*moonFrac)
	tint := utils.HSVA(hue, 0.5, 0.4, alpha)
	top := color.RGBA{}
	s.fillVerticalGradientRect(screen, s.height*0.86, s.height, top, tint)
}

// drawStars 星空层
func (s *SkyRenderSystem) drawStars(screen *ebiten.Image, state FrameState, moonFrac, parallaxX, parallaxY float64) {
	if state.Stars == nil {
		return
	}
	maxShift := s.Tuning.Parallax.MaxShiftPx

	for i := range state.Stars.Stars {
		star := &state.Stars.Stars[i]

		// 正弦闪烁：blinker 在更宽的低-高区间振荡，
		// 缓动让它在亮/暗两端停留更久
		wave := 0.5 + 0.5*math.Sin(state.TimeSeconds*star.TwinkleSpeed+star.PhaseOffset)
		var twinkle float64
		if star.Blinker {
			twinkle = utils.Lerp(0.15, 1.0, utils.EaseInOutCubic(wave))
		} else {
			twinkle = utils.Lerp(0.55, 1.0, wave)
		}

		alpha := MoonAdjustedAlpha(star.Brightness*twinkle, moonFrac*100, s.Tuning.Moon)

		// 深度视差（封顶由 parallaxOffset 的 maxShift 保证）
		px := star.X + utils.Clamp(parallaxX*star.Depth, -maxShift, maxShift)
		py := star.Y + utils.Clamp(parallaxY*star.Depth, -maxShift, maxShift)

		switch star.Size {
		case sky.SizeFaint, sky.SizeMedium:
			// 暗/中星：纯色小点，视觉贡献小，不值得贴图开销
			s.drawStarDot(screen, star, px, py, alpha)
		default:
			s.drawStarGlyph(screen, state.Glyphs, star, px, py, alpha)
		}
	}
}

// drawStarDot 纯色圆点绘制
func (s *SkyRenderSystem) drawStarDot(screen *ebiten.Image, star *sky.Star, x, y, alpha float64) {
	var clr color.RGBA
	if star.Tinted {
		clr = utils.HSVA(star.Hue, star.Sat, 1, alpha)
	} else {
		clr = utils.ScaleAlpha(color.RGBA{R: 255, G: 255, B: 255, A: 255}, alpha)
	}
	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(star.Radius), clr, false)
}

// drawStarGlyph 亮星用预渲染图元，显著星叠加低透明度泛光
func (s *SkyRenderSystem) drawStarGlyph(screen *ebiten.Image, glyphs *sky.GlyphCache, star *sky.Star, x, y, alpha float64) {
	if glyphs == nil {
		s.drawStarDot(screen, star, x, y, alpha)
		return
	}
	glyph := glyphs.Glyph(star.Size, star.Group)
	if glyph == nil {
		s.drawStarDot(screen, star, x, y, alpha)
		return
	}

	bounds := glyph.Bounds()
	scale := star.Radius / 3.0
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x-float64(bounds.Dx())*scale/2, y-float64(bounds.Dy())*scale/2)
	op.ColorScale.ScaleAlpha(float32(utils.Clamp01(alpha)))
	screen.DrawImage(glyph, op)

	if star.Prominent {
		bloom := glyphs.Bloom(star.Group)
		if bloom != nil {
			bb := bloom.Bounds()
			bop := &ebiten.DrawImageOptions{}
			bop.GeoM.Scale(scale, scale)
			bop.GeoM.Translate(x-float64(bb.Dx())*scale/2, y-float64(bb.Dy())*scale/2)
			bop.ColorScale.ScaleAlpha(float32(utils.Clamp01(alpha * 0.18)))
			screen.DrawImage(bloom, bop)
		}
	}
}

// drawMeteors 流星层：余辉 → 尾迹 → 头部光辉
func (s *SkyRenderSystem) drawMeteors(screen *ebiten.Image, state FrameState, moonFrac float64) {
	meteors := ecs.GetEntitiesWith2[*components.MeteorComponent, *components.PositionComponent](s.EntityManager)

	for _, id := range meteors {
		meteor, ok := ecs.GetComponent[*components.MeteorComponent](s.EntityManager, id)
		if !ok {
			continue
		}
		position, ok := ecs.GetComponent[*components.PositionComponent](s.EntityManager, id)
		if !ok {
			continue
		}

		fade := MeteorFade(meteor.Life, meteor.MaxLife)
		if fade <= 0 {
			continue
		}
		alpha := MoonAdjustedAlpha(meteor.Opacity*fade, moonFrac*100, s.Tuning.Moon)

		headX, headY := position.X, position.Y
		tailX := headX - meteor.DirX*meteor.TrailLength
		tailY := headY - meteor.DirY*meteor.TrailLength

		headColor := utils.HSVA(meteor.Hue, meteor.Saturation, 1, alpha)

		// 余辉：同向更宽的低透明度描边（彗星母体的中/大号非火流星）
		if meteor.AfterglowEligible {
			glowColor := utils.HSVA(meteor.Hue, meteor.Saturation*0.6, 1, alpha*0.16)
			s.strokeTrail(screen, headX, headY, tailX, tailY, meteor.Thickness*3.2, glowColor)
		}

		// 主尾迹：尾端透明 → 头端明亮的线性渐变
		s.strokeTrail(screen, headX, headY, tailX, tailY, meteor.Thickness, headColor)

		// 头部光辉；小行星火流星入场头几拍带闪光
		glowScale := meteor.Thickness * 0.9
		if meteor.Fireball {
			glowScale *= 1.6
			if meteor.Parent == types.ParentAsteroid && meteor.Life < 4 {
				glowScale *= 1 + 0.8*utils.EaseOutCubic(1-meteor.Life/4)
			}
		}
		s.drawHeadGlow(screen, headX, headY, glowScale, headColor)
	}
}

// strokeTrail 画一条头亮尾透明的渐变线段（两三角形组成的四边形）
func (s *SkyRenderSystem) strokeTrail(screen *ebiten.Image, headX, headY, tailX, tailY, thickness float64, headColor color.RGBA) {
	dx, dy := headX-tailX, headY-tailY
	length := math.Hypot(dx, dy)
	if length < 1e-6 {
		return
	}
	// 单位法向量 × 半宽
	nx := -dy / length * thickness / 2
	ny := dx / length * thickness / 2

	r := float32(headColor.R) / 255
	g := float32(headColor.G) / 255
	b := float32(headColor.B) / 255
	a := float32(headColor.A) / 255

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	s.vertices = append(s.vertices,
		ebiten.Vertex{DstX: float32(tailX + nx), DstY: float32(tailY + ny), SrcX: 1, SrcY: 1},
		ebiten.Vertex{DstX: float32(tailX - nx), DstY: float32(tailY - ny), SrcX: 1, SrcY: 1},
		ebiten.Vertex{DstX: float32(headX - nx), DstY: float32(headY - ny), SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		ebiten.Vertex{DstX: float32(headX + nx), DstY: float32(headY + ny), SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
	)
	s.indices = append(s.indices, 0, 1, 2, 0, 2, 3)

	op := &ebiten.DrawTrianglesOptions{}
	// 加法混合：尾迹叠在亮星上不会发灰
	op.Blend = ebiten.Blend{
		BlendFactorSourceRGB:        ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}
	screen.DrawTriangles(s.vertices, s.indices, s.whitePixel, op)
}

// drawHeadGlow 头部径向光辉
func (s *SkyRenderSystem) drawHeadGlow(screen *ebiten.Image, x, y, scale float64, tint color.RGBA) {
	if s.headGlow == nil || scale <= 0 {
		return
	}
	bounds := s.headGlow.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x-float64(bounds.Dx())*scale/2, y-float64(bounds.Dy())*scale/2)
	op.ColorScale.Scale(float32(tint.R)/255, float32(tint.G)/255, float32(tint.B)/255, float32(tint.A)/255)
	op.Blend = ebiten.BlendLighter
	screen.DrawImage(s.headGlow, op)
}

// fillVerticalGradient 全宽垂直渐变
func (s *SkyRenderSystem) fillVerticalGradient(screen *ebiten.Image, top, bottom float64, topColor, bottomColor color.RGBA) {
	s.fillVerticalGradientRect(screen, top, bottom, topColor, bottomColor)
}

// fillVerticalGradientRect 指定纵向区间的垂直渐变矩形
func (s *SkyRenderSystem) fillVerticalGradientRect(screen *ebiten.Image, top, bottom float64, topColor, bottomColor color.RGBA) {
	tr := float32(topColor.R) / 255
	tg := float32(topColor.G) / 255
	tb := float32(topColor.B) / 255
	ta := float32(topColor.A) / 255
	br := float32(bottomColor.R) / 255
	bg := float32(bottomColor.G) / 255
	bb := float32(bottomColor.B) / 255
	ba := float32(bottomColor.A) / 255

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	s.vertices = append(s.vertices,
		ebiten.Vertex{DstX: 0, DstY: float32(top), SrcX: 1, SrcY: 1, ColorR: tr, ColorG: tg, ColorB: tb, ColorA: ta},
		ebiten.Vertex{DstX: float32(s.width), DstY: float32(top), SrcX: 1, SrcY: 1, ColorR: tr, ColorG: tg, ColorB: tb, ColorA: ta},
		ebiten.Vertex{DstX: float32(s.width), DstY: float32(bottom), SrcX: 1, SrcY: 1, ColorR: br, ColorG: bg, ColorB: bb, ColorA: ba},
		ebiten.Vertex{DstX: 0, DstY: float32(bottom), SrcX: 1, SrcY: 1, ColorR: br, ColorG: bg, ColorB: bb, ColorA: ba},
	)
	s.indices = append(s.indices, 0, 1, 2, 0, 2, 3)
	screen.DrawTriangles(s.vertices, s.indices, s.whitePixel, &ebiten.DrawTrianglesOptions{})
}

// MoonAdjustedAlpha applies the moon dimming and the compensating
// visibility boost to a base alpha. The result at full moon is strictly
// below the new-moon value but never reaches zero: a dim floor remains.
func MoonAdjustedAlpha(base, moonIllumination float64, moon config.MoonTuning) float64 {
	moonFrac := utils.Clamp(moonIllumination, 0, 100) / 100
	boost := 1 + (moon.BoostMax-1)*moonFrac
	adjusted := base * (1 - moonFrac*moon.DimFactor) * boost
	if floor := base * moon.FloorAlpha; adjusted < floor {
		adjusted = floor
	}
	return utils.Clamp01(adjusted)
}

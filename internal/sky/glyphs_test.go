package sky

import "testing"

// TestGlyphCache_FullSet 每个 色调分组 × 亮度分级 组合都有图元
func TestGlyphCache_FullSet(t *testing.T) {
	gc := NewGlyphCache(1)

	groups := []HueGroup{HueNeutral, HueWarm, HueCool, HueYellow, HuePaleBlue}
	for _, group := range groups {
		if gc.Glyph(SizeBright, group) == nil {
			t.Errorf("missing bright glyph for group %d", group)
		}
		if gc.Glyph(SizeProminent, group) == nil {
			t.Errorf("missing prominent glyph for group %d", group)
		}
		if gc.Bloom(group) == nil {
			t.Errorf("missing bloom for group %d", group)
		}
	}

	// 暗星不走图元路径
	if gc.Glyph(SizeFaint, HueNeutral) != nil {
		t.Error("faint stars should have no glyph")
	}
	if gc.Glyph(SizeMedium, HueNeutral) != nil {
		t.Error("medium stars should have no glyph")
	}

	// 5 分组 × 2 分级 + 5 泛光
	if got := gc.GlyphCount(); got != 15 {
		t.Errorf("GlyphCount = %d, want 15", got)
	}
}

// TestGlyphCache_RebuildScales 重建后贴图尺寸随比例变化
func TestGlyphCache_RebuildScales(t *testing.T) {
	gc := NewGlyphCache(1)
	small := gc.Glyph(SizeBright, HueNeutral).Bounds().Dx()

	gc.Rebuild(2)
	if gc.Scale() != 2 {
		t.Errorf("Scale = %v, want 2", gc.Scale())
	}
	large := gc.Glyph(SizeBright, HueNeutral).Bounds().Dx()
	if large <= small {
		t.Errorf("glyph should grow with scale: %d -> %d", small, large)
	}

	// 非法比例回落到 1
	gc.Rebuild(-1)
	if gc.Scale() != 1 {
		t.Errorf("negative scale should reset to 1, got %v", gc.Scale())
	}
}

// TestRenderEllipseGlow_Dimensions 贴图覆盖整个椭圆
func TestRenderEllipseGlow_Dimensions(t *testing.T) {
	img := RenderEllipseGlow(40, 10, groupColor(HueNeutral))
	b := img.Bounds()
	if b.Dx() < 80 || b.Dy() < 20 {
		t.Errorf("glow image %dx%d smaller than ellipse 80x20", b.Dx(), b.Dy())
	}
	if b.Dx() <= b.Dy() {
		t.Errorf("wide ellipse should produce a wide image, got %dx%d", b.Dx(), b.Dy())
	}
}

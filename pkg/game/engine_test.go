package game

import (
	"testing"

	"github.com/decker502/nightsky/pkg/config"
)

func activeScene(zhr float64) config.SceneConfig {
	cfg := config.DefaultSceneConfig()
	cfg.ZHR = zhr
	cfg.VelocityKmPerSec = 59
	cfg.PeakMonth = 8
	return cfg.Normalize()
}

func newTestEngine(cfg config.SceneConfig) *Engine {
	return NewEngineSeeded(cfg, config.DefaultRenderTuning(), 42)
}

// TestEngine_InactiveBeforeSetSize SetSize 之前引擎静默
func TestEngine_InactiveBeforeSetSize(t *testing.T) {
	e := newTestEngine(activeScene(100))
	if e.Active() {
		t.Error("engine should be inactive before SetSize")
	}

	// 未激活时 Step/Render 是安全的 no-op
	e.Step(1.0)
	e.Render(nil, 16)
	if e.LiveMeteorCount() != 0 {
		t.Error("inactive engine must not simulate")
	}

	e.SetSize(0, 720) // 非法尺寸仍不激活
	if e.Active() {
		t.Error("zero-width SetSize should not activate")
	}

	e.SetSize(1280, 720)
	if !e.Active() {
		t.Error("engine should activate on first valid SetSize")
	}
}

// TestEngine_ResizeKeepsStars 重设尺寸保留星空集合
func TestEngine_ResizeKeepsStars(t *testing.T) {
	e := newTestEngine(activeScene(0))
	e.SetSize(1280, 720)

	stars := e.Stars()
	count := len(stars.Stars)
	firstNX := stars.Stars[0].NX

	e.SetSize(1920, 1080)
	if e.Stars() != stars {
		t.Fatal("resize must not replace the star field")
	}
	if len(e.Stars().Stars) != count {
		t.Errorf("star count changed on resize: %d -> %d", count, len(e.Stars().Stars))
	}
	if e.Stars().Stars[0].NX != firstNX {
		t.Errorf("star identity changed on resize")
	}
	if w, h := e.Stars().Size(); w != 1920 || h != 1080 {
		t.Errorf("stars not reprojected: size (%v, %v)", w, h)
	}
}

// TestEngine_SameSizeSetSizeRefreshesGlyphs 同尺寸重设保留星空但重建字形缓存
func TestEngine_SameSizeSetSizeRefreshesGlyphs(t *testing.T) {
	e := newTestEngine(activeScene(0))
	e.SetSize(1280, 720)

	stars := e.Stars()
	count := len(stars.Stars)
	rebuilds := e.Glyphs().Rebuilds()
	if rebuilds != 1 {
		t.Fatalf("first SetSize should build glyphs once, got %d", rebuilds)
	}

	e.SetSize(1280, 720)
	if e.Stars() != stars || len(e.Stars().Stars) != count {
		t.Error("same-size SetSize must not change the star population")
	}
	if got := e.Glyphs().Rebuilds(); got != rebuilds+1 {
		t.Errorf("same-size SetSize should refresh the glyph cache, rebuilds %d -> %d", rebuilds, got)
	}
	if e.NebulaGenerations() != 1 {
		t.Errorf("same-size SetSize must not regenerate nebulae")
	}
}

// TestEngine_QuietSkyNoMeteors ZHR=0 长时间运行零流星
func TestEngine_QuietSkyNoMeteors(t *testing.T) {
	e := newTestEngine(activeScene(0))
	e.SetSize(1280, 720)

	for i := 0; i < 600; i++ {
		e.Step(1.0 / 60.0)
	}
	if got := e.LiveMeteorCount(); got != 0 {
		t.Errorf("quiet sky produced %d meteors", got)
	}
}

// TestEngine_BoundedMeteorCount 峰值场景长时间运行数量有界
func TestEngine_BoundedMeteorCount(t *testing.T) {
	e := newTestEngine(activeScene(150))
	e.SetSize(1280, 720)

	peak := 0
	for i := 0; i < 60*30; i++ {
		e.Step(1.0 / 60.0)
		if n := e.LiveMeteorCount(); n > peak {
			peak = n
		}
	}
	if peak == 0 {
		t.Fatal("peak shower produced no meteors")
	}
	// 生成率 ~1.7/s、寿命约 1 秒量级，数量应远低于防御上限
	if peak > 200 {
		t.Errorf("meteor count %d suggests retirement is not keeping up", peak)
	}
}

// TestEngine_SeasonChangeRegeneratesNebulae 仅季节变化时重建星云
func TestEngine_SeasonChangeRegeneratesNebulae(t *testing.T) {
	e := newTestEngine(activeScene(0)) // PeakMonth 8 = summer
	e.SetSize(1280, 720)

	if e.NebulaGenerations() != 1 {
		t.Fatalf("initial generations = %d, want 1", e.NebulaGenerations())
	}

	// 同季节内的配置更新不触发重建
	month := 7
	e.UpdateConfig(config.ScenePatch{PeakMonth: &month})
	if e.NebulaGenerations() != 1 {
		t.Errorf("same-season update regenerated nebulae")
	}

	// 跨季节触发一次重建
	month = 12
	e.UpdateConfig(config.ScenePatch{PeakMonth: &month})
	if e.NebulaGenerations() != 2 {
		t.Errorf("season change should regenerate once, generations = %d", e.NebulaGenerations())
	}

	// 重复同配置不再触发
	e.UpdateConfig(config.ScenePatch{PeakMonth: &month})
	if e.NebulaGenerations() != 2 {
		t.Errorf("repeated update regenerated nebulae again")
	}
}

// TestEngine_UpdateConfigMerges 部分更新只覆盖给定字段
func TestEngine_UpdateConfigMerges(t *testing.T) {
	e := newTestEngine(activeScene(100))
	zhr := 20.0
	e.UpdateConfig(config.ScenePatch{ZHR: &zhr})

	cfg := e.Config()
	if cfg.ZHR != 20 {
		t.Errorf("ZHR = %v, want 20", cfg.ZHR)
	}
	if cfg.VelocityKmPerSec != 59 {
		t.Errorf("unpatched field changed: VelocityKmPerSec = %v", cfg.VelocityKmPerSec)
	}
}

// TestEngine_SetConfigSeasonFlip SetConfig 整体替换也遵守季节规则
func TestEngine_SetConfigSeasonFlip(t *testing.T) {
	e := newTestEngine(activeScene(100))
	e.SetSize(1280, 720)

	winter := activeScene(50)
	winter.PeakMonth = 1
	e.SetConfig(winter)
	if e.NebulaGenerations() != 2 {
		t.Errorf("SetConfig crossing seasons should regenerate nebulae")
	}
	if e.Config().ZHR != 50 {
		t.Errorf("config not replaced: ZHR = %v, want 50", e.Config().ZHR)
	}
}

// TestEngine_StepClampsLargeDelta 后台恢复的大 dt 被截断
func TestEngine_StepClampsLargeDelta(t *testing.T) {
	e := newTestEngine(activeScene(150))
	e.SetSize(1280, 720)

	// 一次 10 秒的跳变不应生成 10 秒量的流星
	e.Step(10)
	if got := e.LiveMeteorCount(); got > 5 {
		t.Errorf("clamped step spawned %d meteors, expected a fraction of a second's worth", got)
	}
}

// TestEngine_MouseSmoothing 视差值渐进逼近目标而不是跳变
func TestEngine_MouseSmoothing(t *testing.T) {
	e := newTestEngine(activeScene(0))
	e.SetSize(1280, 720)

	e.SetMouseTarget(1, 1)
	e.Step(1.0 / 60.0)
	if e.mouseX >= 1 || e.mouseX <= 0.5 {
		t.Errorf("after one frame mouseX = %v, want strictly between 0.5 and 1", e.mouseX)
	}

	for i := 0; i < 600; i++ {
		e.Step(1.0 / 60.0)
	}
	if e.mouseX < 0.99 {
		t.Errorf("mouseX should converge to target, got %v", e.mouseX)
	}

	// 目标越界时收敛到表面内
	e.SetMouseTarget(5, -3)
	if e.mouseTargetX != 1 || e.mouseTargetY != 0 {
		t.Errorf("mouse target should clamp to [0,1], got (%v, %v)", e.mouseTargetX, e.mouseTargetY)
	}
}

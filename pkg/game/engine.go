// Package game 承载夜空引擎的对外门面与宿主侧状态管理。
// Engine 将星场、星云、流星三条管线组装为一个可嵌入的渲染单元，
// 宿主只需按帧喂入时间戳与场景配置即可。
package game

import (
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nightsky/internal/sky"
	"github.com/decker502/nightsky/pkg/components"
	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/ecs"
	"github.com/decker502/nightsky/pkg/systems"
	"github.com/decker502/nightsky/pkg/types"
	"github.com/decker502/nightsky/pkg/utils"
)

// maxFrameDelta caps the per-frame time step so a backgrounded window
// does not dump a huge burst of meteors on resume.
const maxFrameDelta = 0.25

// Engine is the top-level night sky renderer. It owns the ECS world,
// the star population and the per-frame systems, and exposes a small
// host-facing surface: resize, config updates, pointer input and a
// single Render call per frame.
type Engine struct {
	em  *ecs.EntityManager
	rng *rand.Rand

	cfg    config.SceneConfig
	tuning config.RenderTuning

	spawnSys  *systems.MeteorSpawnSystem
	meteorSys *systems.MeteorSystem
	renderSys *systems.SkyRenderSystem

	stars  *sky.StarField
	glyphs *sky.GlyphCache

	nebulae           []sky.NebulaGlow
	nebulaSeason      types.Season
	nebulaGenerations int

	// 鼠標目標與平滑後的當前值，歸一化 [0,1]。
	mouseTargetX, mouseTargetY float64
	mouseX, mouseY             float64

	width, height int
	active        bool

	lastTimestampMs float64
	hasTimestamp    bool
	elapsedSeconds  float64
}

// NewEngine creates an engine for the given initial scene. The engine
// stays inactive (Render is a no-op) until SetSize establishes a
// drawing surface.
func NewEngine(cfg config.SceneConfig, tuning config.RenderTuning) *Engine {
	return NewEngineSeeded(cfg, tuning, time.Now().UnixNano())
}

// NewEngineSeeded is NewEngine with a fixed random seed, for tests and
// offline analysis tools.
func NewEngineSeeded(cfg config.SceneConfig, tuning config.RenderTuning, seed int64) *Engine {
	cfg = cfg.Normalize()
	em := ecs.NewEntityManager()
	rng := rand.New(rand.NewSource(seed))
	e := &Engine{
		em:           em,
		rng:          rng,
		cfg:          cfg,
		tuning:       tuning,
		spawnSys:     systems.NewMeteorSpawnSystem(em, tuning, rng),
		meteorSys:    systems.NewMeteorSystem(em),
		renderSys:    systems.NewSkyRenderSystem(em, tuning),
		mouseTargetX: 0.5,
		mouseTargetY: 0.5,
		mouseX:       0.5,
		mouseY:       0.5,
	}
	e.em.AddComponent(e.em.CreateEntity(), &components.MeteorEmitterComponent{})
	return e
}

// SetSize establishes or changes the drawing surface. The first call
// with positive dimensions activates the engine and generates the star
// population; later calls reproject the existing stars instead of
// rerolling them, so the sky stays recognizable across resizes. The
// glyph cache is rebuilt on every call because sprite radii depend on
// surface scale.
func (e *Engine) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	first := !e.active
	e.width, e.height = width, height

	w, h := float64(width), float64(height)
	if first {
		e.stars = sky.NewStarField(w, h, e.rng)
		e.nebulaSeason = e.cfg.Season()
		e.nebulae = sky.GenerateNebulae(e.nebulaSeason, e.rng)
		e.nebulaGenerations++
		e.active = true
	} else {
		e.stars.Resize(w, h)
	}

	// 字形缓存按短边比例缩放，窗口越大光晕越大。
	scale := float64(minInt(width, height)) / 720.0
	if scale <= 0 {
		scale = 1
	}
	if e.glyphs == nil {
		e.glyphs = sky.NewGlyphCache(scale)
	} else {
		e.glyphs.Rebuild(scale)
	}

	e.spawnSys.SetSurfaceSize(w, h)
	e.meteorSys.SetSurfaceSize(w, h)
	e.renderSys.SetSurfaceSize(w, h)
	e.renderSys.SetNebulae(e.nebulae)
}

// UpdateConfig merges a partial scene update into the current config.
// Absent fields keep their values. Nebulae are regenerated only when
// the update moves the scene into a different season.
func (e *Engine) UpdateConfig(patch config.ScenePatch) {
	e.cfg = patch.Apply(e.cfg)
	e.cfg = e.cfg.Normalize()
	if !e.active {
		return
	}
	if season := e.cfg.Season(); season != e.nebulaSeason {
		e.nebulaSeason = season
		e.nebulae = sky.GenerateNebulae(season, e.rng)
		e.nebulaGenerations++
		e.renderSys.SetNebulae(e.nebulae)
	}
}

// SetConfig replaces the whole scene config. Same season rules as
// UpdateConfig.
func (e *Engine) SetConfig(cfg config.SceneConfig) {
	cfg = cfg.Normalize()
	old := e.cfg
	e.cfg = cfg
	if !e.active {
		return
	}
	if old.Season() != cfg.Season() || e.nebulaSeason != cfg.Season() {
		e.nebulaSeason = cfg.Season()
		e.nebulae = sky.GenerateNebulae(e.nebulaSeason, e.rng)
		e.nebulaGenerations++
		e.renderSys.SetNebulae(e.nebulae)
	}
}

// SetMouseTarget records the pointer position in normalized [0,1]
// surface coordinates. Only the latest target is kept; the rendered
// parallax offset eases toward it over subsequent frames.
func (e *Engine) SetMouseTarget(nx, ny float64) {
	e.mouseTargetX = utils.Clamp01(nx)
	e.mouseTargetY = utils.Clamp01(ny)
}

// Render advances the simulation to the given timestamp (milliseconds,
// monotonic) and draws one frame. Before SetSize the call is a silent
// no-op; the first timestamped call only establishes the time baseline.
func (e *Engine) Render(screen *ebiten.Image, timestampMs float64) {
	if !e.active || screen == nil {
		return
	}
	dt := e.deltaSeconds(timestampMs)
	e.Step(dt)
	e.renderSys.Draw(screen, systems.FrameState{
		Config:      e.cfg,
		Stars:       e.stars,
		Glyphs:      e.glyphs,
		TimeSeconds: e.elapsedSeconds,
		MouseX:      e.mouseX,
		MouseY:      e.mouseY,
	})
}

// Step advances the simulation by dt seconds without drawing. Render
// calls it internally; headless tools and tests call it directly.
func (e *Engine) Step(dt float64) {
	if !e.active || dt < 0 {
		return
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	e.elapsedSeconds += dt

	frameScale := dt * 1000.0 / 16.0

	// 视差缓动：每帧向目标靠近固定比例。
	f := e.tuning.Parallax.Smoothing * frameScale
	if f > 1 {
		f = 1
	}
	e.mouseX += (e.mouseTargetX - e.mouseX) * f
	e.mouseY += (e.mouseTargetY - e.mouseY) * f

	e.spawnSys.Update(dt, e.cfg)
	e.meteorSys.Update(frameScale)
	e.em.RemoveMarkedEntities()
}

// deltaSeconds converts the host timestamp into a clamped step.
func (e *Engine) deltaSeconds(timestampMs float64) float64 {
	if !e.hasTimestamp {
		e.hasTimestamp = true
		e.lastTimestampMs = timestampMs
		return 0
	}
	dt := (timestampMs - e.lastTimestampMs) / 1000.0
	e.lastTimestampMs = timestampMs
	if dt < 0 {
		return 0
	}
	return dt
}

// Config returns the current effective scene config.
func (e *Engine) Config() config.SceneConfig { return e.cfg }

// Active reports whether SetSize has established a surface.
func (e *Engine) Active() bool { return e.active }

// LiveMeteorCount returns the number of meteors currently simulated.
func (e *Engine) LiveMeteorCount() int {
	count := 0
	for range ecs.GetEntitiesWith2[*components.PositionComponent, *components.MeteorComponent](e.em) {
		count++
	}
	return count
}

// NebulaGenerations reports how many times the nebula layer has been
// rebuilt. It only moves when the engine activates or the season flips.
func (e *Engine) NebulaGenerations() int { return e.nebulaGenerations }

// Stars exposes the star population for inspection tools.
func (e *Engine) Stars() *sky.StarField { return e.stars }

// Glyphs exposes the star sprite cache. Nil until the first SetSize.
func (e *Engine) Glyphs() *sky.GlyphCache { return e.glyphs }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

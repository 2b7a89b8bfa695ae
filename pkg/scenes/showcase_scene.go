// Package scenes 实现夜空查看器的各个顶层场景。
package scenes

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/embedded"
	"github.com/decker502/nightsky/pkg/game"
)

// 拖拽灵敏度：水平拖满一个屏幕宽度相当于扫过多少天
const dragDaysPerScreen = 60.0

// 滚轮每格步进的天数
const wheelDaysPerTick = 1.0

// ShowcaseScene 展示场景：驱动引擎播放全年夜空
//
// 交互方式：
//   - 滚轮 / 左右方向键：按天步进时间轴
//   - 按住左键水平拖拽：连续扫过时间轴
//   - Space：切换自动播放；+/- 调整播放速度
//   - P：切换鼠标视差；H：切换 HUD
type ShowcaseScene struct {
	engine   *game.Engine
	timeline *game.Timeline
	settings *game.SettingsManager

	dayIndex float64 // 当前日索引，含小数部分
	showHUD  bool

	// 拖拽扫动状态
	dragging   bool
	dragStartX int
	dragDay    float64

	width, height int
	elapsedMs     float64
}

// NewShowcaseScene creates the showcase starting at the given day
// index. The engine stays inactive until the first Layout call.
func NewShowcaseScene(timeline *game.Timeline, settings *game.SettingsManager, startDay float64) *ShowcaseScene {
	cfg := timeline.ConfigAt(startDay)
	tuning := loadTuning()
	s := &ShowcaseScene{
		engine:   game.NewEngine(cfg, tuning),
		timeline: timeline,
		settings: settings,
		dayIndex: startDay,
		showHUD:  true,
	}
	return s
}

// loadTuning 读取渲染调参文件，失败时回退到默认值
func loadTuning() config.RenderTuning {
	data, err := embedded.ReadFile("assets/config/render_tuning.yaml")
	if err != nil {
		log.Printf("[ShowcaseScene] render_tuning.yaml unavailable: %v (using defaults)", err)
		return config.DefaultRenderTuning()
	}
	tuning, err := config.ParseRenderTuning(data)
	if err != nil {
		log.Printf("[ShowcaseScene] invalid render_tuning.yaml: %v (using defaults)", err)
		return config.DefaultRenderTuning()
	}
	return tuning
}

// Layout propagates the logical surface size to the engine. Ebitengine
// calls Layout every tick; the engine rebuilds its sprite caches on each
// SetSize, so only a real size change may pass through.
func (s *ShowcaseScene) Layout(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.engine.SetSize(width, height)
}

// Update 处理输入并推进时间轴
func (s *ShowcaseScene) Update(deltaTime float64) {
	prefs := s.settings.GetSettings()

	s.handleKeys(prefs)
	s.handleWheel()
	s.handleDrag()

	if prefs.AutoPlay {
		s.seekTo(s.dayIndex + prefs.AutoPlaySpeed*deltaTime)
	}

	// 视差目标：关闭视差时固定在屏幕中心
	if prefs.ParallaxEnabled && s.width > 0 && s.height > 0 {
		cx, cy := ebiten.CursorPosition()
		s.engine.SetMouseTarget(float64(cx)/float64(s.width), float64(cy)/float64(s.height))
	} else {
		s.engine.SetMouseTarget(0.5, 0.5)
	}

	s.elapsedMs += deltaTime * 1000.0
}

func (s *ShowcaseScene) handleKeys(prefs *game.ViewerSettings) {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		s.seekTo(s.dayIndex - 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		s.seekTo(s.dayIndex + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.settings.SetAutoPlay(!prefs.AutoPlay)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		s.settings.SetAutoPlaySpeed(prefs.AutoPlaySpeed * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		s.settings.SetAutoPlaySpeed(prefs.AutoPlaySpeed / 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.settings.SetParallaxEnabled(!prefs.ParallaxEnabled)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.showHUD = !s.showHUD
	}
}

func (s *ShowcaseScene) handleWheel() {
	_, wheelY := ebiten.Wheel()
	if wheelY != 0 {
		s.seekTo(s.dayIndex + wheelY*wheelDaysPerTick)
	}
}

func (s *ShowcaseScene) handleDrag() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, _ := ebiten.CursorPosition()
		s.dragging = true
		s.dragStartX = x
		s.dragDay = s.dayIndex
	}
	if s.dragging {
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			x, _ := ebiten.CursorPosition()
			if s.width > 0 {
				offset := float64(x-s.dragStartX) / float64(s.width)
				s.seekTo(s.dragDay + offset*dragDaysPerScreen)
			}
		} else {
			s.dragging = false
		}
	}
}

// seekTo 将时间轴移动到指定日索引并更新引擎配置
func (s *ShowcaseScene) seekTo(index float64) {
	days := float64(s.timeline.Len())
	for index < 0 {
		index += days
	}
	for index >= days {
		index -= days
	}
	s.dayIndex = index
	s.engine.SetConfig(s.timeline.ConfigAt(index))
	s.settings.SetLastDayIndex(index)
}

// Draw renders the sky and the HUD overlay.
func (s *ShowcaseScene) Draw(screen *ebiten.Image) {
	s.engine.Render(screen, s.elapsedMs)
	if s.showHUD {
		s.drawHUD(screen)
	}
}

func (s *ShowcaseScene) drawHUD(screen *ebiten.Image) {
	cfg := s.engine.Config()
	prefs := s.settings.GetSettings()

	day := int(s.dayIndex)
	month := config.MonthOfDay(day)
	monthName := time.Month(month).String()

	lines := []string{
		fmt.Sprintf("Day %d (%s)  [wheel/arrows: scrub, drag: sweep]", day+1, monthName),
		fmt.Sprintf("ZHR %.0f  velocity %.0f km/s  %s/%s", cfg.ZHR, cfg.VelocityKmPerSec, cfg.ParentObjectType, cfg.VelocityCategory),
		fmt.Sprintf("Moon %.0f%% (%s)", cfg.MoonIllumination, cfg.MoonPhaseName),
		fmt.Sprintf("Meteors %d  autoplay %v (%.1f d/s)  parallax %v", s.engine.LiveMeteorCount(), prefs.AutoPlay, prefs.AutoPlaySpeed, prefs.ParallaxEnabled),
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 8, 8+i*16)
	}
}

// SaveOnExit persists the viewer settings, including the last viewed
// day, so a restart resumes where the user left off.
func (s *ShowcaseScene) SaveOnExit() bool {
	s.settings.SetLastDayIndex(s.dayIndex)
	if err := s.settings.Save(); err != nil {
		log.Printf("[ShowcaseScene] Failed to save settings on exit: %v", err)
		return false
	}
	return true
}

// Package app 提供夜空查看器的应用包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/embedded"
	"github.com/decker502/nightsky/pkg/game"
	"github.com/decker502/nightsky/pkg/scenes"
	"github.com/decker502/nightsky/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// StartDay 指定起始日索引（1~365），0 表示从存档恢复
	StartDay int
	// DisablePersistence 禁用设置持久化（降级为内存设置）
	DisablePersistence bool
}

// App 是查看器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化查看器应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 加载流星雨目录
	data, err := embedded.ReadFile("assets/config/showers.yaml")
	if err != nil {
		return nil, fmt.Errorf("流星雨目录加载失败: %w", err)
	}
	catalog, err := config.ParseShowerCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("流星雨目录解析失败: %w", err)
	}
	log.Printf("[App] Shower catalog loaded: %d showers", len(catalog.Showers))

	timeline, err := game.NewTimelineFromCatalog(catalog)
	if err != nil {
		return nil, fmt.Errorf("时间轴构建失败: %w", err)
	}

	// 初始化设置存储（失败时降级为内存设置）
	var gdataManager *gdata.Manager
	if !cfg.DisablePersistence {
		// Android 上 gdata 不会预创建存储子目录
		if err := utils.EnsureStorageDir(); err != nil {
			log.Printf("[App] Warning: storage dir unavailable: %v", err)
		}
		gdataManager, err = gdata.Open(gdata.Config{AppName: "nightsky"})
		if err != nil {
			log.Printf("[App] Warning: persistent storage unavailable: %v (settings will not be saved)", err)
			gdataManager = nil
		} else if path := utils.GetStoragePath(); path != "" {
			log.Printf("[App] Settings storage: %s", path)
		}
	}
	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(startDay float64) game.Scene {
		return scenes.NewShowcaseScene(timeline, settings, startDay)
	})

	// 确定起始日索引
	startDay := settings.GetSettings().LastDayIndex
	if cfg.StartDay > 0 {
		startDay = float64(cfg.StartDay - 1)
		log.Printf("[App] Starting at day %d (from flag)", cfg.StartDay)
	} else if startDay > 0 {
		log.Printf("[App] Resuming at day index %.2f", startDay)
	}

	sceneManager.LoadShowcase(startDay)

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑，每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏（移动端无窗口概念，跳过）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面，每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear // 线性滤波减少缩放锯齿
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Layout(config.GameWindowWidth, config.GameWindowHeight)
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器，用于关闭时保存状态
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// GetSettingsManager 返回设置管理器
func (a *App) GetSettingsManager() *game.SettingsManager {
	return a.settings
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nightsky/pkg/app"
	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/embedded"
	"github.com/decker502/nightsky/pkg/game"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	day := flag.Int("day", 0, "start at this day of the year (1-365)")
	windowed := flag.Bool("windowed", false, "force windowed mode regardless of saved settings")
	flag.Parse()

	// 初始化嵌入资源（assetsFS 在 embed.go 中声明）
	embedded.Init(assetsFS)

	viewer, err := app.NewApp(app.Config{
		Verbose:  *verbose,
		StartDay: *day,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Night Sky")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if !*windowed && viewer.GetSettingsManager().GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	// 关闭窗口时先让当前场景保存状态
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(&closingGame{App: viewer}); err != nil {
		if _, ok := err.(gracefulShutdown); !ok {
			log.Fatal(err)
		}
	}
}

// closingGame 包装 App，在窗口关闭请求时触发场景存档后退出
type closingGame struct {
	*app.App
}

// gracefulShutdown 表示用户关闭窗口后的正常退出
type gracefulShutdown struct{}

func (gracefulShutdown) Error() string { return "graceful shutdown" }

func (g *closingGame) Update() error {
	if ebiten.IsWindowBeingClosed() {
		if scene := g.GetSceneManager().GetCurrentScene(); scene != nil {
			if saveable, ok := scene.(game.Saveable); ok {
				saveable.SaveOnExit()
			}
		}
		return gracefulShutdown{}
	}
	return g.App.Update()
}

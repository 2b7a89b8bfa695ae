// verify_meteors 离线验证流星生成与退役的平衡性
//
// 以固定 60fps 无头运行引擎 10 秒，打印活跃流星数量曲线，
// 用于确认生成速率、月光抑制和退役逻辑不会让数量失控。
//
// 用法:
//
//	go run ./cmd/verify_meteors              # 英仙座峰值场景
//	go run ./cmd/verify_meteors -day 255     # 指定日索引
//	go run ./cmd/verify_meteors -moon 90     # 指定月亮照度
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/game"
)

const (
	simSeconds = 10
	fps        = 60
	width      = 1280
	height     = 720
)

func main() {
	day := flag.Int("day", 0, "day of year (1-365), 0 means synthetic peak scenario")
	moon := flag.Float64("moon", -1, "override moon illumination 0-100")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	cfg := sceneFor(*day)
	if *moon >= 0 {
		cfg.MoonIllumination = *moon
	}

	engine := game.NewEngineSeeded(cfg, config.DefaultRenderTuning(), *seed)
	engine.SetSize(width, height)

	fmt.Printf("场景: ZHR=%.0f 速度=%.0fkm/s 月亮=%.0f%% 辐射点=(%.2f, %.2f)\n",
		cfg.ZHR, cfg.VelocityKmPerSec, cfg.MoonIllumination, cfg.RadiantX, cfg.RadiantY)
	fmt.Println("秒\t活跃流星")

	dt := 1.0 / fps
	peak := 0
	for frame := 0; frame < simSeconds*fps; frame++ {
		engine.Step(dt)
		if n := engine.LiveMeteorCount(); n > peak {
			peak = n
		}
		if (frame+1)%fps == 0 {
			fmt.Printf("%d\t%d\n", (frame+1)/fps, engine.LiveMeteorCount())
		}
	}

	fmt.Printf("\n峰值活跃数: %d\n", peak)
	if peak == 0 && cfg.ZHR > 0 {
		log.Printf("警告: ZHR=%.0f 但没有生成任何流星", cfg.ZHR)
		os.Exit(1)
	}
}

// sceneFor 返回要模拟的场景：指定日期走目录，否则用一个合成的峰值场景
func sceneFor(day int) config.SceneConfig {
	if day <= 0 {
		cfg := config.DefaultSceneConfig()
		cfg.ZHR = 150
		cfg.VelocityKmPerSec = 59
		cfg.MoonIllumination = 10
		return cfg.Normalize()
	}

	data, err := os.ReadFile("assets/config/showers.yaml")
	if err != nil {
		log.Fatalf("读取流星雨目录失败: %v", err)
	}
	catalog, err := config.ParseShowerCatalog(data)
	if err != nil {
		log.Fatalf("解析流星雨目录失败: %v", err)
	}
	return catalog.ConfigForDay(day - 1)
}

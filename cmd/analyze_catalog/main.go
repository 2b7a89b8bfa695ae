// analyze_catalog 打印流星雨目录展开成的全年场景表
//
// 用于人工核对每一天的活跃流星雨、ZHR 衰减和月相计算结果。
//
// 用法:
//
//	go run ./cmd/analyze_catalog                  # 全年 365 天
//	go run ./cmd/analyze_catalog -month 8        # 只看八月
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/decker502/nightsky/pkg/config"
)

func main() {
	month := flag.Int("month", 0, "only print this month (1-12), 0 means the whole year")
	path := flag.String("catalog", "assets/config/showers.yaml", "shower catalog path")
	flag.Parse()

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("读取流星雨目录失败: %v", err)
	}
	catalog, err := config.ParseShowerCatalog(data)
	if err != nil {
		log.Fatalf("解析流星雨目录失败: %v", err)
	}

	year := catalog.BuildYear()
	fmt.Printf("目录: %s（%d 个流星雨）\n\n", *path, len(catalog.Showers))
	fmt.Println("日期\t\tZHR\t速度\t母体/类别\t\t月亮\t月相")

	for day, cfg := range year {
		m := config.MonthOfDay(day)
		if *month != 0 && m != *month {
			continue
		}
		fmt.Printf("%s %02d\t%.1f\t%.0f\t%s/%s\t%.0f%%\t%s\n",
			time.Month(m).String()[:3], dayOfMonth(day, m),
			cfg.ZHR, cfg.VelocityKmPerSec,
			cfg.ParentObjectType, cfg.VelocityCategory,
			cfg.MoonIllumination, cfg.MoonPhaseName)
	}
}

// dayOfMonth 把 0 基年内日序转换成月内日序（1 基）
func dayOfMonth(dayOfYear, month int) int {
	return dayOfYear - config.DayOfYear(month, 1) + 1
}

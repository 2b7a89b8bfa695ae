package config

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/decker502/nightsky/pkg/types"
)

// 流星雨目录
//
// assets/config/showers.yaml 列出年度主要流星雨的峰值日期、ZHR、
// 速度、母体与视觉元数据。BuildYear 把目录展开成 365 份每日
// SceneConfig：每天取活跃度最高的流星雨（高斯衰减），
// 无活跃流星雨的日子回落到 DefaultSceneConfig（ZHR=0，中上辐射点）。

// ShowerRecord 目录中的一条流星雨记录
type ShowerRecord struct {
	Name string `yaml:"name"` // 流星雨名称（如 Perseids）

	PeakMonth int `yaml:"peakMonth"` // 峰值月份 1-12
	PeakDay   int `yaml:"peakDay"`   // 峰值日（当月内）

	ZHR              float64 `yaml:"zhr"`              // 峰值天顶每时出现率
	VelocityKmPerSec float64 `yaml:"velocityKmPerSec"` // 入射速度 km/s
	ParentObjectType string  `yaml:"parentObjectType"` // comet / asteroid

	RadiantX float64 `yaml:"radiantX"` // 辐射点归一化 X
	RadiantY float64 `yaml:"radiantY"` // 辐射点归一化 Y

	ColorHue      float64  `yaml:"colorHue"`                // 基础色相（度）
	ColorVariance *float64 `yaml:"colorVariance,omitempty"` // 色相扩散（可省略）

	// DurationDays 活跃期总天数（高斯衰减的有效宽度）
	DurationDays float64 `yaml:"durationDays"`
}

// ShowerCatalog 流星雨目录
type ShowerCatalog struct {
	Showers []ShowerRecord `yaml:"showers"`
}

// ParseShowerCatalog 解析 YAML 目录并验证
func ParseShowerCatalog(data []byte) (*ShowerCatalog, error) {
	var catalog ShowerCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse shower catalog YAML: %w", err)
	}
	if err := validateCatalog(&catalog); err != nil {
		return nil, fmt.Errorf("invalid shower catalog: %w", err)
	}
	return &catalog, nil
}

// validateCatalog 验证目录的有效性
func validateCatalog(catalog *ShowerCatalog) error {
	if len(catalog.Showers) == 0 {
		return fmt.Errorf("showers cannot be empty")
	}
	for _, s := range catalog.Showers {
		if s.Name == "" {
			return fmt.Errorf("shower name cannot be empty")
		}
		if s.PeakMonth < 1 || s.PeakMonth > 12 {
			return fmt.Errorf("peakMonth must be between 1 and 12, got %d for %s", s.PeakMonth, s.Name)
		}
		if s.PeakDay < 1 || s.PeakDay > 31 {
			return fmt.Errorf("peakDay must be between 1 and 31, got %d for %s", s.PeakDay, s.Name)
		}
		if s.ZHR <= 0 {
			return fmt.Errorf("zhr must be positive, got %.1f for %s", s.ZHR, s.Name)
		}
		if s.DurationDays <= 0 {
			return fmt.Errorf("durationDays must be positive, got %.1f for %s", s.DurationDays, s.Name)
		}
	}
	return nil
}

// monthFirstDay 非闰年每月首日的日序号（0 基）
var monthFirstDay = [13]int{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// DayOfYear 返回 month/day （非闰年）的 0 基日序号
func DayOfYear(month, day int) int {
	if month < 1 {
		month = 1
	} else if month > 12 {
		month = 12
	}
	return monthFirstDay[month] + day - 1
}

// MonthOfDay 返回 0 基日序号所在的月份 1-12
func MonthOfDay(dayOfYear int) int {
	for m := 12; m >= 1; m-- {
		if dayOfYear >= monthFirstDay[m] {
			return m
		}
	}
	return 1
}

// peakDayOfYear 流星雨峰值的 0 基日序号
func (s ShowerRecord) peakDayOfYear() int {
	return DayOfYear(s.PeakMonth, s.PeakDay)
}

// activity 返回流星雨在指定日序号的活跃 ZHR（高斯衰减，跨年环绕）
func (s ShowerRecord) activity(dayOfYear int) float64 {
	dist := float64(dayOfYear - s.peakDayOfYear())
	// 年末/年初环绕（如象限仪座 1 月初的活跃期跨越 12 月末）
	if dist > 182.5 {
		dist -= 365
	} else if dist < -182.5 {
		dist += 365
	}
	// DurationDays 视为全宽：σ = 宽度/4，±2σ 覆盖活跃期
	sigma := s.DurationDays / 4
	if sigma < 0.5 {
		sigma = 0.5
	}
	return s.ZHR * math.Exp(-(dist*dist)/(2*sigma*sigma))
}

// visibleZHRFloor 低于该活跃度的日子视为无流星雨
const visibleZHRFloor = 1.0

// ConfigForDay builds the SceneConfig for a 0-based day of year.
func (c *ShowerCatalog) ConfigForDay(dayOfYear int) SceneConfig {
	best := -1
	bestZHR := 0.0
	for i := range c.Showers {
		if a := c.Showers[i].activity(dayOfYear); a > bestZHR {
			bestZHR = a
			best = i
		}
	}

	cfg := DefaultSceneConfig()
	cfg.PeakMonth = MonthOfDay(dayOfYear)

	if best >= 0 && bestZHR >= visibleZHRFloor {
		s := c.Showers[best]
		cfg.VelocityKmPerSec = s.VelocityKmPerSec
		cfg.ZHR = bestZHR
		cfg.RadiantX = s.RadiantX
		cfg.RadiantY = s.RadiantY
		cfg.ColorHue = s.ColorHue
		if s.ColorVariance != nil {
			cfg.ColorVariance = *s.ColorVariance
			cfg.ColorVarianceSet = true
		}
		cfg.ParentObjectType = types.ParseParentObjectType(s.ParentObjectType)
		cfg.VelocityCategory = types.CategorizeVelocity(s.VelocityKmPerSec)
		cfg.PeakMonth = s.PeakMonth
	}

	day := float64(dayOfYear)
	cfg.MoonIllumination = MoonIlluminationForDay(day)
	cfg.MoonPhaseName = MoonPhaseForDay(day)

	return cfg.Normalize()
}

// BuildYear 展开目录为 365 份每日配置（索引 0 = 1 月 1 日）
func (c *ShowerCatalog) BuildYear() []SceneConfig {
	year := make([]SceneConfig, 365)
	for day := range year {
		year[day] = c.ConfigForDay(day)
	}
	return year
}

package config

import (
	"math"

	"github.com/decker502/nightsky/pkg/types"
)

// 月相模型
//
// 刻意使用余弦近似而不是天文历书级的月球力学：
// illumination = (1 - cos(2π·phase)) / 2 · 100
// phase 由当日在相邻两次新月之间的位置决定。
// 对于视觉压暗/提亮来说误差完全不可感知。

// newMoonDays 参考年的新月日序号（含首尾哨兵，保证任意合法日期
// 两侧都有括号项，区间宽度恒为正 —— 插值处的除零由结构保证）。
var newMoonDays = []float64{
	-11.5, 18.3, 47.9, 77.5, 107.0, 136.4, 165.8,
	195.2, 224.6, 254.1, 283.6, 313.2, 342.8, 372.4,
}

// moonBracket returns the new-moon days surrounding dayOfYear.
// dayOfYear outside [0,365) is clamped into the reference year.
func moonBracket(dayOfYear float64) (prev, next float64) {
	if dayOfYear < 0 {
		dayOfYear = 0
	}
	if dayOfYear > 365 {
		dayOfYear = 365
	}
	prev, next = newMoonDays[0], newMoonDays[1]
	for i := 1; i < len(newMoonDays); i++ {
		if newMoonDays[i] > dayOfYear {
			return newMoonDays[i-1], newMoonDays[i]
		}
	}
	return newMoonDays[len(newMoonDays)-2], newMoonDays[len(newMoonDays)-1]
}

// moonCyclePhase 返回 dayOfYear 在朔望周期内的相位 [0,1)
func moonCyclePhase(dayOfYear float64) float64 {
	prev, next := moonBracket(dayOfYear)
	width := next - prev
	if width <= 1e-9 {
		// 退化区间防御：正常数据下不可达
		return 0
	}
	return (dayOfYear - prev) / width
}

// MoonIlluminationForDay returns the percent-illuminated value [0,100]
// for a (possibly fractional) day of year.
func MoonIlluminationForDay(dayOfYear float64) float64 {
	phase := moonCyclePhase(dayOfYear)
	return (1 - math.Cos(2*math.Pi*phase)) / 2 * 100
}

// MoonPhaseForDay returns the named phase for a day of year.
func MoonPhaseForDay(dayOfYear float64) types.MoonPhase {
	return types.PhaseFromFraction(moonCyclePhase(dayOfYear))
}

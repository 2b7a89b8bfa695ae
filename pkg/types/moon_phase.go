package types

// MoonPhase 定义月相的 8 个命名阶段
//
// 月相名称仅用于展示（HUD/场景文本），渲染数学直接使用照明百分比。
type MoonPhase int

const (
	// MoonNew 新月
	MoonNew MoonPhase = iota
	// MoonWaxingCrescent 娥眉月
	MoonWaxingCrescent
	// MoonFirstQuarter 上弦月
	MoonFirstQuarter
	// MoonWaxingGibbous 盈凸月
	MoonWaxingGibbous
	// MoonFull 满月
	MoonFull
	// MoonWaningGibbous 亏凸月
	MoonWaningGibbous
	// MoonLastQuarter 下弦月
	MoonLastQuarter
	// MoonWaningCrescent 残月
	MoonWaningCrescent
)

// String 返回月相的英文名称
func (m MoonPhase) String() string {
	switch m {
	case MoonNew:
		return "New Moon"
	case MoonWaxingCrescent:
		return "Waxing Crescent"
	case MoonFirstQuarter:
		return "First Quarter"
	case MoonWaxingGibbous:
		return "Waxing Gibbous"
	case MoonFull:
		return "Full Moon"
	case MoonWaningGibbous:
		return "Waning Gibbous"
	case MoonLastQuarter:
		return "Last Quarter"
	default:
		return "Waning Crescent"
	}
}

// PhaseFromFraction maps a synodic cycle fraction (0 = new moon, 0.5 = full)
// to one of the eight named phases.
func PhaseFromFraction(frac float64) MoonPhase {
	// wrap into [0,1)
	frac = frac - float64(int(frac))
	if frac < 0 {
		frac++
	}
	// Each named phase covers 1/8 of the cycle, centered on the four
	// principal phases (new, first quarter, full, last quarter).
	idx := int((frac+1.0/16.0)*8) % 8
	return MoonPhase(idx)
}

package types

// Season 定义由流星雨峰值月份推导出的季节
//
// 季节决定星云调色板和地平线辉光色调，与真实气候无关，
// 只是视觉分桶（spring=3-5, summer=6-8, fall=9-10, winter=11,12,1,2）。
type Season int

const (
	// SeasonWinter 冬季（11、12、1、2 月）蓝紫色星云
	SeasonWinter Season = iota
	// SeasonSpring 春季（3-5 月）青色星云
	SeasonSpring
	// SeasonSummer 夏季（6-8 月）琥珀/暖紫混合星云
	SeasonSummer
	// SeasonFall 秋季（9、10 月）品红紫色星云
	SeasonFall
)

// String 返回季节的字符串表示
func (s Season) String() string {
	switch s {
	case SeasonSpring:
		return "spring"
	case SeasonSummer:
		return "summer"
	case SeasonFall:
		return "fall"
	default:
		return "winter"
	}
}

// SeasonForMonth 根据月份 (1-12) 返回对应季节
// 超出范围的月份按冬季处理（防御性降级，不拒绝）
func SeasonForMonth(month int) Season {
	switch {
	case month >= 3 && month <= 5:
		return SeasonSpring
	case month >= 6 && month <= 8:
		return SeasonSummer
	case month == 9 || month == 10:
		return SeasonFall
	default:
		return SeasonWinter
	}
}

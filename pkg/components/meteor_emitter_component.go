package components

// MeteorEmitterComponent 流星发射器的运行状态
//
// 引擎只有一个发射器实体。期望生成数按帧时间累积在 Accumulator 里，
// 每越过一个整数阈值发射一颗流星 —— 期望速率与帧率无关。
type MeteorEmitterComponent struct {
	// Accumulator 小数生成计数器
	Accumulator float64

	// TotalSpawned 累计发射数（verify 工具和测试用）
	TotalSpawned int

	// MaxActive 同屏流星上限（防御性封顶，0 表示默认值）
	MaxActive int
}

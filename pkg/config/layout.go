package config

// 窗口布局常量
//
// 逻辑分辨率固定，Ebitengine 的 Layout 机制负责缩放到实际窗口。
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 1280
	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 720
)

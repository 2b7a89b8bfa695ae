package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ViewerSettings 全局观测设置
// 注意：这些设置是全局的，不绑定到具体的年份进度
type ViewerSettings struct {
	// 交互设置
	ParallaxEnabled bool    `yaml:"parallaxEnabled"` // 鼠标视差开关
	AutoPlay        bool    `yaml:"autoPlay"`        // 自动推进年份时间轴
	AutoPlaySpeed   float64 `yaml:"autoPlaySpeed"`   // 自动推进速度（天/秒）0.1 ~ 30

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏

	// 上次浏览到的日索引（含小数部分），重启后恢复
	LastDayIndex float64 `yaml:"lastDayIndex"`
}

// DefaultViewerSettings 返回默认设置
func DefaultViewerSettings() *ViewerSettings {
	return &ViewerSettings{
		ParallaxEnabled: true,
		AutoPlay:        false,
		AutoPlaySpeed:   2.0,
		Fullscreen:      false,
		LastDayIndex:    0,
	}
}

// SettingsManager 设置管理器
// 负责观测设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建新的设置管理器实例
//
// gdataManager 可为 nil（降级模式，仅内存设置）。加载失败不影响创建，
// 会回退到默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultViewerSettings(),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultViewerSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultViewerSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultViewerSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded ViewerSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultViewerSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	loaded.AutoPlaySpeed = clampAutoPlaySpeed(loaded.AutoPlaySpeed)
	loaded.LastDayIndex = clampDayIndex(loaded.LastDayIndex)
	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// SetParallaxEnabled 设置鼠标视差开关
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetParallaxEnabled(enabled bool) {
	sm.settings.ParallaxEnabled = enabled
}

// SetAutoPlay 设置时间轴自动推进开关
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetAutoPlay(enabled bool) {
	sm.settings.AutoPlay = enabled
}

// SetAutoPlaySpeed 设置自动推进速度（天/秒），限制在 0.1 ~ 30
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetAutoPlaySpeed(daysPerSecond float64) {
	sm.settings.AutoPlaySpeed = clampAutoPlaySpeed(daysPerSecond)
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetLastDayIndex 记录当前浏览到的日索引
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetLastDayIndex(index float64) {
	sm.settings.LastDayIndex = clampDayIndex(index)
}

// clampAutoPlaySpeed 将推进速度限制在 0.1 ~ 30 天/秒
func clampAutoPlaySpeed(speed float64) float64 {
	if speed < 0.1 {
		return 0.1
	}
	if speed > 30.0 {
		return 30.0
	}
	return speed
}

// clampDayIndex 将日索引折回年内范围
func clampDayIndex(index float64) float64 {
	if index < 0 {
		return 0
	}
	if index >= DaysPerYear {
		return 0
	}
	return index
}

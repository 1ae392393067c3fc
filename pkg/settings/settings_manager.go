// Package settings 持久化用户偏好（变体选择、全屏、调试面板）
package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/imagetrail/pkg/utils"
)

// TrailSettings 用户偏好
// 与配置文件不同，这些值由用户在运行时修改并跨次启动保留
type TrailSettings struct {
	Variant    int  `yaml:"variant"`    // 上次选择的轨迹变体，0 表示使用配置文件的值
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
	ShowHUD    bool `yaml:"showHUD"`    // 是否显示调试面板

	// 上次退出时的窗口尺寸，0 表示使用配置文件的值
	WindowWidth  int `yaml:"windowWidth"`
	WindowHeight int `yaml:"windowHeight"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *TrailSettings {
	return &TrailSettings{
		Variant:    0,
		Fullscreen: false,
		ShowHUD:    false,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *TrailSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "trail"
)

// Open 打开应用的 gdata 存储
// 失败时返回 nil 管理器与错误，调用方可以继续以降级模式运行
func Open(appName string) (*gdata.Manager, error) {
	// Android 上 gdata 不会预先创建存储目录
	if dir, err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[Settings] Warning: %v", err)
	} else if dir != "" {
		log.Printf("[Settings] Storage dir: %s", dir)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open gdata storage %q: %w", appName, err)
	}
	return m, nil
}

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误
		log.Printf("[Settings] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或数据不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[Settings] Settings loaded (variant=%d, fullscreen=%v)", loaded.Variant, loaded.Fullscreen)
	return nil
}

// Save 保存设置到 gdata
// 降级模式下直接返回 nil
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

	log.Printf("[Settings] Settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *TrailSettings {
	return sm.settings
}

// Persistent 是否有可用的持久化存储
func (sm *SettingsManager) Persistent() bool {
	return sm.gdataManager != nil
}

// SetVariant 记录选择的变体；小于 1 的值视为"使用配置文件"
// 注意：仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetVariant(variant int) {
	if variant < 1 {
		variant = 0
	}
	sm.settings.Variant = variant
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// ToggleHUD 切换调试面板并返回新状态
func (sm *SettingsManager) ToggleHUD() bool {
	sm.settings.ShowHUD = !sm.settings.ShowHUD
	return sm.settings.ShowHUD
}

// SetWindowSize 记录窗口尺寸；非正值被忽略
func (sm *SettingsManager) SetWindowSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	sm.settings.WindowWidth = w
	sm.settings.WindowHeight = h
}

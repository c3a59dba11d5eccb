package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// FeatureFlags 玩法与渲染开关
type FeatureFlags struct {
	BallsCastShadows bool `yaml:"ballsCastShadows"` // 球体是否附带阴影光源
	AutoLaunch       bool `yaml:"autoLaunch"`       // 自动发射模式：球不再等待玩家发射
	DebugPhysics     bool `yaml:"debugPhysics"`     // 是否绘制物理碰撞体描边
}

// DefaultFeatureFlags 返回默认开关
func DefaultFeatureFlags() FeatureFlags {
	return FeatureFlags{
		BallsCastShadows: true,
		AutoLaunch:       false,
		DebugPhysics:     false,
	}
}

// SettingsManager 设置管理器
// 负责开关的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	flags        FeatureFlags   // 当前开关
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "flags"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		flags:        DefaultFeatureFlags(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载开关
// 如果 gdataManager 为 nil 或数据不存在，使用默认开关
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.flags = DefaultFeatureFlags()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.flags = DefaultFeatureFlags()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.flags = DefaultFeatureFlags()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultFeatureFlags()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.flags = DefaultFeatureFlags()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.flags = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存开关到 gdata
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.flags)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// Flags 返回当前开关的副本
func (sm *SettingsManager) Flags() FeatureFlags {
	return sm.flags
}

// SetFlags 替换当前开关
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFlags(flags FeatureFlags) {
	sm.flags = flags
}

// ToggleDebugPhysics 切换物理描边开关并返回新值
func (sm *SettingsManager) ToggleDebugPhysics() bool {
	sm.flags.DebugPhysics = !sm.flags.DebugPhysics
	return sm.flags.DebugPhysics
}

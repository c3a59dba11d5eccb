// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，
// main.go 只负责解析命令行参数、初始化嵌入资源并启动 ebiten。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/gonewx/brickball/pkg/config"
	"github.com/gonewx/brickball/pkg/game"
	"github.com/gonewx/brickball/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储目录名
const AppName = "brickball"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Level 起始关卡（从 1 开始）
	Level int
	// Seed 随机种子
	Seed int64
	// AutoLaunch 覆盖已保存的自动发射开关
	AutoLaunch *bool
	// DebugPhysics 覆盖已保存的物理描边开关
	DebugPhysics *bool
	// ConfigPath 磁盘上的球体配置路径，为空时使用嵌入的默认配置
	ConfigPath string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	physicsConfig, err := loadPhysicsConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("球体配置加载失败: %w", err)
	}
	log.Printf("[Config] Ball physics loaded (lossDepth=%.1f, baseSpeed=%.1f)", physicsConfig.Ball.LossDepth, physicsConfig.Ball.BaseSpeed)

	// gdata 打开失败时进入降级模式，设置只保存在内存中
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
		gdataManager = nil
	}
	settings := game.NewSettingsManager(gdataManager)
	settings.SetFlags(applyOverrides(settings.Flags(), cfg))

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(level int) (game.Scene, error) {
		return scenes.NewGameScene(scenes.GameSceneOptions{
			Config:   physicsConfig,
			Settings: settings,
			Level:    level,
			Seed:     cfg.Seed,
		})
	})

	level := cfg.Level
	if level < 1 {
		level = game.DefaultLevel
	}
	first, err := scenes.NewGameScene(scenes.GameSceneOptions{
		Config:   physicsConfig,
		Settings: settings,
		Level:    level,
		Seed:     cfg.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}
	sceneManager.SwitchTo(first)
	log.Printf("[App] Starting level %d (flags=%+v)", level, settings.Flags())

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// loadPhysicsConfig 加载球体配置
// path 为空时读取嵌入的默认配置，否则从磁盘读取
func loadPhysicsConfig(path string) (*config.BallPhysicsConfig, error) {
	if path == "" {
		return config.LoadBallPhysicsConfig(config.BallPhysicsConfigPath)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return config.ParseBallPhysicsConfig(data)
}

// applyOverrides 用命令行参数覆盖已保存的开关
func applyOverrides(flags game.FeatureFlags, cfg Config) game.FeatureFlags {
	if cfg.AutoLaunch != nil {
		flags.AutoLaunch = *cfg.AutoLaunch
	}
	if cfg.DebugPhysics != nil {
		flags.DebugPhysics = *cfg.DebugPhysics
	}
	return flags
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(scenes.ScreenWidth, scenes.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// F3 切换物理描边
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		enabled := a.settings.ToggleDebugPhysics()
		log.Printf("[App] Physics debug render: %v", enabled)
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
	}

	// R 在游戏结束后重新开始
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if gs, ok := a.sceneManager.GetCurrentScene().(*scenes.GameScene); ok && gs.GameState().IsGameOver() {
			a.sceneManager.LoadLevel(game.DefaultLevel)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return scenes.ScreenWidth, scenes.ScreenHeight
}

// Close 保存设置并释放当前场景
// 在 ebiten.RunGame 返回后调用
func (a *App) Close() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings on exit: %v", err)
	}
	a.sceneManager.Dispose()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

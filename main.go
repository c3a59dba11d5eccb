package main

import (
	"flag"
	"log"

	"github.com/gonewx/brickball/pkg/app"
	"github.com/gonewx/brickball/pkg/embedded"
	"github.com/gonewx/brickball/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose      = flag.Bool("verbose", false, "显示详细调试信息")
	level        = flag.Int("level", 1, "起始关卡")
	seed         = flag.Int64("seed", 1, "随机种子")
	autoLaunch   = flag.Bool("auto-launch", false, "自动发射模式（覆盖已保存的设置）")
	debugPhysics = flag.Bool("debug-physics", false, "绘制物理碰撞体描边（覆盖已保存的设置）")
	configPath   = flag.String("config", "", "球体配置文件路径（默认使用嵌入的 data/ball_physics.yaml）")
)

func main() {
	flag.Parse()

	// 只覆盖命令行中显式给出的开关
	cfg := app.Config{
		Verbose:    *verbose,
		Level:      *level,
		Seed:       *seed,
		ConfigPath: *configPath,
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "auto-launch":
			cfg.AutoLaunch = autoLaunch
		case "debug-physics":
			cfg.DebugPhysics = debugPhysics
		}
	})

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(scenes.ScreenWidth, scenes.ScreenHeight)
	ebiten.SetWindowTitle("Brickball")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

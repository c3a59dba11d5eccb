package scenes

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/gonewx/brickball/pkg/assets"
	"github.com/gonewx/brickball/pkg/config"
	"github.com/gonewx/brickball/pkg/ecs"
	"github.com/gonewx/brickball/pkg/embedded"
	"github.com/gonewx/brickball/pkg/entities"
	"github.com/gonewx/brickball/pkg/game"
	"github.com/gonewx/brickball/pkg/physics"
	"github.com/gonewx/brickball/pkg/render"
	"github.com/gonewx/brickball/pkg/systems"
)

// GameSceneOptions 创建场景的参数
type GameSceneOptions struct {
	Config   *config.BallPhysicsConfig // nil 时使用默认配置
	Settings *game.SettingsManager     // 开关来源，nil 时使用默认开关
	Level    int                       // 起始关卡，<1 时为 1
	Lives    int                       // 初始生命，<=0 时为默认值
	Seed     int64                     // 随机种子
	Input    systems.PaddleInput       // nil 时使用键盘/鼠标/触摸
	Read     assets.ReadFunc           // 模型读取函数，nil 时使用 embedded.ReadFile
}

// NewGameScene 创建打砖块场景
//
// 球体模型在后台加载，加载完成前的生成请求会被丢弃，
// 关卡开场阶段结束后才会生成第一颗球。
//
// 返回:
//   - *GameScene: 场景实例
//   - error: 场地刚体创建失败时返回错误
func NewGameScene(opts GameSceneOptions) (*GameScene, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultBallPhysicsConfig()
	}
	flags := game.DefaultFeatureFlags()
	if opts.Settings != nil {
		flags = opts.Settings.Flags()
	}
	lives := opts.Lives
	if lives <= 0 {
		lives = game.DefaultLives
	}
	input := opts.Input
	if input == nil {
		input = systems.DevicePaddleInput{ScreenWidth: ScreenWidth}
	}
	read := opts.Read
	if read == nil {
		read = embedded.ReadFile
	}

	em := ecs.NewEntityManager()
	world := physics.NewWorld()
	state := game.NewGameState(lives, opts.Level, flags)
	rng := rand.New(rand.NewSource(opts.Seed))

	model := assets.NewLoader(read).LoadModelAsync(context.Background(), BallModelPath)

	s := &GameScene{
		entityManager: em,
		world:         world,
		gameState:     state,
		settings:      opts.Settings,
		cfg:           cfg,
		ballModel:     model,
		queue:         render.NewFrameQueue(),
	}

	// 物理系统和调试渲染最先创建，保证它们的销毁监听器覆盖所有实体
	buffers := render.NewBuffers()
	s.physics = systems.NewPhysicsSystem(em, world)
	s.debugRender = systems.NewPhysicsDebugRenderSystem(em, &cfg.DebugRender, buffers)
	s.renderSystem = systems.NewRenderSystem(em, buffers)

	if err := s.buildArena(); err != nil {
		model.Cancel()
		return nil, err
	}

	factory := entities.NewBallFactory(em, world, state, &cfg.Ball, model)
	s.paddleControl = systems.NewPaddleControlSystem(em, input)
	s.ballLifecycle = systems.NewBallLifecycleSystem(em, state, &cfg.Ball, factory, rng)
	s.bricks = systems.NewBrickSystem(em, world, state, &cfg.Arena, rng)
	s.cleanup = systems.NewCleanupSystem(em)

	a := &cfg.Arena
	t := a.WallThickness
	s.renderer = render.NewEbitenRenderer(render.Camera{
		MinX:    a.MinX - t,
		MaxX:    a.MaxX + t,
		MinZ:    a.MinZ - t,
		MaxZ:    cfg.Ball.LossDepth,
		ScreenW: ScreenWidth,
		ScreenH: ScreenHeight,
	})

	log.Printf("[GameScene] Level %d ready (lives=%d, entities=%d, bodies=%d)",
		state.Level, state.Lives, em.EntityCount(), world.BodyCount())
	return s, nil
}

// buildArena 创建墙体、障碍物、挡板和砖块
func (s *GameScene) buildArena() error {
	arena := &s.cfg.Arena
	if _, err := entities.NewArena(s.entityManager, s.world, arena, s.cfg.Ball.LossDepth); err != nil {
		return fmt.Errorf("failed to build arena: %w", err)
	}
	if _, err := entities.NewPaddle(s.entityManager, s.world, arena); err != nil {
		return fmt.Errorf("failed to build paddle: %w", err)
	}
	if _, err := entities.NewBrickGrid(s.entityManager, s.world, arena); err != nil {
		return fmt.Errorf("failed to build bricks: %w", err)
	}
	return nil
}

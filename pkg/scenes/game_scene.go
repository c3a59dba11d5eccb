package scenes

import (
	"image/color"

	"github.com/gonewx/brickball/pkg/assets"
	"github.com/gonewx/brickball/pkg/config"
	"github.com/gonewx/brickball/pkg/ecs"
	"github.com/gonewx/brickball/pkg/game"
	"github.com/gonewx/brickball/pkg/physics"
	"github.com/gonewx/brickball/pkg/render"
	"github.com/gonewx/brickball/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// ScreenWidth/ScreenHeight 逻辑屏幕尺寸
	ScreenWidth  = 800
	ScreenHeight = 600

	// BallModelPath 球体模型场景
	BallModelPath = "data/models/ball.yaml"
)

// 背景色
var backgroundColor = color.RGBA{R: 12, G: 14, B: 24, A: 255}

// GameScene 打砖块主场景
//
// 每帧更新顺序：
//  1. 游戏时钟与开场倒计时
//  2. 挡板输入
//  3. 物理步进（同步变换，分发接触）
//  4. 球生命周期
//  5. 砖块/关卡
//  6. 清理死亡实体
//
// 绘制时物理调试描边读取的是本帧物理步进后的刚体状态。
type GameScene struct {
	entityManager *ecs.EntityManager
	world         *physics.World
	gameState     *game.GameState
	settings      *game.SettingsManager
	cfg           *config.BallPhysicsConfig

	ballModel *assets.Handle

	paddleControl *systems.PaddleControlSystem
	physics       *systems.PhysicsSystem
	ballLifecycle *systems.BallLifecycleSystem
	bricks        *systems.BrickSystem
	cleanup       *systems.CleanupSystem
	renderSystem  *systems.RenderSystem
	debugRender   *systems.PhysicsDebugRenderSystem

	queue    *render.FrameQueue
	renderer *render.EbitenRenderer
}

// Update 执行一帧逻辑
func (s *GameScene) Update(deltaTime float64) {
	if s.settings != nil {
		s.gameState.Flags = s.settings.Flags()
	}
	s.gameState.Advance(deltaTime)

	s.paddleControl.Update(deltaTime)
	s.physics.Update(deltaTime)
	s.ballLifecycle.Update(deltaTime)
	s.bricks.Update(deltaTime)
	s.cleanup.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制场景
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	s.queue.Reset()
	s.renderSystem.Draw(s.queue)
	if s.gameState.Flags.DebugPhysics {
		s.debugRender.Draw(s.queue, s.gameState.Elapsed)
	}
	s.renderer.Draw(screen, s.queue)

	s.drawHUD(screen)
}

// Dispose 取消尚未完成的模型加载
func (s *GameScene) Dispose() {
	s.ballModel.Cancel()
}

// GameState 返回场景的游戏状态
func (s *GameScene) GameState() *game.GameState {
	return s.gameState
}

// EntityManager 返回场景的实体管理器
func (s *GameScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// BallModel 返回球体模型加载句柄
func (s *GameScene) BallModel() *assets.Handle {
	return s.ballModel
}

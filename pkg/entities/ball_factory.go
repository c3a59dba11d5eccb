package entities

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/brickball/pkg/assets"
	"github.com/gonewx/brickball/pkg/components"
	"github.com/gonewx/brickball/pkg/config"
	"github.com/gonewx/brickball/pkg/ecs"
	"github.com/gonewx/brickball/pkg/game"
	"github.com/gonewx/brickball/pkg/physics"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// BallSpinClip 球体默认播放的动画片段
const BallSpinClip = "spin"

// ballMaterial 球体刚体材质：无摩擦、完全弹性
// 保证速度只由生命周期系统的最低速率逻辑控制
var ballMaterial = physics.Material{
	Friction:    0,
	Restitution: 1,
	AirFriction: 0,
}

// BallFactory 创建球实体
type BallFactory struct {
	em    *ecs.EntityManager
	world *physics.World
	state *game.GameState
	cfg   *config.BallConfig
	model *assets.Handle
}

// NewBallFactory 创建球工厂
//
// 参数:
//   - em: 实体管理器
//   - world: 物理世界
//   - state: 游戏状态（读取关卡以计算球速）
//   - cfg: 球体配置
//   - model: 球体模型的异步加载句柄
func NewBallFactory(em *ecs.EntityManager, world *physics.World, state *game.GameState, cfg *config.BallConfig, model *assets.Handle) *BallFactory {
	return &BallFactory{
		em:    em,
		world: world,
		state: state,
		cfg:   cfg,
		model: model,
	}
}

// SpawnBall 创建球实体
//
// 参数:
//   - position: 世界坐标，刚体放置在 (X, Z)，高度取 position.Y
//   - direction: 初始方向（使用 X/Z 分量），nil 表示等待发射
//   - castShadow: 是否挂载阴影光源
//
// 返回:
//   - ecs.EntityID: 球实体 ID
//   - bool: 模型尚未加载完成时返回 false，本次生成被丢弃
func (f *BallFactory) SpawnBall(position mgl64.Vec3, direction *mgl64.Vec3, castShadow bool) (ecs.EntityID, bool) {
	scene, ok := f.model.Ready()
	if !ok {
		log.Printf("[BallFactory] Ball model not ready, spawn at %v dropped", position)
		return 0, false
	}

	id := f.em.CreateEntity()

	body, err := f.world.CreateBody(physics.BodyDef{
		Type:     physics.BodyDynamic,
		Shape:    physics.Circle(f.cfg.Radius),
		Position: mgl64.Vec2{position.X(), position.Z()},
		Material: ballMaterial,
		Owner:    id,
	})
	if err != nil {
		log.Printf("[BallFactory] Failed to create ball body: %v", err)
		f.em.DestroyEntity(id)
		return 0, false
	}

	scene.Instantiate(f.em, id, BallSpinClip, castShadow)

	glow := f.cfg.MinIntensity
	baseColor := colorful.Hsv(f.cfg.HueCenter, f.cfg.Saturation, 1)
	ball := &components.BallComponent{
		WaitingForLaunch: true,
		Speed:            f.cfg.SpeedForLevel(f.state.Level),
		GlowIntensity:    glow,
		Color:            baseColor,
	}
	f.em.AddComponent(id, ball)
	f.em.AddComponent(id, &components.TransformComponent{Position: position})
	f.em.AddComponent(id, &components.RigidBody2DComponent{Body: body})
	f.em.AddComponent(id, &components.PointLightComponent{
		Color:     baseColor,
		Intensity: glow,
		Range:     f.cfg.LightRange * glow,
	})
	f.em.AddComponent(id, &components.DamageComponent{Amount: f.cfg.Damage})
	if castShadow {
		f.em.AddComponent(id, &components.ShadowCastingLightComponent{
			Color:      baseColor,
			Intensity:  glow,
			Range:      f.cfg.LightRange * glow,
			ShadowBias: f.cfg.ShadowBias,
		})
	}

	if direction != nil {
		LaunchBall(ball, body, mgl64.Vec2{direction.X(), direction.Z()})
	}

	log.Printf("[BallFactory] Spawned ball %d at %v (speed=%.2f, waiting=%v)", id, position, ball.Speed, ball.WaitingForLaunch)
	return id, true
}

// LaunchBall 发射球
// 方向归一化后乘以 ball.Speed 写入刚体速度，并结束等待状态。
// 对已经在飞行的球调用只会重置速度。
//
// 返回:
//   - bool: 方向为零向量时不做任何修改并返回 false
func LaunchBall(ball *components.BallComponent, body *physics.Body, direction mgl64.Vec2) bool {
	if direction.Len() == 0 {
		return false
	}
	body.SetVelocity(direction.Normalize().Mul(ball.Speed))
	ball.WaitingForLaunch = false
	return true
}

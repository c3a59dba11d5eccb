package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/brickball/pkg/components"
	"github.com/gonewx/brickball/pkg/config"
	"github.com/gonewx/brickball/pkg/ecs"
	"github.com/gonewx/brickball/pkg/entities"
	"github.com/gonewx/brickball/pkg/game"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// BallTickReport 一次 Update 的统计结果
type BallTickReport struct {
	Alive        int  // 本帧逐球检查后仍在场上的球
	Waiting      int  // 等待发射的球（含本帧重生的球）
	LossOccurred bool // 本帧是否有球越过失球深度
	Respawned    bool // 本帧是否生成了重生球
	BonusSpawned int  // 本帧生成的奖励球数量
	AutoLaunched bool // 本帧是否因自动发射模式生成了球
}

// BallLifecycleSystem 管理球的完整生命周期
//
// 每帧执行：
//  1. 查找挡板
//  2. 逐球更新（跟随挡板/发射、最低速率、颜色与光照、飞行扰动、失球检测）
//  3. 处理奖励球请求
//  4. 场上无球时扣命并重生
//  5. 自动发射模式下补充飞行球
type BallLifecycleSystem struct {
	em      *ecs.EntityManager
	state   *game.GameState
	cfg     *config.BallConfig
	factory *entities.BallFactory
	rng     *rand.Rand

	// autoLaunchCooldown 距离下一次允许自动发射的剩余时间（秒）
	autoLaunchCooldown float64

	lastReport BallTickReport
}

// NewBallLifecycleSystem 创建球生命周期系统
//
// 参数:
//   - em: 实体管理器
//   - state: 游戏状态（生命、关卡、开关）
//   - cfg: 球体配置
//   - factory: 球工厂
//   - rng: 随机源，nil 时使用固定种子
func NewBallLifecycleSystem(em *ecs.EntityManager, state *game.GameState, cfg *config.BallConfig, factory *entities.BallFactory, rng *rand.Rand) *BallLifecycleSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &BallLifecycleSystem{
		em:      em,
		state:   state,
		cfg:     cfg,
		factory: factory,
		rng:     rng,
	}
}

// LastReport 返回最近一次 Update 的统计
func (s *BallLifecycleSystem) LastReport() BallTickReport {
	return s.lastReport
}

// Update 执行一帧球生命周期逻辑
//
// 参数:
//   - deltaTime: 帧间隔（秒）
func (s *BallLifecycleSystem) Update(deltaTime float64) {
	report := BallTickReport{}

	paddleID, paddleX, hasPaddle := s.findPaddle()
	var paddle *components.PaddleComponent
	if hasPaddle {
		paddle, _ = ecs.GetComponent[*components.PaddleComponent](s.em, paddleID)
	}

	balls := ecs.GetEntitiesWith3[
		*components.BallComponent,
		*components.RigidBody2DComponent,
		*components.TransformComponent,
	](s.em)

	for _, id := range balls {
		if ecs.HasComponent[*components.DeadComponent](s.em, id) {
			continue
		}
		ball, _ := ecs.GetComponent[*components.BallComponent](s.em, id)
		rb, _ := ecs.GetComponent[*components.RigidBody2DComponent](s.em, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](s.em, id)
		if rb.Body == nil {
			continue
		}

		if ball.WaitingForLaunch && hasPaddle {
			pos := mgl64.Vec2{paddleX, s.cfg.WaitingDepth}
			rb.Body.SetPosition(pos)
			tr.Position = mgl64.Vec3{pos.X(), tr.Position.Y(), pos.Y()}

			launched := false
			if paddle.LaunchRequested {
				launched = entities.LaunchBall(ball, rb.Body, s.launchDirection())
				if launched {
					log.Printf("[BallLifecycle] Ball %d launched at speed %.2f", id, ball.Speed)
				}
			}
			if !launched {
				report.Waiting++
			}
		}

		s.enforceSpeedFloor(ball, rb)
		s.animate(id, ball, rb)

		if !ball.WaitingForLaunch {
			perturb := s.cfg.PerturbAmplitude * math.Sin(s.state.Elapsed*s.cfg.PerturbFrequency)
			rb.Body.SetVelocity(rb.Body.Velocity().Add(mgl64.Vec2{perturb, 0}))
		}

		if depth := rb.Body.Position().Y(); depth > s.cfg.LossDepth {
			s.em.AddComponent(id, &components.DeadComponent{Reason: components.DeathLost})
			report.LossOccurred = true
			log.Printf("[BallLifecycle] Ball %d lost at depth %.2f", id, depth)
			continue
		}
		report.Alive++
	}

	report.BonusSpawned = s.processBonusRequests()

	if report.Alive == 0 {
		if report.LossOccurred {
			s.state.LoseLife()
		}
		if s.state.Lives > 0 && !s.state.LevelStarting && hasPaddle {
			pos := mgl64.Vec3{paddleX, s.cfg.Height, s.cfg.WaitingDepth}
			if _, ok := s.factory.SpawnBall(pos, nil, s.state.Flags.BallsCastShadows); ok {
				report.Respawned = true
				report.Waiting++
			}
		}
	}

	report.AutoLaunched = s.autoLaunch(deltaTime, report.Waiting, paddleX, hasPaddle)

	s.lastReport = report
}

// findPaddle 返回第一个激活的挡板（按实体 ID 升序）及其横向位置
func (s *BallLifecycleSystem) findPaddle() (ecs.EntityID, float64, bool) {
	paddles := ecs.GetEntitiesWith2[*components.PaddleComponent, *components.TransformComponent](s.em)
	for _, id := range paddles {
		paddle, _ := ecs.GetComponent[*components.PaddleComponent](s.em, id)
		if !paddle.Active {
			continue
		}
		tr, _ := ecs.GetComponent[*components.TransformComponent](s.em, id)
		return id, tr.Position.X(), true
	}
	return 0, 0, false
}

// launchDirection 随机生成前向发射方向（归一化前）
// 横向分量 ∈ [-LaunchLateralRange, LaunchLateralRange]，纵向分量固定为 -LaunchForward
func (s *BallLifecycleSystem) launchDirection() mgl64.Vec2 {
	lateral := (s.rng.Float64()*2 - 1) * s.cfg.LaunchLateralRange
	return mgl64.Vec2{lateral, -s.cfg.LaunchForward}
}

// enforceSpeedFloor 速率低于目标值时等比放大到目标值
// 零速度没有方向可保持，保持不变
func (s *BallLifecycleSystem) enforceSpeedFloor(ball *components.BallComponent, rb *components.RigidBody2DComponent) {
	vel := rb.Body.Velocity()
	speed := vel.Len()
	if speed <= 0 || speed >= ball.Speed {
		return
	}
	rb.Body.SetVelocity(vel.Mul(ball.Speed / speed))
}

// animate 根据当前速率和全局时间写入颜色、发光强度和光源参数
func (s *BallLifecycleSystem) animate(id ecs.EntityID, ball *components.BallComponent, rb *components.RigidBody2DComponent) {
	center := s.cfg.HueCenter
	if ball.Bonus {
		center = s.cfg.BonusHue
	}
	hue := math.Mod(center+s.cfg.HueSwing*math.Sin(s.state.Elapsed*s.cfg.HueRate), 360)
	if hue < 0 {
		hue += 360
	}
	intensity := rb.Body.Speed() / s.cfg.IntensityReferenceSpeed
	intensity = math.Max(s.cfg.MinIntensity, math.Min(s.cfg.MaxIntensity, intensity))

	ball.Color = colorful.Hsv(hue, s.cfg.Saturation, 1)
	ball.GlowIntensity = intensity

	if light, ok := ecs.GetComponent[*components.PointLightComponent](s.em, id); ok {
		light.Color = ball.Color
		light.Intensity = intensity
		light.Range = s.cfg.LightRange * intensity
	}
	if shadow, ok := ecs.GetComponent[*components.ShadowCastingLightComponent](s.em, id); ok {
		shadow.Color = ball.Color
		shadow.Intensity = intensity
		shadow.Range = s.cfg.LightRange * intensity
	}
}

// processBonusRequests 在每个奖励球请求的位置生成一颗随机方向的飞行球
// 模型未就绪时请求保留到下一帧
//
// 返回:
//   - int: 生成的奖励球数量
func (s *BallLifecycleSystem) processBonusRequests() int {
	requests := ecs.GetEntitiesWith2[*components.BonusBallRequestComponent, *components.TransformComponent](s.em)
	spawned := 0
	for _, id := range requests {
		if ecs.HasComponent[*components.DeadComponent](s.em, id) {
			continue
		}
		tr, _ := ecs.GetComponent[*components.TransformComponent](s.em, id)

		angle := s.rng.Float64() * 2 * math.Pi
		dir := mgl64.Vec3{math.Cos(angle), 0, math.Sin(angle)}
		pos := mgl64.Vec3{tr.Position.X(), s.cfg.Height, tr.Position.Z()}

		ballID, ok := s.factory.SpawnBall(pos, &dir, s.state.Flags.BallsCastShadows)
		if !ok {
			continue
		}
		s.em.AddComponent(id, &components.DeadComponent{Reason: components.DeathConsumed})

		if ball, ok := ecs.GetComponent[*components.BallComponent](s.em, ballID); ok {
			ball.Bonus = true
			ball.Color = colorful.Hsv(s.cfg.BonusHue, 1, 1)
			if light, ok := ecs.GetComponent[*components.PointLightComponent](s.em, ballID); ok {
				light.Color = ball.Color
			}
		}
		spawned++
		log.Printf("[BallLifecycle] Bonus ball %d spawned at %v", ballID, pos)
	}
	return spawned
}

// autoLaunch 自动发射模式：没有等待中的球时直接生成飞行球
// 两次生成之间至少间隔 AutoLaunchInterval 秒
func (s *BallLifecycleSystem) autoLaunch(deltaTime float64, waiting int, paddleX float64, hasPaddle bool) bool {
	if s.autoLaunchCooldown > 0 {
		s.autoLaunchCooldown -= deltaTime
	}
	if !s.state.Flags.AutoLaunch || waiting > 0 || !hasPaddle {
		return false
	}
	if s.autoLaunchCooldown > 0 || s.state.IsGameOver() {
		return false
	}

	d := s.launchDirection()
	dir := mgl64.Vec3{d.X(), 0, d.Y()}
	pos := mgl64.Vec3{paddleX, s.cfg.Height, s.cfg.WaitingDepth}
	if _, ok := s.factory.SpawnBall(pos, &dir, s.state.Flags.BallsCastShadows); !ok {
		return false
	}
	s.autoLaunchCooldown = s.cfg.AutoLaunchInterval
	return true
}

package systems

import (
	"log"
	"math/rand"

	"github.com/gonewx/brickball/pkg/components"
	"github.com/gonewx/brickball/pkg/config"
	"github.com/gonewx/brickball/pkg/ecs"
	"github.com/gonewx/brickball/pkg/entities"
	"github.com/gonewx/brickball/pkg/game"
	"github.com/gonewx/brickball/pkg/physics"
)

// BrickSystem 处理球与砖块的接触伤害，并在砖块清空后进入下一关
//
// 砖块被击碎时按 BonusChance 概率在原位置留下奖励球请求，
// 由 BallLifecycleSystem 在下一帧生成奖励球。
type BrickSystem struct {
	em    *ecs.EntityManager
	world *physics.World
	state *game.GameState
	arena *config.ArenaConfig
	rng   *rand.Rand

	destroyed int
}

// NewBrickSystem 创建砖块系统并注册物理接触监听器
func NewBrickSystem(em *ecs.EntityManager, world *physics.World, state *game.GameState, arena *config.ArenaConfig, rng *rand.Rand) *BrickSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	s := &BrickSystem{
		em:    em,
		world: world,
		state: state,
		arena: arena,
		rng:   rng,
	}
	world.OnContact(s.onContact)
	return s
}

// Destroyed 返回累计击碎的砖块数量
func (s *BrickSystem) Destroyed() int {
	return s.destroyed
}

// onContact 接触监听器，在物理步进结束后调用
func (s *BrickSystem) onContact(a, b *physics.Body) {
	s.hit(a.Owner(), b.Owner())
	s.hit(b.Owner(), a.Owner())
}

// hit 处理 attacker 对 target 的一次接触
func (s *BrickSystem) hit(attacker, target ecs.EntityID) {
	damage, ok := ecs.GetComponent[*components.DamageComponent](s.em, attacker)
	if !ok {
		return
	}
	brick, ok := ecs.GetComponent[*components.BrickComponent](s.em, target)
	if !ok || ecs.HasComponent[*components.DeadComponent](s.em, target) {
		return
	}

	brick.Health -= damage.Amount
	if brick.Health > 0 {
		return
	}

	s.em.AddComponent(target, &components.DeadComponent{Reason: components.DeathDestroyed})
	s.destroyed++
	log.Printf("[BrickSystem] Brick %d destroyed by entity %d", target, attacker)

	if s.rng.Float64() >= brick.BonusChance {
		return
	}
	if tr, ok := ecs.GetComponent[*components.TransformComponent](s.em, target); ok {
		req := entities.NewBonusBallRequest(s.em, tr.Position, s.state.Level)
		log.Printf("[BrickSystem] Bonus ball requested (entity %d)", req)
	}
}

// Update 检查关卡是否清空
// 所有砖块都被击碎时：场上的球以非失球原因移除（不扣命），进入下一关并重新排布砖块
//
// 返回:
//   - bool: 本帧是否进入了下一关
func (s *BrickSystem) Update(deltaTime float64) bool {
	bricks := ecs.GetEntitiesWith1[*components.BrickComponent](s.em)
	if len(bricks) == 0 {
		return false
	}
	for _, id := range bricks {
		if !ecs.HasComponent[*components.DeadComponent](s.em, id) {
			return false
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.BallComponent](s.em) {
		if !ecs.HasComponent[*components.DeadComponent](s.em, id) {
			s.em.AddComponent(id, &components.DeadComponent{Reason: components.DeathDestroyed})
		}
	}

	s.state.StartLevel(s.state.Level + 1)
	if _, err := entities.NewBrickGrid(s.em, s.world, s.arena); err != nil {
		log.Printf("[BrickSystem] Failed to rebuild brick grid: %v", err)
	}
	return true
}

package systems

import (
	"github.com/gonewx/brickball/pkg/components"
	"github.com/gonewx/brickball/pkg/ecs"
	"github.com/gonewx/brickball/pkg/physics"
)

// PhysicsSystem 推进物理世界并把刚体状态同步回 TransformComponent
type PhysicsSystem struct {
	em    *ecs.EntityManager
	world *physics.World
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器，用于查询和同步刚体实体
//   - world: 物理世界
//
// 返回:
//   - *PhysicsSystem: 物理系统实例
//
// 创建时在 em 上注册销毁监听器：实体被删除时其刚体同时从物理空间移除，
// 保证不存在没有实体的刚体。
func NewPhysicsSystem(em *ecs.EntityManager, world *physics.World) *PhysicsSystem {
	ps := &PhysicsSystem{
		em:    em,
		world: world,
	}
	em.OnDestroy(ps.removeBody)
	return ps
}

// Update 推进一步物理模拟
//
// 参数:
//   - deltaTime: 自上一帧以来经过的时间（秒）
func (ps *PhysicsSystem) Update(deltaTime float64) {
	ps.world.Step(deltaTime)

	// 平面 (x, y) 对应世界 (X, Z)，高度保持不变
	entities := ecs.GetEntitiesWith2[*components.RigidBody2DComponent, *components.TransformComponent](ps.em)
	for _, id := range entities {
		rb, _ := ecs.GetComponent[*components.RigidBody2DComponent](ps.em, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](ps.em, id)
		if rb.Body == nil {
			continue
		}
		pos := rb.Body.Position()
		tr.Position[0] = pos.X()
		tr.Position[2] = pos.Y()
		tr.Yaw = -rb.Body.Angle()
	}
}

// removeBody 实体销毁监听器
func (ps *PhysicsSystem) removeBody(id ecs.EntityID) {
	rb, ok := ecs.GetComponent[*components.RigidBody2DComponent](ps.em, id)
	if !ok {
		return
	}
	ps.world.RemoveBody(rb.Body)
}

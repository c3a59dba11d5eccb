package systems

import (
	"github.com/gonewx/brickball/pkg/components"
	"github.com/gonewx/brickball/pkg/ecs"
)

// CleanupSystem 把带有 DeadComponent 的实体交给实体管理器延迟删除
// 实际删除发生在场景帧末调用 RemoveMarkedEntities 时
type CleanupSystem struct {
	entityManager *ecs.EntityManager
}

// NewCleanupSystem 创建清理系统
func NewCleanupSystem(em *ecs.EntityManager) *CleanupSystem {
	return &CleanupSystem{
		entityManager: em,
	}
}

// Update 标记所有死亡实体待删除
//
// 返回:
//   - int: 本帧标记的实体数量
func (s *CleanupSystem) Update(deltaTime float64) int {
	dead := ecs.GetEntitiesWith1[*components.DeadComponent](s.entityManager)
	for _, id := range dead {
		s.entityManager.DestroyEntity(id)
	}
	return len(dead)
}

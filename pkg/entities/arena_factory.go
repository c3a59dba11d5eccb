package entities

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/brickball/pkg/components"
	"github.com/gonewx/brickball/pkg/config"
	"github.com/gonewx/brickball/pkg/ecs"
	"github.com/gonewx/brickball/pkg/physics"
)

// 墙体与障碍物同样完全弹性，避免吞掉球速
var wallMaterial = physics.Material{Friction: 0, Restitution: 1}

// NewPaddle 创建挡板实体（运动学矩形刚体）
func NewPaddle(em *ecs.EntityManager, world *physics.World, arena *config.ArenaConfig) (ecs.EntityID, error) {
	id := em.CreateEntity()
	body, err := world.CreateBody(physics.BodyDef{
		Type:     physics.BodyKinematic,
		Shape:    physics.Rectangle(arena.PaddleWidth, 0.5),
		Position: mgl64.Vec2{0, arena.PaddleDepth},
		Material: wallMaterial,
		Owner:    id,
	})
	if err != nil {
		em.DestroyEntity(id)
		return 0, fmt.Errorf("failed to create paddle body: %w", err)
	}

	half := arena.PaddleWidth / 2
	em.AddComponent(id, &components.PaddleComponent{
		Active:    true,
		Width:     arena.PaddleWidth,
		MoveSpeed: arena.PaddleSpeed,
		MinX:      arena.MinX + half,
		MaxX:      arena.MaxX - half,
	})
	em.AddComponent(id, &components.TransformComponent{Position: mgl64.Vec3{0, 0.5, arena.PaddleDepth}})
	em.AddComponent(id, &components.RigidBody2DComponent{Body: body})
	return id, nil
}

// NewArena 创建左右墙、后墙和多边形障碍物
// 前方（+Z）不设墙，球越过失球深度即判定丢失
//
// 返回:
//   - []ecs.EntityID: 创建的静态实体
//   - error: 任一刚体创建失败时返回错误
func NewArena(em *ecs.EntityManager, world *physics.World, arena *config.ArenaConfig, lossDepth float64) ([]ecs.EntityID, error) {
	t := arena.WallThickness
	depth := lossDepth - arena.MinZ
	midZ := arena.MinZ + depth/2
	width := arena.MaxX - arena.MinX

	type rect struct {
		center mgl64.Vec2
		w, h   float64
	}
	walls := []rect{
		{center: mgl64.Vec2{arena.MinX - t/2, midZ}, w: t, h: depth},
		{center: mgl64.Vec2{arena.MaxX + t/2, midZ}, w: t, h: depth},
		{center: mgl64.Vec2{(arena.MinX + arena.MaxX) / 2, arena.MinZ - t/2}, w: width + 2*t, h: t},
	}

	ids := make([]ecs.EntityID, 0, len(walls)+len(arena.Bumpers))
	for _, w := range walls {
		id, err := newStaticBody(em, world, physics.Rectangle(w.w, w.h), w.center)
		if err != nil {
			return ids, fmt.Errorf("failed to create wall: %w", err)
		}
		ids = append(ids, id)
	}

	for i, bumper := range arena.Bumpers {
		points := make([]mgl64.Vec2, len(bumper))
		for j, p := range bumper {
			points[j] = mgl64.Vec2{p[0], p[1]}
		}
		shape, center := physics.PolygonFromWorld(points)
		id, err := newStaticBody(em, world, shape, center)
		if err != nil {
			return ids, fmt.Errorf("failed to create bumper %d: %w", i, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// NewBrickGrid 按配置排布砖块
func NewBrickGrid(em *ecs.EntityManager, world *physics.World, arena *config.ArenaConfig) ([]ecs.EntityID, error) {
	ids := make([]ecs.EntityID, 0, arena.BrickRows*arena.BrickColumns)
	if arena.BrickColumns <= 0 {
		return ids, nil
	}

	span := arena.MaxX - arena.MinX
	cell := span / float64(arena.BrickColumns)
	for row := 0; row < arena.BrickRows; row++ {
		z := arena.BrickStartZ + float64(row)*arena.BrickDepth*1.5
		for col := 0; col < arena.BrickColumns; col++ {
			x := arena.MinX + cell*(float64(col)+0.5)
			id, err := newStaticBody(em, world, physics.Rectangle(arena.BrickWidth, arena.BrickDepth), mgl64.Vec2{x, z})
			if err != nil {
				return ids, fmt.Errorf("failed to create brick (%d,%d): %w", row, col, err)
			}
			em.AddComponent(id, &components.BrickComponent{
				Health:      arena.BrickHealth,
				BonusChance: arena.BrickBonusChance,
			})
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// NewBonusBallRequest 在指定位置创建奖励球请求占位实体
func NewBonusBallRequest(em *ecs.EntityManager, position mgl64.Vec3, level int) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.TransformComponent{Position: position})
	em.AddComponent(id, &components.BonusBallRequestComponent{Level: level})
	return id
}

// newStaticBody 创建带变换和刚体的静态实体
func newStaticBody(em *ecs.EntityManager, world *physics.World, shape physics.Shape, center mgl64.Vec2) (ecs.EntityID, error) {
	id := em.CreateEntity()
	body, err := world.CreateBody(physics.BodyDef{
		Type:     physics.BodyStatic,
		Shape:    shape,
		Position: center,
		Material: wallMaterial,
		Owner:    id,
	})
	if err != nil {
		em.DestroyEntity(id)
		return 0, err
	}
	em.AddComponent(id, &components.TransformComponent{Position: mgl64.Vec3{center.X(), 0, center.Y()}})
	em.AddComponent(id, &components.RigidBody2DComponent{Body: body})
	return id, nil
}

package components

import "github.com/gonewx/brickball/pkg/physics"

// RigidBody2DComponent 持有实体对应的物理刚体
// 刚体平面坐标 (X, Y) 对应 TransformComponent 的 (X, Z)
type RigidBody2DComponent struct {
	Body *physics.Body
}

package components

import "github.com/go-gl/mathgl/mgl64"

// TransformComponent 实体的世界变换
// 坐标约定：X 为横向，Y 为高度，Z 为纵深（负 Z 指向场地内部）
type TransformComponent struct {
	Position mgl64.Vec3
	Yaw      float64 // 绕竖直轴的旋转（弧度）
}

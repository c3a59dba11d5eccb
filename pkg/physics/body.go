package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/brickball/pkg/ecs"
	"github.com/jakecoffman/cp"
)

// BodyID 刚体唯一标识
// 调试网格缓存等外部结构以 BodyID 作为键，避免持有 *Body 指针
type BodyID uint64

// BodyType 刚体运动类型
type BodyType int

const (
	BodyDynamic BodyType = iota
	BodyKinematic
	BodyStatic
)

// Material 刚体材质参数
type Material struct {
	Friction    float64 // 摩擦系数
	Restitution float64 // 弹性系数，1 表示完全弹性
	AirFriction float64 // 空气阻力（每秒速度衰减比例）
}

// BodyDef 创建刚体所需的参数
type BodyDef struct {
	Type     BodyType
	Shape    Shape
	Position mgl64.Vec2
	Angle    float64
	Mass     float64 // 仅动态刚体使用，<=0 时按 1 处理
	Material Material
	Owner    ecs.EntityID // 所属实体，碰撞回调中用于反查
}

// Body 包装 cp.Body 及其唯一的碰撞形状
type Body struct {
	id       BodyID
	typ      BodyType
	shape    Shape
	material Material
	owner    ecs.EntityID

	body    *cp.Body
	cpShape *cp.Shape
}

// ID 返回刚体标识
func (b *Body) ID() BodyID { return b.id }

// Type 返回刚体运动类型
func (b *Body) Type() BodyType { return b.typ }

// Shape 返回形状描述
func (b *Body) Shape() Shape { return b.shape }

// Material 返回材质参数
func (b *Body) Material() Material { return b.material }

// Owner 返回所属实体
func (b *Body) Owner() ecs.EntityID { return b.owner }

// Position 返回平面位置
func (b *Body) Position() mgl64.Vec2 {
	p := b.body.Position()
	return mgl64.Vec2{p.X, p.Y}
}

// SetPosition 设置平面位置
func (b *Body) SetPosition(pos mgl64.Vec2) {
	b.body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Y()})
}

// Velocity 返回平面速度
func (b *Body) Velocity() mgl64.Vec2 {
	v := b.body.Velocity()
	return mgl64.Vec2{v.X, v.Y}
}

// SetVelocity 设置平面速度
func (b *Body) SetVelocity(vel mgl64.Vec2) {
	b.body.SetVelocity(vel.X(), vel.Y())
}

// Speed 返回平面速率
func (b *Body) Speed() float64 {
	return b.Velocity().Len()
}

// Angle 返回旋转角（弧度）
func (b *Body) Angle() float64 {
	return b.body.Angle()
}

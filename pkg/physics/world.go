package physics

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// 所有形状共用同一碰撞类型，接触事件统一由 World 分发
const collisionTypeBody cp.CollisionType = 1

// 碰撞迭代次数，与 sidescroller 类项目一致
const spaceIterations = 20

// ContactListener 在一次 Step 结束后针对每个新接触调用
type ContactListener func(a, b *Body)

// contactPair 记录 Step 期间开始接触的刚体对
type contactPair struct {
	a, b *Body
}

// World 物理世界
// 单线程使用，Step 与刚体的创建/删除必须在同一逻辑线程上进行
type World struct {
	space     *cp.Space
	bodies    map[BodyID]*Body
	nextID    BodyID
	listeners []ContactListener
	pending   []contactPair
}

// NewWorld 创建无重力的物理世界
func NewWorld() *World {
	w := &World{
		space:  cp.NewSpace(),
		bodies: make(map[BodyID]*Body),
		nextID: 1,
	}
	w.space.Iterations = spaceIterations
	w.space.SetGravity(cp.Vector{X: 0, Y: 0})

	handler := w.space.NewCollisionHandler(collisionTypeBody, collisionTypeBody)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		bodyA, okA := shapeA.UserData.(*Body)
		bodyB, okB := shapeB.UserData.(*Body)
		if okA && okB {
			world.pending = append(world.pending, contactPair{a: bodyA, b: bodyB})
		}
		return true
	}

	return w
}

// OnContact 注册接触监听器
func (w *World) OnContact(listener ContactListener) {
	if listener == nil {
		return
	}
	w.listeners = append(w.listeners, listener)
}

// CreateBody 按定义创建刚体并加入空间
//
// 参数:
//   - def: 刚体定义（形状、位置、材质、所属实体）
//
// 返回:
//   - *Body: 创建的刚体
//   - error: 形状参数非法时返回错误
func (w *World) CreateBody(def BodyDef) (*Body, error) {
	if err := def.Shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s body: %w", def.Shape.Kind, err)
	}

	mass := def.Mass
	if mass <= 0 {
		mass = 1
	}

	var body *cp.Body
	switch def.Type {
	case BodyStatic:
		body = cp.NewStaticBody()
	case BodyKinematic:
		body = cp.NewKinematicBody()
	default:
		body = cp.NewBody(mass, momentFor(def.Shape, mass))
	}
	body.SetPosition(cp.Vector{X: def.Position.X(), Y: def.Position.Y()})
	body.SetAngle(def.Angle)

	shape := newCPShape(body, def.Shape)
	shape.SetFriction(def.Material.Friction)
	shape.SetElasticity(def.Material.Restitution)
	shape.SetCollisionType(collisionTypeBody)

	w.space.AddBody(body)
	w.space.AddShape(shape)
	log.Printf("[Physics] created %s body for entity %d", def.Shape.Kind, def.Owner)

	b := &Body{
		id:       w.nextID,
		typ:      def.Type,
		shape:    def.Shape,
		material: def.Material,
		owner:    def.Owner,
		body:     body,
		cpShape:  shape,
	}
	shape.UserData = b
	w.bodies[b.id] = b
	w.nextID++

	return b, nil
}

// RemoveBody 从空间中移除刚体，重复移除是安全的
func (w *World) RemoveBody(b *Body) {
	if b == nil {
		return
	}
	if _, ok := w.bodies[b.id]; !ok {
		return
	}
	w.space.RemoveShape(b.cpShape)
	w.space.RemoveBody(b.body)
	delete(w.bodies, b.id)
}

// Body 按 ID 查找刚体
func (w *World) Body(id BodyID) (*Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

// BodyCount 返回空间中的刚体数量
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// Step 推进物理模拟
// 先按材质空气阻力衰减动态刚体速度，再执行求解，最后分发接触事件
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	for _, b := range w.bodies {
		if b.typ != BodyDynamic || b.material.AirFriction <= 0 {
			continue
		}
		damping := 1 - b.material.AirFriction*dt
		if damping < 0 {
			damping = 0
		}
		b.SetVelocity(b.Velocity().Mul(damping))
	}

	w.space.Step(dt)

	// 接触事件在求解结束后分发，监听器可以安全地增删实体
	pending := w.pending
	w.pending = nil
	for _, pair := range pending {
		for _, listener := range w.listeners {
			listener(pair.a, pair.b)
		}
	}
}

// momentFor 计算动态刚体的转动惯量
func momentFor(s Shape, mass float64) float64 {
	switch s.Kind {
	case ShapeCircle:
		return cp.MomentForCircle(mass, 0, s.Radius, cp.Vector{})
	case ShapeRectangle:
		return cp.MomentForBox(mass, s.Width, s.Height)
	case ShapePolygon:
		verts := toCPVertices(s.Vertices)
		return cp.MomentForPoly(mass, len(verts), verts, cp.Vector{}, 0)
	}
	return cp.MomentForCircle(mass, 0, 1, cp.Vector{})
}

// newCPShape 按形状种类创建 cp 形状
func newCPShape(body *cp.Body, s Shape) *cp.Shape {
	switch s.Kind {
	case ShapeRectangle:
		return cp.NewBox(body, s.Width, s.Height, 0)
	case ShapePolygon:
		verts := toCPVertices(s.Vertices)
		return cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), 0)
	default:
		return cp.NewCircle(body, s.Radius, cp.Vector{})
	}
}

// toCPVertices 转换顶点格式
func toCPVertices(vertices []mgl64.Vec2) []cp.Vector {
	out := make([]cp.Vector, len(vertices))
	for i, v := range vertices {
		out[i] = cp.Vector{X: v.X(), Y: v.Y()}
	}
	return out
}

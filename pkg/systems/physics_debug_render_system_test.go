package systems

import (
	"math"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/brickball/pkg/components"
	"github.com/gonewx/brickball/pkg/config"
	"github.com/gonewx/brickball/pkg/ecs"
	"github.com/gonewx/brickball/pkg/physics"
	"github.com/gonewx/brickball/pkg/render"
)

// addBody 创建只带刚体组件的实体
func addBody(t *testing.T, em *ecs.EntityManager, world *physics.World, def physics.BodyDef) (ecs.EntityID, *physics.Body) {
	t.Helper()
	id := em.CreateEntity()
	def.Owner = id
	body, err := world.CreateBody(def)
	if err != nil {
		t.Fatalf("CreateBody failed: %v", err)
	}
	em.AddComponent(id, &components.RigidBody2DComponent{Body: body})
	return id, body
}

type debugScene struct {
	em     *ecs.EntityManager
	world  *physics.World
	cfg    *config.BallPhysicsConfig
	system *PhysicsDebugRenderSystem

	circle, rect, poly ecs.EntityID
	polyBody           *physics.Body
}

func newDebugScene(t *testing.T) *debugScene {
	t.Helper()
	s := &debugScene{
		em:    ecs.NewEntityManager(),
		world: physics.NewWorld(),
		cfg:   config.DefaultBallPhysicsConfig(),
	}
	NewPhysicsSystem(s.em, s.world)
	s.system = NewPhysicsDebugRenderSystem(s.em, &s.cfg.DebugRender, render.NewBuffers())

	var circle *physics.Body
	s.circle, circle = addBody(t, s.em, s.world, physics.BodyDef{
		Shape:    physics.Circle(0.5),
		Position: mgl64.Vec2{1, 2},
	})
	circle.SetVelocity(mgl64.Vec2{s.cfg.DebugRender.ReferenceSpeed * 2, 0})

	s.rect, _ = addBody(t, s.em, s.world, physics.BodyDef{
		Type:     physics.BodyStatic,
		Shape:    physics.Rectangle(4, 2),
		Position: mgl64.Vec2{-3, 5},
		Angle:    math.Pi / 2,
	})

	shape, center := physics.PolygonFromWorld([]mgl64.Vec2{{0, 0}, {2, 0}, {1, 3}})
	s.poly, s.polyBody = addBody(t, s.em, s.world, physics.BodyDef{
		Type:     physics.BodyStatic,
		Shape:    shape,
		Position: center,
	})
	return s
}

func TestDebugRenderShapes(t *testing.T) {
	s := newDebugScene(t)
	q := render.NewFrameQueue()

	// elapsed = 周期/4 时脉冲取最大值
	elapsed := s.cfg.DebugRender.PulsePeriod / 4
	pulse := 1 + s.cfg.DebugRender.PulseAmplitude
	h := s.cfg.DebugRender.Height
	s.system.Draw(q, elapsed)

	inst := q.Instances()
	if len(inst) != 3 {
		t.Fatalf("expected 3 outline instances, got %d", len(inst))
	}
	slow, fast := s.cfg.DebugRender.Colors()

	circle := inst[0]
	if circle.Filled || circle.Mesh.Name != "debug_ring" {
		t.Errorf("circle should use the ring outline, got %q", circle.Mesh.Name)
	}
	if !circle.Color.AlmostEqualRgb(fast) {
		t.Errorf("circle above reference speed should be fast colour, got %v", circle.Color)
	}
	center := render.TransformPoint(circle.Transform, mgl64.Vec3{})
	if !center.ApproxEqualThreshold(mgl64.Vec3{1, h, 2}, 1e-9) {
		t.Errorf("circle centre = %v", center)
	}
	edge := render.TransformPoint(circle.Transform, mgl64.Vec3{1, 0, 0})
	if r := edge.Sub(center).Len(); math.Abs(r-0.5*pulse) > 1e-9 {
		t.Errorf("ring radius = %f, want %f", r, 0.5*pulse)
	}

	rect := inst[1]
	if rect.Mesh.Name != "debug_quad" || rect.Color != slow {
		t.Errorf("static rectangle should use quad mesh with slow colour, got %q %v", rect.Mesh.Name, rect.Color)
	}
	// 旋转 90° 后局部宽度方向指向世界 +Z
	corner := render.TransformPoint(rect.Transform, mgl64.Vec3{1, 0, 0})
	if want := (mgl64.Vec3{-3, h, 5 + 4*pulse}); !corner.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("rotated quad axis = %v, want %v", corner, want)
	}

	poly := inst[2]
	if poly.Mesh.Name != "debug_polyline" || !poly.Mesh.Closed {
		t.Error("polygon should use a closed polyline outline")
	}
	// 多边形不做脉冲缩放，顶点与世界坐标重合
	for i, want := range []mgl64.Vec3{{0, h, 0}, {2, h, 0}, {1, h, 3}} {
		got := render.TransformPoint(poly.Transform, poly.Mesh.Vertices[i])
		if !got.ApproxEqualThreshold(want, 1e-9) {
			t.Errorf("polyline vertex %d = %v, want %v", i, got, want)
		}
	}

	for _, in := range inst {
		m := in.Material
		if m == nil || !m.Unlit || m.CastShadows || m.Emissive <= 0 {
			t.Errorf("outline material %+v should be unlit, unshadowed and emissive", m)
		}
	}
}

func TestDebugRenderColourInterpolation(t *testing.T) {
	em := ecs.NewEntityManager()
	world := physics.NewWorld()
	cfg := config.DefaultBallPhysicsConfig()
	system := NewPhysicsDebugRenderSystem(em, &cfg.DebugRender, render.NewBuffers())

	addBody(t, em, world, physics.BodyDef{Shape: physics.Circle(1)})
	_, halfBody := addBody(t, em, world, physics.BodyDef{Shape: physics.Circle(1)})
	halfBody.SetVelocity(mgl64.Vec2{0, cfg.DebugRender.ReferenceSpeed / 2})

	q := render.NewFrameQueue()
	system.Draw(q, 0)

	slow, fast := cfg.DebugRender.Colors()
	inst := q.Instances()
	if inst[0].Color != slow {
		t.Errorf("resting body colour = %v, want %v", inst[0].Color, slow)
	}
	if want := slow.BlendRgb(fast, 0.5); inst[1].Color != want {
		t.Errorf("half speed colour = %v, want %v", inst[1].Color, want)
	}
	// 同种形状共享材质，材质颜色只保留最后一次写入
	if inst[0].Material != inst[1].Material {
		t.Error("circles should share one outline material")
	}
	if inst[0].Material.Color != inst[1].Color {
		t.Error("shared material colour should reflect the last drawn instance")
	}
}

func TestDebugRenderIdempotent(t *testing.T) {
	s := newDebugScene(t)

	q1 := render.NewFrameQueue()
	q2 := render.NewFrameQueue()
	s.system.Draw(q1, 0.37)
	s.system.Draw(q2, 0.37)

	if !reflect.DeepEqual(q1.Instances(), q2.Instances()) {
		t.Error("drawing twice with unchanged state and time should produce identical instances")
	}
	if s.system.OutlineBuilds() != 1 {
		t.Errorf("outline built %d times, want 1", s.system.OutlineBuilds())
	}
}

func TestDebugRenderOutlineCache(t *testing.T) {
	s := newDebugScene(t)
	q := render.NewFrameQueue()

	s.system.Draw(q, 0)
	first := q.Instances()[2].Mesh
	for i := 0; i < 5; i++ {
		q.Reset()
		s.system.Draw(q, float64(i))
	}
	if q.Instances()[2].Mesh != first {
		t.Error("polyline mesh should be reused across frames")
	}
	if s.system.OutlineBuilds() != 1 || s.system.CachedOutlines() != 1 {
		t.Fatalf("builds=%d cached=%d, want 1/1", s.system.OutlineBuilds(), s.system.CachedOutlines())
	}

	s.em.DestroyEntity(s.poly)
	s.em.RemoveMarkedEntities()

	if s.system.CachedOutlines() != 0 {
		t.Error("cache entry should be evicted when the body's entity is destroyed")
	}
	if _, ok := s.world.Body(s.polyBody.ID()); ok {
		t.Error("body should be removed from the world with its entity")
	}

	shape, center := physics.PolygonFromWorld([]mgl64.Vec2{{5, 5}, {6, 5}, {5, 6}})
	addBody(t, s.em, s.world, physics.BodyDef{Type: physics.BodyStatic, Shape: shape, Position: center})
	q.Reset()
	s.system.Draw(q, 0)
	if s.system.OutlineBuilds() != 2 {
		t.Errorf("a new polygon body should build its own outline, builds=%d", s.system.OutlineBuilds())
	}
}

func TestDebugRenderDoesNotMutate(t *testing.T) {
	s := newDebugScene(t)
	rb, _ := ecs.GetComponent[*components.RigidBody2DComponent](s.em, s.circle)
	pos, vel := rb.Body.Position(), rb.Body.Velocity()
	entities := s.em.EntityCount()

	s.system.Draw(render.NewFrameQueue(), 1)

	if rb.Body.Position() != pos || rb.Body.Velocity() != vel {
		t.Error("debug render must not change body state")
	}
	if s.em.EntityCount() != entities {
		t.Error("debug render must not create entities")
	}
}

package systems

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/brickball/pkg/components"
	"github.com/gonewx/brickball/pkg/config"
	"github.com/gonewx/brickball/pkg/ecs"
	"github.com/gonewx/brickball/pkg/physics"
	"github.com/gonewx/brickball/pkg/render"
)

// PhysicsDebugRenderSystem 绘制物理碰撞体描边
//
// 只读取刚体状态，不修改模拟，不创建实体。
// 每个实例的颜色随速率在两种颜色之间插值，圆和矩形带有随时间的脉冲缩放。
//
// 多边形描边网格按 BodyID 缓存，实体销毁时通过 EntityManager 的销毁监听器移除；
// 缓存不持有 *physics.Body 指针。
type PhysicsDebugRenderSystem struct {
	em  *ecs.EntityManager
	cfg *config.DebugRenderConfig

	buffers *render.Buffers
	ring    *render.Mesh
	quad    *render.Mesh

	// 三种形状各自共享一个材质，颜色按实例覆盖
	ringMaterial     *render.Material
	quadMaterial     *render.Material
	polylineMaterial *render.Material

	outlines map[physics.BodyID]*render.Mesh
	owners   map[ecs.EntityID]physics.BodyID
	builds   int
}

// NewPhysicsDebugRenderSystem 创建物理调试渲染系统
//
// 参数:
//   - em: 实体管理器（同时注册销毁监听器以清理描边缓存）
//   - cfg: 调试描边配置
//   - buffers: 静态网格分配器
func NewPhysicsDebugRenderSystem(em *ecs.EntityManager, cfg *config.DebugRenderConfig, buffers *render.Buffers) *PhysicsDebugRenderSystem {
	s := &PhysicsDebugRenderSystem{
		em:               em,
		cfg:              cfg,
		buffers:          buffers,
		ring:             buffers.AllocateStatic("debug_ring", render.RingVertices(cfg.RingSegments), true),
		quad:             buffers.AllocateStatic("debug_quad", render.QuadVertices(), true),
		ringMaterial:     render.NewOutlineMaterial("debug_ring", cfg.LineWidth),
		quadMaterial:     render.NewOutlineMaterial("debug_quad", cfg.LineWidth),
		polylineMaterial: render.NewOutlineMaterial("debug_polyline", cfg.LineWidth),
		outlines:         make(map[physics.BodyID]*render.Mesh),
		owners:           make(map[ecs.EntityID]physics.BodyID),
	}
	em.OnDestroy(s.evict)
	return s
}

// Draw 为每个刚体提交一个描边实例
//
// 参数:
//   - queue: 当前帧绘制队列
//   - elapsed: 全局时钟（秒），驱动脉冲缩放
func (s *PhysicsDebugRenderSystem) Draw(queue *render.FrameQueue, elapsed float64) {
	slow, fast := s.cfg.Colors()
	pulse := 1 + s.cfg.PulseAmplitude*math.Sin(2*math.Pi*elapsed/s.cfg.PulsePeriod)

	for _, id := range ecs.GetEntitiesWith1[*components.RigidBody2DComponent](s.em) {
		rb, _ := ecs.GetComponent[*components.RigidBody2DComponent](s.em, id)
		if rb.Body == nil {
			continue
		}
		body := rb.Body

		pos := body.Position()
		base := mgl64.Translate3D(pos.X(), s.cfg.Height, pos.Y()).Mul4(mgl64.HomogRotate3DY(-body.Angle()))
		t := math.Min(body.Speed()/s.cfg.ReferenceSpeed, 1)
		clr := slow.BlendRgb(fast, t)

		shape := body.Shape()
		switch shape.Kind {
		case physics.ShapeCircle:
			r := shape.Radius * pulse
			s.ringMaterial.Color = clr
			queue.Submit(s.ring, s.ringMaterial, base.Mul4(mgl64.Scale3D(r, 1, r)))
		case physics.ShapeRectangle:
			s.quadMaterial.Color = clr
			queue.Submit(s.quad, s.quadMaterial, base.Mul4(mgl64.Scale3D(shape.Width*pulse, 1, shape.Height*pulse)))
		case physics.ShapePolygon:
			s.polylineMaterial.Color = clr
			queue.Submit(s.outline(id, body), s.polylineMaterial, base)
		}
	}
}

// outline 返回多边形刚体的描边网格，首次遇到时构建
func (s *PhysicsDebugRenderSystem) outline(owner ecs.EntityID, body *physics.Body) *render.Mesh {
	if mesh, ok := s.outlines[body.ID()]; ok {
		return mesh
	}
	mesh := s.buffers.AllocateStatic("debug_polyline", render.PolylineVertices(body.Shape().Vertices), true)
	s.outlines[body.ID()] = mesh
	s.owners[owner] = body.ID()
	s.builds++
	log.Printf("[PhysicsDebug] Built outline for body %d (%d vertices)", body.ID(), len(mesh.Vertices))
	return mesh
}

// evict 实体销毁时移除其刚体的描边缓存
func (s *PhysicsDebugRenderSystem) evict(id ecs.EntityID) {
	bodyID, ok := s.owners[id]
	if !ok {
		return
	}
	delete(s.outlines, bodyID)
	delete(s.owners, id)
}

// CachedOutlines 返回缓存中的多边形描边数量
func (s *PhysicsDebugRenderSystem) CachedOutlines() int {
	return len(s.outlines)
}

// OutlineBuilds 返回累计构建描边网格的次数
func (s *PhysicsDebugRenderSystem) OutlineBuilds() int {
	return s.builds
}

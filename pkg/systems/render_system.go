package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/brickball/pkg/components"
	"github.com/gonewx/brickball/pkg/ecs"
	"github.com/gonewx/brickball/pkg/physics"
	"github.com/gonewx/brickball/pkg/render"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// 实体填充颜色
var (
	paddleColor    = colorful.Color{R: 0.85, G: 0.85, B: 0.9}
	brickFullColor = colorful.Color{R: 0.95, G: 0.55, B: 0.2}
	brickWeakColor = colorful.Color{R: 0.45, G: 0.25, B: 0.15}
)

// brickFullHealth 颜色插值的满耐久参考值
const brickFullHealth = 3

// RenderSystem 把球、挡板和砖块提交到帧队列
//
// 职责范围：
//   - 球：按 BallComponent.Color 填充圆，附带点光源光晕
//   - 挡板、砖块：按刚体矩形尺寸填充
//
// 墙体和障碍物只在物理调试描边中可见。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	disc          *render.Mesh
	quad          *render.Mesh
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, buffers *render.Buffers) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		disc:          buffers.AllocateStatic("ball_disc", render.RingVertices(24), true),
		quad:          buffers.AllocateStatic("solid_quad", render.QuadVertices(), true),
	}
}

// Draw 提交本帧的填充实例和光晕
func (s *RenderSystem) Draw(queue *render.FrameQueue) {
	em := s.entityManager

	// 光晕先提交，绘制时位于实体下方
	for _, id := range ecs.GetEntitiesWith2[*components.PointLightComponent, *components.TransformComponent](em) {
		light, _ := ecs.GetComponent[*components.PointLightComponent](em, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		queue.SubmitGlow(render.Glow{
			Center:    tr.Position,
			Radius:    light.Range,
			Color:     light.Color,
			Intensity: light.Intensity,
		})
	}

	for _, id := range ecs.GetEntitiesWith3[*components.BallComponent, *components.TransformComponent, *components.RigidBody2DComponent](em) {
		ball, _ := ecs.GetComponent[*components.BallComponent](em, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		rb, _ := ecs.GetComponent[*components.RigidBody2DComponent](em, id)
		if rb.Body == nil {
			continue
		}
		r := rb.Body.Shape().Radius
		m := mgl64.Translate3D(tr.Position.X(), tr.Position.Y(), tr.Position.Z()).Mul4(mgl64.Scale3D(r, 1, r))
		queue.SubmitFilled(s.disc, m, ball.Color)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PaddleComponent, *components.RigidBody2DComponent](em) {
		rb, _ := ecs.GetComponent[*components.RigidBody2DComponent](em, id)
		s.submitRect(queue, rb.Body, paddleColor)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.BrickComponent, *components.RigidBody2DComponent](em) {
		if ecs.HasComponent[*components.DeadComponent](em, id) {
			continue
		}
		brick, _ := ecs.GetComponent[*components.BrickComponent](em, id)
		rb, _ := ecs.GetComponent[*components.RigidBody2DComponent](em, id)
		t := mgl64.Clamp(float64(brick.Health)/float64(brickFullHealth), 0, 1)
		s.submitRect(queue, rb.Body, brickWeakColor.BlendLab(brickFullColor, t))
	}
}

// submitRect 按刚体矩形尺寸提交填充四边形
func (s *RenderSystem) submitRect(queue *render.FrameQueue, body *physics.Body, clr colorful.Color) {
	if body == nil {
		return
	}
	shape := body.Shape()
	if shape.Kind != physics.ShapeRectangle {
		return
	}
	pos := body.Position()
	m := mgl64.Translate3D(pos.X(), 0, pos.Y()).
		Mul4(mgl64.HomogRotate3DY(-body.Angle())).
		Mul4(mgl64.Scale3D(shape.Width, 1, shape.Height))
	queue.SubmitFilled(s.quad, m, clr)
}

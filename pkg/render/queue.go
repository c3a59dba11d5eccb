package render

import (
	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// DrawInstance 单个绘制实例
type DrawInstance struct {
	Mesh      *Mesh
	Material  *Material
	Transform mgl64.Mat4
	Color     colorful.Color // 实例自身颜色（提交时的材质颜色副本）
	Filled    bool
}

// Glow 点光源光晕
type Glow struct {
	Center    mgl64.Vec3
	Radius    float64
	Color     colorful.Color
	Intensity float64
}

// FrameQueue 当前帧的绘制队列
type FrameQueue struct {
	instances []DrawInstance
	glows     []Glow
}

// NewFrameQueue 创建绘制队列
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// Submit 提交描边实例
func (q *FrameQueue) Submit(mesh *Mesh, material *Material, transform mgl64.Mat4) {
	q.instances = append(q.instances, DrawInstance{
		Mesh:      mesh,
		Material:  material,
		Transform: transform,
		Color:     material.Color,
	})
}

// SubmitFilled 提交填充实例
func (q *FrameQueue) SubmitFilled(mesh *Mesh, transform mgl64.Mat4, color colorful.Color) {
	q.instances = append(q.instances, DrawInstance{
		Mesh:      mesh,
		Transform: transform,
		Color:     color,
		Filled:    true,
	})
}

// SubmitGlow 提交光晕
func (q *FrameQueue) SubmitGlow(g Glow) {
	q.glows = append(q.glows, g)
}

// Instances 返回本帧已提交的实例
func (q *FrameQueue) Instances() []DrawInstance {
	return q.instances
}

// Glows 返回本帧已提交的光晕
func (q *FrameQueue) Glows() []Glow {
	return q.glows
}

// Reset 清空队列，保留底层容量
func (q *FrameQueue) Reset() {
	q.instances = q.instances[:0]
	q.glows = q.glows[:0]
}

// TransformPoint 用实例变换把局部顶点变换到世界坐标
func TransformPoint(m mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(v.Vec4(1)).Vec3()
}

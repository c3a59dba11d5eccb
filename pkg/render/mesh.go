// Package render 提供调试描边与简单实体绘制所需的最小渲染抽象
//
// 系统每帧向 FrameQueue 提交 (网格, 变换) 实例，EbitenRenderer 负责把队列
// 投影到屏幕。队列中的实例只在当前帧有效，不存在持久的场景图节点。
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MeshID 网格唯一标识
type MeshID uint64

// Mesh 折线网格（局部坐标）
type Mesh struct {
	ID       MeshID
	Name     string
	Vertices []mgl64.Vec3
	Closed   bool // 是否首尾相连
}

// Buffers 静态网格缓冲区分配器
type Buffers struct {
	nextID MeshID
	count  int
}

// NewBuffers 创建分配器
func NewBuffers() *Buffers {
	return &Buffers{nextID: 1}
}

// AllocateStatic 分配一个不再修改的网格
func (b *Buffers) AllocateStatic(name string, vertices []mgl64.Vec3, closed bool) *Mesh {
	m := &Mesh{
		ID:       b.nextID,
		Name:     name,
		Vertices: vertices,
		Closed:   closed,
	}
	b.nextID++
	b.count++
	return m
}

// Allocated 返回已分配的网格数量
func (b *Buffers) Allocated() int {
	return b.count
}

// RingVertices 生成 XZ 平面上的单位圆环顶点
func RingVertices(segments int) []mgl64.Vec3 {
	if segments < 3 {
		segments = 3
	}
	verts := make([]mgl64.Vec3, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		verts[i] = mgl64.Vec3{math.Cos(a), 0, math.Sin(a)}
	}
	return verts
}

// QuadVertices 生成 XZ 平面上以原点为中心的单位正方形顶点
func QuadVertices() []mgl64.Vec3 {
	return []mgl64.Vec3{
		{-0.5, 0, -0.5},
		{0.5, 0, -0.5},
		{0.5, 0, 0.5},
		{-0.5, 0, 0.5},
	}
}

// PolylineVertices 把平面顶点嵌入 XZ 平面
func PolylineVertices(points []mgl64.Vec2) []mgl64.Vec3 {
	verts := make([]mgl64.Vec3, len(points))
	for i, p := range points {
		verts[i] = mgl64.Vec3{p.X(), 0, p.Y()}
	}
	return verts
}

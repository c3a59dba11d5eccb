package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Camera 俯视投影：世界 XZ 平面映射到屏幕
type Camera struct {
	MinX, MaxX float64 // 可见的世界 X 范围
	MinZ, MaxZ float64 // 可见的世界 Z 范围
	ScreenW    int
	ScreenH    int
}

// scale 返回保持纵横比的世界→像素缩放，以及居中偏移
func (c Camera) scale() (s, offX, offY float64) {
	sx := float64(c.ScreenW) / (c.MaxX - c.MinX)
	sz := float64(c.ScreenH) / (c.MaxZ - c.MinZ)
	s = math.Min(sx, sz)
	offX = (float64(c.ScreenW) - (c.MaxX-c.MinX)*s) / 2
	offY = (float64(c.ScreenH) - (c.MaxZ-c.MinZ)*s) / 2
	return s, offX, offY
}

// Project 把世界坐标投影为屏幕坐标（忽略高度）
func (c Camera) Project(p mgl64.Vec3) (float32, float32) {
	s, offX, offY := c.scale()
	x := offX + (p.X()-c.MinX)*s
	y := offY + (p.Z()-c.MinZ)*s
	return float32(x), float32(y)
}

// PixelsPerUnit 返回一个世界单位对应的像素数
func (c Camera) PixelsPerUnit() float64 {
	s, _, _ := c.scale()
	return s
}

// EbitenRenderer 使用 ebiten vector 绘制帧队列
type EbitenRenderer struct {
	camera Camera
}

// NewEbitenRenderer 创建渲染器
func NewEbitenRenderer(camera Camera) *EbitenRenderer {
	return &EbitenRenderer{camera: camera}
}

// Camera 返回当前相机
func (r *EbitenRenderer) Camera() Camera {
	return r.camera
}

// Draw 绘制队列中的光晕、填充实例和描边实例
func (r *EbitenRenderer) Draw(screen *ebiten.Image, q *FrameQueue) {
	ppu := r.camera.PixelsPerUnit()

	// 光晕最先绘制，位于实体下方
	for _, g := range q.Glows() {
		cx, cy := r.camera.Project(g.Center)
		alpha := math.Min(g.Intensity*0.25, 0.6)
		vector.DrawFilledCircle(screen, cx, cy, float32(g.Radius*ppu), withAlpha(g.Color, alpha), true)
	}

	for _, inst := range q.Instances() {
		if inst.Mesh == nil || len(inst.Mesh.Vertices) < 2 {
			continue
		}
		if inst.Filled {
			r.drawFilled(screen, inst)
			continue
		}
		r.drawOutline(screen, inst)
	}
}

// drawOutline 逐段绘制折线
func (r *EbitenRenderer) drawOutline(screen *ebiten.Image, inst DrawInstance) {
	width := float32(1)
	if inst.Material != nil && inst.Material.LineWidth > 0 {
		width = float32(inst.Material.LineWidth)
	}
	clr := withAlpha(inst.Color, 1)

	verts := inst.Mesh.Vertices
	segments := len(verts) - 1
	if inst.Mesh.Closed {
		segments = len(verts)
	}
	for i := 0; i < segments; i++ {
		a := TransformPoint(inst.Transform, verts[i])
		b := TransformPoint(inst.Transform, verts[(i+1)%len(verts)])
		x0, y0 := r.camera.Project(a)
		x1, y1 := r.camera.Project(b)
		vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
	}
}

// drawFilled 以屏幕包围盒填充实例
// 圆环网格画成实心圆，其余画成轴对齐矩形
func (r *EbitenRenderer) drawFilled(screen *ebiten.Image, inst DrawInstance) {
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := float32(-math.MaxFloat32), float32(-math.MaxFloat32)
	for _, v := range inst.Mesh.Vertices {
		x, y := r.camera.Project(TransformPoint(inst.Transform, v))
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	clr := withAlpha(inst.Color, 1)

	if len(inst.Mesh.Vertices) > 4 {
		radius := (maxX - minX) / 2
		vector.DrawFilledCircle(screen, (minX+maxX)/2, (minY+maxY)/2, radius, clr, true)
		return
	}
	vector.DrawFilledRect(screen, minX, minY, maxX-minX, maxY-minY, clr, true)
}

// withAlpha 把 colorful 颜色转换为带透明度的 RGBA
func withAlpha(c colorful.Color, alpha float64) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	a := uint8(math.Round(alpha * 255))
	// vector 需要预乘 alpha
	return color.RGBA{
		R: uint8(uint16(r) * uint16(a) / 255),
		G: uint8(uint16(g) * uint16(a) / 255),
		B: uint8(uint16(b) * uint16(a) / 255),
		A: a,
	}
}

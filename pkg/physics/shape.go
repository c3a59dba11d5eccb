// Package physics 封装 Chipmunk2D（jakecoffman/cp）刚体世界
//
// 游戏逻辑只通过本包提供的 Body/World 访问物理引擎：
// 读写平面位置与速度、读取角度和形状描述、按形状种类创建刚体。
// 平面坐标 (X, Y) 对应世界坐标的 (X, Z)，高度轴不参与物理模拟。
package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeKind 碰撞体形状种类（封闭枚举）
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRectangle
	ShapePolygon
)

// String 返回形状种类名称，用于日志
func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeRectangle:
		return "rectangle"
	case ShapePolygon:
		return "polygon"
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// Shape 碰撞体形状描述
// 只有与 Kind 对应的参数有意义：
//   - ShapeCircle: Radius
//   - ShapeRectangle: Width, Height
//   - ShapePolygon: Vertices（相对刚体中心的局部坐标）
type Shape struct {
	Kind     ShapeKind
	Radius   float64
	Width    float64
	Height   float64
	Vertices []mgl64.Vec2
}

// Circle 创建圆形描述
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Rectangle 创建矩形描述
func Rectangle(width, height float64) Shape {
	return Shape{Kind: ShapeRectangle, Width: width, Height: height}
}

// PolygonFromWorld 由世界坐标顶点创建多边形描述
// 返回形状（顶点已转换为相对质心的局部坐标）以及质心位置，
// 质心即刚体应放置的位置。
func PolygonFromWorld(vertices []mgl64.Vec2) (Shape, mgl64.Vec2) {
	var center mgl64.Vec2
	if len(vertices) == 0 {
		return Shape{Kind: ShapePolygon}, center
	}
	for _, v := range vertices {
		center = center.Add(v)
	}
	center = center.Mul(1.0 / float64(len(vertices)))

	local := make([]mgl64.Vec2, len(vertices))
	for i, v := range vertices {
		local[i] = v.Sub(center)
	}
	return Shape{Kind: ShapePolygon, Vertices: local}, center
}

// Validate 检查形状参数
func (s Shape) Validate() error {
	switch s.Kind {
	case ShapeCircle:
		if s.Radius <= 0 {
			return fmt.Errorf("circle radius must be positive, got %.3f", s.Radius)
		}
	case ShapeRectangle:
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("rectangle size must be positive, got %.3fx%.3f", s.Width, s.Height)
		}
	case ShapePolygon:
		if len(s.Vertices) < 3 {
			return fmt.Errorf("polygon needs at least 3 vertices, got %d", len(s.Vertices))
		}
	default:
		return fmt.Errorf("unknown shape kind %v", s.Kind)
	}
	return nil
}

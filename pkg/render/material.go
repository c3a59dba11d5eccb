package render

import colorful "github.com/lucasb-eyer/go-colorful"

// Material 描边/填充材质
// 同一材质可被多个实例共享；Color 只反映最近一次写入
type Material struct {
	Name        string
	Color       colorful.Color
	Unlit       bool    // 不受光照影响
	CastShadows bool    // 是否投射阴影
	Emissive    float64 // 自发光强度
	LineWidth   float64 // 描边线宽（像素）
}

// NewOutlineMaterial 创建调试描边材质：无光照、无阴影、细自发光线
func NewOutlineMaterial(name string, lineWidth float64) *Material {
	return &Material{
		Name:        name,
		Unlit:       true,
		CastShadows: false,
		Emissive:    1,
		LineWidth:   lineWidth,
	}
}

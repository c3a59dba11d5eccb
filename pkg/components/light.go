package components

import colorful "github.com/lucasb-eyer/go-colorful"

// PointLightComponent 球体附带的点光源，颜色和强度每帧由 BallComponent 驱动
type PointLightComponent struct {
	Color     colorful.Color
	Intensity float64
	Range     float64 // 光照半径（世界单位）
}

// ShadowCastingLightComponent 可投射阴影的光源
// 仅在 FeatureFlags.BallsCastShadows 开启时挂载
type ShadowCastingLightComponent struct {
	Color      colorful.Color
	Intensity  float64
	Range      float64
	ShadowBias float64
}

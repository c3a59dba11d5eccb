package components

// ModelInstanceComponent 由已加载模型场景实例化出的独立副本
type ModelInstanceComponent struct {
	Scene     string             // 模型场景名
	Clip      string             // 当前播放的动画片段
	ClipTime  float64            // 片段内播放时间（秒）
	Materials []MaterialInstance // 材质副本，可按实体单独修改
}

// MaterialInstance 实例化后的材质参数
type MaterialInstance struct {
	Name       string
	CastShadow bool
	Blend      bool
}

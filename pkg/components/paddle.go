package components

// PaddleComponent 玩家挡板
type PaddleComponent struct {
	Active          bool    // 是否参与本帧逻辑
	LaunchRequested bool    // 本帧是否请求发射（由输入系统每帧写入）
	Width           float64 // 挡板宽度（世界单位）
	MoveSpeed       float64 // 横向移动速度（单位/秒）
	MinX, MaxX      float64 // 横向活动范围
}

package components

import colorful "github.com/lucasb-eyer/go-colorful"

// BallComponent 球的玩法状态
// 生命周期：WaitingForLaunch → Flying → Lost
//   - WaitingForLaunch: 球跟随挡板，等待发射信号
//   - Flying: 球自由飞行，Speed 作为最低速率被持续维持
//   - Lost: 球越过失球深度，被打上 DeadComponent 等待删除
type BallComponent struct {
	WaitingForLaunch bool           // 是否等待发射（与飞行状态互斥）
	Speed            float64        // 目标巡航速率（只作为下限，不作为上限）
	GlowIntensity    float64        // 当前发光强度
	Color            colorful.Color // 当前颜色
	Bonus            bool           // 是否为奖励球（灯光使用暖色）
}

// BonusBallRequestComponent 奖励球生成请求
// 只带 Transform 的占位实体，下一帧在其位置生成一颗奖励球，随后被删除
type BonusBallRequestComponent struct {
	Level int // 请求产生时的关卡，用于日志
}

package components

// DeathReason 实体被标记删除的原因
type DeathReason int

const (
	DeathLost      DeathReason = iota // 球越过失球深度
	DeathConsumed                     // 奖励球请求已处理
	DeathDestroyed                    // 砖块被击碎
)

// DeadComponent 延迟删除标记
// CleanupSystem 会在帧末删除带有此组件的实体
type DeadComponent struct {
	Reason DeathReason
}

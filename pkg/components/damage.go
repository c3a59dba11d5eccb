package components

// DamageComponent 接触伤害能力
type DamageComponent struct {
	Amount int
}

// BrickComponent 可被球击碎的砖块
type BrickComponent struct {
	Health      int     // 剩余耐久
	BonusChance float64 // 击碎时生成奖励球请求的概率 0.0 ~ 1.0
}

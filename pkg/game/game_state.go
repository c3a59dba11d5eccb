package game

import "log"

// 默认开局参数
const (
	DefaultLives         = 3
	DefaultLevel         = 1
	DefaultIntroDuration = 2.0 // 关卡开场时长（秒），期间不生成重生球
)

// GameState 存储跨系统共享的游戏状态
// 由场景创建并显式传入各个系统，不提供全局单例
type GameState struct {
	Lives         int     // 剩余生命
	Level         int     // 当前关卡（从 1 开始）
	LevelStarting bool    // 是否处于关卡开场阶段
	Elapsed       float64 // 全局时钟（秒），驱动颜色、脉冲等时间函数

	Flags FeatureFlags // 玩法/渲染开关

	introRemaining float64
}

// NewGameState 创建游戏状态，进入第 level 关开场阶段
func NewGameState(lives, level int, flags FeatureFlags) *GameState {
	if level < 1 {
		level = DefaultLevel
	}
	gs := &GameState{
		Lives: lives,
		Level: level,
		Flags: flags,
	}
	gs.StartLevel(level)
	return gs
}

// Advance 推进全局时钟和开场倒计时
func (gs *GameState) Advance(deltaTime float64) {
	gs.Elapsed += deltaTime
	if !gs.LevelStarting {
		return
	}
	gs.introRemaining -= deltaTime
	if gs.introRemaining <= 0 {
		gs.introRemaining = 0
		gs.LevelStarting = false
		log.Printf("[GameState] Level %d intro finished", gs.Level)
	}
}

// StartLevel 切换到指定关卡并进入开场阶段
func (gs *GameState) StartLevel(level int) {
	gs.Level = level
	gs.LevelStarting = true
	gs.introRemaining = DefaultIntroDuration
	log.Printf("[GameState] Level %d starting (lives=%d)", level, gs.Lives)
}

// LoseLife 扣除一条生命，返回剩余生命
func (gs *GameState) LoseLife() int {
	if gs.Lives > 0 {
		gs.Lives--
	}
	log.Printf("[GameState] Life lost, %d remaining", gs.Lives)
	return gs.Lives
}

// IsGameOver 生命耗尽时返回 true
func (gs *GameState) IsGameOver() bool {
	return gs.Lives <= 0
}

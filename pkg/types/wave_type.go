package types

import "fmt"

// WaveType 定义波次类型，同一时刻最多一种波次处于激活状态
type WaveType int

const (
	// WaveNone 无激活波次
	WaveNone WaveType = iota
	// WaveEnemies 敌人波次（树已种植时）
	WaveEnemies
	// WaveProjectiles 投射物波次（树移动时）
	WaveProjectiles
)

// String 返回波次类型名称
func (w WaveType) String() string {
	switch w {
	case WaveNone:
		return "none"
	case WaveEnemies:
		return "enemies"
	case WaveProjectiles:
		return "projectiles"
	default:
		return fmt.Sprintf("WaveType(%d)", int(w))
	}
}

// MatchOutcome 对局结果
type MatchOutcome int

const (
	// OutcomeRunning 对局进行中
	OutcomeRunning MatchOutcome = iota
	// OutcomeDefeat 树被摧毁（生命值低于 0）
	OutcomeDefeat
	// OutcomeVictory 到达最终种植点
	OutcomeVictory
)

// String 返回结果名称
func (o MatchOutcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeVictory:
		return "victory"
	default:
		return fmt.Sprintf("MatchOutcome(%d)", int(o))
	}
}

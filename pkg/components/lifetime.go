package components

// LifetimeComponent 管理实体的生命周期
// 用于自动清理存在时间超过上限的实体（如敌人残骸）
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)
	CurrentLifetime float64 // 当前已存在时间(秒)
	IsExpired       bool    // 是否已过期
}

// RemainsComponent 敌人残骸标记
// 敌人被剑击杀后留下，消散时长由 LifetimeComponent 控制
type RemainsComponent struct {
	// Fade 消散进度：1 为刚生成，0 为完全消散（表现层读取）
	Fade float64
}

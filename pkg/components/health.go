package components

// HealthComponent 存储玩家的生命值信息
// 树的生命值是浮点数并随时间衰减，单独存放在 TreeComponent 中
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}

package components

// CollisionComponent 定义实体的圆形碰撞边界
// 用于 ProximitySystem 检测剑/盾命中与触发区进入
type CollisionComponent struct {
	Radius float64 // 碰撞半径（场地单位）
}

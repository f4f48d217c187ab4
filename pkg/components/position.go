package components

import "github.com/gonewx/heartband/pkg/utils"

// PositionComponent 存储实体的世界坐标（场地单位）
type PositionComponent struct {
	utils.Vec2
}

// VelocityComponent 存储实体的速度（单位/秒）
// 仅由树使用：牵引力计算出速度后按 tick 积分
type VelocityComponent struct {
	utils.Vec2
}

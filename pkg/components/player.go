package components

import (
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/types"
	"github.com/gonewx/heartband/pkg/utils"
)

// PlayerComponent 玩家状态
type PlayerComponent struct {
	// Index 加入顺序（同时决定玩家颜色）
	Index int

	MoveDir utils.Vec2 // 归一化的移动方向
	LookDir utils.Vec2 // 归一化的朝向（盾牌方向）

	// Interacting 本 tick 是否按住交互键
	Interacting bool
	// Slate 玩家当前所在的踏板，0 表示不在踏板上
	Slate ecs.EntityID

	Equipment types.Equipment

	// RespawnTimer 复活倒计时（秒），存活时为 -1
	RespawnTimer float64
}

// IsDead 玩家是否处于等待复活状态
func (p *PlayerComponent) IsDead() bool {
	return p.RespawnTimer > 0
}

package components

import (
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/types"
)

// TreeComponent 树的生命周期状态
//
// 不变量：
//   - Health <= MaxHealth
//   - Health < 0 时 Terminal 为 true，之后状态不再变化
//   - GrowingStage 只增不减
type TreeComponent struct {
	State        types.TreeState
	Health       float64
	MaxHealth    float64
	GrowingStage int

	// EvolveTimer 种植阶段剩余时间（秒），非 Planted 状态下为 -1
	EvolveTimer float64

	DecaySpeed    float64 // 每秒衰减的生命值
	PullSpeed     float64 // 牵引合力到速度的系数
	MaxPlayerDist float64 // 玩家被树拴住的最大距离

	// PlantingPoint 树当前所在触发区的种植点，0 表示不在任何种植点上
	PlantingPoint ecs.EntityID

	// Terminal 对局已结束（失败或胜利），树不再更新
	Terminal bool
	// Victory 是否以胜利结束
	Victory bool
}

package components

import (
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/utils"
)

// PlantingPointComponent 种植点
type PlantingPointComponent struct {
	// Index 在路线中的序号
	Index        int
	Used         bool
	IsFinalPoint bool

	// Slates 踏板实体，数量等于当前玩家数
	Slates []ecs.EntityID

	// HealEffect 使用后是否播放治愈特效（起点不播放）
	HealEffect bool
	HealTimer  float64
	// HealRadius 当前治愈特效半径（表现层读取）
	HealRadius float64
}

// PlantingSlateComponent 种植点周围的踏板，每名玩家一个
type PlantingSlateComponent struct {
	Point  ecs.EntityID
	Offset utils.Vec2 // 相对种植点的偏移

	// InteractingPlayer 正在踏板上交互的玩家，0 表示无人
	InteractingPlayer ecs.EntityID
	Used              bool
	IsFinalPoint      bool
}

// IsActivated 踏板是否处于激活状态
func (s *PlantingSlateComponent) IsActivated() bool {
	return !s.Used && s.InteractingPlayer != ecs.InvalidEntity
}

package entities

import (
	"github.com/gonewx/heartband/pkg/components"
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/utils"
)

// NewPlantingPoint 创建种植点实体
// 踏板由 PlantingSystem.UpdateSlateCount 根据玩家数创建
func NewPlantingPoint(em *ecs.EntityManager, index int, pos utils.Vec2, final bool, triggerRadius float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{Vec2: pos})
	ecs.AddComponent(em, id, &components.CollisionComponent{Radius: triggerRadius})
	ecs.AddComponent(em, id, &components.PlantingPointComponent{
		Index:        index,
		IsFinalPoint: final,
	})
	return id
}

// NewPlantingSlate 创建踏板实体
// 位置为种植点位置加偏移；踏板继承种植点的 used 状态
func NewPlantingSlate(em *ecs.EntityManager, point ecs.EntityID, pointPos, offset utils.Vec2, interactRadius float64, used, final bool) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{Vec2: pointPos.Add(offset)})
	ecs.AddComponent(em, id, &components.CollisionComponent{Radius: interactRadius})
	ecs.AddComponent(em, id, &components.PlantingSlateComponent{
		Point:        point,
		Offset:       offset,
		Used:         used,
		IsFinalPoint: final,
	})
	return id
}

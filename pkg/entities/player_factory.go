package entities

import (
	"github.com/gonewx/heartband/pkg/components"
	"github.com/gonewx/heartband/pkg/config"
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/types"
	"github.com/gonewx/heartband/pkg/utils"
)

// NewPlayer 创建玩家实体
// 玩家出生在 pos（通常为树的位置），朝下，持有与树状态对应的装备
func NewPlayer(em *ecs.EntityManager, cfg *config.PlayersConfig, radius float64, index int, pos utils.Vec2, state types.TreeState) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{Vec2: pos})
	ecs.AddComponent(em, id, &components.CollisionComponent{Radius: radius})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: cfg.MaxHealth,
		MaxHealth:     cfg.MaxHealth,
	})
	ecs.AddComponent(em, id, &components.PlayerComponent{
		Index:        index,
		LookDir:      utils.Vec2{X: 0, Y: -1},
		Equipment:    types.EquipmentFor(state),
		RespawnTimer: -1,
	})
	return id
}

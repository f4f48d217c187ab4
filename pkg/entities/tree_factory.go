package entities

import (
	"fmt"

	"github.com/gonewx/heartband/pkg/components"
	"github.com/gonewx/heartband/pkg/config"
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/types"
	"github.com/gonewx/heartband/pkg/utils"
)

// NewTree 创建树实体
// 树以 Waiting 状态、满生命值、成长阶段 0 出现在起点上
//
// 参数:
//   - em: 实体管理器
//   - cfg: 树属性配置
//   - radius: 碰撞半径
//   - pos: 初始位置（起点坐标）
//
// 返回:
//   - ecs.EntityID: 树实体ID
//   - error: 参数非法时返回错误
func NewTree(em *ecs.EntityManager, cfg *config.TreeConfig, radius float64, pos utils.Vec2) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("tree config cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{Vec2: pos})
	ecs.AddComponent(em, id, &components.VelocityComponent{})
	ecs.AddComponent(em, id, &components.CollisionComponent{Radius: radius})
	ecs.AddComponent(em, id, &components.TreeComponent{
		State:         types.TreeWaiting,
		Health:        cfg.MaxHealth,
		MaxHealth:     cfg.MaxHealth,
		EvolveTimer:   -1,
		DecaySpeed:    cfg.DecaySpeed,
		PullSpeed:     cfg.PullSpeed,
		MaxPlayerDist: cfg.MaxPlayerDist,
	})

	return id, nil
}

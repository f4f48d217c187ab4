package entities

import (
	"fmt"

	"github.com/gonewx/heartband/pkg/components"
	"github.com/gonewx/heartband/pkg/config"
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/utils"
)

// SpawnRingPosition 在以 center 为圆心、radius 为半径的圆环上随机取一点
func SpawnRingPosition(rng utils.RandomSource, center utils.Vec2, radius float64) utils.Vec2 {
	return center.Add(utils.FromAngle(utils.RandAngle(rng)).Scale(radius))
}

// NewEnemy 创建敌人实体
//
// 参数:
//   - em: 实体管理器
//   - pos: 生成位置（由 SpawnRingPosition 计算）
//   - radius: 碰撞半径
//   - tier: 敌人层级（已消耗的敌人层级数）
//   - stats: 该层级的敌人属性
func NewEnemy(em *ecs.EntityManager, pos utils.Vec2, radius float64, tier int, stats config.EnemyStats) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{Vec2: pos})
	ecs.AddComponent(em, id, &components.CollisionComponent{Radius: radius})
	ecs.AddComponent(em, id, &components.EnemyComponent{
		Tier:  tier,
		Stats: stats,
	})
	return id
}

// NewProjectile 创建投射物实体
// 投射物生成时朝向 target（树的位置），激活前保持静止
//
// 返回:
//   - ecs.EntityID: 投射物实体ID
//   - error: 加速曲线名称未知时返回错误
func NewProjectile(em *ecs.EntityManager, pos, target utils.Vec2, radius float64, tier int, stats config.ProjectileStats) (ecs.EntityID, error) {
	curve, err := utils.EasingByName(stats.AccelerationCurve)
	if err != nil {
		return 0, fmt.Errorf("projectile tier %d: %w", tier, err)
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{Vec2: pos})
	ecs.AddComponent(em, id, &components.CollisionComponent{Radius: radius})
	ecs.AddComponent(em, id, &components.ProjectileComponent{
		Tier:    tier,
		Stats:   stats,
		Curve:   curve,
		Heading: target.Sub(pos).Normalize(),
	})
	return id, nil
}

// NewEnemyRemains 在敌人死亡位置创建残骸
// 残骸在 lifetime 秒后由 LifetimeSystem 清理
func NewEnemyRemains(em *ecs.EntityManager, pos utils.Vec2, lifetime float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{Vec2: pos})
	ecs.AddComponent(em, id, &components.RemainsComponent{Fade: 1})
	ecs.AddComponent(em, id, &components.LifetimeComponent{
		MaxLifetime: lifetime,
	})
	return id
}

package systems

import (
	"github.com/gonewx/heartband/pkg/components"
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/utils"
)

// EnemyBehaviorSystem 敌人行为
//
// 敌人朝树移动；进入攻击距离后停下，每隔 attackFrequency 秒对树造成一次伤害。
// 敌人只通过 Damager 对外产生影响，从不直接修改调度器的实体集合。
type EnemyBehaviorSystem struct {
	entityManager *ecs.EntityManager
	tree          ecs.EntityID
	target        Damager
}

// NewEnemyBehaviorSystem 创建敌人行为系统
func NewEnemyBehaviorSystem(em *ecs.EntityManager, tree ecs.EntityID, target Damager) *EnemyBehaviorSystem {
	return &EnemyBehaviorSystem{
		entityManager: em,
		tree:          tree,
		target:        target,
	}
}

// Update 更新所有敌人
func (s *EnemyBehaviorSystem) Update(dt float64) {
	treePos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.tree)
	if !ok {
		return
	}

	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.entityManager) {
		if s.entityManager.IsMarked(id) {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		toTree := treePos.Sub(pos.Vec2)
		if toTree.Len() > enemy.Stats.AttackDistance {
			pos.Vec2 = pos.Add(toTree.Normalize().Scale(enemy.Stats.MovementSpeed * dt))
			continue
		}

		enemy.AttackTimer += dt
		if enemy.AttackTimer >= enemy.Stats.AttackFrequency {
			enemy.AttackTimer = 0
			s.target.OnDamage(enemy.Stats.AttackDamage)
		}
	}
}

// ProjectileBehaviorSystem 投射物行为
//
// 投射物生成后静止 activationTime 秒，然后在 accelerationTime 秒内沿缓动曲线加速到 maxSpeed，
// 之后匀速飞向树。进入攻击距离时造成一次伤害并请求销毁。
type ProjectileBehaviorSystem struct {
	entityManager *ecs.EntityManager
	tree          ecs.EntityID
	target        Damager
	requester     DestroyRequester
}

// NewProjectileBehaviorSystem 创建投射物行为系统
func NewProjectileBehaviorSystem(em *ecs.EntityManager, tree ecs.EntityID, target Damager, requester DestroyRequester) *ProjectileBehaviorSystem {
	return &ProjectileBehaviorSystem{
		entityManager: em,
		tree:          tree,
		target:        target,
		requester:     requester,
	}
}

// Update 更新所有投射物
func (s *ProjectileBehaviorSystem) Update(dt float64) {
	treePos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.tree)
	if !ok {
		return
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](s.entityManager) {
		if s.entityManager.IsMarked(id) {
			continue
		}
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		proj.Speed = projectileSpeed(proj, dt)
		if proj.Speed <= 0 {
			continue
		}

		toTree := treePos.Sub(pos.Vec2)
		if toTree.Len() < proj.Stats.AttackDistance {
			s.target.OnDamage(proj.Stats.Damage)
			s.requester.RequestDestroy(id)
			proj.Speed = 0
			continue
		}
		proj.Heading = toTree.Normalize()
		pos.Vec2 = pos.Add(proj.Heading.Scale(proj.Speed * dt))
	}
}

// projectileSpeed 推进激活/加速计时并返回本 tick 的速度
func projectileSpeed(p *components.ProjectileComponent, dt float64) float64 {
	stats := p.Stats
	curve := p.Curve
	if curve == nil {
		curve = utils.EaseLinear
	}
	if p.ActivationTimer < stats.ActivationTime {
		p.ActivationTimer += dt
		return 0
	}
	if p.AccelerationTimer < stats.AccelerationTime {
		p.AccelerationTimer += dt
		return curve.Evaluate(p.AccelerationTimer/stats.AccelerationTime) * stats.MaxSpeed
	}
	return stats.MaxSpeed
}

package systems

import (
	"github.com/gonewx/heartband/pkg/components"
	"github.com/gonewx/heartband/pkg/config"
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/entities"
	"github.com/gonewx/heartband/pkg/types"
	"github.com/gonewx/heartband/pkg/utils"
)

// DestroyRequester 行为系统向调度器登记销毁请求的接口
type DestroyRequester interface {
	RequestDestroy(id ecs.EntityID)
}

// ProximitySystem 圆形距离检测，代替物理引擎的触发器回调
//
// 职责：
//   - 树进入/离开种植点触发区时更新树的当前种植点
//   - 玩家靠近踏板时记录所在踏板，离开时释放（树已种下时不释放）
//   - 剑命中敌人、盾牌挡住投射物、投射物命中玩家
//
// 命中只登记销毁请求，实际销毁由 WaveScheduler.FlushDestroyRequests 执行。
type ProximitySystem struct {
	entityManager *ecs.EntityManager
	tree          ecs.EntityID
	planting      *PlantingSystem
	players       *PlayerSystem
	requester     DestroyRequester
	playersCfg    *config.PlayersConfig
	arena         *config.ArenaConfig

	// 上一 tick 树是否在各种植点触发区内（用于检测进入/离开）
	treeInside map[ecs.EntityID]bool
}

// NewProximitySystem 创建距离检测系统
func NewProximitySystem(em *ecs.EntityManager, tree ecs.EntityID, planting *PlantingSystem, players *PlayerSystem,
	requester DestroyRequester, playersCfg *config.PlayersConfig, arena *config.ArenaConfig) *ProximitySystem {
	return &ProximitySystem{
		entityManager: em,
		tree:          tree,
		planting:      planting,
		players:       players,
		requester:     requester,
		playersCfg:    playersCfg,
		arena:         arena,
		treeInside:    make(map[ecs.EntityID]bool),
	}
}

func (s *ProximitySystem) position(id ecs.EntityID) (utils.Vec2, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return utils.Vec2{}, false
	}
	return pos.Vec2, true
}

func (s *ProximitySystem) radius(id ecs.EntityID) float64 {
	if c, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id); ok {
		return c.Radius
	}
	return 0
}

// UpdateTriggers 检测树与种植点、玩家与踏板的进入/离开
func (s *ProximitySystem) UpdateTriggers() {
	tree, ok := ecs.GetComponent[*components.TreeComponent](s.entityManager, s.tree)
	if !ok || tree.Terminal {
		return
	}
	treePos, _ := s.position(s.tree)

	for _, point := range s.planting.Points() {
		pointPos, ok := s.position(point)
		if !ok {
			continue
		}
		inside := treePos.Dist(pointPos) <= s.radius(point)
		was := s.treeInside[point]
		switch {
		case inside && !was:
			tree.PlantingPoint = point
		case !inside && was && tree.PlantingPoint == point:
			tree.PlantingPoint = ecs.InvalidEntity
		}
		s.treeInside[point] = inside
	}

	s.updatePlayerSlates(tree.State)
}

func (s *ProximitySystem) updatePlayerSlates(state types.TreeState) {
	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](s.entityManager) {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		if player.IsDead() {
			player.Slate = ecs.InvalidEntity
			continue
		}
		pos, _ := s.position(id)

		nearest := ecs.InvalidEntity
		best := 0.0
		for _, point := range s.planting.Points() {
			for _, slate := range s.planting.Slates(point) {
				slatePos, ok := s.position(slate)
				if !ok {
					continue
				}
				d := pos.Dist(slatePos)
				if d <= s.radius(slate) && (nearest == ecs.InvalidEntity || d < best) {
					nearest = slate
					best = d
				}
			}
		}

		if player.Slate != nearest && player.Slate != ecs.InvalidEntity && state != types.TreePlanted {
			if sl, ok := ecs.GetComponent[*components.PlantingSlateComponent](s.entityManager, player.Slate); ok && sl.InteractingPlayer == id {
				s.planting.DeactivateSlate(player.Slate)
			}
		}
		player.Slate = nearest
	}
}

// DetectHits 检测剑、盾和投射物的命中
func (s *ProximitySystem) DetectHits() {
	hit := make(map[ecs.EntityID]bool)
	players := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](s.entityManager)
	enemies := s.liveAgents(ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.entityManager))
	projectiles := s.liveAgents(ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](s.entityManager))

	// 剑：接触即击杀敌人并留下残骸
	for _, id := range players {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		if player.IsDead() || player.Equipment != types.EquipmentSword {
			continue
		}
		pos, _ := s.position(id)
		for _, enemy := range enemies {
			if hit[enemy] {
				continue
			}
			enemyPos, _ := s.position(enemy)
			if pos.Dist(enemyPos) <= s.playersCfg.SwordRadius+s.radius(enemy) {
				hit[enemy] = true
				s.requester.RequestDestroy(enemy)
				entities.NewEnemyRemains(s.entityManager, enemyPos, s.arena.RemainsLifetime)
			}
		}
	}

	// 盾：挡住投射物
	for _, id := range players {
		shieldPos, ok := s.players.ShieldPosition(id)
		if !ok {
			continue
		}
		for _, proj := range projectiles {
			if hit[proj] {
				continue
			}
			projPos, _ := s.position(proj)
			if shieldPos.Dist(projPos) <= s.playersCfg.ShieldRadius+s.radius(proj) {
				hit[proj] = true
				s.requester.RequestDestroy(proj)
			}
		}
	}

	// 没被挡住的运动中投射物命中玩家
	for _, id := range players {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		if player.IsDead() {
			continue
		}
		pos, _ := s.position(id)
		for _, proj := range projectiles {
			if hit[proj] {
				continue
			}
			p, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, proj)
			if p.Speed <= 0 {
				continue
			}
			projPos, _ := s.position(proj)
			if pos.Dist(projPos) <= s.radius(id)+s.radius(proj) {
				hit[proj] = true
				s.requester.RequestDestroy(proj)
				s.players.OnDamage(id, 1)
			}
		}
	}
}

// liveAgents 过滤掉本 tick 已被标记销毁的实体
func (s *ProximitySystem) liveAgents(ids []ecs.EntityID) []ecs.EntityID {
	out := ids[:0]
	for _, id := range ids {
		if !s.entityManager.IsMarked(id) {
			out = append(out, id)
		}
	}
	return out
}

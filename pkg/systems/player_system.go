package systems

import (
	"log"

	"github.com/gonewx/heartband/pkg/components"
	"github.com/gonewx/heartband/pkg/config"
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/types"
	"github.com/gonewx/heartband/pkg/utils"
)

// PlayerInput 一名玩家在一个 tick 内的输入
type PlayerInput struct {
	Move     utils.Vec2 // 移动方向（会被归一化）
	Look     utils.Vec2 // 朝向；长度过小时保持上一次朝向
	Interact bool       // 是否按住交互键
}

// lookDeadZone 朝向输入的死区（长度平方）
const lookDeadZone = 1e-3

// PlayerSystem 玩家控制系统
//
// 职责：
//   - 按输入移动玩家、更新朝向
//   - 交互键与踏板：按住时占用踏板，松开时释放（树已种下时不释放）
//   - 树状态切换时切换装备（移动时持盾，其他时候持剑）
//   - 死亡后计时复活，复活位置为树的位置
type PlayerSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.PlayersConfig
	tree          ecs.EntityID
	planting      *PlantingSystem
}

// NewPlayerSystem 创建玩家系统
func NewPlayerSystem(em *ecs.EntityManager, cfg *config.PlayersConfig, tree ecs.EntityID, planting *PlantingSystem) *PlayerSystem {
	return &PlayerSystem{
		entityManager: em,
		cfg:           cfg,
		tree:          tree,
		planting:      planting,
	}
}

func (s *PlayerSystem) treeState() types.TreeState {
	if tree, ok := ecs.GetComponent[*components.TreeComponent](s.entityManager, s.tree); ok {
		return tree.State
	}
	return types.TreeWaiting
}

// SetInput 记录玩家输入，在下一次 Update 生效
func (s *PlayerSystem) SetInput(player ecs.EntityID, input PlayerInput) {
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, player)
	if !ok {
		return
	}
	p.MoveDir = input.Move.Normalize()
	if input.Look.LenSq() > lookDeadZone {
		p.LookDir = input.Look.Normalize()
	}
	p.Interacting = input.Interact
}

// Update 更新所有玩家
func (s *PlayerSystem) Update(dt float64) {
	state := s.treeState()

	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](s.entityManager) {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		if player.IsDead() {
			s.updateRespawn(id, player, pos, dt)
			continue
		}

		pos.Vec2 = pos.Add(player.MoveDir.Scale(s.cfg.MovementSpeed * dt))

		if player.Slate == ecs.InvalidEntity {
			continue
		}
		if player.Interacting {
			s.planting.ActivateSlate(player.Slate, id)
		} else if state != types.TreePlanted {
			s.releaseSlate(id, player.Slate)
		}
	}
}

// releaseSlate 只释放由该玩家占用的踏板
func (s *PlayerSystem) releaseSlate(player, slate ecs.EntityID) {
	sl, ok := ecs.GetComponent[*components.PlantingSlateComponent](s.entityManager, slate)
	if ok && sl.InteractingPlayer == player {
		s.planting.DeactivateSlate(slate)
	}
}

func (s *PlayerSystem) updateRespawn(id ecs.EntityID, player *components.PlayerComponent, pos *components.PositionComponent, dt float64) {
	player.RespawnTimer -= dt
	if player.RespawnTimer > 0 {
		return
	}

	player.RespawnTimer = -1
	if health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id); ok {
		health.CurrentHealth = health.MaxHealth
	}
	if treePos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.tree); ok {
		pos.Vec2 = treePos.Vec2
	}
	log.Printf("[PlayerSystem] Player %d respawned", player.Index)
}

// OnDamage 玩家受到伤害；生命值归零时进入复活倒计时并释放占用的踏板
func (s *PlayerSystem) OnDamage(player ecs.EntityID, value int) {
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, player)
	if !ok || p.IsDead() {
		return
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, player)
	if !ok {
		return
	}

	health.CurrentHealth -= value
	if health.CurrentHealth > 0 {
		return
	}

	health.CurrentHealth = 0
	p.RespawnTimer = s.cfg.RespawnTime
	p.Interacting = false
	s.planting.ReleasePlayer(player)
	log.Printf("[PlayerSystem] Player %d down, respawn in %.1fs", p.Index, s.cfg.RespawnTime)
}

// OnHeal 恢复玩家生命值，不超过最大值
func (s *PlayerSystem) OnHeal(player ecs.EntityID, value int) {
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, player)
	if !ok || p.IsDead() {
		return
	}
	if health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, player); ok {
		health.CurrentHealth = min(health.CurrentHealth+value, health.MaxHealth)
	}
}

// ShieldPosition 玩家盾牌的位置
//
// 返回：
//   - utils.Vec2: 盾牌中心
//   - bool: 玩家当前是否举盾（存活且持盾）
func (s *PlayerSystem) ShieldPosition(player ecs.EntityID) (utils.Vec2, bool) {
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, player)
	if !ok || p.IsDead() || p.Equipment != types.EquipmentShield {
		return utils.Vec2{}, false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, player)
	if !ok {
		return utils.Vec2{}, false
	}
	return pos.Add(p.LookDir.Scale(s.cfg.ShieldDistance)), true
}

// OnTreeStateChanged 实现 TreeListener：切换所有玩家的装备
func (s *PlayerSystem) OnTreeStateChanged(state types.TreeState) {
	equipment := types.EquipmentFor(state)
	for _, id := range ecs.GetEntitiesWith1[*components.PlayerComponent](s.entityManager) {
		if p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id); ok {
			p.Equipment = equipment
		}
	}
}

// OnGameOver 实现 TreeListener
func (s *PlayerSystem) OnGameOver() {}

// OnVictory 实现 TreeListener
func (s *PlayerSystem) OnVictory() {}

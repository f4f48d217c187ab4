package systems

import (
	"log"

	"github.com/gonewx/heartband/pkg/components"
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/types"
	"github.com/gonewx/heartband/pkg/utils"
)

// TreeListener 接收树状态通知
type TreeListener interface {
	// OnTreeStateChanged 状态切换后调用（驱动玩家盾/剑切换）
	OnTreeStateChanged(state types.TreeState)
	// OnGameOver 树的生命值降到 0 以下，只调用一次
	OnGameOver()
	// OnVictory 树在终点种下，只调用一次
	OnVictory()
}

// Damager 可以被伤害的目标
type Damager interface {
	OnDamage(value float64)
}

// TreeSystem 树的生命周期状态机
//
// 状态循环：
//
//	Waiting --(当前种植点被激活)--> Moving --(新种植点被激活)--> Planted --(进化计时结束)--> Waiting
//
// 状态切换及其副作用（开始/结束波次、重置计时器）在一次 Update 内完成。
// 生命值低于 0 时进入终止状态，之后不再更新。
type TreeSystem struct {
	entityManager   *ecs.EntityManager
	tree            ecs.EntityID
	waves           WaveController
	gate            PlantingGate
	evolveDurations []float64

	listeners []TreeListener
}

// NewTreeSystem 创建树状态机
//
// 参数：
//   - em: 实体管理器
//   - tree: 树实体（需带 TreeComponent、PositionComponent、VelocityComponent）
//   - waves: 波次控制器
//   - gate: 种植点激活判定
//   - evolveDurations: 每个成长阶段的种植时长
func NewTreeSystem(em *ecs.EntityManager, tree ecs.EntityID, waves WaveController, gate PlantingGate, evolveDurations []float64) *TreeSystem {
	return &TreeSystem{
		entityManager:   em,
		tree:            tree,
		waves:           waves,
		gate:            gate,
		evolveDurations: evolveDurations,
	}
}

// AddListener 注册状态监听器
func (s *TreeSystem) AddListener(l TreeListener) {
	s.listeners = append(s.listeners, l)
}

// Tree 树实体
func (s *TreeSystem) Tree() ecs.EntityID {
	return s.tree
}

func (s *TreeSystem) component() *components.TreeComponent {
	tree, ok := ecs.GetComponent[*components.TreeComponent](s.entityManager, s.tree)
	if !ok {
		return nil
	}
	return tree
}

// State 当前状态
func (s *TreeSystem) State() types.TreeState {
	if tree := s.component(); tree != nil {
		return tree.State
	}
	return types.TreeWaiting
}

// GrowingStage 当前成长阶段
func (s *TreeSystem) GrowingStage() int {
	if tree := s.component(); tree != nil {
		return tree.GrowingStage
	}
	return 0
}

// Health 当前生命值
func (s *TreeSystem) Health() float64 {
	if tree := s.component(); tree != nil {
		return tree.Health
	}
	return 0
}

// IsTerminal 对局是否已结束
func (s *TreeSystem) IsTerminal() bool {
	tree := s.component()
	return tree == nil || tree.Terminal
}

// OnDamage 立即扣除生命值（可与衰减叠加）
func (s *TreeSystem) OnDamage(value float64) {
	tree := s.component()
	if tree == nil || tree.Terminal {
		return
	}
	tree.Health -= value
	s.checkTerminal(tree)
}

// OnHeal 恢复生命值，不超过最大生命值
func (s *TreeSystem) OnHeal(value float64) {
	tree := s.component()
	if tree == nil || tree.Terminal {
		return
	}
	tree.Health = min(tree.Health+value, tree.MaxHealth)
}

// Update 推进状态机
func (s *TreeSystem) Update(dt float64) {
	tree := s.component()
	if tree == nil || tree.Terminal {
		return
	}

	switch tree.State {
	case types.TreeMoving:
		// 所有玩家踩上新种植点的踏板时种下
		if tree.PlantingPoint != ecs.InvalidEntity && s.gate.IsActivated(tree.PlantingPoint) {
			s.setState(tree, types.TreePlanted)
			if tree.Terminal {
				return
			}
		}
		s.decay(tree, dt, true)

	case types.TreePlanted:
		tree.EvolveTimer -= dt
		if tree.EvolveTimer <= 0 {
			s.setState(tree, types.TreeWaiting)
		}
		s.decay(tree, dt, false)

	case types.TreeWaiting:
		// 所有玩家再次踩上踏板时出发
		if tree.PlantingPoint != ecs.InvalidEntity && s.gate.IsActivated(tree.PlantingPoint) {
			s.setState(tree, types.TreeMoving)
		}
		s.decay(tree, dt, tree.GrowingStage > 0)
	}
}

// decay 衰减并检查生命值
func (s *TreeSystem) decay(tree *components.TreeComponent, dt float64, enabled bool) {
	if enabled {
		tree.Health -= tree.DecaySpeed * dt
	}
	s.checkTerminal(tree)
}

func (s *TreeSystem) checkTerminal(tree *components.TreeComponent) {
	if tree.Terminal || tree.Health >= 0 {
		return
	}
	tree.Terminal = true
	s.stop()
	log.Printf("[TreeSystem] Tree destroyed! (stage=%d, state=%s)", tree.GrowingStage, tree.State)
	for _, l := range s.listeners {
		l.OnGameOver()
	}
}

// stop 对局结束时停止树的移动
func (s *TreeSystem) stop() {
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, s.tree); ok {
		vel.Vec2 = utils.Vec2{}
	}
}

// setState 切换状态并执行副作用
func (s *TreeSystem) setState(tree *components.TreeComponent, state types.TreeState) {
	prev := tree.State
	tree.State = state
	point := tree.PlantingPoint

	switch state {
	case types.TreeMoving:
		if s.waves.ActiveWave() != types.WaveNone {
			s.waves.EndWave()
		}
		s.waves.StartWave(types.WaveProjectiles)
		// 起点不播放治愈特效
		s.gate.SetUsed(point, tree.GrowingStage > 0)
		tree.PlantingPoint = ecs.InvalidEntity
		s.stop()

	case types.TreePlanted:
		s.stop()
		s.waves.EndWave()
		if s.gate.IsFinalPoint(point) {
			s.gate.SetUsed(point, true)
			tree.Terminal = true
			tree.Victory = true
		} else {
			s.waves.StartWave(types.WaveEnemies)
			tree.EvolveTimer = s.evolveDuration(tree.GrowingStage)
		}

	case types.TreeWaiting:
		s.stop()
		s.gate.DeactivateSlates(point)
		s.waves.EndWave()
		tree.GrowingStage++
		tree.EvolveTimer = -1
		tree.Health = tree.MaxHealth
	}

	log.Printf("[TreeSystem] %s -> %s (stage=%d, health=%.2f)", prev, state, tree.GrowingStage, tree.Health)
	for _, l := range s.listeners {
		l.OnTreeStateChanged(state)
	}

	if tree.Victory {
		log.Printf("[TreeSystem] Tree planted at the final point, victory!")
		for _, l := range s.listeners {
			l.OnVictory()
		}
	}
}

// evolveDuration 按成长阶段查询种植时长
// 配置加载时已保证长度覆盖可达阶段，越界时使用最后一项
func (s *TreeSystem) evolveDuration(stage int) float64 {
	if len(s.evolveDurations) == 0 {
		return 0
	}
	if stage >= len(s.evolveDurations) {
		return s.evolveDurations[len(s.evolveDurations)-1]
	}
	return s.evolveDurations[stage]
}

// UpdatePull 移动状态下由玩家牵引树
//
// 合力 = Σ(玩家相对树的偏移，每个限制在 maxPlayerDist 内，超出时玩家被拉回)
//
//	+ 2 × (树到当前种植点的向量，仅当种植点未使用)
//
// 速度 = 合力 × pullSpeed，按 tick 积分到位置。
func (s *TreeSystem) UpdatePull(dt float64) {
	tree := s.component()
	if tree == nil || tree.Terminal || tree.State != types.TreeMoving {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.tree)
	if !ok {
		return
	}
	vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, s.tree)
	if !ok {
		return
	}

	var pull utils.Vec2
	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](s.entityManager) {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		if player.IsDead() {
			continue
		}
		playerPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		offset := playerPos.Sub(pos.Vec2)
		if offset.Len() > tree.MaxPlayerDist {
			offset = offset.Normalize().Scale(tree.MaxPlayerDist)
			playerPos.Vec2 = pos.Add(offset)
		}
		pull = pull.Add(offset)
	}

	if point := tree.PlantingPoint; point != ecs.InvalidEntity && !s.gate.WasUsed(point) {
		if pointPos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, point); ok {
			pull = pull.Add(pointPos.Sub(pos.Vec2).Scale(2))
		}
	}

	vel.Vec2 = pull.Scale(tree.PullSpeed)
	pos.Vec2 = pos.Add(vel.Scale(dt))
}

package game

import (
	"github.com/gonewx/heartband/pkg/components"
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/types"
	"github.com/gonewx/heartband/pkg/utils"
)

// TreeView 树的只读视图
type TreeView struct {
	Pos          utils.Vec2
	Radius       float64
	State        types.TreeState
	Health       float64
	MaxHealth    float64
	GrowingStage int
	EvolveTimer  float64
}

// PlayerView 玩家的只读视图
type PlayerView struct {
	Index     int
	Pos       utils.Vec2
	Radius    float64
	LookDir   utils.Vec2
	Health    int
	MaxHealth int
	Equipment types.Equipment
	Dead      bool
	Shield    utils.Vec2 // 盾牌中心，仅 HasShield 时有效
	HasShield bool
}

// AgentView 敌人或投射物的只读视图
type AgentView struct {
	Pos    utils.Vec2
	Radius float64
	Tier   int
	Moving bool // 投射物是否已开始移动；敌人恒为 true
}

// RemainsView 敌人残骸
type RemainsView struct {
	Pos  utils.Vec2
	Fade float64
}

// SlateView 踏板的只读视图
type SlateView struct {
	Pos      utils.Vec2
	Radius   float64
	Occupied bool
	Used     bool
}

// PointView 种植点的只读视图
type PointView struct {
	Index      int
	Pos        utils.Vec2
	Radius     float64
	Used       bool
	Final      bool
	HealRadius float64
	Slates     []SlateView
}

// Snapshot 某一时刻的对局状态，供表现层和机器人读取
type Snapshot struct {
	Tick        int
	Elapsed     float64
	Outcome     types.MatchOutcome
	ActiveWave  types.WaveType
	Population  int
	Tree        TreeView
	Players     []PlayerView
	Enemies     []AgentView
	Projectiles []AgentView
	Remains     []RemainsView
	Points      []PointView
}

// Snapshot 生成当前状态的快照
// 返回值不引用任何组件，调用方可以自由保存
func (m *Match) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       m.ticks,
		Elapsed:    m.elapsed,
		Outcome:    m.outcome,
		ActiveWave: m.waves.ActiveWave(),
		Population: m.waves.PopulationCount(),
	}

	if tree, ok := ecs.GetComponent[*components.TreeComponent](m.em, m.tree); ok {
		snap.Tree = TreeView{
			Pos:          m.position(m.tree),
			Radius:       m.radius(m.tree),
			State:        tree.State,
			Health:       tree.Health,
			MaxHealth:    tree.MaxHealth,
			GrowingStage: tree.GrowingStage,
			EvolveTimer:  tree.EvolveTimer,
		}
	}

	for _, id := range m.roster {
		if id == ecs.InvalidEntity {
			continue
		}
		player, ok := ecs.GetComponent[*components.PlayerComponent](m.em, id)
		if !ok {
			continue
		}
		view := PlayerView{
			Index:     player.Index,
			Pos:       m.position(id),
			Radius:    m.radius(id),
			LookDir:   player.LookDir,
			Equipment: player.Equipment,
			Dead:      player.IsDead(),
		}
		if health, ok := ecs.GetComponent[*components.HealthComponent](m.em, id); ok {
			view.Health = health.CurrentHealth
			view.MaxHealth = health.MaxHealth
		}
		view.Shield, view.HasShield = m.players.ShieldPosition(id)
		snap.Players = append(snap.Players, view)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](m.em) {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](m.em, id)
		snap.Enemies = append(snap.Enemies, AgentView{
			Pos:    m.position(id),
			Radius: m.radius(id),
			Tier:   enemy.Tier,
			Moving: true,
		})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](m.em) {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](m.em, id)
		snap.Projectiles = append(snap.Projectiles, AgentView{
			Pos:    m.position(id),
			Radius: m.radius(id),
			Tier:   proj.Tier,
			Moving: proj.Speed > 0,
		})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.RemainsComponent, *components.PositionComponent](m.em) {
		remains, _ := ecs.GetComponent[*components.RemainsComponent](m.em, id)
		snap.Remains = append(snap.Remains, RemainsView{Pos: m.position(id), Fade: remains.Fade})
	}

	for _, id := range m.planting.Points() {
		point, ok := ecs.GetComponent[*components.PlantingPointComponent](m.em, id)
		if !ok {
			continue
		}
		view := PointView{
			Index:      point.Index,
			Pos:        m.position(id),
			Radius:     m.radius(id),
			Used:       point.Used,
			Final:      point.IsFinalPoint,
			HealRadius: point.HealRadius,
		}
		for _, slateID := range point.Slates {
			slate, ok := ecs.GetComponent[*components.PlantingSlateComponent](m.em, slateID)
			if !ok {
				continue
			}
			view.Slates = append(view.Slates, SlateView{
				Pos:      m.position(slateID),
				Radius:   m.radius(slateID),
				Occupied: slate.InteractingPlayer != ecs.InvalidEntity,
				Used:     slate.Used,
			})
		}
		snap.Points = append(snap.Points, view)
	}

	return snap
}

// NextPoint 路线上第一个未使用的种植点
// Waiting 时为树所在的种植点，Moving 时为前往的种植点
func (s *Snapshot) NextPoint() (PointView, bool) {
	for _, p := range s.Points {
		if !p.Used {
			return p, true
		}
	}
	return PointView{}, false
}

// Player 按编号查找玩家视图
func (s *Snapshot) Player(index int) (PlayerView, bool) {
	for _, p := range s.Players {
		if p.Index == index {
			return p, true
		}
	}
	return PlayerView{}, false
}

func (m *Match) position(id ecs.EntityID) utils.Vec2 {
	if pos, ok := ecs.GetComponent[*components.PositionComponent](m.em, id); ok {
		return pos.Vec2
	}
	return utils.Vec2{}
}

func (m *Match) radius(id ecs.EntityID) float64 {
	if c, ok := ecs.GetComponent[*components.CollisionComponent](m.em, id); ok {
		return c.Radius
	}
	return 0
}

package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/gonewx/heartband/pkg/components"
	"github.com/gonewx/heartband/pkg/config"
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/entities"
	"github.com/gonewx/heartband/pkg/systems"
	"github.com/gonewx/heartband/pkg/types"
	"github.com/gonewx/heartband/pkg/utils"
)

var (
	// ErrMatchFull 玩家数已达上限
	ErrMatchFull = errors.New("match is full")
	// ErrUnknownPlayer 玩家编号不存在或已离开
	ErrUnknownPlayer = errors.New("unknown player")
)

// Match 一局游戏
//
// 负责创建实体与系统、维护玩家名单，并按固定顺序推进每个 tick：
//
//	玩家 → 触发检测 → 树状态机 → 牵引 → 波次调度 → 敌人 → 投射物
//	→ 命中检测 → 执行销毁请求 → 残骸计时 → 治愈特效 → 清理实体
//
// Match 不是并发安全的，一局只应在一个 goroutine 中推进。
type Match struct {
	cfg  *config.MatchConfig
	seed int64
	em   *ecs.EntityManager
	rng  *rand.Rand

	tree        ecs.EntityID
	treeSystem  *systems.TreeSystem
	waves       *systems.WaveScheduler
	planting    *systems.PlantingSystem
	players     *systems.PlayerSystem
	proximity   *systems.ProximitySystem
	enemies     *systems.EnemyBehaviorSystem
	projectiles *systems.ProjectileBehaviorSystem
	lifetime    *systems.LifetimeSystem

	// roster 玩家编号 → 实体，空位为 ecs.InvalidEntity
	roster []ecs.EntityID

	outcome types.MatchOutcome
	elapsed float64
	ticks   int
}

// NewMatch 按配置创建一局游戏
//
// 参数：
//   - cfg: 已验证的对局配置
//   - seed: 随机种子；为 0 时使用配置中的种子
//
// 返回：
//   - *Match: 处于 Waiting 状态、尚无玩家的对局
//   - error: 创建树实体失败时返回错误
func NewMatch(cfg *config.MatchConfig, seed int64) (*Match, error) {
	if cfg == nil {
		return nil, fmt.Errorf("match config is nil")
	}
	if len(cfg.Planting.Points) == 0 {
		return nil, fmt.Errorf("match config %q has no planting points", cfg.Name)
	}
	if seed == 0 {
		seed = cfg.Seed
	}

	m := &Match{
		cfg:    cfg,
		seed:   seed,
		em:     ecs.NewEntityManager(),
		rng:    utils.NewRandom(seed),
		roster: make([]ecs.EntityID, cfg.Players.MaxPlayers),
	}

	tree, err := entities.NewTree(m.em, &cfg.Tree, cfg.Arena.TreeRadius, cfg.Planting.Points[0].Position())
	if err != nil {
		return nil, fmt.Errorf("failed to create tree: %w", err)
	}
	m.tree = tree

	spawner := systems.NewAgentSpawner(m.em, m.rng, &cfg.Stats, &cfg.Arena, tree)
	m.waves = systems.NewWaveScheduler(m.em, spawner, m.rng, cfg.Waves)
	m.planting = systems.NewPlantingSystem(m.em, &cfg.Planting, tree, cfg.Tree.FinalStageThreshold, cfg.Players.InteractRadius)
	m.treeSystem = systems.NewTreeSystem(m.em, tree, m.waves, m.planting, cfg.Tree.EvolveDurations)
	m.players = systems.NewPlayerSystem(m.em, &cfg.Players, tree, m.planting)
	m.proximity = systems.NewProximitySystem(m.em, tree, m.planting, m.players, m.waves, &cfg.Players, &cfg.Arena)
	m.enemies = systems.NewEnemyBehaviorSystem(m.em, tree, m.treeSystem)
	m.projectiles = systems.NewProjectileBehaviorSystem(m.em, tree, m.treeSystem, m.waves)
	m.lifetime = systems.NewLifetimeSystem(m.em)

	m.treeSystem.AddListener(m.players)
	m.treeSystem.AddListener(m)

	log.Printf("[Match] Created match %q (seed=%d, points=%d)", cfg.Name, seed, len(cfg.Planting.Points))
	return m, nil
}

// Config 返回对局配置
func (m *Match) Config() *config.MatchConfig { return m.cfg }

// Seed 返回本局使用的随机种子
func (m *Match) Seed() int64 { return m.seed }

// Tree 返回树状态机
func (m *Match) Tree() *systems.TreeSystem { return m.treeSystem }

// Waves 返回波次调度器
func (m *Match) Waves() *systems.WaveScheduler { return m.waves }

// Planting 返回种植系统
func (m *Match) Planting() *systems.PlantingSystem { return m.planting }

// Outcome 返回对局结果
func (m *Match) Outcome() types.MatchOutcome { return m.outcome }

// Elapsed 返回已推进的模拟时间（秒）
func (m *Match) Elapsed() float64 { return m.elapsed }

// Ticks 返回已推进的 tick 数
func (m *Match) Ticks() int { return m.ticks }

// AddListener 注册树状态监听器
func (m *Match) AddListener(l systems.TreeListener) {
	m.treeSystem.AddListener(l)
}

// PlayerCount 当前在场玩家数
func (m *Match) PlayerCount() int {
	n := 0
	for _, id := range m.roster {
		if id != ecs.InvalidEntity {
			n++
		}
	}
	return n
}

// PlayerEntity 返回玩家编号对应的实体
func (m *Match) PlayerEntity(index int) (ecs.EntityID, bool) {
	if index < 0 || index >= len(m.roster) || m.roster[index] == ecs.InvalidEntity {
		return ecs.InvalidEntity, false
	}
	return m.roster[index], true
}

// PlayerJoined 新玩家加入，出生在树的位置
//
// 玩家编号取最小的空位；加入后所有种植点的踏板按新人数重建。
//
// 返回：
//   - int: 玩家编号
//   - error: 人数已满时返回 ErrMatchFull
func (m *Match) PlayerJoined() (int, error) {
	index := -1
	for i, id := range m.roster {
		if id == ecs.InvalidEntity {
			index = i
			break
		}
	}
	if index < 0 {
		return -1, fmt.Errorf("%w (max %d players)", ErrMatchFull, len(m.roster))
	}

	pos := utils.Vec2{}
	if treePos, ok := ecs.GetComponent[*components.PositionComponent](m.em, m.tree); ok {
		pos = treePos.Vec2
	}
	m.roster[index] = entities.NewPlayer(m.em, &m.cfg.Players, m.cfg.Arena.PlayerRadius, index, pos, m.treeSystem.State())
	m.planting.UpdateAllSlateCounts(m.PlayerCount())

	log.Printf("[Match] Player %d joined (%d in match)", index, m.PlayerCount())
	return index, nil
}

// PlayerLeft 玩家离开：释放其占用的踏板、移除实体并重建踏板
func (m *Match) PlayerLeft(index int) error {
	id, ok := m.PlayerEntity(index)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, index)
	}

	m.planting.ReleasePlayer(id)
	m.em.DestroyEntity(id)
	m.roster[index] = ecs.InvalidEntity
	m.planting.UpdateAllSlateCounts(m.PlayerCount())
	// 在 tick 之间调用，立即清理，避免离开的玩家参与下一次牵引
	m.em.RemoveMarkedEntities()

	log.Printf("[Match] Player %d left (%d in match)", index, m.PlayerCount())
	return nil
}

// SetPlayerInput 设置玩家在下一个 tick 的输入
func (m *Match) SetPlayerInput(index int, input systems.PlayerInput) error {
	id, ok := m.PlayerEntity(index)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, index)
	}
	m.players.SetInput(id, input)
	return nil
}

// Update 推进一个 tick
//
// 对局结束后只推进表现相关的计时（治愈特效、残骸淡出）。
func (m *Match) Update(dt float64) {
	if m.outcome != types.OutcomeRunning {
		m.lifetime.Update(dt)
		m.planting.Update(dt)
		m.em.RemoveMarkedEntities()
		return
	}

	m.ticks++
	m.elapsed += dt

	m.players.Update(dt)
	m.proximity.UpdateTriggers()
	m.treeSystem.Update(dt)
	m.treeSystem.UpdatePull(dt)
	m.waves.Update(dt)
	m.enemies.Update(dt)
	m.projectiles.Update(dt)
	m.proximity.DetectHits()
	m.waves.FlushDestroyRequests()
	m.lifetime.Update(dt)
	m.planting.Update(dt)
	m.em.RemoveMarkedEntities()
}

// OnTreeStateChanged 实现 systems.TreeListener
func (m *Match) OnTreeStateChanged(state types.TreeState) {}

// OnGameOver 实现 systems.TreeListener
func (m *Match) OnGameOver() {
	m.outcome = types.OutcomeDefeat
	log.Printf("[Match] Defeat at stage %d after %.1fs", m.treeSystem.GrowingStage(), m.elapsed)
}

// OnVictory 实现 systems.TreeListener
func (m *Match) OnVictory() {
	m.outcome = types.OutcomeVictory
	log.Printf("[Match] Victory after %.1fs", m.elapsed)
}

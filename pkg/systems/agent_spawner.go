package systems

import (
	"log"

	"github.com/gonewx/heartband/pkg/components"
	"github.com/gonewx/heartband/pkg/config"
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/entities"
	"github.com/gonewx/heartband/pkg/types"
	"github.com/gonewx/heartband/pkg/utils"
)

// AgentSpawner 在以树为圆心的生成环上创建敌人和投射物
type AgentSpawner struct {
	entityManager *ecs.EntityManager
	rng           utils.RandomSource
	stats         *config.StatsTable
	arena         *config.ArenaConfig
	tree          ecs.EntityID
}

// NewAgentSpawner 创建实体生成器
func NewAgentSpawner(em *ecs.EntityManager, rng utils.RandomSource, stats *config.StatsTable, arena *config.ArenaConfig, tree ecs.EntityID) *AgentSpawner {
	return &AgentSpawner{
		entityManager: em,
		rng:           rng,
		stats:         stats,
		arena:         arena,
		tree:          tree,
	}
}

// Spawn 实现 Spawner 接口
func (s *AgentSpawner) Spawn(wave types.WaveType, tier int) ecs.EntityID {
	treePos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.tree)
	if !ok {
		return ecs.InvalidEntity
	}

	switch wave {
	case types.WaveEnemies:
		pos := entities.SpawnRingPosition(s.rng, treePos.Vec2, s.arena.SpawnRadius)
		return entities.NewEnemy(s.entityManager, pos, s.arena.EnemyRadius, tier, s.stats.EnemyStatsFor(tier))

	case types.WaveProjectiles:
		pos := entities.SpawnRingPosition(s.rng, treePos.Vec2, s.arena.ProjectileSpawnRadius)
		id, err := entities.NewProjectile(s.entityManager, pos, treePos.Vec2, s.arena.ProjectileRadius, tier, s.stats.ProjectileStatsFor(tier))
		if err != nil {
			log.Printf("[AgentSpawner] ERROR: %v", err)
			return ecs.InvalidEntity
		}
		return id
	}

	return ecs.InvalidEntity
}

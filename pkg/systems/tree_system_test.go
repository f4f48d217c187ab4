package systems

import (
	"testing"

	"github.com/gonewx/heartband/pkg/components"
	"github.com/gonewx/heartband/pkg/config"
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/entities"
	"github.com/gonewx/heartband/pkg/types"
	"github.com/gonewx/heartband/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingListener 记录树的通知
type recordingListener struct {
	states   []types.TreeState
	gameOver int
	victory  int
}

func (l *recordingListener) OnTreeStateChanged(state types.TreeState) { l.states = append(l.states, state) }
func (l *recordingListener) OnGameOver()                              { l.gameOver++ }
func (l *recordingListener) OnVictory()                               { l.victory++ }

type treeFixture struct {
	em        *ecs.EntityManager
	tree      ecs.EntityID
	player    ecs.EntityID
	scheduler *WaveScheduler
	spawner   *countingSpawner
	planting  *PlantingSystem
	trees     *TreeSystem
	listener  *recordingListener
}

// newTreeFixture 路线：起点、两个种植点、终点（成长阶段 2 解锁）
func newTreeFixture(t *testing.T) *treeFixture {
	t.Helper()
	em := ecs.NewEntityManager()

	treeCfg := &config.TreeConfig{
		MaxHealth:           10,
		DecaySpeed:          1,
		PullSpeed:           0.1,
		MaxPlayerDist:       4,
		EvolveDurations:     []float64{5, 5},
		FinalStageThreshold: 2,
	}
	plantingCfg := &config.PlantingConfig{
		SlateDistance:  2.5,
		TriggerRadius:  1.5,
		HealRange:      5,
		FinalHealRange: 300,
		HealDuration:   5,
		HealCurve:      "linear",
		Points: []config.PlantingPointConfig{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}, {X: 30, Y: 0, Final: true},
		},
	}
	wave := config.WaveData{TotalSpawnBatchCount: 1, SpawnBatchSize: 1, SpawningFrequency: 1, NextWaveCooldown: 1}
	waves := config.WavesConfig{
		Enemies:     config.WaveSchedule{Exhaustion: config.ExhaustionHalt, Tiers: []config.WaveTier{batchTier(wave), batchTier(wave)}},
		Projectiles: config.WaveSchedule{Exhaustion: config.ExhaustionLoop, Tiers: []config.WaveTier{batchTier(wave)}},
	}

	tree, err := entities.NewTree(em, treeCfg, 0.6, utils.Vec2{})
	require.NoError(t, err)

	spawner := newCountingSpawner(em)
	scheduler := NewWaveScheduler(em, spawner, utils.NewRandom(1), waves)
	planting := NewPlantingSystem(em, plantingCfg, tree, treeCfg.FinalStageThreshold, 0.6)
	trees := NewTreeSystem(em, tree, scheduler, planting, treeCfg.EvolveDurations)
	listener := &recordingListener{}
	trees.AddListener(listener)

	player := entities.NewPlayer(em, &config.PlayersConfig{MaxHealth: 3}, 0.35, 0, utils.Vec2{}, types.TreeWaiting)
	planting.UpdateAllSlateCounts(1)

	return &treeFixture{
		em:        em,
		tree:      tree,
		player:    player,
		scheduler: scheduler,
		spawner:   spawner,
		planting:  planting,
		trees:     trees,
		listener:  listener,
	}
}

func (f *treeFixture) treeComponent(t *testing.T) *components.TreeComponent {
	t.Helper()
	tree, ok := ecs.GetComponent[*components.TreeComponent](f.em, f.tree)
	require.True(t, ok)
	return tree
}

// arriveAndActivate 模拟树进入种植点、玩家踩上唯一的踏板
func (f *treeFixture) arriveAndActivate(t *testing.T, pointIdx int) ecs.EntityID {
	t.Helper()
	point := f.planting.Points()[pointIdx]
	f.treeComponent(t).PlantingPoint = point
	slates := f.planting.Slates(point)
	require.Len(t, slates, 1)
	f.planting.ActivateSlate(slates[0], f.player)
	return point
}

func TestTreeSystem_FullCycle(t *testing.T) {
	f := newTreeFixture(t)
	tree := f.treeComponent(t)
	require.Equal(t, types.TreeWaiting, tree.State)

	// Waiting → Moving
	start := f.arriveAndActivate(t, 0)
	f.trees.Update(0.1)
	assert.Equal(t, types.TreeMoving, f.trees.State())
	assert.Equal(t, types.WaveProjectiles, f.scheduler.ActiveWave())
	assert.True(t, f.planting.WasUsed(start))
	assert.Equal(t, ecs.InvalidEntity, tree.PlantingPoint)
	startPoint, _ := ecs.GetComponent[*components.PlantingPointComponent](f.em, start)
	assert.False(t, startPoint.HealEffect, "no heal effect when leaving the start at stage 0")

	// Moving → Planted
	next := f.arriveAndActivate(t, 1)
	f.trees.Update(0.1)
	assert.Equal(t, types.TreePlanted, f.trees.State())
	assert.Equal(t, types.WaveEnemies, f.scheduler.ActiveWave())
	assert.Equal(t, 1, f.scheduler.ConsumedTiers(types.WaveProjectiles))
	assert.Equal(t, 5.0, tree.EvolveTimer)
	assert.False(t, f.planting.WasUsed(next), "planting does not consume the point")

	// Planted → Waiting
	f.trees.OnDamage(3)
	for i := 0; i < 10; i++ {
		f.trees.Update(0.5)
	}
	assert.Equal(t, types.TreeWaiting, f.trees.State())
	assert.Equal(t, 1, f.trees.GrowingStage())
	assert.Equal(t, tree.MaxHealth, f.trees.Health(), "health restored on evolve")
	assert.Equal(t, types.WaveNone, f.scheduler.ActiveWave())
	assert.Equal(t, 1, f.scheduler.ConsumedTiers(types.WaveEnemies))
	assert.False(t, f.planting.IsActivated(next), "slates released after evolving")

	// Waiting → Moving 再次出发，此时播放治愈特效
	f.planting.ActivateSlate(f.planting.Slates(next)[0], f.player)
	f.trees.Update(0.1)
	assert.Equal(t, types.TreeMoving, f.trees.State())
	nextPoint, _ := ecs.GetComponent[*components.PlantingPointComponent](f.em, next)
	assert.True(t, nextPoint.HealEffect)

	assert.Equal(t, []types.TreeState{types.TreeMoving, types.TreePlanted, types.TreeWaiting, types.TreeMoving}, f.listener.states)
}

func TestTreeSystem_Decay(t *testing.T) {
	tests := []struct {
		name  string
		state types.TreeState
		stage int
		want  float64
	}{
		{"waiting at stage 0 is protected", types.TreeWaiting, 0, 10},
		{"waiting after growing decays", types.TreeWaiting, 1, 9},
		{"moving decays", types.TreeMoving, 0, 9},
		{"planted is protected", types.TreePlanted, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTreeFixture(t)
			tree := f.treeComponent(t)
			tree.State = tt.state
			tree.GrowingStage = tt.stage
			tree.EvolveTimer = 100

			for i := 0; i < 4; i++ {
				f.trees.Update(0.25)
			}
			assert.InDelta(t, tt.want, f.trees.Health(), 1e-9)
		})
	}
}

func TestTreeSystem_TerminalFiresOnce(t *testing.T) {
	f := newTreeFixture(t)
	tree := f.treeComponent(t)

	f.trees.OnDamage(10)
	assert.False(t, tree.Terminal, "zero health is not terminal")

	f.trees.OnDamage(0.5)
	assert.True(t, tree.Terminal)
	assert.True(t, f.trees.IsTerminal())
	assert.Equal(t, 1, f.listener.gameOver)

	f.trees.OnDamage(5)
	f.trees.Update(1)
	f.arriveAndActivate(t, 0)
	f.trees.Update(1)
	assert.Equal(t, 1, f.listener.gameOver)
	assert.Equal(t, types.TreeWaiting, f.trees.State(), "no transitions after terminal")
	assert.Equal(t, -0.5, f.trees.Health())
}

func TestTreeSystem_DecayToTerminal(t *testing.T) {
	f := newTreeFixture(t)
	f.treeComponent(t).State = types.TreeMoving

	ticks := 0
	for !f.trees.IsTerminal() && ticks < 1000 {
		f.trees.Update(0.5)
		ticks++
		if !f.trees.IsTerminal() {
			assert.GreaterOrEqual(t, f.trees.Health(), 0.0)
		}
	}
	assert.True(t, f.trees.IsTerminal())
	assert.Equal(t, 21, ticks, "10 health at 1/s crosses below zero on the 21st half-second tick")
	assert.Equal(t, 1, f.listener.gameOver)
}

func TestTreeSystem_OnHealClamps(t *testing.T) {
	f := newTreeFixture(t)
	f.trees.OnDamage(4)
	f.trees.OnHeal(1)
	assert.Equal(t, 7.0, f.trees.Health())
	f.trees.OnHeal(100)
	assert.Equal(t, 10.0, f.trees.Health())
}

func TestTreeSystem_FinalPointGatedByStage(t *testing.T) {
	f := newTreeFixture(t)
	final := f.planting.Points()[3]
	slate := f.planting.Slates(final)[0]

	assert.True(t, f.planting.WasUsed(final), "final point counts as used below the threshold")
	assert.False(t, f.planting.ActivateSlate(slate, f.player))
	assert.False(t, f.planting.IsActivated(final))

	f.treeComponent(t).GrowingStage = 2
	assert.False(t, f.planting.WasUsed(final))
	assert.True(t, f.planting.ActivateSlate(slate, f.player))
	assert.True(t, f.planting.IsActivated(final))
}

func TestTreeSystem_Victory(t *testing.T) {
	f := newTreeFixture(t)
	tree := f.treeComponent(t)
	tree.State = types.TreeMoving
	tree.GrowingStage = 2
	f.scheduler.StartWave(types.WaveProjectiles)

	final := f.arriveAndActivate(t, 3)
	f.trees.Update(0.1)

	assert.True(t, tree.Terminal)
	assert.True(t, tree.Victory)
	assert.Equal(t, 1, f.listener.victory)
	assert.Equal(t, 0, f.listener.gameOver)
	assert.Equal(t, types.WaveNone, f.scheduler.ActiveWave(), "no enemy wave after victory")
	assert.Equal(t, 10.0, f.trees.Health(), "no decay on the victory tick")

	finalPoint, _ := ecs.GetComponent[*components.PlantingPointComponent](f.em, final)
	assert.True(t, finalPoint.Used)
	assert.True(t, finalPoint.HealEffect)

	f.trees.Update(1)
	assert.Equal(t, 1, f.listener.victory)
}

func TestTreeSystem_Pull(t *testing.T) {
	f := newTreeFixture(t)
	tree := f.treeComponent(t)
	tree.State = types.TreeMoving

	playerPos, _ := ecs.GetComponent[*components.PositionComponent](f.em, f.player)
	playerPos.Vec2 = utils.Vec2{X: 10, Y: 0}

	f.trees.UpdatePull(1)

	assert.InDelta(t, 4.0, playerPos.X, 1e-9, "player is leashed to maxPlayerDist")
	treePos, _ := ecs.GetComponent[*components.PositionComponent](f.em, f.tree)
	assert.InDelta(t, 0.4, treePos.X, 1e-9)
	vel, _ := ecs.GetComponent[*components.VelocityComponent](f.em, f.tree)
	assert.InDelta(t, 0.4, vel.X, 1e-9)

	// 未使用的种植点以两倍权重吸引树
	tree.PlantingPoint = f.planting.Points()[1]
	treePos.Vec2 = utils.Vec2{X: 9, Y: 0}
	playerPos.Vec2 = utils.Vec2{X: 9, Y: 0}
	f.trees.UpdatePull(1)
	assert.InDelta(t, 0.2, vel.X, 1e-9)
	assert.InDelta(t, 0.0, vel.Y, 1e-9)
}

// TestTreeSystem_PullSumsPlayerOffsets 每个玩家的偏移叠加，人越多拉得越快
func TestTreeSystem_PullSumsPlayerOffsets(t *testing.T) {
	f := newTreeFixture(t)
	f.treeComponent(t).State = types.TreeMoving

	playerPos, _ := ecs.GetComponent[*components.PositionComponent](f.em, f.player)
	playerPos.Vec2 = utils.Vec2{X: 3, Y: 0}
	entities.NewPlayer(f.em, &config.PlayersConfig{MaxHealth: 3}, 0.35, 1, utils.Vec2{X: 0, Y: 2}, types.TreeMoving)

	f.trees.UpdatePull(1)

	vel, _ := ecs.GetComponent[*components.VelocityComponent](f.em, f.tree)
	assert.InDelta(t, 0.3, vel.X, 1e-9)
	assert.InDelta(t, 0.2, vel.Y, 1e-9)
}

func TestTreeSystem_PullOnlyWhileMoving(t *testing.T) {
	f := newTreeFixture(t)
	playerPos, _ := ecs.GetComponent[*components.PositionComponent](f.em, f.player)
	playerPos.Vec2 = utils.Vec2{X: 10, Y: 0}

	f.trees.UpdatePull(1)

	assert.Equal(t, 10.0, playerPos.X)
	treePos, _ := ecs.GetComponent[*components.PositionComponent](f.em, f.tree)
	assert.Equal(t, utils.Vec2{}, treePos.Vec2)
}

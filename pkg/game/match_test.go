package game

import (
	"errors"
	"testing"

	"github.com/gonewx/heartband/pkg/config"
	"github.com/gonewx/heartband/pkg/systems"
	"github.com/gonewx/heartband/pkg/types"
	"github.com/gonewx/heartband/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shortRouteYAML 起点、一个种植点和终点；没有敌人和投射物
const shortRouteYAML = `
name: short
seed: 7
tree:
  maxHealth: 20
  evolveDurations: [1]
  finalStageThreshold: 1
planting:
  points:
    - { x: 0, y: 0 }
    - { x: 6, y: 0 }
    - { x: 12, y: 0, final: true }
players:
  maxPlayers: 2
`

func loadTestConfig(t *testing.T, data string) *config.MatchConfig {
	t.Helper()
	cfg, err := config.ParseMatchConfig([]byte(data))
	require.NoError(t, err)
	return cfg
}

func newTestMatch(t *testing.T) *Match {
	t.Helper()
	m, err := NewMatch(loadTestConfig(t, shortRouteYAML), 0)
	require.NoError(t, err)
	return m
}

func TestNewMatch(t *testing.T) {
	m := newTestMatch(t)

	assert.Equal(t, int64(7), m.Seed(), "seed falls back to the config")
	assert.Equal(t, types.TreeWaiting, m.Tree().State())
	assert.Equal(t, types.OutcomeRunning, m.Outcome())
	assert.Equal(t, 0, m.PlayerCount())

	snap := m.Snapshot()
	require.Len(t, snap.Points, 3)
	assert.Equal(t, utils.Vec2{}, snap.Tree.Pos)
	assert.True(t, snap.Points[2].Final)
	for _, p := range snap.Points {
		assert.Empty(t, p.Slates, "no players, no slates")
	}
}

func TestNewMatch_ExplicitSeed(t *testing.T) {
	m, err := NewMatch(loadTestConfig(t, shortRouteYAML), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), m.Seed())
}

func TestNewMatch_NilConfig(t *testing.T) {
	_, err := NewMatch(nil, 0)
	assert.Error(t, err)
}

func TestMatch_Roster(t *testing.T) {
	m := newTestMatch(t)

	first, err := m.PlayerJoined()
	require.NoError(t, err)
	second, err := m.PlayerJoined()
	require.NoError(t, err)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)

	snap := m.Snapshot()
	for _, p := range snap.Points {
		assert.Len(t, p.Slates, 2)
	}

	_, err = m.PlayerJoined()
	assert.True(t, errors.Is(err, ErrMatchFull))

	require.NoError(t, m.PlayerLeft(0))
	assert.Equal(t, 1, m.PlayerCount())
	snap = m.Snapshot()
	for _, p := range snap.Points {
		assert.Len(t, p.Slates, 1)
	}
	assert.Len(t, snap.Players, 1)

	err = m.PlayerLeft(0)
	assert.True(t, errors.Is(err, ErrUnknownPlayer))

	// 空出的编号被复用
	again, err := m.PlayerJoined()
	require.NoError(t, err)
	assert.Equal(t, 0, again)
}

func TestMatch_SetPlayerInputUnknown(t *testing.T) {
	m := newTestMatch(t)
	err := m.SetPlayerInput(3, systems.PlayerInput{})
	assert.True(t, errors.Is(err, ErrUnknownPlayer))
}

func TestMatch_PlayerSpawnsAtTree(t *testing.T) {
	m := newTestMatch(t)
	index, err := m.PlayerJoined()
	require.NoError(t, err)

	snap := m.Snapshot()
	player, ok := snap.Player(index)
	require.True(t, ok)
	assert.Equal(t, snap.Tree.Pos, player.Pos)
	assert.Equal(t, types.EquipmentSword, player.Equipment)
	assert.Equal(t, 3, player.Health)
}

func TestMatch_DepartWhenSlateHeld(t *testing.T) {
	m := newTestMatch(t)
	index, err := m.PlayerJoined()
	require.NoError(t, err)

	// 唯一的踏板在起点正下方 2.5 处
	input := systems.PlayerInput{Move: utils.Vec2{X: 0, Y: -1}, Interact: true}
	require.NoError(t, m.SetPlayerInput(index, input))

	departed := false
	for i := 0; i < 20 && !departed; i++ {
		m.Update(0.25)
		departed = m.Tree().State() == types.TreeMoving
	}
	require.True(t, departed)

	snap := m.Snapshot()
	assert.True(t, snap.Points[0].Used)
	assert.False(t, snap.Points[1].Used)
	assert.Equal(t, types.WaveProjectiles, snap.ActiveWave)

	player, _ := snap.Player(index)
	assert.Equal(t, types.EquipmentShield, player.Equipment)
}

func TestMatch_BotsReachVictory(t *testing.T) {
	m := newTestMatch(t)
	var bots []*Bot
	for i := 0; i < 2; i++ {
		index, err := m.PlayerJoined()
		require.NoError(t, err)
		bots = append(bots, NewBot(index))
	}

	states := &stateRecorder{}
	m.AddListener(states)

	const dt = 1.0 / 30
	for i := 0; i < 300*30 && m.Outcome() == types.OutcomeRunning; i++ {
		snap := m.Snapshot()
		for _, b := range bots {
			require.NoError(t, m.SetPlayerInput(b.Index, b.Input(&snap)))
		}
		m.Update(dt)
	}

	require.Equal(t, types.OutcomeVictory, m.Outcome())
	assert.Equal(t, 1, m.Tree().GrowingStage())
	assert.Equal(t, []types.TreeState{
		types.TreeMoving, types.TreePlanted, types.TreeWaiting,
		types.TreeMoving, types.TreePlanted,
	}, states.states)
	assert.Equal(t, 1, states.victories)

	// 结束后不再推进模拟时间
	elapsed := m.Elapsed()
	m.Update(dt)
	assert.Equal(t, elapsed, m.Elapsed())
}

func TestMatch_DefeatByDecay(t *testing.T) {
	cfg := loadTestConfig(t, shortRouteYAML)
	cfg.Tree.DecaySpeed = 10
	m, err := NewMatch(cfg, 0)
	require.NoError(t, err)

	index, err := m.PlayerJoined()
	require.NoError(t, err)
	bot := NewBot(index)

	for i := 0; i < 600 && m.Outcome() == types.OutcomeRunning; i++ {
		snap := m.Snapshot()
		require.NoError(t, m.SetPlayerInput(index, bot.Input(&snap)))
		m.Update(0.1)
	}

	assert.Equal(t, types.OutcomeDefeat, m.Outcome())
	assert.True(t, m.Tree().IsTerminal())
}

func TestMatch_LoadsDefaultConfig(t *testing.T) {
	cfg, err := config.LoadMatchConfig("../../data/match.yaml")
	require.NoError(t, err)

	m, err := NewMatch(cfg, 1)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, err := m.PlayerJoined()
		require.NoError(t, err)
	}

	snap := m.Snapshot()
	require.Len(t, snap.Points, 5)
	assert.Len(t, snap.Points[0].Slates, 4)
}

type stateRecorder struct {
	states    []types.TreeState
	gameOvers int
	victories int
}

func (r *stateRecorder) OnTreeStateChanged(state types.TreeState) {
	r.states = append(r.states, state)
}

func (r *stateRecorder) OnGameOver() { r.gameOvers++ }

func (r *stateRecorder) OnVictory() { r.victories++ }

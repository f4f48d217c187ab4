package game

import (
	"context"
	"testing"

	"github.com/gonewx/heartband/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSimulation(t *testing.T) {
	cfg := loadTestConfig(t, shortRouteYAML)

	results, err := RunSimulation(context.Background(), cfg, SimulationOptions{
		Matches:  3,
		Players:  2,
		Seed:     10,
		Dt:       1.0 / 30,
		MaxTime:  300,
		Parallel: 2,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, res := range results {
		assert.Equal(t, int64(10+i), res.Seed)
		assert.Equal(t, types.OutcomeVictory, res.Outcome)
		assert.False(t, res.TimedOut)
		assert.Equal(t, 1, res.Stage)
	}
}

func TestRunSimulation_TimeOut(t *testing.T) {
	cfg := loadTestConfig(t, shortRouteYAML)

	results, err := RunSimulation(context.Background(), cfg, SimulationOptions{Matches: 1, Players: 1, Seed: 1, Dt: 0.1, MaxTime: 0.5})
	require.NoError(t, err)
	assert.True(t, results[0].TimedOut)
	assert.Equal(t, types.OutcomeRunning, results[0].Outcome)
}

func TestRunSimulation_Cancelled(t *testing.T) {
	cfg := loadTestConfig(t, shortRouteYAML)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := RunSimulation(ctx, cfg, SimulationOptions{Matches: 2, Players: 1, Seed: 1})
	assert.ErrorIs(t, err, context.Canceled)
	for _, res := range results {
		assert.True(t, res.Cancelled)
	}
}

func TestRunSimulation_InvalidOptions(t *testing.T) {
	cfg := loadTestConfig(t, shortRouteYAML)

	_, err := RunSimulation(context.Background(), cfg, SimulationOptions{Matches: 0, Players: 1})
	assert.Error(t, err)
	_, err = RunSimulation(context.Background(), cfg, SimulationOptions{Matches: 1, Players: 3})
	assert.Error(t, err, "more bots than maxPlayers")
}

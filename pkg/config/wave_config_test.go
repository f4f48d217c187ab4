package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tiersOf(n int) []WaveTier {
	tiers := make([]WaveTier, n)
	for i := range tiers {
		tiers[i] = WaveTier{Waves: []WaveData{{TotalSpawnBatchCount: i + 1, SpawnBatchSize: 1}}}
	}
	return tiers
}

func TestWaveSchedule_TierAt(t *testing.T) {
	tests := []struct {
		name       string
		exhaustion TierExhaustion
		tiers      int
		consumed   int
		wantOK     bool
		wantBatch  int
	}{
		{"first tier", ExhaustionHalt, 3, 0, true, 1},
		{"last tier", ExhaustionHalt, 3, 2, true, 3},
		{"halt after exhaustion", ExhaustionHalt, 3, 3, false, 0},
		{"loop wraps to first", ExhaustionLoop, 3, 3, true, 1},
		{"loop wraps by modulo", ExhaustionLoop, 3, 7, true, 2},
		{"no tiers", ExhaustionLoop, 0, 0, false, 0},
		{"negative index", ExhaustionLoop, 3, -1, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := WaveSchedule{Exhaustion: tt.exhaustion, Tiers: tiersOf(tt.tiers)}
			tier, ok := s.TierAt(tt.consumed)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantBatch, tier.Waves[0].TotalSpawnBatchCount)
			}
		})
	}
}

func TestWaveSchedule_ShouldLoopWaves(t *testing.T) {
	off := false
	on := true

	assert.True(t, WaveSchedule{}.ShouldLoopWaves(), "unset defaults to looping")
	assert.True(t, WaveSchedule{LoopWaves: &on}.ShouldLoopWaves())
	assert.False(t, WaveSchedule{LoopWaves: &off}.ShouldLoopWaves())
}

func TestStatsTable_ClampsToLastRow(t *testing.T) {
	table := StatsTable{
		Enemies:     []EnemyStats{{MovementSpeed: 1}, {MovementSpeed: 2}},
		Projectiles: []ProjectileStats{{MaxSpeed: 3}},
	}

	assert.Equal(t, 1.0, table.EnemyStatsFor(0).MovementSpeed)
	assert.Equal(t, 2.0, table.EnemyStatsFor(1).MovementSpeed)
	assert.Equal(t, 2.0, table.EnemyStatsFor(5).MovementSpeed)
	assert.Equal(t, 1.0, table.EnemyStatsFor(-1).MovementSpeed)
	assert.Equal(t, 3.0, table.ProjectileStatsFor(4).MaxSpeed)

	var empty StatsTable
	assert.Equal(t, EnemyStats{}, empty.EnemyStatsFor(0))
	assert.Equal(t, ProjectileStats{}, empty.ProjectileStatsFor(0))
}

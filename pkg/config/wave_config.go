package config

import "fmt"

// 每隔 [spawningFrequency] 秒生成一批 [spawnBatchSize] 个实体，
// 一个波次共生成 [totalSpawnBatchCount] 批。
// 全部批次生成后，等待 [nextWaveCooldown] 秒进入层级内的下一个波次。
//
// 单个波次总时长：spawningFrequency * totalSpawnBatchCount + nextWaveCooldown 秒
// 单个波次实体总数：totalSpawnBatchCount * spawnBatchSize

// WaveData 确定性批次波次配置
type WaveData struct {
	TotalSpawnBatchCount int     `yaml:"totalSpawnBatchCount"` // 本波次生成的批次总数
	SpawningFrequency    float64 `yaml:"spawningFrequency"`    // 批次间隔（秒）
	SpawnBatchSize       int     `yaml:"spawnBatchSize"`       // 每批生成数量
	NextWaveCooldown     float64 `yaml:"nextWaveCooldown"`     // 本波次结束到下一波次的间隔（秒）
}

// WaveDataRandom 随机爆发波次配置
//
// 没有待处理的爆发时，从 [spawnFrequencyMin, spawnFrequencyMax] 抽取下一次爆发间隔，
// 从 [spawnCountMin, spawnCountMax] 抽取本次生成数量，两端均为闭区间。
type WaveDataRandom struct {
	SpawnCountMin     int     `yaml:"spawnCountMin"`
	SpawnCountMax     int     `yaml:"spawnCountMax"`
	SpawnFrequencyMin float64 `yaml:"spawnFrequencyMin"`
	SpawnFrequencyMax float64 `yaml:"spawnFrequencyMax"`
}

// WaveTier 难度层级
// 二选一：Waves（确定性批次序列）或 Random（随机爆发）
type WaveTier struct {
	Waves  []WaveData      `yaml:"waves"`
	Random *WaveDataRandom `yaml:"random"`
}

// IsRandom 是否为随机爆发层级
func (t WaveTier) IsRandom() bool {
	return t.Random != nil
}

// TierExhaustion 层级耗尽后的行为
type TierExhaustion string

const (
	// ExhaustionHalt 层级耗尽后不再开启该类型波次
	ExhaustionHalt TierExhaustion = "halt"
	// ExhaustionLoop 层级耗尽后按取模从头循环
	ExhaustionLoop TierExhaustion = "loop"
)

// WaveSchedule 单一波次类型的层级序列
type WaveSchedule struct {
	// Exhaustion 层级耗尽策略：halt | loop
	Exhaustion TierExhaustion `yaml:"exhaustion"`

	// LoopWaves 层级内波次序列播放完毕后是否取模回到第一个波次
	// 为 false 时停在最后一个波次结束后（不再生成）
	LoopWaves *bool `yaml:"loopWaves"`

	Tiers []WaveTier `yaml:"tiers"`
}

// ShouldLoopWaves 返回层级内波次是否循环（未配置时默认循环）
func (s WaveSchedule) ShouldLoopWaves() bool {
	return s.LoopWaves == nil || *s.LoopWaves
}

// TierAt 返回第 consumed 个层级（consumed 为已消耗的层级数）
//
// 返回：
//   - WaveTier: 层级配置
//   - bool: 是否存在可用层级（halt 策略下耗尽返回 false）
func (s WaveSchedule) TierAt(consumed int) (WaveTier, bool) {
	if len(s.Tiers) == 0 || consumed < 0 {
		return WaveTier{}, false
	}
	if consumed < len(s.Tiers) {
		return s.Tiers[consumed], true
	}
	if s.Exhaustion == ExhaustionLoop {
		return s.Tiers[consumed%len(s.Tiers)], true
	}
	return WaveTier{}, false
}

// WavesConfig 所有波次类型的配置
type WavesConfig struct {
	Enemies     WaveSchedule `yaml:"enemies"`
	Projectiles WaveSchedule `yaml:"projectiles"`
}

// validateWaveSchedule 验证单个波次类型的层级序列
func validateWaveSchedule(name string, s WaveSchedule) error {
	if s.Exhaustion != ExhaustionHalt && s.Exhaustion != ExhaustionLoop {
		return fmt.Errorf("%s: exhaustion must be one of: halt, loop, got %q", name, s.Exhaustion)
	}

	for i, tier := range s.Tiers {
		if tier.IsRandom() && len(tier.Waves) > 0 {
			return fmt.Errorf("%s tier %d: waves and random are mutually exclusive", name, i)
		}

		if r := tier.Random; r != nil {
			if r.SpawnCountMin < 0 || r.SpawnCountMax < r.SpawnCountMin {
				return fmt.Errorf("%s tier %d: spawn count range [%d, %d] is invalid", name, i, r.SpawnCountMin, r.SpawnCountMax)
			}
			if r.SpawnFrequencyMin <= 0 || r.SpawnFrequencyMax < r.SpawnFrequencyMin {
				return fmt.Errorf("%s tier %d: spawn frequency range [%v, %v] is invalid", name, i, r.SpawnFrequencyMin, r.SpawnFrequencyMax)
			}
			continue
		}

		// 空层级合法：运行时对应波次为空操作
		for j, w := range tier.Waves {
			if w.TotalSpawnBatchCount < 1 {
				return fmt.Errorf("%s tier %d, wave %d: totalSpawnBatchCount must be at least 1, got %d", name, i, j, w.TotalSpawnBatchCount)
			}
			if w.SpawnBatchSize < 1 {
				return fmt.Errorf("%s tier %d, wave %d: spawnBatchSize must be at least 1, got %d", name, i, j, w.SpawnBatchSize)
			}
			if w.SpawningFrequency < 0 {
				return fmt.Errorf("%s tier %d, wave %d: spawningFrequency cannot be negative", name, i, j)
			}
			if w.NextWaveCooldown < 0 {
				return fmt.Errorf("%s tier %d, wave %d: nextWaveCooldown cannot be negative", name, i, j)
			}
		}
	}

	return nil
}

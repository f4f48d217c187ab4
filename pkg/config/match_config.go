package config

import (
	"fmt"

	"github.com/gonewx/heartband/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultMatchConfigPath 默认对局配置文件
const DefaultMatchConfigPath = "data/match.yaml"

// MatchConfig 对局配置数据结构
// 汇总树、波次、属性表、场地、玩家和种植点的全部参数
type MatchConfig struct {
	Name     string         `yaml:"name"`
	Seed     int64          `yaml:"seed"` // 随机种子，0 表示由调用方决定
	Tree     TreeConfig     `yaml:"tree"`
	Waves    WavesConfig    `yaml:"waves"`
	Stats    StatsTable     `yaml:"stats"`
	Arena    ArenaConfig    `yaml:"arena"`
	Players  PlayersConfig  `yaml:"players"`
	Planting PlantingConfig `yaml:"planting"`
}

// LoadMatchConfig 从YAML文件加载对局配置
// 参数：
//
//	path - 配置文件路径；data/ 下的文件优先从嵌入资源读取
//
// 返回：
//
//	*MatchConfig - 解析后的对局配置对象
//	error - 如果文件读取、解析或验证失败，返回错误信息
func LoadMatchConfig(path string) (*MatchConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read match config file %s: %w", path, err)
	}

	cfg, err := ParseMatchConfig(data)
	if err != nil {
		return nil, fmt.Errorf("match config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseMatchConfig 解析YAML数据并应用默认值、验证
func ParseMatchConfig(data []byte) (*MatchConfig, error) {
	var cfg MatchConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyMatchDefaults(&cfg)

	if err := validateMatchConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyMatchDefaults 为缺失的可选字段设置默认值
func applyMatchDefaults(cfg *MatchConfig) {
	if cfg.Name == "" {
		cfg.Name = "default"
	}

	applyTreeDefaults(&cfg.Tree)
	applyPlantingDefaults(&cfg.Planting)
	applyArenaDefaults(&cfg.Arena)
	applyPlayersDefaults(&cfg.Players)

	// 敌人层级耗尽后停止，投射物层级循环
	if cfg.Waves.Enemies.Exhaustion == "" {
		cfg.Waves.Enemies.Exhaustion = ExhaustionHalt
	}
	if cfg.Waves.Projectiles.Exhaustion == "" {
		cfg.Waves.Projectiles.Exhaustion = ExhaustionLoop
	}

	if len(cfg.Stats.Enemies) == 0 {
		cfg.Stats.Enemies = []EnemyStats{{}}
	}
	for i := range cfg.Stats.Enemies {
		applyEnemyStatsDefaults(&cfg.Stats.Enemies[i])
	}
	if len(cfg.Stats.Projectiles) == 0 {
		cfg.Stats.Projectiles = []ProjectileStats{{}}
	}
	for i := range cfg.Stats.Projectiles {
		applyProjectileStatsDefaults(&cfg.Stats.Projectiles[i])
	}
}

func applyEnemyStatsDefaults(s *EnemyStats) {
	if s.MovementSpeed == 0 {
		s.MovementSpeed = 1
	}
	if s.AttackFrequency == 0 {
		s.AttackFrequency = 1
	}
	if s.AttackDamage == 0 {
		s.AttackDamage = 1
	}
	if s.AttackDistance == 0 {
		s.AttackDistance = 0.5
	}
}

func applyProjectileStatsDefaults(s *ProjectileStats) {
	if s.ActivationTime == 0 {
		s.ActivationTime = 3
	}
	if s.AccelerationTime == 0 {
		s.AccelerationTime = 1
	}
	if s.MaxSpeed == 0 {
		s.MaxSpeed = 3
	}
	if s.Damage == 0 {
		s.Damage = 1
	}
	if s.AttackDistance == 0 {
		s.AttackDistance = 0.5
	}
	if s.AccelerationCurve == "" {
		s.AccelerationCurve = "easeInCubic"
	}
}

// validateMatchConfig 验证对局配置的完整性和合法性
func validateMatchConfig(cfg *MatchConfig) error {
	if err := validateRoute(&cfg.Tree, &cfg.Planting); err != nil {
		return err
	}

	if err := validateWaveSchedule("waves.enemies", cfg.Waves.Enemies); err != nil {
		return err
	}
	if err := validateWaveSchedule("waves.projectiles", cfg.Waves.Projectiles); err != nil {
		return err
	}

	if err := validateStatsTable(&cfg.Stats); err != nil {
		return err
	}

	if cfg.Players.MaxPlayers < 1 {
		return fmt.Errorf("players: maxPlayers must be at least 1, got %d", cfg.Players.MaxPlayers)
	}
	if cfg.Players.MaxHealth < 1 {
		return fmt.Errorf("players: maxHealth must be at least 1, got %d", cfg.Players.MaxHealth)
	}
	if cfg.Arena.SpawnRadius <= 0 || cfg.Arena.ProjectileSpawnRadius <= 0 {
		return fmt.Errorf("arena: spawn radii must be positive")
	}

	// 未配置层级表示该波次类型关闭；配置了但在 halt 策略下不够整条路线使用则拒绝
	reachable := cfg.Planting.reachableStages()
	if err := validateTierCount("waves.enemies", cfg.Waves.Enemies, reachable, "plant cycles"); err != nil {
		return err
	}
	if err := validateTierCount("waves.projectiles", cfg.Waves.Projectiles, cfg.Planting.moves(), "moves"); err != nil {
		return err
	}

	return nil
}

// validateTierCount halt 策略下层级数必须覆盖所有会开启该波次的阶段
func validateTierCount(name string, s WaveSchedule, needed int, unit string) error {
	if s.Exhaustion != ExhaustionHalt || len(s.Tiers) == 0 {
		return nil
	}
	if len(s.Tiers) < needed {
		return fmt.Errorf("%s: %d tiers for %d %s, add tiers or use exhaustion: loop", name, len(s.Tiers), needed, unit)
	}
	return nil
}

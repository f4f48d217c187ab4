package config

import (
	"fmt"

	"github.com/gonewx/heartband/pkg/utils"
)

// TreeConfig 树的属性配置
type TreeConfig struct {
	MaxHealth     float64 `yaml:"maxHealth"`     // 最大生命值，默认 10
	DecaySpeed    float64 `yaml:"decaySpeed"`    // 每秒衰减的生命值，默认 0.1
	PullSpeed     float64 `yaml:"pullSpeed"`     // 牵引合力到速度的系数，默认 0.1
	MaxPlayerDist float64 `yaml:"maxPlayerDist"` // 玩家与树的最大距离（超过则被拉回），默认 4

	// EvolveDurations 每个成长阶段的种植时长（秒），按 growingStage 索引
	EvolveDurations []float64 `yaml:"evolveDurations"`

	// FinalStageThreshold 激活终点所需的最低成长阶段，默认 3
	FinalStageThreshold int `yaml:"finalStageThreshold"`
}

// PlantingPointConfig 单个种植点
type PlantingPointConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Final bool    `yaml:"final"` // 是否为终点
}

// Position 返回种植点坐标
func (p PlantingPointConfig) Position() utils.Vec2 {
	return utils.Vec2{X: p.X, Y: p.Y}
}

// PlantingConfig 种植点与踏板配置
type PlantingConfig struct {
	SlateDistance  float64 `yaml:"slateDistance"`  // 踏板与种植点的距离
	TriggerRadius  float64 `yaml:"triggerRadius"`  // 树进入该半径即视为到达种植点
	HealRange      float64 `yaml:"healRange"`      // 治愈特效最大半径
	FinalHealRange float64 `yaml:"finalHealRange"` // 终点治愈特效最大半径
	HealDuration   float64 `yaml:"healDuration"`   // 治愈特效时长（秒）
	HealCurve      string  `yaml:"healCurve"`      // 治愈特效缓动曲线

	// Points 路线上的种植点，树从第一个点出发
	Points []PlantingPointConfig `yaml:"points"`
}

// ArenaConfig 场地与碰撞半径配置
type ArenaConfig struct {
	SpawnRadius           float64 `yaml:"spawnRadius"`           // 敌人生成环半径（以树为圆心）
	ProjectileSpawnRadius float64 `yaml:"projectileSpawnRadius"` // 投射物生成环半径
	RemainsLifetime       float64 `yaml:"remainsLifetime"`       // 敌人残骸存在时间（秒）
	TreeRadius            float64 `yaml:"treeRadius"`
	EnemyRadius           float64 `yaml:"enemyRadius"`
	ProjectileRadius      float64 `yaml:"projectileRadius"`
	PlayerRadius          float64 `yaml:"playerRadius"`
}

// PlayersConfig 玩家配置
type PlayersConfig struct {
	MaxPlayers     int     `yaml:"maxPlayers"`
	MovementSpeed  float64 `yaml:"movementSpeed"`
	MaxHealth      int     `yaml:"maxHealth"`
	RespawnTime    float64 `yaml:"respawnTime"`
	ShieldDistance float64 `yaml:"shieldDistance"` // 盾牌与玩家中心的距离
	ShieldRadius   float64 `yaml:"shieldRadius"`
	SwordRadius    float64 `yaml:"swordRadius"`    // 剑的攻击半径（以玩家为圆心）
	InteractRadius float64 `yaml:"interactRadius"` // 玩家与踏板的交互半径
}

// reachableStages 返回路线可达的最大成长阶段
// 树从第一个点出发，之后每个非终点种植点各种植一次
func (p *PlantingConfig) reachableStages() int {
	nonFinal := 0
	for _, point := range p.Points {
		if !point.Final {
			nonFinal++
		}
	}
	return nonFinal - 1
}

// moves 返回路线上的移动次数，每次移动开启一次投射物波次
func (p *PlantingConfig) moves() int {
	return len(p.Points) - 1
}

// HasFinalPoint 路线上是否存在终点
func (p *PlantingConfig) HasFinalPoint() bool {
	for _, point := range p.Points {
		if point.Final {
			return true
		}
	}
	return false
}

func applyTreeDefaults(t *TreeConfig) {
	if t.MaxHealth == 0 {
		t.MaxHealth = 10
	}
	if t.DecaySpeed == 0 {
		t.DecaySpeed = 0.1
	}
	if t.PullSpeed == 0 {
		t.PullSpeed = 0.1
	}
	if t.MaxPlayerDist == 0 {
		t.MaxPlayerDist = 4
	}
	if len(t.EvolveDurations) == 0 {
		t.EvolveDurations = []float64{30, 30, 30}
	}
	if t.FinalStageThreshold == 0 {
		t.FinalStageThreshold = 3
	}
}

func applyPlantingDefaults(p *PlantingConfig) {
	if p.SlateDistance == 0 {
		p.SlateDistance = 2.5
	}
	if p.TriggerRadius == 0 {
		p.TriggerRadius = 1.5
	}
	if p.HealRange == 0 {
		p.HealRange = 5
	}
	if p.FinalHealRange == 0 {
		p.FinalHealRange = 300
	}
	if p.HealDuration == 0 {
		p.HealDuration = 5
	}
	if p.HealCurve == "" {
		p.HealCurve = "easeOutCubic"
	}
}

func applyArenaDefaults(a *ArenaConfig) {
	if a.SpawnRadius == 0 {
		a.SpawnRadius = 12
	}
	if a.ProjectileSpawnRadius == 0 {
		a.ProjectileSpawnRadius = 9
	}
	if a.RemainsLifetime == 0 {
		a.RemainsLifetime = 1
	}
	if a.TreeRadius == 0 {
		a.TreeRadius = 0.6
	}
	if a.EnemyRadius == 0 {
		a.EnemyRadius = 0.3
	}
	if a.ProjectileRadius == 0 {
		a.ProjectileRadius = 0.2
	}
	if a.PlayerRadius == 0 {
		a.PlayerRadius = 0.35
	}
}

func applyPlayersDefaults(p *PlayersConfig) {
	if p.MaxPlayers == 0 {
		p.MaxPlayers = 4
	}
	if p.MovementSpeed == 0 {
		p.MovementSpeed = 2
	}
	if p.MaxHealth == 0 {
		p.MaxHealth = 3
	}
	if p.RespawnTime == 0 {
		p.RespawnTime = 5
	}
	if p.ShieldDistance == 0 {
		p.ShieldDistance = 1.2
	}
	if p.ShieldRadius == 0 {
		p.ShieldRadius = 0.5
	}
	if p.SwordRadius == 0 {
		p.SwordRadius = 0.8
	}
	if p.InteractRadius == 0 {
		p.InteractRadius = 0.6
	}
}

// validateRoute 验证树属性与路线是否匹配
// evolveDurations 按 growingStage 索引，长度必须覆盖路线可达的所有阶段
func validateRoute(t *TreeConfig, p *PlantingConfig) error {
	if t.MaxHealth <= 0 {
		return fmt.Errorf("tree: maxHealth must be positive, got %v", t.MaxHealth)
	}
	if t.DecaySpeed < 0 || t.PullSpeed < 0 || t.MaxPlayerDist < 0 {
		return fmt.Errorf("tree: decaySpeed, pullSpeed and maxPlayerDist cannot be negative")
	}
	for i, d := range t.EvolveDurations {
		if d <= 0 {
			return fmt.Errorf("tree: evolveDurations[%d] must be positive, got %v", i, d)
		}
	}

	if len(p.Points) < 2 {
		return fmt.Errorf("planting: at least 2 points are required, got %d", len(p.Points))
	}
	if p.Points[0].Final {
		return fmt.Errorf("planting: the starting point cannot be final")
	}
	for i, point := range p.Points {
		if point.Final && i != len(p.Points)-1 {
			return fmt.Errorf("planting: points[%d]: only the last point may be final", i)
		}
	}
	if _, err := utils.EasingByName(p.HealCurve); err != nil {
		return fmt.Errorf("planting: %w", err)
	}

	reachable := p.reachableStages()
	if reachable < 1 {
		return fmt.Errorf("planting: at least one plant point after the start is required")
	}
	if len(t.EvolveDurations) < reachable {
		return fmt.Errorf("tree: evolveDurations has %d entries, route reaches %d growing stages", len(t.EvolveDurations), reachable)
	}
	if p.HasFinalPoint() && t.FinalStageThreshold > reachable {
		return fmt.Errorf("tree: finalStageThreshold %d is unreachable, route reaches %d growing stages", t.FinalStageThreshold, reachable)
	}

	return nil
}

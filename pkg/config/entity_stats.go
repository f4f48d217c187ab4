package config

import (
	"fmt"

	"github.com/gonewx/heartband/pkg/utils"
)

// EnemyStats 敌人属性（按层级）
type EnemyStats struct {
	MovementSpeed   float64 `yaml:"movementSpeed"`   // 移动速度（单位/秒）
	AttackFrequency float64 `yaml:"attackFrequency"` // 攻击间隔（秒）
	AttackDamage    float64 `yaml:"attackDamage"`    // 每次攻击伤害
	AttackDistance  float64 `yaml:"attackDistance"`  // 攻击距离
}

// ProjectileStats 投射物属性（按层级）
type ProjectileStats struct {
	ActivationTime    float64 `yaml:"activationTime"`    // 生成后静止的时间（秒）
	AccelerationTime  float64 `yaml:"accelerationTime"`  // 从静止加速到最大速度的时间（秒）
	MaxSpeed          float64 `yaml:"maxSpeed"`          // 最大速度（单位/秒）
	Damage            float64 `yaml:"damage"`            // 命中伤害（一次性）
	AttackDistance    float64 `yaml:"attackDistance"`    // 命中判定距离
	AccelerationCurve string  `yaml:"accelerationCurve"` // 加速曲线名称，见 utils.EasingByName
}

// StatsTable 按层级索引的属性表
//
// 层级序号等于对应波次类型已消耗的层级数；超过表长时使用最后一行，
// 因此循环播放的层级会停留在最高难度的属性上。
type StatsTable struct {
	Enemies     []EnemyStats      `yaml:"enemies"`
	Projectiles []ProjectileStats `yaml:"projectiles"`
}

// EnemyStatsFor 获取指定层级的敌人属性
func (t *StatsTable) EnemyStatsFor(tier int) EnemyStats {
	if len(t.Enemies) == 0 {
		return EnemyStats{}
	}
	return t.Enemies[clampIndex(tier, len(t.Enemies))]
}

// ProjectileStatsFor 获取指定层级的投射物属性
func (t *StatsTable) ProjectileStatsFor(tier int) ProjectileStats {
	if len(t.Projectiles) == 0 {
		return ProjectileStats{}
	}
	return t.Projectiles[clampIndex(tier, len(t.Projectiles))]
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// validateStatsTable 验证属性表
func validateStatsTable(t *StatsTable) error {
	if len(t.Enemies) == 0 {
		return fmt.Errorf("stats: at least one enemy row is required")
	}
	if len(t.Projectiles) == 0 {
		return fmt.Errorf("stats: at least one projectile row is required")
	}

	for i, e := range t.Enemies {
		if e.MovementSpeed < 0 {
			return fmt.Errorf("stats enemies[%d]: movementSpeed cannot be negative", i)
		}
		if e.AttackFrequency <= 0 {
			return fmt.Errorf("stats enemies[%d]: attackFrequency must be positive, got %v", i, e.AttackFrequency)
		}
		if e.AttackDamage < 0 {
			return fmt.Errorf("stats enemies[%d]: attackDamage cannot be negative", i)
		}
	}

	for i, p := range t.Projectiles {
		if p.ActivationTime < 0 || p.AccelerationTime < 0 {
			return fmt.Errorf("stats projectiles[%d]: timings cannot be negative", i)
		}
		if p.MaxSpeed <= 0 {
			return fmt.Errorf("stats projectiles[%d]: maxSpeed must be positive, got %v", i, p.MaxSpeed)
		}
		if p.Damage < 0 {
			return fmt.Errorf("stats projectiles[%d]: damage cannot be negative", i)
		}
		if _, err := utils.EasingByName(p.AccelerationCurve); err != nil {
			return fmt.Errorf("stats projectiles[%d]: %w", i, err)
		}
	}

	return nil
}

package components

import (
	"github.com/gonewx/heartband/pkg/config"
	"github.com/gonewx/heartband/pkg/utils"
)

// EnemyComponent 敌人状态
// 属性在生成时按层级从属性表中拷贝，之后不再变化
type EnemyComponent struct {
	Tier        int
	Stats       config.EnemyStats
	AttackTimer float64 // 进入攻击距离后累积的时间（秒）
}

// ProjectileComponent 投射物状态
//
// 生命周期：静止 ActivationTime 秒 → 沿缓动曲线加速 AccelerationTime 秒 → 以 MaxSpeed 巡航
type ProjectileComponent struct {
	Tier  int
	Stats config.ProjectileStats
	Curve utils.EasingFunc

	ActivationTimer   float64
	AccelerationTimer float64
	Speed             float64 // 当前速度（单位/秒）
	Heading           utils.Vec2
}

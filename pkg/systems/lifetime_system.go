package systems

import (
	"github.com/gonewx/heartband/pkg/components"
	"github.com/gonewx/heartband/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
// 过期实体被标记删除；敌人残骸的消散进度同步更新
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		if remains, ok := ecs.GetComponent[*components.RemainsComponent](s.entityManager, id); ok {
			remains.Fade = 0
			if lifetime.MaxLifetime > 0 && !lifetime.IsExpired {
				remains.Fade = 1 - lifetime.CurrentLifetime/lifetime.MaxLifetime
			}
		}

		// 如果已过期,标记实体待删除
		if lifetime.IsExpired {
			s.entityManager.DestroyEntity(id)
		}
	}
}

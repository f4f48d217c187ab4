package systems

import (
	"testing"

	"github.com/gonewx/heartband/pkg/components"
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/entities"
	"github.com/gonewx/heartband/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifetimeUpdate(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: 10.0})

	system.Update(5.0)

	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
	require.True(t, ok)
	assert.Equal(t, 5.0, lifetime.CurrentLifetime)
	assert.False(t, lifetime.IsExpired, "entity should not be expired yet")
	assert.False(t, em.IsMarked(id))
}

func TestLifetimeExpiration(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: 10.0})

	system.Update(12.0)

	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
	require.True(t, ok)
	assert.True(t, lifetime.IsExpired)
	assert.True(t, em.IsMarked(id))

	em.RemoveMarkedEntities()
	assert.False(t, em.IsAlive(id), "expired entity should be removed")
}

func TestMultipleEntitiesWithDifferentLifetimes(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id1 := em.CreateEntity()
	ecs.AddComponent(em, id1, &components.LifetimeComponent{MaxLifetime: 5.0})
	id2 := em.CreateEntity()
	ecs.AddComponent(em, id2, &components.LifetimeComponent{MaxLifetime: 10.0})

	system.Update(7.0)
	em.RemoveMarkedEntities()

	assert.False(t, em.IsAlive(id1), "entity 1 should be removed")
	assert.True(t, em.IsAlive(id2), "entity 2 should still exist")
}

func TestLifetimeRemainsFade(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := entities.NewEnemyRemains(em, utils.Vec2{X: 1, Y: 1}, 1.0)

	system.Update(0.25)
	remains, ok := ecs.GetComponent[*components.RemainsComponent](em, id)
	require.True(t, ok)
	assert.InDelta(t, 0.75, remains.Fade, 1e-9)

	system.Update(0.75)
	assert.Equal(t, 0.0, remains.Fade)
	assert.True(t, em.IsMarked(id))
}

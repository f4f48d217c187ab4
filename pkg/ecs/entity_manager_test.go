package ecs

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	assert.NotEqual(t, id1, id2, "Entity IDs should be unique")

	// 首个槽位、零代数的ID为1
	assert.Equal(t, EntityID(1), id1)
	assert.Equal(t, EntityID(2), id2)
	assert.Equal(t, 2, em.Count())
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 添加组件
	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	// 获取组件
	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	require.True(t, found, "Component should be found")

	retrieved := comp.(*testPositionComponent)
	assert.Equal(t, 100.0, retrieved.X)
	assert.Equal(t, 200.0, retrieved.Y)
}

func TestGenericAccessorsShareStorage(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 泛型写入，反射读取
	AddComponent(em, id, &testPositionComponent{X: 1, Y: 2})
	assert.True(t, em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})))

	// 反射写入，泛型读取
	em.AddComponent(id, &testVelocityComponent{VX: 3})
	vel, ok := GetComponent[*testVelocityComponent](em, id)
	require.True(t, ok)
	assert.Equal(t, 3.0, vel.VX)

	RemoveComponent[*testVelocityComponent](em, id)
	assert.False(t, HasComponent[*testVelocityComponent](em, id))
}

func TestHasComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 未添加组件前应该返回false
	assert.False(t, em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})))

	em.AddComponent(id, &testPositionComponent{})

	// 添加后应该返回true
	assert.True(t, em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})))
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	assert.True(t, em.IsAlive(id), "Entity should still exist before cleanup")
	assert.True(t, em.IsMarked(id))

	// 清理后实体消失
	em.RemoveMarkedEntities()
	assert.False(t, em.IsAlive(id), "Entity should be removed after cleanup")
	assert.Equal(t, 0, em.Count())
}

func TestDestroyEntityTwiceIsSafe(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 同一帧内重复标记不会产生重复的清理记录
	em.DestroyEntity(id)
	em.DestroyEntity(id)
	assert.Len(t, em.entitiesToDestroy, 1)

	em.RemoveMarkedEntities()

	// 清理后再次删除是空操作
	em.DestroyEntity(id)
	em.RemoveMarkedEntities()
	assert.Equal(t, 0, em.Count())
}

func TestStaleIDDoesNotResolveToReusedSlot(t *testing.T) {
	em := NewEntityManager()
	old := em.CreateEntity()
	em.DestroyEntity(old)
	em.RemoveMarkedEntities()

	// 槽位被复用，但代数不同
	fresh := em.CreateEntity()
	require.NotEqual(t, old, fresh)
	assert.Equal(t, old.index(), fresh.index())
	assert.Equal(t, old.generation()+1, fresh.generation())

	AddComponent(em, fresh, &testPositionComponent{X: 7})

	// 旧句柄看不到新实体的组件，也无法删除新实体
	_, ok := GetComponent[*testPositionComponent](em, old)
	assert.False(t, ok)
	em.DestroyEntity(old)
	em.RemoveMarkedEntities()
	assert.True(t, em.IsAlive(fresh))
}

func TestInvalidEntity(t *testing.T) {
	em := NewEntityManager()
	assert.False(t, em.IsAlive(InvalidEntity))
	em.AddComponent(InvalidEntity, &testPositionComponent{})
	assert.False(t, HasComponent[*testPositionComponent](em, InvalidEntity))
	em.DestroyEntity(InvalidEntity)
	em.RemoveMarkedEntities()
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testVelocityComponent{})

	// 查询拥有 Position+Velocity 的实体
	entities := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	assert.Equal(t, []EntityID{id1}, entities)

	// 查询只拥有 Position 的实体，按槽位顺序返回
	posEntities := em.GetEntitiesWith(reflect.TypeOf(&testPositionComponent{}))
	assert.Equal(t, []EntityID{id1, id2}, posEntities)
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()

	// 创建多个实体
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()

	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id2, &testPositionComponent{})
	em.AddComponent(id3, &testPositionComponent{})

	// 标记两个实体删除
	em.DestroyEntity(id1)
	em.DestroyEntity(id3)

	// 清理
	em.RemoveMarkedEntities()

	// 验证只有id2存在
	assert.False(t, em.IsAlive(id1))
	assert.True(t, em.IsAlive(id2))
	assert.False(t, em.IsAlive(id3))
	assert.Equal(t, []EntityID{id2}, GetEntitiesWith1[*testPositionComponent](em))
}

package ecs

import "reflect"

// EntityID 是实体的唯一标识符
//
// 低 32 位为槽位序号（从 1 开始，0 保留为无效ID），高 32 位为槽位代数。
// 槽位被回收复用时代数递增，旧的 EntityID 随之失效，
// 因此持有过期句柄的调用方不会误操作新实体。
type EntityID uint64

// InvalidEntity 无效实体ID
const InvalidEntity EntityID = 0

func makeEntityID(index int, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index+1))
}

// index 返回槽位下标；对 InvalidEntity 返回 -1
func (id EntityID) index() int {
	return int(uint32(id)) - 1
}

// generation 返回槽位代数
func (id EntityID) generation() uint32 {
	return uint32(uint64(id) >> 32)
}

// slot 实体槽位
type slot struct {
	generation uint32
	alive      bool
	marked     bool
	components map[reflect.Type]interface{}
}

// EntityManager 管理所有实体和组件
//
// 存储结构为槽位表（arena）+ 代数计数：
//   - 按 ID 查找为 O(1)，无需线性搜索
//   - 已删除实体的 ID 不会被复用为同一个值
//   - 遍历顺序与槽位顺序一致，结果可复现
type EntityManager struct {
	slots []slot
	// 空闲槽位下标（栈）
	free []int
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
	alive             int
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		slots:             make([]slot, 0, 64),
		free:              make([]int, 0, 16),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	var idx int
	if n := len(em.free); n > 0 {
		idx = em.free[n-1]
		em.free = em.free[:n-1]
	} else {
		em.slots = append(em.slots, slot{})
		idx = len(em.slots) - 1
	}

	s := &em.slots[idx]
	s.alive = true
	s.marked = false
	s.components = make(map[reflect.Type]interface{})
	em.alive++
	return makeEntityID(idx, s.generation)
}

// lookup 返回 ID 对应的存活槽位；过期或无效 ID 返回 nil
func (em *EntityManager) lookup(id EntityID) *slot {
	idx := id.index()
	if idx < 0 || idx >= len(em.slots) {
		return nil
	}
	s := &em.slots[idx]
	if !s.alive || s.generation != id.generation() {
		return nil
	}
	return s
}

// IsAlive 检查实体是否存在（已标记删除但尚未清理的实体仍视为存在）
func (em *EntityManager) IsAlive(id EntityID) bool {
	return em.lookup(id) != nil
}

// IsMarked 检查实体是否已被标记删除
func (em *EntityManager) IsMarked(id EntityID) bool {
	s := em.lookup(id)
	return s != nil && s.marked
}

// Count 返回当前存活实体数量
func (em *EntityManager) Count() int {
	return em.alive
}

// DestroyEntity 标记实体待删除(不立即删除)
// 重复标记或对过期ID调用是安全的空操作
func (em *EntityManager) DestroyEntity(id EntityID) {
	s := em.lookup(id)
	if s == nil || s.marked {
		return
	}
	s.marked = true
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	if s := em.lookup(id); s != nil {
		s.components[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if s := em.lookup(id); s != nil {
		delete(s.components, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if s := em.lookup(id); s != nil {
		if comp, found := s.components[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if s := em.lookup(id); s != nil {
		_, found := s.components[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体
// 槽位代数递增后放回空闲栈
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		s := em.lookup(id)
		if s == nil {
			continue
		}
		s.alive = false
		s.marked = false
		s.components = nil
		s.generation++
		em.free = append(em.free, id.index())
		em.alive--
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表（按槽位顺序）
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for idx := range em.slots {
		s := &em.slots[idx]
		if !s.alive {
			continue
		}
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := s.components[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, makeEntityID(idx, s.generation))
		}
	}

	return result
}

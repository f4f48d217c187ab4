package ecs

import "reflect"

// 泛型访问函数
//
// 组件类型由类型参数推导，调用方无需手写 reflect.TypeOf，
// 同时省去类型断言：
//
//	tree, ok := ecs.GetComponent[*components.TreeComponent](em, id)

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent 为实体添加组件（泛型版本）
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	if s := em.lookup(id); s != nil {
		s.components[typeOf[T]()] = component
	}
}

// GetComponent 获取实体的组件（泛型版本）
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	s := em.lookup(id)
	if s == nil {
		return zero, false
	}
	comp, found := s.components[typeOf[T]()]
	if !found {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 检查实体是否拥有组件（泛型版本）
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	s := em.lookup(id)
	if s == nil {
		return false
	}
	_, found := s.components[typeOf[T]()]
	return found
}

// RemoveComponent 移除实体的组件（泛型版本）
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	if s := em.lookup(id); s != nil {
		delete(s.components, typeOf[T]())
	}
}

// GetEntitiesWith1 查询拥有一种组件的实体
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1]())
}

// GetEntitiesWith2 查询同时拥有两种组件的实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2]())
}

// GetEntitiesWith3 查询同时拥有三种组件的实体
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2](), typeOf[T3]())
}

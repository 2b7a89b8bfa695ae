package ecs

import "reflect"

// 泛型查询辅助函数
//
// 系统代码里大量出现"取某实体的某类型组件"，reflect.TypeOf 样板
// 太啰嗦，这里用泛型包一层。类型参数必须和 AddComponent 时的
// 具体类型一致（通常是指针类型，如 *components.MeteorComponent）。

// typeOf 返回类型参数 T 的 reflect.Type（对指针类型安全）
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetComponent 获取实体的 T 类型组件
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponentByType(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// HasComponent 检查实体是否拥有 T 类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	_, ok := em.GetComponentByType(id, typeOf[T]())
	return ok
}

// GetEntitiesWith1 查询拥有 A 组件的所有实体
func GetEntitiesWith1[A any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[A]())
}

// GetEntitiesWith2 查询同时拥有 A、B 组件的所有实体
func GetEntitiesWith2[A, B any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[A](), typeOf[B]())
}

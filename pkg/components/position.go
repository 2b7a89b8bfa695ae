// Package components 定义 ECS 的纯数据组件
//
// 组件不含方法（数据与行为分离），所有行为在 pkg/systems 中实现。
package components

// PositionComponent 实体的屏幕坐标（逻辑像素）
type PositionComponent struct {
	X float64
	Y float64
}

// Package types 定义共享的基础类型
package types

import "fmt"

// TreeState 定义树的生命周期状态
//
// 状态循环：Waiting → Moving → Planted → Waiting → ...
type TreeState int

const (
	// TreeMoving 移动中：玩家牵引树前往下一个种植点，持续衰减
	TreeMoving TreeState = iota
	// TreePlanted 已种植：树受保护不衰减，进化计时中，敌人波次来袭
	TreePlanted
	// TreeWaiting 等待出发：进化完成，等待玩家在种植点集合
	TreeWaiting
)

// String 返回状态名称（日志和 HUD 使用）
func (s TreeState) String() string {
	switch s {
	case TreeMoving:
		return "moving"
	case TreePlanted:
		return "planted"
	case TreeWaiting:
		return "waiting"
	default:
		return fmt.Sprintf("TreeState(%d)", int(s))
	}
}

// Equipment 玩家在当前树状态下持有的装备
type Equipment int

const (
	// EquipmentSword 剑：击杀敌人
	EquipmentSword Equipment = iota
	// EquipmentShield 盾：格挡投射物（仅在树移动时）
	EquipmentShield
)

// EquipmentFor 根据树状态决定玩家装备
func EquipmentFor(state TreeState) Equipment {
	if state == TreeMoving {
		return EquipmentShield
	}
	return EquipmentSword
}

// String 返回装备名称
func (e Equipment) String() string {
	if e == EquipmentShield {
		return "shield"
	}
	return "sword"
}

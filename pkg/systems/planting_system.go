package systems

import (
	"log"
	"math"

	"github.com/gonewx/heartband/pkg/components"
	"github.com/gonewx/heartband/pkg/config"
	"github.com/gonewx/heartband/pkg/ecs"
	"github.com/gonewx/heartband/pkg/entities"
	"github.com/gonewx/heartband/pkg/utils"
)

// PlantingGate 树状态机轮询种植点所需的接口
type PlantingGate interface {
	IsActivated(point ecs.EntityID) bool
	WasUsed(point ecs.EntityID) bool
	IsFinalPoint(point ecs.EntityID) bool
	SetUsed(point ecs.EntityID, heal bool)
	DeactivateSlates(point ecs.EntityID)
}

// PlantingSystem 种植点与踏板协调系统
//
// 职责：
//   - 按路线创建种植点，按玩家数重建每个种植点的踏板
//   - 多人同时激活判定（所有踏板同时被占用才算激活）
//   - 终点在树成长到阈值前不可激活
//   - 使用后播放治愈特效（半径随时间按缓动曲线增长）
type PlantingSystem struct {
	entityManager  *ecs.EntityManager
	cfg            *config.PlantingConfig
	tree           ecs.EntityID
	finalThreshold int
	interactRadius float64
	healCurve      utils.EasingFunc

	// points 按路线顺序排列
	points []ecs.EntityID
}

// NewPlantingSystem 创建种植系统并按配置创建路线上的所有种植点
//
// 参数：
//   - em: 实体管理器
//   - cfg: 种植点配置（已验证）
//   - tree: 树实体，用于读取成长阶段
//   - finalThreshold: 激活终点所需的成长阶段
//   - interactRadius: 玩家与踏板的交互半径
func NewPlantingSystem(em *ecs.EntityManager, cfg *config.PlantingConfig, tree ecs.EntityID, finalThreshold int, interactRadius float64) *PlantingSystem {
	curve, err := utils.EasingByName(cfg.HealCurve)
	if err != nil {
		log.Printf("[PlantingSystem] Warning: %v, using linear heal curve", err)
		curve = utils.EaseLinear
	}

	s := &PlantingSystem{
		entityManager:  em,
		cfg:            cfg,
		tree:           tree,
		finalThreshold: finalThreshold,
		interactRadius: interactRadius,
		healCurve:      curve,
		points:         make([]ecs.EntityID, 0, len(cfg.Points)),
	}

	for i, p := range cfg.Points {
		id := entities.NewPlantingPoint(em, i, p.Position(), p.Final, cfg.TriggerRadius)
		s.points = append(s.points, id)
	}

	return s
}

// Points 按路线顺序返回所有种植点
func (s *PlantingSystem) Points() []ecs.EntityID {
	return s.points
}

// NextUnusedPoint 返回路线上第一个未使用的种植点
func (s *PlantingSystem) NextUnusedPoint() (ecs.EntityID, bool) {
	for _, id := range s.points {
		if p := s.point(id); p != nil && !p.Used {
			return id, true
		}
	}
	return ecs.InvalidEntity, false
}

func (s *PlantingSystem) point(id ecs.EntityID) *components.PlantingPointComponent {
	p, ok := ecs.GetComponent[*components.PlantingPointComponent](s.entityManager, id)
	if !ok {
		return nil
	}
	return p
}

func (s *PlantingSystem) slate(id ecs.EntityID) *components.PlantingSlateComponent {
	sl, ok := ecs.GetComponent[*components.PlantingSlateComponent](s.entityManager, id)
	if !ok {
		return nil
	}
	return sl
}

func (s *PlantingSystem) growingStage() int {
	tree, ok := ecs.GetComponent[*components.TreeComponent](s.entityManager, s.tree)
	if !ok {
		return 0
	}
	return tree.GrowingStage
}

// finalLocked 终点在成长阶段不足时锁定
func (s *PlantingSystem) finalLocked() bool {
	return s.growingStage() < s.finalThreshold
}

// SlateOffsets 返回 n 名玩家时踏板相对种植点的单位方向（未乘踏板距离）
//
// 1 人：正下方
// 2 人：左下、右下各偏 0.5 后归一化
// 3 人：正下方、左下 ×1.14、右下 ×1.15
// 4 人及以上：均匀分布在下半圆弧上
func SlateOffsets(n int) []utils.Vec2 {
	down := utils.Vec2{X: 0, Y: -1}
	left := utils.Vec2{X: -1, Y: 0}
	right := utils.Vec2{X: 1, Y: 0}

	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []utils.Vec2{down}
	case n == 2:
		return []utils.Vec2{
			down.Add(left.Scale(0.5)).Normalize(),
			down.Add(right.Scale(0.5)).Normalize(),
		}
	case n == 3:
		return []utils.Vec2{
			down,
			down.Add(left).Normalize().Scale(1.14),
			down.Add(right).Normalize().Scale(1.15),
		}
	}

	offsets := make([]utils.Vec2, n)
	for i := range offsets {
		angle := math.Pi + math.Pi*float64(i+1)/float64(n+1)
		offsets[i] = utils.FromAngle(angle)
	}
	return offsets
}

// UpdateSlateCount 将种植点的踏板数量调整为 n
// 数量不变时为空操作；否则销毁全部旧踏板并按新布局重建
func (s *PlantingSystem) UpdateSlateCount(point ecs.EntityID, n int) {
	p := s.point(point)
	if p == nil || len(p.Slates) == n {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, point)
	if !ok {
		return
	}

	for _, slate := range p.Slates {
		s.entityManager.DestroyEntity(slate)
	}

	offsets := SlateOffsets(n)
	p.Slates = make([]ecs.EntityID, 0, len(offsets))
	for _, dir := range offsets {
		slate := entities.NewPlantingSlate(s.entityManager, point, pos.Vec2, dir.Scale(s.cfg.SlateDistance),
			s.interactRadius, p.Used, p.IsFinalPoint)
		p.Slates = append(p.Slates, slate)
	}
}

// UpdateAllSlateCounts 玩家数变化时重建所有种植点的踏板
func (s *PlantingSystem) UpdateAllSlateCounts(n int) {
	for _, point := range s.points {
		s.UpdateSlateCount(point, n)
	}
}

// Slates 返回种植点的踏板
func (s *PlantingSystem) Slates(point ecs.EntityID) []ecs.EntityID {
	if p := s.point(point); p != nil {
		return p.Slates
	}
	return nil
}

// IsFinalPoint 是否为终点
func (s *PlantingSystem) IsFinalPoint(point ecs.EntityID) bool {
	p := s.point(point)
	return p != nil && p.IsFinalPoint
}

// WasUsed 种植点是否视为已使用
// 终点在成长阶段不足时也视为已使用
func (s *PlantingSystem) WasUsed(point ecs.EntityID) bool {
	p := s.point(point)
	if p == nil {
		return true
	}
	return p.Used || (p.IsFinalPoint && s.finalLocked())
}

// IsActivated 种植点是否被激活：未使用、至少一个踏板、且所有踏板同时被占用
func (s *PlantingSystem) IsActivated(point ecs.EntityID) bool {
	if s.WasUsed(point) {
		return false
	}
	p := s.point(point)
	if len(p.Slates) == 0 {
		return false
	}
	for _, id := range p.Slates {
		sl := s.slate(id)
		if sl == nil || !sl.IsActivated() {
			return false
		}
	}
	return true
}

// SetUsed 标记种植点已使用并禁用其所有踏板
// heal 为 false 时不播放治愈特效（起点）
func (s *PlantingSystem) SetUsed(point ecs.EntityID, heal bool) {
	p := s.point(point)
	if p == nil {
		return
	}
	p.Used = true
	p.HealEffect = heal
	p.HealTimer = 0
	for _, id := range p.Slates {
		if sl := s.slate(id); sl != nil {
			sl.Used = true
		}
	}
	log.Printf("[PlantingSystem] Point %d used (heal=%v, final=%v)", p.Index, heal, p.IsFinalPoint)
}

// DeactivateSlates 释放种植点所有踏板上的玩家
func (s *PlantingSystem) DeactivateSlates(point ecs.EntityID) {
	p := s.point(point)
	if p == nil {
		return
	}
	for _, id := range p.Slates {
		s.DeactivateSlate(id)
	}
}

// ActivateSlate 玩家占用踏板
//
// 返回：
//   - bool: 踏板是否被该玩家占用（已使用、已被他人占用、或终点锁定时返回 false）
func (s *PlantingSystem) ActivateSlate(slate, player ecs.EntityID) bool {
	sl := s.slate(slate)
	if sl == nil {
		return false
	}
	if sl.IsFinalPoint && s.finalLocked() {
		return false
	}
	if sl.InteractingPlayer == player {
		return true
	}
	if sl.Used || sl.InteractingPlayer != ecs.InvalidEntity {
		return false
	}
	sl.InteractingPlayer = player
	return true
}

// DeactivateSlate 释放踏板
func (s *PlantingSystem) DeactivateSlate(slate ecs.EntityID) {
	if sl := s.slate(slate); sl != nil {
		sl.InteractingPlayer = ecs.InvalidEntity
	}
}

// ReleasePlayer 释放玩家占用的所有踏板（玩家离开或死亡时）
func (s *PlantingSystem) ReleasePlayer(player ecs.EntityID) {
	for _, point := range s.points {
		p := s.point(point)
		if p == nil {
			continue
		}
		for _, id := range p.Slates {
			if sl := s.slate(id); sl != nil && sl.InteractingPlayer == player {
				sl.InteractingPlayer = ecs.InvalidEntity
			}
		}
	}
}

// HealRadius 种植点当前的治愈特效半径
func (s *PlantingSystem) HealRadius(point ecs.EntityID) float64 {
	if p := s.point(point); p != nil {
		return p.HealRadius
	}
	return 0
}

// Update 推进治愈特效
// 半径 = 缓动曲线(计时/时长) × 最大半径，终点使用 finalHealRange
func (s *PlantingSystem) Update(dt float64) {
	for _, id := range s.points {
		p := s.point(id)
		if p == nil || !p.Used || !p.HealEffect || p.HealTimer > s.cfg.HealDuration {
			continue
		}

		p.HealTimer += dt
		maxRadius := s.cfg.HealRange
		if p.IsFinalPoint {
			maxRadius = s.cfg.FinalHealRange
		}
		progress := 1.0
		if s.cfg.HealDuration > 0 {
			progress = p.HealTimer / s.cfg.HealDuration
		}
		p.HealRadius = s.healCurve.Evaluate(progress) * maxRadius
	}
}

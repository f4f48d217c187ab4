package game

import (
	"github.com/gonewx/heartband/pkg/systems"
	"github.com/gonewx/heartband/pkg/types"
	"github.com/gonewx/heartband/pkg/utils"
)

// slateArriveDist 机器人认为已站上踏板的距离
const slateArriveDist = 0.2

// Bot 脚本化玩家，用于无界面模拟和桌面端补位
//
// 策略：
//   - Waiting / Moving：树不在下一个种植点的触发区内时走向种植点把树牵过去，
//     否则走向分配给自己的踏板，到达后按住交互键；朝向最近的运动中投射物
//   - Planted：在 GuardRadius 内追击最近的敌人，否则回到树旁
type Bot struct {
	Index int
	// GuardRadius 种植阶段以树为圆心的追击范围
	GuardRadius float64
}

// NewBot 创建机器人
func NewBot(index int) *Bot {
	return &Bot{Index: index, GuardRadius: 6}
}

// Input 根据快照决定本 tick 的输入
func (b *Bot) Input(snap *Snapshot) systems.PlayerInput {
	self, ok := snap.Player(b.Index)
	if !ok || self.Dead || snap.Outcome != types.OutcomeRunning {
		return systems.PlayerInput{}
	}

	if snap.Tree.State == types.TreePlanted {
		return b.guard(snap, self)
	}

	input := systems.PlayerInput{}
	if threat, ok := nearestMoving(snap.Projectiles, self.Pos); ok {
		input.Look = threat.Sub(self.Pos)
	}

	point, ok := snap.NextPoint()
	if !ok {
		return input
	}

	// 树还没进入种植点触发区时，先把树牵过去
	if snap.Tree.Pos.Dist(point.Pos) > point.Radius {
		input.Move = moveToward(self.Pos, point.Pos)
		if input.Look.LenSq() == 0 {
			input.Look = input.Move
		}
		return input
	}

	slate, ok := b.assignedSlate(point, snap)
	if !ok {
		return input
	}
	input.Move = moveToward(self.Pos, slate.Pos)
	if input.Look.LenSq() == 0 {
		input.Look = input.Move
	}
	input.Interact = self.Pos.Dist(slate.Pos) <= slate.Radius
	return input
}

// assignedSlate 按玩家编号在种植点的踏板中分配一个
func (b *Bot) assignedSlate(point PointView, snap *Snapshot) (SlateView, bool) {
	if len(point.Slates) == 0 {
		return SlateView{}, false
	}
	slot := 0
	for _, p := range snap.Players {
		if p.Index < b.Index {
			slot++
		}
	}
	return point.Slates[slot%len(point.Slates)], true
}

func (b *Bot) guard(snap *Snapshot, self PlayerView) systems.PlayerInput {
	best := -1.0
	var target utils.Vec2
	for _, e := range snap.Enemies {
		if e.Pos.Dist(snap.Tree.Pos) > b.GuardRadius {
			continue
		}
		d := e.Pos.Dist(self.Pos)
		if best < 0 || d < best {
			best = d
			target = e.Pos
		}
	}
	if best < 0 {
		home := snap.Tree.Pos.Sub(self.Pos)
		if home.Len() <= snap.Tree.Radius*2 {
			return systems.PlayerInput{}
		}
		return systems.PlayerInput{Move: home, Look: home}
	}
	dir := target.Sub(self.Pos)
	return systems.PlayerInput{Move: dir, Look: dir}
}

// moveToward 到达 slateArriveDist 以内时停下
func moveToward(from, to utils.Vec2) utils.Vec2 {
	d := to.Sub(from)
	if d.Len() <= slateArriveDist {
		return utils.Vec2{}
	}
	return d
}

func nearestMoving(agents []AgentView, from utils.Vec2) (utils.Vec2, bool) {
	best := -1.0
	var pos utils.Vec2
	for _, a := range agents {
		if !a.Moving {
			continue
		}
		if d := a.Pos.Dist(from); best < 0 || d < best {
			best = d
			pos = a.Pos
		}
	}
	return pos, best >= 0
}

package app

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gonewx/heartband/pkg/game"
	"github.com/gonewx/heartband/pkg/types"
	"github.com/gonewx/heartband/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// pixelsPerUnit 场地单位到像素的缩放
const pixelsPerUnit = 24

var (
	colorGround     = color.RGBA{R: 52, G: 78, B: 48, A: 255}
	colorPoint      = color.RGBA{R: 200, G: 190, B: 120, A: 255}
	colorPointUsed  = color.RGBA{R: 110, G: 110, B: 90, A: 255}
	colorPointFinal = color.RGBA{R: 250, G: 220, B: 80, A: 255}
	colorHeal       = color.RGBA{R: 120, G: 230, B: 140, A: 90}
	colorSlate      = color.RGBA{R: 150, G: 150, B: 170, A: 255}
	colorSlateOn    = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	colorTree       = color.RGBA{R: 60, G: 170, B: 70, A: 255}
	colorEnemy      = color.RGBA{R: 210, G: 70, B: 60, A: 255}
	colorProjectile = color.RGBA{R: 240, G: 140, B: 40, A: 255}
	colorIdle       = color.RGBA{R: 160, G: 120, B: 80, A: 255}
	colorShield     = color.RGBA{R: 180, G: 200, B: 255, A: 200}
	colorSword      = color.RGBA{R: 240, G: 240, B: 240, A: 160}
)

// playerColors 按玩家编号区分颜色
var playerColors = []color.RGBA{
	{R: 80, G: 160, B: 255, A: 255},
	{R: 255, G: 110, B: 180, A: 255},
	{R: 255, G: 230, B: 90, A: 255},
	{R: 170, G: 110, B: 255, A: 255},
}

// camera 以树为中心的世界坐标 → 屏幕坐标变换（世界 y 轴向上）
type camera struct {
	center utils.Vec2
}

func (c camera) toScreen(p utils.Vec2) (float32, float32) {
	x := (p.X-c.center.X)*pixelsPerUnit + ScreenWidth/2
	y := -(p.Y-c.center.Y)*pixelsPerUnit + ScreenHeight/2
	return float32(x), float32(y)
}

func scaled(r float64) float32 {
	return float32(r * pixelsPerUnit)
}

func fillCircle(dst *ebiten.Image, cam camera, p utils.Vec2, r float64, clr color.Color) {
	x, y := cam.toScreen(p)
	vector.FillCircle(dst, x, y, scaled(r), clr, true)
}

func strokeCircle(dst *ebiten.Image, cam camera, p utils.Vec2, r float64, clr color.Color) {
	x, y := cam.toScreen(p)
	vector.StrokeCircle(dst, x, y, scaled(r), 2, clr, true)
}

// withAlpha 按 [0,1] 缩放颜色透明度
func withAlpha(c color.RGBA, a float64) color.RGBA {
	a = utils.Clamp(a, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// drawWorld 绘制场地中的所有实体
func drawWorld(screen *ebiten.Image, snap *game.Snapshot) {
	screen.Fill(colorGround)
	cam := camera{center: snap.Tree.Pos}

	for i, p := range snap.Points {
		if i > 0 {
			x0, y0 := cam.toScreen(snap.Points[i-1].Pos)
			x1, y1 := cam.toScreen(p.Pos)
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, colorPointUsed, true)
		}
		if p.HealRadius > 0 {
			fillCircle(screen, cam, p.Pos, p.HealRadius, colorHeal)
		}
		clr := colorPoint
		switch {
		case p.Used:
			clr = colorPointUsed
		case p.Final:
			clr = colorPointFinal
		}
		strokeCircle(screen, cam, p.Pos, p.Radius, clr)
		for _, s := range p.Slates {
			slateClr := colorSlate
			if s.Occupied {
				slateClr = colorSlateOn
			}
			if s.Used {
				slateClr = colorPointUsed
			}
			fillCircle(screen, cam, s.Pos, s.Radius*0.6, slateClr)
		}
	}

	for _, r := range snap.Remains {
		fillCircle(screen, cam, r.Pos, 0.3, withAlpha(colorEnemy, r.Fade*0.6))
	}

	fillCircle(screen, cam, snap.Tree.Pos, snap.Tree.Radius*(1+0.25*float64(snap.Tree.GrowingStage)), colorTree)

	for _, e := range snap.Enemies {
		fillCircle(screen, cam, e.Pos, e.Radius, colorEnemy)
	}
	for _, p := range snap.Projectiles {
		clr := colorProjectile
		if !p.Moving {
			clr = colorIdle
		}
		fillCircle(screen, cam, p.Pos, p.Radius, clr)
	}

	for _, p := range snap.Players {
		clr := playerColors[p.Index%len(playerColors)]
		if p.Dead {
			strokeCircle(screen, cam, p.Pos, p.Radius, withAlpha(clr, 0.5))
			continue
		}
		fillCircle(screen, cam, p.Pos, p.Radius, clr)
		if p.HasShield {
			strokeCircle(screen, cam, p.Shield, 0.5, colorShield)
		} else if p.Equipment == types.EquipmentSword {
			x0, y0 := cam.toScreen(p.Pos)
			x1, y1 := cam.toScreen(p.Pos.Add(p.LookDir.Scale(0.8)))
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, colorSword, true)
		}
	}
}

// drawHUD 绘制左上角状态文字
func drawHUD(screen *ebiten.Image, snap *game.Snapshot, bestStage int, showHelp bool) {
	var b strings.Builder
	fmt.Fprintf(&b, "Tree: %s  HP %.1f/%.0f  Stage %d  (best %d)\n",
		snap.Tree.State, snap.Tree.Health, snap.Tree.MaxHealth, snap.Tree.GrowingStage, bestStage)
	if snap.Tree.State == types.TreePlanted {
		fmt.Fprintf(&b, "Growing: %.1fs\n", snap.Tree.EvolveTimer)
	}
	fmt.Fprintf(&b, "Wave: %s  (%d alive)\n", snap.ActiveWave, snap.Population)
	for _, p := range snap.Players {
		status := fmt.Sprintf("HP %d/%d %s", p.Health, p.MaxHealth, p.Equipment)
		if p.Dead {
			status = "respawning"
		}
		fmt.Fprintf(&b, "P%d: %s\n", p.Index+1, status)
	}
	if showHelp {
		b.WriteString("WASD move  Arrows look  Space interact  B/N add/remove bot  H help  F11 fullscreen\n")
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 8, 8)

	if snap.Outcome == types.OutcomeRunning {
		return
	}
	vector.FillRect(screen, 0, 0, ScreenWidth, ScreenHeight, color.RGBA{A: 150}, false)
	msg := "THE TREE HAS FALLEN"
	if snap.Outcome == types.OutcomeVictory {
		msg = "THE TREE HAS TAKEN ROOT"
	}
	ebitenutil.DebugPrintAt(screen, msg, ScreenWidth/2-70, ScreenHeight/2-10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Stage %d in %.0fs - press R to restart", snap.Tree.GrowingStage, snap.Elapsed),
		ScreenWidth/2-120, ScreenHeight/2+10)
}

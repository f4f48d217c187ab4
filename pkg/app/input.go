package app

import (
	"github.com/gonewx/heartband/pkg/systems"
	"github.com/gonewx/heartband/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// keyAxis 两个按键组成的 -1/0/1 轴
func keyAxis(negative, positive ebiten.Key) float64 {
	v := 0.0
	if ebiten.IsKeyPressed(negative) {
		v--
	}
	if ebiten.IsKeyPressed(positive) {
		v++
	}
	return v
}

// keyboardInput 读取键盘玩家的输入
//
// WASD 移动，方向键控制朝向（不按时朝向跟随移动方向），空格交互。
// 世界坐标 y 轴向上，因此 W / ↑ 为 +y。
func keyboardInput() systems.PlayerInput {
	move := utils.Vec2{
		X: keyAxis(ebiten.KeyA, ebiten.KeyD),
		Y: keyAxis(ebiten.KeyS, ebiten.KeyW),
	}
	look := utils.Vec2{
		X: keyAxis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight),
		Y: keyAxis(ebiten.KeyArrowDown, ebiten.KeyArrowUp),
	}
	if look.LenSq() == 0 {
		look = move
	}
	return systems.PlayerInput{
		Move:     move,
		Look:     look,
		Interact: ebiten.IsKeyPressed(ebiten.KeySpace),
	}
}

package utils

import (
	"fmt"
	"math"
)

// EasingFunc 缓动函数：输入进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]
//
// 投射物加速曲线、种植点治愈扩散动画都通过名称引用缓动函数，
// 这样配置文件可以直接写曲线名。
//
// 参考：https://easings.net/
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（匀速）
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInCubic 三次方缓入
// 特点：开始慢，结束快（投射物起步加速的默认曲线）
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（治愈范围扩散的默认曲线）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

var easingByName = map[string]EasingFunc{
	"linear":         EaseLinear,
	"easeInQuad":     EaseInQuad,
	"easeOutQuad":    EaseOutQuad,
	"easeInCubic":    EaseInCubic,
	"easeOutCubic":   EaseOutCubic,
	"easeInOutCubic": EaseInOutCubic,
}

// EasingByName 根据配置名称查找缓动函数
// 空名称返回线性缓动
func EasingByName(name string) (EasingFunc, error) {
	if name == "" {
		return EaseLinear, nil
	}
	fn, ok := easingByName[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing curve %q", name)
	}
	return fn, nil
}

// Evaluate 在 t 被限制到 [0, 1] 后求值
func (f EasingFunc) Evaluate(t float64) float64 {
	return f(Clamp(t, 0, 1))
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

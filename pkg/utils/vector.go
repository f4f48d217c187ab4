package utils

import "math"

// Vec2 二维向量（世界坐标，单位与配置一致）
type Vec2 struct {
	X, Y float64
}

// Add 向量加法
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub 向量减法
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale 数乘
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len 向量长度
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// LenSq 长度平方
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Normalize 单位化；零向量返回零向量
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// ClampLen 将长度限制在 limit 以内，方向不变
func (v Vec2) ClampLen(limit float64) Vec2 {
	if l := v.Len(); l > limit && l > 0 {
		return v.Scale(limit / l)
	}
	return v
}

// Dist 两点距离
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// FromAngle 单位圆上角度为 rad 的点
func FromAngle(rad float64) Vec2 {
	return Vec2{math.Cos(rad), math.Sin(rad)}
}

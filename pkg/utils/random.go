package utils

import (
	"math"
	"math/rand"
)

// RandomSource 模拟使用的随机数源
//
// 对局内的所有随机抽取（生成角度、爆发数量、爆发间隔）都来自同一个注入的
// *rand.Rand，同一种子可复现同一局。
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

var _ RandomSource = (*rand.Rand)(nil)

// NewRandom 创建带种子的随机数源；seed 为 0 时使用 1
func NewRandom(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

// RandIntInclusive 在闭区间 [lo, hi] 内均匀抽取整数
// hi <= lo 时返回 lo
func RandIntInclusive(r RandomSource, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// RandFloatInclusive 在闭区间 [lo, hi] 内抽取浮点数
// hi <= lo 时返回 lo
func RandFloatInclusive(r RandomSource, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return Clamp(lo+r.Float64()*(hi-lo), lo, hi)
}

// RandAngle 在 [0, 2π) 内抽取角度
func RandAngle(r RandomSource) float64 {
	return r.Float64() * 2 * math.Pi
}

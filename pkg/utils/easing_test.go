package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEasingEndpoints 所有缓动函数都应满足 f(0)=0, f(1)=1
func TestEasingEndpoints(t *testing.T) {
	for name, fn := range easingByName {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0.0, fn(0), 1e-9)
			assert.InDelta(t, 1.0, fn(1), 1e-9)
		})
	}
}

// TestEasingMidpoints 测试中点取值
func TestEasingMidpoints(t *testing.T) {
	tests := []struct {
		name     string
		fn       EasingFunc
		expected float64
	}{
		{"线性", EaseLinear, 0.5},
		{"二次缓入", EaseInQuad, 0.25},
		{"二次缓出", EaseOutQuad, 0.75},
		{"三次缓入", EaseInCubic, 0.125},
		{"三次缓出", EaseOutCubic, 0.875}, // 1 - (1-0.5)^3
		{"三次缓入缓出", EaseInOutCubic, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.fn(0.5), 0.001)
		})
	}
}

func TestEasingByName(t *testing.T) {
	fn, err := EasingByName("easeInCubic")
	require.NoError(t, err)
	assert.InDelta(t, 0.125, fn(0.5), 1e-9)

	// 空名称默认线性
	fn, err = EasingByName("")
	require.NoError(t, err)
	assert.InDelta(t, 0.3, fn(0.3), 1e-9)

	_, err = EasingByName("bounce")
	assert.Error(t, err)
}

func TestEvaluateClampsInput(t *testing.T) {
	f := EasingFunc(EaseInQuad)
	assert.Equal(t, 1.0, f.Evaluate(3))
	assert.Equal(t, 0.0, f.Evaluate(-1))
}

func TestLerp(t *testing.T) {
	assert.Equal(t, 10.0, Lerp(10, 20, 0))
	assert.Equal(t, 15.0, Lerp(10, 20, 0.5))
	assert.Equal(t, 20.0, Lerp(10, 20, 1))
}

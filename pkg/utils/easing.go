package utils

import (
	"math"
	"strings"
)

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 命名沿用 "powerN" 约定：powerN 缓出 = 1 - (1-t)^(N+1)。
// 参考：https://easings.net/

// EaseFunc 缓动函数类型
type EaseFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutQuad 二次方缓出（power1）
// 特点：开始较快，结束慢
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseOutCubic 三次方缓出（power2）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseOutQuart 四次方缓出（power3）
// 特点：开始非常快，迅速减速（适合淡出收尾）
// 公式：f(t) = 1 - (1-t)⁴
func EaseOutQuart(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u*u
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseInOutCubic 三次方缓入缓出
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

var easeByName = map[string]EaseFunc{
	"none":         EaseLinear,
	"linear":       EaseLinear,
	"power1":       EaseOutQuad,
	"power1.out":   EaseOutQuad,
	"power1.in":    EaseInQuad,
	"power2":       EaseOutCubic,
	"power2.out":   EaseOutCubic,
	"power2.inout": EaseInOutCubic,
	"power3":       EaseOutQuart,
	"power3.out":   EaseOutQuart,
}

// EaseByName 按名称查找缓动函数（不区分大小写）
// 未知名称返回 (EaseLinear, false)
func EaseByName(name string) (EaseFunc, bool) {
	fn, ok := easeByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return EaseLinear, false
	}
	return fn, true
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

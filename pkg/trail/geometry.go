package trail

import "math"

// Vec2 二维点（容器局部坐标，单位：逻辑像素）
type Vec2 struct {
	X, Y float64
}

// Sub 返回 v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Distance 返回两点之间的欧氏距离
func Distance(a, b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Size 槽位的包围盒尺寸
type Size struct {
	W, H float64
}

// Half 返回尺寸的一半，用于居中计算
func (s Size) Half() Vec2 {
	return Vec2{X: s.W / 2, Y: s.H / 2}
}

// Rect 轴对齐矩形（屏幕坐标）
type Rect struct {
	X, Y, W, H float64
}

// Min 返回左上角
func (r Rect) Min() Vec2 {
	return Vec2{X: r.X, Y: r.Y}
}

// Contains 判断点是否在矩形内
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Localize 将屏幕坐标转换为相对于 r 左上角的局部坐标
func (r Rect) Localize(p Vec2) Vec2 {
	return p.Sub(r.Min())
}

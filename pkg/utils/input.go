// Package utils 提供通用工具函数
package utils

import "slices"

// Touch 一个活动触摸点（屏幕坐标）
type Touch struct {
	ID   int
	X, Y int
}

// PointerSample 某一帧的指针快照，由宿主从 ebiten 读取
type PointerSample struct {
	CursorX, CursorY int
	// Touches 按触摸 ID 升序排列，第一个为主触摸点
	Touches []Touch
}

// PointerHint 提示用户如何驱动轨迹
func PointerHint() string {
	if IsMobile() {
		return "drag a finger across the screen"
	}
	return "move the mouse across the window"
}

// MoveKind 指针移动类型
type MoveKind int

const (
	// MoveMouse 光标位置变化
	MoveMouse MoveKind = iota
	// MoveTouch 主触摸点移动
	MoveTouch
)

// PointerMove 一次移动事件
type PointerMove struct {
	Kind MoveKind
	X, Y int
	// Touches 仅 MoveTouch 时有值，主触摸点在前
	Touches []Touch
}

// MoveDetector 把逐帧采样转换为移动事件
//
// 光标只在位置变化时产生事件；首帧只记录位置。
// 触摸只在同一个主触摸点移动时产生事件，新按下的触摸不算移动。
// 有触摸时忽略光标，避免移动端的合成鼠标位置重复触发。
type MoveDetector struct {
	primed   bool
	lastX    int
	lastY    int
	lastMain *Touch
}

// NewMoveDetector 创建移动检测器
func NewMoveDetector() *MoveDetector {
	return &MoveDetector{}
}

// Detect 对比上一帧，返回本帧的移动事件（最多一个）
func (d *MoveDetector) Detect(s PointerSample) (PointerMove, bool) {
	defer func() {
		d.primed = true
		d.lastX, d.lastY = s.CursorX, s.CursorY
		if len(s.Touches) > 0 {
			main := s.Touches[0]
			d.lastMain = &main
		} else {
			d.lastMain = nil
		}
	}()

	if len(s.Touches) > 0 {
		main := s.Touches[0]
		if d.lastMain == nil || d.lastMain.ID != main.ID {
			return PointerMove{}, false
		}
		if d.lastMain.X == main.X && d.lastMain.Y == main.Y {
			return PointerMove{}, false
		}
		return PointerMove{
			Kind:    MoveTouch,
			X:       main.X,
			Y:       main.Y,
			Touches: slices.Clone(s.Touches),
		}, true
	}

	if !d.primed || (s.CursorX == d.lastX && s.CursorY == d.lastY) {
		return PointerMove{}, false
	}
	return PointerMove{Kind: MoveMouse, X: s.CursorX, Y: s.CursorY}, true
}

// Reset 丢弃历史，下一帧重新记录
func (d *MoveDetector) Reset() {
	*d = MoveDetector{}
}

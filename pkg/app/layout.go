package app

import (
	"fmt"
	"strings"

	"github.com/decker502/imagetrail/pkg/trail"
	"github.com/decker502/imagetrail/pkg/utils"
)

// ContainerRect 窗口内扣除内边距后的轨迹容器
// 内边距超过窗口一半时容器退化为中心的一条线
func ContainerRect(w, h int, inset float64) trail.Rect {
	fw, fh := float64(w), float64(h)
	ix := min(inset, fw/2)
	iy := min(inset, fh/2)
	return trail.Rect{X: ix, Y: iy, W: fw - 2*ix, H: fh - 2*iy}
}

// ResolveVariant 选择启动时的变体
// 优先级：命令行 > 已保存的设置 > 配置文件；0 表示未指定
func ResolveVariant(flagVariant, savedVariant, configured int) int {
	switch {
	case flagVariant > 0:
		return flagVariant
	case savedVariant > 0:
		return savedVariant
	case configured > 0:
		return configured
	}
	return trail.DefaultVariant
}

// Status 调试面板显示的状态
type Status struct {
	Variant    int
	Variants   []int
	Slots      int
	Loaded     int
	Cursor     int
	Active     int
	Idle       bool
	ZIndex     int
	Reveals    int
	TPS        float64
	Persistent bool
	Hint       string
}

// HUDText 格式化调试面板文字
func HUDText(s Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "variant %d %v  slots %d/%d  tps %.0f\n", s.Variant, s.Variants, s.Loaded, s.Slots, s.TPS)
	fmt.Fprintf(&b, "cursor %d  active %d  idle %v  z %d  reveals %d\n", s.Cursor, s.Active, s.Idle, s.ZIndex, s.Reveals)
	if !s.Persistent {
		b.WriteString("settings: memory only\n")
	}
	b.WriteString("1-9 variant  R remount  H hud  F11 fullscreen\n")
	if s.Hint != "" {
		b.WriteString(s.Hint)
		b.WriteString("\n")
	}
	return b.String()
}

// PointerEvent 把检测到的指针移动转换为容器事件
// 与浏览器一致，只有落在容器内的移动才会派发
func PointerEvent(mv utils.PointerMove, bounds trail.Rect) (trail.Event, bool) {
	ev := trail.Event{Kind: trail.EventMouseMove, X: float64(mv.X), Y: float64(mv.Y)}
	if mv.Kind == utils.MoveTouch {
		ev.Kind = trail.EventTouchMove
		for _, t := range mv.Touches {
			ev.Touches = append(ev.Touches, trail.Vec2{X: float64(t.X), Y: float64(t.Y)})
		}
	}
	if !bounds.Contains(trail.Vec2{X: ev.X, Y: ev.Y}) {
		return trail.Event{}, false
	}
	return ev, true
}

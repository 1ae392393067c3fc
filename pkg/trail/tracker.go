package trail

// PointerTracker 跟踪容器内的指针位置
//
// 订阅容器的鼠标/触摸移动事件，把屏幕坐标换算成容器局部坐标后保存为 current。
// 它只记录位置，不驱动动画。
type PointerTracker struct {
	container Container
	current   Vec2
	seen      bool
	ids       []ListenerID
}

// NewPointerTracker 创建跟踪器并订阅容器事件
func NewPointerTracker(c Container) *PointerTracker {
	t := &PointerTracker{container: c}
	t.ids = append(t.ids,
		c.AddListener(EventMouseMove, t.handleMove),
		c.AddListener(EventTouchMove, t.handleMove),
	)
	return t
}

func (t *PointerTracker) handleMove(ev Event) {
	if p, ok := t.Localize(ev); ok {
		t.current = p
		t.seen = true
	}
}

// Localize 将事件坐标换算到容器的当前包围矩形
// 没有触点的触摸事件返回 ok=false
func (t *PointerTracker) Localize(ev Event) (Vec2, bool) {
	var screen Vec2
	switch ev.Kind {
	case EventTouchMove:
		if len(ev.Touches) == 0 {
			return Vec2{}, false
		}
		screen = ev.Touches[0]
	case EventMouseMove:
		screen = Vec2{X: ev.X, Y: ev.Y}
	default:
		return Vec2{}, false
	}
	return t.container.Bounds().Localize(screen), true
}

// Current 最近一次的指针位置（局部坐标）
func (t *PointerTracker) Current() Vec2 {
	return t.current
}

// Seen 是否收到过有效的移动事件
func (t *PointerTracker) Seen() bool {
	return t.seen
}

// Close 移除所有监听器
func (t *PointerTracker) Close() {
	for _, id := range t.ids {
		t.container.RemoveListener(id)
	}
	t.ids = nil
}

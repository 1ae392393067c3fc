package trail

// EventKind 容器上可订阅的事件类型
type EventKind int

const (
	// EventMouseMove 鼠标移动
	EventMouseMove EventKind = iota
	// EventTouchMove 触摸移动
	EventTouchMove
	// EventResize 视口尺寸变化
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventMouseMove:
		return "mousemove"
	case EventTouchMove:
		return "touchmove"
	case EventResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Event 容器事件
//
// 鼠标事件使用 X/Y；触摸事件使用 Touches（按触点顺序，第一个为主触点）。
// 坐标都是屏幕坐标。
type Event struct {
	Kind    EventKind
	X, Y    float64
	Touches []Vec2
}

// Listener 事件回调
type Listener func(ev Event)

// ListenerID 监听器句柄，用于移除
type ListenerID uint64

// Container 轨迹所在的有界元素
type Container interface {
	// Bounds 随时返回当前的包围矩形（屏幕坐标）
	Bounds() Rect
	AddListener(kind EventKind, fn Listener) ListenerID
	RemoveListener(id ListenerID)
}

type listenerEntry struct {
	id   ListenerID
	kind EventKind
	fn   Listener
}

// Surface 是 Container 的默认实现
//
// 宿主负责调用 SetBounds 和 Dispatch；监听器按注册顺序同步调用。
type Surface struct {
	bounds    Rect
	nextID    ListenerID
	listeners []listenerEntry
}

// NewSurface 创建一个指定包围矩形的容器
func NewSurface(bounds Rect) *Surface {
	return &Surface{bounds: bounds, nextID: 1}
}

// Bounds 实现 Container
func (s *Surface) Bounds() Rect {
	return s.bounds
}

// SetBounds 更新包围矩形（不会触发 resize 事件）
func (s *Surface) SetBounds(r Rect) {
	s.bounds = r
}

// AddListener 实现 Container
func (s *Surface) AddListener(kind EventKind, fn Listener) ListenerID {
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listenerEntry{id: id, kind: kind, fn: fn})
	return id
}

// RemoveListener 实现 Container；重复移除是安全的
func (s *Surface) RemoveListener(id ListenerID) {
	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount 返回指定类型的监听器数量
func (s *Surface) ListenerCount(kind EventKind) int {
	n := 0
	for _, l := range s.listeners {
		if l.kind == kind {
			n++
		}
	}
	return n
}

// Dispatch 将事件派发给所有同类监听器
//
// 派发前对监听器列表做快照，回调中移除自身或其他监听器不会影响本次派发。
func (s *Surface) Dispatch(ev Event) {
	snapshot := make([]listenerEntry, 0, len(s.listeners))
	for _, l := range s.listeners {
		if l.kind == ev.Kind {
			snapshot = append(snapshot, l)
		}
	}
	for _, l := range snapshot {
		l.fn(ev)
	}
}

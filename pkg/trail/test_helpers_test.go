package trail

import "testing"

const frameDT = 1.0 / 60.0

// recordingObserver 记录所有轨迹事件
type recordingObserver struct {
	reveals  []RevealEvent
	activity []activitySample
}

type activitySample struct {
	active int
	idle   bool
}

func (o *recordingObserver) Revealed(ev RevealEvent) {
	o.reveals = append(o.reveals, ev)
}

func (o *recordingObserver) ActivityChanged(active int, idle bool) {
	o.activity = append(o.activity, activitySample{active: active, idle: idle})
}

// harness 组装一个挂载好的变体 1 控制器
type harness struct {
	t         *testing.T
	surface   *Surface
	pool      *Pool
	scheduler *FrameScheduler
	observer  *recordingObserver
	ctrl      *Controller
	slotSize  Size
}

func newHarness(t *testing.T, slots int) *harness {
	t.Helper()
	sources := make([]string, slots)
	for i := range sources {
		sources[i] = "assets/images/test.png"
	}
	h := &harness{
		t:         t,
		surface:   NewSurface(Rect{X: 100, Y: 50, W: 800, H: 600}),
		pool:      NewPool(sources),
		scheduler: NewFrameScheduler(),
		observer:  &recordingObserver{},
		slotSize:  Size{W: 190, H: 172},
	}
	tr, err := Mount(1, Env{
		Container: h.surface,
		Pool:      h.pool,
		Scheduler: h.scheduler,
		Measure:   func(int) (Size, bool) { return h.slotSize, true },
		Options:   DefaultOptions(),
		Observer:  h.observer,
	})
	if err != nil {
		t.Fatalf("Mount() error: %v", err)
	}
	ctrl, ok := tr.(*Controller)
	if !ok {
		t.Fatalf("Mount(1) returned %T, want *Controller", tr)
	}
	h.ctrl = ctrl
	return h
}

// moveLocal 以容器局部坐标派发鼠标移动
func (h *harness) moveLocal(x, y float64) {
	b := h.surface.Bounds()
	h.surface.Dispatch(Event{Kind: EventMouseMove, X: b.X + x, Y: b.Y + y})
}

func (h *harness) frames(n int) {
	for i := 0; i < n; i++ {
		h.scheduler.Pump(frameDT)
	}
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}

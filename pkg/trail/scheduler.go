package trail

// FrameID 帧请求句柄
type FrameID uint64

// FrameCallback 帧回调，dt 为距上一帧的时间（秒）
type FrameCallback func(dt float64)

// Scheduler 逐帧调度器（语义同 requestAnimationFrame）
type Scheduler interface {
	RequestFrame(fn FrameCallback) FrameID
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id        FrameID
	fn        FrameCallback
	cancelled bool
}

// FrameScheduler 由宿主每帧调用 Pump 驱动的调度器
//
// 每次 Pump 只执行调用前已登记的请求；回调中新登记的请求留到下一帧。
type FrameScheduler struct {
	nextID  FrameID
	pending []*frameRequest
	running []*frameRequest
	frame   uint64
}

// NewFrameScheduler 创建调度器
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{nextID: 1}
}

// RequestFrame 实现 Scheduler
func (s *FrameScheduler) RequestFrame(fn FrameCallback) FrameID {
	id := s.nextID
	s.nextID++
	s.pending = append(s.pending, &frameRequest{id: id, fn: fn})
	return id
}

// CancelFrame 实现 Scheduler；取消不存在或已执行的请求是安全的
func (s *FrameScheduler) CancelFrame(id FrameID) {
	for i, r := range s.pending {
		if r.id == id {
			r.cancelled = true
			s.pending = append(s.pending[:i:i], s.pending[i+1:]...)
			return
		}
	}
	// 同一帧内尚未执行的请求
	for _, r := range s.running {
		if r.id == id {
			r.cancelled = true
			return
		}
	}
}

// Pending 当前等待执行的帧请求数
func (s *FrameScheduler) Pending() int {
	return len(s.pending)
}

// Frame 已执行的帧数
func (s *FrameScheduler) Frame() uint64 {
	return s.frame
}

// Pump 执行一帧
func (s *FrameScheduler) Pump(dt float64) {
	s.frame++
	s.running = s.pending
	s.pending = nil
	for _, r := range s.running {
		if r.cancelled {
			continue
		}
		r.cancelled = true
		r.fn(dt)
	}
	s.running = nil
}

// Loop 可取消的重复帧任务
type Loop struct {
	scheduler Scheduler
	fn        FrameCallback
	id        FrameID
	running   bool
}

// StartLoop 启动一个每帧重复执行的任务，返回其句柄
// 调用 Stop 之前，任务在每一帧结束时重新登记自己
func StartLoop(s Scheduler, fn FrameCallback) *Loop {
	l := &Loop{scheduler: s, fn: fn, running: true}
	l.id = s.RequestFrame(l.step)
	return l
}

func (l *Loop) step(dt float64) {
	if !l.running {
		return
	}
	l.fn(dt)
	// fn 内部可能已经 Stop
	if !l.running {
		return
	}
	l.id = l.scheduler.RequestFrame(l.step)
}

// Stop 取消已登记的下一帧请求并停止重新调度；重复调用是安全的
func (l *Loop) Stop() {
	if l == nil || !l.running {
		return
	}
	l.running = false
	l.scheduler.CancelFrame(l.id)
}

// Running 任务是否仍在调度中
func (l *Loop) Running() bool {
	return l != nil && l.running
}

package trail

import (
	"sort"

	"github.com/decker502/imagetrail/pkg/utils"
)

// RevealTiming 揭示动画的时间与缓动参数
type RevealTiming struct {
	MoveDuration float64        // 段 A：移入时长
	FadeDuration float64        // 段 B：淡出时长
	MoveEase     utils.EaseFunc // 段 A 缓动
	FadeEase     utils.EaseFunc // 段 B 缓动
	EndScale     float64        // 段 B 结束时的缩放
}

// DefaultRevealTiming 0.4 + 0.4 秒，power1 / power3，缩小到 0.2
func DefaultRevealTiming() RevealTiming {
	return RevealTiming{
		MoveDuration: 0.4,
		FadeDuration: 0.4,
		MoveEase:     utils.EaseOutQuad,
		FadeEase:     utils.EaseOutQuart,
		EndScale:     0.2,
	}
}

// Total 整条时间线的时长
func (rt RevealTiming) Total() float64 {
	return rt.MoveDuration + rt.FadeDuration
}

// TweenDriver 在槽位上播放两段式揭示动画
//
// 每个槽位同时至多一条时间线；新的揭示先终止旧的。
// 激活/停用通过回调通知控制器，驱动器本身不维护计数。
type TweenDriver struct {
	applier      TransformApplier
	timing       RevealTiming
	timelines    map[int]*Timeline
	onActivate   func(slot int)
	onDeactivate func(slot int)
	loop         *Loop
}

// NewTweenDriver 创建驱动器
func NewTweenDriver(applier TransformApplier, timing RevealTiming, onActivate, onDeactivate func(slot int)) *TweenDriver {
	return &TweenDriver{
		applier:      applier,
		timing:       timing,
		timelines:    make(map[int]*Timeline),
		onActivate:   onActivate,
		onDeactivate: onDeactivate,
	}
}

// Attach 在调度器上启动驱动器自己的逐帧推进任务
func (d *TweenDriver) Attach(s Scheduler) {
	if d.loop.Running() {
		return
	}
	d.loop = StartLoop(s, d.Advance)
}

// Detach 停止逐帧推进
func (d *TweenDriver) Detach() {
	d.loop.Stop()
}

// Reveal 在 slot 上开始一次揭示
//
// origin 为起始点（平滑后的指针），dest 为目标点（当前指针），
// 两者都减去半个槽位尺寸，使图片中心对准指针。
func (d *TweenDriver) Reveal(slot int, size Size, origin, dest Vec2, z int, base Transform) *Timeline {
	d.Kill(slot)

	half := size.Half()
	from := origin.Sub(half)
	to := dest.Sub(half)

	move := Segment{
		At:       0,
		Duration: d.timing.MoveDuration,
		Ease:     d.timing.MoveEase,
		Props:    PropOpacity | PropScale | PropX | PropY | PropZ,
		From:     Transform{Opacity: 1, Scale: 1, X: from.X, Y: from.Y, Z: z},
		To:       Transform{Opacity: 1, Scale: 1, X: to.X, Y: to.Y, Z: z},
	}
	fade := Segment{
		At:          d.timing.MoveDuration,
		Duration:    d.timing.FadeDuration,
		Ease:        d.timing.FadeEase,
		Props:       PropOpacity | PropScale,
		To:          Transform{Opacity: 0, Scale: d.timing.EndScale},
		FromCurrent: true,
	}

	tl := NewTimeline(d.applier, slot, base, move, fade)
	tl.OnStart = func() {
		if d.onActivate != nil {
			d.onActivate(slot)
		}
	}
	tl.OnComplete = func() {
		if d.timelines[slot] == tl {
			delete(d.timelines, slot)
		}
		if d.onDeactivate != nil {
			d.onDeactivate(slot)
		}
	}
	d.timelines[slot] = tl
	tl.Start()
	return tl
}

// Kill 终止槽位上正在进行的时间线
//
// 被抢占的时间线已经发出过激活信号，这里补发停用信号以保持计数平衡。
// 返回是否确实终止了一条时间线。
func (d *TweenDriver) Kill(slot int) bool {
	tl, ok := d.timelines[slot]
	if !ok {
		return false
	}
	delete(d.timelines, slot)
	wasActive := tl.Active()
	tl.Kill()
	if wasActive && d.onDeactivate != nil {
		d.onDeactivate(slot)
	}
	return wasActive
}

// KillAll 终止所有时间线，不触发任何回调（卸载时使用）
func (d *TweenDriver) KillAll() {
	for slot, tl := range d.timelines {
		tl.Kill()
		delete(d.timelines, slot)
	}
}

// Active 槽位上是否有进行中的时间线
func (d *TweenDriver) Active(slot int) bool {
	tl, ok := d.timelines[slot]
	return ok && tl.Active()
}

// ActiveCount 进行中的时间线数量
func (d *TweenDriver) ActiveCount() int {
	n := 0
	for _, tl := range d.timelines {
		if tl.Active() {
			n++
		}
	}
	return n
}

// Timeline 返回槽位上的时间线
func (d *TweenDriver) Timeline(slot int) (*Timeline, bool) {
	tl, ok := d.timelines[slot]
	return tl, ok
}

// Advance 推进所有时间线 dt 秒（按槽位顺序，保证确定性）
func (d *TweenDriver) Advance(dt float64) {
	if len(d.timelines) == 0 {
		return
	}
	slots := make([]int, 0, len(d.timelines))
	for slot := range d.timelines {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	for _, slot := range slots {
		// 前面的回调可能已经移除了它
		if tl, ok := d.timelines[slot]; ok {
			tl.Advance(dt)
		}
	}
}

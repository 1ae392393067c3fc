package trail

import "github.com/decker502/imagetrail/pkg/utils"

// Prop 段落要写入的变换属性（位掩码）
type Prop uint8

const (
	PropOpacity Prop = 1 << iota
	PropScale
	PropX
	PropY
	PropZ
)

// Has 判断掩码是否包含 p
func (m Prop) Has(p Prop) bool {
	return m&p != 0
}

// Segment 时间线上的一个补间段
//
// At 为段在时间线上的起点，Duration 为时长（单位：秒）。
// Props 中的属性从 From 插值到 To；PropZ 在段开始时直接写入 To.Z。
// FromCurrent 为 true 时，From 在段第一次生效时从槽位当前变换中捕获。
type Segment struct {
	At          float64
	Duration    float64
	Ease        utils.EaseFunc
	Props       Prop
	From, To    Transform
	FromCurrent bool

	captured bool
}

func (s *Segment) end() float64 {
	return s.At + s.Duration
}

// apply 把段在时间线时间 t 的值写入 tr
func (s *Segment) apply(tr *Transform, t float64) {
	if s.FromCurrent && !s.captured {
		s.From = *tr
		s.captured = true
	}

	p := 1.0
	if s.Duration > 0 {
		p = utils.Clamp01((t - s.At) / s.Duration)
	}
	ease := s.Ease
	if ease == nil {
		ease = utils.EaseLinear
	}
	e := ease(p)

	if s.Props.Has(PropOpacity) {
		tr.Opacity = utils.Lerp(s.From.Opacity, s.To.Opacity, e)
	}
	if s.Props.Has(PropScale) {
		tr.Scale = utils.Lerp(s.From.Scale, s.To.Scale, e)
	}
	if s.Props.Has(PropX) {
		tr.X = utils.Lerp(s.From.X, s.To.X, e)
	}
	if s.Props.Has(PropY) {
		tr.Y = utils.Lerp(s.From.Y, s.To.Y, e)
	}
	if s.Props.Has(PropZ) {
		tr.Z = s.To.Z
	}
}

// Timeline 作用于单个槽位的多段补间时间线
//
// 时间线由外部时钟推进（Advance），不自带循环。
// 第 0 个时刻即渲染起点（from 值立即生效）。
type Timeline struct {
	Slot       int
	Segments   []Segment
	OnStart    func()
	OnComplete func()

	applier TransformApplier
	current Transform
	elapsed float64
	started bool
	done    bool
	killed  bool
}

// NewTimeline 创建时间线；base 为槽位当前的变换
func NewTimeline(applier TransformApplier, slot int, base Transform, segments ...Segment) *Timeline {
	return &Timeline{
		Slot:     slot,
		Segments: segments,
		applier:  applier,
		current:  base,
	}
}

// Duration 时间线总时长（最后一个段的结束时刻）
func (tl *Timeline) Duration() float64 {
	d := 0.0
	for i := range tl.Segments {
		if e := tl.Segments[i].end(); e > d {
			d = e
		}
	}
	return d
}

// Elapsed 已推进的时间
func (tl *Timeline) Elapsed() float64 {
	return tl.elapsed
}

// Active 已开始且尚未完成或被终止
func (tl *Timeline) Active() bool {
	return tl.started && !tl.done && !tl.killed
}

// Done 是否已自然完成
func (tl *Timeline) Done() bool {
	return tl.done
}

// Killed 是否被终止
func (tl *Timeline) Killed() bool {
	return tl.killed
}

// Current 时间线最近写出的变换
func (tl *Timeline) Current() Transform {
	return tl.current
}

// Start 渲染第 0 时刻并触发 OnStart；重复调用无效
func (tl *Timeline) Start() {
	if tl.started || tl.killed {
		return
	}
	tl.started = true
	tl.render()
	if tl.OnStart != nil {
		tl.OnStart()
	}
	if tl.Duration() <= 0 {
		tl.complete()
	}
}

// Advance 推进 dt 秒；到达终点时触发 OnComplete
func (tl *Timeline) Advance(dt float64) {
	if !tl.started {
		tl.Start()
	}
	if !tl.Active() {
		return
	}
	tl.elapsed += dt
	total := tl.Duration()
	if tl.elapsed > total {
		tl.elapsed = total
	}
	tl.render()
	if tl.elapsed >= total {
		tl.complete()
	}
}

// Seek 直接跳到时间 t 并渲染，不触发回调（用于检查曲线）
func (tl *Timeline) Seek(t float64) Transform {
	tl.elapsed = t
	tl.render()
	return tl.current
}

// Kill 终止时间线；终止不是完成，不触发 OnComplete
func (tl *Timeline) Kill() {
	tl.killed = true
}

func (tl *Timeline) complete() {
	if tl.done {
		return
	}
	tl.done = true
	if tl.OnComplete != nil {
		tl.OnComplete()
	}
}

// render 按段顺序叠加到当前时刻；尚未开始的段不写入（At 为 0 的段在起点立即生效）
func (tl *Timeline) render() {
	tr := tl.current
	for i := range tl.Segments {
		seg := &tl.Segments[i]
		if seg.At > 0 && tl.elapsed < seg.At {
			continue
		}
		seg.apply(&tr, tl.elapsed)
	}
	tl.current = tr
	if tl.applier != nil {
		tl.applier.ApplyTransform(tl.Slot, tr)
	}
}

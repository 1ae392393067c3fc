package trail

import (
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
)

// DefaultVariant 未指定或未知变体时使用的实现
const DefaultVariant = 1

// Options 轨迹行为参数
type Options struct {
	// Threshold 两次揭示之间指针至少移动的距离（逻辑像素）
	Threshold float64
	// Smoothing 每帧平滑系数（指数插值）
	Smoothing float64
	// ZBaseline 层叠计数器的基线
	ZBaseline int
	Timing    RevealTiming
}

// DefaultOptions 阈值 80，平滑 0.1，层叠基线 1
func DefaultOptions() Options {
	return Options{
		Threshold: 80,
		Smoothing: 0.1,
		ZBaseline: 1,
		Timing:    DefaultRevealTiming(),
	}
}

// withDefaults 把未设置（零值或越界）的字段替换为默认值
// 整个 Timing 为零值时使用 DefaultRevealTiming，包括结束缩放
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Threshold <= 0 {
		o.Threshold = def.Threshold
	}
	if o.Smoothing <= 0 || o.Smoothing > 1 {
		o.Smoothing = def.Smoothing
	}
	if o.ZBaseline < 1 {
		o.ZBaseline = def.ZBaseline
	}

	tm := o.Timing
	if tm.MoveDuration <= 0 && tm.FadeDuration <= 0 && tm.MoveEase == nil && tm.FadeEase == nil && tm.EndScale == 0 {
		o.Timing = def.Timing
		return o
	}
	if tm.MoveDuration <= 0 {
		tm.MoveDuration = def.Timing.MoveDuration
	}
	if tm.FadeDuration <= 0 {
		tm.FadeDuration = def.Timing.FadeDuration
	}
	if tm.MoveEase == nil {
		tm.MoveEase = def.Timing.MoveEase
	}
	if tm.FadeEase == nil {
		tm.FadeEase = def.Timing.FadeEase
	}
	if tm.EndScale < 0 {
		tm.EndScale = def.Timing.EndScale
	}
	o.Timing = tm
	return o
}

// RevealEvent 一次揭示的描述
type RevealEvent struct {
	TrailID   string
	Slot      int
	Z         int
	Origin    Vec2
	Dest      Vec2
	Preempted bool // 该槽位上的旧动画被抢占
}

// Observer 接收轨迹事件（指标、调试面板等）
type Observer interface {
	Revealed(ev RevealEvent)
	ActivityChanged(active int, idle bool)
}

// Env 挂载轨迹所需的协作者
type Env struct {
	Container Container
	Pool      *Pool
	Scheduler Scheduler
	// Measure 测量槽位包围盒；为 nil 时所有槽位尺寸视为 0
	Measure MeasureFunc
	// Options 未设置的字段使用 DefaultOptions 的值
	Options  Options
	Observer Observer
}

func (e Env) validate() error {
	if e.Container == nil {
		return fmt.Errorf("%w: container is nil", ErrInvalidEnv)
	}
	if e.Pool == nil {
		return fmt.Errorf("%w: pool is nil", ErrInvalidEnv)
	}
	if e.Scheduler == nil {
		return fmt.Errorf("%w: scheduler is nil", ErrInvalidEnv)
	}
	return nil
}

// Trail 一种轨迹行为实现
type Trail interface {
	// Init 绑定容器与槽位，订阅事件
	Init(env Env) error
	// Destroy 停止帧循环、移除监听器、终止所有动画
	Destroy()
	// ID 实例标识
	ID() string
}

// Factory 创建一个新的、未初始化的轨迹实例
type Factory func(id string) Trail

var registry = map[int]Factory{}

// Register 注册变体；重复注册会覆盖
func Register(variant int, f Factory) {
	registry[variant] = f
}

// Lookup 查找变体，未知变体回退到 DefaultVariant
// 返回实际使用的变体编号
func Lookup(variant int) (Factory, int, bool) {
	if f, ok := registry[variant]; ok {
		return f, variant, true
	}
	f, ok := registry[DefaultVariant]
	return f, DefaultVariant, ok
}

// Variants 已注册的变体编号（升序）
func Variants() []int {
	out := make([]int, 0, len(registry))
	for v := range registry {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// Mount 构造一个全新的轨迹实例并初始化
// 每次挂载都使用新实例，不复用之前的控制器
func Mount(variant int, env Env) (Trail, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}
	f, resolved, ok := Lookup(variant)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, variant)
	}
	if resolved != variant {
		log.Printf("[Trail] Unknown variant %d, falling back to %d", variant, resolved)
	}

	t := f(uuid.NewString())
	if err := t.Init(env); err != nil {
		return nil, fmt.Errorf("init trail variant %d: %w", resolved, err)
	}
	log.Printf("[Trail] Mounted variant %d (id=%s, slots=%d)", resolved, t.ID(), env.Pool.Len())
	return t, nil
}

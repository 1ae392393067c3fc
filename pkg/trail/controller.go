// Package trail 实现指针驱动的图片轨迹效果
//
// 指针在容器内移动时，按移动距离触发揭示：从固定的图片池中轮流取出下一个槽位，
// 让图片从平滑后的指针位置滑向当前指针位置，随后淡出并缩小。
//
// 组成（依赖顺序）：
//   - Pool：槽位序列，保存每个槽位的纯数据变换
//   - PointerTracker：把容器事件换算成局部坐标
//   - TweenDriver：两段式时间线，回调通知激活/停用
//   - Controller：逐帧判断阈值、推进环形游标、维护空闲状态
//
// 整个包运行在宿主的单一更新协程上，不加锁。
package trail

import (
	"log"

	"github.com/decker502/imagetrail/pkg/utils"
)

func init() {
	Register(1, func(id string) Trail { return NewController(id) })
}

// Controller 变体 1：距离阈值触发的轮转轨迹
type Controller struct {
	id      string
	env     Env
	opts    Options
	tracker *PointerTracker
	driver  *TweenDriver
	loop    *Loop

	initIDs  []ListenerID
	resizeID ListenerID

	// 指针样本
	last     Vec2
	smoothed Vec2

	// 轨迹状态
	cursor  int
	active  int
	idle    bool
	zIndex  int
	reveals int

	// preempting 为 true 时，抢占产生的停用只更新计数，不通知观察者
	preempting bool

	initialized bool
	destroyed   bool
}

// NewController 创建未初始化的控制器
func NewController(id string) *Controller {
	return &Controller{id: id, cursor: -1, idle: true}
}

// ID 实现 Trail
func (c *Controller) ID() string {
	return c.id
}

// Init 实现 Trail
func (c *Controller) Init(env Env) error {
	if c.initialized {
		return ErrAlreadyInitialized
	}
	if err := env.validate(); err != nil {
		return err
	}
	c.initialized = true
	c.env = env
	c.opts = env.Options.withDefaults()
	c.zIndex = c.opts.ZBaseline

	c.env.Pool.Measure(env.Measure)

	// 跟踪器先注册，首次移动的处理器读到的是已更新的位置
	c.tracker = NewPointerTracker(env.Container)
	c.driver = NewTweenDriver(env.Pool, c.opts.Timing, c.onActivated, c.onDeactivated)
	c.driver.Attach(env.Scheduler)

	c.initIDs = []ListenerID{
		env.Container.AddListener(EventMouseMove, c.handleFirstMove),
		env.Container.AddListener(EventTouchMove, c.handleFirstMove),
	}
	c.resizeID = env.Container.AddListener(EventResize, c.handleResize)
	return nil
}

// handleFirstMove 用第一次移动的位置作为平滑点和上次触发点，然后启动帧循环
// 只执行一次：执行后立即移除自己
func (c *Controller) handleFirstMove(ev Event) {
	p, ok := c.tracker.Localize(ev)
	if !ok {
		return
	}
	c.smoothed = p
	c.last = p
	c.removeInitListeners()
	c.loop = StartLoop(c.env.Scheduler, c.tick)
}

func (c *Controller) removeInitListeners() {
	for _, id := range c.initIDs {
		c.env.Container.RemoveListener(id)
	}
	c.initIDs = nil
}

// handleResize 重置所有槽位的视觉状态并重新测量
// 不终止进行中的动画，也不影响触发状态
func (c *Controller) handleResize(Event) {
	c.env.Pool.ResetTransforms()
	c.env.Pool.Measure(c.env.Measure)
}

func (c *Controller) tick(float64) {
	current := c.tracker.Current()
	distance := Distance(current, c.last)

	c.smoothed.X = utils.Lerp(c.smoothed.X, current.X, c.opts.Smoothing)
	c.smoothed.Y = utils.Lerp(c.smoothed.Y, current.Y, c.opts.Smoothing)

	if distance > c.opts.Threshold {
		c.revealNext()
		c.last = current
	}

	if c.idle && c.zIndex != c.opts.ZBaseline {
		c.zIndex = c.opts.ZBaseline
	}
}

func (c *Controller) revealNext() {
	total := c.env.Pool.Len()
	if total == 0 {
		return
	}

	c.zIndex++
	c.cursor = (c.cursor + 1) % total
	slot := c.cursor

	c.preempting = true
	preempted := c.driver.Kill(slot)
	c.preempting = false

	current := c.tracker.Current()
	base, _ := c.env.Pool.Slot(slot)
	c.driver.Reveal(slot, c.env.Pool.SizeOf(slot), c.smoothed, current, c.zIndex, base.Transform)
	c.reveals++

	if c.env.Observer != nil {
		c.env.Observer.Revealed(RevealEvent{
			TrailID:   c.id,
			Slot:      slot,
			Z:         c.zIndex,
			Origin:    c.smoothed,
			Dest:      current,
			Preempted: preempted,
		})
	}
}

func (c *Controller) onActivated(int) {
	c.setActive(c.active + 1)
}

func (c *Controller) onDeactivated(int) {
	c.setActive(c.active - 1)
}

// setActive 更新计数并立即推导空闲标志
func (c *Controller) setActive(n int) {
	if n < 0 {
		n = 0
	}
	c.active = n
	c.idle = c.active == 0
	if c.env.Observer != nil && !c.preempting {
		c.env.Observer.ActivityChanged(c.active, c.idle)
	}
}

// Destroy 实现 Trail
func (c *Controller) Destroy() {
	if !c.initialized || c.destroyed {
		return
	}
	c.destroyed = true

	c.loop.Stop()
	c.driver.Detach()
	c.removeInitListeners()
	c.env.Container.RemoveListener(c.resizeID)
	c.tracker.Close()
	c.driver.KillAll()
	log.Printf("[Trail] Destroyed %s after %d reveals", c.id, c.reveals)
}

// PointerSeen 是否已收到容器内的有效指针移动
func (c *Controller) PointerSeen() bool {
	return c.tracker != nil && c.tracker.Seen()
}

// Cursor 最近一次激活的槽位（初始为 -1）
func (c *Controller) Cursor() int { return c.cursor }

// ActiveCount 进行中的动画数量
func (c *Controller) ActiveCount() int { return c.active }

// Idle 没有进行中的动画
func (c *Controller) Idle() bool { return c.idle }

// ZIndex 当前层叠计数
func (c *Controller) ZIndex() int { return c.zIndex }

// Reveals 揭示总次数
func (c *Controller) Reveals() int { return c.reveals }

// Smoothed 平滑后的指针位置
func (c *Controller) Smoothed() Vec2 { return c.smoothed }

// LastTriggered 上一次触发时的指针位置
func (c *Controller) LastTriggered() Vec2 { return c.last }

// Current 当前指针位置
func (c *Controller) Current() Vec2 {
	if c.tracker == nil {
		return Vec2{}
	}
	return c.tracker.Current()
}

// Running 帧循环是否在运行
func (c *Controller) Running() bool { return c.loop.Running() }

// Driver 动画驱动（供调试面板与测试读取）
func (c *Controller) Driver() *TweenDriver { return c.driver }

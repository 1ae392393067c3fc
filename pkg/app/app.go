// Package app 提供图片轨迹的 Ebitengine 宿主
//
// 该包把挂载、事件派发与渲染从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
//
// 宿主对轨迹而言就是浏览器：Update 相当于一次 requestAnimationFrame，
// 光标/触摸的变化是移动事件，Layout 尺寸的变化是 resize 事件。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/imagetrail/pkg/config"
	"github.com/decker502/imagetrail/pkg/metrics"
	"github.com/decker502/imagetrail/pkg/render"
	"github.com/decker502/imagetrail/pkg/resources"
	"github.com/decker502/imagetrail/pkg/settings"
	"github.com/decker502/imagetrail/pkg/trail"
	"github.com/decker502/imagetrail/pkg/utils"
)

// AppName gdata 存储使用的应用名
const AppName = "imagetrail"

// Config 定义应用启动配置
type Config struct {
	// Trail 已加载并校验的配置
	Trail *config.TrailConfig
	// Verbose 启用详细日志输出
	Verbose bool
	// Variant 命令行指定的变体，0 表示使用设置或配置文件
	Variant int
}

var variantKeys = [...]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// App 是图片轨迹的宿主，实现 ebiten.Game 接口
type App struct {
	cfg      *config.TrailConfig
	verbose  bool
	dt       float64
	bg       color.RGBA
	settings *settings.SettingsManager
	metrics  *metrics.Manager

	surface   *trail.Surface
	scheduler *trail.FrameScheduler
	slots     *resources.SlotSet
	pool      *trail.Pool
	trail     trail.Trail
	variant   int
	detector  *utils.MoveDetector

	layoutW, layoutH int
	pendingResize    bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数

	stopMetrics func()
}

// NewApp 创建应用并挂载轨迹
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if cfg.Trail == nil {
		cfg.Trail = config.New()
	}
	tc := cfg.Trail

	// 配置日志输出
	if !cfg.Verbose && !tc.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gm, err := settings.Open(AppName)
	if err != nil {
		log.Printf("[App] Settings storage unavailable: %v (memory only)", err)
	}
	sm := settings.NewSettingsManager(gm)

	w, h := tc.WindowWidth, tc.WindowHeight
	a := &App{
		cfg:       tc,
		verbose:   cfg.Verbose || tc.Verbose,
		dt:        1.0 / float64(tc.TPS),
		bg:        tc.BackgroundColor(),
		settings:  sm,
		metrics:   metrics.NewManager(),
		surface:   trail.NewSurface(ContainerRect(w, h, tc.ContainerInset)),
		scheduler: trail.NewFrameScheduler(),
		detector:  utils.NewMoveDetector(),
		variant:   ResolveVariant(cfg.Variant, sm.GetSettings().Variant, tc.Variant),
		layoutW:   w,
		layoutH:   h,
	}

	slotW, slotH := tc.SlotSize()
	a.slots = resources.NewImageLoader(slotW, slotH).LoadSlots(tc.Images)

	if tc.MetricsAddr != "" {
		stop, err := a.metrics.Serve(context.Background(), tc.MetricsAddr)
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		a.stopMetrics = stop
	}

	if err := a.mount(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// ConfigureWindow 应用窗口设置（仅桌面端）
func (a *App) ConfigureWindow() {
	s := a.settings.GetSettings()
	w, h := a.cfg.WindowWidth, a.cfg.WindowHeight
	if s.WindowWidth > 0 && s.WindowHeight > 0 {
		w, h = s.WindowWidth, s.WindowHeight
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(a.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(a.cfg.TPS)
	if s.Fullscreen {
		ebiten.SetFullscreen(true)
	}
}

// mount 销毁当前实例（如有），用全新的图片池挂载 a.variant
func (a *App) mount() error {
	if a.trail != nil {
		a.trail.Destroy()
		a.trail = nil
	}

	// 新实例从下一次真实移动开始播种，丢弃旧的指针历史
	a.detector.Reset()
	a.pool = trail.NewPool(a.cfg.Images)
	t, err := trail.Mount(a.variant, trail.Env{
		Container: a.surface,
		Pool:      a.pool,
		Scheduler: a.scheduler,
		Measure:   a.slots.Measure,
		Options:   a.cfg.TrailOptions(),
		Observer:  a.metrics,
	})
	if err != nil {
		return fmt.Errorf("mount trail: %w", err)
	}
	a.trail = t

	_, resolved, _ := trail.Lookup(a.variant)
	a.variant = resolved
	a.metrics.RecordMount(resolved, a.slots.Unmeasured())
	return nil
}

// selectVariant 切换变体并重新挂载
func (a *App) selectVariant(v int) {
	a.variant = v
	if err := a.mount(); err != nil {
		log.Printf("[App] Remount failed: %v", err)
		return
	}
	a.settings.SetVariant(a.variant)
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Failed to save settings: %v", err)
	}
}

// Update 每个 tick 调用一次：处理按键、派发事件、推进帧调度
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.WindowWidth, a.cfg.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.cfg.WindowWidth, a.cfg.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	a.handleKeys()

	if a.pendingResize {
		a.pendingResize = false
		a.surface.SetBounds(ContainerRect(a.layoutW, a.layoutH, a.cfg.ContainerInset))
		a.surface.Dispatch(trail.Event{Kind: trail.EventResize})
	}

	if mv, ok := a.detector.Detect(samplePointer()); ok {
		if ev, ok := PointerEvent(mv, a.surface.Bounds()); ok {
			a.surface.Dispatch(ev)
		}
	}

	a.scheduler.Pump(a.dt)
	a.metrics.RecordFrame()
	return nil
}

func (a *App) handleKeys() {
	// F11 切换全屏
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
			a.settings.SetFullscreen(false)
		} else {
			ebiten.SetFullscreen(true)
			a.settings.SetFullscreen(true)
		}
		a.saveSettings()
	}

	for i, key := range variantKeys {
		if inpututil.IsKeyJustPressed(key) {
			a.selectVariant(i + 1)
			return
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := a.mount(); err != nil {
			log.Printf("[App] Remount failed: %v", err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.settings.ToggleHUD()
		a.saveSettings()
	}
}

// Draw 绘制背景、图片池与调试面板
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.bg)
	render.DrawPool(screen, a.pool, a.slots, a.surface.Bounds().Min())

	if a.settings.GetSettings().ShowHUD {
		ebitenutil.DebugPrint(screen, HUDText(a.Status()))
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑尺寸跟随窗口；尺寸变化在下一次 Update 中作为 resize 派发
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.layoutW || outsideHeight != a.layoutH {
		a.layoutW, a.layoutH = outsideWidth, outsideHeight
		a.pendingResize = true
	}
	return a.layoutW, a.layoutH
}

// Status 当前的轨迹状态
func (a *App) Status() Status {
	s := Status{
		Variant:    a.variant,
		Variants:   trail.Variants(),
		Slots:      a.slots.Len(),
		Loaded:     a.slots.Loaded(),
		Cursor:     -1,
		Idle:       true,
		TPS:        ebiten.ActualTPS(),
		Persistent: a.settings.Persistent(),
		Hint:       utils.PointerHint(),
	}
	if c, ok := a.trail.(*trail.Controller); ok {
		s.Cursor = c.Cursor()
		s.Active = c.ActiveCount()
		s.Idle = c.Idle()
		s.ZIndex = c.ZIndex()
		s.Reveals = c.Reveals()
		if c.PointerSeen() {
			s.Hint = ""
		}
	}
	return s
}

// Close 卸载轨迹、保存窗口尺寸并停止指标服务
func (a *App) Close() {
	if a.trail != nil {
		a.trail.Destroy()
		a.trail = nil
	}
	if !ebiten.IsFullscreen() {
		a.settings.SetWindowSize(a.layoutW, a.layoutH)
	}
	a.saveSettings()
	if a.stopMetrics != nil {
		a.stopMetrics()
		a.stopMetrics = nil
	}
	a.slots.Dispose()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

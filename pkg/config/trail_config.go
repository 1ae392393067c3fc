package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/decker502/imagetrail/pkg/trail"
	"github.com/decker502/imagetrail/pkg/utils"
)

// 窗口默认尺寸（逻辑像素）
const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
)

// TrailConfig 轨迹与宿主窗口的全部配置
//
// 字段通过 koanf 标签映射到 YAML 键与 TRAIL_ 前缀的环境变量。
type TrailConfig struct {
	// Images 图片标识列表，每个对应一个槽位；为空时轨迹不会揭示任何图片
	Images []string `koanf:"images"`
	// Variant 轨迹行为变体，未知值回退到 1
	Variant int `koanf:"variant"`

	// 触发与平滑
	Threshold float64 `koanf:"threshold"` // 触发阈值（逻辑像素）
	Smoothing float64 `koanf:"smoothing"` // 每帧平滑系数 (0, 1]

	// 揭示动画
	MoveDuration float64 `koanf:"move_duration"`
	FadeDuration float64 `koanf:"fade_duration"`
	MoveEase     string  `koanf:"move_ease"`
	FadeEase     string  `koanf:"fade_ease"`
	EndScale     float64 `koanf:"end_scale"`

	// 槽位几何：宽度固定，高度 = 宽度 / 宽高比
	SlotWidth  float64 `koanf:"slot_width"`
	SlotAspect float64 `koanf:"slot_aspect"`

	// ContainerInset 容器距窗口四边的内边距
	ContainerInset float64 `koanf:"container_inset"`

	// 宿主窗口
	WindowWidth  int    `koanf:"window_width"`
	WindowHeight int    `koanf:"window_height"`
	Title        string `koanf:"title"`
	TPS          int    `koanf:"tps"`
	Background   string `koanf:"background"`

	// MetricsAddr 非空时在该地址暴露 /metrics
	MetricsAddr string `koanf:"metrics_addr"`
	Verbose     bool   `koanf:"verbose"`
}

// New 返回带默认值的配置
func New() *TrailConfig {
	return &TrailConfig{
		Images:         nil,
		Variant:        trail.DefaultVariant,
		Threshold:      80,
		Smoothing:      0.1,
		MoveDuration:   0.4,
		FadeDuration:   0.4,
		MoveEase:       "power1",
		FadeEase:       "power3",
		EndScale:       0.2,
		SlotWidth:      190,
		SlotAspect:     1.1,
		ContainerInset: 0,
		WindowWidth:    DefaultWindowWidth,
		WindowHeight:   DefaultWindowHeight,
		Title:          "Image Trail",
		TPS:            60,
		Background:     "#0f0f12",
	}
}

// Validate 检查配置是否可用
func (c *TrailConfig) Validate() error {
	switch {
	case c.Threshold <= 0:
		return fmt.Errorf("%w: threshold must be > 0, got %v", ErrInvalidConfig, c.Threshold)
	case c.Smoothing <= 0 || c.Smoothing > 1:
		return fmt.Errorf("%w: smoothing must be in (0, 1], got %v", ErrInvalidConfig, c.Smoothing)
	case c.MoveDuration <= 0 || c.FadeDuration <= 0:
		return fmt.Errorf("%w: durations must be > 0", ErrInvalidConfig)
	case c.EndScale < 0:
		return fmt.Errorf("%w: end_scale must be >= 0, got %v", ErrInvalidConfig, c.EndScale)
	case c.SlotWidth <= 0 || c.SlotAspect <= 0:
		return fmt.Errorf("%w: slot_width and slot_aspect must be > 0", ErrInvalidConfig)
	case c.ContainerInset < 0:
		return fmt.Errorf("%w: container_inset must be >= 0", ErrInvalidConfig)
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalidConfig, c.WindowWidth, c.WindowHeight)
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps must be > 0, got %d", ErrInvalidConfig, c.TPS)
	}
	if _, ok := utils.EaseByName(c.MoveEase); !ok {
		return fmt.Errorf("%w: unknown move_ease %q", ErrInvalidConfig, c.MoveEase)
	}
	if _, ok := utils.EaseByName(c.FadeEase); !ok {
		return fmt.Errorf("%w: unknown fade_ease %q", ErrInvalidConfig, c.FadeEase)
	}
	if _, err := ParseHexColor(c.Background); err != nil {
		return fmt.Errorf("%w: background: %v", ErrInvalidConfig, err)
	}
	return nil
}

// TrailOptions 转换为轨迹参数
func (c *TrailConfig) TrailOptions() trail.Options {
	opts := trail.DefaultOptions()
	opts.Threshold = c.Threshold
	opts.Smoothing = c.Smoothing
	opts.Timing.MoveDuration = c.MoveDuration
	opts.Timing.FadeDuration = c.FadeDuration
	opts.Timing.EndScale = c.EndScale
	opts.Timing.MoveEase, _ = utils.EaseByName(c.MoveEase)
	opts.Timing.FadeEase, _ = utils.EaseByName(c.FadeEase)
	return opts
}

// SlotSize 槽位的像素尺寸（向下取整，至少 1 像素）
func (c *TrailConfig) SlotSize() (w, h int) {
	w = int(c.SlotWidth)
	h = int(c.SlotWidth / c.SlotAspect)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// BackgroundColor 解析后的背景色；无效值返回黑色
func (c *TrailConfig) BackgroundColor() color.RGBA {
	col, err := ParseHexColor(c.Background)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return col
}

// ParseHexColor 解析 #rgb / #rrggbb / #rrggbbaa
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]}) + "ff"
	case 6:
		s += "ff"
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// normalizeImages 支持环境变量中的逗号分隔列表，并去掉空项
func normalizeImages(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

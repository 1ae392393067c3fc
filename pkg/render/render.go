// Package render 将图片池的变换绘制到 Ebitengine 屏幕上
package render

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/imagetrail/pkg/trail"
)

// TextureSource 提供槽位的 GPU 图片；返回 nil 表示该槽位没有元素
type TextureSource interface {
	Texture(index int) *ebiten.Image
}

// SlotGeoM 计算槽位的绘制矩阵
//
// 缩放以槽位中心为原点，随后平移到容器左上角 + 变换偏移。
func SlotGeoM(t trail.Transform, size trail.Size, container trail.Vec2) ebiten.GeoM {
	var g ebiten.GeoM
	half := size.Half()
	g.Translate(-half.X, -half.Y)
	g.Scale(t.Scale, t.Scale)
	g.Translate(container.X+t.X+half.X, container.Y+t.Y+half.Y)
	return g
}

// DrawOrder 返回需要绘制的槽位，按 Z 升序（相同 Z 按槽位序号）
// 不可见或未测量的槽位被跳过
func DrawOrder(slots []trail.Slot) []trail.Slot {
	visible := make([]trail.Slot, 0, len(slots))
	for _, s := range slots {
		if !s.Measured || s.Transform.Opacity <= 0 || s.Transform.Scale <= 0 {
			continue
		}
		visible = append(visible, s)
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Transform.Z < visible[j].Transform.Z
	})
	return visible
}

// DrawPool 绘制图片池
func DrawPool(screen *ebiten.Image, pool *trail.Pool, textures TextureSource, container trail.Vec2) int {
	drawn := 0
	for _, s := range DrawOrder(pool.Slots()) {
		img := textures.Texture(s.Index)
		if img == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM = SlotGeoM(s.Transform, s.Size, container)
		op.ColorScale.ScaleAlpha(float32(s.Transform.Opacity))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
		drawn++
	}
	return drawn
}

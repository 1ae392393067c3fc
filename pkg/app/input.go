package app

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/imagetrail/pkg/utils"
)

// samplePointer 读取当前帧的鼠标与触摸状态，触摸按 ID 升序
func samplePointer() utils.PointerSample {
	s := utils.PointerSample{}
	s.CursorX, s.CursorY = ebiten.CursorPosition()

	ids := ebiten.AppendTouchIDs(nil)
	slices.Sort(ids)
	for _, id := range ids {
		x, y := ebiten.TouchPosition(id)
		s.Touches = append(s.Touches, utils.Touch{ID: int(id), X: x, Y: y})
	}
	return s
}

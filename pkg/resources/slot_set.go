package resources

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/imagetrail/pkg/trail"
)

// SlotSet holds the fitted image of every pool slot.
type SlotSet struct {
	size     trail.Size
	images   []*image.RGBA
	textures []*ebiten.Image
}

// Len returns the number of slots, loaded or not.
func (s *SlotSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.images)
}

// Loaded returns the number of slots with an image.
func (s *SlotSet) Loaded() int {
	n := 0
	for i := 0; i < s.Len(); i++ {
		if s.images[i] != nil {
			n++
		}
	}
	return n
}

// Unmeasured returns the number of slots whose image failed to load.
func (s *SlotSet) Unmeasured() int {
	return s.Len() - s.Loaded()
}

// Image returns the fitted CPU image of slot i, or nil.
func (s *SlotSet) Image(i int) *image.RGBA {
	if i < 0 || i >= s.Len() {
		return nil
	}
	return s.images[i]
}

// Measure implements trail.MeasureFunc. Empty slots report ok=false.
func (s *SlotSet) Measure(i int) (trail.Size, bool) {
	if s.Image(i) == nil {
		return trail.Size{}, false
	}
	return s.size, true
}

// Texture returns the GPU image of slot i, creating it on first use.
// Must be called from the game goroutine.
func (s *SlotSet) Texture(i int) *ebiten.Image {
	img := s.Image(i)
	if img == nil {
		return nil
	}
	if s.textures[i] == nil {
		s.textures[i] = ebiten.NewImageFromImage(img)
	}
	return s.textures[i]
}

// Dispose releases the GPU images.
func (s *SlotSet) Dispose() {
	for i := 0; i < s.Len(); i++ {
		if s.textures[i] != nil {
			s.textures[i].Deallocate()
			s.textures[i] = nil
		}
	}
}

// Package resources loads the trail images and fits them to the slot size.
//
// Decoding and fitting happen on the CPU and are safe to test without a
// graphics context. GPU textures are only created on first use by the
// renderer through SlotSet.Texture.
package resources

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/decker502/imagetrail/pkg/embedded"
	"github.com/decker502/imagetrail/pkg/trail"
)

var supportedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// ImageLoader reads images from the embedded assets or the filesystem and
// caches the fitted result per path.
//
// Not safe for concurrent use; images are loaded once at mount time on the
// game goroutine.
type ImageLoader struct {
	slotW, slotH int
	cache        map[string]*image.RGBA
}

// NewImageLoader creates a loader that fits every image to slotW x slotH.
func NewImageLoader(slotW, slotH int) *ImageLoader {
	return &ImageLoader{
		slotW: slotW,
		slotH: slotH,
		cache: make(map[string]*image.RGBA),
	}
}

// SlotSize returns the size every loaded image is fitted to.
func (l *ImageLoader) SlotSize() trail.Size {
	return trail.Size{W: float64(l.slotW), H: float64(l.slotH)}
}

// Load decodes the image at path and fits it to the slot size.
//
// Paths under assets/ are read from the embedded filesystem when it has
// them; anything else is read from disk.
func (l *ImageLoader) Load(path string) (*image.RGBA, error) {
	if img, ok := l.cache[path]; ok {
		return img, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExts[ext] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := readImageBytes(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	fitted := CoverFit(src, l.slotW, l.slotH)
	l.cache[path] = fitted
	return fitted, nil
}

func readImageBytes(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// LoadSlots loads one image per pool slot. A failed load is logged and
// leaves that slot empty, so it measures as zero and never renders.
func (l *ImageLoader) LoadSlots(paths []string) *SlotSet {
	set := &SlotSet{
		size:     l.SlotSize(),
		images:   make([]*image.RGBA, len(paths)),
		textures: make([]*ebiten.Image, len(paths)),
	}
	for i, path := range paths {
		img, err := l.Load(path)
		if err != nil {
			log.Printf("[Resources] Slot %d: %v", i, err)
			continue
		}
		set.images[i] = img
	}
	log.Printf("[Resources] Loaded %d/%d images at %dx%d", set.Loaded(), len(paths), l.slotW, l.slotH)
	return set
}

// CoverFit scales src to fill w x h while keeping its aspect ratio, then
// crops the overflow around the centre.
func CoverFit(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw == 0 || sh == 0 || w <= 0 || h <= 0 {
		return dst
	}

	// Crop the source to the destination aspect ratio.
	crop := sb
	if sw*h > sh*w {
		cw := sh * w / h
		crop.Min.X = sb.Min.X + (sw-cw)/2
		crop.Max.X = crop.Min.X + cw
	} else {
		ch := sw * h / w
		crop.Min.Y = sb.Min.Y + (sh-ch)/2
		crop.Max.Y = crop.Min.Y + ch
	}

	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	return dst
}

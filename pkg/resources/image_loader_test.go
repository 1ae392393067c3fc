package resources

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/imagetrail/pkg/trail"
)

func writePNG(t *testing.T, dir, name string, w, h int, fill func(x, y int) color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill(x, y))
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

func solid(c color.Color) func(x, y int) color.Color {
	return func(int, int) color.Color { return c }
}

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	blue = color.RGBA{B: 0xff, A: 0xff}
)

func TestCoverFitCropsWideImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 400; x++ {
			if x < 200 {
				src.Set(x, y, red)
			} else {
				src.Set(x, y, blue)
			}
		}
	}

	dst := CoverFit(src, 100, 100)
	if dst.Bounds().Dx() != 100 || dst.Bounds().Dy() != 100 {
		t.Fatalf("bounds = %v, want 100x100", dst.Bounds())
	}
	if got := dst.RGBAAt(10, 50); got != red {
		t.Errorf("left pixel = %v, want red", got)
	}
	if got := dst.RGBAAt(90, 50); got != blue {
		t.Errorf("right pixel = %v, want blue", got)
	}
}

func TestCoverFitTallImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 50, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 50; x++ {
			src.Set(x, y, blue)
		}
	}
	dst := CoverFit(src, 190, 172)
	if dst.Bounds() != image.Rect(0, 0, 190, 172) {
		t.Fatalf("bounds = %v", dst.Bounds())
	}
	if got := dst.RGBAAt(95, 86); got != blue {
		t.Errorf("centre pixel = %v, want blue", got)
	}
}

func TestCoverFitEmptySource(t *testing.T) {
	dst := CoverFit(image.NewRGBA(image.Rect(0, 0, 0, 0)), 10, 10)
	if dst.Bounds().Dx() != 10 {
		t.Errorf("bounds = %v, want 10x10", dst.Bounds())
	}
}

func TestImageLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "a.png", 64, 64, solid(red))

	l := NewImageLoader(32, 16)
	img, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 32, 16) {
		t.Errorf("bounds = %v, want 32x16", img.Bounds())
	}

	again, _ := l.Load(path)
	if again != img {
		t.Error("second Load() should return the cached image")
	}
}

func TestImageLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(corrupt, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewImageLoader(10, 10)

	if _, err := l.Load(filepath.Join(dir, "a.gif")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("gif: error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := l.Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file: expected error")
	}
	if _, err := l.Load(corrupt); err == nil {
		t.Error("corrupt file: expected error")
	}
}

func TestLoadSlotsMeasure(t *testing.T) {
	dir := t.TempDir()
	ok1 := writePNG(t, dir, "1.png", 20, 20, solid(red))
	ok2 := writePNG(t, dir, "2.png", 20, 20, solid(blue))

	l := NewImageLoader(190, 172)
	set := l.LoadSlots([]string{ok1, filepath.Join(dir, "missing.png"), ok2})

	if set.Len() != 3 || set.Loaded() != 2 || set.Unmeasured() != 1 {
		t.Fatalf("Len/Loaded/Unmeasured = %d/%d/%d, want 3/2/1", set.Len(), set.Loaded(), set.Unmeasured())
	}

	var measure trail.MeasureFunc = set.Measure
	if size, ok := measure(0); !ok || size != (trail.Size{W: 190, H: 172}) {
		t.Errorf("Measure(0) = %v, %v", size, ok)
	}
	if size, ok := measure(1); ok || size != (trail.Size{}) {
		t.Errorf("Measure(1) = %v, %v, want unmeasured", size, ok)
	}
	if _, ok := measure(7); ok {
		t.Error("Measure out of range should be unmeasured")
	}

	pool := trail.NewPool([]string{ok1, "missing", ok2})
	pool.Measure(measure)
	if got := pool.SizeOf(1); got != (trail.Size{}) {
		t.Errorf("pool.SizeOf(1) = %v, want zero", got)
	}
	if got := pool.SizeOf(2); got.W != 190 {
		t.Errorf("pool.SizeOf(2) = %v", got)
	}
}

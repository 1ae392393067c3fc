package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/decker502/imagetrail/pkg/trail"
)

func TestParseScriptDefaults(t *testing.T) {
	s, err := ParseScript([]byte("steps:\n  - {x: 1, y: 2}\n  - {x: 3, y: 4, frames: 5, touch: true}\n"))
	if err != nil {
		t.Fatalf("ParseScript() error: %v", err)
	}
	if s.Container.Width != 1280 || s.Container.Height != 720 {
		t.Errorf("container = %vx%v, want 1280x720", s.Container.Width, s.Container.Height)
	}
	if s.Slots != 8 || s.SlotWidth != 190 {
		t.Errorf("slots = %d, slot width = %v", s.Slots, s.SlotWidth)
	}
	if s.Steps[0].Frames != 1 || s.Steps[1].Frames != 5 || !s.Steps[1].Touch {
		t.Errorf("steps = %+v", s.Steps)
	}
}

func TestParseScriptInvalid(t *testing.T) {
	if _, err := ParseScript([]byte("steps: [unterminated")); err == nil {
		t.Error("expected a parse error")
	}
}

func TestReplayRevealsOnLargeJumps(t *testing.T) {
	s, _ := ParseScript([]byte(`
container: {x: 100, y: 50, width: 1200, height: 600}
tail_frames: 60
steps:
  - {x: 10, y: 10}
  - {x: 500, y: 10}
  - {x: 1000, y: 10, touch: true}
`))

	var out bytes.Buffer
	summary, err := Replay(s, trail.DefaultOptions(), &out)
	if err != nil {
		t.Fatalf("Replay() error: %v", err)
	}

	if summary.Reveals != 2 || summary.Preemptions != 0 {
		t.Errorf("reveals = %d, preemptions = %d, want 2 and 0", summary.Reveals, summary.Preemptions)
	}
	if summary.FinalCursor != 1 {
		t.Errorf("cursor = %d, want 1", summary.FinalCursor)
	}
	if summary.Frames != 63 {
		t.Errorf("frames = %d, want 63", summary.Frames)
	}
	if !summary.Idle || summary.FinalZ != 1 {
		t.Errorf("idle = %v, z = %d, want idle at baseline 1", summary.Idle, summary.FinalZ)
	}
	if !strings.Contains(out.String(), "to (500.0, 10.0)") {
		t.Errorf("output missing first reveal:\n%s", out.String())
	}
}

func TestReplayPreemptsOnWrap(t *testing.T) {
	s, _ := ParseScript([]byte(`
slots: 2
steps:
  - {x: 0, y: 0}
  - {x: 200, y: 0}
  - {x: 400, y: 0}
  - {x: 600, y: 0}
`))

	var out bytes.Buffer
	summary, err := Replay(s, trail.DefaultOptions(), &out)
	if err != nil {
		t.Fatalf("Replay() error: %v", err)
	}
	if summary.Reveals != 3 || summary.Preemptions != 1 {
		t.Errorf("reveals = %d, preemptions = %d, want 3 and 1", summary.Reveals, summary.Preemptions)
	}
	if summary.FinalCursor != 0 {
		t.Errorf("cursor = %d, want 0", summary.FinalCursor)
	}
	if summary.Idle {
		t.Error("trail should still be animating without tail frames")
	}
	if !strings.Contains(out.String(), "preempted") {
		t.Errorf("output should flag the preempted reveal:\n%s", out.String())
	}
}

func TestLineScript(t *testing.T) {
	s := LineScript(0, 300, 1200, 300, 41)
	if len(s.Steps) != 41 {
		t.Fatalf("steps = %d, want 41", len(s.Steps))
	}
	if s.Steps[40].X != 1200 || s.Steps[20].X != 600 {
		t.Errorf("path endpoints = %v, %v", s.Steps[20].X, s.Steps[40].X)
	}

	summary, err := Replay(s, trail.DefaultOptions(), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Replay() error: %v", err)
	}
	// 每帧 30px，约每 3 帧越过一次 80px 阈值
	if summary.Reveals < 10 || summary.Reveals > 15 {
		t.Errorf("reveals = %d, want roughly 1200/90", summary.Reveals)
	}
	if !summary.Idle {
		t.Error("trail should be idle after the tail")
	}
}

package utils

import "testing"

func TestMoveDetectorMouse(t *testing.T) {
	d := NewMoveDetector()

	if _, ok := d.Detect(PointerSample{CursorX: 10, CursorY: 10}); ok {
		t.Fatal("first sample should only prime the detector")
	}
	if _, ok := d.Detect(PointerSample{CursorX: 10, CursorY: 10}); ok {
		t.Fatal("unchanged cursor should not emit a move")
	}

	mv, ok := d.Detect(PointerSample{CursorX: 30, CursorY: 12})
	if !ok {
		t.Fatal("expected a mouse move")
	}
	if mv.Kind != MoveMouse || mv.X != 30 || mv.Y != 12 {
		t.Errorf("move = %+v, want mouse at (30, 12)", mv)
	}
}

func TestMoveDetectorTouch(t *testing.T) {
	d := NewMoveDetector()

	tests := []struct {
		name   string
		sample PointerSample
		want   bool
	}{
		{"touch starts", PointerSample{Touches: []Touch{{ID: 3, X: 5, Y: 5}}}, false},
		{"touch held still", PointerSample{Touches: []Touch{{ID: 3, X: 5, Y: 5}}}, false},
		{"touch moves", PointerSample{Touches: []Touch{{ID: 3, X: 9, Y: 7}, {ID: 4, X: 50, Y: 50}}}, true},
		{"primary replaced", PointerSample{Touches: []Touch{{ID: 4, X: 51, Y: 50}}}, false},
		{"new primary moves", PointerSample{Touches: []Touch{{ID: 4, X: 60, Y: 50}}}, true},
		{"cursor ignored while touching", PointerSample{CursorX: 99, Touches: []Touch{{ID: 4, X: 60, Y: 50}}}, false},
	}

	for _, tt := range tests {
		mv, ok := d.Detect(tt.sample)
		if ok != tt.want {
			t.Fatalf("%s: ok = %v, want %v", tt.name, ok, tt.want)
		}
		if ok {
			if mv.Kind != MoveTouch {
				t.Errorf("%s: kind = %v, want MoveTouch", tt.name, mv.Kind)
			}
			if mv.X != tt.sample.Touches[0].X || mv.Y != tt.sample.Touches[0].Y {
				t.Errorf("%s: position = (%d, %d), want primary touch", tt.name, mv.X, mv.Y)
			}
			if len(mv.Touches) != len(tt.sample.Touches) {
				t.Errorf("%s: %d touches, want %d", tt.name, len(mv.Touches), len(tt.sample.Touches))
			}
		}
	}
}

func TestMoveDetectorReset(t *testing.T) {
	d := NewMoveDetector()
	d.Detect(PointerSample{CursorX: 1, CursorY: 1})
	d.Reset()

	if _, ok := d.Detect(PointerSample{CursorX: 200, CursorY: 1}); ok {
		t.Error("sample after Reset should only prime the detector")
	}
}

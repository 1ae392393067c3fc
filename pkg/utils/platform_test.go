//go:build !mobile

package utils

import "testing"

func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv("TRAIL_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}
}

func TestIsMobile_Emulated(t *testing.T) {
	t.Setenv("TRAIL_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("IsMobile() should honour TRAIL_MOBILE_EMULATE=1")
	}
	if PointerHint() != "drag a finger across the screen" {
		t.Errorf("PointerHint() = %q", PointerHint())
	}
}

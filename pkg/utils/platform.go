//go:build !mobile

package utils

import "os"

// IsMobile 桌面端返回 false；设置 TRAIL_MOBILE_EMULATE=1 可在桌面模拟触摸设备
func IsMobile() bool {
	return os.Getenv("TRAIL_MOBILE_EMULATE") == "1"
}

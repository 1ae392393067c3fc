//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在 /data/data/{package}/trail 下创建设置目录并确认可写
// gdata 在 Android 上不会预先创建子目录
func EnsureStorageDir() (string, error) {
	pkg, err := androidPackage()
	if err != nil {
		return "", fmt.Errorf("detect android package: %w", err)
	}

	dir := filepath.Join("/data/data", pkg, "trail")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create storage dir %s: %w", dir, err)
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return "", fmt.Errorf("storage dir %s is not writable: %w", dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	return dir, nil
}

// androidPackage 从 /proc/self/cmdline 读取进程名（即应用包名）
func androidPackage() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	name := string(bytes.TrimSpace(data))
	if name == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return name, nil
}

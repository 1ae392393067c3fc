package config

import "errors"

// Sentinel errors，调用方可使用 errors.Is 判断
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

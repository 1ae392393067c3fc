package trail

import "errors"

var (
	// ErrInvalidEnv 挂载环境缺少必要的协作者
	ErrInvalidEnv = errors.New("invalid trail env")
	// ErrUnknownVariant 变体未注册且没有可回退的默认变体
	ErrUnknownVariant = errors.New("unknown trail variant")
	// ErrAlreadyInitialized 同一实例被初始化两次
	ErrAlreadyInitialized = errors.New("trail already initialized")
)

package resources

import "errors"

// ErrUnsupportedFormat 图片扩展名不在支持列表中
var ErrUnsupportedFormat = errors.New("unsupported image format")

//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要把 assets/images 和 data/trail.yaml 复制到此目录：
//
//	mkdir -p mobile/assets mobile/data
//	cp -r assets/images mobile/assets/ && cp data/trail.yaml mobile/data/
package mobile

import "embed"

//go:embed assets/images
var assetsFS embed.FS

//go:embed data/trail.yaml
var dataFS embed.FS

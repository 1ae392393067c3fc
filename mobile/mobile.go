//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.imagetrail -o build/android/imagetrail.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/ImageTrail.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/imagetrail/pkg/app"
	"github.com/decker502/imagetrail/pkg/config"
	"github.com/decker502/imagetrail/pkg/embedded"
)

func init() {
	embedded.Init(assetsFS, dataFS)

	defaults, err := embedded.ReadFile("data/trail.yaml")
	if err != nil {
		log.Fatalf("读取嵌入配置失败: %v", err)
	}
	cfg, err := config.Load("", defaults)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	trailApp, err := app.NewApp(app.Config{Trail: cfg, Verbose: true})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(trailApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}

//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。构建前需要把 data/ 复制到本目录：
//
//	cp -r data mobile/data
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.storefront -o build/android/storefront.aar -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"
	"go.uber.org/zap"

	"github.com/decker502/storefront/pkg/app"
	"github.com/decker502/storefront/pkg/embedded"
)

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}

	storefront, err := app.NewApp(app.Config{Logger: logger})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	mobile.SetGame(storefront)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}

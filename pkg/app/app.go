// Package app 提供商品页应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"

	"github.com/decker502/storefront/pkg/config"
	"github.com/decker502/storefront/pkg/embedded"
	"github.com/decker502/storefront/pkg/game"
	"github.com/decker502/storefront/pkg/scenes"
	"github.com/decker502/storefront/pkg/utils"
)

// AppName gdata 存储目录名
const AppName = "storefront"

// Config 定义应用启动配置
type Config struct {
	// Logger 为 nil 时不输出日志
	Logger *zap.Logger
	// Category 启动时选中的分类，为空则使用上次保存的分类
	Category string
	// ReducedMotion 减少动态效果（动画几乎瞬间完成）
	ReducedMotion bool
	// MotionConfigPath / CatalogConfigPath 为空时使用默认路径
	MotionConfigPath  string
	CatalogConfigPath string
}

// App 是商品页应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	logger       *zap.Logger
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	motion       *config.MotionConfig

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MotionConfigPath == "" {
		cfg.MotionConfigPath = config.MotionConfigPath
	}
	if cfg.CatalogConfigPath == "" {
		cfg.CatalogConfigPath = config.CatalogConfigPath
	}

	for _, path := range []string{cfg.MotionConfigPath, cfg.CatalogConfigPath} {
		if !embedded.Exists(path) {
			return nil, fmt.Errorf("配置文件不存在: %s", path)
		}
	}

	motion, err := config.LoadMotionConfig(cfg.MotionConfigPath)
	if err != nil {
		return nil, fmt.Errorf("动效配置加载失败: %w", err)
	}
	catalog, err := config.LoadCatalogConfig(cfg.CatalogConfigPath)
	if err != nil {
		return nil, fmt.Errorf("商品目录加载失败: %w", err)
	}
	logger.Info("config loaded",
		zap.Int("categories", len(catalog.Categories)),
		zap.Int("products", len(catalog.Products)))

	// gdata 打开失败时降级为仅内存设置
	store, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		logger.Warn("gdata unavailable, settings will not persist", zap.Error(err))
		store = nil
	}
	// --reduced-motion 只作用于本次运行，不写回设置
	settings := game.NewSettingsManager(store, logger)

	sceneManager := game.NewSceneManager(logger)
	sceneManager.SetSceneFactory(func(name string) (game.Scene, error) {
		if name != scenes.StorefrontSceneName {
			return nil, fmt.Errorf("unknown scene %q", name)
		}
		scene, err := scenes.NewStorefrontScene(scenes.Options{
			Motion:          motion,
			Catalog:         catalog,
			Settings:        settings,
			Logger:          logger,
			InitialCategory: cfg.Category,
			ReducedMotion:   cfg.ReducedMotion,
			TouchOnly:       utils.IsMobile(),
		})
		if err != nil {
			return nil, err
		}
		return scene, nil
	})
	if err := sceneManager.LoadScene(scenes.StorefrontSceneName); err != nil {
		return nil, fmt.Errorf("商品页创建失败: %w", err)
	}

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		logger:       logger.Named("App"),
		sceneManager: sceneManager,
		settings:     settings,
		motion:       motion,
	}, nil
}

// Update 更新页面逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.WindowSize()
			ebiten.SetWindowSize(w, h)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.logger.Debug("exit fullscreen, resetting window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(ebiten.IsFullscreen())
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw 绘制页面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸（视口尺寸），Ebitengine 自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.WindowSize()
}

// WindowSize 配置中的视口尺寸
func (a *App) WindowSize() (int, int) {
	return int(a.motion.Viewport.Width), int(a.motion.Viewport.Height)
}

// Shutdown 保存偏好并卸载场景
func (a *App) Shutdown() {
	a.sceneManager.Shutdown()
	if err := a.settings.Save(); err != nil {
		a.logger.Warn("failed to save settings", zap.Error(err))
	}
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

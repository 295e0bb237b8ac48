package scenes

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/decker502/storefront/pkg/components"
	"github.com/decker502/storefront/pkg/config"
	"github.com/decker502/storefront/pkg/ecs"
	"github.com/decker502/storefront/pkg/game"
	"github.com/decker502/storefront/pkg/systems"
	"github.com/decker502/storefront/pkg/utils"
)

// StorefrontSceneName 场景工厂使用的名称
const StorefrontSceneName = "storefront"

// 减少动态效果时的时间倍率
const reducedMotionTimeScale = 1000

var pageBackground = color.RGBA{0x0e, 0x0e, 0x11, 0xff}

// Options 商品页场景依赖
type Options struct {
	Motion  *config.MotionConfig
	Catalog *config.CatalogConfig
	// Settings 可为 nil（不持久化偏好）
	Settings *game.SettingsManager
	Logger   *zap.Logger

	// 以下为空时场景自行创建
	Clock    *game.TickSource
	Pointer  *game.PointerHub
	Viewport *game.PageViewport

	// InitialCategory 非空时覆盖设置中保存的分类
	InitialCategory string
	ReducedMotion   bool
	// TouchOnly 触屏设备：不启用悬浮预览、光标跟随与磁吸
	TouchOnly bool
}

// tabEntry 分类标签
type tabEntry struct {
	category string
	id       ecs.EntityID
}

// rowEntry 商品行
type rowEntry struct {
	product config.Product
	id      ecs.EntityID
}

// StorefrontScene 商品页：首屏跑马灯、分类筛选网格、商品行悬浮预览、缩放视差
type StorefrontScene struct {
	logger   *zap.Logger
	motion   *config.MotionConfig
	catalog  *config.CatalogConfig
	settings *game.SettingsManager

	entityManager *ecs.EntityManager
	clock         *game.TickSource
	pointer       *game.PointerHub
	viewport      *game.PageViewport
	touch         *utils.TouchScroller

	timeline *systems.TimelineSystem
	triggers *systems.ViewportTriggerSystem
	follower *systems.PointerFollowSystem
	reflow   *systems.FilterReflowSystem
	marquee  *systems.MarqueeSystem
	scroller *systems.SmoothScrollSystem
	magnetic *systems.MagneticSystem
	render   *systems.RenderSystem

	// 页面元素
	navLinks       []ecs.EntityID
	heroAnchor     ecs.EntityID
	heroTitle      ecs.EntityID
	marqueeTexts   []ecs.EntityID
	words          []ecs.EntityID
	catalogHeading ecs.EntityID
	tabs           []tabEntry
	pill           ecs.EntityID
	countLabel     ecs.EntityID
	gridAnchor     ecs.EntityID
	cards          []ecs.EntityID
	rowsHeading    ecs.EntityID
	rows           []rowEntry
	parallaxAnchor ecs.EntityID
	stickies       []offsetEntry
	footer         ecs.EntityID
	preview        ecs.EntityID
	cursor         ecs.EntityID
	cursorLabel    ecs.EntityID

	// below 网格下方的区块，网格高度变化时整体移动
	below        []offsetEntry
	gridTop      float64
	footerOffset float64
	pageHeight   float64

	touchOnly   bool
	hoveredRow  int
	revealShown bool
	reveal      systems.Handle
	pillAnim    systems.Handle

	// cardEntrance 卡片首次入场；第一次筛选后由筛选重排接管卡片的透明度、位移与缩放
	cardEntrance *systems.TriggerBinding

	hoverSub    *game.Subscription
	stickySub   *game.Subscription
	tornDown    bool
}

// NewStorefrontScene 创建商品页场景
func NewStorefrontScene(opts Options) (*StorefrontScene, error) {
	if opts.Motion == nil || opts.Catalog == nil {
		return nil, errors.New("storefront scene: motion and catalog config are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = game.NewTickSource()
	}
	if opts.Pointer == nil {
		opts.Pointer = game.NewPointerHub()
	}
	if opts.Viewport == nil {
		opts.Viewport = game.NewPageViewport(opts.Motion.Viewport.Width, opts.Motion.Viewport.Height)
	}

	em := ecs.NewEntityManager()
	s := &StorefrontScene{
		logger:        logger.Named("Storefront"),
		motion:        opts.Motion,
		catalog:       opts.Catalog,
		settings:      opts.Settings,
		entityManager: em,
		clock:         opts.Clock,
		pointer:       opts.Pointer,
		viewport:      opts.Viewport,
		touch:         utils.NewTouchScroller(opts.Motion.SmoothScroll.WheelMultiplier),
		touchOnly:     opts.TouchOnly,
		hoveredRow:    -1,
	}

	s.timeline = systems.NewTimelineSystem(em, s.clock, logger)
	s.triggers = systems.NewViewportTriggerSystem(em, s.viewport, s.timeline, logger)
	s.follower = systems.NewPointerFollowSystem(em, s.pointer, s.clock, logger)
	s.reflow = systems.NewFilterReflowSystem(em, s.timeline, s.motion.Reflow, logger)
	s.marquee = systems.NewMarqueeSystem(em, s.clock, s.viewport, s.motion.Marquee, logger)
	s.magnetic = systems.NewMagneticSystem(em, s.follower, s.viewport, s.motion.Magnetic)
	render, err := systems.NewRenderSystem(em, s.viewport)
	if err != nil {
		s.Teardown()
		return nil, err
	}
	s.render = render

	scrollCfg := s.motion.SmoothScroll
	reduced := opts.ReducedMotion || (s.settings != nil && s.settings.GetSettings().ReducedMotion)
	if reduced {
		s.timeline.SetTimeScale(reducedMotionTimeScale)
		scrollCfg.Lerp = 1
	}

	if err := s.build(); err != nil {
		s.Teardown()
		return nil, err
	}
	s.scroller = systems.NewSmoothScrollSystem(s.viewport, s.clock, scrollCfg, s.pageHeight, logger)

	category := opts.InitialCategory
	if category == "" && s.settings != nil {
		category = s.settings.GetSettings().LastCategory
	}
	if category != "" && s.catalog.HasCategory(category) {
		s.reflow.SetActive(category)
		s.layoutGrid()
		s.snapPill(category)
	}
	s.updateCount()

	s.reflow.OnChange(s.onReflowChange)
	s.bindAnimations()

	s.logger.Info("storefront scene started",
		zap.Int("products", len(s.catalog.Products)),
		zap.String("category", s.reflow.ActiveCategory()),
		zap.Bool("reducedMotion", reduced))
	return s, nil
}

// Update 轮询输入后推进一帧
func (s *StorefrontScene) Update(deltaTime float64) {
	s.HandleInput(utils.PollPointer(s.touch))
	s.Step(deltaTime)
}

// HandleInput 处理一帧的指针输入
func (s *StorefrontScene) HandleInput(in utils.PointerFrame) {
	s.pointer.Move(in.X, in.Y)
	if in.WheelY != 0 {
		s.scroller.Wheel(in.WheelY)
	}
	if in.JustPressed {
		s.Click(in.X, in.Y)
	}
}

// Step 推进帧时钟并清理已卸载的元素
func (s *StorefrontScene) Step(deltaTime float64) {
	s.entityManager.RemoveMarkedEntities()
	s.clock.Tick(deltaTime)
}

// Draw 绘制页面
func (s *StorefrontScene) Draw(screen *ebiten.Image) {
	screen.Fill(pageBackground)
	s.render.Draw(screen)
}

// Teardown 卸载页面：取消所有动画、绑定与订阅，销毁所有元素
func (s *StorefrontScene) Teardown() {
	if s.tornDown {
		return
	}
	s.tornDown = true

	s.reflow.Teardown()
	s.triggers.UnbindAll()
	s.follower.ReleaseAll()
	s.marquee.Detach()
	if s.scroller != nil {
		s.scroller.Stop()
	}
	s.hoverSub.Cancel()
	s.stickySub.Cancel()
	s.hoverSub, s.stickySub = nil, nil
	s.timeline.CancelAll()

	for _, id := range ecs.GetEntitiesWith1[*components.TransformComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()
	s.logger.Info("storefront scene torn down")
}

// SaveOnExit 保存最后选中的分类
func (s *StorefrontScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	s.settings.SetLastCategory(s.reflow.ActiveCategory())
	if err := s.settings.Save(); err != nil {
		s.logger.Warn("failed to save settings", zap.Error(err))
		return false
	}
	return true
}

// ActiveCategory 当前分类
func (s *StorefrontScene) ActiveCategory() string {
	return s.reflow.ActiveCategory()
}

// ReflowState 筛选状态机状态
func (s *StorefrontScene) ReflowState() systems.ReflowState {
	return s.reflow.State()
}

// PageHeight 页面总高度
func (s *StorefrontScene) PageHeight() float64 {
	return s.pageHeight
}

// EntityManager 返回场景的元素注册表（验证工具与测试使用）
func (s *StorefrontScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

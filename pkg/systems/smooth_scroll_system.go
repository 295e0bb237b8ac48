package systems

import (
	"math"

	"go.uber.org/zap"

	"github.com/decker502/storefront/pkg/config"
	"github.com/decker502/storefront/pkg/game"
)

// ScrollableViewport 可由外部设置滚动位置的视口
type ScrollableViewport interface {
	game.Viewport
	ScrollTo(y float64)
}

// SmoothScrollSystem 平滑滚动：滚轮只改变目标位置，实际位置逐帧逼近
//
// 只在逼近过程中订阅帧时钟，到达目标后退订。
type SmoothScrollSystem struct {
	viewport   ScrollableViewport
	clock      game.FrameClock
	cfg        config.SmoothScrollConfig
	logger     *zap.Logger
	pageHeight float64

	target  float64
	current float64
	sub     *game.Subscription
}

// NewSmoothScrollSystem 创建平滑滚动系统
func NewSmoothScrollSystem(viewport ScrollableViewport, clock game.FrameClock, cfg config.SmoothScrollConfig, pageHeight float64, logger *zap.Logger) *SmoothScrollSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SmoothScrollSystem{
		viewport:   viewport,
		clock:      clock,
		cfg:        cfg,
		logger:     logger.Named("SmoothScroll"),
		pageHeight: pageHeight,
		target:     viewport.ScrollY(),
		current:    viewport.ScrollY(),
	}
}

// SetPageHeight 更新页面总高度（内容变化后）
func (ss *SmoothScrollSystem) SetPageHeight(h float64) {
	ss.pageHeight = h
	ss.target = ss.clampScroll(ss.target)
	// 内容变短后当前位置超出底部时直接收回
	if ss.current > ss.MaxScroll() {
		ss.ScrollTo(ss.target, true)
	}
}

// MaxScroll 最大滚动位置
func (ss *SmoothScrollSystem) MaxScroll() float64 {
	return math.Max(0, ss.pageHeight-ss.viewport.Height())
}

// Wheel 处理滚轮增量（刻度，向下为正）
func (ss *SmoothScrollSystem) Wheel(delta float64) {
	if delta == 0 {
		return
	}
	ss.ScrollTo(ss.target+delta*ss.cfg.WheelMultiplier, false)
}

// ScrollTo 设置目标位置；immediate 为 true 时直接跳到目标
func (ss *SmoothScrollSystem) ScrollTo(y float64, immediate bool) {
	ss.target = ss.clampScroll(y)
	if immediate {
		ss.current = ss.target
		ss.viewport.ScrollTo(ss.current)
		ss.stop()
		return
	}
	if ss.sub == nil && ss.target != ss.current {
		ss.sub = ss.clock.Subscribe(ss.tick)
	}
}

// Target 目标滚动位置
func (ss *SmoothScrollSystem) Target() float64 {
	return ss.target
}

// Animating 是否正在逼近目标
func (ss *SmoothScrollSystem) Animating() bool {
	return ss.sub != nil
}

// Stop 停止逼近并释放时钟订阅
func (ss *SmoothScrollSystem) Stop() {
	ss.target = ss.current
	ss.stop()
}

func (ss *SmoothScrollSystem) tick(dt float64) {
	// lerp 按 60 帧/秒 定义，换算到实际帧间隔
	factor := 1 - math.Pow(1-ss.cfg.Lerp, dt*60)
	ss.current += (ss.target - ss.current) * factor
	if math.Abs(ss.target-ss.current) < 0.5 {
		ss.current = ss.target
		ss.stop()
	}
	ss.viewport.ScrollTo(ss.current)
}

func (ss *SmoothScrollSystem) stop() {
	if ss.sub != nil {
		ss.sub.Cancel()
		ss.sub = nil
	}
}

func (ss *SmoothScrollSystem) clampScroll(y float64) float64 {
	return math.Min(math.Max(y, 0), ss.MaxScroll())
}

package systems

import (
	"go.uber.org/zap"

	"github.com/decker502/storefront/pkg/config"
	"github.com/decker502/storefront/pkg/ecs"
	"github.com/decker502/storefront/pkg/game"
)

// MarqueeSystem 首屏无限循环滚动文字
//
// 两段相同文字首尾相接，xPercent 在 [-100, 0] 区间循环；
// 页面向下滚动时文字向左移动，向上滚动时反向。
type MarqueeSystem struct {
	entityManager *ecs.EntityManager
	clock         game.FrameClock
	viewport      game.Viewport
	cfg           config.MarqueeConfig
	logger        *zap.Logger

	targets   []ecs.EntityID
	xPercent  float64
	direction float64
	clockSub  *game.Subscription
	scrollSub *game.Subscription
}

// NewMarqueeSystem 创建跑马灯系统
func NewMarqueeSystem(em *ecs.EntityManager, clock game.FrameClock, viewport game.Viewport, cfg config.MarqueeConfig, logger *zap.Logger) *MarqueeSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarqueeSystem{
		entityManager: em,
		clock:         clock,
		viewport:      viewport,
		cfg:           cfg,
		logger:        logger.Named("Marquee"),
		direction:     -1,
	}
}

// Attach 开始驱动文字元素
func (ms *MarqueeSystem) Attach(targets ...ecs.EntityID) {
	ms.targets = append(ms.targets, targets...)
	if ms.clockSub == nil {
		ms.clockSub = ms.clock.Subscribe(ms.tick)
	}
	if ms.scrollSub == nil {
		ms.scrollSub = ms.viewport.Subscribe(ms.onScroll)
	}
	ms.logger.Debug("attached", zap.Int("targets", len(ms.targets)))
}

// Detach 停止驱动并释放订阅
func (ms *MarqueeSystem) Detach() {
	ms.targets = nil
	ms.clockSub.Cancel()
	ms.scrollSub.Cancel()
	ms.clockSub, ms.scrollSub = nil, nil
}

// XPercent 当前位移（自身宽度的百分比）
func (ms *MarqueeSystem) XPercent() float64 {
	return ms.xPercent
}

// Direction 当前方向：-1 向左，1 向右
func (ms *MarqueeSystem) Direction() float64 {
	return ms.direction
}

func (ms *MarqueeSystem) onScroll(ev game.ScrollEvent) {
	if ev.Direction != game.ScrollNone {
		ms.direction = -float64(ev.Direction)
	}
}

// tick 先回绕再写入，最后推进；速度按 60 帧/秒 归一化
func (ms *MarqueeSystem) tick(dt float64) {
	if ms.xPercent < -100 {
		ms.xPercent = 0
	} else if ms.xPercent > 0 {
		ms.xPercent = -100
	}
	for _, id := range ms.targets {
		if tf := transformOf(ms.entityManager, id); tf != nil {
			tf.XPercent = ms.xPercent
		}
	}
	ms.xPercent += ms.cfg.Speed * ms.direction * dt * 60
}

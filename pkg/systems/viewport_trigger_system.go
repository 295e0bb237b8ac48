package systems

import (
	"slices"

	"go.uber.org/zap"

	"github.com/decker502/storefront/pkg/components"
	"github.com/decker502/storefront/pkg/config"
	"github.com/decker502/storefront/pkg/ecs"
	"github.com/decker502/storefront/pkg/game"
	"github.com/decker502/storefront/pkg/timeline"
)

// TriggerOptions 滚动触发绑定选项
type TriggerOptions struct {
	// Once 触发一次后解除观察
	Once bool
	// Scrub 播放进度与滚动位置双向联动，不会"触发"
	Scrub bool
	// End 联动模式的结束条件；零值时为 "bottom top"（元素底边离开视口顶部）
	End config.Condition
	// OnEnter 向下越过起始线时调用（非联动模式）
	OnEnter func()
	// OnLeaveBack 向上退回起始线之前时调用（非联动模式）
	OnLeaveBack func()
}

// TriggerBinding 元素与滚动触发条件、序列之间的绑定
type TriggerBinding struct {
	Element        ecs.EntityID
	StartCondition config.Condition
	EndCondition   config.Condition
	Sequence       *timeline.Sequence
	Once           bool
	Scrub          bool
	// FiredOnce 至少触发过一次
	FiredOnce bool

	onEnter     func()
	onLeaveBack func()
	handle      Handle
	passed      bool // 当前滚动位置是否已越过起始线
	observing   bool
}

// ViewportTriggerSystem 根据滚动位置触发或联动序列播放
//
// 所有绑定共享一个视口订阅：第一个绑定建立时订阅，
// 观察中的绑定数量归零时退订。
type ViewportTriggerSystem struct {
	entityManager *ecs.EntityManager
	viewport      game.Viewport
	timeline      *TimelineSystem
	logger        *zap.Logger

	bindings []*TriggerBinding // 观察中的绑定，按建立顺序
	owned    []*TriggerBinding // 所有未解除的绑定（含已触发的一次性绑定）
	sub      *game.Subscription
}

// NewViewportTriggerSystem 创建滚动触发系统
func NewViewportTriggerSystem(em *ecs.EntityManager, viewport game.Viewport, ts *TimelineSystem, logger *zap.Logger) *ViewportTriggerSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	vs := &ViewportTriggerSystem{
		entityManager: em,
		viewport:      viewport,
		timeline:      ts,
		logger:        logger.Named("ViewportTrigger"),
	}
	em.OnDestroy(vs.unbindElement)
	return vs
}

// Bind 建立绑定
//
// 元素未挂载或没有布局盒时返回 nil。
// 建立时元素已越过起始线的非联动绑定立即触发；联动绑定立即定位到当前进度。
func (vs *ViewportTriggerSystem) Bind(element ecs.EntityID, start config.Condition, seq *timeline.Sequence, opts TriggerOptions) *TriggerBinding {
	if _, ok := ecs.GetComponent[*components.LayoutComponent](vs.entityManager, element); !ok {
		vs.logger.Debug("bind skipped, element absent", zap.Uint64("element", uint64(element)))
		return nil
	}
	end := opts.End
	if end == (config.Condition{}) {
		end = config.Condition{Edge: config.EdgeBottom, Fraction: 0}
	}
	b := &TriggerBinding{
		Element:        element,
		StartCondition: start,
		EndCondition:   end,
		Sequence:       seq,
		Once:           opts.Once,
		Scrub:          opts.Scrub,
		onEnter:        opts.OnEnter,
		onLeaveBack:    opts.OnLeaveBack,
		observing:      true,
	}
	if b.Scrub {
		b.handle = vs.timeline.Play(seq, PlayOptions{Paused: true})
	}
	vs.bindings = append(vs.bindings, b)
	vs.owned = append(vs.owned, b)
	if vs.sub == nil {
		vs.sub = vs.viewport.Subscribe(vs.onScroll)
	}
	vs.evaluate(b)
	return b
}

// Unbind 解除绑定：取消该绑定启动的序列并释放观察
func (vs *ViewportTriggerSystem) Unbind(b *TriggerBinding) {
	if b == nil {
		return
	}
	vs.timeline.Cancel(b.handle)
	b.handle = Handle{}
	if i := slices.Index(vs.owned, b); i >= 0 {
		vs.owned = slices.Delete(vs.owned, i, i+1)
	}
	vs.stopObserving(b)
}

// UnbindAll 解除所有绑定（场景卸载）
func (vs *ViewportTriggerSystem) UnbindAll() {
	for _, b := range slices.Clone(vs.owned) {
		vs.Unbind(b)
	}
}

// BindingCount 观察中的绑定数量
func (vs *ViewportTriggerSystem) BindingCount() int {
	return len(vs.bindings)
}

// Progress 返回元素在起止条件之间的滚动进度 0..1
func (vs *ViewportTriggerSystem) Progress(b *TriggerBinding) float64 {
	if b == nil {
		return 0
	}
	layout, ok := ecs.GetComponent[*components.LayoutComponent](vs.entityManager, b.Element)
	if !ok {
		return 0
	}
	return vs.progress(b, layout)
}

func (vs *ViewportTriggerSystem) onScroll(game.ScrollEvent) {
	for _, b := range slices.Clone(vs.bindings) {
		if b.observing {
			vs.evaluate(b)
		}
	}
}

// evaluate 根据当前滚动位置更新单个绑定
func (vs *ViewportTriggerSystem) evaluate(b *TriggerBinding) {
	layout, ok := ecs.GetComponent[*components.LayoutComponent](vs.entityManager, b.Element)
	if !ok {
		vs.Unbind(b)
		return
	}

	if b.Scrub {
		vs.timeline.Seek(b.handle, vs.progress(b, layout))
		return
	}

	startScroll := b.StartCondition.ScrollPosition(layout.Top, layout.Height, vs.viewport.Height())
	nowPassed := vs.viewport.ScrollY() >= startScroll
	switch {
	case nowPassed && !b.passed:
		b.passed = true
		vs.fire(b)
	case !nowPassed && b.passed:
		b.passed = false
		if b.onLeaveBack != nil {
			b.onLeaveBack()
		}
	}
}

// fire 向下越过起始线：重新播放序列
// 一次性绑定触发后停止观察，但序列继续播放直到完成或被 Unbind
func (vs *ViewportTriggerSystem) fire(b *TriggerBinding) {
	b.FiredOnce = true
	vs.timeline.Cancel(b.handle)
	b.handle = vs.timeline.Play(b.Sequence, PlayOptions{})
	vs.logger.Debug("trigger fired",
		zap.Uint64("element", uint64(b.Element)),
		zap.String("start", b.StartCondition.String()),
		zap.Bool("once", b.Once))
	if b.onEnter != nil {
		b.onEnter()
	}
	if b.Once {
		vs.stopObserving(b)
	}
}

func (vs *ViewportTriggerSystem) progress(b *TriggerBinding, layout *components.LayoutComponent) float64 {
	vh := vs.viewport.Height()
	start := b.StartCondition.ScrollPosition(layout.Top, layout.Height, vh)
	end := b.EndCondition.ScrollPosition(layout.Top, layout.Height, vh)
	scroll := vs.viewport.ScrollY()
	if end <= start {
		if scroll >= start {
			return 1
		}
		return 0
	}
	return clamp01((scroll - start) / (end - start))
}

func (vs *ViewportTriggerSystem) stopObserving(b *TriggerBinding) {
	b.observing = false
	if i := slices.Index(vs.bindings, b); i >= 0 {
		vs.bindings = slices.Delete(vs.bindings, i, i+1)
	}
	if len(vs.bindings) == 0 && vs.sub != nil {
		vs.sub.Cancel()
		vs.sub = nil
	}
}

// unbindElement 元素卸载时解除它的所有绑定
func (vs *ViewportTriggerSystem) unbindElement(id ecs.EntityID) {
	for _, b := range slices.Clone(vs.owned) {
		if b.Element == id {
			vs.Unbind(b)
		}
	}
}

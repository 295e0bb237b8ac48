package systems

import (
	"slices"

	"go.uber.org/zap"

	"github.com/decker502/storefront/pkg/components"
	"github.com/decker502/storefront/pkg/config"
	"github.com/decker502/storefront/pkg/ecs"
	"github.com/decker502/storefront/pkg/timeline"
)

// ReflowState 筛选重排状态机状态
type ReflowState int

const (
	ReflowIdle ReflowState = iota
	ReflowExitPlaying
	ReflowEnterPlaying
)

func (s ReflowState) String() string {
	switch s {
	case ReflowIdle:
		return "Idle"
	case ReflowExitPlaying:
		return "ExitPlaying"
	case ReflowEnterPlaying:
		return "EnterPlaying"
	}
	return "Unknown"
}

// FilterState 筛选状态快照
type FilterState struct {
	ActiveCategory  string
	Items           []ecs.EntityID // 按目录顺序
	IsTransitioning bool
}

// ReflowChangeFunc 状态迁移回调
type ReflowChangeFunc func(from, to ReflowState, category string)

// FilterReflowSystem 分类筛选的退场/切换/入场编排
//
// 状态机：Idle → ExitPlaying → EnterPlaying → Idle。
// 退场集合为空时 Idle 直接进入 EnterPlaying。
// 过渡期间的新请求被丢弃（不排队）。
// 显示状态的切换严格发生在退场完成之后、入场开始之前。
type FilterReflowSystem struct {
	entityManager *ecs.EntityManager
	timeline      *TimelineSystem
	cfg           config.ReflowConfig
	logger        *zap.Logger

	state     ReflowState
	active    string
	exitSet   []ecs.EntityID
	enterSet  []ecs.EntityID
	handle    Handle
	listeners []ReflowChangeFunc
}

// NewFilterReflowSystem 创建筛选重排系统，初始分类为 all
func NewFilterReflowSystem(em *ecs.EntityManager, ts *TimelineSystem, cfg config.ReflowConfig, logger *zap.Logger) *FilterReflowSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FilterReflowSystem{
		entityManager: em,
		timeline:      ts,
		cfg:           cfg,
		logger:        logger.Named("FilterReflow"),
		active:        config.CategoryAll,
	}
}

// State 当前状态机状态
func (fs *FilterReflowSystem) State() ReflowState {
	return fs.state
}

// Snapshot 返回筛选状态快照
func (fs *FilterReflowSystem) Snapshot() FilterState {
	return FilterState{
		ActiveCategory:  fs.active,
		Items:           fs.items(),
		IsTransitioning: fs.state != ReflowIdle,
	}
}

// ActiveCategory 当前（或过渡中的目标）分类
func (fs *FilterReflowSystem) ActiveCategory() string {
	return fs.active
}

// OnChange 注册状态迁移回调
func (fs *FilterReflowSystem) OnChange(fn ReflowChangeFunc) {
	fs.listeners = append(fs.listeners, fn)
}

// SetActive 不播放动画地应用分类（初始渲染、恢复上次的筛选）
// 过渡期间调用无效
func (fs *FilterReflowSystem) SetActive(category string) {
	if fs.state != ReflowIdle {
		return
	}
	fs.active = category
	for _, id := range fs.items() {
		item, _ := ecs.GetComponent[*components.CatalogItemComponent](fs.entityManager, id)
		presence, _ := ecs.GetComponent[*components.PresenceComponent](fs.entityManager, id)
		presence.Displayed = config.Matches(item.Category, category)
		if tf := transformOf(fs.entityManager, id); tf != nil {
			tf.Reset()
			tf.Opacity = 1
		}
	}
}

// Request 请求切换到新分类
// 过渡进行中或分类未变化时丢弃请求并返回 false
func (fs *FilterReflowSystem) Request(category string) bool {
	if fs.state != ReflowIdle {
		fs.logger.Debug("request dropped, transition in progress",
			zap.String("category", category),
			zap.Stringer("state", fs.state))
		return false
	}
	if category == fs.active {
		return false
	}

	fs.exitSet = fs.exitSet[:0]
	fs.enterSet = fs.enterSet[:0]
	for _, id := range fs.items() {
		item, _ := ecs.GetComponent[*components.CatalogItemComponent](fs.entityManager, id)
		presence, _ := ecs.GetComponent[*components.PresenceComponent](fs.entityManager, id)
		matches := config.Matches(item.Category, category)
		if presence.Displayed && !matches {
			fs.exitSet = append(fs.exitSet, id)
		}
		if matches {
			fs.enterSet = append(fs.enterSet, id)
		}
	}
	fs.active = category
	fs.logger.Info("filter change",
		zap.String("category", category),
		zap.Int("exit", len(fs.exitSet)),
		zap.Int("enter", len(fs.enterSet)))

	if len(fs.exitSet) == 0 {
		fs.startEnter()
		return true
	}

	fs.transition(ReflowExitPlaying)
	fs.handle = fs.timeline.Play(fs.exitSequence(), PlayOptions{
		OnComplete:    fs.startEnter,
		OnTargetsGone: fs.startEnter,
	})
	if !fs.handle.Valid() {
		fs.startEnter()
	}
	return true
}

// Teardown 取消进行中的序列并回到 Idle（卸载）
// 过渡中途取消时直接应用目标分类，显示状态与 ActiveCategory 保持一致
func (fs *FilterReflowSystem) Teardown() {
	fs.timeline.Cancel(fs.handle)
	fs.handle = Handle{}
	fs.exitSet = fs.exitSet[:0]
	fs.enterSet = fs.enterSet[:0]
	if fs.state != ReflowIdle {
		fs.transition(ReflowIdle)
		fs.SetActive(fs.active)
	}
}

// startEnter 切换显示状态并播放入场序列
func (fs *FilterReflowSystem) startEnter() {
	fs.handle = Handle{}
	fs.swapPresence()
	fs.transition(ReflowEnterPlaying)
	fs.handle = fs.timeline.Play(fs.enterSequence(), PlayOptions{
		OnComplete:    fs.finish,
		OnTargetsGone: fs.finish,
	})
	if !fs.handle.Valid() {
		fs.finish()
	}
}

func (fs *FilterReflowSystem) finish() {
	fs.handle = Handle{}
	fs.transition(ReflowIdle)
}

// swapPresence 隐藏退场元素并复位，入场元素显示并置于入场起始状态
func (fs *FilterReflowSystem) swapPresence() {
	en := fs.cfg.Enter
	for _, id := range fs.exitSet {
		if presence, ok := ecs.GetComponent[*components.PresenceComponent](fs.entityManager, id); ok {
			presence.Displayed = false
		}
		if tf := transformOf(fs.entityManager, id); tf != nil {
			tf.Reset()
			tf.Opacity = 0
		}
	}
	for _, id := range fs.enterSet {
		if presence, ok := ecs.GetComponent[*components.PresenceComponent](fs.entityManager, id); ok {
			presence.Displayed = true
		}
		if tf := transformOf(fs.entityManager, id); tf != nil {
			tf.Reset()
			tf.Opacity = en.Opacity
			tf.Y = en.Y
			tf.Scale = en.Scale
		}
	}
}

func (fs *FilterReflowSystem) exitSequence() *timeline.Sequence {
	ex := fs.cfg.Exit
	curve := timeline.Curve(ex.Ease)
	steps := timeline.Stagger(fs.exitSet, ex.Stagger, func(id ecs.EntityID) []timeline.Step {
		return []timeline.Step{
			timeline.To(id, timeline.PropOpacity, ex.Opacity, ex.Duration, curve),
			timeline.To(id, timeline.PropScale, ex.Scale, ex.Duration, curve),
			timeline.To(id, timeline.PropY, ex.Y, ex.Duration, curve),
		}
	})
	return timeline.MustBuild(steps)
}

func (fs *FilterReflowSystem) enterSequence() *timeline.Sequence {
	en := fs.cfg.Enter
	curve := timeline.Curve(en.Ease)
	steps := timeline.Stagger(fs.enterSet, en.Stagger, func(id ecs.EntityID) []timeline.Step {
		return []timeline.Step{
			timeline.To(id, timeline.PropOpacity, 1, en.Duration, curve),
			timeline.To(id, timeline.PropY, 0, en.Duration, curve),
			timeline.To(id, timeline.PropScale, 1, en.Duration, curve),
		}
	})
	return timeline.MustBuild(timeline.Shift(steps, fs.cfg.EnterLead))
}

// items 返回所有目录卡片，按目录顺序排列
func (fs *FilterReflowSystem) items() []ecs.EntityID {
	ids := ecs.GetEntitiesWith2[*components.CatalogItemComponent, *components.PresenceComponent](fs.entityManager)
	slices.SortStableFunc(ids, func(a, b ecs.EntityID) int {
		ia, _ := ecs.GetComponent[*components.CatalogItemComponent](fs.entityManager, a)
		ib, _ := ecs.GetComponent[*components.CatalogItemComponent](fs.entityManager, b)
		return ia.Order - ib.Order
	})
	return ids
}

func (fs *FilterReflowSystem) transition(to ReflowState) {
	from := fs.state
	fs.state = to
	fs.logger.Debug("state", zap.Stringer("from", from), zap.Stringer("to", to), zap.String("category", fs.active))
	for _, fn := range fs.listeners {
		fn(from, to, fs.active)
	}
}

package systems

import (
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/decker502/storefront/pkg/ecs"
	"github.com/decker502/storefront/pkg/game"
	"github.com/decker502/storefront/pkg/timeline"
)

// timeEpsilon 吸收逐帧累加 dt 的浮点误差
const timeEpsilon = 1e-9

// Handle 标识一次序列播放
// 零值是无效句柄，对它的所有操作都是空操作
type Handle struct {
	id uint64
}

// Valid 报告句柄是否指向一次真实的播放
func (h Handle) Valid() bool {
	return h.id != 0
}

// PlayOptions 播放选项
type PlayOptions struct {
	// OnComplete 播放到序列末尾时调用一次（可重复序列永不调用）
	OnComplete func()
	// OnTargetsGone 序列涉及的元素全部卸载、播放被丢弃时调用
	OnTargetsGone func()
	// Paused 为 true 时时钟不推进播放，只能通过 Seek 定位（滚动联动）
	Paused bool
}

// timelineRun 一次正在进行的播放
type timelineRun struct {
	id       uint64
	seq      *timeline.Sequence
	base     map[timeline.Key]float64
	elapsed  float64
	paused   bool
	complete func()
	gone     func()
}

// TimelineSystem 按帧时钟推进序列播放，并把采样结果写入元素的变换组件
//
// 只有存在活动播放时才订阅帧时钟；最后一个播放结束或被取消后立即退订。
type TimelineSystem struct {
	entityManager *ecs.EntityManager
	clock         game.FrameClock
	logger        *zap.Logger

	runs      map[uint64]*timelineRun
	order     []uint64 // 播放开始顺序，决定同一帧内写入先后
	nextID    uint64
	sub       *game.Subscription
	timeScale float64
}

// NewTimelineSystem 创建时间轴播放系统
// 元素卸载时自动从所有播放中剔除该元素
func NewTimelineSystem(em *ecs.EntityManager, clock game.FrameClock, logger *zap.Logger) *TimelineSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	ts := &TimelineSystem{
		entityManager: em,
		clock:         clock,
		logger:        logger.Named("Timeline"),
		runs:          make(map[uint64]*timelineRun),
		timeScale:     1,
	}
	em.OnDestroy(ts.CancelTarget)
	return ts
}

// SetTimeScale 设置时间倍率（减少动态效果时放大倍率，让动画几乎瞬间完成）
func (ts *TimelineSystem) SetTimeScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	ts.timeScale = scale
}

// Play 开始播放序列
//
// 未挂载元素的步骤被静默跳过；所有元素都未挂载时返回无效句柄。
// 未指定起始值的步骤在这一刻读取元素当前值作为起点，
// 时刻 0 的状态立即写入（显式起始值不会等到下一帧才生效）。
func (ts *TimelineSystem) Play(seq *timeline.Sequence, opts PlayOptions) Handle {
	if seq == nil {
		return Handle{}
	}
	live := seq.Without(func(id ecs.EntityID) bool { return transformOf(ts.entityManager, id) == nil })
	if live.Len() == 0 && seq.Len() > 0 {
		ts.logger.Debug("play skipped, all targets absent", zap.Int("steps", seq.Len()))
		return Handle{}
	}

	ts.nextID++
	run := &timelineRun{
		id:       ts.nextID,
		seq:      live,
		base:     make(map[timeline.Key]float64),
		paused:   opts.Paused,
		complete: opts.OnComplete,
		gone:     opts.OnTargetsGone,
	}
	for _, k := range live.Keys() {
		if tf := transformOf(ts.entityManager, k.Target); tf != nil {
			run.base[k] = readProperty(tf, k.Property)
		}
	}
	ts.runs[run.id] = run
	ts.order = append(ts.order, run.id)
	ts.apply(run)
	ts.ensureSubscribed()

	ts.logger.Debug("play",
		zap.Uint64("run", run.id),
		zap.Int("steps", live.Len()),
		zap.Float64("duration", live.Duration()),
		zap.Bool("paused", run.paused))
	return Handle{id: run.id}
}

// Prime 立即写入序列在时刻 0 的状态，但不开始播放
// 滚动触发的入场动画用它让元素在触发前就处于起始状态
func (ts *TimelineSystem) Prime(seq *timeline.Sequence) {
	if seq == nil {
		return
	}
	live := seq.Without(func(id ecs.EntityID) bool { return transformOf(ts.entityManager, id) == nil })
	for k, v := range live.Sample(0, func(k timeline.Key) float64 {
		return readProperty(transformOf(ts.entityManager, k.Target), k.Property)
	}) {
		writeProperty(transformOf(ts.entityManager, k.Target), k.Property, v)
	}
}

// Cancel 立即停止播放：属性保持当前值，不回退，不触发完成回调
func (ts *TimelineSystem) Cancel(h Handle) {
	if _, ok := ts.runs[h.id]; !ok {
		return
	}
	ts.remove(h.id)
}

// Seek 把播放定位到 progress（0..1）对应的时刻并写入采样结果
// 被定位的播放进入暂停状态，之后不再随时钟推进
func (ts *TimelineSystem) Seek(h Handle, progress float64) {
	run, ok := ts.runs[h.id]
	if !ok {
		return
	}
	run.paused = true
	run.elapsed = clamp01(progress) * run.seq.Duration()
	ts.apply(run)
}

// Active 报告句柄对应的播放是否仍在进行
func (ts *TimelineSystem) Active(h Handle) bool {
	_, ok := ts.runs[h.id]
	return ok
}

// Progress 返回播放进度 0..1；无效句柄返回 0
func (ts *TimelineSystem) Progress(h Handle) float64 {
	run, ok := ts.runs[h.id]
	if !ok || run.seq.Duration() == 0 {
		return 0
	}
	return clamp01(run.elapsed / run.seq.Duration())
}

// RunCount 当前活动播放数量
func (ts *TimelineSystem) RunCount() int {
	return len(ts.runs)
}

// CancelTarget 从所有播放中剔除元素的步骤（元素卸载）
// 剔除后为空的播放被丢弃，并调用其 OnTargetsGone
func (ts *TimelineSystem) CancelTarget(id ecs.EntityID) {
	for _, runID := range slices.Clone(ts.order) {
		run, ok := ts.runs[runID]
		if !ok || !slices.Contains(run.seq.Targets(), id) {
			continue
		}
		run.seq = run.seq.Without(func(t ecs.EntityID) bool { return t == id })
		if run.seq.Len() > 0 {
			continue
		}
		ts.remove(runID)
		ts.logger.Debug("run dropped, targets unmounted", zap.Uint64("run", runID))
		if run.gone != nil {
			run.gone()
		}
	}
}

// CancelAll 停止所有播放（场景卸载）
func (ts *TimelineSystem) CancelAll() {
	for _, id := range slices.Clone(ts.order) {
		ts.remove(id)
	}
}

// tick 帧回调：推进未暂停的播放，完成的播放移除后调用完成回调
func (ts *TimelineSystem) tick(dt float64) {
	// 回调里可能开始新的播放，新播放从下一帧开始推进
	for _, id := range slices.Clone(ts.order) {
		run, ok := ts.runs[id]
		if !ok || run.paused {
			continue
		}
		run.elapsed += dt * ts.timeScale
		duration := run.seq.Duration()
		if run.elapsed+timeEpsilon < duration {
			ts.apply(run)
			continue
		}
		if run.seq.Repeatable && duration > 0 {
			run.elapsed = math.Mod(run.elapsed, duration)
			ts.apply(run)
			continue
		}
		run.elapsed = duration
		ts.apply(run)
		ts.remove(id)
		if run.complete != nil {
			run.complete()
		}
	}
}

// apply 写入播放在当前时刻的采样结果，跳过已卸载的元素
func (ts *TimelineSystem) apply(run *timelineRun) {
	values := run.seq.Sample(run.elapsed, func(k timeline.Key) float64 { return run.base[k] })
	for k, v := range values {
		if tf := transformOf(ts.entityManager, k.Target); tf != nil {
			writeProperty(tf, k.Property, v)
		}
	}
}

func (ts *TimelineSystem) remove(id uint64) {
	delete(ts.runs, id)
	if i := slices.Index(ts.order, id); i >= 0 {
		ts.order = slices.Delete(ts.order, i, i+1)
	}
	if len(ts.runs) == 0 && ts.sub != nil {
		ts.sub.Cancel()
		ts.sub = nil
	}
}

func (ts *TimelineSystem) ensureSubscribed() {
	if ts.sub == nil {
		ts.sub = ts.clock.Subscribe(ts.tick)
	}
}

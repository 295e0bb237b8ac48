package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/storefront/pkg/config"
	"github.com/decker502/storefront/pkg/ecs"
	"github.com/decker502/storefront/pkg/timeline"
)

func fadeUp(id ecs.EntityID) *timeline.Sequence {
	return timeline.MustBuild([]timeline.Step{
		timeline.NewStep(id, timeline.PropY, 50, 0, 0.9, "power3.out", 0),
		timeline.NewStep(id, timeline.PropOpacity, 0, 1, 0.9, "power3.out", 0),
	})
}

func TestTriggerOnceFiresOnceAcrossCrossings(t *testing.T) {
	h := newHarness()
	vs := NewViewportTriggerSystem(h.em, h.viewport, h.timeline, nil)
	heading := h.boxed(0, 1600, 600, 200)

	// 视口高 800，"top 75%" 对应滚动位置 1600 - 600 = 1000
	fired := 0
	b := vs.Bind(heading, config.MustParseCondition("top 75%"), fadeUp(heading), TriggerOptions{
		Once:    true,
		OnEnter: func() { fired++ },
	})
	require.NotNil(t, b)
	assert.Equal(t, 1, h.viewport.SubscriberCount())

	for i := 0; i < 3; i++ {
		h.viewport.ScrollTo(1100)
		h.viewport.ScrollTo(500)
	}

	assert.Equal(t, 1, fired, "once 绑定在三次越线中只触发一次")
	assert.True(t, b.FiredOnce)
	assert.Equal(t, 0, vs.BindingCount())
	assert.Equal(t, 0, h.viewport.SubscriberCount(), "触发后应释放滚动订阅")

	// 序列在解除观察后继续播放直到完成
	assert.Equal(t, 1, h.clock.SubscriberCount())
	h.clock.Advance(1, frame)
	assert.Equal(t, 0.0, h.transform(heading).Y)
	assert.Equal(t, 1.0, h.transform(heading).Opacity)
	assert.Equal(t, 0, h.clock.SubscriberCount())
}

func TestTriggerReplaysAfterReversal(t *testing.T) {
	h := newHarness()
	vs := NewViewportTriggerSystem(h.em, h.viewport, h.timeline, nil)
	card := h.boxed(0, 1600, 300, 300)

	entered, left := 0, 0
	vs.Bind(card, config.MustParseCondition("top 75%"), fadeUp(card), TriggerOptions{
		OnEnter:     func() { entered++ },
		OnLeaveBack: func() { left++ },
	})

	h.viewport.ScrollTo(900)
	assert.Equal(t, 0, entered, "尚未越过触发线")

	for i := 0; i < 3; i++ {
		h.viewport.ScrollTo(1200)
		h.viewport.ScrollTo(1300) // 同侧滚动不重复触发
		h.viewport.ScrollTo(400)
	}
	assert.Equal(t, 3, entered)
	assert.Equal(t, 3, left)
	assert.Equal(t, 1, vs.BindingCount())
}

func TestTriggerFiresImmediatelyWhenAlreadyPast(t *testing.T) {
	h := newHarness()
	vs := NewViewportTriggerSystem(h.em, h.viewport, h.timeline, nil)
	hero := h.boxed(0, 100, 1280, 600)

	fired := 0
	vs.Bind(hero, config.MustParseCondition("top 82%"), fadeUp(hero), TriggerOptions{
		Once:    true,
		OnEnter: func() { fired++ },
	})
	assert.Equal(t, 1, fired, "元素已在视口内时建立绑定即触发")
	assert.Equal(t, 50.0, h.transform(hero).Y)
}

func TestTriggerScrubIsExact(t *testing.T) {
	h := newHarness()
	vs := NewViewportTriggerSystem(h.em, h.viewport, h.timeline, nil)
	slider := h.boxed(0, 1000, 1280, 1000)

	seq := timeline.MustBuild([]timeline.Step{timeline.NewStep(slider, timeline.PropX, 0, -500, 1, "linear", 0)})
	// 起点滚动 1000，终点（底边到达视口顶部）滚动 2000
	b := vs.Bind(slider, config.MustParseCondition("top top"), seq, TriggerOptions{
		Scrub: true,
		End:   config.MustParseCondition("bottom top"),
	})
	require.NotNil(t, b)
	assert.Equal(t, 0.0, h.transform(slider).X)

	h.viewport.ScrollTo(1500)
	assert.InDelta(t, 0.5, vs.Progress(b), 1e-9)
	assert.InDelta(t, -250, h.transform(slider).X, 1e-3)

	h.viewport.ScrollTo(1250)
	assert.InDelta(t, 0.25, vs.Progress(b), 1e-9)
	assert.InDelta(t, -125, h.transform(slider).X, 1e-3)

	// 越过两端时截断
	h.viewport.ScrollTo(5000)
	assert.InDelta(t, -500, h.transform(slider).X, 1e-3)
	h.viewport.ScrollTo(0)
	assert.InDelta(t, 0, h.transform(slider).X, 1e-3)

	assert.False(t, b.FiredOnce, "联动绑定从不触发")

	// 联动播放不随时钟推进
	h.viewport.ScrollTo(1500)
	h.clock.Advance(2, frame)
	assert.InDelta(t, -250, h.transform(slider).X, 1e-3)
}

func TestTriggerAbsentElement(t *testing.T) {
	h := newHarness()
	vs := NewViewportTriggerSystem(h.em, h.viewport, h.timeline, nil)

	noLayout := h.element()
	assert.Nil(t, vs.Bind(noLayout, config.MustParseCondition("top 75%"), fadeUp(noLayout), TriggerOptions{}))
	assert.Nil(t, vs.Bind(ecs.InvalidEntity, config.MustParseCondition("top 75%"), nil, TriggerOptions{}))
	assert.Equal(t, 0, h.viewport.SubscriberCount())

	vs.Unbind(nil)
}

func TestTriggerUnmountReleasesSubscriptions(t *testing.T) {
	h := newHarness()
	vs := NewViewportTriggerSystem(h.em, h.viewport, h.timeline, nil)

	beforeScroll := h.viewport.SubscriberCount()
	beforeClock := h.clock.SubscriberCount()

	a := h.boxed(0, 1600, 300, 300)
	b := h.boxed(0, 2400, 300, 300)
	scrub := timeline.MustBuild([]timeline.Step{timeline.To(b, timeline.PropScale, 4, 1, "linear")})
	vs.Bind(a, config.MustParseCondition("top 75%"), fadeUp(a), TriggerOptions{})
	vs.Bind(b, config.MustParseCondition("top top"), scrub, TriggerOptions{Scrub: true, End: config.MustParseCondition("bottom bottom")})

	h.viewport.ScrollTo(1100) // a 触发，开始播放
	assert.Equal(t, 1, h.viewport.SubscriberCount())
	assert.Equal(t, 1, h.clock.SubscriberCount())

	h.unmount(a, b)

	assert.Equal(t, 0, vs.BindingCount())
	assert.Equal(t, beforeScroll, h.viewport.SubscriberCount())
	assert.Equal(t, beforeClock, h.clock.SubscriberCount())
	assert.Equal(t, 0, h.timeline.RunCount())
}

func TestTriggerUnbindCancelsSequence(t *testing.T) {
	h := newHarness()
	vs := NewViewportTriggerSystem(h.em, h.viewport, h.timeline, nil)
	heading := h.boxed(0, 1600, 600, 200)

	b := vs.Bind(heading, config.MustParseCondition("top 75%"), fadeUp(heading), TriggerOptions{Once: true})
	h.viewport.ScrollTo(1100)
	h.clock.Advance(0.3, frame)
	y := h.transform(heading).Y

	vs.Unbind(b)
	h.clock.Advance(1, frame)
	assert.Equal(t, y, h.transform(heading).Y, "解除绑定后序列停止，不回退")
	assert.Equal(t, 0, h.clock.SubscriberCount())
}

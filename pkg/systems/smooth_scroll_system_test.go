package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/storefront/pkg/config"
	"github.com/decker502/storefront/pkg/game"
)

func newSmoothScroll(h *harness) *SmoothScrollSystem {
	return NewSmoothScrollSystem(h.viewport, h.clock, config.SmoothScrollConfig{Lerp: 0.1, WheelMultiplier: 60}, 3000, nil)
}

func TestSmoothScrollConverges(t *testing.T) {
	h := newHarness()
	ss := newSmoothScroll(h)

	var events []game.ScrollEvent
	h.viewport.Subscribe(func(ev game.ScrollEvent) { events = append(events, ev) })

	ss.Wheel(5)
	assert.Equal(t, 300.0, ss.Target())
	assert.True(t, ss.Animating())

	prev := 0.0
	for i := 0; i < 10; i++ {
		h.clock.Tick(frame)
		assert.Greater(t, h.viewport.ScrollY(), prev, "逐帧逼近目标")
		assert.Less(t, h.viewport.ScrollY(), 300.0)
		prev = h.viewport.ScrollY()
	}

	h.clock.Advance(5, frame)
	assert.Equal(t, 300.0, h.viewport.ScrollY())
	assert.False(t, ss.Animating())
	assert.Equal(t, 0, h.clock.SubscriberCount(), "到达目标后退订帧时钟")

	require.NotEmpty(t, events)
	for _, ev := range events {
		assert.Equal(t, game.ScrollDown, ev.Direction)
	}
}

func TestSmoothScrollClamps(t *testing.T) {
	h := newHarness()
	ss := newSmoothScroll(h)
	assert.Equal(t, 2200.0, ss.MaxScroll())

	ss.Wheel(1000)
	assert.Equal(t, 2200.0, ss.Target())

	ss.Wheel(-1000)
	assert.Equal(t, 0.0, ss.Target())

	ss.SetPageHeight(500)
	assert.Equal(t, 0.0, ss.MaxScroll(), "页面比视口短时不能滚动")
}

func TestSmoothScrollImmediate(t *testing.T) {
	h := newHarness()
	ss := newSmoothScroll(h)

	ss.Wheel(3)
	ss.ScrollTo(1200, true)
	assert.Equal(t, 1200.0, h.viewport.ScrollY())
	assert.False(t, ss.Animating())
	assert.Equal(t, 0, h.clock.SubscriberCount())

	ss.Wheel(0)
	assert.False(t, ss.Animating())
}

func TestSmoothScrollPageShrinkPullsBack(t *testing.T) {
	h := newHarness()
	ss := newSmoothScroll(h)

	ss.ScrollTo(2000, true)
	ss.SetPageHeight(2000)
	assert.Equal(t, 1200.0, ss.MaxScroll())
	assert.Equal(t, 1200.0, h.viewport.ScrollY())
	assert.Equal(t, 1200.0, ss.Target())
	assert.False(t, ss.Animating())
}

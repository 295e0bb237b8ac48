package systems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/storefront/pkg/ecs"
	"github.com/decker502/storefront/pkg/timeline"
)

func followXY(smoothing float64) []FollowProperty {
	return []FollowProperty{
		{Name: timeline.PropX, Axis: AxisX, SmoothingDuration: smoothing, Ease: "power3"},
		{Name: timeline.PropY, Axis: AxisY, SmoothingDuration: smoothing, Ease: "power3"},
	}
}

func TestFollowersConvergeShorterSmoothingFirst(t *testing.T) {
	h := newHarness()
	ps := NewPointerFollowSystem(h.em, h.pointer, h.clock, nil)

	cursor := h.element()
	preview := h.element()
	require.True(t, ps.Follow(cursor, followXY(0.5)))
	require.True(t, ps.Follow(preview, followXY(0.8)))

	h.pointer.Move(100, 100)

	arrived := map[ecs.EntityID]int{}
	for f := 1; f <= 120; f++ {
		h.clock.Tick(frame)
		for _, id := range []ecs.EntityID{cursor, preview} {
			tf := h.transform(id)
			if _, ok := arrived[id]; !ok && math.Abs(tf.X-100) < 0.5 && math.Abs(tf.Y-100) < 0.5 {
				arrived[id] = f
			}
		}
	}

	require.Contains(t, arrived, cursor)
	require.Contains(t, arrived, preview)
	assert.Less(t, arrived[cursor], arrived[preview], "平滑时长短的跟随者先到达")

	for _, id := range []ecs.EntityID{cursor, preview} {
		assert.Equal(t, 100.0, h.transform(id).X)
		assert.Equal(t, 100.0, h.transform(id).Y)
	}
	st, ok := ps.State(preview, timeline.PropX)
	require.True(t, ok)
	assert.Equal(t, 100.0, st.Current)
	assert.Equal(t, 100.0, st.Goal)
}

func TestFollowersShareOneSubscription(t *testing.T) {
	h := newHarness()
	ps := NewPointerFollowSystem(h.em, h.pointer, h.clock, nil)

	before := h.pointer.SubscriberCount()
	ids := []ecs.EntityID{h.element(), h.element(), h.element()}
	for i, id := range ids {
		ps.Follow(id, followXY(0.45+float64(i)*0.2))
	}
	assert.Equal(t, before+1, h.pointer.SubscriberCount())
	assert.Equal(t, 1, h.clock.SubscriberCount())
	assert.Equal(t, 6, ps.StateCount())

	ps.Release(ids[0])
	assert.Equal(t, 4, ps.StateCount())
	assert.Equal(t, before+1, h.pointer.SubscriberCount())

	h.unmount(ids[1], ids[2])
	assert.Equal(t, 0, ps.StateCount())
	assert.Equal(t, before, h.pointer.SubscriberCount(), "最后一个注册释放后退订指针源")
	assert.Equal(t, 0, h.clock.SubscriberCount())
}

func TestFollowRetargetRestartsFromCurrent(t *testing.T) {
	h := newHarness()
	ps := NewPointerFollowSystem(h.em, h.pointer, h.clock, nil)
	dot := h.element()
	ps.Follow(dot, []FollowProperty{{Name: timeline.PropX, Axis: AxisX, SmoothingDuration: 1, Ease: "linear"}})

	h.pointer.Move(100, 0)
	h.clock.Advance(0.5, 0.1)
	mid := h.transform(dot).X
	assert.InDelta(t, 50, mid, 1e-3)

	// 新目标：从当前值重新补间
	h.pointer.Move(0, 0)
	h.clock.Advance(0.5, 0.1)
	assert.InDelta(t, mid/2, h.transform(dot).X, 1e-3)

	h.clock.Advance(1, 0.1)
	assert.Equal(t, 0.0, h.transform(dot).X)
}

func TestFollowOffsetAndMap(t *testing.T) {
	h := newHarness()
	ps := NewPointerFollowSystem(h.em, h.pointer, h.clock, nil)
	ring := h.element()
	ps.Follow(ring, []FollowProperty{
		{Name: timeline.PropX, Axis: AxisX, SmoothingDuration: 0.1, Offset: -20},
		{Name: timeline.PropY, SmoothingDuration: 0.1, Map: func(x, y float64) float64 { return y * 2 }},
	})

	h.pointer.Move(200, 50)
	h.clock.Advance(0.2, frame)
	assert.Equal(t, 180.0, h.transform(ring).X)
	assert.Equal(t, 100.0, h.transform(ring).Y)

	ps.SetGoal(ring, timeline.PropX, 0)
	h.clock.Advance(0.2, frame)
	assert.Equal(t, 0.0, h.transform(ring).X)
}

func TestFollowSpringOvershootsAndSettles(t *testing.T) {
	h := newHarness()
	ps := NewPointerFollowSystem(h.em, h.pointer, h.clock, nil)
	button := h.element()
	ps.Follow(button, []FollowProperty{{Name: timeline.PropX, Axis: AxisX, Spring: &SpringParams{Frequency: 6, Damping: 0.3}}})

	h.pointer.Move(40, 0)
	peak := 0.0
	for i := 0; i < 600; i++ {
		h.clock.Tick(frame)
		peak = math.Max(peak, h.transform(button).X)
	}
	assert.Greater(t, peak, 40.0, "欠阻尼弹簧应越过目标")
	assert.Equal(t, 40.0, h.transform(button).X, "最终停在目标上")
}

func TestFollowAbsentTarget(t *testing.T) {
	h := newHarness()
	ps := NewPointerFollowSystem(h.em, h.pointer, h.clock, nil)

	assert.False(t, ps.Follow(ecs.EntityID(42), followXY(0.5)))
	assert.Equal(t, 0, h.pointer.SubscriberCount())
	assert.Equal(t, 0, h.clock.SubscriberCount())

	_, ok := ps.State(ecs.EntityID(42), timeline.PropX)
	assert.False(t, ok)
	ps.Release(ecs.EntityID(42))
	ps.SetGoal(ecs.EntityID(42), timeline.PropX, 1)
}

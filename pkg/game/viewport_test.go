package game

import "testing"

// TestPageViewportScroll 测试滚动事件的方向与差值
func TestPageViewportScroll(t *testing.T) {
	vp := NewPageViewport(800, 600)
	var events []ScrollEvent
	sub := vp.Subscribe(func(ev ScrollEvent) { events = append(events, ev) })

	vp.ScrollTo(300)
	vp.ScrollTo(300) // 无变化
	vp.ScrollTo(120)

	if len(events) != 2 {
		t.Fatalf("events = %d, 期望 2", len(events))
	}
	if events[0].Direction != ScrollDown || events[0].Delta != 300 {
		t.Errorf("first event = %+v", events[0])
	}
	if events[1].Direction != ScrollUp || events[1].Delta != -180 {
		t.Errorf("second event = %+v", events[1])
	}
	if vp.ScrollY() != 120 || vp.LastDirection() != ScrollUp {
		t.Errorf("ScrollY=%v LastDirection=%v", vp.ScrollY(), vp.LastDirection())
	}

	sub.Cancel()
	if vp.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount() = %d, 期望 0", vp.SubscriberCount())
	}
}

package game

import (
	"math"
	"testing"
)

// TestTickSourceDispatch 测试帧回调按订阅顺序分发
func TestTickSourceDispatch(t *testing.T) {
	clock := NewTickSource()
	var order []string
	clock.Subscribe(func(dt float64) { order = append(order, "a") })
	clock.Subscribe(func(dt float64) { order = append(order, "b") })

	clock.Tick(1.0 / 60)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("dispatch order = %v, 期望 [a b]", order)
	}
	if clock.Frames() != 1 {
		t.Errorf("Frames() = %d, 期望 1", clock.Frames())
	}
}

// TestTickSourceCancel 测试取消订阅与订阅计数探针
func TestTickSourceCancel(t *testing.T) {
	clock := NewTickSource()
	calls := 0
	sub := clock.Subscribe(func(dt float64) { calls++ })
	if clock.SubscriberCount() != 1 {
		t.Fatalf("SubscriberCount() = %d, 期望 1", clock.SubscriberCount())
	}

	sub.Cancel()
	sub.Cancel() // 重复取消无副作用
	if clock.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount() = %d, 期望 0", clock.SubscriberCount())
	}
	if sub.Active() {
		t.Error("cancelled subscription should not be active")
	}

	clock.Tick(0.1)
	if calls != 0 {
		t.Errorf("cancelled callback called %d times", calls)
	}
}

// TestTickSourceCancelDuringDispatch 测试分发过程中取消后续订阅
func TestTickSourceCancelDuringDispatch(t *testing.T) {
	clock := NewTickSource()
	var second *Subscription
	secondCalls := 0
	clock.Subscribe(func(dt float64) { second.Cancel() })
	second = clock.Subscribe(func(dt float64) { secondCalls++ })

	clock.Tick(0.016)
	if secondCalls != 0 {
		t.Errorf("subscription cancelled mid-dispatch was called %d times", secondCalls)
	}
}

// TestTickSourceSubscribeDuringDispatch 分发中新增的订阅从下一帧开始生效
func TestTickSourceSubscribeDuringDispatch(t *testing.T) {
	clock := NewTickSource()
	lateCalls := 0
	added := false
	clock.Subscribe(func(dt float64) {
		if !added {
			added = true
			clock.Subscribe(func(dt float64) { lateCalls++ })
		}
	})

	clock.Tick(0.016)
	if lateCalls != 0 {
		t.Errorf("late subscriber called in same frame")
	}
	clock.Tick(0.016)
	if lateCalls != 1 {
		t.Errorf("late subscriber calls = %d, 期望 1", lateCalls)
	}
}

// TestTickSourceAdvance 测试固定步长推进
func TestTickSourceAdvance(t *testing.T) {
	clock := NewTickSource()
	total := 0.0
	clock.Subscribe(func(dt float64) { total += dt })

	n := clock.Advance(1.0, 1.0/60)
	if n != 60 {
		t.Errorf("Advance frames = %d, 期望 60", n)
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("total dt = %v, 期望 1.0", total)
	}

	clock.Tick(0)
	clock.Tick(-1)
	if clock.Frames() != 60 {
		t.Errorf("non-positive dt should be dropped, Frames() = %d", clock.Frames())
	}
}

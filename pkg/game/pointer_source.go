package game

// PointerFunc 指针移动回调，坐标为屏幕坐标（像素）
type PointerFunc func(x, y float64)

// PointerSource 全局指针位置源
//
// 多个跟随者共享同一个源（扇出），每个跟随者只持有一份订阅。
type PointerSource interface {
	Subscribe(fn PointerFunc) *Subscription
	SubscriberCount() int
	// Position 最近一次指针位置
	Position() (x, y float64)
}

// PointerHub 指针事件扇出器
// 运行时由场景每帧轮询 ebiten 光标位置后调用 Move，测试中直接调用 Move 合成事件
type PointerHub struct {
	subs   subscriberList[PointerFunc]
	x, y   float64
	moved  bool
	events uint64
}

// NewPointerHub 创建指针源
func NewPointerHub() *PointerHub {
	return &PointerHub{}
}

// Subscribe 注册指针移动回调
func (h *PointerHub) Subscribe(fn PointerFunc) *Subscription {
	return h.subs.add(fn)
}

// SubscriberCount 当前订阅数量
func (h *PointerHub) SubscriberCount() int {
	return h.subs.len()
}

// Move 记录新的指针位置并分发
// 位置未变化时不分发（轮询模式下每帧都会调用）
func (h *PointerHub) Move(x, y float64) {
	if h.moved && x == h.x && y == h.y {
		return
	}
	h.x, h.y = x, y
	h.moved = true
	h.events++
	h.subs.each(func(fn PointerFunc) { fn(x, y) })
}

// Position 最近一次指针位置
func (h *PointerHub) Position() (float64, float64) {
	return h.x, h.y
}

// Events 累计分发的移动事件数量
func (h *PointerHub) Events() uint64 {
	return h.events
}

package game

// TickFunc 帧回调，dt 为距上一帧的秒数
type TickFunc func(dt float64)

// FrameClock 全局帧时钟能力
//
// 所有动画进度都由它驱动。生产环境由 app.App 在每个 ebiten tick 调用 Tick，
// 测试中直接手动调用 Tick 以获得确定的时间推进。
type FrameClock interface {
	// Subscribe 注册帧回调，返回的订阅必须在拥有者卸载时取消
	Subscribe(fn TickFunc) *Subscription
	// SubscriberCount 当前订阅数量（泄漏探针）
	SubscriberCount() int
}

// TickSource 手动推进的帧时钟
type TickSource struct {
	subs    subscriberList[TickFunc]
	elapsed float64
	frames  uint64
}

// NewTickSource 创建帧时钟
func NewTickSource() *TickSource {
	return &TickSource{}
}

// Subscribe 注册帧回调
func (c *TickSource) Subscribe(fn TickFunc) *Subscription {
	return c.subs.add(fn)
}

// SubscriberCount 当前订阅数量
func (c *TickSource) SubscriberCount() int {
	return c.subs.len()
}

// Tick 推进一帧并按订阅顺序分发
// dt <= 0 的帧被丢弃（窗口失焦恢复时 ebiten 可能给出 0）
func (c *TickSource) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	c.elapsed += dt
	c.frames++
	c.subs.each(func(fn TickFunc) { fn(dt) })
}

// Advance 以固定步长推进 duration 秒，返回推进的帧数
func (c *TickSource) Advance(duration, step float64) int {
	n := 0
	for remaining := duration; remaining > 1e-9; remaining -= step {
		dt := step
		if remaining < step {
			dt = remaining
		}
		c.Tick(dt)
		n++
	}
	return n
}

// Elapsed 累计推进的秒数
func (c *TickSource) Elapsed() float64 {
	return c.elapsed
}

// Frames 累计推进的帧数
func (c *TickSource) Frames() uint64 {
	return c.frames
}

package game

// Subscription 表示对帧时钟、指针源或滚动源的一次订阅
// Cancel 可重复调用；分发过程中取消的订阅不会再收到本轮之后的回调
type Subscription struct {
	cancel func()
	done   bool
}

// Cancel 释放订阅
func (s *Subscription) Cancel() {
	if s == nil || s.done {
		return
	}
	s.done = true
	s.cancel()
}

// Active 报告订阅是否仍然有效
func (s *Subscription) Active() bool {
	return s != nil && !s.done
}

// subscriberList 按订阅顺序保存回调
// 页面逻辑是单线程的，这里不加锁
type subscriberList[F any] struct {
	nextID  uint64
	entries []subscriber[F]
}

type subscriber[F any] struct {
	id uint64
	fn F
}

func (l *subscriberList[F]) add(fn F) *Subscription {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, subscriber[F]{id: id, fn: fn})
	return &Subscription{cancel: func() { l.remove(id) }}
}

func (l *subscriberList[F]) remove(id uint64) {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *subscriberList[F]) contains(id uint64) bool {
	for _, e := range l.entries {
		if e.id == id {
			return true
		}
	}
	return false
}

// each 对快照逐个调用 call，跳过分发期间被取消的订阅
func (l *subscriberList[F]) each(call func(F)) {
	snapshot := make([]subscriber[F], len(l.entries))
	copy(snapshot, l.entries)
	for _, e := range snapshot {
		if !l.contains(e.id) {
			continue
		}
		call(e.fn)
	}
}

func (l *subscriberList[F]) len() int {
	return len(l.entries)
}

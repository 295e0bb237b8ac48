package game

// ScrollDirection 滚动方向
type ScrollDirection int

const (
	ScrollNone ScrollDirection = 0
	ScrollDown ScrollDirection = 1
	ScrollUp   ScrollDirection = -1
)

// ScrollEvent 滚动位置变化事件
type ScrollEvent struct {
	// ScrollY 新的页面滚动位置（像素，页面顶部为 0）
	ScrollY float64
	// Delta 与上次位置的差值
	Delta float64
	// Direction 滚动方向
	Direction ScrollDirection
}

// ScrollFunc 滚动回调
type ScrollFunc func(ev ScrollEvent)

// Viewport 视口几何能力：尺寸、当前滚动位置与滚动事件
type Viewport interface {
	Width() float64
	Height() float64
	ScrollY() float64
	Subscribe(fn ScrollFunc) *Subscription
	SubscriberCount() int
}

// PageViewport 可滚动页面的视口
type PageViewport struct {
	subs          subscriberList[ScrollFunc]
	width, height float64
	scrollY       float64
	lastDirection ScrollDirection
}

// NewPageViewport 创建指定尺寸的视口
func NewPageViewport(width, height float64) *PageViewport {
	return &PageViewport{width: width, height: height}
}

func (v *PageViewport) Width() float64   { return v.width }
func (v *PageViewport) Height() float64  { return v.height }
func (v *PageViewport) ScrollY() float64 { return v.scrollY }

// Subscribe 注册滚动回调
func (v *PageViewport) Subscribe(fn ScrollFunc) *Subscription {
	return v.subs.add(fn)
}

// SubscriberCount 当前订阅数量
func (v *PageViewport) SubscriberCount() int {
	return v.subs.len()
}

// ScrollTo 设置滚动位置并分发事件；位置不变时不分发
func (v *PageViewport) ScrollTo(y float64) {
	delta := y - v.scrollY
	if delta == 0 {
		return
	}
	v.scrollY = y
	dir := ScrollDown
	if delta < 0 {
		dir = ScrollUp
	}
	v.lastDirection = dir
	ev := ScrollEvent{ScrollY: y, Delta: delta, Direction: dir}
	v.subs.each(func(fn ScrollFunc) { fn(ev) })
}

// LastDirection 最近一次滚动方向
func (v *PageViewport) LastDirection() ScrollDirection {
	return v.lastDirection
}

package components

// LayoutComponent 元素在页面坐标系中的布局盒
//
// 页面坐标原点为页面顶部左侧，Top 随页面向下增大。
// 视口几何查询用它与当前滚动位置计算元素相对视口的位置。
type LayoutComponent struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64

	// Fixed 为 true 时元素不随页面滚动（自定义光标、悬浮预览）
	Fixed bool
}

// Bottom 返回布局盒底边的页面坐标
func (l *LayoutComponent) Bottom() float64 {
	return l.Top + l.Height
}

// Center 返回布局盒中心点
func (l *LayoutComponent) Center() (float64, float64) {
	return l.Left + l.Width/2, l.Top + l.Height/2
}

// Contains 检查页面坐标点是否位于布局盒内
func (l *LayoutComponent) Contains(x, y float64) bool {
	return x >= l.Left && x < l.Left+l.Width && y >= l.Top && y < l.Top+l.Height
}

package components

// TransformComponent 存储元素的可动画视觉属性
//
// 所有动画（时间轴、滚动触发、指针跟随、筛选重排）最终都只修改这里的字段，
// 渲染系统在绘制时将其叠加到 LayoutComponent 的布局位置之上：
//
//	绘制位置 = Layout.Left + X, Layout.Top + Y - 滚动偏移
type TransformComponent struct {
	// X 水平位移（像素，相对于布局位置）
	X float64
	// Y 垂直位移（像素，相对于布局位置）
	Y float64
	// Scale 统一缩放（1.0 = 原始大小）
	Scale float64
	// Opacity 不透明度 0.0 ~ 1.0
	Opacity float64
	// Rotation 旋转角度（度）
	Rotation float64
	// Width 可动画宽度（像素），用于分类标签下方的滑块
	Width float64
	// XPercent 以自身宽度为单位的水平位移（-100 = 向左移动一个自身宽度）
	XPercent float64
}

// NewTransform 返回处于静止状态的变换（原位、原大小、完全不透明）
func NewTransform() *TransformComponent {
	return &TransformComponent{
		Scale:   1.0,
		Opacity: 1.0,
	}
}

// Reset 清除位移、缩放与旋转，保留不透明度和宽度
func (t *TransformComponent) Reset() {
	t.X = 0
	t.Y = 0
	t.Scale = 1.0
	t.Rotation = 0
	t.XPercent = 0
}

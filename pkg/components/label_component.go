package components

import "image/color"

// LabelComponent 元素的绘制内容
// 渲染系统用纯色矩形加文字绘制元素，不依赖图片资源
type LabelComponent struct {
	Text       string
	Subtitle   string
	Background color.RGBA
	Foreground color.RGBA
	// Circle 为 true 时绘制为圆形（光标点、光标环）
	Circle bool
	// Layer 绘制层级，数值大的后绘制
	Layer int
}

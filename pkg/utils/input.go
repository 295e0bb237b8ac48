// Package utils 提供 ebiten 输入轮询工具
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerFrame 一帧的指针输入
// 鼠标与触摸统一处理，优先检测触摸
type PointerFrame struct {
	X, Y float64
	// JustPressed 本帧刚发生点击或触摸
	JustPressed bool
	// IsTouching 有活动的触摸
	IsTouching bool
	// WheelY 本帧的纵向滚动量（刻度，向下为正）
	WheelY float64
}

// PollPointer 读取当前帧的指针状态
// 触摸拖动换算为滚动量，与鼠标滚轮共用同一套平滑滚动
func PollPointer(scroller *TouchScroller) PointerFrame {
	var f PointerFrame

	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		f.X, f.Y = float64(x), float64(y)
		f.IsTouching = true
		f.JustPressed = len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
		if scroller != nil {
			f.WheelY = scroller.Feed(true, f.Y)
		}
		return f
	}
	if scroller != nil {
		scroller.Feed(false, 0)
	}

	x, y := ebiten.CursorPosition()
	f.X, f.Y = float64(x), float64(y)
	f.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	// ebiten 的滚轮向下为负，页面滚动向下为正
	_, wy := ebiten.Wheel()
	f.WheelY = -wy
	return f
}

// TouchScroller 把触摸拖动换算为滚轮刻度
// 手指向上拖动页面向下滚动
type TouchScroller struct {
	// PixelsPerTick 多少像素的拖动等于一个滚轮刻度
	PixelsPerTick float64

	dragging bool
	lastY    float64
}

// NewTouchScroller 创建触摸滚动换算器
func NewTouchScroller(pixelsPerTick float64) *TouchScroller {
	if pixelsPerTick <= 0 {
		pixelsPerTick = 60
	}
	return &TouchScroller{PixelsPerTick: pixelsPerTick}
}

// Feed 输入一帧的触摸状态，返回本帧的滚动刻度
func (s *TouchScroller) Feed(touching bool, y float64) float64 {
	if !touching {
		s.dragging = false
		return 0
	}
	if !s.dragging {
		s.dragging = true
		s.lastY = y
		return 0
	}
	delta := s.lastY - y
	s.lastY = y
	return delta / s.PixelsPerTick
}

// Dragging 是否处于拖动中
func (s *TouchScroller) Dragging() bool {
	return s.dragging
}

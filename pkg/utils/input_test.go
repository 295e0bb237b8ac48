package utils

import (
	"testing"
)

func TestTouchScrollerFeed(t *testing.T) {
	s := NewTouchScroller(60)

	// 按下的第一帧只记录位置
	if got := s.Feed(true, 500); got != 0 {
		t.Errorf("first touch frame = %v, 期望 0", got)
	}
	if !s.Dragging() {
		t.Error("Expected Dragging after touch")
	}

	// 手指上移 120 像素 -> 向下滚动 2 刻度
	if got := s.Feed(true, 380); got != 2 {
		t.Errorf("drag up 120px = %v, 期望 2", got)
	}
	// 手指下移 30 像素 -> 向上滚动 0.5 刻度
	if got := s.Feed(true, 410); got != -0.5 {
		t.Errorf("drag down 30px = %v, 期望 -0.5", got)
	}

	// 松开后重新按下不产生跳变
	s.Feed(false, 0)
	if s.Dragging() {
		t.Error("Expected Dragging false after release")
	}
	if got := s.Feed(true, 100); got != 0 {
		t.Errorf("re-touch frame = %v, 期望 0", got)
	}
}

func TestNewTouchScrollerDefault(t *testing.T) {
	if s := NewTouchScroller(0); s.PixelsPerTick != 60 {
		t.Errorf("PixelsPerTick = %v, 期望 60", s.PixelsPerTick)
	}
}

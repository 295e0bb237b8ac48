package systems

import (
	"image/color"
	"math"
	"testing"

	"github.com/decker502/storefront/pkg/components"
)

func TestScreenRect(t *testing.T) {
	layout := &components.LayoutComponent{Left: 100, Top: 200, Width: 200, Height: 100}

	tests := []struct {
		name    string
		tf      components.TransformComponent
		fixed   bool
		scrollY float64
		want    Rect
	}{
		{"静止", components.TransformComponent{Scale: 1, Opacity: 1}, false, 0, Rect{100, 200, 200, 100}},
		{"缩放以中心为原点", components.TransformComponent{Scale: 0.5, X: 10, Y: -20}, false, 50, Rect{160, 155, 100, 50}},
		{"xPercent 按自身宽度", components.TransformComponent{Scale: 1, XPercent: -100}, false, 0, Rect{-100, 200, 200, 100}},
		{"固定元素不随滚动", components.TransformComponent{Scale: 1}, true, 500, Rect{100, 200, 200, 100}},
		{"宽度覆盖", components.TransformComponent{Scale: 1, Width: 80}, false, 0, Rect{100, 200, 80, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := *layout
			l.Fixed = tt.fixed
			tf := tt.tf
			got := ScreenRect(&l, &tf, tt.scrollY)
			if got != tt.want {
				t.Errorf("ScreenRect = %+v, 期望 %+v", got, tt.want)
			}
		})
	}
}

func TestFade(t *testing.T) {
	got := fade(color.RGBA{200, 100, 50, 255}, 0.5)
	want := color.RGBA{100, 50, 25, 127}
	if got != want {
		t.Errorf("fade = %v, 期望 %v", got, want)
	}
	if fade(want, 2) != want {
		t.Error("opacity > 1 should clamp")
	}
}

func TestLabelFaceMeasure(t *testing.T) {
	rs, err := NewRenderSystem(nil, nil)
	if err != nil {
		t.Fatalf("NewRenderSystem: %v", err)
	}

	w, h := rs.MeasureText("abc\nde")
	_, oneLine := rs.MeasureText("abc")
	if math.Abs(h-oneLine-labelLineSpacing) > 1e-9 {
		t.Errorf("两行高度 %v 与单行高度 %v 应相差一个行距 %v", h, oneLine, labelLineSpacing)
	}
	if w <= 0 {
		t.Errorf("宽度 = %v, 期望大于 0", w)
	}
	short, _ := rs.MeasureText("de")
	if short >= w {
		t.Errorf("宽度取最长行: de = %v, abc\\nde = %v", short, w)
	}

	again, err := NewLabelFace()
	if err != nil {
		t.Fatalf("NewLabelFace: %v", err)
	}
	if again.Source != rs.face.Source {
		t.Error("字体源应只解析一次")
	}
}

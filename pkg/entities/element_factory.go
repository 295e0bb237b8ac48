package entities

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/decker502/storefront/pkg/components"
	"github.com/decker502/storefront/pkg/ecs"
)

// ElementSpec 页面元素的布局与外观
type ElementSpec struct {
	Left, Top, Width, Height float64
	// Fixed 不随页面滚动（光标、悬浮预览、导航）
	Fixed bool

	Text       string
	Subtitle   string
	Background color.RGBA
	Foreground color.RGBA
	Circle     bool
	Layer      int

	// Opacity 初始不透明度，零值表示完全不透明
	Opacity float64
	// Scale 初始缩放，零值表示 1
	Scale float64
}

// NewElement 创建页面元素实体：变换 + 布局盒 + 绘制标签
func NewElement(em *ecs.EntityManager, spec ElementSpec) ecs.EntityID {
	id := em.CreateEntity()

	tf := components.NewTransform()
	if spec.Opacity != 0 {
		tf.Opacity = spec.Opacity
	}
	if spec.Scale != 0 {
		tf.Scale = spec.Scale
	}
	ecs.AddComponent(em, id, tf)

	ecs.AddComponent(em, id, &components.LayoutComponent{
		Left:   spec.Left,
		Top:    spec.Top,
		Width:  spec.Width,
		Height: spec.Height,
		Fixed:  spec.Fixed,
	})

	ecs.AddComponent(em, id, &components.LabelComponent{
		Text:       spec.Text,
		Subtitle:   spec.Subtitle,
		Background: spec.Background,
		Foreground: spec.Foreground,
		Circle:     spec.Circle,
		Layer:      spec.Layer,
	})
	return id
}

// NewAnchor 创建只有布局盒的元素（滚动触发的参照区域，不绘制）
func NewAnchor(em *ecs.EntityManager, left, top, width, height float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, components.NewTransform())
	ecs.AddComponent(em, id, &components.LayoutComponent{Left: left, Top: top, Width: width, Height: height})
	return id
}

// ParseHexColor 解析 "#rrggbb" 或 "#rgb" 颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

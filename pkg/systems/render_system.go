package systems

import (
	"bytes"
	"fmt"
	"image/color"
	"slices"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/storefront/pkg/components"
	"github.com/decker502/storefront/pkg/ecs"
	"github.com/decker502/storefront/pkg/game"
)

// 标签文字排版
const (
	labelFontSize    = 13
	labelLineSpacing = 18
	textPadding      = 8
)

// labelFontSource 内置 Go Regular 字体，只解析一次
var labelFontSource = sync.OnceValues(func() (*text.GoTextFaceSource, error) {
	return text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
})

// NewLabelFace 创建标签字体
func NewLabelFace() (*text.GoTextFace, error) {
	source, err := labelFontSource()
	if err != nil {
		return nil, fmt.Errorf("failed to create label font source: %w", err)
	}
	return &text.GoTextFace{
		Source:    source,
		Size:      labelFontSize,
		Direction: text.DirectionLeftToRight,
	}, nil
}

// Rect 屏幕矩形
type Rect struct {
	X, Y, W, H float64
}

// RenderSystem 按层级绘制带标签的元素
// 布局盒叠加变换得到屏幕矩形；不透明度作用于背景与文字
type RenderSystem struct {
	entityManager *ecs.EntityManager
	viewport      game.Viewport
	face          *text.GoTextFace
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, viewport game.Viewport) (*RenderSystem, error) {
	face, err := NewLabelFace()
	if err != nil {
		return nil, err
	}
	return &RenderSystem{
		entityManager: em,
		viewport:      viewport,
		face:          face,
	}, nil
}

// MeasureText 文字排版后的像素尺寸
func (rs *RenderSystem) MeasureText(str string) (float64, float64) {
	return text.Measure(str, rs.face, labelLineSpacing)
}

// ScreenRect 计算元素在屏幕上的矩形
//
// 缩放以布局盒中心为原点；XPercent 以布局宽度为单位；
// 变换的 Width 非零时代替布局宽度（滑块）。
func ScreenRect(layout *components.LayoutComponent, tf *components.TransformComponent, scrollY float64) Rect {
	w := layout.Width
	if tf.Width > 0 {
		w = tf.Width
	}
	sw, sh := w*tf.Scale, layout.Height*tf.Scale
	x := layout.Left + tf.X + tf.XPercent/100*w + (w-sw)/2
	y := layout.Top + tf.Y + (layout.Height-sh)/2
	if !layout.Fixed {
		y -= scrollY
	}
	return Rect{X: x, Y: y, W: sw, H: sh}
}

// Draw 绘制所有可见元素
func (rs *RenderSystem) Draw(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith3[*components.LabelComponent, *components.LayoutComponent, *components.TransformComponent](rs.entityManager)
	slices.SortStableFunc(ids, func(a, b ecs.EntityID) int {
		la, _ := ecs.GetComponent[*components.LabelComponent](rs.entityManager, a)
		lb, _ := ecs.GetComponent[*components.LabelComponent](rs.entityManager, b)
		return la.Layer - lb.Layer
	})

	vh := rs.viewport.Height()
	for _, id := range ids {
		if presence, ok := ecs.GetComponent[*components.PresenceComponent](rs.entityManager, id); ok && !presence.Displayed {
			continue
		}
		label, _ := ecs.GetComponent[*components.LabelComponent](rs.entityManager, id)
		layout, _ := ecs.GetComponent[*components.LayoutComponent](rs.entityManager, id)
		tf, _ := ecs.GetComponent[*components.TransformComponent](rs.entityManager, id)
		if tf.Opacity <= 0 || tf.Scale <= 0 {
			continue
		}

		r := ScreenRect(layout, tf, rs.viewport.ScrollY())
		// 视口外剔除
		if r.Y > vh || r.Y+r.H < 0 {
			continue
		}

		bg := fade(label.Background, tf.Opacity)
		if label.Circle {
			vector.DrawFilledCircle(screen, float32(r.X+r.W/2), float32(r.Y+r.H/2), float32(r.W/2), bg, true)
		} else if bg.A > 0 {
			vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), bg, false)
		}

		rs.drawText(screen, label, r, tf)
	}
}

func (rs *RenderSystem) drawText(screen *ebiten.Image, label *components.LabelComponent, r Rect, tf *components.TransformComponent) {
	str := label.Text
	if label.Subtitle != "" {
		str += "\n" + label.Subtitle
	}
	if str == "" {
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Scale(tf.Scale, tf.Scale)
	op.GeoM.Translate(r.X+textPadding*tf.Scale, r.Y+textPadding*tf.Scale)
	op.ColorScale.ScaleWithColor(label.Foreground)
	op.ColorScale.ScaleAlpha(float32(tf.Opacity))
	op.LineSpacing = labelLineSpacing
	text.Draw(screen, str, rs.face, op)
}

func fade(c color.RGBA, opacity float64) color.RGBA {
	a := clamp01(opacity)
	// RGBA 是预乘 alpha 格式，四个分量一起缩放
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

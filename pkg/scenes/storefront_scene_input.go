package scenes

import (
	"go.uber.org/zap"

	"github.com/decker502/storefront/pkg/components"
	"github.com/decker502/storefront/pkg/ecs"
	"github.com/decker502/storefront/pkg/game"
	"github.com/decker502/storefront/pkg/systems"
	"github.com/decker502/storefront/pkg/timeline"
)

// Click 处理视口坐标 (x, y) 处的点击
func (s *StorefrontScene) Click(x, y float64) {
	for i, id := range s.navLinks {
		if s.magnetic.Hovered(id, x, y) {
			s.onNavClick(i)
			return
		}
	}

	py := y + s.viewport.ScrollY()
	for _, t := range s.tabs {
		layout, ok := ecs.GetComponent[*components.LayoutComponent](s.entityManager, t.id)
		if ok && layout.Contains(x, py) {
			s.SelectCategory(t.category)
			return
		}
	}
}

// SelectCategory 切换分类：播放筛选重排并移动滑块
// 过渡进行中、分类未变化或分类不存在时返回 false
func (s *StorefrontScene) SelectCategory(category string) bool {
	if !s.catalog.HasCategory(category) {
		return false
	}
	if !s.reflow.Request(category) {
		return false
	}
	s.triggers.Unbind(s.cardEntrance)
	s.cardEntrance = nil
	s.movePill(category)
	return true
}

// TabCenter 返回分类标签中心的视口坐标
func (s *StorefrontScene) TabCenter(category string) (float64, float64, bool) {
	layout := s.tabLayout(category)
	if layout == nil {
		return 0, 0, false
	}
	cx, cy := layout.Center()
	return cx, cy - s.viewport.ScrollY(), true
}

// onNavClick 第一个导航项滚动到分类区，其余回到顶部
func (s *StorefrontScene) onNavClick(i int) {
	target := 0.0
	if i == 0 {
		target = catalogTop - pageMargin
	}
	s.scroller.ScrollTo(target, false)
}

// onReflowChange 显示状态切换后重新排列网格；分类变化时刷新数量
func (s *StorefrontScene) onReflowChange(from, to systems.ReflowState, category string) {
	if from == systems.ReflowIdle {
		s.updateCount()
		if s.settings != nil {
			s.settings.SetLastCategory(category)
		}
	}
	if to == systems.ReflowEnterPlaying {
		s.layoutGrid()
	}
}

// onPointer 指针进入或离开商品行时显示、隐藏预览
func (s *StorefrontScene) onPointer(x, y float64) {
	s.updateHover(x, y)
}

// onScroll 滚动时更新吸顶元素与悬停行（指针不动、内容移动）
func (s *StorefrontScene) onScroll(game.ScrollEvent) {
	s.updateSticky()
	if s.touchOnly {
		return
	}
	x, y := s.pointer.Position()
	s.updateHover(x, y)
}

func (s *StorefrontScene) updateHover(x, y float64) {
	hovered := s.rowAt(x, y+s.viewport.ScrollY())
	if hovered == s.hoveredRow {
		return
	}
	s.hoveredRow = hovered
	if hovered < 0 {
		s.hideReveal()
		return
	}
	if label, ok := ecs.GetComponent[*components.LabelComponent](s.entityManager, s.preview); ok {
		p := s.rows[hovered].product
		label.Text = p.Brand + " " + p.Name
		label.Subtitle = p.Price
	}
	s.showReveal()
}

func (s *StorefrontScene) rowAt(x, py float64) int {
	for i, r := range s.rows {
		layout, ok := ecs.GetComponent[*components.LayoutComponent](s.entityManager, r.id)
		if ok && layout.Contains(x, py) {
			return i
		}
	}
	return -1
}

func (s *StorefrontScene) showReveal() {
	if s.revealShown {
		return
	}
	s.revealShown = true
	s.playReveal(1, timeline.Curve(s.motion.HoverReveal.EaseIn))
}

func (s *StorefrontScene) hideReveal() {
	if !s.revealShown {
		return
	}
	s.revealShown = false
	s.playReveal(0, timeline.Curve(s.motion.HoverReveal.EaseOut))
}

// playReveal 预览、光标与文字一起缩放到 scale
func (s *StorefrontScene) playReveal(scale float64, curve timeline.Curve) {
	d := s.motion.HoverReveal.Duration
	s.timeline.Cancel(s.reveal)
	s.reveal = s.timeline.Play(timeline.MustBuild([]timeline.Step{
		timeline.To(s.preview, timeline.PropScale, scale, d, curve),
		timeline.To(s.cursor, timeline.PropScale, scale, d, curve),
		timeline.To(s.cursorLabel, timeline.PropScale, scale, d, curve),
	}), systems.PlayOptions{})
	s.logger.Debug("hover reveal", zap.Bool("shown", scale > 0), zap.Int("row", s.hoveredRow))
}

// HoveredRow 当前悬停的商品行序号，没有时为 -1
func (s *StorefrontScene) HoveredRow() int {
	return s.hoveredRow
}

// RowCenter 返回第 i 个商品行中心的页面坐标
func (s *StorefrontScene) RowCenter(i int) (float64, float64, bool) {
	if i < 0 || i >= len(s.rows) {
		return 0, 0, false
	}
	layout, ok := ecs.GetComponent[*components.LayoutComponent](s.entityManager, s.rows[i].id)
	if !ok {
		return 0, 0, false
	}
	x, y := layout.Center()
	return x, y, true
}

// PreviewScale 悬浮预览当前缩放
func (s *StorefrontScene) PreviewScale() float64 {
	if tf := s.transform(s.preview); tf != nil {
		return tf.Scale
	}
	return 0
}

// ScrollTo 平滑（或立即）滚动到页面位置
func (s *StorefrontScene) ScrollTo(y float64, immediate bool) {
	s.scroller.ScrollTo(y, immediate)
}

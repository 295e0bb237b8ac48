package scenes

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/decker502/storefront/pkg/components"
	"github.com/decker502/storefront/pkg/config"
	"github.com/decker502/storefront/pkg/ecs"
	"github.com/decker502/storefront/pkg/entities"
	"github.com/decker502/storefront/pkg/systems"
	"github.com/decker502/storefront/pkg/timeline"
)

// 页面布局
const (
	pageMargin = 80.0

	heroHeight   = 800.0
	introTop     = 900.0
	catalogTop   = 1200.0
	tabsOffset   = 100.0 // 标签行相对分类区顶部
	tabHeight    = 36.0
	tabGap       = 12.0
	pillHeight   = 4.0
	gridOffset   = 180.0 // 网格相对分类区顶部
	gridColumns  = 4
	cardWidth    = 260.0
	cardHeight   = 340.0
	cardGap      = 24.0
	sectionGap   = 120.0
	rowHeight    = 110.0
	rowGap       = 10.0
	footerHeight = 400.0

	previewWidth  = 320.0
	previewHeight = 220.0
	cursorSize    = 80.0
)

var (
	textColor    = color.RGBA{0xf5, 0xf5, 0xf5, 0xff}
	mutedColor   = color.RGBA{0x9a, 0x9a, 0xa3, 0xff}
	tabColor     = color.RGBA{0x22, 0x22, 0x28, 0xff}
	pillColor    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	rowColor     = color.RGBA{0x16, 0x16, 0x1b, 0xff}
	cursorColor  = color.RGBA{0xff, 0x5a, 0x1f, 0xff}
	previewColor = color.RGBA{0x2b, 0x2b, 0x33, 0xff}
)

var (
	navItems      = []string{"Shop", "Deals", "Contact"}
	marqueeText   = "Gaming Laptops - Desktop PCs - Monitors - CCTV - Accessories - "
	introHeadline = "Built for people who push their machines"
)

// offsetEntry 网格下方的元素，Top = 网格底边 + offset
type offsetEntry struct {
	id     ecs.EntityID
	offset float64
}

// build 创建页面所有元素
func (s *StorefrontScene) build() error {
	em := s.entityManager
	vw := s.viewport.Width()

	// 导航（固定）
	for i, name := range navItems {
		s.navLinks = append(s.navLinks, entities.NewElement(em, entities.ElementSpec{
			Left: vw - pageMargin - float64(len(navItems)-i)*110, Top: 24, Width: 96, Height: 32,
			Fixed: true, Text: name, Foreground: textColor, Background: tabColor, Layer: 30,
		}))
	}

	// 首屏：滑动参照区 + 两段首尾相接的跑马灯文字
	span := s.motion.Marquee.ScrollSpan
	if span <= 0 {
		span = s.viewport.Height()
	}
	s.heroAnchor = entities.NewAnchor(em, 0, 0, vw, span)
	s.heroTitle = entities.NewElement(em, entities.ElementSpec{
		Left: pageMargin, Top: 240, Width: 640, Height: 48,
		Text: "STOREFRONT", Subtitle: "Laptops, desktops and everything around them",
		Foreground: textColor, Layer: 2,
	})
	marqueeWidth, _ := s.render.MeasureText(marqueeText)
	for i := range 2 {
		s.marqueeTexts = append(s.marqueeTexts, entities.NewElement(em, entities.ElementSpec{
			Left: float64(i) * marqueeWidth, Top: heroHeight - 200, Width: marqueeWidth, Height: 40,
			Text: marqueeText, Foreground: mutedColor, Layer: 2,
		}))
	}

	// 介绍：逐词入场
	left := pageMargin
	for _, w := range strings.Fields(introHeadline) {
		width := float64(len(w))*6 + 16
		s.words = append(s.words, entities.NewElement(em, entities.ElementSpec{
			Left: left, Top: introTop, Width: width, Height: 32,
			Text: w, Foreground: textColor, Layer: 2,
		}))
		left += width
	}

	// 分类区
	s.catalogHeading = entities.NewElement(em, entities.ElementSpec{
		Left: pageMargin, Top: catalogTop, Width: 400, Height: 40,
		Text: "Shop by category", Foreground: textColor, Layer: 2,
	})
	tabLeft := pageMargin
	for _, c := range s.catalog.Categories {
		width := float64(len(c.Label))*6 + 40
		id := entities.NewElement(em, entities.ElementSpec{
			Left: tabLeft, Top: catalogTop + tabsOffset, Width: width, Height: tabHeight,
			Text: c.Label, Foreground: textColor, Background: tabColor, Layer: 3,
		})
		s.tabs = append(s.tabs, tabEntry{category: c.ID, id: id})
		tabLeft += width + tabGap
	}
	first := s.tabLayout(config.CategoryAll)
	s.pill = entities.NewElement(em, entities.ElementSpec{
		Left: first.Left, Top: catalogTop + tabsOffset + tabHeight + 4, Width: first.Width, Height: pillHeight,
		Background: pillColor, Layer: 4,
	})
	s.transform(s.pill).Width = first.Width
	s.countLabel = entities.NewElement(em, entities.ElementSpec{
		Left: vw - pageMargin - 160, Top: catalogTop + tabsOffset, Width: 160, Height: tabHeight,
		Foreground: mutedColor, Layer: 3,
	})

	s.gridTop = catalogTop + gridOffset
	s.gridAnchor = entities.NewAnchor(em, 0, s.gridTop, vw, 0)
	for i, p := range s.catalog.Products {
		id, err := entities.NewCatalogCard(em, p, i, 0, s.gridTop, cardWidth, cardHeight)
		if err != nil {
			return fmt.Errorf("failed to create card: %w", err)
		}
		s.cards = append(s.cards, id)
	}

	// 网格下方的区块跟随网格高度移动
	offset := sectionGap
	s.rowsHeading = s.belowGrid(offset, entities.ElementSpec{
		Left: pageMargin, Width: 400, Height: 40,
		Text: "Best sellers", Foreground: textColor, Layer: 2,
	})
	offset += 80
	for _, p := range s.catalog.Products {
		if !p.IsBestSeller && !p.IsNew {
			continue
		}
		id := s.belowGrid(offset, entities.ElementSpec{
			Left: pageMargin, Width: vw - 2*pageMargin, Height: rowHeight,
			Text: p.Brand + " " + p.Name, Subtitle: p.Price,
			Foreground: textColor, Background: rowColor, Layer: 2,
		})
		s.rows = append(s.rows, rowEntry{product: p, id: id})
		offset += rowHeight + rowGap
	}
	offset += sectionGap

	// 缩放视差：三个视口高的区域，图片在区域内保持吸顶
	vh := s.viewport.Height()
	parallaxHeight := 3 * vh
	s.parallaxAnchor = entities.NewAnchor(em, 0, 0, vw, parallaxHeight)
	s.below = append(s.below, offsetEntry{id: s.parallaxAnchor, offset: offset})
	for i := range s.motion.Parallax.Scales {
		x, y, w, h := parallaxTile(i, vw, vh)
		id := entities.NewElement(em, entities.ElementSpec{
			Left: x, Width: w, Height: h,
			Text: fmt.Sprintf("IMG %d", i+1), Foreground: textColor,
			Background: parallaxColor(i), Layer: 5 + i,
		})
		s.stickies = append(s.stickies, offsetEntry{id: id, offset: y})
	}
	offset += parallaxHeight

	s.footer = s.belowGrid(offset+footerHeight/2, entities.ElementSpec{
		Left: pageMargin, Width: 400, Height: 40,
		Text: "(c) Storefront", Foreground: mutedColor, Layer: 2,
	})
	s.footerOffset = offset + footerHeight

	// 悬浮预览与光标（固定，初始缩放为 0）
	s.preview = entities.NewElement(em, entities.ElementSpec{
		Width: previewWidth, Height: previewHeight, Fixed: true,
		Foreground: textColor, Background: previewColor, Layer: 40,
	})
	s.cursor = entities.NewElement(em, entities.ElementSpec{
		Width: cursorSize, Height: cursorSize, Fixed: true, Circle: true,
		Background: cursorColor, Layer: 41,
	})
	s.cursorLabel = entities.NewElement(em, entities.ElementSpec{
		Width: cursorSize, Height: 20, Fixed: true,
		Text: "View", Foreground: textColor, Layer: 42,
	})
	for _, id := range []ecs.EntityID{s.preview, s.cursor, s.cursorLabel} {
		s.transform(id).Scale = 0
	}

	s.layoutGrid()
	return nil
}

// belowGrid 创建位于网格下方 offset 处的元素
func (s *StorefrontScene) belowGrid(offset float64, spec entities.ElementSpec) ecs.EntityID {
	id := entities.NewElement(s.entityManager, spec)
	s.below = append(s.below, offsetEntry{id: id, offset: offset})
	return id
}

// layoutGrid 按目录顺序排列显示中的卡片，并移动网格下方的区块
func (s *StorefrontScene) layoutGrid() {
	shown := 0
	for _, id := range s.cards {
		presence, _ := ecs.GetComponent[*components.PresenceComponent](s.entityManager, id)
		layout, _ := ecs.GetComponent[*components.LayoutComponent](s.entityManager, id)
		if presence == nil || layout == nil || !presence.Displayed {
			continue
		}
		col, row := shown%gridColumns, shown/gridColumns
		layout.Left = pageMargin + float64(col)*(cardWidth+cardGap)
		layout.Top = s.gridTop + float64(row)*(cardHeight+cardGap)
		shown++
	}

	rows := (shown + gridColumns - 1) / gridColumns
	gridHeight := math.Max(float64(rows)*(cardHeight+cardGap)-cardGap, 0)
	if grid, ok := ecs.GetComponent[*components.LayoutComponent](s.entityManager, s.gridAnchor); ok {
		grid.Height = gridHeight
	}

	bottom := s.gridTop + gridHeight
	for _, e := range s.below {
		if layout, ok := ecs.GetComponent[*components.LayoutComponent](s.entityManager, e.id); ok {
			layout.Top = bottom + e.offset
		}
	}
	s.pageHeight = bottom + s.footerOffset
	if s.scroller != nil {
		s.scroller.SetPageHeight(s.pageHeight)
	}
	s.updateSticky()
}

// updateSticky 视差图片在视差区内吸附于视口顶部
func (s *StorefrontScene) updateSticky() {
	anchor, ok := ecs.GetComponent[*components.LayoutComponent](s.entityManager, s.parallaxAnchor)
	if !ok {
		return
	}
	vh := s.viewport.Height()
	pin := math.Min(math.Max(s.viewport.ScrollY(), anchor.Top), anchor.Bottom()-vh)
	for _, e := range s.stickies {
		if layout, ok := ecs.GetComponent[*components.LayoutComponent](s.entityManager, e.id); ok {
			layout.Top = pin + e.offset
		}
	}
}

// snapPill 不播放动画地把滑块移到分类标签下
func (s *StorefrontScene) snapPill(category string) {
	tab := s.tabLayout(category)
	pill, ok := ecs.GetComponent[*components.LayoutComponent](s.entityManager, s.pill)
	if tab == nil || !ok {
		return
	}
	s.timeline.Cancel(s.pillAnim)
	tf := s.transform(s.pill)
	tf.X = tab.Left - pill.Left
	tf.Width = tab.Width
}

// movePill 滑块补间到分类标签下
func (s *StorefrontScene) movePill(category string) {
	tab := s.tabLayout(category)
	pill, ok := ecs.GetComponent[*components.LayoutComponent](s.entityManager, s.pill)
	if tab == nil || !ok {
		return
	}
	preset := s.motion.Reflow.Pill
	curve := timeline.Curve(preset.Ease)
	s.timeline.Cancel(s.pillAnim)
	s.pillAnim = s.timeline.Play(timeline.MustBuild([]timeline.Step{
		timeline.To(s.pill, timeline.PropX, tab.Left-pill.Left, preset.Duration, curve),
		timeline.To(s.pill, timeline.PropWidth, tab.Width, preset.Duration, curve),
	}), systems.PlayOptions{})
}

// updateCount 刷新商品数量文字
func (s *StorefrontScene) updateCount() {
	label, ok := ecs.GetComponent[*components.LabelComponent](s.entityManager, s.countLabel)
	if !ok {
		return
	}
	n := s.catalog.CountIn(s.reflow.ActiveCategory())
	unit := "products"
	if n == 1 {
		unit = "product"
	}
	label.Text = fmt.Sprintf("%d %s", n, unit)
}

// bindAnimations 建立滚动触发、跑马灯、磁吸与指针跟随
func (s *StorefrontScene) bindAnimations() {
	m := s.motion

	s.marquee.Attach(s.marqueeTexts...)
	var slide []timeline.Step
	for _, id := range s.marqueeTexts {
		slide = append(slide, timeline.NewStep(id, timeline.PropX, 0, m.Marquee.SlideX, 1, "linear", 0))
	}
	s.triggers.Bind(s.heroAnchor, config.Condition{Edge: config.EdgeTop}, timeline.MustBuild(slide),
		systems.TriggerOptions{Scrub: true})

	s.bindEntrance("words", s.words[0], s.words)
	s.bindEntrance("heading", s.heroTitle, []ecs.EntityID{s.heroTitle})
	s.bindEntrance("heading", s.catalogHeading, []ecs.EntityID{s.catalogHeading})
	s.bindEntrance("heading", s.rowsHeading, []ecs.EntityID{s.rowsHeading})
	s.bindEntrance("heading", s.footer, []ecs.EntityID{s.footer})
	tabs := make([]ecs.EntityID, 0, len(s.tabs)+2)
	for _, t := range s.tabs {
		tabs = append(tabs, t.id)
	}
	s.bindEntrance("tabs", s.tabs[0].id, append(tabs, s.pill, s.countLabel))
	s.cardEntrance = s.bindEntrance("cards", s.gridAnchor, s.cards)

	s.bindParallax()
	s.stickySub = s.viewport.Subscribe(s.onScroll)

	if s.touchOnly {
		return
	}
	for _, id := range s.navLinks {
		s.magnetic.Attach(id)
	}
	s.bindFollowers()
	s.hoverSub = s.pointer.Subscribe(s.onPointer)
}

// bindEntrance 一次性入场：元素在触发前保持起始状态
func (s *StorefrontScene) bindEntrance(preset string, trigger ecs.EntityID, targets []ecs.EntityID) *systems.TriggerBinding {
	p, ok := s.motion.Entrance[preset]
	if !ok || len(targets) == 0 {
		s.logger.Debug("entrance skipped", zap.String("preset", preset))
		return nil
	}

	curve := timeline.Curve(p.Ease)
	tmpl := func(id ecs.EntityID) []timeline.Step {
		steps := []timeline.Step{
			timeline.NewStep(id, timeline.PropOpacity, 0, 1, p.Duration, curve, p.Delay),
			timeline.NewStep(id, timeline.PropY, p.Y, 0, p.Duration, curve, p.Delay),
		}
		if p.Scale != 0 {
			steps = append(steps, timeline.NewStep(id, timeline.PropScale, p.Scale, 1, p.Duration, curve, p.Delay))
		}
		return steps
	}
	var steps []timeline.Step
	if p.StaggerAmount > 0 {
		steps = timeline.StaggerAmount(targets, p.StaggerAmount, tmpl)
	} else {
		steps = timeline.Stagger(targets, p.Stagger, tmpl)
	}
	seq := timeline.MustBuild(steps)

	s.timeline.Prime(seq)
	return s.triggers.Bind(trigger, p.Start, seq, systems.TriggerOptions{Once: true})
}

// bindParallax 视差图片的缩放与滚动联动
func (s *StorefrontScene) bindParallax() {
	p := s.motion.Parallax

	steps := make([]timeline.Step, 0, len(s.stickies))
	for i, e := range s.stickies {
		steps = append(steps, timeline.NewStep(e.id, timeline.PropScale, 1, p.Scales[i], 1, "linear", 0))
	}
	s.triggers.Bind(s.parallaxAnchor, p.Start, timeline.MustBuild(steps),
		systems.TriggerOptions{Scrub: true, End: p.End})
}

// bindFollowers 预览、光标与光标文字以不同的平滑时长跟随指针
func (s *StorefrontScene) bindFollowers() {
	offsets := map[string]struct {
		id     ecs.EntityID
		dx, dy float64
	}{
		"preview": {s.preview, -previewWidth / 2, -previewHeight / 2},
		"cursor":  {s.cursor, -cursorSize / 2, -cursorSize / 2},
		"label":   {s.cursorLabel, -cursorSize / 2, -10},
	}
	for _, f := range s.motion.HoverReveal.Follow {
		target, ok := offsets[f.Name]
		if !ok {
			s.logger.Warn("unknown follower preset", zap.String("name", f.Name))
			continue
		}
		curve := timeline.Curve(f.Ease)
		s.follower.Follow(target.id, []systems.FollowProperty{
			{Name: timeline.PropX, Axis: systems.AxisX, SmoothingDuration: f.Smoothing, Ease: curve, Offset: target.dx},
			{Name: timeline.PropY, Axis: systems.AxisY, SmoothingDuration: f.Smoothing, Ease: curve, Offset: target.dy},
		})
	}
}

func (s *StorefrontScene) tabLayout(category string) *components.LayoutComponent {
	for _, t := range s.tabs {
		if t.category == category {
			layout, _ := ecs.GetComponent[*components.LayoutComponent](s.entityManager, t.id)
			return layout
		}
	}
	return nil
}

func (s *StorefrontScene) transform(id ecs.EntityID) *components.TransformComponent {
	tf, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	return tf
}

// parallaxTile 第 i 张视差图片在吸顶视口内的矩形（中心一张，其余围绕）
func parallaxTile(i int, vw, vh float64) (x, y, w, h float64) {
	w, h = vw*0.25, vh*0.25
	cx, cy := (vw-w)/2, (vh-h)/2
	positions := [][2]float64{
		{0, 0}, {0.05, -0.3}, {-0.25, -0.1}, {0.275, 0}, {0, 0.275}, {-0.225, 0.275}, {0.25, 0.275},
	}
	d := positions[i%len(positions)]
	return cx + d[0]*vw, cy + d[1]*vh, w, h
}

func parallaxColor(i int) color.RGBA {
	palette := []color.RGBA{
		{0x3a, 0x2f, 0x5b, 0xff}, {0x1f, 0x4e, 0x5f, 0xff}, {0x5b, 0x3a, 0x29, 0xff},
		{0x24, 0x5b, 0x3a, 0xff}, {0x5f, 0x1f, 0x3d, 0xff}, {0x4e, 0x4e, 0x1f, 0xff}, {0x2f, 0x3a, 0x5b, 0xff},
	}
	return palette[i%len(palette)]
}

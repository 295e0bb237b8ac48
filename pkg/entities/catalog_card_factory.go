package entities

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/decker502/storefront/pkg/components"
	"github.com/decker502/storefront/pkg/config"
	"github.com/decker502/storefront/pkg/ecs"
)

// 卡片默认配色
var (
	CardBackground = color.RGBA{0x1a, 0x1a, 0x1f, 0xff}
	CardForeground = color.RGBA{0xf5, 0xf5, 0xf5, 0xff}
)

// NewCatalogCard 创建商品卡片实体
//
// 卡片初始为显示状态；order 决定筛选动画的 stagger 顺序。
// 商品配置了强调色时用作卡片背景，颜色格式错误返回错误。
func NewCatalogCard(em *ecs.EntityManager, p config.Product, order int, left, top, width, height float64) (ecs.EntityID, error) {
	bg := CardBackground
	if p.Accent != "" {
		c, err := ParseHexColor(p.Accent)
		if err != nil {
			return ecs.InvalidEntity, fmt.Errorf("product %s: %w", p.ID, err)
		}
		bg = c
	}

	id := NewElement(em, ElementSpec{
		Left:       left,
		Top:        top,
		Width:      width,
		Height:     height,
		Text:       cardTitle(p),
		Subtitle:   cardSubtitle(p),
		Background: bg,
		Foreground: CardForeground,
		Layer:      1,
	})
	ecs.AddComponent(em, id, &components.CatalogItemComponent{
		ProductID: p.ID,
		Category:  p.Category,
		Order:     order,
	})
	ecs.AddComponent(em, id, &components.PresenceComponent{Displayed: true})
	return id, nil
}

func cardTitle(p config.Product) string {
	title := p.Brand + " " + p.Name
	if p.Tag != "" {
		title = "[" + p.Tag + "] " + title
	}
	return title
}

func cardSubtitle(p config.Product) string {
	lines := append([]string{}, p.Specs...)
	price := p.Price
	if p.OriginalPrice != "" {
		price += "  (was " + p.OriginalPrice + ")"
	}
	lines = append(lines, "", price)
	return strings.Join(lines, "\n")
}

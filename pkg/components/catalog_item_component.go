package components

// CatalogItemComponent 商品卡片的分类标签
// 筛选重排系统按 Category 决定卡片退场或入场，按 Order 决定 stagger 顺序
type CatalogItemComponent struct {
	// ProductID 商品ID，如 "gl-01"
	ProductID string
	// Category 分类，如 "gaming-laptop"
	Category string
	// Order 声明顺序（从 0 开始）
	Order int
}

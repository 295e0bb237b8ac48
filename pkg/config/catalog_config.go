package config

import (
	"fmt"

	"github.com/decker502/storefront/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// CatalogConfigPath 商品目录配置文件路径
const CatalogConfigPath = "data/catalog.yaml"

// CategoryAll 显示全部商品的分类
const CategoryAll = "all"

// Category 筛选分类
type Category struct {
	ID    string `yaml:"id"`    // 分类ID，如 "gaming-laptop"
	Label string `yaml:"label"` // 标签文字，如 "Gaming Laptops"
}

// Product 商品
type Product struct {
	ID            string   `yaml:"id"`            // 商品ID，如 "gl-01"
	Category      string   `yaml:"category"`      // 所属分类ID
	Brand         string   `yaml:"brand"`         // 品牌
	Name          string   `yaml:"name"`          // 型号
	Price         string   `yaml:"price"`         // 显示价格
	OriginalPrice string   `yaml:"originalPrice"` // 划线价（可选）
	Tag           string   `yaml:"tag"`           // 角标文字（可选）
	TagColor      string   `yaml:"tagColor"`      // 角标颜色 "#rrggbb"
	Accent        string   `yaml:"accent"`        // 卡片强调色 "#rrggbb"
	Specs         []string `yaml:"specs"`         // 规格列表
	IsNew         bool     `yaml:"isNew"`
	IsBestSeller  bool     `yaml:"isBestSeller"`
}

// CatalogConfig 商品目录
type CatalogConfig struct {
	Categories []Category `yaml:"categories"`
	Products   []Product  `yaml:"products"`
}

// LoadCatalogConfig 从嵌入资源加载商品目录
func LoadCatalogConfig(path string) (*CatalogConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog config file %s: %w", path, err)
	}
	return ParseCatalogConfig(data)
}

// ParseCatalogConfig 解析 YAML 并校验
func ParseCatalogConfig(data []byte) (*CatalogConfig, error) {
	var cfg CatalogConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse catalog config YAML: %w", err)
	}

	applyCatalogDefaults(&cfg)

	if err := validateCatalogConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid catalog config: %w", err)
	}
	return &cfg, nil
}

// applyCatalogDefaults 确保 "all" 分类存在且位于首位
func applyCatalogDefaults(cfg *CatalogConfig) {
	for _, c := range cfg.Categories {
		if c.ID == CategoryAll {
			return
		}
	}
	cfg.Categories = append([]Category{{ID: CategoryAll, Label: "All Products"}}, cfg.Categories...)
}

// validateCatalogConfig 校验ID唯一、分类引用有效
func validateCatalogConfig(cfg *CatalogConfig) error {
	categories := make(map[string]bool, len(cfg.Categories))
	for i, c := range cfg.Categories {
		if c.ID == "" {
			return fmt.Errorf("categories[%d]: id is required", i)
		}
		if categories[c.ID] {
			return fmt.Errorf("categories[%d]: duplicate id %q", i, c.ID)
		}
		categories[c.ID] = true
	}

	products := make(map[string]bool, len(cfg.Products))
	for i, p := range cfg.Products {
		if p.ID == "" {
			return fmt.Errorf("products[%d]: id is required", i)
		}
		if products[p.ID] {
			return fmt.Errorf("products[%d]: duplicate id %q", i, p.ID)
		}
		products[p.ID] = true

		if p.Category == CategoryAll || !categories[p.Category] {
			return fmt.Errorf("products[%d] (%s): unknown category %q", i, p.ID, p.Category)
		}
	}
	return nil
}

// HasCategory 报告分类ID是否存在
func (c *CatalogConfig) HasCategory(id string) bool {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return true
		}
	}
	return false
}

// CountIn 返回分类下的商品数量（"all" 返回全部）
func (c *CatalogConfig) CountIn(category string) int {
	if category == CategoryAll {
		return len(c.Products)
	}
	n := 0
	for _, p := range c.Products {
		if p.Category == category {
			n++
		}
	}
	return n
}

// Matches 报告商品分类是否满足筛选条件
func Matches(productCategory, filter string) bool {
	return filter == CategoryAll || productCategory == filter
}

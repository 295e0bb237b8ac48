package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Edge 元素上的参考边
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeCenter Edge = "center"
	EdgeBottom Edge = "bottom"
)

// Condition 视口比例触发条件，如 "top 75%"：元素顶边到达视口 75% 高度处
//
// 第一个词是元素参考边，第二个词是视口上的位置：
// top/center/bottom 关键字、百分比（视口高度比例）或像素值（"120px"）。
type Condition struct {
	Edge Edge
	// Fraction 视口位置，占视口高度的比例（Pixels 为 0 时使用）
	Fraction float64
	// Pixels 视口位置的像素值（非零时优先于 Fraction）
	Pixels float64
}

// ParseCondition 解析触发条件字符串
func ParseCondition(s string) (Condition, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Condition{}, fmt.Errorf("trigger condition %q: want \"<edge> <position>\"", s)
	}

	var c Condition
	switch Edge(fields[0]) {
	case EdgeTop, EdgeCenter, EdgeBottom:
		c.Edge = Edge(fields[0])
	default:
		return Condition{}, fmt.Errorf("trigger condition %q: unknown element edge %q", s, fields[0])
	}

	pos := fields[1]
	switch {
	case pos == "top":
		c.Fraction = 0
	case pos == "center":
		c.Fraction = 0.5
	case pos == "bottom":
		c.Fraction = 1
	case strings.HasSuffix(pos, "%"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(pos, "%"), 64)
		if err != nil {
			return Condition{}, fmt.Errorf("trigger condition %q: bad percentage: %w", s, err)
		}
		c.Fraction = v / 100
	case strings.HasSuffix(pos, "px"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(pos, "px"), 64)
		if err != nil {
			return Condition{}, fmt.Errorf("trigger condition %q: bad pixel value: %w", s, err)
		}
		c.Pixels = v
	default:
		return Condition{}, fmt.Errorf("trigger condition %q: unknown viewport position %q", s, pos)
	}
	return c, nil
}

// MustParseCondition 同 ParseCondition，解析失败时 panic（仅用于常量）
func MustParseCondition(s string) Condition {
	c, err := ParseCondition(s)
	if err != nil {
		panic(err)
	}
	return c
}

// UnmarshalYAML 从 "top 82%" 形式的字符串解析条件
func (c *Condition) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseCondition(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// IsZero 未配置的条件
func (c Condition) IsZero() bool {
	return c.Edge == ""
}

// ViewportLine 返回条件在视口中的纵向位置（像素，视口顶部为 0）
func (c Condition) ViewportLine(viewportHeight float64) float64 {
	if c.Pixels != 0 {
		return c.Pixels
	}
	return c.Fraction * viewportHeight
}

// ScrollPosition 返回满足条件时页面的滚动位置
//
// 元素参考边的页面坐标为 edgeY 时，滚动到 edgeY - 视口线 处两者重合；
// 滚动位置越过该值即视为越过触发线。
func (c Condition) ScrollPosition(top, height, viewportHeight float64) float64 {
	edgeY := top
	switch c.Edge {
	case EdgeCenter:
		edgeY = top + height/2
	case EdgeBottom:
		edgeY = top + height
	}
	return edgeY - c.ViewportLine(viewportHeight)
}

func (c Condition) String() string {
	if c.Pixels != 0 {
		return fmt.Sprintf("%s %gpx", c.Edge, c.Pixels)
	}
	return fmt.Sprintf("%s %g%%", c.Edge, c.Fraction*100)
}

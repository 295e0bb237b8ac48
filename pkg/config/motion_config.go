package config

import (
	"fmt"

	"github.com/decker502/storefront/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// MotionConfigPath 动效配置文件路径
const MotionConfigPath = "data/motion.yaml"

// TweenPreset 单段补间动画参数
type TweenPreset struct {
	Duration      float64   `yaml:"duration"`      // 时长（秒）
	Ease          string    `yaml:"ease"`          // 缓动曲线ID，如 "power3.out"
	Delay         float64   `yaml:"delay"`         // 起始延迟（秒）
	Stagger       float64   `yaml:"stagger"`       // 每个元素的递增延迟（秒）
	StaggerAmount float64   `yaml:"staggerAmount"` // 所有元素起点分布在该时长内（秒），非零时优先于 Stagger
	Start         Condition `yaml:"start"`         // 滚动触发条件，如 "top 82%"（入场预设必填）

	// 目标/起始属性值
	Y       float64 `yaml:"y"`
	Scale   float64 `yaml:"scale"`
	Opacity float64 `yaml:"opacity"`
}

// ReflowConfig 筛选重排动画参数
type ReflowConfig struct {
	Exit      TweenPreset `yaml:"exit"`      // 退场：淡出 + 缩小 + 上移
	Enter     TweenPreset `yaml:"enter"`     // 入场：从预备位置回到静止
	Pill      TweenPreset `yaml:"pill"`      // 分类标签下方滑块
	EnterLead float64     `yaml:"enterLead"` // 入场动画相对显示切换的延迟（秒）
}

// FollowerPreset 指针跟随参数
type FollowerPreset struct {
	Name      string  `yaml:"name"`
	Smoothing float64 `yaml:"smoothing"` // 平滑时长（秒），越大越滞后
	Ease      string  `yaml:"ease"`
}

// SpringPreset 弹簧参数（harmonica）
type SpringPreset struct {
	Frequency float64 `yaml:"frequency"` // 角频率
	Damping   float64 `yaml:"damping"`   // 阻尼比，<1 时回弹
}

// MarqueeConfig 首屏无限滚动文字参数
type MarqueeConfig struct {
	Speed      float64 `yaml:"speed"`      // 每帧 xPercent 变化量
	SlideX     float64 `yaml:"slideX"`     // 随滚动平移的最终 x（像素）
	ScrollSpan float64 `yaml:"scrollSpan"` // 平移对应的滚动距离（像素），0 表示一个视口高度
}

// SmoothScrollConfig 平滑滚动参数
type SmoothScrollConfig struct {
	Lerp            float64 `yaml:"lerp"`            // 每帧向目标靠近的比例 (0, 1]
	WheelMultiplier float64 `yaml:"wheelMultiplier"` // 滚轮增量倍数（像素/刻度）
}

// ParallaxConfig 缩放视差参数
type ParallaxConfig struct {
	Start  Condition `yaml:"start"`
	End    Condition `yaml:"end"`
	Scales []float64 `yaml:"scales"` // 每张图片的目标缩放
}

// HoverRevealConfig 商品行悬浮预览参数
type HoverRevealConfig struct {
	Duration float64          `yaml:"duration"`
	EaseIn   string           `yaml:"easeIn"`  // 出现时的缓动
	EaseOut  string           `yaml:"easeOut"` // 消失时的缓动
	Follow   []FollowerPreset `yaml:"follow"`  // 预览、光标、光标文字
}

// MotionConfig 页面动效配置
type MotionConfig struct {
	Viewport struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"viewport"`

	Reflow ReflowConfig `yaml:"reflow"`
	// Entrance 逐个预设与默认值合并，见 ParseMotionConfig
	Entrance     map[string]TweenPreset `yaml:"-"`
	HoverReveal  HoverRevealConfig      `yaml:"hoverReveal"`
	Magnetic     SpringPreset           `yaml:"magnetic"`
	Marquee      MarqueeConfig          `yaml:"marquee"`
	SmoothScroll SmoothScrollConfig     `yaml:"smoothScroll"`
	Parallax     ParallaxConfig         `yaml:"parallax"`
}

// LoadMotionConfig 从嵌入资源加载动效配置
func LoadMotionConfig(path string) (*MotionConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read motion config file %s: %w", path, err)
	}
	return ParseMotionConfig(data)
}

// ParseMotionConfig 解析 YAML 并校验
//
// 解析前先填入默认值，YAML 中出现的字段（包括显式的 0）覆盖默认值。
// 入场预设逐个合并：只写了部分字段的预设保留其余默认字段。
func ParseMotionConfig(data []byte) (*MotionConfig, error) {
	cfg := DefaultMotionConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse motion config YAML: %w", err)
	}

	var raw struct {
		Entrance map[string]yaml.Node `yaml:"entrance"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse motion config YAML: %w", err)
	}
	for name, node := range raw.Entrance {
		preset := cfg.Entrance[name]
		if err := node.Decode(&preset); err != nil {
			return nil, fmt.Errorf("invalid motion config: entrance.%s: %w", name, err)
		}
		cfg.Entrance[name] = preset
	}

	if err := validateMotionConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid motion config: %w", err)
	}
	return cfg, nil
}

// DefaultMotionConfig 返回默认配置（与站点原有动画参数一致）
func DefaultMotionConfig() *MotionConfig {
	cfg := &MotionConfig{
		Reflow: ReflowConfig{
			// 退场：opacity 0, scale 0.88, y -20, 0.3s power2.in, stagger 0.03
			Exit: TweenPreset{Duration: 0.3, Ease: "power2.in", Stagger: 0.03, Scale: 0.88, Y: -20},
			// 入场：从 y 40 / scale 0.94 / opacity 0 回到静止，0.5s power3.out, stagger 0.055
			Enter:     TweenPreset{Duration: 0.5, Ease: "power3.out", Stagger: 0.055, Y: 40, Scale: 0.94},
			Pill:      TweenPreset{Duration: 0.45, Ease: "power3.inOut"},
			EnterLead: 0.05,
		},
		Entrance: map[string]TweenPreset{
			"heading": {Duration: 0.9, Ease: "power3.out", Start: MustParseCondition("top 82%"), Y: 50},
			"tabs":    {Duration: 0.7, Ease: "power3.out", Start: MustParseCondition("top 82%"), Y: 30, Delay: 0.15},
			"cards":   {Duration: 0.7, Ease: "power3.out", Start: MustParseCondition("top 85%"), Y: 60, Scale: 0.95, StaggerAmount: 0.5},
			"words":   {Duration: 1, Ease: "power4.out", Start: MustParseCondition("top 90%"), Y: 100, Stagger: 0.03},
		},
		HoverReveal: HoverRevealConfig{
			Duration: 0.4,
			EaseIn:   "power3.out",
			EaseOut:  "power3.in",
			Follow: []FollowerPreset{
				{Name: "preview", Smoothing: 0.8, Ease: "power3"},
				{Name: "cursor", Smoothing: 0.5, Ease: "power3"},
				{Name: "label", Smoothing: 0.45, Ease: "power3"},
			},
		},
		// elastic.out(1, 0.3) 的近似：欠阻尼弹簧
		Magnetic:     SpringPreset{Frequency: 6.0, Damping: 0.3},
		Marquee:      MarqueeConfig{Speed: 0.1, SlideX: -500},
		SmoothScroll: SmoothScrollConfig{Lerp: 0.1, WheelMultiplier: 60},
		Parallax: ParallaxConfig{
			Start:  MustParseCondition("top top"),
			End:    MustParseCondition("bottom bottom"),
			Scales: []float64{4, 5, 6, 5, 6, 8, 9},
		},
	}
	cfg.Viewport.Width = 1280
	cfg.Viewport.Height = 800
	return cfg
}

// validateMotionConfig 校验数值范围与触发条件
func validateMotionConfig(cfg *MotionConfig) error {
	if cfg.Viewport.Width <= 0 || cfg.Viewport.Height <= 0 {
		return fmt.Errorf("viewport size must be positive")
	}

	presets := map[string]TweenPreset{
		"reflow.exit":  cfg.Reflow.Exit,
		"reflow.enter": cfg.Reflow.Enter,
		"reflow.pill":  cfg.Reflow.Pill,
	}
	for name, p := range cfg.Entrance {
		if p.Start.IsZero() {
			return fmt.Errorf("entrance.%s: start is required", name)
		}
		presets["entrance."+name] = p
	}
	for name, p := range presets {
		if p.Duration < 0 || p.Delay < 0 || p.Stagger < 0 || p.StaggerAmount < 0 {
			return fmt.Errorf("%s: duration, delay and stagger must be >= 0", name)
		}
	}

	for i, f := range cfg.HoverReveal.Follow {
		if f.Smoothing <= 0 {
			return fmt.Errorf("hoverReveal.follow[%d] (%s): smoothing must be > 0, got %v", i, f.Name, f.Smoothing)
		}
	}

	if cfg.SmoothScroll.Lerp <= 0 || cfg.SmoothScroll.Lerp > 1 {
		return fmt.Errorf("smoothScroll.lerp must be in (0, 1], got %v", cfg.SmoothScroll.Lerp)
	}
	if cfg.Magnetic.Frequency < 0 || cfg.Magnetic.Damping < 0 {
		return fmt.Errorf("magnetic spring parameters cannot be negative")
	}

	if cfg.Parallax.Start.IsZero() || cfg.Parallax.End.IsZero() {
		return fmt.Errorf("parallax: start and end are required")
	}
	return nil
}

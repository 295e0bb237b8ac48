package config

import (
	"os"
	"strings"
	"testing"

	"github.com/decker502/storefront/pkg/embedded"
)

// TestParseMotionConfigDefaults 空配置应用全部默认值
func TestParseMotionConfigDefaults(t *testing.T) {
	cfg, err := ParseMotionConfig([]byte("{}\n"))
	if err != nil {
		t.Fatalf("ParseMotionConfig error: %v", err)
	}

	if cfg.Reflow.Exit.Duration != 0.3 || cfg.Reflow.Exit.Ease != "power2.in" {
		t.Errorf("exit preset = %+v", cfg.Reflow.Exit)
	}
	if cfg.Reflow.Exit.Scale != 0.88 || cfg.Reflow.Exit.Y != -20 || cfg.Reflow.Exit.Stagger != 0.03 {
		t.Errorf("exit targets = %+v", cfg.Reflow.Exit)
	}
	if cfg.Reflow.Enter.Duration != 0.5 || cfg.Reflow.Enter.Stagger != 0.055 {
		t.Errorf("enter preset = %+v", cfg.Reflow.Enter)
	}
	if cfg.Reflow.Enter.Y != 40 || cfg.Reflow.Enter.Scale != 0.94 {
		t.Errorf("enter pre-entry offsets = %+v", cfg.Reflow.Enter)
	}
	if len(cfg.HoverReveal.Follow) != 3 {
		t.Errorf("follow presets = %d, 期望 3", len(cfg.HoverReveal.Follow))
	}
	if cfg.Entrance["heading"].Start != MustParseCondition("top 82%") {
		t.Errorf("heading start = %v", cfg.Entrance["heading"].Start)
	}
	if cfg.SmoothScroll.Lerp != 0.1 {
		t.Errorf("smoothScroll.lerp = %v, 期望 0.1", cfg.SmoothScroll.Lerp)
	}
}

// TestParseMotionConfigOverrides 配置值覆盖默认值，未配置的入场预设保留默认
func TestParseMotionConfigOverrides(t *testing.T) {
	data := []byte(`
reflow:
  exit:
    duration: 0.6
entrance:
  heading:
    start: top 50%
    duration: 2
`)
	cfg, err := ParseMotionConfig(data)
	if err != nil {
		t.Fatalf("ParseMotionConfig error: %v", err)
	}
	if cfg.Reflow.Exit.Duration != 0.6 {
		t.Errorf("exit duration = %v, 期望 0.6", cfg.Reflow.Exit.Duration)
	}
	if cfg.Entrance["heading"].Duration != 2 {
		t.Errorf("heading duration = %v, 期望 2", cfg.Entrance["heading"].Duration)
	}
	if cfg.Entrance["heading"].Start != MustParseCondition("top 50%") {
		t.Errorf("heading start = %v, 期望 top 50%%", cfg.Entrance["heading"].Start)
	}
	// 只覆盖部分字段的预设保留其余默认值
	if cfg.Entrance["heading"].Y != 50 || cfg.Entrance["heading"].Ease != "power3.out" {
		t.Errorf("heading preset lost defaults: %+v", cfg.Entrance["heading"])
	}
	if cfg.Reflow.Exit.Ease != "power2.in" || cfg.Reflow.Exit.Y != -20 {
		t.Errorf("exit preset lost defaults: %+v", cfg.Reflow.Exit)
	}
	if _, ok := cfg.Entrance["cards"]; !ok {
		t.Error("cards entrance default missing")
	}
}

// TestParseMotionConfigExplicitZero 显式配置的 0 不被默认值覆盖
func TestParseMotionConfigExplicitZero(t *testing.T) {
	data := []byte(`
reflow:
  exit:
    y: 0
    stagger: 0
  enterLead: 0
magnetic:
  damping: 0
marquee:
  slideX: 0
entrance:
  cards:
    scale: 0
`)
	cfg, err := ParseMotionConfig(data)
	if err != nil {
		t.Fatalf("ParseMotionConfig error: %v", err)
	}
	if cfg.Reflow.Exit.Y != 0 || cfg.Reflow.Exit.Stagger != 0 {
		t.Errorf("exit = %+v, 期望 y 0 stagger 0", cfg.Reflow.Exit)
	}
	if cfg.Reflow.Exit.Scale != 0.88 {
		t.Errorf("exit scale = %v, 未配置时保留默认 0.88", cfg.Reflow.Exit.Scale)
	}
	if cfg.Reflow.EnterLead != 0 {
		t.Errorf("enterLead = %v, 期望 0", cfg.Reflow.EnterLead)
	}
	if cfg.Magnetic.Damping != 0 || cfg.Magnetic.Frequency != 6 {
		t.Errorf("magnetic = %+v", cfg.Magnetic)
	}
	if cfg.Marquee.SlideX != 0 {
		t.Errorf("marquee.slideX = %v, 期望 0", cfg.Marquee.SlideX)
	}
	if cards := cfg.Entrance["cards"]; cards.Scale != 0 || cards.StaggerAmount != 0.5 {
		t.Errorf("cards = %+v", cards)
	}
}

// TestParseMotionConfigInvalid 测试非法配置被拒绝
func TestParseMotionConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"负时长", "reflow: {exit: {duration: -1}}", "reflow.exit"},
		{"非法触发条件", "entrance: {heading: {start: sideways}}", "entrance.heading"},
		{"自定义入场缺少触发条件", "entrance: {footer: {duration: 1}}", "entrance.footer"},
		{"非法视差条件", "parallax: {end: bottom nowhere}", "nowhere"},
		{"非法 lerp", "smoothScroll: {lerp: 2}", "lerp"},
		{"跟随平滑为负", "hoverReveal: {follow: [{name: x, smoothing: -1}]}", "smoothing"},
		{"YAML 语法错误", "reflow: [", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMotionConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

// TestLoadMotionConfigFromData 加载仓库中的 data/motion.yaml
func TestLoadMotionConfigFromData(t *testing.T) {
	if _, err := os.Stat("../../data/motion.yaml"); err != nil {
		t.Skip("data directory not available")
	}
	embedded.Init(os.DirFS("../.."))
	defer embedded.Reset()

	cfg, err := LoadMotionConfig(MotionConfigPath)
	if err != nil {
		t.Fatalf("LoadMotionConfig error: %v", err)
	}
	if cfg.Viewport.Width != 1280 || cfg.Viewport.Height != 800 {
		t.Errorf("viewport = %+v", cfg.Viewport)
	}
	if cfg.Reflow.EnterLead != 0.05 {
		t.Errorf("reflow.enterLead = %v, 期望 0.05", cfg.Reflow.EnterLead)
	}
	if len(cfg.Parallax.Scales) != 7 {
		t.Errorf("parallax scales = %v", cfg.Parallax.Scales)
	}
}

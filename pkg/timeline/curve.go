package timeline

import (
	"strings"

	"github.com/tanema/gween/ease"
)

// Curve 缓动曲线标识，如 "power3.out"、"back.out"、"linear"
//
// 命名沿用站点动画里的写法：powerN 系列对应二次到五次缓动，
// 省略方向后缀时默认为 .out。
type Curve string

// DefaultCurve 未知或空曲线时使用的缓动
const DefaultCurve Curve = "power1.out"

// 曲线注册表：曲线ID -> gween 缓动函数
var curves = map[Curve]ease.TweenFunc{
	"linear": ease.Linear,
	"none":   ease.Linear,

	"power1.in":    ease.InQuad,
	"power1.out":   ease.OutQuad,
	"power1.inOut": ease.InOutQuad,

	"power2.in":    ease.InCubic,
	"power2.out":   ease.OutCubic,
	"power2.inOut": ease.InOutCubic,

	"power3.in":    ease.InQuart,
	"power3.out":   ease.OutQuart,
	"power3.inOut": ease.InOutQuart,

	"power4.in":    ease.InQuint,
	"power4.out":   ease.OutQuint,
	"power4.inOut": ease.InOutQuint,

	"sine.in":    ease.InSine,
	"sine.out":   ease.OutSine,
	"sine.inOut": ease.InOutSine,

	"expo.in":  ease.InExpo,
	"expo.out": ease.OutExpo,

	"back.in":     ease.InBack,
	"back.out":    ease.OutBack,
	"elastic.out": ease.OutElastic,
	"bounce.out":  ease.OutBounce,
}

// normalize 去掉参数部分并补全方向后缀
// "back.out(1.7)" -> "back.out"，"power3" -> "power3.out"
func (c Curve) normalize() Curve {
	s := strings.TrimSpace(string(c))
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	if s != "" && !strings.Contains(s, ".") && s != "linear" && s != "none" {
		s += ".out"
	}
	return Curve(s)
}

// Known 报告曲线ID是否在注册表中
func (c Curve) Known() bool {
	_, ok := curves[c.normalize()]
	return ok
}

// Func 返回曲线对应的 gween 缓动函数，未知曲线回退到 DefaultCurve
func (c Curve) Func() ease.TweenFunc {
	if fn, ok := curves[c.normalize()]; ok {
		return fn
	}
	return curves[DefaultCurve]
}

// Apply 对归一化进度 p ∈ [0, 1] 应用缓动，返回缓动后的进度
func (c Curve) Apply(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return float64(c.Func()(float32(p), 0, 1, 1))
}

// Curves 返回所有已注册曲线ID（用于配置校验报错信息）
func Curves() []Curve {
	out := make([]Curve, 0, len(curves))
	for c := range curves {
		out = append(out, c)
	}
	return out
}

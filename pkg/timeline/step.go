// Package timeline 将一组属性动画按相对起始偏移组合成一个可控制的序列
//
// 本包是纯数据层：Build 只校验并整理步骤，Sample 是时间的纯函数，
// 不触碰任何元素。播放、取消与逐帧写回由 systems.TimelineSystem 完成。
package timeline

import (
	"fmt"
	"math"

	"github.com/decker502/storefront/pkg/ecs"
	"github.com/tanema/gween"
)

// Property 可动画属性名，对应 components.TransformComponent 的字段
type Property string

const (
	PropX        Property = "x"
	PropY        Property = "y"
	PropScale    Property = "scale"
	PropOpacity  Property = "opacity"
	PropRotation Property = "rotation"
	PropWidth    Property = "width"
	PropXPercent Property = "xPercent"
)

// Valid 报告属性名是否受支持
func (p Property) Valid() bool {
	switch p {
	case PropX, PropY, PropScale, PropOpacity, PropRotation, PropWidth, PropXPercent:
		return true
	}
	return false
}

// Key 标识一个 (元素, 属性) 对
type Key struct {
	Target   ecs.EntityID
	Property Property
}

func (k Key) String() string {
	return fmt.Sprintf("%d.%s", k.Target, k.Property)
}

// Step 单个属性动画步骤（AnimationStep）
//
// 构造后不可变：所有 With* 方法返回修改后的副本。
// 未设置起始值的步骤在开始时从属性的当前值出发（等同于 gsap.to）。
type Step struct {
	target   ecs.EntityID
	property Property
	from     float64
	hasFrom  bool
	to       float64
	duration float64
	curve    Curve
	offset   float64
}

// NewStep 创建起始值明确的步骤（等同于 gsap.fromTo）
func NewStep(target ecs.EntityID, property Property, from, to, duration float64, curve Curve, offset float64) Step {
	return Step{
		target:   target,
		property: property,
		from:     from,
		hasFrom:  true,
		to:       to,
		duration: duration,
		curve:    curve,
		offset:   offset,
	}
}

// To 创建从当前值出发的步骤，偏移为 0
func To(target ecs.EntityID, property Property, to, duration float64, curve Curve) Step {
	return Step{
		target:   target,
		property: property,
		to:       to,
		duration: duration,
		curve:    curve,
	}
}

// Set 创建零时长步骤：在 offset 处立即把属性设为 value（等同于 gsap.set）
func Set(target ecs.EntityID, property Property, value float64) Step {
	return Step{
		target:   target,
		property: property,
		from:     value,
		hasFrom:  true,
		to:       value,
	}
}

// WithOffset 返回起始偏移为 offset 的副本
func (s Step) WithOffset(offset float64) Step {
	s.offset = offset
	return s
}

// Delay 返回起始偏移增加 d 的副本
func (s Step) Delay(d float64) Step {
	s.offset += d
	return s
}

func (s Step) Target() ecs.EntityID  { return s.target }
func (s Step) Property() Property    { return s.property }
func (s Step) To() float64           { return s.to }
func (s Step) Duration() float64     { return s.duration }
func (s Step) Curve() Curve          { return s.curve }
func (s Step) Offset() float64       { return s.offset }
func (s Step) End() float64          { return s.offset + s.duration }
func (s Step) Key() Key              { return Key{Target: s.target, Property: s.property} }
func (s Step) From() (float64, bool) { return s.from, s.hasFrom }

// validate 检查偏移、时长与属性名
func (s Step) validate() error {
	if math.IsNaN(s.offset) || s.offset < 0 {
		return ErrNegativeOffset
	}
	if math.IsNaN(s.duration) || s.duration < 0 {
		return ErrNegativeDuration
	}
	if !s.property.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownProperty, s.property)
	}
	return nil
}

// active 报告步骤在时刻 t 是否处于插值区间 [offset, end)
func (s Step) active(t float64) bool {
	return t >= s.offset && t < s.End()
}

// valueAt 在局部时间 local 处计算步骤的值
func (s Step) valueAt(from, local float64) float64 {
	if s.duration <= 0 || local >= s.duration {
		return s.to
	}
	if local <= 0 {
		return from
	}
	// 每次采样新建 Tween：采样必须是时间的纯函数，不能依赖 Tween 的内部累计时间
	tw := gween.New(float32(from), float32(s.to), float32(s.duration), s.curve.Func())
	v, _ := tw.Set(float32(local))
	return float64(v)
}

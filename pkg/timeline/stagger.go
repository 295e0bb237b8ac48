package timeline

import "github.com/decker502/storefront/pkg/ecs"

// StepTemplate 为单个元素生成一组步骤（偏移相对于该元素的 stagger 起点）
type StepTemplate func(target ecs.EntityID) []Step

// Stagger 按声明顺序为每个元素依次延迟 each 秒展开模板
//
// 第 i 个元素的所有步骤偏移增加 i*each，对应 stagger: 0.03。
func Stagger(targets []ecs.EntityID, each float64, tmpl StepTemplate) []Step {
	steps := make([]Step, 0, len(targets))
	for i, target := range targets {
		for _, st := range tmpl(target) {
			steps = append(steps, st.Delay(float64(i)*each))
		}
	}
	return steps
}

// StaggerAmount 在 amount 秒内平均分配所有元素的起点
// 对应 stagger: { amount: 0.5, from: 'start' }：首个元素 0，末个元素 amount
func StaggerAmount(targets []ecs.EntityID, amount float64, tmpl StepTemplate) []Step {
	each := 0.0
	if len(targets) > 1 {
		each = amount / float64(len(targets)-1)
	}
	return Stagger(targets, each, tmpl)
}

// Shift 返回所有步骤偏移增加 d 的副本（用于把子序列拼接到更长的序列中）
func Shift(steps []Step, d float64) []Step {
	out := make([]Step, len(steps))
	for i, st := range steps {
		out[i] = st.Delay(d)
	}
	return out
}

package timeline

import (
	"fmt"

	"github.com/decker502/storefront/pkg/ecs"
)

// Sequence 有序步骤列表，作为一个整体播放、跳转或取消
//
// 同一 (元素, 属性) 对上时间区间重叠的步骤，后声明者生效（last-write-wins）；
// 不重叠的步骤按时间先后依次生效，与声明顺序无关。
type Sequence struct {
	steps    []Step
	duration float64

	// Repeatable 为 true 时播放完成后从头重播，直到被取消
	Repeatable bool
}

// Build 校验步骤并构造序列
//
// 返回的序列持有 steps 的副本，调用方之后修改切片不影响序列。
// 空步骤列表构造出时长为 0 的合法序列。
func Build(steps []Step) (*Sequence, error) {
	seq := &Sequence{steps: make([]Step, len(steps))}
	for i, st := range steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, st.Key(), err)
		}
		seq.steps[i] = st
		if end := st.End(); end > seq.duration {
			seq.duration = end
		}
	}
	return seq, nil
}

// MustBuild 同 Build，校验失败时 panic
// 仅用于由常量构造、不可能失败的序列
func MustBuild(steps []Step) *Sequence {
	seq, err := Build(steps)
	if err != nil {
		panic(err)
	}
	return seq
}

// Duration 序列总时长 = max(offset + duration)
func (s *Sequence) Duration() float64 {
	return s.duration
}

// Len 步骤数量
func (s *Sequence) Len() int {
	return len(s.steps)
}

// Steps 返回步骤副本（声明顺序）
func (s *Sequence) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Keys 返回序列涉及的 (元素, 属性) 对，按首次声明顺序
func (s *Sequence) Keys() []Key {
	seen := make(map[Key]bool, len(s.steps))
	keys := make([]Key, 0, len(s.steps))
	for _, st := range s.steps {
		k := st.Key()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

// Targets 返回序列涉及的元素，按首次声明顺序
func (s *Sequence) Targets() []ecs.EntityID {
	seen := make(map[ecs.EntityID]bool)
	out := make([]ecs.EntityID, 0)
	for _, st := range s.steps {
		if !seen[st.target] {
			seen[st.target] = true
			out = append(out, st.target)
		}
	}
	return out
}

// Without 返回剔除指定元素所有步骤后的新序列（用于跳过已卸载的元素）
func (s *Sequence) Without(absent func(ecs.EntityID) bool) *Sequence {
	out := &Sequence{Repeatable: s.Repeatable}
	for _, st := range s.steps {
		if absent(st.target) {
			continue
		}
		out.steps = append(out.steps, st)
		if end := st.End(); end > out.duration {
			out.duration = end
		}
	}
	return out
}

// Sample 计算时刻 t 所有 (元素, 属性) 对的值
//
// base 提供序列开始前各属性的值，用于解析未指定起始值的步骤以及
// 尚未有步骤开始的属性。t 超出 [0, Duration] 时按边界截断。
func (s *Sequence) Sample(t float64, base func(Key) float64) map[Key]float64 {
	t = clamp(t, 0, s.duration)
	keys := s.Keys()
	out := make(map[Key]float64, len(keys))
	for _, k := range keys {
		out[k] = s.ValueAt(k, t, base(k))
	}
	return out
}

// ValueAt 计算单个 (元素, 属性) 对在时刻 t 的值
func (s *Sequence) ValueAt(k Key, t float64, base float64) float64 {
	return s.valueBefore(k, t, len(s.steps), base, true)
}

// valueBefore 只考虑声明序号小于 limit 的步骤计算 k 在时刻 t 的值
//
// inclusive 为 false 时，起始于 t 的步骤视为尚未开始（用于解析 from）。
// 选择规则：
//  1. 处于插值区间的步骤中，最后声明者生效
//  2. 否则取已结束步骤中结束最晚者，同时结束时最后声明者生效
//  3. 都没有时，最早开始的步骤有显式起始值则返回该值（fromTo 预先渲染起始状态），否则返回 base
func (s *Sequence) valueBefore(k Key, t float64, limit int, base float64, inclusive bool) float64 {
	winner := -1
	winnerActive := false
	for i := 0; i < limit; i++ {
		st := s.steps[i]
		if st.target != k.Target || st.property != k.Property {
			continue
		}
		started := st.offset < t || (inclusive && st.offset == t)
		if !started {
			continue
		}
		if st.active(t) {
			winner, winnerActive = i, true
			continue
		}
		if winnerActive {
			continue
		}
		if winner < 0 || st.End() >= s.steps[winner].End() {
			winner = i
		}
	}
	if winner < 0 {
		return s.pendingFrom(k, limit, base)
	}
	st := s.steps[winner]
	return st.valueAt(s.fromOf(winner, base), t-st.offset)
}

// pendingFrom 尚无步骤开始时 k 的值：取最早开始的步骤（同时开始取先声明者）的显式起始值
func (s *Sequence) pendingFrom(k Key, limit int, base float64) float64 {
	first := -1
	for i := 0; i < limit; i++ {
		st := s.steps[i]
		if st.target != k.Target || st.property != k.Property {
			continue
		}
		if first < 0 || st.offset < s.steps[first].offset {
			first = i
		}
	}
	if first < 0 || !s.steps[first].hasFrom {
		return base
	}
	return s.steps[first].from
}

// fromOf 解析第 i 个步骤的起始值：显式值优先，否则取步骤开始前一刻该属性的值
func (s *Sequence) fromOf(i int, base float64) float64 {
	st := s.steps[i]
	if st.hasFrom {
		return st.from
	}
	return s.valueBefore(st.Key(), st.offset, len(s.steps), base, false)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

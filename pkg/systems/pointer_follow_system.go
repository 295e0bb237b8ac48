package systems

import (
	"slices"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/zap"

	"github.com/decker502/storefront/pkg/ecs"
	"github.com/decker502/storefront/pkg/game"
	"github.com/decker502/storefront/pkg/timeline"
)

// Axis 指针坐标轴
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// PointerMapFunc 把指针位置换算为属性目标值
type PointerMapFunc func(x, y float64) float64

// SpringParams 弹簧跟随参数
type SpringParams struct {
	Frequency float64 // 角频率，越大越快
	Damping   float64 // 阻尼比，<1 时有回弹
}

// FollowProperty 描述元素的一个属性如何跟随指针
type FollowProperty struct {
	Name timeline.Property
	Axis Axis
	// SmoothingDuration 补间模式下追上新目标所用的时间（秒）
	SmoothingDuration float64
	Ease              timeline.Curve
	// Spring 非 nil 时使用弹簧模式，忽略 SmoothingDuration 与 Ease
	Spring *SpringParams
	// Offset 加到指针坐标上的偏移（如让光标环以指针为中心）
	Offset float64
	// Map 非 nil 时代替 Axis/Offset 计算目标值
	Map PointerMapFunc
}

// FollowState 一个 (元素, 属性) 对的跟随状态
type FollowState struct {
	Target            ecs.EntityID
	Property          FollowProperty
	Current           float64
	Goal              float64
	SmoothingDuration float64

	// 补间模式
	tweenFrom    float64
	tweenElapsed float64
	settled      bool

	// 弹簧模式
	velocity  float64
	spring    harmonica.Spring
	springFor float64 // spring 系数对应的帧间隔
}

// PointerFollowSystem 让元素属性平滑跟随指针
//
// 所有注册共享一个指针订阅与一个帧时钟订阅，最后一个注册释放时两者一并退订。
type PointerFollowSystem struct {
	entityManager *ecs.EntityManager
	pointer       game.PointerSource
	clock         game.FrameClock
	logger        *zap.Logger

	states     []*FollowState
	pointerSub *game.Subscription
	clockSub   *game.Subscription
}

// NewPointerFollowSystem 创建指针跟随系统
func NewPointerFollowSystem(em *ecs.EntityManager, pointer game.PointerSource, clock game.FrameClock, logger *zap.Logger) *PointerFollowSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	ps := &PointerFollowSystem{
		entityManager: em,
		pointer:       pointer,
		clock:         clock,
		logger:        logger.Named("PointerFollow"),
	}
	em.OnDestroy(ps.Release)
	return ps
}

// Follow 注册元素的跟随属性，已注册的同名属性被替换
// 元素未挂载时为空操作并返回 false
func (ps *PointerFollowSystem) Follow(target ecs.EntityID, props []FollowProperty) bool {
	tf := transformOf(ps.entityManager, target)
	if tf == nil {
		ps.logger.Debug("follow skipped, element absent", zap.Uint64("element", uint64(target)))
		return false
	}
	for _, p := range props {
		if p.Spring == nil && p.SmoothingDuration <= 0 {
			p.SmoothingDuration = 0.01
		}
		ps.removeState(target, p.Name)
		current := readProperty(tf, p.Name)
		ps.states = append(ps.states, &FollowState{
			Target:            target,
			Property:          p,
			Current:           current,
			Goal:              current,
			SmoothingDuration: p.SmoothingDuration,
			tweenFrom:         current,
			settled:           true,
		})
	}
	if ps.pointerSub == nil {
		ps.pointerSub = ps.pointer.Subscribe(ps.onPointer)
	}
	if ps.clockSub == nil {
		ps.clockSub = ps.clock.Subscribe(ps.tick)
	}
	return true
}

// Release 释放元素的所有跟随状态
func (ps *PointerFollowSystem) Release(target ecs.EntityID) {
	ps.states = slices.DeleteFunc(ps.states, func(s *FollowState) bool { return s.Target == target })
	ps.releaseIfIdle()
}

// ReleaseAll 释放所有跟随状态（场景卸载）
func (ps *PointerFollowSystem) ReleaseAll() {
	ps.states = nil
	ps.releaseIfIdle()
}

// State 返回 (元素, 属性) 对的跟随状态
func (ps *PointerFollowSystem) State(target ecs.EntityID, prop timeline.Property) (*FollowState, bool) {
	for _, s := range ps.states {
		if s.Target == target && s.Property.Name == prop {
			return s, true
		}
	}
	return nil, false
}

// SetGoal 直接设置属性目标值（如悬停结束后回到 0）
func (ps *PointerFollowSystem) SetGoal(target ecs.EntityID, prop timeline.Property, goal float64) {
	if s, ok := ps.State(target, prop); ok {
		s.retarget(goal)
	}
}

// StateCount 跟随状态数量
func (ps *PointerFollowSystem) StateCount() int {
	return len(ps.states)
}

func (ps *PointerFollowSystem) onPointer(x, y float64) {
	for _, s := range ps.states {
		p := s.Property
		var goal float64
		switch {
		case p.Map != nil:
			goal = p.Map(x, y)
		case p.Axis == AxisY:
			goal = y + p.Offset
		default:
			goal = x + p.Offset
		}
		s.retarget(goal)
	}
}

func (ps *PointerFollowSystem) tick(dt float64) {
	for _, s := range ps.states {
		tf := transformOf(ps.entityManager, s.Target)
		if tf == nil {
			continue
		}
		s.step(dt)
		writeProperty(tf, s.Property.Name, s.Current)
	}
}

// retarget 设置新目标：补间模式从当前值重新开始补间
func (s *FollowState) retarget(goal float64) {
	if goal == s.Goal && s.settled {
		return
	}
	s.Goal = goal
	s.tweenFrom = s.Current
	s.tweenElapsed = 0
	s.settled = false
}

// step 推进一帧
func (s *FollowState) step(dt float64) {
	if s.settled {
		return
	}
	if sp := s.Property.Spring; sp != nil {
		if s.springFor != dt {
			s.spring = harmonica.NewSpring(dt, sp.Frequency, sp.Damping)
			s.springFor = dt
		}
		s.Current, s.velocity = s.spring.Update(s.Current, s.velocity, s.Goal)
		if abs(s.Current-s.Goal) < 0.01 && abs(s.velocity) < 0.01 {
			s.Current, s.velocity = s.Goal, 0
			s.settled = true
		}
		return
	}

	s.tweenElapsed += dt
	p := s.tweenElapsed / s.SmoothingDuration
	if p >= 1 {
		s.Current = s.Goal
		s.settled = true
		return
	}
	s.Current = s.tweenFrom + (s.Goal-s.tweenFrom)*s.Property.Ease.Apply(p)
}

func (ps *PointerFollowSystem) removeState(target ecs.EntityID, prop timeline.Property) {
	ps.states = slices.DeleteFunc(ps.states, func(s *FollowState) bool {
		return s.Target == target && s.Property.Name == prop
	})
}

func (ps *PointerFollowSystem) releaseIfIdle() {
	if len(ps.states) > 0 {
		return
	}
	if ps.pointerSub != nil {
		ps.pointerSub.Cancel()
		ps.pointerSub = nil
	}
	if ps.clockSub != nil {
		ps.clockSub.Cancel()
		ps.clockSub = nil
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

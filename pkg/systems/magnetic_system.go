package systems

import (
	"slices"

	"github.com/decker502/storefront/pkg/components"
	"github.com/decker502/storefront/pkg/config"
	"github.com/decker502/storefront/pkg/ecs"
	"github.com/decker502/storefront/pkg/game"
	"github.com/decker502/storefront/pkg/timeline"
)

// MagneticSystem 磁吸按钮：指针在元素内时元素朝指针偏移，离开后弹回原位
//
// 偏移量 = 指针位置 - 元素中心，用欠阻尼弹簧跟随，离开时目标归零。
type MagneticSystem struct {
	entityManager *ecs.EntityManager
	follower      *PointerFollowSystem
	viewport      game.Viewport
	spring        SpringParams
	elements      []ecs.EntityID
}

// NewMagneticSystem 创建磁吸系统，复用指针跟随系统的订阅
func NewMagneticSystem(em *ecs.EntityManager, follower *PointerFollowSystem, viewport game.Viewport, preset config.SpringPreset) *MagneticSystem {
	ms := &MagneticSystem{
		entityManager: em,
		follower:      follower,
		viewport:      viewport,
		spring:        SpringParams{Frequency: preset.Frequency, Damping: preset.Damping},
	}
	em.OnDestroy(ms.forget)
	return ms
}

// Attach 让元素具有磁吸效果；元素未挂载或没有布局盒时返回 false
func (ms *MagneticSystem) Attach(id ecs.EntityID) bool {
	if !ecs.HasComponent[*components.LayoutComponent](ms.entityManager, id) {
		return false
	}
	sp := ms.spring
	ok := ms.follower.Follow(id, []FollowProperty{
		{Name: timeline.PropX, Spring: &sp, Map: ms.offsetFunc(id, AxisX)},
		{Name: timeline.PropY, Spring: &sp, Map: ms.offsetFunc(id, AxisY)},
	})
	if ok {
		ms.elements = append(ms.elements, id)
	}
	return ok
}

// Detach 取消元素的磁吸效果
func (ms *MagneticSystem) Detach(id ecs.EntityID) {
	ms.follower.Release(id)
	ms.forget(id)
}

// Hovered 报告指针当前是否在元素内
func (ms *MagneticSystem) Hovered(id ecs.EntityID, x, y float64) bool {
	layout, ok := ecs.GetComponent[*components.LayoutComponent](ms.entityManager, id)
	if !ok {
		return false
	}
	px, py := ms.toPage(layout, x, y)
	// 命中判断使用元素当前（已偏移）的位置
	if tf := transformOf(ms.entityManager, id); tf != nil {
		px -= tf.X
		py -= tf.Y
	}
	return layout.Contains(px, py)
}

func (ms *MagneticSystem) offsetFunc(id ecs.EntityID, axis Axis) PointerMapFunc {
	return func(x, y float64) float64 {
		if !ms.Hovered(id, x, y) {
			return 0
		}
		layout, _ := ecs.GetComponent[*components.LayoutComponent](ms.entityManager, id)
		px, py := ms.toPage(layout, x, y)
		cx, cy := layout.Center()
		if axis == AxisY {
			return py - cy
		}
		return px - cx
	}
}

// toPage 把视口坐标换算为页面坐标（固定元素不随滚动）
func (ms *MagneticSystem) toPage(layout *components.LayoutComponent, x, y float64) (float64, float64) {
	if layout.Fixed {
		return x, y
	}
	return x, y + ms.viewport.ScrollY()
}

func (ms *MagneticSystem) forget(id ecs.EntityID) {
	ms.elements = slices.DeleteFunc(ms.elements, func(e ecs.EntityID) bool { return e == id })
}

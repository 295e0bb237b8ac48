package components

// PresenceComponent 元素的显示状态（对应 display:none）
//
// Displayed 为 false 时元素不参与绘制与布局流，但实体仍然存在，
// 动画可以在它重新显示前预先设置其属性。
type PresenceComponent struct {
	Displayed bool
}

package systems

import (
	"github.com/decker502/storefront/pkg/components"
	"github.com/decker502/storefront/pkg/ecs"
	"github.com/decker502/storefront/pkg/timeline"
)

// readProperty 读取变换组件上的属性值
func readProperty(tf *components.TransformComponent, prop timeline.Property) float64 {
	switch prop {
	case timeline.PropX:
		return tf.X
	case timeline.PropY:
		return tf.Y
	case timeline.PropScale:
		return tf.Scale
	case timeline.PropOpacity:
		return tf.Opacity
	case timeline.PropRotation:
		return tf.Rotation
	case timeline.PropWidth:
		return tf.Width
	case timeline.PropXPercent:
		return tf.XPercent
	}
	return 0
}

// writeProperty 写入变换组件上的属性值
func writeProperty(tf *components.TransformComponent, prop timeline.Property, v float64) {
	switch prop {
	case timeline.PropX:
		tf.X = v
	case timeline.PropY:
		tf.Y = v
	case timeline.PropScale:
		tf.Scale = v
	case timeline.PropOpacity:
		tf.Opacity = v
	case timeline.PropRotation:
		tf.Rotation = v
	case timeline.PropWidth:
		tf.Width = v
	case timeline.PropXPercent:
		tf.XPercent = v
	}
}

// transformOf 获取元素的变换组件；元素未挂载或没有变换时返回 nil
func transformOf(em *ecs.EntityManager, id ecs.EntityID) *components.TransformComponent {
	tf, ok := ecs.GetComponent[*components.TransformComponent](em, id)
	if !ok {
		return nil
	}
	return tf
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 页面场景（如商品页）
// 每个场景有自己的更新和绘制逻辑
type Scene interface {
	// Update 推进场景逻辑，deltaTime 为距上一帧的秒数
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Unmountable 可选接口：场景被替换或程序退出时释放它持有的
// 动画、滚动绑定与指针订阅
type Unmountable interface {
	Teardown()
}

// Saveable 可选接口：程序退出时保存场景状态（如最后选中的分类）
//
// 返回 true 表示保存成功或无需保存；
// 返回 false 表示保存失败（程序仍会正常退出）
type Saveable interface {
	SaveOnExit() bool
}

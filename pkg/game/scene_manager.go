package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// SceneFactory 场景工厂函数类型
// 按名称创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(name string) (Scene, error)

// SceneManager 控制当前活动场景
// 任意时刻只有一个场景的 Update 和 Draw 会被调用
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
	logger       *zap.Logger
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager(logger *zap.Logger) *SceneManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SceneManager{logger: logger.Named("SceneManager")}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换活动场景
// 旧场景实现了 Unmountable 时先卸载它，保证旧场景的订阅全部释放
func (sm *SceneManager) SwitchTo(scene Scene) {
	if prev, ok := sm.currentScene.(Unmountable); ok && sm.currentScene != scene {
		prev.Teardown()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadScene 通过工厂创建并切换到指定场景
func (sm *SceneManager) LoadScene(name string) error {
	sm.logger.Info("loading scene", zap.String("scene", name))

	if sm.sceneFactory == nil {
		sm.logger.Error("scene factory not set")
		return ErrNoSceneFactory
	}

	scene, err := sm.sceneFactory(name)
	if err != nil {
		sm.logger.Error("failed to create scene", zap.String("scene", name), zap.Error(err))
		return err
	}
	sm.SwitchTo(scene)
	return nil
}

// Shutdown 程序退出：保存并卸载当前场景
func (sm *SceneManager) Shutdown() {
	if s, ok := sm.currentScene.(Saveable); ok && !s.SaveOnExit() {
		sm.logger.Warn("scene state not saved on exit")
	}
	if u, ok := sm.currentScene.(Unmountable); ok {
		u.Teardown()
	}
	sm.currentScene = nil
}

// Update 更新当前场景，没有活动场景时什么都不做
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景，没有活动场景时什么都不做
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

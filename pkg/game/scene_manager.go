package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于按起始日索引创建展示场景，避免循环依赖
type SceneFactory func(startDay float64) Scene

// SceneManager manages the viewer's high-level state by controlling
// which scene is active. Only the active scene's Update and Draw are
// called on any given frame.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
	width        int
	height       int
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set one.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene. The new
// scene immediately receives the current surface size.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	if scene != nil && sm.width > 0 && sm.height > 0 {
		scene.Layout(sm.width, sm.height)
	}
}

// GetCurrentScene 返回当前活动的场景，没有则为 nil
// 窗口关闭时用于检查场景是否实现了 Saveable
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadShowcase 从指定的日索引创建并切换到展示场景
func (sm *SceneManager) LoadShowcase(startDay float64) {
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}

	newScene := sm.sceneFactory(startDay)
	if newScene != nil {
		sm.SwitchTo(newScene)
		log.Printf("[SceneManager] 切换到展示场景，起始日索引: %.2f", startDay)
	} else {
		log.Printf("[SceneManager] 错误: 无法创建展示场景")
	}
}

// Layout records the logical surface size and forwards it to the
// active scene.
func (sm *SceneManager) Layout(width, height int) {
	sm.width, sm.height = width, height
	if sm.currentScene != nil {
		sm.currentScene.Layout(width, height)
	}
}

// Update updates the currently active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

package systems

import (
	"math"

	"github.com/decker502/nightsky/pkg/components"
	"github.com/decker502/nightsky/pkg/ecs"
	"github.com/decker502/nightsky/pkg/utils"
)

// MeteorSystem advances every live meteor each frame and retires expired
// ones. Integration is scaled by frameScale, the elapsed frame duration
// normalized against a 16ms reference, so meteor motion is identical at any
// refresh rate.
//
// Retirement happens when accumulated life exceeds MaxLife, or when the
// position leaves the surface bounds by more than a generous margin on any
// side. Fade in/out is computed at draw time, not stored.
type MeteorSystem struct {
	EntityManager *ecs.EntityManager

	width  float64
	height float64
}

// OffscreenMargin 超出表面边界多少逻辑像素后退役
const OffscreenMargin = 100.0

// NewMeteorSystem creates a new MeteorSystem instance.
func NewMeteorSystem(em *ecs.EntityManager) *MeteorSystem {
	return &MeteorSystem{EntityManager: em}
}

// SetSurfaceSize 更新退役判定使用的表面尺寸
func (ms *MeteorSystem) SetSurfaceSize(width, height float64) {
	ms.width = width
	ms.height = height
}

// Update integrates all live meteors by frameScale (1.0 = one 16ms step).
func (ms *MeteorSystem) Update(frameScale float64) {
	meteors := ecs.GetEntitiesWith2[*components.MeteorComponent, *components.PositionComponent](ms.EntityManager)

	for _, id := range meteors {
		meteor, ok := ecs.GetComponent[*components.MeteorComponent](ms.EntityManager, id)
		if !ok {
			continue
		}
		position, ok := ecs.GetComponent[*components.PositionComponent](ms.EntityManager, id)
		if !ok {
			continue
		}

		// 弯曲：方向向量按角转率旋转（慢速流星的轻微弧线）
		if meteor.Curvature != 0 {
			angle := meteor.Curvature * frameScale
			sin, cos := math.Sin(angle), math.Cos(angle)
			meteor.DirX, meteor.DirY = meteor.DirX*cos-meteor.DirY*sin, meteor.DirX*sin+meteor.DirY*cos
		}

		position.X += meteor.DirX * meteor.Speed * frameScale
		position.Y += meteor.DirY * meteor.Speed * frameScale
		meteor.Life += frameScale

		if meteor.Life > meteor.MaxLife || ms.outOfBounds(position) {
			ms.EntityManager.DestroyEntity(id)
		}
	}
}

// outOfBounds 位置是否超出边界外的退役边距
func (ms *MeteorSystem) outOfBounds(position *components.PositionComponent) bool {
	return position.X < -OffscreenMargin ||
		position.Y < -OffscreenMargin ||
		position.X > ms.width+OffscreenMargin ||
		position.Y > ms.height+OffscreenMargin
}

// MeteorFade returns the combined fade-in/fade-out factor for a meteor's
// current life. Fade-in pops over the first 5 ticks with a quadratic ease
// so the head reads immediately; fade-out is a linear ramp from 60% of max
// life down to zero at max life.
func MeteorFade(life, maxLife float64) float64 {
	if maxLife <= 0 {
		return 0
	}
	fadeIn := life / 5
	if fadeIn > 1 {
		fadeIn = 1
	}
	fadeIn = utils.EaseOutQuad(fadeIn)
	fadeOut := 1.0
	if frac := life / maxLife; frac > 0.6 {
		fadeOut = 1 - (frac-0.6)/0.4
		if fadeOut < 0 {
			fadeOut = 0
		}
	}
	return fadeIn * fadeOut
}

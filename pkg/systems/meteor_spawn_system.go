package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/nightsky/pkg/components"
	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/ecs"
)

// MeteorSpawnSystem decides how many meteors to create each frame and with
// what properties. The expected per-second rate derives from the current
// config's ZHR through a sub-linear power curve, suppressed by moonlight,
// multiplied by elapsed seconds, and accumulated in a fractional counter on
// the emitter entity: one spawn per integer threshold crossed, so the
// realized rate is frame-rate independent.
//
// Follows ECS zero-coupling principle: communicates only through EntityManager.
type MeteorSpawnSystem struct {
	EntityManager *ecs.EntityManager
	Tuning        config.RenderTuning
	Rng           *rand.Rand

	width  float64
	height float64
}

// 防御性同屏上限：生成与退役失衡时的最后保险
const defaultMaxActiveMeteors = 220

// 生成位置距辐射点的最小距离（较小表面维度的比例）
const radiantExclusionFrac = 0.15

// 位置重采样的最大尝试次数
const spawnRetryLimit = 8

// NewMeteorSpawnSystem creates a new MeteorSpawnSystem instance.
func NewMeteorSpawnSystem(em *ecs.EntityManager, tuning config.RenderTuning, rng *rand.Rand) *MeteorSpawnSystem {
	return &MeteorSpawnSystem{
		EntityManager: em,
		Tuning:        tuning,
		Rng:           rng,
	}
}

// SetSurfaceSize 更新逻辑表面尺寸（生成位置与辐射点几何依赖它）
func (ms *MeteorSpawnSystem) SetSurfaceSize(width, height float64) {
	ms.width = width
	ms.height = height
}

// VisualRate returns the expected visible meteors per second for a config.
// Exported for tests and the verify tool: qualitative properties (zero at
// zhr=0, monotonic in zhr, decreasing in moonlight) are asserted, not the
// exact constants.
func (ms *MeteorSpawnSystem) VisualRate(cfg config.SceneConfig) float64 {
	if cfg.ZHR <= 0 {
		return 0
	}
	spawn := ms.Tuning.Spawn
	rate := spawn.Base + spawn.Scale*math.Pow(cfg.ZHR/150.0, spawn.Exponent)

	// 月光压制：满月时只保留 (1 - dimFactor) 的生成率
	moonFrac := cfg.MoonIllumination / 100
	rate *= 1 - moonFrac*ms.Tuning.Moon.DimFactor
	if rate < 0 {
		rate = 0
	}
	return rate
}

// Update accumulates the expected spawn count for the elapsed time and
// spawns meteors on every integer threshold crossed.
// dt is the elapsed frame time in seconds; cfg is the blended scene config.
func (ms *MeteorSpawnSystem) Update(dt float64, cfg config.SceneConfig) {
	if ms.width <= 0 || ms.height <= 0 {
		return
	}

	emitters := ecs.GetEntitiesWith1[*components.MeteorEmitterComponent](ms.EntityManager)
	for _, emitterID := range emitters {
		emitter, ok := ecs.GetComponent[*components.MeteorEmitterComponent](ms.EntityManager, emitterID)
		if !ok {
			continue
		}

		rate := ms.VisualRate(cfg)
		if rate <= 0 {
			// 无活跃流星雨：计数器清零，避免切换瞬间补发
			emitter.Accumulator = 0
			continue
		}

		maxActive := emitter.MaxActive
		if maxActive <= 0 {
			maxActive = defaultMaxActiveMeteors
		}

		emitter.Accumulator += rate * dt
		for emitter.Accumulator >= 1 {
			// 撞上上限时保留未消费的配额，等空位再补
			if ms.liveMeteorCount() >= maxActive {
				break
			}
			emitter.Accumulator--
			ms.spawnMeteor(cfg)
			emitter.TotalSpawned++
		}
	}
}

// liveMeteorCount 当前存活流星数
func (ms *MeteorSpawnSystem) liveMeteorCount() int {
	return len(ecs.GetEntitiesWith2[*components.MeteorComponent, *components.PositionComponent](ms.EntityManager))
}

// spawnMeteor 生成一颗流星实体
func (ms *MeteorSpawnSystem) spawnMeteor(cfg config.SceneConfig) {
	rng := ms.Rng
	style := config.StyleFor(cfg.ParentObjectType, cfg.VelocityCategory)

	radiantX := cfg.RadiantX * ms.width
	radiantY := cfg.RadiantY * ms.height

	// 位置：均匀随机，重采样直到离辐射点足够远（流星不应
	// 恰好从辐射点上冒出来）。重试有限次，失败就接受当前点。
	minDist := radiantExclusionFrac * math.Min(ms.width, ms.height)
	var px, py float64
	for attempt := 0; attempt < spawnRetryLimit; attempt++ {
		px = rng.Float64() * ms.width
		py = rng.Float64() * ms.height
		if math.Hypot(px-radiantX, py-radiantY) >= minDist {
			break
		}
	}

	// 方向：辐射点指向生成点，再按速度档位的扩散角随机旋转
	dirX, dirY := px-radiantX, py-radiantY
	length := math.Hypot(dirX, dirY)
	if length < 1e-6 {
		dirX, dirY, length = 0, 1, 1
	}
	dirX /= length
	dirY /= length

	spread := style.SpreadDeg * math.Pi / 180
	angle := (rng.Float64()*2 - 1) * spread
	sin, cos := math.Sin(angle), math.Cos(angle)
	dirX, dirY = dirX*cos-dirY*sin, dirX*sin+dirY*cos

	// 速度：归一化后过幂曲线，低速端压缩、高速端拉开，±jitter 抖动
	speedCfg := ms.Tuning.Speed
	normV := (cfg.VelocityKmPerSec - 11) / (72 - 11)
	if normV < 0 {
		normV = 0
	}
	speed := speedCfg.Base + speedCfg.Scale*math.Pow(normV, speedCfg.Exponent)
	speed *= 1 + (rng.Float64()*2-1)*speedCfg.Jitter

	// 火流星判定：小行星母体概率更高（样式表）
	fireball := rng.Float64() < style.FireballChance

	size := ms.rollSize(cfg.MoonIllumination, fireball)
	trailLength, thickness, lifeTicks := sizeBaseValues(size, rng)
	trailLength *= style.LengthScale
	thickness *= style.ThicknessScale
	lifeTicks *= style.LifeMul

	saturation := style.Saturation
	if fireball {
		// 火流星无论母体类型都高饱和
		saturation = 0.85
	}

	curvature := 0.0
	if style.CurvatureMax > 0 {
		curvature = (rng.Float64()*2 - 1) * style.CurvatureMax
	}

	variance := cfg.EffectiveColorVariance()
	hue := cfg.ColorHue + (rng.Float64()-0.5)*variance

	id := ms.EntityManager.CreateEntity()
	ms.EntityManager.AddComponent(id, &components.PositionComponent{X: px, Y: py})
	ms.EntityManager.AddComponent(id, &components.MeteorComponent{
		DirX:              dirX,
		DirY:              dirY,
		Speed:             speed,
		TrailLength:       trailLength,
		Thickness:         thickness,
		Opacity:           0.6 + rng.Float64()*0.4,
		Hue:               hue,
		Saturation:        saturation,
		Fireball:          fireball,
		Size:              size,
		MaxLife:           lifeTicks,
		AfterglowEligible: style.AfterglowEligible && !fireball && size != components.MeteorSmall,
		Curvature:         curvature,
		Parent:            cfg.ParentObjectType,
	})
}

// rollSize 按概率表选择尺寸分桶
// 月光越亮，概率越向大尺寸迁移：月夜里细尾迹读不出来
func (ms *MeteorSpawnSystem) rollSize(moonIllumination float64, fireball bool) components.MeteorSize {
	if fireball {
		return components.MeteorFireball
	}
	moonFrac := moonIllumination / 100
	shift := ms.Tuning.Sizes.MoonShift * moonFrac
	pLarge := ms.Tuning.Sizes.Large + shift*0.4
	pMedium := ms.Tuning.Sizes.Medium + shift*0.6

	roll := ms.Rng.Float64()
	switch {
	case roll < pLarge:
		return components.MeteorLarge
	case roll < pLarge+pMedium:
		return components.MeteorMedium
	default:
		return components.MeteorSmall
	}
}

// sizeBaseValues 各尺寸分桶的基准 尾长/线宽/寿命（寿命单位：16ms 帧基准）
func sizeBaseValues(size components.MeteorSize, rng *rand.Rand) (trailLength, thickness, lifeTicks float64) {
	jitter := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }
	switch size {
	case components.MeteorFireball:
		return jitter(130, 200), jitter(3.2, 4.6), jitter(70, 110)
	case components.MeteorLarge:
		return jitter(100, 150), jitter(2.2, 3.0), jitter(55, 85)
	case components.MeteorMedium:
		return jitter(65, 105), jitter(1.5, 2.2), jitter(45, 70)
	default:
		return jitter(38, 70), jitter(0.9, 1.5), jitter(35, 55)
	}
}

package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/nightsky/pkg/components"
	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/ecs"
	"github.com/decker502/nightsky/pkg/types"
)

func newSpawnFixture(seed int64) (*ecs.EntityManager, *MeteorSpawnSystem) {
	em := ecs.NewEntityManager()
	sys := NewMeteorSpawnSystem(em, config.DefaultRenderTuning(), rand.New(rand.NewSource(seed)))
	sys.SetSurfaceSize(1280, 720)
	em.AddComponent(em.CreateEntity(), &components.MeteorEmitterComponent{})
	return em, sys
}

func testScene(zhr, moon float64) config.SceneConfig {
	cfg := config.DefaultSceneConfig()
	cfg.ZHR = zhr
	cfg.MoonIllumination = moon
	cfg.VelocityKmPerSec = 59
	return cfg.Normalize()
}

func liveMeteors(em *ecs.EntityManager) int {
	return len(ecs.GetEntitiesWith2[*components.MeteorComponent, *components.PositionComponent](em))
}

// TestVisualRate_ZeroAtZeroZHR ZHR=0 时完全静默
func TestVisualRate_ZeroAtZeroZHR(t *testing.T) {
	_, sys := newSpawnFixture(1)
	if got := sys.VisualRate(testScene(0, 0)); got != 0 {
		t.Errorf("VisualRate(zhr=0) = %v, want 0", got)
	}
}

// TestVisualRate_MonotonicInZHR 速率随 ZHR 单调上升且次线性
func TestVisualRate_MonotonicInZHR(t *testing.T) {
	_, sys := newSpawnFixture(1)
	r10 := sys.VisualRate(testScene(10, 0))
	r100 := sys.VisualRate(testScene(100, 0))
	r150 := sys.VisualRate(testScene(150, 0))

	if !(r10 < r100 && r100 < r150) {
		t.Errorf("rate should rise with ZHR: %v, %v, %v", r10, r100, r150)
	}
	// 次线性：ZHR 翻 15 倍，速率涨幅远小于 15 倍
	if r150 >= r10*15 {
		t.Errorf("rate curve should be sub-linear: r(150)=%v vs r(10)=%v", r150, r10)
	}
	if r10 <= 0 {
		t.Errorf("low-ZHR shower should still be visible, rate = %v", r10)
	}
}

// TestVisualRate_MoonSuppression 月光单调压低生成率
func TestVisualRate_MoonSuppression(t *testing.T) {
	_, sys := newSpawnFixture(1)
	dark := sys.VisualRate(testScene(100, 0))
	half := sys.VisualRate(testScene(100, 50))
	full := sys.VisualRate(testScene(100, 100))

	if !(dark > half && half > full) {
		t.Errorf("moonlight should suppress spawn rate: %v, %v, %v", dark, half, full)
	}
	if full <= 0 {
		t.Errorf("full moon should suppress, not eliminate: %v", full)
	}
}

// TestUpdate_SpawnsAtExpectedRate 累计生成数接近 速率×时间
func TestUpdate_SpawnsAtExpectedRate(t *testing.T) {
	em, sys := newSpawnFixture(2)
	cfg := testScene(100, 0)
	rate := sys.VisualRate(cfg)

	seconds := 30.0
	dt := 1.0 / 60.0
	for i := 0; i < int(seconds*60); i++ {
		sys.Update(dt, cfg)
	}

	expected := rate * seconds
	got := float64(liveMeteors(em))
	if got < expected*0.8 || got > expected*1.2 {
		t.Errorf("spawned %v meteors in %vs, expected ~%v", got, seconds, expected)
	}
}

// TestUpdate_NoSpawnAtZeroZHR ZHR=0 不产生任何流星且清空计数器
func TestUpdate_NoSpawnAtZeroZHR(t *testing.T) {
	em, sys := newSpawnFixture(3)

	// 先积累一部分计数器
	active := testScene(100, 0)
	sys.Update(0.3, active)

	// 切到静夜：不得把残余计数器补发出去
	quiet := testScene(0, 0)
	before := liveMeteors(em)
	for i := 0; i < 600; i++ {
		sys.Update(1.0/60.0, quiet)
	}
	if got := liveMeteors(em); got != before {
		t.Errorf("quiet sky spawned %d extra meteors", got-before)
	}

	emitters := ecs.GetEntitiesWith1[*components.MeteorEmitterComponent](em)
	emitter, _ := ecs.GetComponent[*components.MeteorEmitterComponent](em, emitters[0])
	if emitter.Accumulator != 0 {
		t.Errorf("accumulator should reset on quiet sky, got %v", emitter.Accumulator)
	}
}

// TestUpdate_CapPreservesAccumulator 撞上活跃上限时不消耗生成配额
func TestUpdate_CapPreservesAccumulator(t *testing.T) {
	em, sys := newSpawnFixture(11)
	emitters := ecs.GetEntitiesWith1[*components.MeteorEmitterComponent](em)
	emitter, _ := ecs.GetComponent[*components.MeteorEmitterComponent](em, emitters[0])
	emitter.MaxActive = 1

	// 一次灌入多于 2 个单位的配额，只能发出 1 颗
	cfg := testScene(150, 0)
	rate := sys.VisualRate(cfg)
	sys.Update(2.5/rate, cfg)
	if got := liveMeteors(em); got != 1 {
		t.Fatalf("live meteors = %d, want 1 (capped)", got)
	}
	remaining := emitter.Accumulator
	if remaining < 1 {
		t.Errorf("hitting the cap must not consume credit, accumulator = %v", remaining)
	}

	// 上限占满期间反复更新：配额继续累积而不是被烧掉
	sys.Update(0, cfg)
	if emitter.Accumulator != remaining {
		t.Errorf("capped update changed accumulator: %v -> %v", remaining, emitter.Accumulator)
	}

	// 空位出现后用剩余配额补发
	clearMeteors(em)
	sys.Update(0, cfg)
	if got := liveMeteors(em); got != 1 {
		t.Errorf("freed slot should be refilled from retained credit, live = %d", got)
	}
	if emitter.Accumulator >= remaining {
		t.Errorf("refill should consume one credit, accumulator still %v", emitter.Accumulator)
	}
}

// TestSpawn_RadiantExclusion 生成点不会紧贴辐射点
func TestSpawn_RadiantExclusion(t *testing.T) {
	em, sys := newSpawnFixture(4)
	cfg := testScene(150, 0)
	cfg.RadiantX, cfg.RadiantY = 0.5, 0.5

	for i := 0; i < 1200; i++ {
		sys.Update(1.0/60.0, cfg)
	}

	radiantX, radiantY := 0.5*1280.0, 0.5*720.0
	minDist := radiantExclusionFrac * 720.0
	near := 0
	total := 0
	for _, id := range ecs.GetEntitiesWith2[*components.MeteorComponent, *components.PositionComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		total++
		if math.Hypot(pos.X-radiantX, pos.Y-radiantY) < minDist {
			near++
		}
	}
	if total == 0 {
		t.Fatal("no meteors spawned")
	}
	// 重采样上限内偶尔失败可接受，但必须是罕见情况
	if float64(near)/float64(total) > 0.02 {
		t.Errorf("%d/%d meteors spawned inside radiant exclusion zone", near, total)
	}
}

// TestSpawn_DirectionAwayFromRadiant 运动方向大体背离辐射点
func TestSpawn_DirectionAwayFromRadiant(t *testing.T) {
	em, sys := newSpawnFixture(5)
	cfg := testScene(150, 0)
	cfg.RadiantX, cfg.RadiantY = 0.5, 0.1
	cfg.VelocityKmPerSec = 40 // medium：扩散 18°

	for i := 0; i < 600; i++ {
		sys.Update(1.0/60.0, cfg)
	}

	radiantX, radiantY := 0.5*1280.0, 0.1*720.0
	for _, id := range ecs.GetEntitiesWith2[*components.MeteorComponent, *components.PositionComponent](em) {
		meteor, _ := ecs.GetComponent[*components.MeteorComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

		// 生成点相对辐射点的径向方向
		rx, ry := pos.X-radiantX, pos.Y-radiantY
		rlen := math.Hypot(rx, ry)
		if rlen < 1e-6 {
			continue
		}
		dot := (rx/rlen)*meteor.DirX + (ry/rlen)*meteor.DirY
		// 与径向的夹角不超过扩散角（18° 加浮点余量）
		if dot < math.Cos(19*math.Pi/180) {
			t.Fatalf("meteor direction deviates from radial by more than spread: dot=%v", dot)
		}
	}
}

// TestSpawn_SpeedScalesWithVelocity 高速流星雨产生更快的流星
func TestSpawn_SpeedScalesWithVelocity(t *testing.T) {
	avgSpeed := func(seed int64, velocity float64) float64 {
		em, sys := newSpawnFixture(seed)
		cfg := testScene(150, 0)
		cfg.VelocityKmPerSec = velocity
		for i := 0; i < 600; i++ {
			sys.Update(1.0/60.0, cfg)
		}
		sum, n := 0.0, 0
		for _, id := range ecs.GetEntitiesWith2[*components.MeteorComponent, *components.PositionComponent](em) {
			m, _ := ecs.GetComponent[*components.MeteorComponent](em, id)
			sum += m.Speed
			n++
		}
		if n == 0 {
			t.Fatal("no meteors spawned")
		}
		return sum / float64(n)
	}

	slow := avgSpeed(6, 17)
	swift := avgSpeed(7, 70)
	if swift <= slow {
		t.Errorf("70 km/s meteors (%v) should be faster on screen than 17 km/s (%v)", swift, slow)
	}
}

// TestSpawn_CapsActiveCount 防御性同屏上限生效
func TestSpawn_CapsActiveCount(t *testing.T) {
	em, sys := newSpawnFixture(8)
	cfg := testScene(150, 0)

	// 长时间生成、从不退役
	for i := 0; i < 60*600; i++ {
		sys.Update(1.0/60.0, cfg)
	}
	if got := liveMeteors(em); got > defaultMaxActiveMeteors {
		t.Errorf("live meteors %d exceeded cap %d", got, defaultMaxActiveMeteors)
	}
}

// TestSpawn_FireballProperties 火流星高饱和、尺寸档为 fireball
func TestSpawn_FireballProperties(t *testing.T) {
	em, sys := newSpawnFixture(9)
	cfg := testScene(150, 0)
	cfg.ParentObjectType = types.ParentAsteroid

	for i := 0; i < 3000; i++ {
		sys.Update(1.0/60.0, cfg)
		// 避免撞上限
		if liveMeteors(em) > 180 {
			clearMeteors(em)
		}
	}
	clearMeteors(em)

	// 重新采样一批并检查
	for i := 0; i < 1200; i++ {
		sys.Update(1.0/60.0, cfg)
	}
	fireballs := 0
	for _, id := range ecs.GetEntitiesWith2[*components.MeteorComponent, *components.PositionComponent](em) {
		m, _ := ecs.GetComponent[*components.MeteorComponent](em, id)
		if m.Fireball {
			fireballs++
			if m.Size != components.MeteorFireball {
				t.Errorf("fireball meteor has size %v", m.Size)
			}
			if m.Saturation != 0.85 {
				t.Errorf("fireball saturation = %v, want 0.85", m.Saturation)
			}
			if m.AfterglowEligible {
				t.Errorf("fireballs should not use the afterglow path")
			}
		}
	}
	if fireballs == 0 {
		t.Error("asteroid shower produced no fireballs in a large sample")
	}
}

func clearMeteors(em *ecs.EntityManager) {
	for _, id := range ecs.GetEntitiesWith2[*components.MeteorComponent, *components.PositionComponent](em) {
		em.DestroyEntity(id)
	}
	em.RemoveMarkedEntities()
}

// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// ParentObjectType 定义流星雨母体天体的类型
//
// 母体类型影响火流星概率、尾迹饱和度、余辉资格和生命周期倍率。
type ParentObjectType int

const (
	// ParentComet 彗星母体（多数大型流星雨，如英仙座、狮子座）
	ParentComet ParentObjectType = iota
	// ParentAsteroid 小行星母体（如双子座 3200 Phaethon）
	ParentAsteroid
)

// String 返回母体类型的字符串表示
func (p ParentObjectType) String() string {
	switch p {
	case ParentAsteroid:
		return "asteroid"
	default:
		return "comet"
	}
}

// ParseParentObjectType converts a catalog string into a ParentObjectType.
// Unknown values fall back to ParentComet, matching the engine's defensive
// clamp-don't-reject policy for malformed upstream data.
func ParseParentObjectType(s string) ParentObjectType {
	if s == "asteroid" {
		return ParentAsteroid
	}
	return ParentComet
}

// VelocityCategory 定义流星速度档位
//
// 速度档位影响发射角度扩散、尾迹长度/粗细缩放和弯曲度。
type VelocityCategory int

const (
	// VelocitySlow 慢速 (< 30 km/s)
	VelocitySlow VelocityCategory = iota
	// VelocityMedium 中速 (30-55 km/s)
	VelocityMedium
	// VelocitySwift 快速 (> 55 km/s)
	VelocitySwift
)

// String 返回速度档位的字符串表示
func (v VelocityCategory) String() string {
	switch v {
	case VelocitySlow:
		return "slow"
	case VelocitySwift:
		return "swift"
	default:
		return "medium"
	}
}

// ParseVelocityCategory converts a catalog string into a VelocityCategory.
// Unknown values fall back to VelocityMedium.
func ParseVelocityCategory(s string) VelocityCategory {
	switch s {
	case "slow":
		return VelocitySlow
	case "swift":
		return VelocitySwift
	default:
		return VelocityMedium
	}
}

// CategorizeVelocity derives the category from a raw velocity in km/s.
// Boundaries follow the usual meteor-shower convention: everything below
// 30 km/s reads as slow, everything above 55 km/s as swift.
func CategorizeVelocity(kmPerSec float64) VelocityCategory {
	switch {
	case kmPerSec < 30:
		return VelocitySlow
	case kmPerSec > 55:
		return VelocitySwift
	default:
		return VelocityMedium
	}
}

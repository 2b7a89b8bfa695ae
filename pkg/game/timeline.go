package game

import (
	"fmt"
	"math"

	"github.com/decker502/nightsky/pkg/config"
)

// DaysPerYear is the fixed timeline length (non-leap year).
const DaysPerYear = 365

// Timeline holds one SceneConfig per day of the year and answers
// queries at fractional day indices by blending the two surrounding
// days. Index 364.5 blends December 30 into December 31; the timeline
// wraps, so 364.5 also previews the wrap back to day 0 when stepped
// past the end.
type Timeline struct {
	days []config.SceneConfig
}

// NewTimeline wraps a precomputed year of scene configs.
func NewTimeline(days []config.SceneConfig) (*Timeline, error) {
	if len(days) != DaysPerYear {
		return nil, fmt.Errorf("timeline: expected %d days, got %d", DaysPerYear, len(days))
	}
	return &Timeline{days: days}, nil
}

// NewTimelineFromCatalog builds the year directly from a shower catalog.
func NewTimelineFromCatalog(cat *config.ShowerCatalog) (*Timeline, error) {
	return NewTimeline(cat.BuildYear())
}

// Len returns the number of days in the timeline.
func (t *Timeline) Len() int { return len(t.days) }

// Day returns the raw config of a single day, wrapping the index into
// the year.
func (t *Timeline) Day(index int) config.SceneConfig {
	return t.days[wrapDay(index)]
}

// ConfigAt blends the configs around a fractional day index. Integer
// indices return that day's config exactly; wrapping across the year
// boundary blends day 364 into day 0.
func (t *Timeline) ConfigAt(index float64) config.SceneConfig {
	a, b, frac := t.bounds(index)
	if frac == 0 {
		return a
	}
	return config.Blend(a, b, frac)
}

// bounds resolves a fractional index into its surrounding day configs
// and the blend factor between them.
func (t *Timeline) bounds(index float64) (a, b config.SceneConfig, frac float64) {
	if math.IsNaN(index) || math.IsInf(index, 0) {
		index = 0
	}
	days := float64(len(t.days))
	index = math.Mod(index, days)
	if index < 0 {
		index += days
	}
	lo := int(math.Floor(index))
	frac = index - float64(lo)
	return t.days[lo], t.days[wrapDay(lo+1)], frac
}

func wrapDay(i int) int {
	i %= DaysPerYear
	if i < 0 {
		i += DaysPerYear
	}
	return i
}

package config

import (
	"os"
	"testing"
)

// TestParseRenderTuning_PartialYAML 缺失的段落保持默认值
func TestParseRenderTuning_PartialYAML(t *testing.T) {
	yaml := `
spawn:
  base: 0.2
  scale: 2.0
  exponent: 0.5
`
	tuning, err := ParseRenderTuning([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseRenderTuning failed: %v", err)
	}
	if tuning.Spawn.Base != 0.2 || tuning.Spawn.Scale != 2.0 || tuning.Spawn.Exponent != 0.5 {
		t.Errorf("spawn section not applied: %+v", tuning.Spawn)
	}

	def := DefaultRenderTuning()
	if tuning.Speed != def.Speed {
		t.Errorf("speed section should keep defaults: %+v", tuning.Speed)
	}
	if tuning.Moon != def.Moon {
		t.Errorf("moon section should keep defaults: %+v", tuning.Moon)
	}
}

// TestParseRenderTuning_InvalidYAML 非法 YAML 返回错误和默认值
func TestParseRenderTuning_InvalidYAML(t *testing.T) {
	tuning, err := ParseRenderTuning([]byte("{{{"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if tuning != DefaultRenderTuning() {
		t.Errorf("invalid YAML should return defaults")
	}
}

// TestRenderTuning_Sanitize 非法数值被静默拉回默认值
func TestRenderTuning_Sanitize(t *testing.T) {
	yaml := `
parallax:
  maxShiftPx: 24
  smoothing: 3.0
moon:
  dimFactor: 1.8
  boostMax: 0.2
  floorAlpha: 2.0
sizes:
  medium: 0.8
  large: 0.7
`
	tuning, err := ParseRenderTuning([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseRenderTuning failed: %v", err)
	}
	def := DefaultRenderTuning()
	if tuning.Parallax.Smoothing != def.Parallax.Smoothing {
		t.Errorf("smoothing 3.0 should reset to default, got %v", tuning.Parallax.Smoothing)
	}
	if tuning.Moon.DimFactor != def.Moon.DimFactor {
		t.Errorf("dimFactor 1.8 should reset to default, got %v", tuning.Moon.DimFactor)
	}
	if tuning.Moon.BoostMax != def.Moon.BoostMax {
		t.Errorf("boostMax 0.2 should reset to default, got %v", tuning.Moon.BoostMax)
	}
	if tuning.Moon.FloorAlpha != def.Moon.FloorAlpha {
		t.Errorf("floorAlpha 2.0 should reset to default, got %v", tuning.Moon.FloorAlpha)
	}
	if tuning.Sizes != def.Sizes {
		// medium+large > 1 使整段回落
		t.Errorf("size probabilities summing past 1 should reset, got %+v", tuning.Sizes)
	}
}

// TestShippedTuningFile 随包发布的调参文件必须可解析
func TestShippedTuningFile(t *testing.T) {
	data, err := os.ReadFile("../../assets/config/render_tuning.yaml")
	if err != nil {
		t.Skipf("tuning file not reachable from test dir: %v", err)
	}
	if _, err := ParseRenderTuning(data); err != nil {
		t.Fatalf("shipped render_tuning.yaml invalid: %v", err)
	}
}

package flock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFromMapOverrides(t *testing.T) {
	c := FromMap(map[string]string{
		"w":                 "640",
		"height":            "360",
		"count":             "80",
		"alignment_weight":  "0.2",
		"separation_radius": "90",
		"falloff":           "unit",
		"spatial_index":     "true",
		"dark_unit":         "steelblue",
		"light_background":  "#fff",
		"bogus":             "1",
		"cohesion_weight":   "not-a-number",
	})
	if c.Width != 640 || c.Height != 360 || c.Count != 80 {
		t.Fatalf("unexpected dimensions %dx%d count %d", c.Width, c.Height, c.Count)
	}
	if c.AlignmentWeight != 0.2 || c.CohesionWeight != DefaultConfig().CohesionWeight {
		t.Fatalf("unexpected weights %v / %v", c.AlignmentWeight, c.CohesionWeight)
	}
	if c.SeparationRadius != c.PerceptionRadius {
		t.Fatalf("separation radius should be clamped to perception radius, got %v", c.SeparationRadius)
	}
	if c.Falloff != FalloffUnit || !c.SpatialIndex {
		t.Fatalf("unexpected falloff %q / spatial index %v", c.Falloff, c.SpatialIndex)
	}
	if c.Palette.DarkUnit != (Color{R: 70, G: 130, B: 180, A: 255}) {
		t.Fatalf("named color not resolved: %v", c.Palette.DarkUnit)
	}
	if c.Palette.LightBackground != (Color{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("short hex color not resolved: %v", c.Palette.LightBackground)
	}
}

func TestFromMapRejectsBadModes(t *testing.T) {
	c := FromMap(map[string]string{"update_mode": "sideways"})
	if c.UpdateMode != UpdateSimultaneous {
		t.Fatalf("invalid update mode should fall back to default, got %q", c.UpdateMode)
	}
}

func TestSetUnknownKey(t *testing.T) {
	c := DefaultConfig()
	if err := c.Set("gravity", "1"); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	if err := c.Set("count", "many"); err == nil {
		t.Fatal("expected parse error for count")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flock.toml")
	body := `count = 64
perception_radius = 80.0
alignment_weight = 0.08
update_mode = "sequential"

[palette]
dark_unit = "#335577"
light_unit = "silver"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.Count != 64 || c.PerceptionRadius != 80 || c.AlignmentWeight != 0.08 {
		t.Fatalf("file values not applied: %+v", c)
	}
	if c.UpdateMode != UpdateSequential {
		t.Fatalf("update mode = %q", c.UpdateMode)
	}
	if c.SeparationRadius != DefaultConfig().SeparationRadius {
		t.Fatalf("unset keys should keep defaults, got separation radius %v", c.SeparationRadius)
	}
	if c.Palette.DarkUnit != (Color{R: 0x33, G: 0x55, B: 0x77, A: 0xff}) || c.Palette.LightUnit != (Color{R: 192, G: 192, B: 192, A: 255}) {
		t.Fatalf("palette not decoded: %+v", c.Palette)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	unknown := filepath.Join(dir, "unknown.toml")
	if err := os.WriteFile(unknown, []byte("count = 3\nturbo = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(unknown); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}

	badColor := filepath.Join(dir, "color.toml")
	if err := os.WriteFile(badColor, []byte("[palette]\ndark_unit = \"#12\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(badColor); err == nil {
		t.Fatal("expected malformed color to fail")
	}

	badMode := filepath.Join(dir, "mode.toml")
	if err := os.WriteFile(badMode, []byte("falloff = \"cubic\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(badMode); err == nil {
		t.Fatal("expected invalid falloff to fail")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatal("expected missing file to fail")
	}
}

func TestColorText(t *testing.T) {
	c := Color{R: 0x02, G: 0x06, B: 0x17, A: 0xff}
	if c.String() != "#020617" {
		t.Fatalf("String() = %q", c.String())
	}
	var back Color
	if err := back.UnmarshalText([]byte(c.String())); err != nil || back != c {
		t.Fatalf("UnmarshalText(%q) = %v, %v", c.String(), back, err)
	}
	half := Color{R: 1, G: 2, B: 3, A: 0x80}
	if half.String() != "#01020380" {
		t.Fatalf("translucent String() = %q", half.String())
	}
	if _, err := ParseColor("not-a-color"); err == nil {
		t.Fatal("expected unknown name to fail")
	}
}

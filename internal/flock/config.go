package flock

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Falloff selects how a repulsion contribution scales with distance.
type Falloff string

const (
	// FalloffInverse scales the unit push vector by 1/d so closer sources push harder.
	FalloffInverse Falloff = "inverse"
	// FalloffUnit uses the plain unit push vector regardless of distance.
	FalloffUnit Falloff = "unit"
)

// UpdateMode selects how a frame reads neighbor state.
type UpdateMode string

const (
	// UpdateSimultaneous computes every unit from the frame-start snapshot.
	UpdateSimultaneous UpdateMode = "simultaneous"
	// UpdateSequential updates units in place, so later units see moved neighbors.
	UpdateSequential UpdateMode = "sequential"
)

// ErrUnknownKey is returned when a config key is not recognized.
var ErrUnknownKey = errors.New("unknown config key")

// Palette holds the per-theme colors.
type Palette struct {
	DarkUnit        Color `toml:"dark_unit"`
	LightUnit       Color `toml:"light_unit"`
	DarkBackground  Color `toml:"dark_background"`
	LightBackground Color `toml:"light_background"`
}

// Config controls the flock population, rules and viewport.
type Config struct {
	Width  int   `toml:"width"`
	Height int   `toml:"height"`
	Seed   int64 `toml:"seed"`
	Count  int   `toml:"count"`

	PerceptionRadius float64 `toml:"perception_radius"`
	SeparationRadius float64 `toml:"separation_radius"`
	AvoidRadius      float64 `toml:"avoid_radius"`
	AvoidGain        float64 `toml:"avoid_gain"`

	AlignmentWeight  float64 `toml:"alignment_weight"`
	CohesionWeight   float64 `toml:"cohesion_weight"`
	SeparationWeight float64 `toml:"separation_weight"`

	SpeedMin        float64 `toml:"speed_min"`
	SpeedMax        float64 `toml:"speed_max"`
	SizeMin         float64 `toml:"size_min"`
	SizeMax         float64 `toml:"size_max"`
	InitialVelocity float64 `toml:"initial_velocity"`

	Falloff      Falloff    `toml:"falloff"`
	UpdateMode   UpdateMode `toml:"update_mode"`
	SpatialIndex bool       `toml:"spatial_index"`

	Palette Palette `toml:"palette"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  1280,
		Height: 800,
		Seed:   42,
		Count:  35,

		PerceptionRadius: 50,
		SeparationRadius: 25,
		AvoidRadius:      200,
		AvoidGain:        0.5,

		AlignmentWeight:  0.05,
		CohesionWeight:   0.01,
		SeparationWeight: 0.1,

		SpeedMin:        1,
		SpeedMax:        2,
		SizeMin:         2,
		SizeMax:         4,
		InitialVelocity: 2,

		Falloff:    FalloffInverse,
		UpdateMode: UpdateSimultaneous,

		Palette: Palette{
			DarkUnit:        Color{R: 0x40, G: 0x40, B: 0x40, A: 0xff},
			LightUnit:       Color{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff},
			DarkBackground:  Color{R: 0x02, G: 0x06, B: 0x17, A: 0xff},
			LightBackground: Color{R: 0xf3, G: 0xf4, B: 0xf6, A: 0xff},
		},
	}
}

// Weights returns the rule weights.
func (c Config) Weights() Weights {
	return Weights{Alignment: c.AlignmentWeight, Cohesion: c.CohesionWeight, Separation: c.SeparationWeight}
}

// Normalize repairs inconsistent numeric values in place.
func (c *Config) Normalize() {
	if c.Width <= 0 {
		c.Width = 1
	}
	if c.Height <= 0 {
		c.Height = 1
	}
	if c.Count < 1 {
		c.Count = 1
	}
	if c.PerceptionRadius < 0 {
		c.PerceptionRadius = 0
	}
	if c.SeparationRadius < 0 {
		c.SeparationRadius = 0
	}
	if c.SeparationRadius > c.PerceptionRadius {
		c.SeparationRadius = c.PerceptionRadius
	}
	if c.AvoidRadius < 0 {
		c.AvoidRadius = 0
	}
	if c.SpeedMin <= 0 {
		c.SpeedMin = 0.1
	}
	if c.SpeedMax < c.SpeedMin {
		c.SpeedMax = c.SpeedMin
	}
	if c.SizeMin <= 0 {
		c.SizeMin = 0.5
	}
	if c.SizeMax < c.SizeMin {
		c.SizeMax = c.SizeMin
	}
	if c.InitialVelocity < 0 {
		c.InitialVelocity = -c.InitialVelocity
	}
}

// Validate reports values Normalize cannot repair.
func (c Config) Validate() error {
	switch c.Falloff {
	case FalloffInverse, FalloffUnit:
	default:
		return fmt.Errorf("falloff %q: want %q or %q", c.Falloff, FalloffInverse, FalloffUnit)
	}
	switch c.UpdateMode {
	case UpdateSimultaneous, UpdateSequential:
	default:
		return fmt.Errorf("update_mode %q: want %q or %q", c.UpdateMode, UpdateSimultaneous, UpdateSequential)
	}
	return nil
}

// LoadFile decodes a TOML file over the defaults.
func LoadFile(path string) (Config, error) {
	c := DefaultConfig()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, fmt.Errorf("load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return c, fmt.Errorf("load %s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("load %s: %w", path, err)
	}
	c.Normalize()
	return c, nil
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Malformed or unknown entries are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	for k, v := range cfg {
		_ = c.Set(k, v)
	}
	if c.Validate() != nil {
		d := DefaultConfig()
		c.Falloff, c.UpdateMode = d.Falloff, d.UpdateMode
	}
	c.Normalize()
	return c
}

// Set assigns a single value by its config key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	if p := c.intField(key); p != nil {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*p = n
		return nil
	}
	if p := c.floatField(key); p != nil {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*p = f
		return nil
	}
	if p := c.colorField(key); p != nil {
		col, err := ParseColor(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*p = col
		return nil
	}
	switch key {
	case "seed":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Seed = n
	case "falloff":
		c.Falloff = Falloff(value)
	case "update_mode":
		c.UpdateMode = UpdateMode(value)
	case "spatial_index":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.SpatialIndex = b
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

func (c *Config) intField(key string) *int {
	switch key {
	case "w", "width":
		return &c.Width
	case "h", "height":
		return &c.Height
	case "count":
		return &c.Count
	}
	return nil
}

func (c *Config) floatField(key string) *float64 {
	switch key {
	case "perception_radius":
		return &c.PerceptionRadius
	case "separation_radius":
		return &c.SeparationRadius
	case "avoid_radius":
		return &c.AvoidRadius
	case "avoid_gain":
		return &c.AvoidGain
	case "alignment_weight":
		return &c.AlignmentWeight
	case "cohesion_weight":
		return &c.CohesionWeight
	case "separation_weight":
		return &c.SeparationWeight
	case "speed_min":
		return &c.SpeedMin
	case "speed_max":
		return &c.SpeedMax
	case "size_min":
		return &c.SizeMin
	case "size_max":
		return &c.SizeMax
	case "initial_velocity":
		return &c.InitialVelocity
	}
	return nil
}

func (c *Config) colorField(key string) *Color {
	switch key {
	case "dark_unit":
		return &c.Palette.DarkUnit
	case "light_unit":
		return &c.Palette.LightUnit
	case "dark_background":
		return &c.Palette.DarkBackground
	case "light_background":
		return &c.Palette.LightBackground
	}
	return nil
}

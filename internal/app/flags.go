package app

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"flockbg/internal/flock"
	"flockbg/internal/prefs"
)

// Config represents the command-line parameters for the application.
type Config struct {
	ConfigPath string
	PrefsPath  string
	Theme      string
	TPS        int
	Seed       int64
	HUD        bool
	Overrides  KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{TPS: 60}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "TOML file with flock settings")
	fs.StringVar(&c.PrefsPath, "prefs", c.PrefsPath, "preferences file (default under the user config dir)")
	fs.StringVar(&c.Theme, "theme", c.Theme, "force the theme: dark or light")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the population (0 uses the config seed)")
	fs.BoolVar(&c.HUD, "hud", c.HUD, "show the tuning panel at start")
	fs.Var(&c.Overrides, "set", "flock override in key=value form (repeatable)")
}

// FlockConfig builds the flock configuration: defaults, then the config file,
// then each -set override in order.
func (c *Config) FlockConfig() (flock.Config, error) {
	cfg := flock.DefaultConfig()
	if c.ConfigPath != "" {
		loaded, err := flock.LoadFile(c.ConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := c.Overrides.Apply(&cfg); err != nil {
		return cfg, err
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	cfg.Normalize()
	return cfg, nil
}

// Preferences loads the saved UI preferences and applies the -theme and -hud
// flags on top. The returned path is where changes should be saved; it is
// empty when no location is available. A non-nil error is informational:
// the returned Prefs are always usable.
func (c *Config) Preferences() (prefs.Prefs, string, error) {
	p := prefs.Default()
	path := c.PrefsPath
	var err error
	if path == "" {
		path, err = prefs.DefaultPath()
	}
	if path != "" {
		p, err = prefs.Load(path)
	}
	switch c.Theme {
	case "":
	case prefs.ThemeDark, prefs.ThemeLight:
		p.Theme = c.Theme
	default:
		err = errors.Join(err, fmt.Errorf("unknown theme %q", c.Theme))
	}
	if c.HUD {
		p.ShowHUD = true
	}
	return p, path, err
}

// KVList collects repeated key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set implements flag.Value.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("override %q: want key=value", value)
	}
	*l = append(*l, value)
	return nil
}

// Apply assigns every override to cfg.
func (l KVList) Apply(cfg *flock.Config) error {
	for _, kv := range l {
		key, value, _ := strings.Cut(kv, "=")
		if err := cfg.Set(strings.TrimSpace(key), value); err != nil {
			return fmt.Errorf("-set %s: %w", kv, err)
		}
	}
	return nil
}

// Map returns the overrides as the string map accepted by registry factories.
func (l KVList) Map() map[string]string {
	m := make(map[string]string, len(l))
	for _, kv := range l {
		key, value, _ := strings.Cut(kv, "=")
		m[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return m
}

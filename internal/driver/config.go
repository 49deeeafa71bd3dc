package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v2"

	"github.com/kolkov/racefixtures/internal/fixture/registry"
)

// ModulePath is the path this repository's go.mod declares; root discovery
// confirms it before trusting a directory.
const ModulePath = "github.com/kolkov/racefixtures"

// ConfigFileName is the optional per-checkout configuration file at the
// module root.
const ConfigFileName = "racefixtures.yml"

// Duration is a yaml-parseable duration in Go syntax ("100µs", "1ms").
type Duration time.Duration

// UnmarshalYAML parses the Go duration syntax from a yaml scalar.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("driver: parsing duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// ProfileConfig is the yaml form of the timing profile. Zero fields fall
// back to the catalogue defaults, so a config may widen just one window.
type ProfileConfig struct {
	RaceWindow    Duration `yaml:"raceWindow"`
	CheckToActGap Duration `yaml:"checkToActGap"`
	CommitGap     Duration `yaml:"commitGap"`
	DeadlockGap   Duration `yaml:"deadlockGap"`
	SpinRounds    int      `yaml:"spinRounds"`
	WorkerTick    Duration `yaml:"workerTick"`
}

// ScenarioConfig overrides one catalogue scenario's contention shape.
type ScenarioConfig struct {
	Name       string `yaml:"name"`
	Workers    int    `yaml:"workers"`
	Iterations int    `yaml:"iterations"`
}

// Config is the parsed racefixtures.yml.
type Config struct {
	Profile   ProfileConfig    `yaml:"profile"`
	Scenarios []ScenarioConfig `yaml:"scenarios"`
}

// RegistryProfile merges the config over the default timing profile.
func (c Config) RegistryProfile() registry.Profile {
	p := registry.DefaultProfile()
	if c.Profile.RaceWindow != 0 {
		p.RaceWindow = time.Duration(c.Profile.RaceWindow)
	}
	if c.Profile.CheckToActGap != 0 {
		p.CheckToActGap = time.Duration(c.Profile.CheckToActGap)
	}
	if c.Profile.CommitGap != 0 {
		p.CommitGap = time.Duration(c.Profile.CommitGap)
	}
	if c.Profile.DeadlockGap != 0 {
		p.DeadlockGap = time.Duration(c.Profile.DeadlockGap)
	}
	if c.Profile.SpinRounds != 0 {
		p.SpinRounds = c.Profile.SpinRounds
	}
	if c.Profile.WorkerTick != 0 {
		p.WorkerTick = time.Duration(c.Profile.WorkerTick)
	}
	return p
}

// Apply returns sc with any matching scenario override folded in.
func (c Config) Apply(sc Scenario) Scenario {
	for _, o := range c.Scenarios {
		if o.Name != sc.Name {
			continue
		}
		if o.Workers > 0 {
			sc.Workers = o.Workers
		}
		if o.Iterations > 0 {
			sc.Iterations = o.Iterations
		}
	}
	return sc
}

// FindRoot walks up from dir looking for the go.mod that declares
// ModulePath. Directories carrying some other module's go.mod are walked
// through, not trusted.
func FindRoot(dir string) (string, error) {
	start, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for dir := start; ; {
		gomod := filepath.Join(dir, "go.mod")
		if data, err := os.ReadFile(gomod); err == nil {
			mf, err := modfile.Parse(gomod, data, nil)
			if err == nil && mf.Module != nil && mf.Module.Mod.Path == ModulePath {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("driver: no go.mod declaring %s at or above %s", ModulePath, start)
		}
		dir = parent
	}
}

// LoadConfig reads and parses one config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("driver: reading config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("driver: parsing %s: %w", filepath.Base(path), err)
	}
	return c, nil
}

// Load locates the module root from dir and loads its config file. No
// discoverable root and no config file both mean the defaults; a file that
// exists but does not parse is an error.
func Load(dir string) (Config, error) {
	root, err := FindRoot(dir)
	if err != nil {
		return Config{}, nil
	}
	c, err := LoadConfig(filepath.Join(root, ConfigFileName))
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	return c, err
}

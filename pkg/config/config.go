package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Simulator providers.
const (
	ProviderMSFS = "msfs"
	ProviderXP12 = "xp12"
	ProviderMock = "mock"
)

// Config holds the application configuration.
type Config struct {
	Sim     SimConfig     `yaml:"sim"`
	Navdata NavdataConfig `yaml:"navdata"`
	Logbook LogbookConfig `yaml:"logbook"`
	Log     LogSettings   `yaml:"log"`
}

// SimConfig holds settings for the simulator connection.
type SimConfig struct {
	Provider string       `yaml:"provider"` // "msfs", "xp12", "mock"
	XPlane   XPlaneConfig `yaml:"xplane"`
	MSFS     MSFSConfig   `yaml:"msfs"`
	Mock     MockConfig   `yaml:"mock"`
}

// XPlaneConfig holds settings for the X-Plane plugin stream.
type XPlaneConfig struct {
	Address     string   `yaml:"address"` // empty uses the plugin default
	ReadTimeout Duration `yaml:"read_timeout"`
}

// MSFSConfig holds settings for the SimConnect session.
type MSFSConfig struct {
	PollInterval Duration `yaml:"poll_interval"`
}

// MockConfig holds the scripted flight replayed by the mock simulator.
type MockConfig struct {
	FromLat float64 `yaml:"from_lat"`
	FromLon float64 `yaml:"from_lon"`
	ToLat   float64 `yaml:"to_lat"`
	ToLon   float64 `yaml:"to_lon"`
}

// NavdataConfig holds the navigation database paths, one per simulator.
type NavdataConfig struct {
	MSFSPath string `yaml:"msfs_path"`
	XP12Path string `yaml:"xp12_path"`
}

// LogbookConfig holds logbook output settings.
type LogbookConfig struct {
	Path string `yaml:"path"`
}

// LogSettings holds settings for the logger.
type LogSettings struct {
	Path       string `yaml:"path"`
	Level      string `yaml:"level"`
	EventsPath string `yaml:"events_path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Sim: SimConfig{
			Provider: ProviderMSFS,
			XPlane: XPlaneConfig{
				Address:     "",
				ReadTimeout: Duration(1 * time.Second),
			},
			MSFS: MSFSConfig{
				PollInterval: Duration(1 * time.Second),
			},
			Mock: MockConfig{
				// Paphos to Larnaca
				FromLat: 34.717778,
				FromLon: 32.485556,
				ToLat:   34.875,
				ToLon:   33.624722,
			},
		},
		Navdata: NavdataConfig{
			MSFSPath: "./navdata/msfs.sqlite",
			XP12Path: "./navdata/xp12.sqlite",
		},
		Logbook: LogbookConfig{
			Path: "./logbook.csv",
		},
		Log: LogSettings{
			Path:       "./logs/flightlog.log",
			Level:      "INFO",
			EventsPath: "./logs/events.log",
		},
	}
}

// NavdataPath returns the navigation database for the configured provider.
// The mock simulator replays MSFS-flavoured telemetry and shares its
// database.
func (c *Config) NavdataPath() string {
	if c.Sim.Provider == ProviderXP12 {
		return c.Navdata.XP12Path
	}
	return c.Navdata.MSFSPath
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	switch c.Sim.Provider {
	case ProviderMSFS, ProviderXP12, ProviderMock:
	default:
		return fmt.Errorf("invalid sim provider '%s': must be one of %s, %s, %s",
			c.Sim.Provider, ProviderMSFS, ProviderXP12, ProviderMock)
	}
	if c.Logbook.Path == "" {
		return fmt.Errorf("logbook path must not be empty")
	}
	return nil
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values.
// If the file exists, it merges defaults with existing values but does NOT save back to disk (to preserve user formatting and comments).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to save config file: %w", err)
		}
	}

	// Load from Env if empty (as a fallback, but do NOT save back to disk)
	if cfg.Sim.XPlane.Address == "" {
		if addr := os.Getenv("FLIGHTLOG_XPLANE_ADDRESS"); addr != "" {
			cfg.Sim.XPlane.Address = addr
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Flightlog Configuration
# -----------------------
# Supported Duration units: ns, us (or µs), ms, s, m, h, d (day), w (week)

`)
	data = append(header, data...)

	// Inject comments for Enum fields
	reProvider := regexp.MustCompile(`(?m)^(\s+)provider:`)
	data = reProvider.ReplaceAll(data, []byte("${1}# Options: msfs, xp12, mock\n${1}provider:"))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // File exists, do nothing
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}

// Package config loads the planetprint settings file, applies project
// overlays and PLANETPRINT_* environment overrides, and exposes a
// process-wide configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/rshade/planetprint/internal/greenops"
	"github.com/rshade/planetprint/internal/insights"
	"github.com/rshade/planetprint/internal/logging"
)

// Environment variables read by ApplyEnvOverrides.
const (
	EnvHome          = "PLANETPRINT_HOME"
	EnvProjectDir    = "PLANETPRINT_PROJECT_DIR"
	EnvOutputFormat  = "PLANETPRINT_OUTPUT_FORMAT"
	EnvRegion        = "PLANETPRINT_REGION"
	EnvServerAddr    = "PLANETPRINT_SERVER_ADDR"
	EnvServerCORS    = "PLANETPRINT_SERVER_CORS"
	EnvSessionsMax   = "PLANETPRINT_SESSIONS_MAX"
	EnvSessionsTTL   = "PLANETPRINT_SESSIONS_TTL"
	EnvGridIntensity = "PLANETPRINT_GRID_INTENSITY"
	EnvDemoEnabled   = "PLANETPRINT_DEMO"
)

const (
	configFileName = "config.yaml"
	dirName        = ".planetprint"
)

// Defaults.
const (
	DefaultFormat    = "table"
	DefaultPrecision = 1
	DefaultAddr      = ":8080"

	DefaultSessionsMax = 10000
	DefaultSessionsTTL = 30 * time.Minute

	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	DefaultDemoSeed = 42

	maxPrecision = 6
)

// ValidFormats lists the accepted output formats.
func ValidFormats() []string {
	return []string{"table", "json", "yaml"}
}

// Config is the full planetprint configuration.
type Config struct {
	Output   OutputConfig   `json:"output" yaml:"output"`
	Logging  LoggingConfig  `json:"logging" yaml:"logging"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Sessions SessionsConfig `json:"sessions" yaml:"sessions"`
	GreenOps GreenOpsConfig `json:"greenops" yaml:"greenops"`
	Demo     DemoConfig     `json:"demo" yaml:"demo"`

	configPath string
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	DefaultFormat string `json:"default_format" yaml:"default_format"`
	Precision     int    `json:"precision" yaml:"precision"`
	Region        string `json:"region" yaml:"region"`
}

// LoggingConfig controls the application logger.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr            string        `json:"addr" yaml:"addr"`
	CORS            bool          `json:"cors" yaml:"cors"`
	AllowedOrigins  []string      `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// SessionsConfig bounds the in-memory questionnaire sessions.
type SessionsConfig struct {
	Max int           `json:"max" yaml:"max"`
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// GreenOpsConfig tunes the carbon equivalencies.
type GreenOpsConfig struct {
	GridIntensityGPerKWh float64 `json:"grid_intensity_g_per_kwh" yaml:"grid_intensity_g_per_kwh"`
}

// Options converts the section into equivalency options.
func (g GreenOpsConfig) Options() greenops.Options {
	return greenops.Options{GridIntensity: g.GridIntensityGPerKWh}
}

// DemoConfig enables the demonstration endpoints and commands.
type DemoConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Seed    uint64 `json:"seed" yaml:"seed"`
}

// Default returns the built-in configuration without reading any file or
// environment variable.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: DefaultFormat,
			Precision:     DefaultPrecision,
			Region:        string(insights.DefaultRegion),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Sessions: SessionsConfig{
			Max: DefaultSessionsMax,
			TTL: DefaultSessionsTTL,
		},
		GreenOps: GreenOpsConfig{
			GridIntensityGPerKWh: greenops.DefaultGridIntensity,
		},
		Demo: DemoConfig{
			Seed: DefaultDemoSeed,
		},
	}
}

// New returns the defaults overlaid with the user config file, when one
// exists, and the environment. A malformed file is logged and ignored.
func New() *Config {
	cfg := Default()

	path, err := DefaultConfigPath()
	if err != nil {
		log.Warn().Str("component", "config").Err(err).Msg("cannot resolve config directory, using defaults")
		cfg.ApplyEnvOverrides()
		return cfg
	}
	cfg.configPath = path

	if err = cfg.loadFile(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().
			Str("component", "config").
			Str("path", path).
			Err(err).
			Msg("failed to load config file, using defaults")
		cfg = Default()
		cfg.configPath = path
	}

	cfg.ApplyEnvOverrides()
	return cfg
}

// Load reads the config file at path on top of the defaults, then applies
// the environment. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.configPath = path
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// ConfigPath returns the file Save writes to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file Save writes to.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the configuration as YAML, creating the parent directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// ApplyEnvOverrides replaces settings with the PLANETPRINT_* variables
// that are set. Values that do not parse are logged and skipped.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(logging.EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(logging.EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv(EnvRegion); v != "" {
		c.Output.Region = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
	envBool(EnvServerCORS, &c.Server.CORS)
	envBool(EnvDemoEnabled, &c.Demo.Enabled)

	if v := os.Getenv(EnvSessionsMax); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Sessions.Max = n
		} else {
			warnEnv(EnvSessionsMax, v, err)
		}
	}
	if v := os.Getenv(EnvSessionsTTL); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Sessions.TTL = d
		} else {
			warnEnv(EnvSessionsTTL, v, err)
		}
	}
	if v := os.Getenv(EnvGridIntensity); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.GreenOps.GridIntensityGPerKWh = f
		} else {
			warnEnv(EnvGridIntensity, v, err)
		}
	}
}

func envBool(key string, target *bool) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		warnEnv(key, v, err)
		return
	}
	*target = b
}

func warnEnv(key, value string, err error) {
	log.Warn().
		Str("component", "config").
		Str("env", key).
		Str("value", value).
		Err(err).
		Msg("ignoring invalid environment override")
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(ValidFormats(), c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("output.default_format: %q is not one of %s",
			c.Output.DefaultFormat, strings.Join(ValidFormats(), ", ")))
	}
	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		errs = append(errs, fmt.Errorf("output.precision: must be between 0 and %d, got %d",
			maxPrecision, c.Output.Precision))
	}
	if _, err := insights.ParseRegion(c.Output.Region); err != nil {
		errs = append(errs, fmt.Errorf("output.region: %w", err))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case logging.FormatJSON, logging.FormatConsole:
	default:
		errs = append(errs, fmt.Errorf("logging.format: must be json or console, got %q", c.Logging.Format))
	}

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr: must not be empty"))
	}
	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"server.read_timeout", c.Server.ReadTimeout},
		{"server.write_timeout", c.Server.WriteTimeout},
		{"server.shutdown_timeout", c.Server.ShutdownTimeout},
		{"sessions.ttl", c.Sessions.TTL},
	} {
		if d.value <= 0 {
			errs = append(errs, fmt.Errorf("%s: must be positive, got %s", d.name, d.value))
		}
	}
	if c.Sessions.Max <= 0 {
		errs = append(errs, fmt.Errorf("sessions.max: must be positive, got %d", c.Sessions.Max))
	}
	if g := c.GreenOps.GridIntensityGPerKWh; g <= 0 {
		errs = append(errs, fmt.Errorf("greenops.grid_intensity_g_per_kwh: must be positive, got %v", g))
	}

	return errors.Join(errs...)
}

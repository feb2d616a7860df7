// Package config loads attendsheet settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/source"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "attendsheet.yaml"

// SourceConfig selects where the attendance sheet is read from.
type SourceConfig struct {
	Kind        string `yaml:"kind"` // excel, xls, csv, gsheets; inferred when empty
	Path        string `yaml:"path,omitempty"`
	Sheet       string `yaml:"sheet,omitempty"`
	Range       string `yaml:"range,omitempty"`
	SheetKey    string `yaml:"sheet_key,omitempty"`
	Credentials string `yaml:"credentials,omitempty"`
	Charset     string `yaml:"charset,omitempty"`
}

// CalendarConfig tunes date inference and pay.
type CalendarConfig struct {
	Year       int    `yaml:"year"` // 0 = current year at load
	DailyRate  string `yaml:"daily_rate"`
	NameColumn int    `yaml:"name_column"`
	RoleColumn int    `yaml:"role_column"`
	Timezone   string `yaml:"timezone"`
}

// SelectionConfig locates the per-user week selection store.
type SelectionConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Config is the full attendsheet configuration.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Calendar  CalendarConfig  `yaml:"calendar"`
	Selection SelectionConfig `yaml:"selection"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		// Sheet stays empty: local workbooks then use their first worksheet
		// and hosted spreadsheets fall back to source.DefaultWorksheet.
		Source: SourceConfig{
			Credentials: "service_account.json",
		},
		Calendar: CalendarConfig{
			DailyRate:  attendsheet.DefaultDailyRate.String(),
			NameColumn: 2,
			RoleColumn: 3,
			Timezone:   "Local",
		},
		Selection: SelectionConfig{
			Path: "attendsheet.db",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     "10s",
			ShutdownTimeout: "5s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GSHEET_KEY"); key != "" {
		c.Source.SheetKey = key
	}
	if name := os.Getenv("GWSHEET_NAME"); name != "" {
		c.Source.Sheet = name
	}
	if path := os.Getenv("ATTENDSHEET_CREDENTIALS"); path != "" {
		c.Source.Credentials = path
	}
	if path := os.Getenv("ATTENDSHEET_SOURCE"); path != "" {
		c.Source.Path = path
	}
	if rate := os.Getenv("ATTENDSHEET_DAILY_RATE"); rate != "" {
		c.Calendar.DailyRate = rate
	}
	if addr := os.Getenv("ATTENDSHEET_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if year := os.Getenv("ATTENDSHEET_YEAR"); year != "" {
		if y, err := strconv.Atoi(year); err == nil {
			c.Calendar.Year = y
		}
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch source.Kind(c.Source.Kind) {
	case source.KindAuto, source.KindExcel, source.KindXLS, source.KindCSV, source.KindGoogle:
	default:
		return fmt.Errorf("source.kind: unknown kind %q", c.Source.Kind)
	}
	if _, err := c.DailyRate(); err != nil {
		return err
	}
	if c.Calendar.Year < 0 {
		return fmt.Errorf("calendar.year: must not be negative, got %d", c.Calendar.Year)
	}
	if c.Calendar.NameColumn < 0 || c.Calendar.RoleColumn < 0 {
		return fmt.Errorf("calendar: name and role columns must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	return nil
}

// DailyRate parses calendar.daily_rate.
func (c *Config) DailyRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.Calendar.DailyRate)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("calendar.daily_rate: %w", err)
	}
	if !rate.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("calendar.daily_rate: must be positive, got %s", rate)
	}
	return rate, nil
}

// Location resolves calendar.timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Calendar.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("calendar.timezone: %w", err)
	}
	return loc, nil
}

// GetReadTimeout returns the server read timeout as a duration.
func (c *Config) GetReadTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ReadTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetShutdownTimeout returns the graceful shutdown budget as a duration.
func (c *Config) GetShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// SourceOptions converts the source section.
func (c *Config) SourceOptions() source.Options {
	return source.Options{
		Kind:        source.Kind(c.Source.Kind),
		Path:        c.Source.Path,
		Sheet:       c.Source.Sheet,
		Range:       c.Source.Range,
		SheetKey:    c.Source.SheetKey,
		Credentials: c.Source.Credentials,
		Charset:     c.Source.Charset,
	}
}

// TableOptions converts the calendar section. The config must be valid.
func (c *Config) TableOptions() (attendsheet.Options, error) {
	opts := attendsheet.DefaultOptions()
	rate, err := c.DailyRate()
	if err != nil {
		return opts, err
	}
	loc, err := c.Location()
	if err != nil {
		return opts, err
	}
	opts.Year = c.Calendar.Year
	opts.DailyRate = rate
	opts.NameCol = c.Calendar.NameColumn
	opts.RoleCol = c.Calendar.RoleColumn
	opts.Location = loc
	return opts, nil
}

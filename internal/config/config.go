// Package config loads handrank settings from an HCL file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the config file read when no path is given.
const DefaultFile = "handrank.hcl"

// Config is the complete handrank configuration.
type Config struct {
	LogLevel string          `hcl:"log_level,optional"`
	Build    *BuildSettings  `hcl:"build,block"`
	Index    *IndexSettings  `hcl:"index,block"`
	Server   *ServerSettings `hcl:"server,block"`
}

// BuildSettings controls table generation.
type BuildSettings struct {
	Workers *int   `hcl:"workers,optional"`
	Output  string `hcl:"output,optional"`
	Verify  *bool  `hcl:"verify,optional"`
}

// IndexSettings controls the perfect-hash lookup index.
type IndexSettings struct {
	LoadFactor float64 `hcl:"load_factor,optional"`
}

// ServerSettings controls the websocket scoring service.
type ServerSettings struct {
	Address      string `hcl:"address,optional"`
	Port         int    `hcl:"port,optional"`
	ReadTimeout  string `hcl:"read_timeout,optional"`
	WriteTimeout string `hcl:"write_timeout,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	verify := true
	workers := 1
	return &Config{
		LogLevel: "info",
		Build: &BuildSettings{
			Workers: &workers,
			Output:  "ranks.bin",
			Verify:  &verify,
		},
		Index: &IndexSettings{
			LoadFactor: 0.9,
		},
		Server: &ServerSettings{
			Address:      "localhost",
			Port:         8080,
			ReadTimeout:  "30s",
			WriteTimeout: "10s",
		},
	}
}

// Load reads filename, falling back to Default when it does not exist.
// Missing blocks and attributes take their default values.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}

	if c.Build == nil {
		c.Build = def.Build
	}
	if c.Build.Workers == nil {
		c.Build.Workers = def.Build.Workers
	}
	if c.Build.Output == "" {
		c.Build.Output = def.Build.Output
	}
	if c.Build.Verify == nil {
		c.Build.Verify = def.Build.Verify
	}

	if c.Index == nil {
		c.Index = def.Index
	}
	if c.Index.LoadFactor == 0 {
		c.Index.LoadFactor = def.Index.LoadFactor
	}

	if c.Server == nil {
		c.Server = def.Server
	}
	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = def.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = def.Server.WriteTimeout
	}
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.BuildWorkers() < 0 {
		return fmt.Errorf("build: workers must not be negative")
	}
	if c.Build.Output == "" {
		return fmt.Errorf("build: output must be set")
	}
	if c.Index.LoadFactor <= 0 || c.Index.LoadFactor > 1 {
		return fmt.Errorf("index: load_factor must be in (0, 1], got %v", c.Index.LoadFactor)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server: invalid port: %d", c.Server.Port)
	}
	if _, err := c.ReadTimeout(); err != nil {
		return fmt.Errorf("server: read_timeout: %w", err)
	}
	if _, err := c.WriteTimeout(); err != nil {
		return fmt.Errorf("server: write_timeout: %w", err)
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// BuildWorkers returns the builder worker count. Zero means one worker per CPU.
func (c *Config) BuildWorkers() int {
	if c.Build.Workers == nil {
		return 1
	}
	return *c.Build.Workers
}

// VerifyAfterBuild reports whether a freshly built table is re-verified.
func (c *Config) VerifyAfterBuild() bool {
	return c.Build.Verify == nil || *c.Build.Verify
}

// ServerAddress returns the listen address.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// ReadTimeout returns the websocket read deadline.
func (c *Config) ReadTimeout() (time.Duration, error) {
	return parsePositive(c.Server.ReadTimeout)
}

// WriteTimeout returns the websocket write deadline.
func (c *Config) WriteTimeout() (time.Duration, error) {
	return parsePositive(c.Server.WriteTimeout)
}

func parsePositive(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %s must be positive", s)
	}
	return d, nil
}

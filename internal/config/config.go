// Package config loads the pokerhands HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Report formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the complete configuration
type Config struct {
	Workers     int    `hcl:"workers,optional"`
	SkipInvalid bool   `hcl:"skip_invalid,optional"`
	LogLevel    string `hcl:"log_level,optional"`

	Input  *InputConfig  `hcl:"input,block"`
	Report *ReportConfig `hcl:"report,block"`
	Server *ServerConfig `hcl:"server,block"`
}

// InputConfig describes where rounds are read from
type InputConfig struct {
	Path string `hcl:"path,optional"`
}

// ReportConfig controls how a tally is written out
type ReportConfig struct {
	Format  string `hcl:"format,optional"`
	File    string `hcl:"file,optional"`
	NoColor bool   `hcl:"no_color,optional"`
}

// ServerConfig contains settings for the WebSocket evaluation service
type ServerConfig struct {
	Address            string `hcl:"address,optional"`
	Port               int    `hcl:"port,optional"`
	ReadTimeoutSeconds int    `hcl:"read_timeout_seconds,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Workers:  0,
		LogLevel: "info",
		Input: &InputConfig{
			Path: "-",
		},
		Report: &ReportConfig{
			Format: FormatText,
		},
		Server: &ServerConfig{
			Address:            "localhost",
			Port:               8080,
			ReadTimeoutSeconds: 60,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
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

	if c.Input == nil {
		c.Input = def.Input
	} else if c.Input.Path == "" {
		c.Input.Path = def.Input.Path
	}

	if c.Report == nil {
		c.Report = def.Report
	} else if c.Report.Format == "" {
		c.Report.Format = def.Report.Format
	}

	if c.Server == nil {
		c.Server = def.Server
	} else {
		if c.Server.Address == "" {
			c.Server.Address = def.Server.Address
		}
		if c.Server.Port == 0 {
			c.Server.Port = def.Server.Port
		}
		if c.Server.ReadTimeoutSeconds == 0 {
			c.Server.ReadTimeoutSeconds = def.Server.ReadTimeoutSeconds
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %d", c.Workers)
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	switch c.Report.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid report format %q (want %s or %s)", c.Report.Format, FormatText, FormatJSON)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeoutSeconds < 0 {
		return fmt.Errorf("read_timeout_seconds must not be negative: %d", c.Server.ReadTimeoutSeconds)
	}

	return nil
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Addr returns the server listen address
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Address, strconv.Itoa(s.Port))
}

// ReadTimeout returns the idle read timeout for a connection
func (s *ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

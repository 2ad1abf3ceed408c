// Package config provides a YAML configuration surface for logzero,
// mapping declarative files to logger setup options.
package config

import (
	"errors"
	"fmt"
	"log/syslog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/metachris/logzero"
)

// Rotation defines parameters for log file rotation.
type Rotation struct {
	MaxSize    string `yaml:"max_size,omitempty"` // e.g. "100KB", "10M"
	MaxBackups int    `yaml:"max_backups,omitempty" validate:"gte=0"`
	MaxAge     string `yaml:"max_age,omitempty"` // e.g. "7d", "12h"
	Compress   bool   `yaml:"compress,omitempty"`
}

// Syslog configures an optional syslog destination.
type Syslog struct {
	Enabled  bool   `yaml:"enabled"`
	Facility string `yaml:"facility,omitempty" validate:"omitempty,oneof=kern user mail daemon auth syslog local0 local1 local2 local3 local4 local5 local6 local7"`
}

// GELF configures an optional GELF network destination.
type GELF struct {
	Enabled     bool   `yaml:"enabled"`
	Host        string `yaml:"host,omitempty"`
	Port        int    `yaml:"port,omitempty" validate:"omitempty,gte=1,lte=65535"`
	Protocol    string `yaml:"protocol,omitempty" validate:"omitempty,oneof=udp tcp"`
	Compression string `yaml:"compression,omitempty" validate:"omitempty,oneof=none gzip zlib"`
}

// Config represents a logger configuration.
type Config struct {
	Name            string   `yaml:"name"`
	Level           string   `yaml:"level,omitempty"`
	LogFile         string   `yaml:"logfile,omitempty"`
	FileLevel       string   `yaml:"file_level,omitempty"`
	Stream          string   `yaml:"stream,omitempty" validate:"omitempty,oneof=stderr stdout none"`
	JSON            bool     `yaml:"json,omitempty"`
	JSONEnsureASCII bool     `yaml:"json_ensure_ascii,omitempty"`
	Rotation        Rotation `yaml:"rotation,omitempty"`
	Syslog          Syslog   `yaml:"syslog,omitempty"`
	GELF            GELF     `yaml:"gelf,omitempty"`
}

var validate = validator.New()

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// validateConfig performs semantic validation beyond struct tags.
func validateConfig(cfg *Config) error {
	if cfg.Level != "" {
		if _, err := logzero.ParseLevel(cfg.Level); err != nil {
			return fmt.Errorf("invalid level: %w", err)
		}
	}
	if cfg.FileLevel != "" {
		if cfg.LogFile == "" {
			return errors.New("file_level requires logfile")
		}
		if _, err := logzero.ParseLevel(cfg.FileLevel); err != nil {
			return fmt.Errorf("invalid file_level: %w", err)
		}
	}
	if cfg.Rotation.MaxSize != "" {
		if _, err := ParseSize(cfg.Rotation.MaxSize); err != nil {
			return fmt.Errorf("invalid rotation.max_size: %w", err)
		}
	}
	if cfg.Rotation.MaxAge != "" {
		if _, err := ParseDuration(cfg.Rotation.MaxAge); err != nil {
			return fmt.Errorf("invalid rotation.max_age: %w", err)
		}
	}
	if cfg.GELF.Enabled && cfg.GELF.Host == "" {
		return errors.New("gelf.host is required when gelf is enabled")
	}
	if cfg.GELF.Enabled && cfg.GELF.Port == 0 {
		return errors.New("gelf.port is required when gelf is enabled")
	}
	return nil
}

// Options converts the configuration to logger setup options.
func (c *Config) Options() (logzero.Options, error) {
	opts := logzero.Options{
		Name:            c.Name,
		LogFile:         c.LogFile,
		Stream:          logzero.Stream(c.Stream),
		JSON:            c.JSON,
		JSONEnsureASCII: c.JSONEnsureASCII,
		BackupCount:     c.Rotation.MaxBackups,
		FileCompress:    c.Rotation.Compress,
	}
	if c.Level != "" {
		level, err := logzero.ParseLevel(c.Level)
		if err != nil {
			return opts, err
		}
		opts.Level = level
	}
	if c.FileLevel != "" {
		level, err := logzero.ParseLevel(c.FileLevel)
		if err != nil {
			return opts, err
		}
		opts.FileLevel = &level
	}
	if c.Rotation.MaxSize != "" {
		size, err := ParseSize(c.Rotation.MaxSize)
		if err != nil {
			return opts, err
		}
		opts.MaxBytes = size
	}
	if c.Rotation.MaxAge != "" {
		age, err := ParseDuration(c.Rotation.MaxAge)
		if err != nil {
			return opts, err
		}
		opts.FileMaxAge = age
	}
	return opts, nil
}

// Apply configures a logger from the given configuration, attaching the
// optional syslog and GELF destinations.
func Apply(cfg *Config) (*logzero.Logger, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	logger, err := logzero.Setup(opts)
	if err != nil {
		return nil, err
	}
	if cfg.Syslog.Enabled {
		if _, err := logger.AddSyslog(SyslogFacility(cfg.Syslog.Facility), false); err != nil {
			return nil, err
		}
	}
	if cfg.GELF.Enabled {
		addr := fmt.Sprintf("%s:%d", cfg.GELF.Host, cfg.GELF.Port)
		gelfOpts := logzero.GELFOptions{Protocol: cfg.GELF.Protocol, Compression: cfg.GELF.Compression}
		if _, err := logger.AddGELF(addr, gelfOpts, false); err != nil {
			return nil, err
		}
	}
	return logger, nil
}

// syslogFacilities maps facility names to syslog priorities.
var syslogFacilities = map[string]syslog.Priority{
	"kern":   syslog.LOG_KERN,
	"user":   syslog.LOG_USER,
	"mail":   syslog.LOG_MAIL,
	"daemon": syslog.LOG_DAEMON,
	"auth":   syslog.LOG_AUTH,
	"syslog": syslog.LOG_SYSLOG,
	"local0": syslog.LOG_LOCAL0,
	"local1": syslog.LOG_LOCAL1,
	"local2": syslog.LOG_LOCAL2,
	"local3": syslog.LOG_LOCAL3,
	"local4": syslog.LOG_LOCAL4,
	"local5": syslog.LOG_LOCAL5,
	"local6": syslog.LOG_LOCAL6,
	"local7": syslog.LOG_LOCAL7,
}

// SyslogFacility maps a facility name to its syslog priority, defaulting
// to LOG_USER.
func SyslogFacility(name string) syslog.Priority {
	if facility, ok := syslogFacilities[strings.ToLower(name)]; ok {
		return facility
	}
	return syslog.LOG_USER
}

// ParseDuration parses a duration string (e.g. "10m", "1h30m", "7d").
// Supports standard time.ParseDuration units plus 'd' for days.
func ParseDuration(durationStr string) (time.Duration, error) {
	durationStr = strings.TrimSpace(durationStr)
	if durationStr == "" {
		return 0, errors.New("duration string cannot be empty")
	}

	// Handle 'd' suffix manually
	if strings.HasSuffix(strings.ToLower(durationStr), "d") {
		numStr := strings.TrimSuffix(strings.ToLower(durationStr), "d")
		days, err := strconv.ParseInt(numStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number format for days in '%s': %w", durationStr, err)
		}
		if days <= 0 {
			return 0, fmt.Errorf("duration must be positive: '%s'", durationStr)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format '%s': %w", durationStr, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: '%s'", durationStr)
	}
	return d, nil
}

// ParseSize parses a size string (e.g. "10MB", "5k", "512") into bytes.
// Supports K, M, G suffixes with optional trailing B, case-insensitive.
func ParseSize(sizeStr string) (int64, error) {
	sizeStr = strings.TrimSpace(strings.ToUpper(sizeStr))
	if sizeStr == "" {
		return 0, errors.New("size string cannot be empty")
	}

	var multiplier int64 = 1
	suffix := ""

	switch {
	case strings.HasSuffix(sizeStr, "KB"):
		multiplier, suffix = 1024, "KB"
	case strings.HasSuffix(sizeStr, "K"):
		multiplier, suffix = 1024, "K"
	case strings.HasSuffix(sizeStr, "MB"):
		multiplier, suffix = 1024*1024, "MB"
	case strings.HasSuffix(sizeStr, "M"):
		multiplier, suffix = 1024*1024, "M"
	case strings.HasSuffix(sizeStr, "GB"):
		multiplier, suffix = 1024*1024*1024, "GB"
	case strings.HasSuffix(sizeStr, "G"):
		multiplier, suffix = 1024*1024*1024, "G"
	}

	numStr := strings.TrimSpace(strings.TrimSuffix(sizeStr, suffix))
	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size format '%s': %w", sizeStr, err)
	}
	if num < 0 {
		return 0, fmt.Errorf("size cannot be negative: '%s'", sizeStr)
	}
	return num * multiplier, nil
}

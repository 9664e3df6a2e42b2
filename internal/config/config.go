// Package config loads the service configuration: defaults, then an optional
// YAML (or JSON) file, then PATHWAYS_* environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goganux/texas-career-path-explorer/internal/logging"
	"gopkg.in/yaml.v3"
)

// Pathway sources.
const (
	SourceMemory = "memory"
	SourceLoam   = "loam"
)

// Session stores.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the root configuration document.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Pathways PathwaysConfig `yaml:"pathways"`
	Sessions SessionsConfig `yaml:"sessions"`
	Redis    RedisConfig    `yaml:"redis"`
	MCP      MCPConfig      `yaml:"mcp"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// CORSOrigin is echoed in Access-Control-Allow-Origin; empty disables CORS headers.
	CORSOrigin string `yaml:"cors_origin"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PathwaysConfig struct {
	// Source is "memory" (bundled demo catalog) or "loam" (Markdown directory).
	Source string `yaml:"source"`
	Dir    string `yaml:"dir"`
	// ReadOnly rejects writes to a loam directory.
	ReadOnly bool `yaml:"read_only"`
}

type SessionsConfig struct {
	// Store is "memory" or "redis".
	Store   string        `yaml:"store"`
	TTL     time.Duration `yaml:"ttl"`
	LockTTL time.Duration `yaml:"lock_ttl"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type MCPConfig struct {
	// Transport is "stdio" or "sse".
	Transport string `yaml:"transport"`
	Addr      string `yaml:"addr"`
	BaseURL   string `yaml:"base_url"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			CORSOrigin:      "*",
		},
		Log: LogConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
		Pathways: PathwaysConfig{
			Source: SourceMemory,
		},
		Sessions: SessionsConfig{
			Store:   StoreMemory,
			TTL:     24 * time.Hour,
			LockTTL: 30 * time.Second,
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "pathways:session:",
		},
		MCP: MCPConfig{
			Transport: "stdio",
			Addr:      ":8081",
		},
	}
}

// Load reads defaults, the file at path (skipped when path is empty) and the process environment.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an injectable environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := Decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode merges a YAML or JSON document into cfg. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch logging.Format(c.Log.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	switch c.Pathways.Source {
	case SourceMemory:
	case SourceLoam:
		if c.Pathways.Dir == "" {
			errs = append(errs, errors.New("pathways.dir is required for the loam source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown pathways source %q", c.Pathways.Source))
	}
	switch c.Sessions.Store {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("redis.addr is required for the redis session store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown session store %q", c.Sessions.Store))
	}
	if c.Sessions.TTL < 0 || c.Sessions.LockTTL < 0 {
		errs = append(errs, errors.New("session ttls must not be negative"))
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		errs = append(errs, fmt.Errorf("unknown mcp transport %q", c.MCP.Transport))
	}
	return errors.Join(errs...)
}

// envPrefix namespaces every override.
const envPrefix = "PATHWAYS_"

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}
	var errs []error
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(envPrefix + key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
				return
			}
			*dst = d
		}
	}

	str("ADDR", &cfg.Server.Addr)
	dur("SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)
	str("CORS_ORIGIN", &cfg.Server.CORSOrigin)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("PATHWAYS_SOURCE", &cfg.Pathways.Source)
	str("PATHWAYS_DIR", &cfg.Pathways.Dir)
	str("SESSION_STORE", &cfg.Sessions.Store)
	dur("SESSION_TTL", &cfg.Sessions.TTL)
	dur("LOCK_TTL", &cfg.Sessions.LockTTL)
	str("REDIS_ADDR", &cfg.Redis.Addr)
	str("REDIS_PASSWORD", &cfg.Redis.Password)
	str("REDIS_PREFIX", &cfg.Redis.Prefix)
	if v, ok := lookup(envPrefix + "REDIS_DB"); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sREDIS_DB: %w", envPrefix, err))
		} else {
			cfg.Redis.DB = db
		}
	}
	str("MCP_TRANSPORT", &cfg.MCP.Transport)
	str("MCP_ADDR", &cfg.MCP.Addr)
	str("MCP_BASE_URL", &cfg.MCP.BaseURL)

	return errors.Join(errs...)
}

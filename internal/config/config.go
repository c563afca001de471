package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/encounter"
)

// ConfigPathEnv names the optional YAML file read before the environment overlay.
const ConfigPathEnv = "ENCOUNTER_CONFIG_PATH"

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Rules     RulesConfig     `yaml:"rules"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"ENCOUNTER_SERVER_HOST"`
	Port int    `yaml:"port" env:"ENCOUNTER_SERVER_PORT"`
	// AuthToken requires a matching bearer token on /mcp. Empty leaves it open.
	AuthToken string `yaml:"auth_token" env:"ENCOUNTER_AUTH_TOKEN"`
}

// Addr is host:port for the HTTP transport.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type TransportConfig struct {
	// Mode is stdio or http.
	Mode string `yaml:"mode" env:"ENCOUNTER_TRANSPORT_MODE"`
}

type StorageConfig struct {
	// Driver is sqlite or redis.
	Driver      string `yaml:"driver" env:"ENCOUNTER_STORAGE_DRIVER"`
	SQLitePath  string `yaml:"sqlite_path" env:"ENCOUNTER_SQLITE_PATH"`
	RedisAddr   string `yaml:"redis_addr" env:"ENCOUNTER_REDIS_ADDR"`
	RedisPrefix string `yaml:"redis_prefix" env:"ENCOUNTER_REDIS_PREFIX"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"ENCOUNTER_LOG_LEVEL"`
	// Path, when set, sends logs to a size-capped file instead of stderr/stdout.
	Path string `yaml:"path" env:"ENCOUNTER_LOG_PATH"`
}

// RulesConfig holds the calculator defaults and the reference data override.
type RulesConfig struct {
	Difficulty string `yaml:"difficulty" env:"ENCOUNTER_DEFAULT_DIFFICULTY"`
	Mode       string `yaml:"mode" env:"ENCOUNTER_DEFAULT_MODE"`
	// DataDir overrides embedded reference files by name. Empty uses embedded data only.
	DataDir string `yaml:"data_dir" env:"ENCOUNTER_DATA_DIR"`
}

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"

	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: TransportStdio,
		},
		Storage: StorageConfig{
			Driver:      DriverSQLite,
			SQLitePath:  "encounters.db",
			RedisPrefix: "encounter",
		},
		Log: LogConfig{
			Level: "info",
		},
		Rules: RulesConfig{
			Difficulty: string(encounter.DifficultyModerate),
			Mode:       string(encounter.ModeGroup),
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Validate reports every violated constraint in one error. Difficulty labels
// are only checked for shape here; ValidateFor checks them against the XP table.
func (c Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port))
	}
	switch c.Transport.Mode {
	case TransportStdio, TransportHTTP:
	default:
		errs = append(errs, fmt.Errorf("transport.mode must be one of [stdio, http], got %q", c.Transport.Mode))
	}
	switch c.Storage.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			errs = append(errs, errors.New("storage.sqlite_path must not be empty"))
		}
	case DriverRedis:
		if strings.TrimSpace(c.Storage.RedisAddr) == "" {
			errs = append(errs, errors.New("storage.redis_addr is required for the redis driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be one of [sqlite, redis], got %q", c.Storage.Driver))
	}
	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		errs = append(errs, fmt.Errorf("log.level must be one of [debug, info, warn, error], got %q", c.Log.Level))
	}
	if _, err := encounter.ParseDifficulty(c.Rules.Difficulty); err != nil {
		errs = append(errs, fmt.Errorf("rules.difficulty: %w", err))
	}
	if _, err := encounter.ParseMode(c.Rules.Mode); err != nil {
		errs = append(errs, fmt.Errorf("rules.mode: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// ValidateFor checks the rule defaults against the loaded XP table.
func (r RulesConfig) ValidateFor(table encounter.XPTable) error {
	d, err := encounter.ParseDifficulty(r.Difficulty)
	if err == nil {
		err = table.CheckDifficulty(d)
	}
	if err != nil {
		return fmt.Errorf("rules.difficulty: %w", err)
	}
	return nil
}

var levels = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}

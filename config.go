package xlsxstyle

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration of a File.
//
//	default_font:
//	  name: Aptos
//	  size: 12
//	theme:
//	  accent1: "#156082"
//	store:
//	  kind: redis
//	  redis_addr: localhost:6379
//	  command_timeout: 2s
//	log:
//	  level: debug
type Config struct {
	DefaultFont FontConfig        `yaml:"default_font"`
	ThemeColors map[string]string `yaml:"theme"`
	Store       StoreConfig       `yaml:"store"`
	Log         LogConfig         `yaml:"log"`
}

type FontConfig struct {
	Name   string  `yaml:"name"`
	Size   float64 `yaml:"size"`
	Family int     `yaml:"family"`
	Scheme string  `yaml:"scheme"`
}

// StoreConfig selects where snapshots are persisted.  Kind is one of
// "memory", "disk" or "redis".
type StoreConfig struct {
	Kind           string        `yaml:"kind"`
	Path           string        `yaml:"path"`
	CacheSizeMax   uint64        `yaml:"cache_size_max"`
	RedisAddr      string        `yaml:"redis_addr"`
	Namespace      string        `yaml:"namespace"`
	CommandTimeout time.Duration `yaml:"command_timeout"`
	DialTimeout    time.Duration `yaml:"dial_timeout"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the configuration a File uses when none is given.
func DefaultConfig() *Config {
	f := DefaultFont()
	return &Config{
		DefaultFont: FontConfig{Name: f.Name, Size: f.Size, Family: f.FamilyValue(), Scheme: f.Scheme},
		Store:       StoreConfig{Kind: "memory"},
		Log:         LogConfig{Level: "info"},
	}
}

// LoadConfig reads a YAML configuration.  Keys that are absent keep their
// defaults.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decode config")
	}
	if !(cfg.DefaultFont.Size > 0) {
		return nil, NewRangeError("default_font.size", cfg.DefaultFont.Size, "> 0")
	}
	return cfg, nil
}

func LoadConfigFile(path string) (*Config, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer fh.Close()
	return LoadConfig(fh)
}

// Font returns the Normal font described by the config.
func (c *Config) Font() Font {
	f := DefaultFont()
	fc := c.DefaultFont
	if fc.Name != "" && fc.Name != f.Name {
		f.Name = fc.Name
		f.Scheme = ""
	}
	if fc.Size > 0 {
		f.Size = fc.Size
	}
	if fc.Family != 0 {
		f.Family = intPtr(fc.Family)
	}
	if fc.Scheme != "" {
		f.Scheme = fc.Scheme
	}
	return f
}

// Theme returns the default theme with the configured slot overrides applied.
func (c *Config) Theme() (*Theme, error) {
	t := DefaultTheme()
	for name, rgb := range c.ThemeColors {
		slot, ok := themeColorByName(name)
		if !ok {
			return nil, errors.Errorf("unknown theme colour %q", name)
		}
		if err := t.SetColor(slot, rgb); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Open creates the store described by the config.
func (c StoreConfig) Open(log *zap.Logger) (StyleStore, error) {
	switch c.Kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "disk":
		return NewDiskvStore(DiskvStoreOption{BasePath: c.Path, CacheSizeMax: c.CacheSizeMax, Logger: log})
	case "redis":
		return NewRedisStore(RedisStoreOption{
			RedisAddr:      c.RedisAddr,
			Namespace:      c.Namespace,
			CommandTimeout: c.CommandTimeout,
			DialTimeout:    c.DialTimeout,
			Logger:         log,
		})
	}
	return nil, errors.Errorf("unknown store kind %q", c.Kind)
}

// Build creates the logger described by the config.
func (c LogConfig) Build() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if c.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	if c.Level != "" {
		level, err := zapcore.ParseLevel(c.Level)
		if err != nil {
			return nil, errors.Wrap(err, "log level")
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}
	return cfg.Build()
}

package config

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	KanjiVG KanjiVGConfig `mapstructure:"kanjivg"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	Host            string `mapstructure:"host"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

// KanjiVGConfig holds the upstream KanjiVG repository configuration
type KanjiVGConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	IndexPath string `mapstructure:"index_path"`
	SVGPath   string `mapstructure:"svg_path"`
	Timeout   int    `mapstructure:"timeout"`
	UserAgent string `mapstructure:"user_agent"`
	Proxy     string `mapstructure:"proxy"`
}

// LogConfig holds logrus settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c KanjiVGConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Load reads config.yaml from the current directory with environment variable
// overrides. A missing file is not an error: defaults and environment apply.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with explicit search paths.
func LoadFrom(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Warn("config.yaml not found, using defaults and environment")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", c.Server.Port)
	}
	if c.KanjiVG.BaseURL == "" {
		return fmt.Errorf("kanjivg.base_url must not be empty")
	}
	if c.KanjiVG.Timeout <= 0 {
		return fmt.Errorf("invalid kanjivg.timeout: %d", c.KanjiVG.Timeout)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q: expected text or json", c.Log.Format)
	}
	return nil
}

// ConfigureLogger applies the log settings to the standard logrus logger.
func (c LogConfig) ConfigureLogger() {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if c.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("kanjivg.base_url", "https://raw.githubusercontent.com/KanjiVG/kanjivg/master")
	v.SetDefault("kanjivg.index_path", "kvg-index.json")
	v.SetDefault("kanjivg.svg_path", "kanji")
	v.SetDefault("kanjivg.timeout", 30)
	v.SetDefault("kanjivg.user_agent", "kanji-strokes/1.0")
	v.SetDefault("kanjivg.proxy", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

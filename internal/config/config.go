package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/RidgeA/combus"
)

const (
	TransportInMemory = "inmemory"
	TransportAMQP     = "amqp"
)

type Config struct {
	Name              string
	Transport         string
	URL               string
	Timeout           time.Duration
	HandlerThroughput uint
	MetricsAddress    string
	Verbose           bool
}

type FileConfig struct {
	Bus BusConfig `yaml:"bus"`
}

type BusConfig struct {
	Name              string        `yaml:"name"`
	Transport         string        `yaml:"transport"`
	URL               string        `yaml:"url"`
	Timeout           time.Duration `yaml:"timeout"`
	HandlerThroughput *uint         `yaml:"handlerThroughput"`
	MetricsAddress    string        `yaml:"metricsAddress"`
	Verbose           *bool         `yaml:"verbose"`
}

func Default() Config {
	return Config{
		Name:      "combus",
		Transport: TransportInMemory,
	}
}

// LoadFromPath reads the YAML file at configPath, merges it onto the defaults
// and applies COMBUS_* environment overrides. An empty path skips the file.
func LoadFromPath(configPath string) (Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}

		var parsed FileConfig
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", configPath, err)
		}
		Merge(&cfg, parsed.Bus)
	}

	if err := ApplyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func Merge(dst *Config, src BusConfig) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.Transport != "" {
		dst.Transport = src.Transport
	}
	if src.URL != "" {
		dst.URL = src.URL
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	if src.HandlerThroughput != nil {
		dst.HandlerThroughput = *src.HandlerThroughput
	}
	if src.MetricsAddress != "" {
		dst.MetricsAddress = src.MetricsAddress
	}
	if src.Verbose != nil {
		dst.Verbose = *src.Verbose
	}
}

func ApplyEnvOverrides(cfg *Config) error {
	if transport := strings.TrimSpace(os.Getenv("COMBUS_TRANSPORT")); transport != "" {
		cfg.Transport = transport
	}
	if url := strings.TrimSpace(os.Getenv("COMBUS_URL")); url != "" {
		cfg.URL = url
	}
	if raw := strings.TrimSpace(os.Getenv("COMBUS_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("COMBUS_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if raw := strings.TrimSpace(os.Getenv("COMBUS_VERBOSE")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("COMBUS_VERBOSE: %w", err)
		}
		cfg.Verbose = v
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Transport {
	case TransportInMemory:
	case TransportAMQP:
		if c.URL == "" {
			return fmt.Errorf("transport %q requires an url", c.Transport)
		}
	default:
		return fmt.Errorf("unknown transport %q", c.Transport)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("negative timeout %s", c.Timeout)
	}
	return nil
}

// Options converts the configuration into bus options. logf receives info
// and debug output when Verbose is set.
func (c Config) Options(logf combus.LogFunc) []combus.OptionsFunc {
	opts := []combus.OptionsFunc{
		combus.SetName(c.Name),
		combus.SetTimeout(c.Timeout),
	}
	if c.Transport == TransportAMQP {
		opts = append(opts, combus.SetUrl(c.URL))
	}
	if c.Verbose && logf != nil {
		opts = append(opts, combus.SetInfo(logf), combus.SetDebug(logf))
	}
	return opts
}

// HandlerOptions returns the per-listener options.
func (c Config) HandlerOptions() []combus.HandlerOptionsFunc {
	if c.HandlerThroughput == 0 {
		return nil
	}
	return []combus.HandlerOptionsFunc{combus.SetHandlerThroughput(c.HandlerThroughput)}
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ClientConfig is the on-disk shape for the castctl sender.
// Duration fields hold strings like "5s" and resolve against the
// transport defaults in TransportConfig.
type ClientConfig struct {
	Address          string `toml:"address"`
	ConnectTimeout   string `toml:"connect_timeout"`
	WriteTimeout     string `toml:"write_timeout"`
	ReadTimeout      string `toml:"read_timeout"`
	ResponseMode     string `toml:"response_mode"`
	MaxResponseBytes uint32 `toml:"max_response_bytes"`
	ExtraHex         string `toml:"extra_hex"`
}

// SinkConfig is the on-disk shape for the castsinkd daemon.
type SinkConfig struct {
	ListenAddr      string `toml:"listen_addr"`
	AdminAddr       string `toml:"admin_addr"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	MaxBodyBytes    uint32 `toml:"max_body_bytes"`
	HandlerPoolSize int    `toml:"handler_pool_size"`
}

func LoadClientConfig(path string) (ClientConfig, error) {
	var cfg ClientConfig
	if err := loadToml(path, &cfg); err != nil {
		return ClientConfig{}, err
	}
	if cfg.Address == "" {
		cfg.Address = "127.0.0.1:29000"
	}
	if err := ValidateClientConfig(cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func LoadSinkConfig(path string) (SinkConfig, error) {
	var cfg SinkConfig
	if err := loadToml(path, &cfg); err != nil {
		return SinkConfig{}, err
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":29000"
	}
	if err := ValidateSinkConfig(cfg); err != nil {
		return SinkConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateClientConfig(cfg ClientConfig) error {
	if strings.TrimSpace(cfg.Address) == "" {
		return fmt.Errorf("client config missing address")
	}
	switch strings.TrimSpace(cfg.ResponseMode) {
	case "", "full-frame", "single-read":
	default:
		return fmt.Errorf("client config response_mode must be full-frame or single-read")
	}
	if err := checkDuration("connect_timeout", cfg.ConnectTimeout); err != nil {
		return fmt.Errorf("client config: %w", err)
	}
	if err := checkDuration("write_timeout", cfg.WriteTimeout); err != nil {
		return fmt.Errorf("client config: %w", err)
	}
	if err := checkDuration("read_timeout", cfg.ReadTimeout); err != nil {
		return fmt.Errorf("client config: %w", err)
	}
	return nil
}

func ValidateSinkConfig(cfg SinkConfig) error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return fmt.Errorf("sink config missing listen_addr")
	}
	if cfg.HandlerPoolSize < 0 {
		return fmt.Errorf("sink config handler_pool_size must not be negative")
	}
	if err := checkDuration("read_timeout", cfg.ReadTimeout); err != nil {
		return fmt.Errorf("sink config: %w", err)
	}
	if err := checkDuration("write_timeout", cfg.WriteTimeout); err != nil {
		return fmt.Errorf("sink config: %w", err)
	}
	return nil
}

func checkDuration(name, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if _, err := time.ParseDuration(strings.TrimSpace(raw)); err != nil {
		return fmt.Errorf("%s invalid: %w", name, err)
	}
	return nil
}

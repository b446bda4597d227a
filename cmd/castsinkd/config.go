package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/castctl/internal/sink"
)

// castsinkd config.toml key mapping to sink runtime settings.
type fileConfig struct {
	ListenAddr      string `toml:"listen_addr"`
	AdminAddr       string `toml:"admin_addr"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	MaxBodyBytes    uint32 `toml:"max_body_bytes"`
	HandlerPoolSize int    `toml:"handler_pool_size"`
}

// castsinkd loader for TOML config with default overlay.
func loadServiceConfig(path string) (sink.ServiceConfig, error) {
	cfg := sink.DefaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return sink.ServiceConfig{}, fmt.Errorf("load sink config: %w", err)
	}

	if meta.IsDefined("listen_addr") {
		cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}
	if meta.IsDefined("admin_addr") {
		cfg.AdminAddr = strings.TrimSpace(raw.AdminAddr)
	}
	if meta.IsDefined("read_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ReadTimeout))
		if err != nil {
			return sink.ServiceConfig{}, fmt.Errorf("parse read_timeout: %w", err)
		}
		cfg.ReadTimeout = d
	}
	if meta.IsDefined("write_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.WriteTimeout))
		if err != nil {
			return sink.ServiceConfig{}, fmt.Errorf("parse write_timeout: %w", err)
		}
		cfg.WriteTimeout = d
	}
	if meta.IsDefined("max_body_bytes") {
		cfg.MaxBodyBytes = raw.MaxBodyBytes
	}
	if meta.IsDefined("handler_pool_size") {
		if raw.HandlerPoolSize <= 0 {
			return sink.ServiceConfig{}, fmt.Errorf("load sink config: handler_pool_size must be positive")
		}
		cfg.HandlerPoolSize = raw.HandlerPoolSize
	}

	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return sink.ServiceConfig{}, fmt.Errorf("load sink config: listen_addr is required")
	}

	return cfg, nil
}

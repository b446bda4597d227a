package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadServiceConfigDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
listen_addr = ":29100"
admin_addr = "127.0.0.1:29190"
read_timeout = "12s"
handler_pool_size = 16
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ListenAddr != ":29100" {
		t.Fatalf("listen addr %q", cfg.ListenAddr)
	}
	if cfg.AdminAddr != "127.0.0.1:29190" {
		t.Fatalf("admin addr %q", cfg.AdminAddr)
	}
	if cfg.ReadTimeout != 12*time.Second {
		t.Fatalf("read timeout %v", cfg.ReadTimeout)
	}
	if cfg.HandlerPoolSize != 16 {
		t.Fatalf("pool size %d", cfg.HandlerPoolSize)
	}
	if cfg.WriteTimeout != 5*time.Second {
		t.Fatalf("write timeout %v, want default", cfg.WriteTimeout)
	}
	if cfg.MaxBodyBytes != 128<<10 {
		t.Fatalf("max body %d, want default", cfg.MaxBodyBytes)
	}
}

func TestLoadServiceConfigBadDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
read_timeout = "abc"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := loadServiceConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadServiceConfigRejectsEmptyListenAddr(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
listen_addr = ""
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := loadServiceConfig(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadServiceConfigRejectsBadPoolSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
handler_pool_size = 0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := loadServiceConfig(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

package config

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/danmuck/castctl/internal/transport"
)

// TransportConfig resolves the on-disk client settings against the
// transport defaults. Empty fields keep the default value.
func TransportConfig(cfg ClientConfig) (transport.Config, error) {
	out := transport.DefaultConfig()

	var err error
	if out.ConnectTimeout, err = resolveDuration(cfg.ConnectTimeout, out.ConnectTimeout); err != nil {
		return transport.Config{}, fmt.Errorf("connect_timeout invalid: %w", err)
	}
	if out.WriteTimeout, err = resolveDuration(cfg.WriteTimeout, out.WriteTimeout); err != nil {
		return transport.Config{}, fmt.Errorf("write_timeout invalid: %w", err)
	}
	if out.ReadTimeout, err = resolveDuration(cfg.ReadTimeout, out.ReadTimeout); err != nil {
		return transport.Config{}, fmt.Errorf("read_timeout invalid: %w", err)
	}

	if cfg.MaxResponseBytes != 0 {
		out.MaxResponseBytes = cfg.MaxResponseBytes
	}

	switch strings.TrimSpace(cfg.ResponseMode) {
	case "":
	case string(transport.ResponseFullFrame):
		out.ResponseMode = transport.ResponseFullFrame
	case string(transport.ResponseSingleRead):
		out.ResponseMode = transport.ResponseSingleRead
	default:
		return transport.Config{}, fmt.Errorf("response_mode must be %s or %s",
			transport.ResponseFullFrame, transport.ResponseSingleRead)
	}

	return out, nil
}

// ExtraPayload decodes the optional trailing octet payload configured
// as a hex string. Empty means no payload.
func ExtraPayload(cfg ClientConfig) ([]byte, error) {
	raw := strings.TrimSpace(cfg.ExtraHex)
	if raw == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("extra_hex invalid: %w", err)
	}
	return b, nil
}

func resolveDuration(raw string, fallback time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}

package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "castctl":
		return clientTemplate, nil
	case "castsinkd":
		return sinkTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	if err := os.WriteFile(path, []byte(template), 0o600); err != nil {
		return fmt.Errorf("config template write failed (%s): %w", path, err)
	}
	return nil
}

const clientTemplate = `address = "127.0.0.1:29000"
connect_timeout = "5s"
write_timeout = "5s"
read_timeout = "10s"
response_mode = "full-frame"
max_response_bytes = 131072
extra_hex = ""
`

const sinkTemplate = `listen_addr = ":29000"
admin_addr = "127.0.0.1:29090"
read_timeout = "30s"
write_timeout = "5s"
max_body_bytes = 131072
handler_pool_size = 128
`

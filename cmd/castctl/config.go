package main

import (
	"time"

	"github.com/danmuck/castctl/internal/config"
	"github.com/danmuck/castctl/internal/transport"
)

// runtimeConfig is the resolved sender configuration: file settings with
// flag overrides layered on top.
type runtimeConfig struct {
	Address   string
	Transport transport.Config
	Extra     []byte
}

func resolveConfig(path, addr string, timeout time.Duration, singleRead bool, extraHex string) (runtimeConfig, error) {
	fileCfg := config.ClientConfig{Address: "127.0.0.1:29000"}
	if path != "" {
		loaded, err := config.LoadClientConfig(path)
		if err != nil {
			return runtimeConfig{}, err
		}
		fileCfg = loaded
	}

	tc, err := config.TransportConfig(fileCfg)
	if err != nil {
		return runtimeConfig{}, err
	}

	out := runtimeConfig{Address: fileCfg.Address, Transport: tc}

	if addr != "" {
		out.Address = addr
	}
	if timeout > 0 {
		out.Transport.ReadTimeout = timeout
	}
	if singleRead {
		out.Transport.ResponseMode = transport.ResponseSingleRead
	}

	if extraHex != "" {
		fileCfg.ExtraHex = extraHex
	}
	out.Extra, err = config.ExtraPayload(fileCfg)
	if err != nil {
		return runtimeConfig{}, err
	}

	return out, nil
}

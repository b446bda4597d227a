package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/danmuck/castctl/internal/logging"
	"github.com/danmuck/castctl/internal/protocol/chat"
	"github.com/danmuck/castctl/internal/transport"
	"github.com/rs/zerolog/log"
)

func main() {
	addr := flag.String("addr", "", "server address (host:port); overrides config")
	configPath := flag.String("config", "", "TOML config path")
	timeout := flag.Duration("timeout", 0, "response read timeout; overrides config")
	singleRead := flag.Bool("single-read", false, "treat the first TCP segment as the whole response")
	extraHex := flag.String("extra", "", "hex payload for the trailing octet field")
	flag.Usage = usage
	flag.Parse()

	logging.ConfigureRuntime()

	args := flag.Args()
	if len(args) < 3 {
		usage()
		os.Exit(1)
	}

	roleID, err := parseRoleID(args[0])
	if err != nil {
		fatal(err)
	}
	channelID, err := parseChannelID(args[1])
	if err != nil {
		fatal(err)
	}
	message := strings.Join(args[2:], " ")

	cfg, err := resolveConfig(*configPath, *addr, *timeout, *singleRead, *extraHex)
	if err != nil {
		fatal(err)
	}

	wire, err := chat.EncodeBroadcast(chat.Broadcast{
		Channel: channelID,
		RoleID:  roleID,
		Text:    message,
		Extra:   cfg.Extra,
	})
	if err != nil {
		fatal(err)
	}

	client := transport.NewClient(cfg.Transport)
	resp, err := client.Send(context.Background(), cfg.Address, wire)
	if err != nil {
		fatal(err)
	}

	// One-shot send: the server reply is informational only.
	log.Debug().
		Str("addr", cfg.Address).
		Uint32("role_id", roleID).
		Uint8("channel", channelID).
		Int("response_bytes", len(resp)).
		Msg("broadcast sent")
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: castctl [flags] <roleID> <channelID> <message...>")
	flag.PrintDefaults()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "castctl: %v\n", err)
	os.Exit(1)
}

func parseRoleID(raw string) (uint32, error) {
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("role id %q: %w", raw, err)
	}
	return uint32(v), nil
}

func parseChannelID(raw string) (uint8, error) {
	v, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("channel id %q: %w", raw, err)
	}
	return uint8(v), nil
}

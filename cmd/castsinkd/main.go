package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/castctl/internal/logging"
	"github.com/danmuck/castctl/internal/sink"
)

func main() {
	configPath := flag.String("config", "", "TOML config path")
	listen := flag.String("listen", "", "protocol listen address; overrides config")
	admin := flag.String("admin", "", "admin HTTP listen address; overrides config")
	flag.Parse()

	logging.ConfigureRuntime()

	cfg := sink.DefaultServiceConfig()
	if *configPath != "" {
		loaded, err := loadServiceConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "castsinkd: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}
	if *admin != "" {
		cfg.AdminAddr = *admin
	}

	svc := sink.NewService(cfg)
	if err := svc.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "castsinkd: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"log"

	"github.com/danmuck/castctl/internal/config"
)

// Per-kind defaults shared by template generation and validation.
type kindSpec struct {
	defaultPath string
	load        func(string) error
}

var kinds = map[string]kindSpec{
	"castctl": {
		defaultPath: "cmd/castctl/config.toml",
		load: func(path string) error {
			_, err := config.LoadClientConfig(path)
			return err
		},
	},
	"castsinkd": {
		defaultPath: "cmd/castsinkd/config.toml",
		load: func(path string) error {
			_, err := config.LoadSinkConfig(path)
			return err
		},
	},
}

func main() {
	kind := flag.String("kind", "castctl", "config kind: castctl|castsinkd")
	output := flag.String("output", "", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "", "config path for validation (defaults to per-kind cmd path)")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	spec, ok := kinds[*kind]
	if !ok {
		log.Fatalf("unknown kind: %s", *kind)
	}

	if *validate {
		path := *input
		if path == "" {
			path = spec.defaultPath
		}
		if err := spec.load(path); err != nil {
			log.Fatal(err)
		}
		log.Printf("Validated %s config at %s", *kind, path)
		return
	}

	target := *output
	if target == "" {
		target = spec.defaultPath
	}
	if err := config.WriteTemplate(target, *kind, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s config template to %s", *kind, target)
}

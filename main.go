package main

import (
	"errors"
	"flag"
	"log"
	"os"
)

func main() {
	cfg, err := ParseConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("Invalid arguments: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	if err := Run(cfg, os.Stdout); err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/iamasit07/connect4-minimax/internal/config"
	"github.com/iamasit07/connect4-minimax/internal/logger"
	"github.com/iamasit07/connect4-minimax/internal/shell"
)

func main() {
	envErr := config.LoadDotEnv()

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if envErr != nil {
		log.Debug("No .env file found")
	}
	cfg, err := config.LoadConfig(log)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sh, err := shell.New(os.Stdin, os.Stdout, log, cfg.BoardOptions()...)
	if err != nil {
		log.Fatalf("Failed to start shell: %v", err)
	}
	sh.TrapInterrupt = true

	if err := sh.Run(context.Background()); err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
}

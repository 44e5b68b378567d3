package main

import (
	"fmt"
	"os"

	"github.com/ngoachoi-cell/breaklistweb/internal/cli"
	"github.com/ngoachoi-cell/breaklistweb/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app := cli.NewApp(cfg)
	defer func() { _ = app.Close() }()
	return app.Execute()
}

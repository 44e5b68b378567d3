package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ngoachoi-cell/breaklistweb/internal/cli"
	"github.com/ngoachoi-cell/breaklistweb/internal/config"
	"github.com/ngoachoi-cell/breaklistweb/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "breaklist-mcp: %s\n", err)
		os.Exit(1)
	}

	s := mcp.NewServer(mcp.NewClient(cfg.ServerURL), cli.Version)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "breaklist-mcp: %s\n", err)
		os.Exit(1)
	}
}

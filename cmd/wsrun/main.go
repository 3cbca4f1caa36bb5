package main

import (
	"context"
	"os"

	"github.com/viant/wsrun/internal/cli"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	os.Exit(cli.Run(context.Background(), os.Args[1:], Version, os.Stdout, os.Stderr))
}

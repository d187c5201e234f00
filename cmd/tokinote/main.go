package main

import (
	"log/slog"
	"os"

	"github.com/tokinote/tokinote/internal/cli"
)

var version = "0.4.0"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := cli.Execute(version); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

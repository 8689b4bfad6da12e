package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"github.com/olivierdt/skyjo-cli/internal/client/cli"
	"github.com/olivierdt/skyjo-cli/internal/client/config"
	"github.com/olivierdt/skyjo-cli/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(context.Background())
}

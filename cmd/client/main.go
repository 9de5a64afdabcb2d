package main

import (
	"context"
	"log"
	"os"

	"github.com/authkeep/authkeep/internal/client/api"
	"github.com/authkeep/authkeep/internal/client/cli"
	"github.com/authkeep/authkeep/internal/client/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app := cli.NewApp(api.New(cfg.ServerAddr), os.Stdin, os.Stdout)

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/evmarket/internal/logging"
	"github.com/dmitrijs2005/evmarket/internal/web"
	"github.com/dmitrijs2005/evmarket/internal/web/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSON(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	app, err := web.NewApp(cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}

package main

import (
	"context"
	"log"

	"github.com/mkravets/falljournal/internal/cli"
	"github.com/mkravets/falljournal/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}

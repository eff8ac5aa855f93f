package main

import (
	"context"
	"log"

	"fintrack/internal/client/cli"
	"fintrack/internal/client/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}

package main

import (
	"context"
	"log"

	"fintrack/internal/server"
	"fintrack/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()
	app := server.NewApp(cfg)

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}

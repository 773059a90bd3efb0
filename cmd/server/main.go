package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/upcheck/internal/server"
	"github.com/dmitrijs2005/upcheck/internal/server/config"
)

func main() {

	ctx := context.Background()

	// a missing .env file is fine, the environment still applies
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}

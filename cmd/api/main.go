package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"squpe/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load environment and config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using process environment")
	}

	log.Println("squpe api starting")
	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("bootstrap api failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("api shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("squpe api stopped with error: %v", err)
	}
}

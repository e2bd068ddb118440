package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"squpe/internal/app/bootstrap"
)

// Worker process entrypoint.
// Data flow:
// 1) Load environment and config.
// 2) Build app wiring.
// 3) Start consumers and the outbox relays.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using process environment")
	}

	log.Println("squpe worker starting")
	app, err := bootstrap.BuildWorker()
	if err != nil {
		log.Fatalf("bootstrap worker failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("worker shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("squpe worker stopped with error: %v", err)
	}
}

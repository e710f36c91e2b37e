package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sentinote/sentinote/pkg/sentinote"
)

func main() {
	// Optional .env for local runs; missing files are fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sentinote.Main(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

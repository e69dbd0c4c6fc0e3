package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/mithrel/firesale/internal/bookmarker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := bookmarker.Run(ctx, log.New(os.Stderr, "bookmarker ", log.LstdFlags)); err != nil {
		log.Fatal(err)
	}
}

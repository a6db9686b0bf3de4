package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/EgorLis/garden-log/internal/app"
)

// @title           Garden Log API
// @version         1.0
// @description     Дневник сада: записи об урожае, события растений, фотографии.
// @BasePath        /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx)
	if err != nil {
		log.Fatalf("build failed: %v", err)
	}
	if err := a.Run(ctx); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}

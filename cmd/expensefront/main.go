package main

import (
	"context"
	"log"

	"github.com/you/expensefront/internal/app"
	"github.com/you/expensefront/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	container, err := app.Run(context.Background(), cfg)
	if err != nil {
		log.Fatalf("app: %v", err)
	}
	defer container.Close()
}

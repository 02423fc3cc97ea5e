package main

import (
	"context"
	"log"

	"ai-commerce-chat-be/internal/bootstrap"
	"ai-commerce-chat-be/internal/config"
	"ai-commerce-chat-be/internal/server"
	"ai-commerce-chat-be/internal/tracer"
	"ai-commerce-chat-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// Embedding worker: consumes product upserts and writes pgvector rows.
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// Agent desk worker: forwards bus events to connected dashboards.
	container.NotificationService.Start()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}

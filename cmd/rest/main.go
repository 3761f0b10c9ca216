package main

import (
	"context"
	"log"

	"ai-classroom-be/internal/bootstrap"
	"ai-classroom-be/internal/config"
	"ai-classroom-be/internal/server"
	"ai-classroom-be/internal/tracer"
	"ai-classroom-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Tagging Consumer...")
		if err := container.TaggingConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Tagging Consumer Error: %v", err)
		}
	}()

	go func() {
		log.Println("Background: Starting Interaction Stream Service...")
		if err := container.StreamService.Start(); err != nil {
			log.Printf("Background Stream Service Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}

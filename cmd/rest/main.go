package main

import (
	"context"
	"log"
	"time"

	"weavai-be/internal/bootstrap"
	"weavai-be/internal/config"
	"weavai-be/internal/server"
	"weavai-be/internal/tracer"
	"weavai-be/pkg/database"
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
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// Stale-job sweep: a crash mid-ingestion leaves the job in
	// processing forever; the sweep is the reconciliation path.
	cutoff := time.Duration(cfg.App.StaleJobCutoffMin) * time.Minute
	go func() {
		ticker := time.NewTicker(cutoff / 2)
		defer ticker.Stop()
		for range ticker.C {
			if err := container.DocumentService.SweepStaleJobs(context.Background(), cutoff); err != nil {
				log.Printf("Background Sweep Error: %v", err)
			}
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}

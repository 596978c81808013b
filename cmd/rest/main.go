package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"collabhub-be/internal/bootstrap"
	"collabhub-be/internal/config"
	"collabhub-be/internal/server"
	"collabhub-be/internal/tracer"
	"collabhub-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer("collabhub-backend")
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.Open(cfg.Database.Connection, cfg.Database.SQLitePath)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if cfg.Database.Connection == "" {
		// SQLite is a dev store, keep its schema current on boot.
		if err := database.Migrate(gormDB); err != nil {
			log.Panicf("Unable to migrate SQLite schema: %v", err)
		}
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	// 4. Start Background Services
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := container.Start(ctx); err != nil {
		log.Printf("Background: level-up subscriber not started: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}

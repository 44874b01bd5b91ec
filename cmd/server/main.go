package main // Entry point package

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/Beatrizfernan/front-formatura/internal/backend"
	"github.com/Beatrizfernan/front-formatura/internal/config"
	"github.com/Beatrizfernan/front-formatura/internal/database"
	"github.com/Beatrizfernan/front-formatura/internal/handler"
	"github.com/Beatrizfernan/front-formatura/internal/queue"
	"github.com/Beatrizfernan/front-formatura/internal/repository"
	"github.com/Beatrizfernan/front-formatura/internal/router"
)

func main() {
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable; cache/limits degrade
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	client := backend.New(cfg.BackendURL)
	sessions := repository.NewSessionRepo(db)

	venues := &handler.VenueHandler{Backend: client}
	uploads := &handler.UploadHandler{Backend: client, MaxBytes: cfg.MaxUploadBytes}
	maps := &handler.MapHandler{Backend: client, Sessions: sessions, AisleRow: cfg.AisleRow}

	e := echo.New()
	router.RegisterRoutes(e, venues, uploads, maps, rdb)

	// Audit-log consumer for move/reorder events; runs its own reconnect loop.
	go func() {
		if err := queue.StartSeatMapConsumer(); err != nil {
			log.Printf("seatmap consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, backend=%s)", addr, cfg.Env, cfg.BackendURL)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

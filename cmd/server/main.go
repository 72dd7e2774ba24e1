package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/healthhub/dashboard-api/internal/auth"
	"github.com/healthhub/dashboard-api/internal/config"
	"github.com/healthhub/dashboard-api/internal/database"
	"github.com/healthhub/dashboard-api/internal/events"
	"github.com/healthhub/dashboard-api/internal/handler"
	"github.com/healthhub/dashboard-api/internal/middleware"
	"github.com/healthhub/dashboard-api/internal/repository"
	"github.com/healthhub/dashboard-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database unavailable: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil disables the response cache
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)
	pub := events.NewPublisherFromEnv()
	verifier := auth.FromConfig(cfg)

	users := handler.NewUserHandler(repository.NewUserRepo(db), verifier, pub)
	records := handler.NewRecordHandler(
		repository.NewWeightRepo(db),
		repository.NewWorkoutRepo(db),
		repository.NewMetricRepo(db),
		pub,
	)

	e := echo.New()
	e.Use(echomw.CORS()) // the dashboard frontend is served from another origin
	router.Register(e, users, records, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, auth=%s)", addr, cfg.Env, cfg.AuthMode)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

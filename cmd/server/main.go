package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Mohamed-Rabiaa/alx-polly/internal/config"
	"github.com/Mohamed-Rabiaa/alx-polly/internal/db"
	"github.com/Mohamed-Rabiaa/alx-polly/internal/handler"
	"github.com/Mohamed-Rabiaa/alx-polly/internal/middleware"
	"github.com/Mohamed-Rabiaa/alx-polly/internal/repository"
	"github.com/Mohamed-Rabiaa/alx-polly/internal/router"
	"github.com/Mohamed-Rabiaa/alx-polly/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "alx-polly")
	log := middleware.Logger

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := db.CreateSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to create schema")
	}
	log.Info().Msg("database schema ready")

	handler.InitMetrics(pool)

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	pollRepo := repository.NewPollRepo(pool)
	voteRepo := repository.NewVoteRepo(pool)
	userRepo := repository.NewUserRepo(pool)

	authSvc := service.NewAuthService(userRepo, time.Duration(cfg.SessionTTLHrs)*time.Hour)
	pollSvc := service.NewPollService(pollRepo, cache)
	voteSvc := service.NewVoteService(voteRepo, cache)

	h := &router.Handlers{
		Auth:   handler.NewAuthHandler(authSvc),
		Poll:   handler.NewPollHandler(pollSvc, cache),
		Vote:   handler.NewVoteHandler(voteSvc),
		Stats:  handler.NewStatsHandler(userRepo),
		Health: handler.NewHealthHandler(pool, cache.Client()),
	}

	app := fiber.New(fiber.Config{
		AppName:      "alx-polly API",
		ServerHeader: "alx-polly",
	})

	router.Setup(app, h, authSvc.CurrentUser, cfg.CORSOrigins, cfg.IPHashSalt)

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		log.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("alx-polly backend starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server closed")
	}
}

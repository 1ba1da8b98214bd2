package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ymatsuda/cleaning-schedule/internal/config"
	"github.com/ymatsuda/cleaning-schedule/internal/database"
	"github.com/ymatsuda/cleaning-schedule/internal/handler"
	"github.com/ymatsuda/cleaning-schedule/internal/logger"
	"github.com/ymatsuda/cleaning-schedule/internal/queue"
	"github.com/ymatsuda/cleaning-schedule/internal/repository"
	"github.com/ymatsuda/cleaning-schedule/internal/router"
	"github.com/ymatsuda/cleaning-schedule/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
		cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("schema bootstrap failed")
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	lists := repository.NewListRepo(db)
	places := repository.NewPlaceRepo(db)

	publisher := queue.NewPublisher()
	listSvc := service.NewListService(lists)
	placeSvc := service.NewPlaceService(lists, places, publisher, log)

	go queue.StartActivityConsumer(log)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Deps{
		Cfg:     cfg,
		RateCfg: config.LoadRateLimitConfig(),
		Redis:   rdb,
		Log:     log,
		Auth:    handler.NewAuthHandler(cfg, users, tokens, log),
		Lists:   handler.NewListHandler(listSvc, log),
		Places:  handler.NewPlaceHandler(placeSvc, log),
	})

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

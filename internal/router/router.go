// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ymatsuda/cleaning-schedule/internal/config"
	"github.com/ymatsuda/cleaning-schedule/internal/handler"
	"github.com/ymatsuda/cleaning-schedule/internal/metrics"
	"github.com/ymatsuda/cleaning-schedule/internal/middleware"
)

// Deps collects everything route registration needs.
type Deps struct {
	Cfg     config.Config
	RateCfg config.RateLimitConfig
	Redis   *redis.Client
	Log     zerolog.Logger
	Auth    *handler.AuthHandler
	Lists   *handler.ListHandler
	Places  *handler.PlaceHandler
}

// Register mounts all routes on the echo instance. Auth endpoints are
// open; everything else under /v1 requires a valid access token.
func Register(e *echo.Echo, d Deps) {
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.RequestID(d.Log))
	e.Use(metrics.Instrument())

	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Session endpoints: no token required.
	a := e.Group("/v1/auth")
	a.Use(middleware.RateLimit(d.RateCfg, d.Redis))
	a.POST("/register", d.Auth.Register)
	a.POST("/login", d.Auth.Login)
	a.POST("/refresh", d.Auth.Refresh)
	a.POST("/logout", d.Auth.Logout)

	// Everything below carries the caller's identity. Place routes are
	// deliberately behind the same JWT gate as list routes: a place is
	// only reachable through a list the caller owns.
	g := e.Group("/v1", middleware.JWTAuth(d.Cfg.JWTSecret))
	g.Use(middleware.RateLimit(d.RateCfg, d.Redis))

	g.GET("/me", d.Auth.Me)
	g.DELETE("/me", d.Auth.DeleteAccount)

	g.POST("/lists", d.Lists.CreateList)
	g.GET("/lists", d.Lists.GetLists)
	g.PUT("/lists/:id", d.Lists.UpdateList)
	g.DELETE("/lists/:id", d.Lists.DeleteList)

	g.GET("/lists/:id/places", d.Places.GetPlaces)
	g.POST("/lists/:id/places", d.Places.CreatePlace)
	g.PUT("/lists/places/:id", d.Places.UpdatePlace)
	g.POST("/lists/places/:id/complete", d.Places.CompletePlace)
	g.DELETE("/lists/places/:id", d.Places.DeletePlace)
}

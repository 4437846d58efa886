// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/workstation-booking/internal/config"
	"github.com/iliyamo/workstation-booking/internal/handler"
	"github.com/iliyamo/workstation-booking/internal/middleware"
	"github.com/iliyamo/workstation-booking/internal/workflow"
)

// Handlers groups everything Register needs.  All fields are required
// except Redis, which may be nil; rate limiting and response caching
// degrade to no-ops without it.
type Handlers struct {
	Auth          *handler.AuthHandler
	Bookings      *handler.BookingHandler
	Seats         *handler.SeatHandler
	Notifications *handler.NotificationHandler
	Admin         *handler.AdminHandler
	JWTSecret     string
	Redis         *redis.Client
}

// Register mounts every route on the Echo instance.
//
// Public:     /healthz, /v1/auth/*
// Users:      /v1/bookings*, /v1/seats, /v1/notifications/cancellations, /v1/me
// Admins:     /v1/admin/*
func Register(e *echo.Echo, h Handlers) {
	e.GET("/healthz", handler.Health)

	// Redis-backed token bucket applied globally; a nil client turns it
	// into a pass-through.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), h.Redis))

	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	// Everything below requires a valid access token with a known role.
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(h.JWTSecret))
	v1.Use(middleware.RequireRole(workflow.RoleUser, workflow.RoleAdmin))

	v1.GET("/me", h.Auth.Me)
	v1.POST("/auth/logout-all", h.Auth.LogoutAll)

	v1.POST("/bookings", h.Bookings.Create)
	v1.GET("/bookings", h.Bookings.ListMine)
	v1.DELETE("/bookings/:id", h.Bookings.Cancel)

	// The seat map is the hottest read path, so it gets the response
	// cache.  Cancellation polling must stay fresh and is left uncached.
	v1.GET("/seats", h.Seats.List, middleware.NewRedisCache(config.LoadCacheConfig(), h.Redis))
	v1.GET("/notifications/cancellations", h.Notifications.Cancellations)

	admin := v1.Group("/admin")
	admin.Use(middleware.RequireRole(workflow.RoleAdmin))
	admin.GET("/bookings", h.Admin.ListBookings)
	admin.PATCH("/bookings/:id/status", h.Admin.UpdateStatus)
	admin.GET("/users", h.Admin.ListUsers)
}

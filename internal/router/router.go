// Package router registers the HTTP routes of the admin API. Public
// routes live under /v1, everything admin-facing under /v1/admin behind
// JWT auth and an admin role check.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ecowave/ecowave-hub/internal/config"
	"github.com/ecowave/ecowave-hub/internal/handler"
	"github.com/ecowave/ecowave-hub/internal/middleware"
	"github.com/ecowave/ecowave-hub/internal/model"
	"github.com/ecowave/ecowave-hub/internal/store"
)

// RegisterRoutes wires the health check, the sessionless auth routes and
// the authenticated self-service routes shared by both roles.
func RegisterRoutes(e *echo.Echo, svc store.DataService, a *handler.AuthHandler, jwtSecret string) {
	e.GET("/healthz", handler.Health(svc))

	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout, middleware.JWTAuth(jwtSecret))

	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterAdmin wires every admin dashboard route. The whole group runs
// behind JWTAuth plus an admin role check; read endpoints additionally go
// through the Redis response cache, and the token-bucket rate limiter
// wraps the group as a whole. Both degrade to pass-throughs without a
// Redis client.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string, rdb *redis.Client) {
	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cached := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Users. Updates accept PATCH (canonical) and PUT (legacy clients).
	admin.GET("/users", h.ListUsers, cached)
	admin.POST("/users", h.CreateUser)
	admin.GET("/users/:id", h.GetUser)
	admin.PATCH("/users/:id", h.UpdateUser)
	admin.PUT("/users/:id", h.UpdateUser)
	admin.DELETE("/users/:id", h.DeleteUser)
	admin.POST("/users/:id/points", h.AddPoints)

	// Events.
	admin.GET("/events", h.ListEvents, cached)
	admin.POST("/events", h.CreateEvent)
	admin.GET("/events/:id", h.GetEvent)
	admin.PATCH("/events/:id", h.UpdateEvent)
	admin.PUT("/events/:id", h.UpdateEvent)
	admin.DELETE("/events/:id", h.DeleteEvent)

	// Rewards and redemptions.
	admin.GET("/rewards", h.ListRewards, cached)
	admin.POST("/rewards", h.CreateReward)
	admin.GET("/rewards/:id", h.GetReward)
	admin.PATCH("/rewards/:id", h.UpdateReward)
	admin.PUT("/rewards/:id", h.UpdateReward)
	admin.DELETE("/rewards/:id", h.DeleteReward)
	admin.POST("/rewards/:id/redeem", h.RedeemReward)
	admin.GET("/redemptions", h.ListRedemptions)

	// Feedback.
	admin.GET("/feedback", h.ListFeedback, cached)
	admin.POST("/feedback", h.CreateFeedback)
	admin.GET("/feedback/:id", h.GetFeedback)
	admin.DELETE("/feedback/:id", h.DeleteFeedback)

	// Missions and submissions.
	admin.GET("/missions", h.ListMissions, cached)
	admin.POST("/missions", h.CreateMission)
	admin.GET("/missions/:id", h.GetMission)
	admin.PATCH("/missions/:id", h.UpdateMission)
	admin.PUT("/missions/:id", h.UpdateMission)
	admin.DELETE("/missions/:id", h.DeleteMission)
	admin.GET("/submissions", h.ListSubmissions)
	admin.POST("/submissions/:id/review", h.ReviewSubmission)

	// Activity trail.
	admin.GET("/history", h.ListHistory)
	admin.POST("/history", h.AppendHistory)
	admin.GET("/history/export", h.ExportHistory)

	// Dashboard aggregates.
	admin.GET("/dashboard/stats", h.DashboardStats, cached)
	admin.GET("/dashboard/engagement", h.MonthlyEngagement, cached)

	// Image uploads. The delete wildcard carries the object key.
	admin.POST("/uploads", h.UploadImage)
	admin.DELETE("/uploads/*", h.DeleteImage)
}

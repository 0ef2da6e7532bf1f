// Package router wires handlers and middleware onto the Echo instance. Route
// registration is split per resource family; everything under /v1 except the
// auth endpoints requires a valid access token.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/welfarelink/pwd-records-api/internal/config"
	"github.com/welfarelink/pwd-records-api/internal/handler"
	"github.com/welfarelink/pwd-records-api/internal/middleware"
	"github.com/welfarelink/pwd-records-api/internal/model"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Cfg       config.Config
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig

	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	Communities    *handler.CommunityHandler
	Disabilities   *handler.DisabilityHandler
	AssistanceType *handler.AssistanceTypeHandler
	Records        *handler.PWDHandler
	Guardians      *handler.GuardianHandler
	Educations     *handler.EducationHandler
	SupportNeeds   *handler.SupportNeedHandler
	Requests       *handler.RequestHandler
	Stats          *handler.StatsHandler
}

// Register mounts every route on the Echo instance.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	registerAuth(e, d)

	// All resource routes require an authenticated admin or officer.
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(d.Cfg.JWTSecret))
	v1.Use(middleware.RequireRole(model.RoleAdmin, model.RoleOfficer))

	registerUsers(v1, d)
	registerReference(v1, d)
	registerRecords(v1, d)
	registerRequests(v1, d)
	registerStats(v1, d)
}

// registerAuth mounts the session and password-reset endpoints. The
// credential-bearing ones sit behind the Redis token bucket.
func registerAuth(e *echo.Echo, d Deps) {
	limited := middleware.NewTokenBucket(d.RateLimit, d.Redis)

	g := e.Group("/v1/auth")
	g.POST("/login", d.Auth.Login, limited)
	g.POST("/refresh", d.Auth.Refresh)
	g.POST("/logout", d.Auth.Logout)
	g.POST("/request-reset", d.Auth.RequestReset, limited)
	g.POST("/verify-otp", d.Auth.VerifyOTP, limited)
	g.POST("/reset", d.Auth.ResetPassword, limited)

	auth := e.Group("/v1/auth", middleware.JWTAuth(d.Cfg.JWTSecret))
	auth.GET("/me", d.Auth.Me)
	auth.PATCH("/password", d.Auth.UpdatePassword)
}

func registerUsers(v1 *echo.Group, d Deps) {
	admin := middleware.AdminOnly()

	g := v1.Group("/users")
	g.POST("", d.Users.Create, admin)
	g.GET("/list", d.Users.List, admin)
	g.GET("/:id", d.Users.Get)
	g.PATCH("/:id", d.Users.Update)
	g.DELETE("/:id", d.Users.Delete, admin)
}

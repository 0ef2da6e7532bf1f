package router

import (
	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/middleware"
)

// registerRequests mounts the assistance-request workflow routes.
func registerRequests(v1 *echo.Group, d Deps) {
	admin := middleware.AdminOnly()

	r := v1.Group("/assistance-requests")
	r.GET("/list", d.Requests.List)
	r.GET("/my-requests", d.Requests.ListMine)
	r.GET("/status/:status", d.Requests.ListByStatus)
	r.GET("/beneficiary/:id", d.Requests.ListByBeneficiary)
	r.GET("/user/:id", d.Requests.ListByUser)
	r.GET("/:id", d.Requests.Get)
	r.POST("", d.Requests.Create)
	r.PATCH("/:id", d.Requests.Update)
	r.PATCH("/:id/status", d.Requests.UpdateStatus, admin)
	r.DELETE("/:id", d.Requests.Delete, admin)
}

// registerStats mounts the statistics routes behind the Redis response
// cache. Aggregates tolerate the short TTL; the cache is a pass-through when
// Redis is unavailable.
func registerStats(v1 *echo.Group, d Deps) {
	cached := middleware.NewRedisCache(d.Cache, d.Redis)

	s := v1.Group("/statistics", cached)
	s.GET("", d.Stats.Current)
	s.GET("/yearly", d.Stats.Yearly)
	s.GET("/current-year", d.Stats.CurrentYear)
	s.GET("/compare", d.Stats.Compare)
	s.GET("/:quarter/:year", d.Stats.Quarterly)
}

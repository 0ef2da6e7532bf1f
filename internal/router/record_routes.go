package router

import (
	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/middleware"
)

// registerRecords mounts the PWD record routes and the guardian, education
// and support-need satellites. Officers create and edit; deletes and the
// review-status transition are admin-only.
func registerRecords(v1 *echo.Group, d Deps) {
	admin := middleware.AdminOnly()

	r := v1.Group("/pwd-records")
	r.GET("/list", d.Records.List)
	r.GET("/totals", d.Records.Totals)
	r.GET("/quarterly/:quarter/:year", d.Records.ListByQuarter)
	r.GET("/community/:id", d.Records.ListByCommunity)
	r.GET("/category/:id", d.Records.ListByCategory)
	r.GET("/:id", d.Records.Get)
	r.POST("", d.Records.Create)
	r.PATCH("/:id", d.Records.Update)
	r.PATCH("/:id/status", d.Records.UpdateStatus, admin)
	r.DELETE("/:id", d.Records.Delete, admin)

	g := v1.Group("/guardians")
	g.GET("/pwd/:pwd_id", d.Guardians.GetByPWD)
	g.POST("", d.Guardians.Create)
	g.PATCH("/:id", d.Guardians.Update)
	g.DELETE("/:id", d.Guardians.Delete, admin)

	ed := v1.Group("/educations")
	ed.GET("/pwd/:pwd_id", d.Educations.GetByPWD)
	ed.POST("", d.Educations.Create)
	ed.PATCH("/:id", d.Educations.Update)
	ed.DELETE("/:id", d.Educations.Delete, admin)

	sn := v1.Group("/support-needs")
	sn.GET("/pwd/:pwd_id", d.SupportNeeds.ListByPWD)
	sn.POST("", d.SupportNeeds.Create)
	sn.PATCH("/:id", d.SupportNeeds.Update)
	sn.DELETE("/:id", d.SupportNeeds.Delete, admin)
}

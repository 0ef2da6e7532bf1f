package router

import (
	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/middleware"
)

// registerReference mounts the lookup-table routes: communities, disability
// categories and types, and assistance types. Reads are open to both roles;
// every write is admin-only.
func registerReference(v1 *echo.Group, d Deps) {
	admin := middleware.AdminOnly()

	c := v1.Group("/communities")
	c.GET("/list", d.Communities.List)
	c.GET("/:id", d.Communities.Get)
	c.POST("", d.Communities.Create, admin)
	c.PATCH("/:id", d.Communities.Update, admin)
	c.DELETE("/:id", d.Communities.Delete, admin)

	dc := v1.Group("/disability-categories")
	dc.GET("/list", d.Disabilities.ListCategories)
	dc.GET("/:id", d.Disabilities.GetCategory)
	dc.POST("", d.Disabilities.CreateCategory, admin)
	dc.PATCH("/:id", d.Disabilities.UpdateCategory, admin)
	dc.DELETE("/:id", d.Disabilities.DeleteCategory, admin)

	dt := v1.Group("/disability-types")
	dt.GET("/list", d.Disabilities.ListTypes)
	dt.GET("/category/:id", d.Disabilities.ListTypesByCategory)
	dt.GET("/:id", d.Disabilities.GetType)
	dt.POST("", d.Disabilities.CreateType, admin)
	dt.PATCH("/:id", d.Disabilities.UpdateType, admin)
	dt.DELETE("/:id", d.Disabilities.DeleteType, admin)

	at := v1.Group("/assistance-types")
	at.GET("/list", d.AssistanceType.List)
	at.GET("/:id", d.AssistanceType.Get)
	at.POST("", d.AssistanceType.Create, admin)
	at.PATCH("/:id", d.AssistanceType.Update, admin)
	at.DELETE("/:id", d.AssistanceType.Delete, admin)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/middleware"
)

// PermCatalogWrite guards catalog maintenance endpoints.
const PermCatalogWrite = "catalog:write"

// RouteConfig carries the settings the routes depend on.
type RouteConfig struct {
	SessionHeader string
	JWTSecret     string
}

// Register 注册全部路由
func (h *Handlers) Register(r *gin.Engine, cfg RouteConfig) {
	// 健康检查
	r.GET("/health/live", h.Health.Live)
	r.GET("/health/ready", h.Health.Ready)
	r.GET("/version", h.Health.Version)

	// 电源计算，返回不带信封的原始结果
	r.POST("/api/power", h.Power.Calculate)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": 40400, "message": "Not found"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/power", h.Power.Calculate)
		v1.POST("/validate", h.Validate.Validate)
		v1.POST("/compatibility", h.Validate.Check)

		session := v1.Group("", middleware.Session(cfg.SessionHeader))
		{
			build := session.Group("/build")
			{
				build.GET("", h.Build.Get)
				build.DELETE("", h.Build.Clear)
				build.PUT("/components", h.Build.Add)
				build.PUT("/components/:kind", h.Build.Replace)
				build.DELETE("/components/:kind", h.Build.Remove)
				build.GET("/events", h.SSE.Stream)
			}

			components := session.Group("/components")
			{
				components.GET("", h.Catalog.Search)
				components.GET("/stats", h.Catalog.Stats)
				components.GET("/:id", h.Catalog.Get)
			}
		}

		admin := v1.Group("/admin",
			middleware.JWTAuth(cfg.JWTSecret),
			middleware.RequirePermission(PermCatalogWrite),
		)
		{
			admin.POST("/components/import", h.Catalog.Import)
			admin.GET("/components/export", h.Catalog.Export)
			admin.POST("/components/archive", h.Catalog.Archive)
			admin.DELETE("/components/:id", h.Catalog.Delete)
		}
	}
}

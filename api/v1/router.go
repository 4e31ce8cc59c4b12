package v1

import (
	"ipocket/api/v1/assets"
	"ipocket/api/v1/auditlog"
	"ipocket/api/v1/auth"
	"ipocket/api/v1/hosts"
	"ipocket/api/v1/middleware"
	"ipocket/api/v1/projects"
	"ipocket/api/v1/ranges"
	"ipocket/api/v1/tags"
	"ipocket/api/v1/vendors"
	"ipocket/internal/config"
	"ipocket/internal/httpx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter sets up the API v1 routes
func SetupRouter(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	v1 := r.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.GET("/ping", pingHandler)

		// Auth routes
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", auth.LoginHandler(db, cfg))
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/me", meHandler)

			// Mutations additionally require an editor role
			editor := protected.Group("")
			editor.Use(middleware.EditorRequired())

			// IP range routes
			rangesHandler := ranges.NewHandler(db)
			protected.GET("/ranges", rangesHandler.List)
			protected.GET("/ranges/utilization", rangesHandler.Utilization)
			protected.GET("/ranges/:id/breakdown", rangesHandler.Breakdown)
			editor.POST("/ranges/create", rangesHandler.Create)
			editor.POST("/ranges/update", rangesHandler.Update)
			editor.POST("/ranges/delete", rangesHandler.Delete)

			// IP asset routes
			assetsHandler := assets.NewHandler(db)
			protected.GET("/assets", assetsHandler.List)
			protected.GET("/assets/by-ip", assetsHandler.GetByIP)
			protected.GET("/assets/:id", assetsHandler.Get)
			protected.GET("/assets/:id/audit", assetsHandler.History)
			editor.POST("/assets/create", assetsHandler.Create)
			editor.POST("/assets/update", assetsHandler.Update)
			editor.POST("/assets/archive", assetsHandler.Archive)
			editor.POST("/assets/unarchive", assetsHandler.Unarchive)
			editor.POST("/assets/delete", assetsHandler.Delete)

			// Host routes
			hostsHandler := hosts.NewHandler(db)
			protected.GET("/hosts", hostsHandler.List)
			protected.GET("/hosts/by-name", hostsHandler.GetByName)
			protected.GET("/hosts/:id", hostsHandler.Get)
			editor.POST("/hosts/create", hostsHandler.Create)
			editor.POST("/hosts/update", hostsHandler.Update)
			editor.POST("/hosts/delete", hostsHandler.Delete)

			// Project routes
			projectsHandler := projects.NewHandler(db)
			protected.GET("/projects", projectsHandler.List)
			editor.POST("/projects/create", projectsHandler.Create)
			editor.POST("/projects/delete", projectsHandler.Delete)

			// Vendor routes
			vendorsHandler := vendors.NewHandler(db)
			protected.GET("/vendors", vendorsHandler.List)
			editor.POST("/vendors/create", vendorsHandler.Create)
			editor.POST("/vendors/delete", vendorsHandler.Delete)

			// Tag routes
			tagsHandler := tags.NewHandler(db)
			protected.GET("/tags", tagsHandler.List)
			editor.POST("/tags/create", tagsHandler.Create)
			editor.POST("/tags/update", tagsHandler.Update)
			editor.POST("/tags/delete", tagsHandler.Delete)

			// Audit log routes
			auditHandler := auditlog.NewHandler(db)
			protected.GET("/audit", auditHandler.List)
		}
	}
}

// pingHandler handles the ping request using unified response
func pingHandler(c *gin.Context) {
	httpx.OK(c, gin.H{
		"pong": true,
	})
}

// meHandler returns current user information
func meHandler(c *gin.Context) {
	uid, _ := c.Get("uid")
	username, _ := c.Get("username")
	role, _ := c.Get("role")

	httpx.OK(c, gin.H{
		"uid":      uid,
		"username": username,
		"role":     role,
	})
}

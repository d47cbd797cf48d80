package gateway

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/config"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/middleware"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/models"
)

func Register(router *gin.Engine, clients *Clients, cfg config.Config) {
	router.Use(corsMiddleware(cfg.AllowedOriginsRaw))
	router.Use(middleware.RequestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "gateway"})
	})

	handler := NewHandler(clients)

	api := router.Group("/api")
	api.POST("/auth/login", handler.Login)

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(cfg.JwtSecret))
	{
		protected.GET("/me", handler.Me)
		protected.POST("/upload", handler.Upload)

		protected.POST("/employees", middleware.RequireRole(models.RoleHRAdmin), handler.CreateEmployee)
		protected.GET("/employees", middleware.RequireRole(models.RoleHRAdmin), handler.GetAllEmployees)
		protected.GET("/employees/:id", middleware.RequireRole(models.RoleHRAdmin), handler.GetEmployee)
		protected.PUT("/employees/:id", middleware.RequireRole(models.RoleHRAdmin), handler.UpdateEmployee)
		protected.DELETE("/employees/:id", middleware.RequireRole(models.RoleHRAdmin), handler.DeleteEmployee)

		protected.POST("/attendance", middleware.RequireRole(models.RoleEmployee), handler.CreateAttendance)
		protected.GET("/attendance", middleware.RequireRole(models.RoleHRAdmin), handler.GetAllAttendance)
		protected.GET("/attendance/my", middleware.RequireRole(models.RoleEmployee), handler.GetMyAttendance)
		protected.GET("/attendance/:id", handler.GetAttendance)
	}
}

func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	allowAll := len(origins) == 0

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowedOrigin := range origins {
				if origin == allowedOrigin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Vary", "Origin")
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
